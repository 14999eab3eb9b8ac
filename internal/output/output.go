package output

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/atotto/clipboard"
)

// TargetKind identifies the type of output destination.
type TargetKind int

const (
	TargetPane TargetKind = iota
	TargetTmuxBuffer
	TargetClipboard
	TargetFile
)

// OutputTarget represents a destination for an exported report.
type OutputTarget struct {
	Kind       TargetKind
	Label      string
	TmuxTarget string // pane identifier for tmux send-keys (pane targets only)
}

// Deliverer writes reports. Dir is where file and pane targets put their
// files; empty means os.TempDir().
type Deliverer struct {
	Dir string
	// Ext is the report file extension, without the dot.
	Ext string

	now       func() time.Time
	writeClip func(string) error
	run       func(stdin string, name string, args ...string) error
}

// NewDeliverer returns a Deliverer for reports with the given extension.
func NewDeliverer(dir, ext string) *Deliverer {
	return &Deliverer{
		Dir:       dir,
		Ext:       ext,
		now:       time.Now,
		writeClip: clipboard.WriteAll,
		run:       runCommand,
	}
}

const paneFormat = "#{session_name}:#{window_index}.#{pane_index}"

// parseTmuxPanes parses output from `tmux list-panes -a -F '#{session_name}:#{window_index}.#{pane_index} #{pane_current_command} #{pane_pid}'`.
// Returns a slice of OutputTarget for every pane except currentPane.
func parseTmuxPanes(output, currentPane string) []OutputTarget {
	lines := strings.Split(output, "\n")
	var targets []OutputTarget

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			// Skip malformed lines.
			continue
		}

		paneID := fields[0]
		command := fields[1]
		if paneID == currentPane {
			continue
		}

		targets = append(targets, OutputTarget{
			Kind:       TargetPane,
			Label:      paneID + "  " + command,
			TmuxTarget: paneID,
		})
	}

	return targets
}

// DetectTargets discovers available output destinations.
// tmuxEnv is the value of $TMUX (empty if not in tmux).
// tmuxPane is the pane id of the current pane, as printed by list-panes.
func DetectTargets(tmuxEnv, tmuxPane string) []OutputTarget {
	var targets []OutputTarget

	if tmuxEnv != "" {
		cmd := exec.Command("tmux", "list-panes", "-a", "-F", paneFormat+" #{pane_current_command} #{pane_pid}")
		output, err := cmd.Output()
		if err == nil {
			targets = append(targets, parseTmuxPanes(string(output), tmuxPane)...)
		}

		targets = append(targets, OutputTarget{
			Kind:  TargetTmuxBuffer,
			Label: "tmux paste buffer",
		})
	}

	if !clipboard.Unsupported {
		targets = append(targets, OutputTarget{
			Kind:  TargetClipboard,
			Label: "System clipboard",
		})
	}
	targets = append(targets, OutputTarget{
		Kind:  TargetFile,
		Label: "Write to file",
	})

	return targets
}

// CurrentPane returns the pane identified by tmuxPane ($TMUX_PANE) in the
// format DetectTargets expects, or "" when it cannot be resolved.
func CurrentPane(tmuxPane string) string {
	if tmuxPane == "" {
		return ""
	}
	out, err := exec.Command("tmux", "display-message", "-p", "-t", tmuxPane, paneFormat).Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}

// Deliver sends the report content to the specified target.
// Returns a human-readable status message on success.
func (d *Deliverer) Deliver(target OutputTarget, content string) (string, error) {
	switch target.Kind {
	case TargetPane:
		return d.deliverToPane(target, content)
	case TargetTmuxBuffer:
		return d.deliverToTmuxBuffer(content)
	case TargetClipboard:
		return d.deliverToClipboard(content)
	case TargetFile:
		return d.deliverToFile(content)
	default:
		return "", fmt.Errorf("unknown target kind: %v", target.Kind)
	}
}

// ReportPath generates a timestamped file path for report output.
func (d *Deliverer) ReportPath() string {
	dir := d.Dir
	if dir == "" {
		dir = os.TempDir()
	}
	ext := d.Ext
	if ext == "" {
		ext = "txt"
	}
	filename := fmt.Sprintf("duffydiff-report-%d.%s", d.now().Unix(), ext)
	return filepath.Join(dir, filename)
}

// deliverToPane writes content to a file and types its path into another pane.
func (d *Deliverer) deliverToPane(target OutputTarget, content string) (string, error) {
	path, err := d.writeReport(content)
	if err != nil {
		return "", err
	}

	// No Enter: the user decides what to do with the path.
	if err := d.run("", "tmux", "send-keys", "-t", target.TmuxTarget, path+" "); err != nil {
		return "", fmt.Errorf("failed to send to tmux pane: %w", err)
	}

	return fmt.Sprintf("Report path sent to %s (file: %s)", target.TmuxTarget, path), nil
}

// deliverToTmuxBuffer loads content into the tmux paste buffer.
func (d *Deliverer) deliverToTmuxBuffer(content string) (string, error) {
	if err := d.run(content, "tmux", "load-buffer", "-"); err != nil {
		return "", fmt.Errorf("failed to load tmux buffer: %w", err)
	}
	return "Report loaded into tmux paste buffer. Use prefix + ] to paste.", nil
}

func (d *Deliverer) deliverToClipboard(content string) (string, error) {
	if err := d.writeClip(content); err != nil {
		return "", fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	return "Report copied to clipboard.", nil
}

func (d *Deliverer) deliverToFile(content string) (string, error) {
	path, err := d.writeReport(content)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Report written to %s", path), nil
}

func (d *Deliverer) writeReport(content string) (string, error) {
	path := d.ReportPath()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to write report file: %w", err)
	}
	return path, nil
}

func runCommand(stdin string, name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if stdin != "" {
		cmd.Stdin = strings.NewReader(stdin)
	}
	return cmd.Run()
}
