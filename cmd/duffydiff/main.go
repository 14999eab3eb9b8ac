package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/JustVugg/duffydiff/internal/config"
	"github.com/JustVugg/duffydiff/internal/document"
	"github.com/JustVugg/duffydiff/internal/export"
	"github.com/JustVugg/duffydiff/internal/logger"
	"github.com/JustVugg/duffydiff/internal/output"
	"github.com/JustVugg/duffydiff/internal/source"
	"github.com/JustVugg/duffydiff/internal/syntax"
	"github.com/JustVugg/duffydiff/internal/ui"
)

// Exit codes follow diff(1).
const (
	exitSame  = 0
	exitDiffs = 1
	exitError = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return exitSame
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}

	cfg, err := config.Load(config.Path(opts.configPath))
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	if err := opts.apply(&cfg); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}

	builder := logger.NewBuilder(cfg.Log)
	if opts.report != "" {
		builder.WithConsole(stderr)
	}
	log, err := builder.Build()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}

	doc := document.New(log, cfg.History.Limit)
	s, err := loadSides(doc, opts)
	if err != nil {
		log.Error().Err(err).Msg("loading files")
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	if opts.report != "" {
		doc.Recompute()
		return report(doc, s, opts.report, stdout, stderr)
	}

	format, err := export.ParseFormat(cfg.Export.Format)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	model := ui.NewRootModel(ui.Options{
		Doc:         doc,
		Names:       s.names,
		Paths:       s.paths,
		Auto:        cfg.Compare.Auto,
		Delay:       time.Duration(cfg.Compare.DebounceMS) * time.Millisecond,
		Highlighter: syntax.NewHighlighter(cfg.UI.Style, cfg.UI.SyntaxHighlight),
		Deliverer:   output.NewDeliverer(cfg.Export.Directory, format.Ext()),
		Targets:     output.DetectTargets(os.Getenv("TMUX"), output.CurrentPane(os.Getenv("TMUX_PANE"))),
		Format:      format,
		Logger:      log,
	}, 80, 24)

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Error().Err(err).Msg("program exited")
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	return exitSame
}

type sides struct {
	names [2]string
	paths [2]string
}

// loadSides reads the files named on the command line into doc.
func loadSides(doc *document.Document, opts options) (sides, error) {
	var s sides

	if opts.rev != "" {
		path := opts.paths[0]
		dir, err := os.Getwd()
		if err != nil {
			return s, err
		}
		runner := &source.Runner{Dir: dir}
		if !runner.IsGitRepo() {
			return s, errors.New("not a git repository")
		}
		if !runner.RevExists(opts.rev) {
			return s, fmt.Errorf("revision %q does not exist", opts.rev)
		}
		content, err := runner.Show(opts.rev, path)
		if err != nil {
			return s, err
		}
		if err := doc.Load(document.Left, content); err != nil {
			return s, err
		}
		short, err := runner.ShortRev(opts.rev)
		if err != nil {
			short = opts.rev
		}
		s.names[document.Left] = filepath.Base(path) + "@" + short
		return s, loadFile(doc, &s, document.Right, path)
	}

	for i, path := range opts.paths {
		if err := loadFile(doc, &s, document.Side(i), path); err != nil {
			return s, err
		}
	}
	return s, nil
}

func loadFile(doc *document.Document, s *sides, side document.Side, path string) error {
	content, err := source.ReadFile(path)
	if err != nil {
		return err
	}
	if err := doc.Load(side, content); err != nil {
		return err
	}
	s.names[side] = path
	s.paths[side] = path
	return nil
}

// report prints the comparison in the named format. It exits 1 when the
// sides differ.
func report(doc *document.Document, s sides, name string, stdout, stderr io.Writer) int {
	format, err := export.ParseFormat(name)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	r, err := export.Build(doc, s.names[0], s.names[1])
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	out, err := export.Render(r, format)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	fmt.Fprint(stdout, out)

	if r.Identical() {
		return exitSame
	}
	return exitDiffs
}
