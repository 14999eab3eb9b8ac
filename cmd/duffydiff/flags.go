package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/JustVugg/duffydiff/internal/config"
)

const usage = `Usage: duffydiff [flags] [LEFT [RIGHT]]
       duffydiff -rev REV [flags] FILE

Compares two text files side by side. With -rev, the left side is FILE as of
git revision REV and the right side is the working copy.

Flags:
`

type options struct {
	configPath string
	rev        string
	report     string
	debounce   time.Duration
	history    int
	noAuto     bool
	format     string
	paths      []string

	set map[string]bool
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	o := options{set: map[string]bool{}}

	fs := flag.NewFlagSet("duffydiff", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}
	fs.StringVar(&o.configPath, "config", "", "path to config file")
	fs.StringVar(&o.rev, "rev", "", "load the left side from this git revision")
	fs.StringVar(&o.report, "report", "", "print a report in `FORMAT` (text, markdown, html, json, yaml) and exit")
	fs.DurationVar(&o.debounce, "debounce", 0, "quiet period before recomputing after an edit")
	fs.IntVar(&o.history, "history", 0, "maximum undo history entries")
	fs.BoolVar(&o.noAuto, "no-auto", false, "disable automatic compare while editing")
	fs.StringVar(&o.format, "format", "", "default export format")

	if err := fs.Parse(args); err != nil {
		return o, err
	}
	o.paths = fs.Args()
	fs.Visit(func(f *flag.Flag) { o.set[f.Name] = true })

	switch {
	case o.rev != "" && len(o.paths) != 1:
		return o, errors.New("-rev takes exactly one file")
	case len(o.paths) > 2:
		return o, errors.New("at most two files can be compared")
	case o.report != "" && o.rev == "" && len(o.paths) != 2:
		return o, errors.New("-report needs two files, or -rev and one file")
	}
	return o, nil
}

// apply overrides cfg with the flags that were given and revalidates it.
func (o options) apply(cfg *config.Config) error {
	if o.set["debounce"] {
		cfg.Compare.DebounceMS = int(o.debounce / time.Millisecond)
	}
	if o.set["history"] {
		cfg.History.Limit = o.history
	}
	if o.noAuto {
		cfg.Compare.Auto = false
	}
	if o.set["format"] {
		cfg.Export.Format = o.format
	}
	return config.Validate(cfg)
}
