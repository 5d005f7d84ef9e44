package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/mattn/sputter/repl"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
)

func usage(flags *pflag.FlagSet) func() {
	return func() {
		fmt.Fprintf(os.Stderr, "usage: sputter [flags] [file]\n\n")
		flags.PrintDefaults()
	}
}

func run(r *repl.REPL, flags *pflag.FlagSet) error {
	if flags.NArg() == 1 {
		f, err := os.Open(flags.Arg(0))
		if err != nil {
			return errors.Wrap(err, "open script")
		}
		defer f.Close()
		return r.Run(f)
	}

	if isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return r.RunTerminal()
	}
	return r.Run(os.Stdin)
}

func main() {
	flags := pflag.NewFlagSet("sputter", pflag.ExitOnError)
	repl.RegisterFlags(flags)
	flags.Usage = usage(flags)
	flags.Parse(os.Args[1:])

	if flags.NArg() > 1 {
		flags.Usage()
		os.Exit(2)
	}

	cfg, err := repl.LoadConfig(flags)
	if err != nil {
		log.Fatal(err)
	}
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	log.SetLevel(level)
	log.SetOutput(os.Stderr)

	log.WithFields(log.Fields{
		"format": cfg.Format,
		"args":   flags.Args(),
	}).Debug("Starting sputter")

	r := repl.New(cfg, os.Stdout, log.StandardLogger())
	if err := run(r, flags); err != nil {
		log.Fatal(err)
	}

	// scripts report failed lines through the exit status
	if flags.NArg() == 1 && r.Failed() > 0 {
		os.Exit(1)
	}
}
