package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"tmenews/internal/app"
	"tmenews/internal/config"
	"tmenews/internal/domain"
)

const (
	exitOK     = 0
	exitFailed = 1
	exitConfig = 2
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("tmenews", flag.ContinueOnError)
	flags.SetOutput(stderr)
	pages := flags.Int("pages", -1, "number of newsfeed pages to fetch (default 5)")
	configPath := flags.String("config", "", "path to a JSON config file")
	logLevel := flags.String("log-level", "", "log level: debug, info, warn, error")
	if err := flags.Parse(args); err != nil {
		return exitConfig
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "could not load config: %v\n", err)
		return exitConfig
	}
	if *logLevel != "" {
		cfg.Logger.Level = *logLevel
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "invalid config: %v\n", err)
		return exitConfig
	}
	if !isFlagSet(flags, "pages") {
		*pages = cfg.App.DefaultPages
	}

	a, err := app.New(cfg, stdout, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "could not start: %v\n", err)
		return exitConfig
	}
	defer a.Close()

	if err := a.Run(ctx, *pages); err != nil {
		fmt.Fprintln(stderr, err)
		var cfgErr *domain.ConfigurationError
		if errors.As(err, &cfgErr) {
			return exitConfig
		}
		return exitFailed
	}
	return exitOK
}

func isFlagSet(flags *flag.FlagSet, name string) bool {
	set := false
	flags.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}
