package main

import (
	"flag"
	"fmt"
	"os"

	"richdoc/internal/app"
	"richdoc/internal/config"
	"richdoc/internal/diag"
	"richdoc/internal/editor"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "richedit failed: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("richedit", flag.ContinueOnError)
	cfgPath := fs.String("config", "richedit.toml", "path to the TOML config file")
	key := fs.String("key", "", "storage key, overrides storage.key")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return err
	}
	if *key != "" {
		cfg.Storage.Key = *key
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	logFile, err := diag.OpenLogFile(cfg.Log.File)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer logFile.Close()
	log := diag.NewLogger(logFile, cfg.Log.Level)

	slot, err := cfg.Slot()
	if err != nil {
		return err
	}
	log.Info("starting", "path", slot.Path(), "scope", cfg.Scope().String())

	state, err := editor.Open(slot, editor.Options{Scope: cfg.Scope(), Logger: log})
	if err != nil {
		return err
	}
	m := app.New(state, app.Options{Title: "richedit · " + cfg.Storage.Key, Logger: log})
	if err := app.Run(m); err != nil {
		return err
	}
	log.Info("exiting", "dirty", state.Dirty())
	return nil
}
