package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/natefinch/atomic"
)

// ConfigCmd prints the effective configuration, or writes a fresh one with
// the "init" subcommand.
func ConfigCmd(cfg Config, workDir string) *Command {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)

	return &Command{
		Flags: fs,
		Usage: "config [init]",
		Short: "Print or initialize the dqctl configuration file",
		Exec: func(_ context.Context, o *IO, args []string) error {
			if len(args) > 0 && args[0] == "init" {
				return configInit(o, cfg, workDir)
			}

			formatted, err := FormatConfig(cfg)
			if err != nil {
				return err
			}

			o.Println(formatted)

			return nil
		},
	}
}

// configInit writes a fresh project-local .dqctl.jsonc with the current
// effective settings, so a crash mid-write never leaves a torn config file.
func configInit(o *IO, cfg Config, workDir string) error {
	path := filepath.Join(workDir, ConfigFileName)

	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to format config: %w", err)
	}

	data = append(data, '\n')

	if err := atomic.WriteFile(path, strings.NewReader(string(data))); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	o.Printf("wrote %s\n", path)

	return nil
}
