package main

import (
	"context"

	flag "github.com/spf13/pflag"
)

// DestroyCmd removes a queue and everything in its directory.
func DestroyCmd(cfg Config) *Command {
	fs := flag.NewFlagSet("destroy", flag.ContinueOnError)

	return &Command{
		Flags: fs,
		Usage: "destroy <name>",
		Short: "Remove a queue",
		Exec: func(_ context.Context, o *IO, args []string) error {
			if len(args) < 1 {
				return errMissingQueueName
			}

			e := newEngine(cfg)

			if err := e.Destroy(args[0]); err != nil {
				return err
			}

			o.Printf("destroyed %q\n", args[0])

			return nil
		},
	}
}
