package main

import (
	"context"

	flag "github.com/spf13/pflag"

	"github.com/swiftlabs/dataqueue"
)

// OpenCmd verifies that a queue can currently be opened for the given
// access, immediately closing it again. Useful for scripted health checks,
// since a process-local handle has no meaning once dqctl exits.
func OpenCmd(cfg Config) *Command {
	fs := flag.NewFlagSet("open", flag.ContinueOnError)
	access := fs.StringP("access", "a", "rw", "ro, wo, or rw")

	return &Command{
		Flags: fs,
		Usage: "open <name> [flags]",
		Short: "Check that a queue can be opened for the given access",
		Exec: func(_ context.Context, o *IO, args []string) error {
			if len(args) < 1 {
				return errMissingQueueName
			}

			acc, err := parseAccess(*access)
			if err != nil {
				return err
			}

			e := newEngine(cfg)

			h, err := e.Open(args[0], acc, dataqueue.Unpacked)
			if err != nil {
				return err
			}

			if err := e.Close(h); err != nil {
				return err
			}

			o.Printf("ok: %q opens for %s\n", args[0], *access)

			return nil
		},
	}
}
