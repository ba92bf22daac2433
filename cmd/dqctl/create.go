package main

import (
	"context"

	flag "github.com/spf13/pflag"

	"github.com/swiftlabs/dataqueue"
)

// CreateCmd creates a new queue.
func CreateCmd(cfg Config) *Command {
	fs := flag.NewFlagSet("create", flag.ContinueOnError)
	maxEntries := fs.Uint8P("max-entries", "n", 10, "ring capacity, 1..255")
	maxEntrySize := fs.Uint64P("max-entry-size", "s", 4096, "largest payload accepted, in bytes")
	randomAccess := fs.Bool("random-access", false, "allow Seek/GetEntry on this queue")

	return &Command{
		Flags: fs,
		Usage: "create <name> [flags]",
		Short: "Create a new queue",
		Exec: func(_ context.Context, o *IO, args []string) error {
			if len(args) < 1 {
				return errMissingQueueName
			}

			var flags dataqueue.Flags
			if *randomAccess {
				flags |= dataqueue.FlagRandomAccess
			}

			e := newEngine(cfg)

			if err := e.Create(args[0], dataqueue.CreateOptions{
				MaxEntries:   *maxEntries,
				MaxEntrySize: *maxEntrySize,
				Flags:        flags,
			}); err != nil {
				return err
			}

			o.Printf("created %q\n", args[0])

			return nil
		},
	}
}
