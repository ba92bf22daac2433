package main

import (
	"context"

	flag "github.com/spf13/pflag"

	"github.com/swiftlabs/dataqueue"
)

// LenCmd prints the number of entries currently in a queue.
func LenCmd(cfg Config) *Command {
	fs := flag.NewFlagSet("len", flag.ContinueOnError)

	return &Command{
		Flags: fs,
		Usage: "len <name>",
		Short: "Print the number of entries in a queue",
		Exec: func(_ context.Context, o *IO, args []string) error {
			if len(args) < 1 {
				return errMissingQueueName
			}

			e := newEngine(cfg)

			h, err := e.Open(args[0], dataqueue.ReadOnly, dataqueue.Unpacked)
			if err != nil {
				return err
			}
			defer e.Close(h) //nolint:errcheck

			n, err := e.GetLength(h)
			if err != nil {
				return err
			}

			o.Printf("%d\n", n)

			return nil
		},
	}
}
