package main

import (
	"context"

	flag "github.com/spf13/pflag"

	"github.com/swiftlabs/dataqueue"
)

// EnqueueCmd appends one payload to the tail of a queue.
func EnqueueCmd(cfg Config) *Command {
	fs := flag.NewFlagSet("enqueue", flag.ContinueOnError)

	return &Command{
		Flags: fs,
		Usage: "enqueue <name> <payload>",
		Short: "Append a payload to the tail of a queue",
		Exec: func(_ context.Context, o *IO, args []string) error {
			if len(args) < 2 {
				return errMissingQueueName
			}

			e := newEngine(cfg)

			h, err := e.Open(args[0], dataqueue.WriteOnly, dataqueue.Unpacked)
			if err != nil {
				return err
			}
			defer e.Close(h) //nolint:errcheck

			if err := e.Enqueue(h, []byte(args[1])); err != nil {
				return err
			}

			o.Printf("enqueued %d bytes to %q\n", len(args[1]), args[0])

			return nil
		},
	}
}
