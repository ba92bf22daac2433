package main

import (
	"context"

	flag "github.com/spf13/pflag"

	"github.com/swiftlabs/dataqueue"
)

// DequeueCmd removes and prints the payload at the head of a queue.
func DequeueCmd(cfg Config) *Command {
	fs := flag.NewFlagSet("dequeue", flag.ContinueOnError)

	return &Command{
		Flags: fs,
		Usage: "dequeue <name>",
		Short: "Remove and print the payload at the head of a queue",
		Exec: func(_ context.Context, o *IO, args []string) error {
			if len(args) < 1 {
				return errMissingQueueName
			}

			e := newEngine(cfg)

			h, err := e.Open(args[0], dataqueue.ReadWrite, dataqueue.Unpacked)
			if err != nil {
				return err
			}
			defer e.Close(h) //nolint:errcheck

			data, err := e.Dequeue(h)
			if err != nil {
				return err
			}

			o.Println(string(data))

			return nil
		},
	}
}
