package main

import (
	"context"

	flag "github.com/spf13/pflag"

	"github.com/swiftlabs/dataqueue"
)

// GetCmd prints the payload at a queue's current seek position without
// removing it.
func GetCmd(cfg Config) *Command {
	fs := flag.NewFlagSet("get", flag.ContinueOnError)

	return &Command{
		Flags: fs,
		Usage: "get <name>",
		Short: "Print the payload at the current seek position",
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

			data, err := e.GetEntry(h)
			if err != nil {
				return err
			}

			o.Println(string(data))

			return nil
		},
	}
}
