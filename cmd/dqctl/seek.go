package main

import (
	"context"
	"fmt"
	"strconv"

	flag "github.com/spf13/pflag"

	"github.com/swiftlabs/dataqueue"
)

// SeekCmd repositions the random-read cursor of an already-seekable queue.
func SeekCmd(cfg Config) *Command {
	fs := flag.NewFlagSet("seek", flag.ContinueOnError)

	return &Command{
		Flags: fs,
		Usage: "seek <name> <head|tail|<position>>",
		Short: "Reposition a queue's random-read cursor",
		Exec: func(_ context.Context, o *IO, args []string) error {
			if len(args) < 2 {
				return errMissingQueueName
			}

			typ, pos, err := parseSeekArg(args[1])
			if err != nil {
				return err
			}

			e := newEngine(cfg)

			h, err := e.Open(args[0], dataqueue.ReadOnly, dataqueue.Unpacked)
			if err != nil {
				return err
			}
			defer e.Close(h) //nolint:errcheck

			if err := e.Seek(h, typ, pos); err != nil {
				return err
			}

			o.Printf("seeked %q to %s\n", args[0], args[1])

			return nil
		},
	}
}

func parseSeekArg(s string) (dataqueue.SeekType, int, error) {
	switch s {
	case "head":
		return dataqueue.SeekHead, 0, nil
	case "tail":
		return dataqueue.SeekTail, 0, nil
	default:
		pos, err := strconv.Atoi(s)
		if err != nil {
			return 0, 0, fmt.Errorf("seek target must be head, tail, or a position: %w", err)
		}

		return dataqueue.SeekPosition, pos, nil
	}
}
