package main

import (
	"context"

	flag "github.com/spf13/pflag"
)

// LsCmd lists the queues under the configured queue root.
func LsCmd(cfg Config) *Command {
	fs := flag.NewFlagSet("ls", flag.ContinueOnError)

	return &Command{
		Flags: fs,
		Usage: "ls",
		Short: "List queues under the configured queue root",
		Exec: func(_ context.Context, o *IO, _ []string) error {
			e := newEngine(cfg)

			infos, err := e.List()
			if err != nil {
				return err
			}

			if len(infos) == 0 {
				o.Println("(no queues)")
				return nil
			}

			for _, info := range infos {
				o.Printf("%-31s %3d/%3d entries  flags=0x%04x\n",
					info.Name, info.NumOfEntries, info.MaxEntries, uint16(info.Flags))
			}

			return nil
		},
	}
}
