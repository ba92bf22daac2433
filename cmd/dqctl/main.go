// Command dqctl is a CLI for creating, inspecting, and operating on
// file-backed FIFO data queues.
package main

import (
	"os"
	"strings"
)

func main() {
	environ := os.Environ()
	env := make(map[string]string, len(environ))

	for _, e := range environ {
		if k, v, ok := strings.Cut(e, "="); ok {
			env[k] = v
		}
	}

	os.Exit(Run(os.Stdout, os.Stderr, os.Args, env))
}
