// dqshell is an interactive REPL for exercising one open data queue.
//
// Usage:
//
//	dqshell <queue-root> <name> [access]   Open a queue and start the shell
//
// Commands (in REPL):
//
//	enqueue <payload>     Append a payload to the tail
//	dequeue               Remove and print the head payload
//	seek <head|tail|pos>  Reposition the random-read cursor
//	get                   Print the payload at the current seek position
//	len                   Print the number of entries
//	info                  Show queue header fields
//	help                  Show this help
//	close / exit / quit   Close the queue and exit
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/peterh/liner"

	"github.com/swiftlabs/dataqueue"
	"github.com/swiftlabs/dataqueue/pkg/fsal"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	fs := flag.NewFlagSet("dqshell", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: dqshell <queue-root> <name> [ro|wo|rw]\n\n")
		fmt.Fprintf(os.Stderr, "Open an existing queue and start the interactive shell.\n")
	}

	if err := fs.Parse(os.Args[1:]); err != nil {
		return err
	}

	if fs.NArg() < 2 {
		fs.Usage()
		return errors.New("missing queue root or queue name")
	}

	root := fs.Arg(0)
	name := fs.Arg(1)

	access := dataqueue.ReadWrite
	if fs.NArg() >= 3 {
		var err error

		access, err = parseAccess(fs.Arg(2))
		if err != nil {
			return err
		}
	}

	engine := dataqueue.NewEngine(fsal.NewReal(), dataqueue.EngineOptions{QueueRoot: root})

	h, err := engine.Open(name, access, dataqueue.Unpacked)
	if err != nil {
		return fmt.Errorf("opening %s: %w", name, err)
	}

	repl := &REPL{engine: engine, handle: h, name: name, access: access}

	return repl.Run()
}

func parseAccess(s string) (dataqueue.Access, error) {
	switch s {
	case "ro":
		return dataqueue.ReadOnly, nil
	case "wo":
		return dataqueue.WriteOnly, nil
	case "rw":
		return dataqueue.ReadWrite, nil
	default:
		return 0, fmt.Errorf("access must be ro, wo, or rw, got %q", s)
	}
}

// REPL is the interactive command loop over one open queue.
type REPL struct {
	engine *dataqueue.Engine
	handle *dataqueue.Handle
	name   string
	access dataqueue.Access
	liner  *liner.State
	closed bool
}

func historyFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".dqshell_history")
}

// Run starts the REPL loop.
func (r *REPL) Run() error {
	r.liner = liner.NewLiner()
	defer r.liner.Close()

	r.liner.SetCtrlCAborts(true)
	r.liner.SetCompleter(r.completer)

	if f, err := os.Open(historyFile()); err == nil {
		r.liner.ReadHistory(f)
		f.Close()
	}

	fmt.Printf("dqshell - %s (access=%v)\n", r.name, r.access)
	fmt.Println("Type 'help' for available commands.")
	fmt.Println()

	for {
		line, err := r.liner.Prompt("dqshell> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				fmt.Println("\nBye!")
				break
			}

			return fmt.Errorf("reading input: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		r.liner.AppendHistory(line)

		parts := strings.Fields(line)
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		switch cmd {
		case "close", "exit", "quit", "q":
			r.cmdClose()
			r.saveHistory()

			return nil

		case "help", "?":
			r.printHelp()

		case "enqueue", "put":
			r.cmdEnqueue(args)

		case "dequeue":
			r.cmdDequeue()

		case "seek":
			r.cmdSeek(args)

		case "get":
			r.cmdGet()

		case "len", "count":
			r.cmdLen()

		case "info":
			r.cmdInfo()

		default:
			fmt.Printf("Unknown command: %s (type 'help' for commands)\n", cmd)
		}
	}

	r.saveHistory()

	return nil
}

func (r *REPL) saveHistory() {
	if path := historyFile(); path != "" {
		if f, err := os.Create(path); err == nil {
			r.liner.WriteHistory(f)
			f.Close()
		}
	}
}

func (r *REPL) completer(line string) []string {
	commands := []string{
		"enqueue", "put", "dequeue", "seek", "get",
		"len", "count", "info", "help", "close", "exit", "quit", "q",
	}

	var completions []string

	lower := strings.ToLower(line)
	for _, cmd := range commands {
		if strings.HasPrefix(cmd, lower) {
			completions = append(completions, cmd)
		}
	}

	return completions
}

func (r *REPL) printHelp() {
	fmt.Println("Commands:")
	fmt.Println("  enqueue <payload>     Append a payload to the tail")
	fmt.Println("  dequeue               Remove and print the head payload")
	fmt.Println("  seek <head|tail|pos>  Reposition the random-read cursor")
	fmt.Println("  get                   Print the payload at the current seek position")
	fmt.Println("  len                   Print the number of entries")
	fmt.Println("  info                  Show queue header fields")
	fmt.Println("  help                  Show this help")
	fmt.Println("  close / exit / quit   Close the queue and exit")
}

func (r *REPL) cmdEnqueue(args []string) {
	if r.closed || len(args) < 1 {
		fmt.Println("Usage: enqueue <payload>")
		return
	}

	payload := strings.Join(args, " ")

	if err := r.engine.Enqueue(r.handle, []byte(payload)); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Printf("OK: enqueued %d bytes\n", len(payload))
}

func (r *REPL) cmdDequeue() {
	data, err := r.engine.Dequeue(r.handle)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Printf("%q\n", string(data))
}

func (r *REPL) cmdSeek(args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: seek <head|tail|position>")
		return
	}

	var (
		typ dataqueue.SeekType
		pos int
	)

	switch args[0] {
	case "head":
		typ = dataqueue.SeekHead
	case "tail":
		typ = dataqueue.SeekTail
	default:
		n, err := strconv.Atoi(args[0])
		if err != nil {
			fmt.Printf("Error: seek target must be head, tail, or a position\n")
			return
		}

		typ, pos = dataqueue.SeekPosition, n
	}

	if err := r.engine.Seek(r.handle, typ, pos); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Println("OK")
}

func (r *REPL) cmdGet() {
	data, err := r.engine.GetEntry(r.handle)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Printf("%q\n", string(data))
}

func (r *REPL) cmdLen() {
	n, err := r.engine.GetLength(r.handle)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Printf("Entries: %d\n", n)
}

func (r *REPL) cmdInfo() {
	infos, err := r.engine.List()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	for _, info := range infos {
		if info.Name != r.name {
			continue
		}

		fmt.Printf("Name:       %s\n", info.Name)
		fmt.Printf("Entries:    %d/%d\n", info.NumOfEntries, info.MaxEntries)
		fmt.Printf("Flags:      0x%04x\n", uint16(info.Flags))

		return
	}

	fmt.Println("(queue not found)")
}

func (r *REPL) cmdClose() {
	if r.closed {
		return
	}

	if err := r.engine.Close(r.handle); err != nil {
		fmt.Printf("Error closing: %v\n", err)
		return
	}

	r.closed = true

	fmt.Println("Bye!")
}
