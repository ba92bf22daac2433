package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	flag "github.com/spf13/pflag"
)

// Run is dqctl's entry point. Returns the process exit code.
func Run(out, errOut io.Writer, args []string, env map[string]string) int {
	globalFlags := flag.NewFlagSet("dqctl", flag.ContinueOnError)
	globalFlags.SetInterspersed(false)
	globalFlags.Usage = func() {}
	globalFlags.SetOutput(&strings.Builder{})

	flagHelp := globalFlags.BoolP("help", "h", false, "Show help")
	flagCwd := globalFlags.StringP("cwd", "C", "", "Run as if started in `dir`")
	flagConfig := globalFlags.StringP("config", "c", "", "Use specified config `file`")
	flagQueueRoot := globalFlags.String("queue-root", "", "Override queue root `directory`")

	if err := globalFlags.Parse(args[1:]); err != nil {
		fprintln(errOut, "error:", err)
		printGlobalOptions(errOut)

		return 1
	}

	if globalFlags.Changed("queue-root") && *flagQueueRoot == "" {
		fprintln(errOut, "error:", errQueueRootEmpty)
		printGlobalOptions(errOut)

		return 1
	}

	workDir := *flagCwd
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			fprintln(errOut, "error:", err)
			return 1
		}

		workDir = wd
	}

	envSlice := make([]string, 0, len(env))
	for k, v := range env {
		envSlice = append(envSlice, k+"="+v)
	}

	cfg, _, err := LoadConfig(workDir, *flagConfig, Config{QueueRoot: *flagQueueRoot}, globalFlags.Changed("queue-root"), envSlice)
	if err != nil {
		fprintln(errOut, "error:", err)
		printGlobalOptions(errOut)

		return 1
	}

	commands := allCommands(cfg, workDir)

	commandMap := make(map[string]*Command, len(commands))
	for _, cmd := range commands {
		commandMap[cmd.Name()] = cmd
	}

	commandAndArgs := globalFlags.Args()

	if *flagHelp || (len(commandAndArgs) == 0 && globalFlags.NFlag() == 0) {
		printUsage(out, commands)
		return 0
	}

	if len(commandAndArgs) == 0 {
		fprintln(errOut, "error: no command provided")
		printUsage(errOut, commands)

		return 1
	}

	cmdName := commandAndArgs[0]

	cmd, ok := commandMap[cmdName]
	if !ok {
		fprintln(errOut, "error: unknown command:", cmdName)
		printUsage(errOut, commands)

		return 1
	}

	cmdIO := NewIO(out, errOut)

	return cmd.Run(context.Background(), cmdIO, commandAndArgs[1:])
}

func allCommands(cfg Config, workDir string) []*Command {
	return []*Command{
		CreateCmd(cfg),
		DestroyCmd(cfg),
		OpenCmd(cfg),
		EnqueueCmd(cfg),
		DequeueCmd(cfg),
		SeekCmd(cfg),
		GetCmd(cfg),
		LenCmd(cfg),
		LsCmd(cfg),
		ConfigCmd(cfg, workDir),
	}
}

func fprintln(w io.Writer, a ...any) {
	_, _ = fmt.Fprintln(w, a...)
}

const globalOptionsHelp = `  -h, --help              Show help
  -C, --cwd <dir>         Run as if started in <dir>
  -c, --config <file>     Use specified config file
  --queue-root <dir>      Override queue root directory`

func printGlobalOptions(w io.Writer) {
	fprintln(w, "Usage: dqctl [flags] <command> [args]")
	fprintln(w)
	fprintln(w, "Global flags:")
	fprintln(w, globalOptionsHelp)
	fprintln(w)
	fprintln(w, "Run 'dqctl --help' for a list of commands.")
}

func printUsage(w io.Writer, commands []*Command) {
	fprintln(w, "dqctl - manage file-backed FIFO data queues")
	fprintln(w)
	fprintln(w, "Usage: dqctl [flags] <command> [args]")
	fprintln(w)
	fprintln(w, "Flags:")
	fprintln(w, globalOptionsHelp)
	fprintln(w)
	fprintln(w, "Commands:")

	for _, cmd := range commands {
		fprintln(w, cmd.HelpLine())
	}
}
