package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// errExit ends the REPL.
var errExit = errors.New("exit requested")

type command struct {
	usage string
	run   func(ctx context.Context, args []string) error
}

type commandTable map[string]command

// help lists the commands in a stable order.
func (t commandTable) help() string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("Available commands:\n")
	for _, name := range names {
		fmt.Fprintf(&b, "  %-10s %s\n", name, t[name].usage)
	}
	return strings.TrimRight(b.String(), "\n")
}

// runREPL reads commands from in and dispatches them through table until EOF
// or a command returns errExit. Command errors have already been reported to
// the user by the handlers, so they never stop the loop.
func runREPL(ctx context.Context, table commandTable, statusFn func() string, in LineReader) {
	for {
		if ctx.Err() != nil {
			return
		}
		line, err := in.ReadLine(fmt.Sprintf("carpark%s> ", statusFn()))
		if err != nil {
			if errors.Is(err, io.EOF) {
				printlnFn("Bye!")
			}
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		name, args := strings.ToLower(parts[0]), parts[1:]

		if name == "help" {
			printlnFn(table.help())
			continue
		}

		cmd, ok := table[name]
		if !ok {
			printlnFn("Unknown command:", name)
			continue
		}

		if err := cmd.run(ctx, args); errors.Is(err, errExit) {
			printlnFn("Bye!")
			return
		}
	}
}
