// Command seatctl runs administrative tasks against a seatkeeper database.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
)

type command struct {
	name        string
	description string
	usage       string
	run         func(args []string) error
}

func (c *command) flagSet() *flag.FlagSet {
	fs := flag.NewFlagSet(c.name, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "%s\n\nUSAGE:\n    %s\n\nFLAGS:\n", c.description, c.usage)
		fs.PrintDefaults()
	}
	return fs
}

var commands = map[string]*command{}

func register(c *command) {
	commands[c.name] = c
}

func main() {
	register(importCommand())
	register(tokenCommand())

	if len(os.Args) < 2 {
		printHelp(os.Stderr)
		os.Exit(2)
	}

	switch os.Args[1] {
	case "help", "-h", "--help":
		printHelp(os.Stdout)
		return
	}

	cmd, ok := commands[os.Args[1]]
	if !ok {
		printHelp(os.Stderr)
		fmt.Fprintf(os.Stderr, "\nunknown command: %s\n", os.Args[1])
		os.Exit(2)
	}

	if err := cmd.run(os.Args[2:]); err != nil {
		fmt.Fprintf(os.Stderr, "seatctl %s: %v\n", cmd.name, err)
		os.Exit(1)
	}
}

func printHelp(w io.Writer) {
	fmt.Fprintln(w, "seatctl - seatkeeper administration")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "USAGE:")
	fmt.Fprintln(w, "    seatctl <command> [flags]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "COMMANDS:")

	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		fmt.Fprintf(w, "    %-8s %s\n", name, commands[name].description)
	}
}
