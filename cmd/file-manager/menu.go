package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/mainbong/file_manager/internal/terminal"
)

// runMenu drives the numbered menu until the user exits or input ends.
func runMenu(in io.Reader, out io.Writer, a *app) error {
	reader := bufio.NewReader(in)
	r := terminal.NewRenderer(out)

	for {
		if a.session.Stale() {
			r.Warn("Current folder '%s' no longer exists. Use 12 to go up.", a.session.Dir())
		}
		printMenu(r, a.session.Dir())

		color.New(color.FgGreen).Fprint(out, "Enter command number: ")
		choice, err := readLine(reader)
		if err != nil {
			return finishMenu(out, r, err)
		}

		c, ok := lookupCommand(choice)
		if !ok {
			r.Warn("Invalid command. Please choose one of the listed options.")
			continue
		}
		if c.exit {
			r.Line("Program finished.")
			return nil
		}

		args := make([]string, 0, len(c.prompts))
		for _, prompt := range c.prompts {
			fmt.Fprint(out, prompt)
			value, err := readLine(reader)
			if err != nil {
				return finishMenu(out, r, err)
			}
			args = append(args, value)
		}

		outcome, entries := a.execute(c, args)
		if c.listing && outcome.OK() {
			r.Listing(a.session.Dir(), entries)
			continue
		}
		r.Outcome(outcome)
	}
}

func printMenu(r *terminal.Renderer, dir string) {
	r.Line("")
	r.Heading("Current folder: %s", dir)
	r.Line("Available commands:")
	for _, c := range commands {
		r.Line("%s. %s", c.key, c.label)
	}
}

func finishMenu(out io.Writer, r *terminal.Renderer, err error) error {
	if errors.Is(err, io.EOF) {
		fmt.Fprintln(out)
		r.Line("Program finished.")
		return nil
	}
	return fmt.Errorf("failed to read input: %w", err)
}

// readLine returns one line without its line terminator. A final line with
// no newline is returned as is; io.EOF is reported only when nothing is left.
func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
