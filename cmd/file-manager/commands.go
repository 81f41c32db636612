package main

import (
	"strings"

	"github.com/mainbong/file_manager/internal/history"
	"github.com/mainbong/file_manager/internal/logger"
	"github.com/mainbong/file_manager/internal/workdir"
)

// command is one menu entry shared by the plain menu and the TUI.
type command struct {
	key     string
	label   string
	prompts []string
	run     func(s *workdir.Session, args []string) workdir.Outcome
	listing bool
	exit    bool
}

var commands = []command{
	{
		key:     "1",
		label:   "Create folder",
		prompts: []string{"Enter the name of the new folder: "},
		run: func(s *workdir.Session, args []string) workdir.Outcome {
			return s.CreateFolder(args[0])
		},
	},
	{
		key:     "2",
		label:   "Delete folder",
		prompts: []string{"Enter the name of the folder to delete: "},
		run: func(s *workdir.Session, args []string) workdir.Outcome {
			return s.DeleteFolder(args[0])
		},
	},
	{
		key:     "3",
		label:   "Enter folder",
		prompts: []string{"Enter the name of the folder to open: "},
		run: func(s *workdir.Session, args []string) workdir.Outcome {
			return s.Enter(args[0])
		},
	},
	{
		key:     "4",
		label:   "Create file",
		prompts: []string{"Enter the name of the new file: "},
		run: func(s *workdir.Session, args []string) workdir.Outcome {
			return s.CreateFile(args[0])
		},
	},
	{
		key:     "5",
		label:   "Write text to file",
		prompts: []string{"Enter the name of the file to write to: ", "Enter the text: "},
		run: func(s *workdir.Session, args []string) workdir.Outcome {
			return s.WriteText(args[0], args[1])
		},
	},
	{
		key:     "6",
		label:   "View file contents",
		prompts: []string{"Enter the name of the file to view: "},
		run: func(s *workdir.Session, args []string) workdir.Outcome {
			return s.ReadFile(args[0])
		},
	},
	{
		key:     "7",
		label:   "Delete file",
		prompts: []string{"Enter the name of the file to delete: "},
		run: func(s *workdir.Session, args []string) workdir.Outcome {
			return s.DeleteFile(args[0])
		},
	},
	{
		key:     "8",
		label:   "Copy file",
		prompts: []string{"Enter the name of the file to copy: ", "Enter the destination folder: "},
		run: func(s *workdir.Session, args []string) workdir.Outcome {
			return s.Copy(args[0], args[1])
		},
	},
	{
		key:     "9",
		label:   "Move file",
		prompts: []string{"Enter the name of the file to move: ", "Enter the destination folder: "},
		run: func(s *workdir.Session, args []string) workdir.Outcome {
			return s.Move(args[0], args[1])
		},
	},
	{
		key:     "10",
		label:   "Rename file",
		prompts: []string{"Enter the current file name: ", "Enter the new file name: "},
		run: func(s *workdir.Session, args []string) workdir.Outcome {
			return s.Rename(args[0], args[1])
		},
	},
	{
		key:   "11",
		label: "Exit",
		exit:  true,
	},
	{
		key:   "12",
		label: "Go up one level",
		run: func(s *workdir.Session, args []string) workdir.Outcome {
			return s.Up()
		},
	},
	{
		key:     "13",
		label:   "List current folder",
		listing: true,
	},
}

func lookupCommand(key string) (command, bool) {
	key = strings.TrimSpace(key)
	for _, c := range commands {
		if c.key == key {
			return c, true
		}
	}
	return command{}, false
}

// app ties a session to the journal and display options.
type app struct {
	session    *workdir.Session
	journal    *history.Manager
	showHidden bool
}

// execute runs c, logs the outcome and records it in the journal.
func (a *app) execute(c command, args []string) (workdir.Outcome, []workdir.Entry) {
	dir := a.session.Dir()

	var (
		outcome workdir.Outcome
		entries []workdir.Entry
	)
	if c.listing {
		entries, outcome = a.session.List(a.showHidden)
	} else {
		outcome = c.run(a.session, args)
	}

	logOutcome(dir, outcome, args)

	if a.journal != nil {
		a.journal.Record(dir, outcome, args...)
		if err := a.journal.Save(""); err != nil {
			logger.Warn("Failed to save journal: %v", err)
		}
	}

	return outcome, entries
}

func logOutcome(dir string, o workdir.Outcome, args []string) {
	switch o.Kind {
	case workdir.Success:
		logger.Info("%s %q in %s: %s", o.Op, args, dir, o.Message)
	case workdir.Failure:
		logger.Error("%s %q in %s: %s", o.Op, args, dir, o.Message)
	default:
		logger.Warn("%s %q in %s: %s (%s)", o.Op, args, dir, o.Message, o.Kind)
	}
}
