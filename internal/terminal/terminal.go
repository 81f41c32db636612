package terminal

import (
	"os"

	"github.com/mattn/go-isatty"
)

// HasTTY reports whether both stdin and stdout are connected to a terminal.
func HasTTY() bool {
	return IsTerminal(os.Stdin) && IsTerminal(os.Stdout)
}

// IsTerminal reports whether file is a terminal, including Cygwin and MSYS
// pseudo terminals on Windows.
func IsTerminal(file *os.File) bool {
	if file == nil {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
