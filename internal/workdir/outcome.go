package workdir

import "fmt"

// Kind classifies the result of a Session operation.
type Kind int

const (
	Success Kind = iota
	NotFound
	AlreadyExists
	// AtRoot is reported by Up when the working directory has no parent.
	AtRoot
	Failure
)

var kindNames = map[Kind]string{
	Success:       "success",
	NotFound:      "not_found",
	AlreadyExists: "already_exists",
	AtRoot:        "at_root",
	Failure:       "failure",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind maps the String form back to a Kind. Unknown names map to
// Failure with ok set to false.
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return k, true
		}
	}
	return Failure, false
}

// Op identifies a Session operation.
type Op string

const (
	OpCreateFolder Op = "create_folder"
	OpDeleteFolder Op = "delete_folder"
	OpEnter        Op = "enter"
	OpUp           Op = "up"
	OpCreateFile   Op = "create_file"
	OpWriteText    Op = "write_text"
	OpReadFile     Op = "read_file"
	OpDeleteFile   Op = "delete_file"
	OpCopy         Op = "copy"
	OpMove         Op = "move"
	OpRename       Op = "rename"
	OpList         Op = "list"
)

// Outcome is what every Session operation returns in place of an error.
type Outcome struct {
	Op      Op
	Kind    Kind
	Name    string
	Message string
	// Content holds the file text for a successful ReadFile.
	Content string
	// Err carries the underlying cause of a Failure.
	Err error
}

// OK reports whether the operation succeeded.
func (o Outcome) OK() bool {
	return o.Kind == Success
}

func (o Outcome) String() string {
	return o.Message
}

func succeeded(op Op, name, format string, args ...interface{}) Outcome {
	return Outcome{Op: op, Kind: Success, Name: name, Message: fmt.Sprintf(format, args...)}
}

func condition(op Op, kind Kind, name, format string, args ...interface{}) Outcome {
	return Outcome{Op: op, Kind: kind, Name: name, Message: fmt.Sprintf(format, args...)}
}

func failed(op Op, name string, err error, format string, args ...interface{}) Outcome {
	return Outcome{
		Op:      op,
		Kind:    Failure,
		Name:    name,
		Message: fmt.Sprintf("%s: %v", fmt.Sprintf(format, args...), err),
		Err:     err,
	}
}
