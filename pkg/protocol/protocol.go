// Package protocol defines the line-oriented wire protocol spoken between
// the niristick CLI and the niristickd daemon. One request line per
// connection, one response line back.
//
// Requests are plain text: the command verb, then either a decimal window id
// or one of the --all / --list / --active selectors. Responses are a human
// success message, a rendering of a window id set, or a line prefixed with
// "Error: ".
package protocol

import (
	"fmt"
	"strconv"
	"strings"
)

// Command is a wire request verb.
type Command string

const (
	CommandAdd          Command = "add"
	CommandRemove       Command = "remove"
	CommandList         Command = "list"
	CommandToggleActive Command = "toggle_active"
	CommandStage        Command = "stage"
	CommandUnstage      Command = "unstage"
)

// Request is one parsed wire request. For stage and unstage exactly one of
// the selector fields (HasWindowID, All, List, Active) is set.
type Request struct {
	Command  Command
	WindowID uint64

	HasWindowID bool
	All         bool
	List        bool
	Active      bool
}

// ParseRequest parses one trimmed request line. A parse error means the
// request is malformed; the server answers with an Error: line and closes
// the connection.
func ParseRequest(line string) (*Request, error) {
	fields := strings.Fields(strings.TrimSpace(line))
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty request")
	}

	cmd, args := Command(fields[0]), fields[1:]
	switch cmd {
	case CommandAdd, CommandRemove:
		id, err := parseWindowID(args)
		if err != nil {
			return nil, err
		}
		return &Request{Command: cmd, WindowID: id, HasWindowID: true}, nil

	case CommandList, CommandToggleActive:
		return &Request{Command: cmd}, nil

	case CommandStage:
		return parseSelector(cmd, args, true)

	case CommandUnstage:
		return parseSelector(cmd, args, false)

	default:
		return nil, fmt.Errorf("unknown command %q", fields[0])
	}
}

func parseWindowID(args []string) (uint64, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("missing window id")
	}
	id, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid window id %q", args[0])
	}
	return id, nil
}

func parseSelector(cmd Command, args []string, allowList bool) (*Request, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("missing argument for %s", cmd)
	}
	switch args[0] {
	case "--all":
		return &Request{Command: cmd, All: true}, nil
	case "--list":
		if !allowList {
			return nil, fmt.Errorf("unknown argument %q for %s", args[0], cmd)
		}
		return &Request{Command: cmd, List: true}, nil
	case "--active":
		return &Request{Command: cmd, Active: true}, nil
	default:
		id, err := parseWindowID(args)
		if err != nil {
			return nil, err
		}
		return &Request{Command: cmd, WindowID: id, HasWindowID: true}, nil
	}
}

// Encode renders the request as its wire line, without the trailing newline.
func (r *Request) Encode() string {
	switch {
	case r.HasWindowID:
		return fmt.Sprintf("%s %d", r.Command, r.WindowID)
	case r.All:
		return fmt.Sprintf("%s --all", r.Command)
	case r.List:
		return fmt.Sprintf("%s --list", r.Command)
	case r.Active:
		return fmt.Sprintf("%s --active", r.Command)
	default:
		return string(r.Command)
	}
}

// Response is one wire response line.
type Response struct {
	isError bool
	text    string
}

// Success builds a plain success response.
func Success(format string, a ...any) Response {
	return Response{text: fmt.Sprintf(format, a...)}
}

// Data builds a data response carrying a rendered value.
func Data(text string) Response {
	return Response{text: text}
}

// Errorf builds an error response. On the wire it carries the "Error: "
// prefix the CLI keys on.
func Errorf(format string, a ...any) Response {
	return Response{isError: true, text: fmt.Sprintf(format, a...)}
}

// IsError reports whether the response is an error line.
func (r Response) IsError() bool { return r.isError }

// String renders the response line without the trailing newline.
func (r Response) String() string {
	if r.isError {
		return "Error: " + r.text
	}
	return r.text
}

// ErrorPrefix is the marker the CLI uses to recognise error responses.
const ErrorPrefix = "Error: "

// FormatWindowList renders a window id set for a data response, e.g. "[5 9]".
func FormatWindowList(ids []uint64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatUint(id, 10)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
