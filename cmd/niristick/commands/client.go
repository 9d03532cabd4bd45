package commands

import (
	"bufio"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/calbryant/niristick/internal/config"
	"github.com/calbryant/niristick/internal/printer"
	"github.com/calbryant/niristick/pkg/protocol"
)

const (
	dialTimeout  = 3 * time.Second
	replyTimeout = 30 * time.Second
)

// send dials the daemon socket, writes one request line, and returns the
// one response line without its trailing newline.
func send(req *protocol.Request) (string, error) {
	path := socketFlag
	if path == "" {
		path = config.Default().SocketPath
	}

	conn, err := net.DialTimeout("unix", path, dialTimeout)
	if err != nil {
		return "", fmt.Errorf("cannot reach niristickd at %s (is the daemon running?): %w", path, err)
	}
	defer conn.Close()
	_ = conn.SetDeadline(time.Now().Add(replyTimeout))

	if _, err := fmt.Fprintf(conn, "%s\n", req.Encode()); err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}

	reply, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil && reply == "" {
		return "", fmt.Errorf("read response: %w", err)
	}
	return strings.TrimRight(reply, "\n"), nil
}

// runRequest sends the request and prints the outcome: data and success
// lines to stdout, Error: lines in red with a non-zero exit.
func runRequest(req *protocol.Request, isData bool) error {
	reply, err := send(req)
	if err != nil {
		return err
	}
	if rest, ok := strings.CutPrefix(reply, protocol.ErrorPrefix); ok {
		return printer.Error("%s", rest)
	}
	if isData {
		printer.Info("%s\n", reply)
	} else {
		printer.Success("%s\n", reply)
	}
	return nil
}

// parseWindowID parses a decimal window id argument.
func parseWindowID(arg string) (uint64, error) {
	id, err := strconv.ParseUint(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid window id %q", arg)
	}
	return id, nil
}
