// Package server accepts client connections on the control socket and
// dispatches one request per connection to the transition engine.
package server

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/calbryant/niristick/internal/compositor"
	"github.com/calbryant/niristick/internal/engine"
	"github.com/calbryant/niristick/pkg/protocol"
)

// connTimeout bounds the whole read-dispatch-write exchange for one client
// connection, including the compositor round trips it triggers.
const connTimeout = 30 * time.Second

// Server owns the control socket. One goroutine per accepted connection;
// all shared state lives behind the engine.
type Server struct {
	socketPath string
	engine     *engine.Engine
}

// New creates a server listening on the given unix socket path.
func New(socketPath string, eng *engine.Engine) *Server {
	return &Server{socketPath: socketPath, engine: eng}
}

// Run listens and serves until the context is cancelled. A stale socket
// file from a previous run is removed before listening.
func (s *Server) Run(ctx context.Context) error {
	_ = os.Remove(s.socketPath)
	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.socketPath, err)
	}
	defer os.Remove(s.socketPath)

	go func() {
		<-ctx.Done()
		listener.Close()
	}()

	log.Printf("[Server] Listening on %s", s.socketPath)
	for {
		conn, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil {
				log.Printf("[Server] Shutting down...")
				return nil
			}
			return fmt.Errorf("accept: %w", err)
		}
		go s.handle(ctx, conn)
	}
}

// handle serves one connection: read one line, dispatch, write one line.
func (s *Server) handle(ctx context.Context, conn net.Conn) {
	defer conn.Close()
	connID := uuid.NewString()[:8]
	_ = conn.SetDeadline(time.Now().Add(connTimeout))

	line, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		log.Printf("[Server] conn %s: read: %v", connID, err)
		return
	}
	if line == "" {
		return
	}

	var resp protocol.Response
	req, err := protocol.ParseRequest(line)
	if err != nil {
		resp = protocol.Errorf("%v", err)
	} else {
		resp = s.dispatch(ctx, connID, req)
	}

	if _, err := io.WriteString(conn, resp.String()+"\n"); err != nil {
		log.Printf("[Server] conn %s: write: %v", connID, err)
	}
}

func (s *Server) dispatch(ctx context.Context, connID string, req *protocol.Request) protocol.Response {
	log.Printf("[Server] conn %s: %s", connID, req.Encode())

	switch req.Command {
	case protocol.CommandAdd:
		added, err := s.engine.Add(ctx, compositor.WindowID(req.WindowID))
		if err != nil {
			return protocol.Errorf("%v", err)
		}
		if added {
			return protocol.Success("Added")
		}
		return protocol.Success("Already in sticky list")

	case protocol.CommandRemove:
		removed, err := s.engine.Remove(ctx, compositor.WindowID(req.WindowID))
		if err != nil {
			return protocol.Errorf("%v", err)
		}
		if removed {
			return protocol.Success("Removed")
		}
		return protocol.Success("Not in sticky list")

	case protocol.CommandList:
		ids, err := s.engine.ListSticky(ctx)
		if err != nil {
			return protocol.Errorf("%v", err)
		}
		return protocol.Data(protocol.FormatWindowList(rawIDs(ids)))

	case protocol.CommandToggleActive:
		added, err := s.engine.ToggleActive(ctx)
		if err != nil {
			return protocol.Errorf("%v", err)
		}
		if added {
			return protocol.Success("Added active window to sticky")
		}
		return protocol.Success("Removed active window from sticky")

	case protocol.CommandStage:
		return s.dispatchStage(ctx, req)

	case protocol.CommandUnstage:
		return s.dispatchUnstage(ctx, req)
	}

	return protocol.Errorf("unknown command %q", req.Command)
}

func (s *Server) dispatchStage(ctx context.Context, req *protocol.Request) protocol.Response {
	switch {
	case req.All:
		count, err := s.engine.StageAll(ctx)
		if err != nil {
			return protocol.Errorf("%v", err)
		}
		return protocol.Success("Staged %d windows", count)

	case req.List:
		return protocol.Data(protocol.FormatWindowList(rawIDs(s.engine.ListStaged())))

	case req.Active:
		staged, err := s.engine.ToggleStageActive(ctx)
		if err != nil {
			return protocol.Errorf("%v", err)
		}
		if staged {
			return protocol.Success("Staged active window")
		}
		return protocol.Success("Unstaged active window")

	case req.HasWindowID:
		if err := s.engine.Stage(ctx, compositor.WindowID(req.WindowID)); err != nil {
			return protocol.Errorf("%v", err)
		}
		return protocol.Success("Staged window")
	}

	return protocol.Errorf("invalid stage command")
}

// dispatchUnstage resolves the active workspace once, so every window of an
// unstage --all lands on the same workspace even if the user switches
// mid-operation.
func (s *Server) dispatchUnstage(ctx context.Context, req *protocol.Request) protocol.Response {
	ws, err := s.engine.ActiveWorkspace(ctx)
	if err != nil {
		return protocol.Errorf("%v", err)
	}

	switch {
	case req.All:
		count, err := s.engine.UnstageAll(ctx, ws)
		if err != nil {
			return protocol.Errorf("%v", err)
		}
		return protocol.Success("Unstaged %d windows", count)

	case req.Active:
		if err := s.engine.UnstageActive(ctx, ws); err != nil {
			return protocol.Errorf("%v", err)
		}
		return protocol.Success("Unstaged active window")

	case req.HasWindowID:
		if err := s.engine.Unstage(ctx, compositor.WindowID(req.WindowID), ws); err != nil {
			return protocol.Errorf("%v", err)
		}
		return protocol.Success("Unstaged window")
	}

	return protocol.Errorf("invalid unstage command")
}

func rawIDs(ids []compositor.WindowID) []uint64 {
	raw := make([]uint64, len(ids))
	for i, id := range ids {
		raw[i] = uint64(id)
	}
	return raw
}
