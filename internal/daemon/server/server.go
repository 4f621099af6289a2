// Package server exposes the bar state on the D-Bus session bus.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"sync"
	"syscall"

	"github.com/godbus/dbus/v5"

	"github.com/yettinmoor/bard/internal/bus"
	"github.com/yettinmoor/bard/internal/daemon/bar"
	"github.com/yettinmoor/bard/internal/daemon/publish"
)

// ErrAlreadyRunning is returned when another process owns the bus name.
var ErrAlreadyRunning = errors.New("another bard daemon already owns " + bus.Name)

// Server is the daemon's D-Bus endpoint. It owns the only bar.State and
// serializes every operation on it: godbus runs each incoming call on its
// own goroutine, and the watcher and tray call in from theirs.
type Server struct {
	mu    sync.Mutex
	state *bar.State

	// ctx is cancelled by Stop so block commands still running are killed.
	ctx    context.Context
	cancel context.CancelFunc

	conn     *dbus.Conn
	done     chan struct{}
	stopOnce sync.Once
}

// New connects to the session bus, exports the control object, claims the
// well-known name and builds the state from configPath. The object is
// exported before the name is claimed. New fails with ErrAlreadyRunning
// rather than replacing a running daemon.
func New(configPath string, resolve publish.Resolver) (*Server, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to session bus: %w", err)
	}

	srv := newServer()
	srv.conn = conn

	claim := func() error {
		if err := export(conn, &object{srv: srv}); err != nil {
			return err
		}
		reply, err := conn.RequestName(bus.Name, dbus.NameFlagDoNotQueue)
		if err != nil {
			return fmt.Errorf("failed to request name %s: %w", bus.Name, err)
		}
		if reply != dbus.RequestNameReplyPrimaryOwner {
			return ErrAlreadyRunning
		}
		return nil
	}
	if err := srv.boot(claim, configPath, resolve); err != nil {
		srv.cancel()
		conn.Close()
		return nil, err
	}

	log.Printf("[server] serving %s at %s", bus.Name, bus.ObjectPath)
	return srv, nil
}

// boot runs claim and then builds the state, all under the state lock.
// Calls that arrive once claim has made the object reachable block until
// the first update and draw are done.
func (s *Server) boot(claim func() error, configPath string, resolve publish.Resolver) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := claim(); err != nil {
		return err
	}
	s.state = bar.New(s.ctx, configPath, resolve)
	return nil
}

func newServer() *Server {
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}
}

// Serve blocks until Stop is called or the bus connection drops.
func (s *Server) Serve() error {
	var lost <-chan struct{}
	if s.conn != nil {
		lost = s.conn.Context().Done()
	}
	select {
	case <-s.done:
		return nil
	case <-lost:
		return fmt.Errorf("session bus connection lost")
	}
}

// Stop releases the bus name and closes the connection. Block commands
// that are still running are killed.
func (s *Server) Stop() {
	s.stopOnce.Do(func() {
		s.cancel()
		if s.conn != nil {
			if _, err := s.conn.ReleaseName(bus.Name); err != nil {
				log.Printf("[server] failed to release %s: %v", bus.Name, err)
			}
			_ = s.conn.Close()
		}
		close(s.done)
	})
}

// ConfigPath returns the config file the state is built from.
func (s *Server) ConfigPath() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.ConfigPath()
}

// Update applies selectors under the state lock.
func (s *Server) Update(selectors []string) (bool, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Update(s.ctx, selectors)
}

// UpdateAll runs every block under the state lock.
func (s *Server) UpdateAll() (bool, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.UpdateAll(s.ctx)
}

// DrawBar renders and publishes the bar under the state lock.
func (s *Server) DrawBar() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.DrawBar(s.ctx)
}

// Restart rebuilds the state from its config file under the state lock.
func (s *Server) Restart() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Restart(s.ctx)
}

// Snapshot returns read-only state details for status displays.
func (s *Server) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := Snapshot{
		Ready:  s.state.Ready(),
		Bar:    s.state.LastBar(),
		Blocks: s.state.BlockNames(),
		Config: s.state.ConfigPath(),
	}
	if err := s.state.Err(); err != nil {
		snap.Problem = err.Error()
	}
	return snap
}

// Snapshot is a copy of the state's externally visible details.
type Snapshot struct {
	Ready   bool
	Bar     string
	Blocks  []string
	Config  string
	Problem string
}

// TrayState adapts a Server to the tray.DaemonState interface.
type TrayState struct {
	srv *Server
}

// NewTrayState creates a TrayState for the given server.
func NewTrayState(srv *Server) *TrayState {
	return &TrayState{srv: srv}
}

// Bar returns the last drawn bar.
func (t *TrayState) Bar() string {
	return t.srv.Snapshot().Bar
}

// Problem returns the config error while degraded.
func (t *TrayState) Problem() string {
	return t.srv.Snapshot().Problem
}

// UpdateAll runs every block and redraws.
func (t *TrayState) UpdateAll() {
	if ok, _ := t.srv.UpdateAll(); ok {
		_, _ = t.srv.DrawBar()
	}
}

// Restart reloads the config.
func (t *TrayState) Restart() {
	_ = t.srv.Restart()
}

// RequestShutdown sends SIGINT to the current process to trigger a graceful shutdown.
func (t *TrayState) RequestShutdown() {
	p, err := os.FindProcess(os.Getpid())
	if err != nil {
		return
	}
	_ = p.Signal(syscall.SIGINT)
}
