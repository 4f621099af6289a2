// Package daemon runs the bard daemon: the bus server plus its optional
// config watcher and tray icon.
package daemon

import (
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/yettinmoor/bard/internal/bus"
	"github.com/yettinmoor/bard/internal/config"
	"github.com/yettinmoor/bard/internal/daemon/publish"
	"github.com/yettinmoor/bard/internal/daemon/server"
	"github.com/yettinmoor/bard/internal/daemon/tray"
	"github.com/yettinmoor/bard/internal/daemon/watcher"
	"github.com/yettinmoor/bard/internal/models"
)

// Options controls how the daemon runs.
type Options struct {
	// ConfigPath is the bar config file. Empty means the default location.
	ConfigPath string
	// Tray shows a system tray icon mirroring the bar.
	Tray bool
	// Watch restarts the daemon whenever the config file changes.
	Watch bool
	// LogFile receives a copy of the log in addition to stderr.
	LogFile string
}

// Run starts the daemon and blocks until it receives SIGINT or SIGTERM, the
// tray's Quit item is clicked, or the bus connection is lost.
func Run(opts Options) error {
	configPath, err := config.ResolveBarFile(opts.ConfigPath)
	if err != nil {
		return err
	}

	closeLog, err := setupLogging(opts.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	if err := config.EnsureGlobalDir(); err != nil {
		return fmt.Errorf("failed to create global directory: %w", err)
	}

	if opts.Tray {
		log.Println("Running with system tray")
		return runWithTray(configPath, opts.Watch)
	}
	return runForeground(configPath, opts.Watch)
}

func setupLogging(path string) (func(), error) {
	log.SetPrefix("[bard] ")
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	if path == "" {
		return func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	log.SetOutput(io.MultiWriter(os.Stderr, f))
	return func() {
		log.SetOutput(os.Stderr)
		_ = f.Close()
	}, nil
}

// start creates the server, records daemon info and starts the watcher.
// afterRestart, if set, runs after each watcher-triggered restart once the
// server lock is released.
func start(configPath string, watch bool, resolve publish.Resolver, afterRestart func()) (*server.Server, *watcher.Watcher, error) {
	srv, err := server.New(configPath, resolve)
	if err != nil {
		return nil, nil, err
	}

	info := models.NewDaemonInfo(bus.Name, configPath, os.Getpid())
	if err := config.SaveDaemonInfo(info); err != nil {
		log.Printf("Failed to write daemon info: %v", err)
	}

	var w *watcher.Watcher
	if watch {
		w, err = watcher.New(configPath, func() {
			log.Printf("[watcher] %s changed, restarting", configPath)
			_ = srv.Restart()
			if afterRestart != nil {
				afterRestart()
			}
		})
		if err == nil {
			err = w.Start()
		}
		if err != nil {
			log.Printf("Failed to watch %s: %v", configPath, err)
			w = nil
		}
	}

	log.Printf("Daemon started as %s (PID %d)", bus.Name, os.Getpid())
	return srv, w, nil
}

// stop tears down what start created.
func stop(srv *server.Server, w *watcher.Watcher) {
	if w != nil {
		w.Stop()
	}
	if srv != nil {
		srv.Stop()
	}
	if err := config.RemoveDaemonInfo(); err != nil {
		log.Printf("Failed to remove daemon info: %v", err)
	}
	log.Println("Daemon stopped")
}

// runForeground runs the daemon without a system tray, blocking on signals.
func runForeground(configPath string, watch bool) error {
	srv, w, err := start(configPath, watch, publish.Default, nil)
	if err != nil {
		return err
	}
	defer stop(srv, w)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		log.Printf("Received signal %v, shutting down...", sig)
		return nil
	case err := <-errCh:
		return err
	}
}

// runWithTray runs the daemon with a system tray icon on the calling
// goroutine, which must be the main one.
func runWithTray(configPath string, watch bool) error {
	var (
		srv      *server.Server
		w        *watcher.Watcher
		startErr error
	)

	onStart := func() {
		resolve := publish.With(publish.Default, tray.Publisher())
		srv, w, startErr = start(configPath, watch, resolve, tray.Refresh)
		if startErr != nil {
			tray.Quit()
			return
		}

		go func() {
			if err := srv.Serve(); err != nil {
				log.Printf("Server error: %v", err)
				tray.Quit()
			}
		}()

		go func() {
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			sig := <-sigCh
			log.Printf("Received signal %v, shutting down...", sig)
			tray.Quit()
		}()
	}

	onExit := func() {
		if srv != nil {
			stop(srv, w)
		}
	}

	tray.Run(&lazyState{getSrv: func() *server.Server { return srv }}, onStart, onExit)
	return startErr
}

// lazyState defers to the server's tray adapter once the server exists.
type lazyState struct {
	getSrv func() *server.Server
}

func (l *lazyState) Bar() string {
	if srv := l.getSrv(); srv != nil {
		return server.NewTrayState(srv).Bar()
	}
	return ""
}

func (l *lazyState) Problem() string {
	if srv := l.getSrv(); srv != nil {
		return server.NewTrayState(srv).Problem()
	}
	return ""
}

func (l *lazyState) UpdateAll() {
	if srv := l.getSrv(); srv != nil {
		server.NewTrayState(srv).UpdateAll()
	}
}

func (l *lazyState) Restart() {
	if srv := l.getSrv(); srv != nil {
		server.NewTrayState(srv).Restart()
	}
}

func (l *lazyState) RequestShutdown() {
	if srv := l.getSrv(); srv != nil {
		server.NewTrayState(srv).RequestShutdown()
	}
}
