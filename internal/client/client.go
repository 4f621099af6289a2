// Package client drives a running bard daemon over the session bus.
package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/godbus/dbus/v5"

	"github.com/yettinmoor/bard/internal/bus"
)

// ErrDaemonNotRunning is returned when no daemon answers on the bus.
var ErrDaemonNotRunning = errors.New("could not find a running bard daemon")

// ErrDegraded is returned by DrawBar while the daemon's config is invalid.
var ErrDegraded = errors.New("bar unavailable")

// Bus errors that mean nobody is serving the name.
var notRunningErrors = map[string]bool{
	"org.freedesktop.DBus.Error.ServiceUnknown": true,
	"org.freedesktop.DBus.Error.NameHasNoOwner": true,
	"org.freedesktop.DBus.Error.NoReply":        true,
	"org.freedesktop.DBus.Error.Disconnected":   true,
	"org.freedesktop.DBus.Error.UnknownObject":  true,
}

// Client is a connection to the session bus addressed at the daemon.
type Client struct {
	conn *dbus.Conn
	obj  dbus.BusObject
}

// Dial connects to the session bus. It does not check that a daemon owns
// the name; the first call does.
func Dial(ctx context.Context) (*Client, error) {
	conn, err := dbus.ConnectSessionBus(dbus.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDaemonNotRunning, err)
	}
	return &Client{
		conn: conn,
		obj:  conn.Object(bus.Name, dbus.ObjectPath(bus.ObjectPath)),
	}, nil
}

// Close closes the bus connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// Running reports whether some process owns the daemon's bus name.
func (c *Client) Running(ctx context.Context) (bool, error) {
	var has bool
	err := c.conn.BusObject().
		CallWithContext(ctx, "org.freedesktop.DBus.NameHasOwner", 0, bus.Name).
		Store(&has)
	if err != nil {
		return false, classify(err)
	}
	return has, nil
}

// Update re-runs or sets the blocks named by selectors.
func (c *Client) Update(ctx context.Context, selectors []string) (bool, string, error) {
	if selectors == nil {
		selectors = []string{}
	}
	return c.callReport(ctx, bus.MethodUpdate, selectors)
}

// UpdateAll re-runs every block.
func (c *Client) UpdateAll(ctx context.Context) (bool, string, error) {
	return c.callReport(ctx, bus.MethodUpdateAll)
}

// DrawBar renders and publishes the bar, returning it.
func (c *Client) DrawBar(ctx context.Context) (string, error) {
	var bar string
	err := c.obj.CallWithContext(ctx, bus.Member(bus.MethodDrawBar), 0).Store(&bar)
	if err != nil {
		return "", classify(err)
	}
	return bar, nil
}

// Restart asks the daemon to reload its config. The call expects no reply,
// so the owner check is the only proof that anybody received it.
func (c *Client) Restart(ctx context.Context) error {
	running, err := c.Running(ctx)
	if err != nil {
		return err
	}
	if !running {
		return ErrDaemonNotRunning
	}
	call := c.obj.CallWithContext(ctx, bus.Member(bus.MethodRestart), dbus.FlagNoReplyExpected)
	if call.Err != nil {
		return classify(call.Err)
	}
	return nil
}

func (c *Client) callReport(ctx context.Context, method string, args ...interface{}) (bool, string, error) {
	var (
		ok     bool
		report string
	)
	err := c.obj.CallWithContext(ctx, bus.Member(method), 0, args...).Store(&ok, &report)
	if err != nil {
		return false, "", classify(err)
	}
	return ok, report, nil
}

// classify turns transport failures into ErrDaemonNotRunning and the
// daemon's degraded error into ErrDegraded. Anything else is returned as is.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: no reply in time", ErrDaemonNotRunning)
	}

	name, msg, ok := busError(err)
	if !ok {
		return err
	}
	switch {
	case name == bus.ErrorDegraded:
		return fmt.Errorf("%w: %s", ErrDegraded, msg)
	case notRunningErrors[name]:
		return fmt.Errorf("%w: %s", ErrDaemonNotRunning, msg)
	}
	return err
}

func busError(err error) (name, msg string, ok bool) {
	var e dbus.Error
	if errors.As(err, &e) {
		return e.Name, errorBody(e), true
	}
	var pe *dbus.Error
	if errors.As(err, &pe) && pe != nil {
		return pe.Name, errorBody(*pe), true
	}
	return "", "", false
}

func errorBody(e dbus.Error) string {
	if len(e.Body) > 0 {
		if s, ok := e.Body[0].(string); ok {
			return s
		}
	}
	return e.Name
}
