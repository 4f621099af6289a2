package server

import (
	"errors"
	"fmt"
	"log"

	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/introspect"

	"github.com/yettinmoor/bard/internal/bus"
	"github.com/yettinmoor/bard/internal/daemon/bar"
)

// object is the value exported at bus.ObjectPath. Its Go method names are
// mapped to the lower-case wire names by export.
type object struct {
	srv *Server
}

func (o *object) Update(selectors []string) (bool, string, *dbus.Error) {
	ok, report := o.srv.Update(selectors)
	return ok, report, nil
}

func (o *object) UpdateAll() (bool, string, *dbus.Error) {
	ok, report := o.srv.UpdateAll()
	return ok, report, nil
}

func (o *object) DrawBar() (string, *dbus.Error) {
	s, err := o.srv.DrawBar()
	if err != nil {
		if errors.Is(err, bar.ErrDegraded) {
			return "", dbus.NewError(bus.ErrorDegraded, []interface{}{err.Error()})
		}
		return "", dbus.MakeFailedError(err)
	}
	return s, nil
}

func (o *object) Restart() *dbus.Error {
	if err := o.srv.Restart(); err != nil {
		log.Printf("[server] restart left daemon degraded: %v", err)
	}
	return nil
}

var methodNames = map[string]string{
	"Update":    bus.MethodUpdate,
	"UpdateAll": bus.MethodUpdateAll,
	"DrawBar":   bus.MethodDrawBar,
	"Restart":   bus.MethodRestart,
}

// introspection describes the exported interface for tools like busctl.
var introspection = &introspect.Node{
	Name: bus.ObjectPath,
	Interfaces: []introspect.Interface{
		introspect.IntrospectData,
		{
			Name: bus.Interface,
			Methods: []introspect.Method{
				{
					Name: bus.MethodUpdate,
					Args: []introspect.Arg{
						{Name: "blocks", Type: "as", Direction: "in"},
						{Name: "ok", Type: "b", Direction: "out"},
						{Name: "reply", Type: "s", Direction: "out"},
					},
				},
				{
					Name: bus.MethodUpdateAll,
					Args: []introspect.Arg{
						{Name: "ok", Type: "b", Direction: "out"},
						{Name: "reply", Type: "s", Direction: "out"},
					},
				},
				{
					Name: bus.MethodDrawBar,
					Args: []introspect.Arg{
						{Name: "bar", Type: "s", Direction: "out"},
					},
				},
				{Name: bus.MethodRestart},
			},
		},
	},
}

func export(conn *dbus.Conn, obj *object) error {
	if err := conn.ExportWithMap(obj, methodNames, bus.ObjectPath, bus.Interface); err != nil {
		return fmt.Errorf("failed to export %s: %w", bus.ObjectPath, err)
	}
	if err := conn.Export(introspect.NewIntrospectable(introspection), bus.ObjectPath,
		"org.freedesktop.DBus.Introspectable"); err != nil {
		return fmt.Errorf("failed to export introspection: %w", err)
	}
	return nil
}
