// Package bus holds the D-Bus names shared by the bard daemon and its clients.
package bus

const (
	// Name is the well-known bus name owned by the running daemon.
	Name = "xyz.yettinmoor.bard"

	// ObjectPath is the path the daemon exports its object under.
	ObjectPath = "/xyz/yettinmoor/bard"

	// Interface is the interface carrying the four control methods.
	Interface = "xyz.yettinmoor.bard"
)

// Method names on Interface.
const (
	MethodUpdate    = "update"
	MethodUpdateAll = "update_all"
	MethodDrawBar   = "draw_bar"
	MethodRestart   = "restart"
)

// ErrorDegraded is the D-Bus error name returned by draw_bar while the
// daemon's configuration is invalid.
const ErrorDegraded = Interface + ".Error.Degraded"

// Member returns the fully qualified method name for use in proxy calls.
func Member(method string) string {
	return Interface + "." + method
}
