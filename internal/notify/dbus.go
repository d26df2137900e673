//go:build linux

package notify

import (
	"fmt"

	"github.com/godbus/dbus/v5"
)

const (
	busName   = "org.freedesktop.Notifications"
	busPath   = dbus.ObjectPath("/org/freedesktop/Notifications")
	notifyRPC = busName + ".Notify"
)

type busNotifier struct {
	obj dbus.BusObject
}

// New connects to the session bus. Without one, a disabled notifier is
// returned together with the connection error.
func New() (Notifier, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return nop{}, fmt.Errorf("session bus: %w", err)
	}
	return &busNotifier{obj: conn.Object(busName, busPath)}, nil
}

func (b *busNotifier) Notify(n Notification) (uint32, error) {
	hints := map[string]dbus.Variant{
		"urgency":       dbus.MakeVariant(byte(n.Urgency)),
		"desktop-entry": dbus.MakeVariant(appName),
	}
	if n.Category != "" {
		hints["category"] = dbus.MakeVariant(n.Category)
	}

	// app_name, replaces_id, app_icon, summary, body, actions, hints, expire_timeout
	call := b.obj.Call(notifyRPC, 0,
		appName, n.ReplacesID, n.Icon, n.Title, n.Body,
		[]string{}, hints, int32(n.Timeout.Milliseconds()),
	)
	var id uint32
	if err := call.Store(&id); err != nil {
		return 0, fmt.Errorf("notify: %w", err)
	}
	return id, nil
}
