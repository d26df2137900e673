//go:build !linux

package notify

// New returns a disabled notifier; desktop notifications need D-Bus.
func New() (Notifier, error) {
	return nop{}, nil
}
