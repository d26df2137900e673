//go:build !linux

package mpris

import "go.uber.org/zap"

// Adapter is a no-op on non-Linux platforms.
type Adapter struct{}

// New returns a no-op adapter on non-Linux platforms.
func New(func(Command), *zap.Logger) (*Adapter, error) {
	return &Adapter{}, nil
}

// Publish is a no-op on non-Linux platforms.
func (a *Adapter) Publish(Snapshot) {}

// Close is a no-op on non-Linux platforms.
func (a *Adapter) Close() error {
	return nil
}
