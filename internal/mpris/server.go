//go:build linux

package mpris

import (
	"github.com/quarckster/go-mpris-server/pkg/server"
	"go.uber.org/zap"
)

// Adapter connects the player to MPRIS over D-Bus.
type Adapter struct {
	state  *state
	server *server.Server
}

// New creates and starts the adapter. send receives desktop commands; it is
// called from D-Bus goroutines.
func New(send func(Command), logger *zap.Logger) (*Adapter, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	st := &state{send: send}
	a := &Adapter{
		state:  st,
		server: server.NewServer(identity, &rootAdapter{}, &playerAdapter{state: st}),
	}

	// Start the server in background
	go func() {
		if err := a.server.Listen(); err != nil {
			logger.Named("mpris").Warn("listen", zap.Error(err))
		}
	}()

	return a, nil
}

// Publish replaces the state served to D-Bus clients.
func (a *Adapter) Publish(s Snapshot) {
	a.state.publish(s)
}

// Close stops the adapter and releases D-Bus resources.
func (a *Adapter) Close() error {
	return a.server.Stop()
}
