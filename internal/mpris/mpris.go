// Package mpris exposes the player on the MPRIS D-Bus interface so desktop
// media keys and widgets can control it.
//
// D-Bus calls arrive on their own goroutines. Reads are served from the last
// published Snapshot; control calls are turned into Commands that the caller
// applies on its event loop.
package mpris

import (
	"sync"
	"time"

	"github.com/llehouerou/lofi/internal/playback"
)

// CommandKind identifies a control request.
type CommandKind int

const (
	CmdPlayPause CommandKind = iota
	CmdPlay
	CmdPause
	CmdSeek        // relative, Offset
	CmdSetPosition // absolute, Position
	CmdSetLoop     // Loop
	CmdSetVolume   // Volume in [0, 1]
)

// Command is a control request from the desktop.
type Command struct {
	Kind     CommandKind
	Offset   time.Duration
	Position time.Duration
	Loop     bool
	Volume   float64
}

// Snapshot is the player state exposed over D-Bus.
type Snapshot struct {
	Status   playback.Status
	Title    string
	Artist   string
	Cover    string
	Load     uint64 // generation of the loaded source, identifies the track
	Position time.Duration
	Duration time.Duration
	Looping  bool
	Volume   float64 // percent
}

// state holds the published snapshot and forwards commands.
type state struct {
	mu   sync.Mutex
	snap Snapshot
	send func(Command)
}

func (s *state) publish(snap Snapshot) {
	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()
}

func (s *state) current() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap
}

func (s *state) dispatch(c Command) {
	if s.send != nil {
		s.send(c)
	}
}
