//go:build !windows

// Package stderr captures output that C audio backends (ALSA, minimp3) write
// directly to file descriptor 2, so it ends up in the log instead of over the
// TUI.
package stderr

import (
	"os"
	"syscall"

	"go.uber.org/zap"
)

// Capture holds a running redirection of fd 2.
type Capture struct {
	origStderr int
	pipeRead   *os.File
	pipeWrite  *os.File
	done       chan struct{}
}

// Start redirects stderr into logger. Call it before the audio backend is
// initialised. On error nothing is redirected and the program can continue.
func Start(logger *zap.Logger) (*Capture, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	r, w, err := os.Pipe()
	if err != nil {
		return nil, err
	}

	// Save original stderr file descriptor
	orig, err := syscall.Dup(int(os.Stderr.Fd()))
	if err != nil {
		r.Close()
		w.Close()
		return nil, err
	}

	// Redirect stderr (fd 2) to the pipe's write end
	if err := syscall.Dup2(int(w.Fd()), int(os.Stderr.Fd())); err != nil {
		syscall.Close(orig)
		r.Close()
		w.Close()
		return nil, err
	}

	c := &Capture{
		origStderr: orig,
		pipeRead:   r,
		pipeWrite:  w,
		done:       make(chan struct{}),
	}
	go func() {
		defer close(c.done)
		forward(r, logger.Named("stderr"))
	}()
	return c, nil
}

// WriteOriginal writes to the terminal's stderr, bypassing the capture.
func (c *Capture) WriteOriginal(msg string) {
	if c == nil {
		_, _ = os.Stderr.WriteString(msg)
		return
	}
	_, _ = syscall.Write(c.origStderr, []byte(msg))
}

// Stop restores the original stderr and waits for pending lines to be logged.
func (c *Capture) Stop() {
	if c == nil {
		return
	}
	_ = syscall.Dup2(c.origStderr, int(os.Stderr.Fd()))
	_ = syscall.Close(c.origStderr)

	c.pipeWrite.Close()
	<-c.done
	c.pipeRead.Close()
}
