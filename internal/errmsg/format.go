// Package errmsg turns errors into the short messages shown in alerts.
package errmsg

import (
	"errors"
	"fmt"
	"io/fs"
)

// Op names what the user was trying to do.
type Op string

const (
	OpReadPayload     Op = "read audio payload"
	OpDownload        Op = "download track"
	OpPreferenceSave  Op = "save layout preference"
	OpPreferenceReset Op = "reset layout preference"
	OpOpenStore       Op = "open preference store"
)

// Format returns "Failed to <op>: <cause>", or "" for a nil err. File system
// errors are reduced to their path and reason.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %s", op, cause(err))
}

func cause(err error) string {
	var pe *fs.PathError
	if errors.As(err, &pe) {
		return fmt.Sprintf("%s (%s)", pe.Err, pe.Path)
	}
	return err.Error()
}
