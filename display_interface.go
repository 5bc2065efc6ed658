// display_interface.go - Display output interface for LegacyCap Engine

/*
 _                                  ____
| |    ___  __ _  __ _  ___ _   _ / ___|__ _ _ __
| |   / _ \/ _` |/ _` |/ __| | | | |   / _` | '_ \
| |__|  __/ (_| | (_| | (__| |_| | |__| (_| | |_) |
|_____\___|\__, |\__,_|\___|\__, |\____\__,_| .__/
           |___/            |___/           |_|

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/LegacyCapEngine
License: GPLv3 or later
*/

package main

import "fmt"

// VideoError provides detailed error context for video operations
type VideoError struct {
	Operation string // What operation was being attempted
	Details   string // Additional error context
	Err       error  // Underlying error if any
}

func (e *VideoError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("video %s failed: %s: %v", e.Operation, e.Details, e.Err)
	}
	return fmt.Sprintf("video %s failed: %s", e.Operation, e.Details)
}

func (e *VideoError) Unwrap() error { return e.Err }

// VideoOutput is the minimal surface a display frontend must implement.
// UpdateFrame takes the presented image as raw RGBA pixels, presentW by
// presentH.
type VideoOutput interface {
	Start() error
	Stop() error
	IsStarted() bool
	UpdateFrame(rgba []byte) error

	// SetShotPath records the most recent screenshot path for the
	// frontend's status surface (and clipboard copy where supported).
	SetShotPath(path string)

	// Done is closed when the frontend's event loop exits.
	Done() <-chan struct{}
}
