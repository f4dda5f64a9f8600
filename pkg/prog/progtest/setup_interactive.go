//go:build !windows && !plan9

package progtest

import (
	"github.com/creack/pty"
)

// SetupInteractive is like Setup, but connects stdin to the terminal side of
// a pseudo-terminal, so that code under test sees a terminal. FeedIn writes
// to the controlling side.
//
// The caller is responsible for calling the Cleanup method of the returned
// Fixture.
func SetupInteractive() (*Fixture, error) {
	ptmx, tty, err := pty.Open()
	if err != nil {
		return nil, err
	}
	return &Fixture{[3]*pipe{{r: tty, w: ptmx}, makePipe(true), makePipe(true)}}, nil
}
