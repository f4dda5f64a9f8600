package diag

import (
	"errors"
	"fmt"
	"io"

	"src.insp.sh/pkg/errs"
)

// Shower wraps the Show function.
type Shower interface {
	// Show takes an indentation string and shows.
	Show(indent string) string
}

// ShowError shows an error. It uses the Show method if the error or one it
// wraps implements Shower. Otherwise it writes the kind of the error if known,
// followed by the error message.
func ShowError(w io.Writer, err error) {
	var shower Shower
	if errors.As(err, &shower) {
		fmt.Fprintln(w, shower.Show(""))
		return
	}
	var kinder errs.Kinder
	if errors.As(err, &kinder) {
		Complainf(w, "%s: %s", kinder.Kind(), err.Error())
		return
	}
	Complain(w, err.Error())
}

// Complain prints a message to w in bold and red, adding a trailing newline.
func Complain(w io.Writer, msg string) {
	fmt.Fprintf(w, "%s%s%s\n", messageStart, msg, messageEnd)
}

// Complainf is like Complain, but accepts a format string and arguments.
func Complainf(w io.Writer, format string, args ...any) {
	Complain(w, fmt.Sprintf(format, args...))
}
