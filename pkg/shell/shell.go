// Package shell implements the interactive loop of the inspector.
//
// The loop renders the state of a session, then reads a line and acts on it:
//
//   - A blank line does nothing.
//   - A non-negative integer k rewinds the session to its first k operations.
//   - Anything else is parsed as an operation chain and applied.
//
// Failures are shown on stderr and the loop continues at the same depth. The
// loop ends at the end of input.
package shell

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"src.insp.sh/pkg/config"
	"src.insp.sh/pkg/diag"
	"src.insp.sh/pkg/errs"
	"src.insp.sh/pkg/expr"
	"src.insp.sh/pkg/logutil"
	"src.insp.sh/pkg/op"
	"src.insp.sh/pkg/parse"
	"src.insp.sh/pkg/render"
	"src.insp.sh/pkg/session"
	"src.insp.sh/pkg/sys"
	"src.insp.sh/pkg/ui"
)

var logger = logutil.GetLogger("[shell] ")

// Config keeps configuration for the interactive loop.
type Config struct {
	// Names available in arguments and index keys.
	Scope expr.Scope
	// Settings read from the rc file. If nil, config.Default() is used.
	RC *config.Config
}

// Interact runs the interactive loop on sess until the end of input.
func Interact(fds [3]*os.File, sess *session.Session, cfg *Config) error {
	rc := cfg.RC
	if rc == nil {
		rc = config.Default()
	}
	opts := renderOptions(fds[1], rc)

	var ed editor
	if sys.IsATTY(fds[0].Fd()) && sys.IsATTY(fds[1].Fd()) {
		ed = newLinerEditor(rc.Prompt, func(line string) []string {
			return completeMembers(sess.Current(), cfg.Scope, line)
		})
	} else {
		ed = newMinEditor(rc.Prompt, fds[0], fds[1])
	}
	defer func() { ed.Close() }()

	render.All(fds[1], sess, opts)
	for cmdNum := 1; ; cmdNum++ {
		line, err := ed.ReadLine()
		if err == io.EOF {
			break
		} else if err != nil {
			fmt.Fprintln(fds[2], "Editor error:", err)
			if _, isMinEditor := ed.(*minEditor); isMinEditor {
				return err
			}
			fmt.Fprintln(fds[2], "Falling back to basic line editor")
			ed.Close()
			ed = newMinEditor(rc.Prompt, fds[0], fds[1])
			continue
		}

		before := sess.Len()
		src := parse.Source{Name: fmt.Sprintf("[tty %v]", cmdNum), Code: line}
		err = evalLine(sess, src, cfg.Scope)
		if err != nil {
			logger.Printf("%s: %v", src.Name, err)
			diag.ShowError(fds[2], err)
		}
		if err == nil && strings.TrimSpace(line) != "" || sess.Len() != before {
			render.All(fds[1], sess, opts)
		}
	}
	return nil
}

// Acts on one line of input.
func evalLine(sess *session.Session, src parse.Source, scope expr.Scope) error {
	code := strings.TrimSpace(src.Code)
	if code == "" {
		return nil
	}
	if isDigits(code) {
		k, err := strconv.Atoi(code)
		if err != nil {
			return errs.OutOfRange{What: "history index",
				ValidLow: "0", ValidHigh: strconv.Itoa(sess.Len()), Actual: code}
		}
		return sess.RewindTo(k)
	}
	ops, err := op.Parse(src, scope)
	if err != nil {
		return err
	}
	return sess.Apply(ops...)
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

func renderOptions(out *os.File, rc *config.Config) *render.Options {
	return &render.Options{
		Color: rc.UseColor(sys.IsATTY(out.Fd())),
		Grid: render.GridConfig{
			Width:   rc.GridWidth(sys.TermWidth(out, 0)),
			Padding: rc.Padding,
		},
		Doc:     rc.ShowDoc(),
		Dump:    rc.Dump,
		Current: ui.ParseStyling(rc.Styles.Current),
		Index:   ui.ParseStyling(rc.Styles.Index),
		Heading: ui.ParseStyling(rc.Styles.Heading),
	}
}
