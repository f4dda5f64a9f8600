// Package render writes the sections the inspector shows for a session: the
// history, the details of the current value and its members.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/mattn/go-runewidth"
	"src.insp.sh/pkg/session"
	"src.insp.sh/pkg/ui"
	"src.insp.sh/pkg/vals"
)

// Options controls rendering. The zero value renders plain text without a
// dump or documentation, with a grid width of 80.
type Options struct {
	// Whether to emit VT escape sequences for styles.
	Color bool
	Grid  GridConfig
	// Whether to show documentation.
	Doc bool
	// Whether to show a deep dump of the value.
	Dump bool

	Current ui.Styling
	Index   ui.Styling
	Heading ui.Styling
}

// Indentation of the content of each section.
const indent = "  "

var spewConfig = spew.ConfigState{
	Indent:                  indent,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
	MaxDepth:                5,
}

// All renders the history of sess, followed by the details and members of its
// current value.
func All(w io.Writer, sess *session.Session, opts *Options) {
	History(w, sess, opts)
	Details(w, sess.Current(), opts)
	Attrs(w, sess.Current(), opts)
}

// History writes the history of sess on two lines: the index of each entry,
// right-aligned above its label, and the labels concatenated, which reads like
// the expression computing the current value. A label narrower than its index
// is padded with spaces. The last label is styled as current.
func History(w io.Writer, sess *session.Session, opts *Options) {
	heading(w, "Inspect:", opts)
	entries := sess.Describe()
	var indices, labels ui.Text
	for i, e := range entries {
		index := strconv.Itoa(e.Index)
		// Leave a space before the index if the label is not wider.
		width := runewidth.StringWidth(e.Text)
		if n := len(index) + 1; n > width {
			width = n
		}
		indices = append(indices,
			ui.T(runewidth.FillLeft(index, width), opts.Index)...)
		var label ui.Text
		if i == len(entries)-1 {
			label = ui.T(e.Text, opts.Current)
		} else {
			label = ui.T(e.Text)
		}
		labels = append(labels, label...)
		if pad := width - runewidth.StringWidth(e.Text); pad > 0 {
			labels = append(labels, ui.T(strings.Repeat(" ", pad))...)
		}
	}
	fmt.Fprintln(w, indent+indices.Render(opts.Color))
	fmt.Fprintln(w, strings.TrimRight(indent+labels.Render(opts.Color), " "))
}

// Details writes the representation and type of v, its signature if it is
// callable, and optionally its documentation and a deep dump.
func Details(w io.Writer, v any, opts *Options) {
	field(w, "Value:", vals.Repr(v), opts)
	field(w, "Type:", vals.TypeName(v), opts)
	if sig := vals.Signature(v); sig != "" {
		field(w, "Args:", sig, opts)
	}
	if opts.Doc {
		if doc := vals.Doc(v); doc != "" {
			heading(w, "Documentation:", opts)
			fmt.Fprintln(w, indentLines(doc))
		}
	}
	if opts.Dump {
		heading(w, "Dump:", opts)
		fmt.Fprintln(w, indentLines(spewConfig.Sdump(v)))
	}
}

// Attrs writes the members of v in a grid, public members first, then private
// ones, then protocol methods.
func Attrs(w io.Writer, v any, opts *Options) {
	heading(w, "Attributes:", opts)
	tiers := vals.Members(v)
	if tiers.Len() > 0 {
		fmt.Fprintln(w, Grid([][]string{tiers.Public, tiers.Private, tiers.Protocol}, opts.Grid))
	}
}

func heading(w io.Writer, title string, opts *Options) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, ui.T(title, opts.Heading).Render(opts.Color))
}

func field(w io.Writer, title, value string, opts *Options) {
	fmt.Fprintln(w, ui.T(title, opts.Heading).Render(opts.Color), value)
}

func indentLines(s string) string {
	s = strings.TrimRight(s, "\n")
	return indent + strings.ReplaceAll(s, "\n", "\n"+indent)
}
