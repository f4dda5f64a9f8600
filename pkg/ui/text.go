package ui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Segment is a string that has some style applied to it.
type Segment struct {
	Style
	Text string
}

// VTString renders the styled segment using VT-style escape sequences. Any
// existing SGR state will be cleared.
func (s *Segment) VTString() string {
	sgr := s.SGR()
	if sgr == "" {
		return "\033[m" + s.Text
	}
	return "\033[" + sgr + "m" + s.Text + "\033[m"
}

// Text contains of a list of styled Segments.
type Text []*Segment

// T constructs a new Text with the given content and the given Styling's
// applied.
func T(s string, ts ...Styling) Text {
	return StyleText(Text{&Segment{Text: s}}, ts...)
}

// Concat returns a new Text with the segments of t followed by those of
// others.
func Concat(ts ...Text) Text {
	var newt Text
	for _, t := range ts {
		newt = append(newt, t...)
	}
	return newt
}

// Width returns the display width of the text.
func (t Text) Width() int {
	w := 0
	for _, seg := range t {
		w += runewidth.StringWidth(seg.Text)
	}
	return w
}

// String returns the plain text content, without any styling.
func (t Text) String() string {
	var sb strings.Builder
	for _, seg := range t {
		sb.WriteString(seg.Text)
	}
	return sb.String()
}

// VTString renders the styled text using VT-style escape sequences. Segments
// without any styling are written as is.
func (t Text) VTString() string {
	var sb strings.Builder
	for _, seg := range t {
		if seg.SGR() == "" {
			sb.WriteString(seg.Text)
		} else {
			sb.WriteString(seg.VTString())
		}
	}
	return sb.String()
}

// Render renders the text with VT escape sequences if color is true, or as
// plain text otherwise.
func (t Text) Render(color bool) string {
	if color {
		return t.VTString()
	}
	return t.String()
}
