package diag

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Context is a range of text in a named piece of input. It is used for errors
// that can be associated with part of what the user typed.
type Context struct {
	Name   string
	Source string
	Ranging
}

// NewContext creates a new Context.
func NewContext(name, source string, r Ranger) *Context {
	return &Context{name, source, r.Range()}
}

// Variables controlling how the culprit is marked. Can be changed in tests.
var (
	culpritStart       = "\033[1;4m"
	culpritEnd         = "\033[m"
	culpritPlaceHolder = "^"
)

// Position returns the 1-based line and column of the start of the range.
// The column is counted in runes.
func (c *Context) Position() (line, col int) {
	before := c.Source[:clamp(c.From, len(c.Source))]
	line = strings.Count(before, "\n") + 1
	col = len([]rune(before[strings.LastIndexByte(before, '\n')+1:])) + 1
	return line, col
}

func (c *Context) describeStart() string {
	line, col := c.Position()
	return fmt.Sprintf("%s:%d:%d", c.Name, line, col)
}

// Show shows the context on a single line, prefixed by the position, with the
// culprit marked. Continuation lines of a multi-line culprit are indented with
// indent plus enough spaces to line up with the first line.
func (c *Context) Show(indent string) string {
	if err := c.checkPosition(); err != nil {
		return err.Error()
	}
	desc := c.describeStart() + ": "
	descIndent := strings.Repeat(" ", runewidth.StringWidth(desc))

	before := c.Source[:c.From]
	culprit := strings.TrimSuffix(c.Source[c.From:c.To], "\n")
	after := c.Source[c.To:]

	var sb strings.Builder
	sb.WriteString(desc)
	sb.WriteString(before[strings.LastIndexByte(before, '\n')+1:])
	if culprit == "" {
		culprit = culpritPlaceHolder
	}
	for i, line := range strings.Split(culprit, "\n") {
		if i > 0 {
			sb.WriteString("\n" + indent + descIndent)
		}
		sb.WriteString(culpritStart + line + culpritEnd)
	}
	if i := strings.IndexByte(after, '\n'); i >= 0 {
		after = after[:i]
	}
	sb.WriteString(after)
	return sb.String()
}

func (c *Context) checkPosition() error {
	if c.From < 0 || c.To > len(c.Source) || c.From > c.To {
		return fmt.Errorf("%s, invalid position %d-%d", c.Name, c.From, c.To)
	}
	return nil
}

func clamp(i, n int) int {
	if i < 0 {
		return 0
	} else if i > n {
		return n
	}
	return i
}
