package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"
)

// This type is the interface that the line editor has to satisfy.
type editor interface {
	ReadLine() (string, error)
	Close() error
}

type minEditor struct {
	prompt string
	in     *bufio.Reader
	out    io.Writer
}

func newMinEditor(prompt string, in, out *os.File) *minEditor {
	return &minEditor{prompt, bufio.NewReader(in), out}
}

func (ed *minEditor) ReadLine() (string, error) {
	fmt.Fprint(ed.out, ed.prompt)
	line, err := ed.in.ReadString('\n')
	if err == io.EOF && line != "" {
		// Last line without a newline.
		err = nil
	}
	return chopLineEnding(line), err
}

func (ed *minEditor) Close() error { return nil }

// A line editor with history and completion, used when stdin is a terminal.
// It always reads from and writes to the process's terminal.
type linerEditor struct {
	prompt string
	state  *liner.State
}

func newLinerEditor(prompt string, complete func(string) []string) *linerEditor {
	state := liner.NewLiner()
	state.SetCtrlCAborts(true)
	state.SetTabCompletionStyle(liner.TabPrints)
	if complete != nil {
		state.SetCompleter(complete)
	}
	return &linerEditor{prompt, state}
}

func (ed *linerEditor) ReadLine() (string, error) {
	line, err := ed.state.Prompt(ed.prompt)
	if errors.Is(err, liner.ErrPromptAborted) {
		// Ctrl-C discards the line.
		return "", nil
	}
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(line) != "" {
		ed.state.AppendHistory(line)
	}
	return line, nil
}

func (ed *linerEditor) Close() error { return ed.state.Close() }

func chopLineEnding(s string) string {
	if strings.HasSuffix(s, "\r\n") {
		return s[:len(s)-2]
	}
	return strings.TrimSuffix(s, "\n")
}
