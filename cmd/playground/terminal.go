package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"

	"github.com/smallnest/kernelplay/scenario"
)

var headingStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("63")).
	MarginTop(1)

// terminalOutput styles headings and renders model answers as markdown.
type terminalOutput struct {
	w        io.Writer
	renderer *glamour.TermRenderer
}

// newTerminalOutput falls back to plain text when f is not a terminal so
// piped output stays free of escape codes.
func newTerminalOutput(f *os.File) scenario.Output {
	if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		return scenario.TextOutput{W: f}
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		r = nil
	}
	return &terminalOutput{w: f, renderer: r}
}

func (o *terminalOutput) Heading(title string) {
	fmt.Fprintln(o.w, headingStyle.Render(title))
}

func (o *terminalOutput) Println(text string) {
	fmt.Fprintln(o.w, text)
}

func (o *terminalOutput) Answer(text string) {
	if o.renderer == nil {
		fmt.Fprintln(o.w, text)
		return
	}
	rendered, err := o.renderer.Render(text)
	if err != nil {
		fmt.Fprintln(o.w, text)
		return
	}
	fmt.Fprint(o.w, rendered)
}

// linerReader reads user input with line editing and history.
type linerReader struct {
	line *liner.State
}

func newLinerReader() *linerReader {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	return &linerReader{line: line}
}

// ReadLine returns io.EOF when the user aborts with Ctrl-C or Ctrl-D.
func (r *linerReader) ReadLine(prompt string) (string, error) {
	text, err := r.line.Prompt(prompt)
	if err != nil {
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", io.EOF
		}
		return "", err
	}
	if text != "" {
		r.line.AppendHistory(text)
	}
	return text, nil
}

func (r *linerReader) Close() error {
	return r.line.Close()
}
