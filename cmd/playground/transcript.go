package main

import (
	"bytes"
	"fmt"
	"html"
	"os"
	"strings"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/microcosm-cc/bluemonday"

	"github.com/smallnest/kernelplay/scenario"
)

// Transcript forwards output to another Output and keeps a markdown copy of
// the session that can be written out as a standalone HTML page.
type Transcript struct {
	next  scenario.Output
	title string
	md    strings.Builder
}

var _ scenario.Output = (*Transcript)(nil)

// NewTranscript records everything written to next.
func NewTranscript(next scenario.Output, title string) *Transcript {
	return &Transcript{next: next, title: title}
}

func (t *Transcript) Heading(title string) {
	t.next.Heading(title)
	fmt.Fprintf(&t.md, "## %s\n\n", title)
}

func (t *Transcript) Println(text string) {
	t.next.Println(text)
	fmt.Fprintf(&t.md, "%s\n\n", text)
}

func (t *Transcript) Answer(text string) {
	t.next.Answer(text)
	fmt.Fprintf(&t.md, "%s\n\n", strings.TrimSpace(text))
}

// Markdown returns the session recorded so far.
func (t *Transcript) Markdown() string {
	return t.md.String()
}

// HTML renders the transcript. Model output is untrusted, so the rendered
// body goes through a UGC sanitizer.
func (t *Transcript) HTML() []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	doc := p.Parse([]byte(t.md.String()))

	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags | mdhtml.HrefTargetBlank})
	body := bluemonday.UGCPolicy().SanitizeBytes(markdown.Render(doc, renderer))

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>%s</title>\n</head>\n<body>\n<h1>%s</h1>\n",
		html.EscapeString(t.title), html.EscapeString(t.title))
	buf.Write(body)
	buf.WriteString("</body>\n</html>\n")
	return buf.Bytes()
}

// WriteFile writes the HTML transcript to path.
func (t *Transcript) WriteFile(path string) error {
	if err := os.WriteFile(path, t.HTML(), 0o644); err != nil {
		return fmt.Errorf("write transcript: %w", err)
	}
	return nil
}
