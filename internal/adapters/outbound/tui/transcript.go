package tui

import (
	"fmt"
	"io"
)

// Transcript implements domain.Reporter by streaming the human-readable
// transcript of a validation run to w.
type Transcript struct {
	w io.Writer
}

// NewTranscript creates a Transcript writing to w.
func NewTranscript(w io.Writer) *Transcript {
	return &Transcript{w: w}
}

func (t *Transcript) TestStarted(index int, name string) {
	fmt.Fprintf(t.w, "\n%s\n", titleStyle.Render(fmt.Sprintf("=== Test %d: %s ===", index, name)))
}

func (t *Transcript) Info(msg string) {
	fmt.Fprintln(t.w, msg)
}

func (t *Transcript) Warn(msg string) {
	fmt.Fprintln(t.w, warnStyle.Render("WARNING: "+msg))
}

func (t *Transcript) TestPassed(name string) {
	fmt.Fprintln(t.w, passStyle.Render("PASS: "+name))
}

func (t *Transcript) TestFailed(name string, err error) {
	fmt.Fprintln(t.w, failStyle.Render("FAIL: "+name))
	fmt.Fprintf(t.w, "Error: %v\n", err)
}
