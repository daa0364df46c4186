// Package host provides terminal implementations of the list view's
// collaborators: notifications, delete confirmation and edit navigation.
package host

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/dbsmedya/golistview/internal/listview"
	"github.com/dbsmedya/golistview/internal/logger"
	"github.com/dbsmedya/golistview/internal/render"
)

// Terminal talks to the user over a line-oriented reader and writer.
type Terminal struct {
	in              *bufio.Reader
	out             io.Writer
	renderer        *render.Renderer
	editURLTemplate string
	assumeYes       bool
	logger          *logger.Logger

	lastURL string
}

var (
	_ listview.Notifier  = (*Terminal)(nil)
	_ listview.Confirmer = (*Terminal)(nil)
	_ listview.Navigator = (*Terminal)(nil)
)

// NewTerminal creates a Terminal. With assumeYes every confirmation is
// accepted without reading input.
func NewTerminal(in io.Reader, out io.Writer, renderer *render.Renderer, editURLTemplate string, assumeYes bool, log *logger.Logger) *Terminal {
	if log == nil {
		log = logger.NewDefault()
	}
	return &Terminal{
		in:              bufio.NewReader(in),
		out:             out,
		renderer:        renderer,
		editURLTemplate: editURLTemplate,
		assumeYes:       assumeYes,
		logger:          log,
	}
}

// Notify prints the notification as one status line.
func (t *Terminal) Notify(n listview.Notification) {
	if err := t.renderer.Notice(n); err != nil {
		t.logger.Warnw("Failed to write notification", "error", err)
	}
}

// Confirm asks a yes/no question. Anything but y or yes, including end of
// input, declines.
func (t *Terminal) Confirm(prompt string) bool {
	if t.assumeYes {
		t.logger.Debugw("Confirmation assumed", "prompt", prompt)
		return true
	}

	fmt.Fprintf(t.out, "%s [y/N]: ", prompt)
	answer, err := t.ReadLine()
	if err != nil && answer == "" {
		fmt.Fprintln(t.out)
		return false
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// GoToRecordEditPage prints the edit URL of the record.
func (t *Terminal) GoToRecordEditPage(recordID, objectType string) {
	t.lastURL = listview.RecordURL(t.editURLTemplate, objectType, recordID)
	fmt.Fprintf(t.out, "Edit %s %s: %s\n", objectType, recordID, t.lastURL)
}

// LastURL returns the most recent edit URL.
func (t *Terminal) LastURL() string {
	return t.lastURL
}

// ReadLine reads one trimmed line of input. io.EOF is returned once input
// is exhausted, possibly together with a final unterminated line.
func (t *Terminal) ReadLine() (string, error) {
	line, err := t.in.ReadString('\n')
	return strings.TrimSpace(line), err
}

// Prompt writes a prompt and reads the answer.
func (t *Terminal) Prompt(prompt string) (string, error) {
	fmt.Fprint(t.out, prompt)
	return t.ReadLine()
}
