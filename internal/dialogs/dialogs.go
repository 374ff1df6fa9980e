// Package dialogs shows native file pickers and message boxes.
package dialogs

import (
	"errors"

	"github.com/sqweek/dialog"

	"github.com/Faultbox/pxref/internal/editor"
)

// Native implements editor.Dialogs with the platform's dialogs.
type Native struct {
	// StartDir is where file pickers open. Empty means the toolkit default.
	StartDir string
}

var _ editor.Dialogs = (*Native)(nil)

func (n *Native) file(title string, filters []editor.Filter) *dialog.FileBuilder {
	b := dialog.File().Title(title)
	for _, f := range filters {
		b = b.Filter(f.Description, f.Extensions...)
	}
	if n.StartDir != "" {
		b = b.SetStartDir(n.StartDir)
	}
	return b
}

// OpenFile asks for an existing file.
func (n *Native) OpenFile(title string, filters ...editor.Filter) (string, error) {
	path, err := n.file(title, filters).Load()
	return path, mapErr(err)
}

// SaveFile asks for a destination file.
func (n *Native) SaveFile(title string, filters ...editor.Filter) (string, error) {
	path, err := n.file(title, filters).Save()
	return path, mapErr(err)
}

// Confirm asks a yes/no question.
func (n *Native) Confirm(title, message string) bool {
	return dialog.Message("%s", message).Title(title).YesNo()
}

// Info shows an informational message.
func (n *Native) Info(title, message string) {
	dialog.Message("%s", message).Title(title).Info()
}

// Error shows an error message.
func (n *Native) Error(title, message string) {
	dialog.Message("%s", message).Title(title).Error()
}

func mapErr(err error) error {
	if errors.Is(err, dialog.ErrCancelled) {
		return editor.ErrCancelled
	}
	return err
}
