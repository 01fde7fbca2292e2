// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"io"

	"github.com/google/uuid"
)

// AttachmentUpload is a file received alongside an invoice request.
type AttachmentUpload struct {
	Filename string // Name given by the client, only its extension is kept
	Content  io.Reader
}

// CommitFunc persists a freshly stored filename. A nil CommitFunc always succeeds.
type CommitFunc func(filename string) error

// AttachmentStorage manages the single optional file of an invoice.
// Files live under a namespace per user and never touch other namespaces.
type AttachmentStorage interface {
	// Store writes the upload and returns the generated filename.
	Store(ctx context.Context, userID uuid.UUID, upload AttachmentUpload) (string, error)

	// Replace stores the upload and hands the new filename to commit.
	// When commit fails the new file is removed and the commit error is returned as is.
	// Otherwise oldFilename is removed best-effort: a failure is logged and never returned.
	Replace(ctx context.Context, userID uuid.UUID, oldFilename string, upload AttachmentUpload, commit CommitFunc) (string, error)

	// Delete removes a file. Returns ErrAttachmentNotFound when it does not exist.
	Delete(ctx context.Context, userID uuid.UUID, filename string) error

	// URL returns the public address of a stored file.
	URL(userID uuid.UUID, filename string) string
}
