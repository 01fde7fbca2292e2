// Package storage implements attachment storage on the local filesystem.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/invoice-manager/backend/internal/application/adapter"
	domainerror "github.com/invoice-manager/backend/internal/domain/error"
)

// fileSystemStorage implements the adapter.AttachmentStorage interface.
// Files live under <root>/<userID>/<filename>.
type fileSystemStorage struct {
	root    string
	baseURL string
}

// NewFileSystemStorage creates the storage root when missing and returns the storage.
func NewFileSystemStorage(root, baseURL string) (adapter.AttachmentStorage, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage root: %w", err)
	}
	return &fileSystemStorage{
		root:    root,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// Store writes the upload under a freshly generated name and returns that name.
func (s *fileSystemStorage) Store(ctx context.Context, userID uuid.UUID, upload adapter.AttachmentUpload) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	dir := s.userDir(userID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create attachment directory: %w", err)
	}

	filename := uuid.NewString() + strings.ToLower(filepath.Ext(upload.Filename))

	// Written to a temporary file first so a failed copy never leaves a partial attachment
	tmp, err := os.CreateTemp(dir, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("failed to create attachment file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := io.Copy(tmp, upload.Content); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("failed to write attachment: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("failed to write attachment: %w", err)
	}
	if err := os.Rename(tmpName, filepath.Join(dir, filename)); err != nil {
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("failed to move attachment into place: %w", err)
	}

	return filename, nil
}

// Replace stores the upload, lets commit persist the new name and then removes the previous file.
// A rejected commit removes the new file and leaves the previous one untouched.
// Failing to remove the previous file is logged and never fails the replacement.
func (s *fileSystemStorage) Replace(
	ctx context.Context,
	userID uuid.UUID,
	oldFilename string,
	upload adapter.AttachmentUpload,
	commit adapter.CommitFunc,
) (string, error) {
	filename, err := s.Store(ctx, userID, upload)
	if err != nil {
		return "", err
	}

	// Cleanup runs even when the request context is already cancelled
	cleanupCtx := context.WithoutCancel(ctx)

	if commit != nil {
		if err := commit(filename); err != nil {
			if delErr := s.Delete(cleanupCtx, userID, filename); delErr != nil {
				slog.Warn("Failed to delete uncommitted attachment",
					"userID", userID,
					"filename", filename,
					"error", delErr,
				)
			}
			return "", err
		}
	}

	if oldFilename != "" {
		if err := s.Delete(cleanupCtx, userID, oldFilename); err != nil {
			slog.Warn("Failed to delete replaced attachment",
				"userID", userID,
				"filename", oldFilename,
				"error", err,
			)
		}
	}

	return filename, nil
}

// Delete removes a stored file. A missing file yields ErrAttachmentNotFound.
func (s *fileSystemStorage) Delete(ctx context.Context, userID uuid.UUID, filename string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := s.resolve(userID, filename)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domainerror.ErrAttachmentNotFound
		}
		return fmt.Errorf("failed to delete attachment: %w", err)
	}
	return nil
}

// URL returns the public address of a stored file.
func (s *fileSystemStorage) URL(userID uuid.UUID, filename string) string {
	return s.baseURL + "/" + userID.String() + "/" + filename
}

func (s *fileSystemStorage) userDir(userID uuid.UUID) string {
	return filepath.Join(s.root, userID.String())
}

// resolve maps a stored filename to its path, refusing anything that could leave the user directory.
func (s *fileSystemStorage) resolve(userID uuid.UUID, filename string) (string, error) {
	if filename == "" ||
		filename == "." ||
		filename == ".." ||
		strings.ContainsAny(filename, `/\`) ||
		strings.Contains(filename, "..") {
		return "", domainerror.ErrInvalidAttachmentName
	}
	return filepath.Join(s.userDir(userID), filename), nil
}
