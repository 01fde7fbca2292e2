package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invoice-manager/backend/internal/application/adapter"
	domainerror "github.com/invoice-manager/backend/internal/domain/error"
)

func newStorage(t *testing.T) (adapter.AttachmentStorage, string) {
	t.Helper()
	root := filepath.Join(t.TempDir(), "uploads")
	s, err := NewFileSystemStorage(root, "http://localhost:8080/uploads/")
	require.NoError(t, err)
	return s, root
}

func TestStore_GeneratesNameWithLowercaseExtension(t *testing.T) {
	s, root := newStorage(t)
	userID := uuid.New()

	name, err := s.Store(context.Background(), userID, adapter.AttachmentUpload{
		Filename: "Scan Of Invoice.PDF",
		Content:  strings.NewReader("%PDF-1.4"),
	})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(name, ".pdf"))
	_, err = uuid.Parse(strings.TrimSuffix(name, ".pdf"))
	assert.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(root, userID.String(), name))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(content))

	entries, err := os.ReadDir(filepath.Join(root, userID.String()))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files are left behind")
}

func TestStore_NamesNeverCollide(t *testing.T) {
	s, _ := newStorage(t)
	userID := uuid.New()
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		name, err := s.Store(context.Background(), userID, adapter.AttachmentUpload{Filename: "a.png", Content: strings.NewReader("x")})
		require.NoError(t, err)
		assert.False(t, seen[name])
		seen[name] = true
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("connection reset") }

func TestStore_FailedCopyLeavesNothing(t *testing.T) {
	s, root := newStorage(t)
	userID := uuid.New()

	_, err := s.Store(context.Background(), userID, adapter.AttachmentUpload{Filename: "a.pdf", Content: failingReader{}})
	require.Error(t, err)

	entries, err := os.ReadDir(filepath.Join(root, userID.String()))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestReplace(t *testing.T) {
	s, root := newStorage(t)
	ctx := context.Background()
	userID := uuid.New()

	old, err := s.Store(ctx, userID, adapter.AttachmentUpload{Filename: "old.pdf", Content: strings.NewReader("old")})
	require.NoError(t, err)

	var committed string
	replacement, err := s.Replace(ctx, userID, old, adapter.AttachmentUpload{Filename: "new.jpg", Content: strings.NewReader("new")},
		func(filename string) error {
			committed = filename
			assert.FileExists(t, filepath.Join(root, userID.String(), old), "previous file is kept until the commit succeeds")
			return nil
		})
	require.NoError(t, err)
	assert.Equal(t, replacement, committed)
	assert.NotEqual(t, old, replacement)
	assert.NoFileExists(t, filepath.Join(root, userID.String(), old))
	assert.FileExists(t, filepath.Join(root, userID.String(), replacement))

	// Previous file already gone: replacement still succeeds
	again, err := s.Replace(ctx, userID, old, adapter.AttachmentUpload{Filename: "x.jpg", Content: strings.NewReader("x")}, nil)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(root, userID.String(), again))
}

func TestReplace_RejectedCommitKeepsPreviousFile(t *testing.T) {
	s, root := newStorage(t)
	ctx := context.Background()
	userID := uuid.New()

	old, err := s.Store(ctx, userID, adapter.AttachmentUpload{Filename: "old.pdf", Content: strings.NewReader("old")})
	require.NoError(t, err)

	rejected := errors.New("number already taken")
	_, err = s.Replace(ctx, userID, old, adapter.AttachmentUpload{Filename: "new.pdf", Content: strings.NewReader("new")},
		func(string) error { return rejected })
	assert.ErrorIs(t, err, rejected)

	entries, err := os.ReadDir(filepath.Join(root, userID.String()))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, old, entries[0].Name())
}

func TestDelete(t *testing.T) {
	s, _ := newStorage(t)
	ctx := context.Background()
	userID := uuid.New()

	name, err := s.Store(ctx, userID, adapter.AttachmentUpload{Filename: "a.pdf", Content: strings.NewReader("a")})
	require.NoError(t, err)

	assert.ErrorIs(t, s.Delete(ctx, uuid.New(), name), domainerror.ErrAttachmentNotFound, "other users cannot reach the file")
	require.NoError(t, s.Delete(ctx, userID, name))
	assert.ErrorIs(t, s.Delete(ctx, userID, name), domainerror.ErrAttachmentNotFound)
}

func TestDelete_RejectsTraversal(t *testing.T) {
	s, _ := newStorage(t)
	for _, name := range []string{"", "..", "../secret", "a/b.pdf", `a\b.pdf`, "x..y"} {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, s.Delete(context.Background(), uuid.New(), name), domainerror.ErrInvalidAttachmentName)
		})
	}
}

func TestURL(t *testing.T) {
	s, _ := newStorage(t)
	userID := uuid.New()
	assert.Equal(t, "http://localhost:8080/uploads/"+userID.String()+"/f.pdf", s.URL(userID, "f.pdf"))
}
