package storage

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/subadmin/internal/application/subscription/usecases"
	"github.com/orris-inc/subadmin/internal/domain/subscription"
	"github.com/orris-inc/subadmin/internal/shared/logger"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n',
	0, 0, 0, 0x0d, 'I', 'H', 'D', 'R', 0, 0, 0, 1, 0, 0, 0, 1}

func newStorage(t *testing.T, maxSize int64) (*LocalProofStorage, string) {
	t.Helper()
	root := t.TempDir()
	s, err := NewLocalProofStorage(root, "http://localhost:8080/", maxSize, logger.NewLogger())
	require.NoError(t, err)
	return s, root
}

func upload(content []byte) usecases.ProofUpload {
	return usecases.ProofUpload{Filename: "receipt", Size: int64(len(content)), Content: bytes.NewReader(content)}
}

func TestLocalProofStorage_SaveAndDelete(t *testing.T) {
	s, root := newStorage(t, 0)

	name, err := s.Save(context.Background(), upload(pngHeader))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(name, ".png"))

	stored := filepath.Join(root, "transitions", name)
	_, err = os.Stat(stored)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080/uploads/transitions/"+name, s.URL(name))

	require.NoError(t, s.Delete(context.Background(), name))
	_, err = os.Stat(stored)
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, s.Delete(context.Background(), name), "deleting twice is not an error")
}

func TestLocalProofStorage_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		maxSize int64
		upload  usecases.ProofUpload
	}{
		{"no content", 0, usecases.ProofUpload{Filename: "x"}},
		{"too small", 0, upload([]byte("tiny"))},
		{"not an image", 0, upload([]byte("#!/bin/sh\necho this is a script file\n"))},
		{"declared too large", 8, usecases.ProofUpload{Size: 100, Content: bytes.NewReader(pngHeader)}},
		{"actually too large", 8, usecases.ProofUpload{Size: 1, Content: bytes.NewReader(pngHeader)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, root := newStorage(t, tt.maxSize)

			_, err := s.Save(context.Background(), tt.upload)
			require.Error(t, err)
			assert.ErrorIs(t, err, subscription.ErrInvalidProof)

			entries, err := os.ReadDir(filepath.Join(root, "transitions"))
			require.NoError(t, err)
			assert.Empty(t, entries)
		})
	}
}

func TestLocalProofStorage_DeleteRejectsTraversal(t *testing.T) {
	s, _ := newStorage(t, 0)

	for _, name := range []string{"", "../secret", "a/b.png", ".hidden"} {
		assert.Error(t, s.Delete(context.Background(), name), name)
	}
	assert.Equal(t, "", s.URL(""))
}
