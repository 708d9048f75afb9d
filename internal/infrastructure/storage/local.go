package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/orris-inc/subadmin/internal/application/subscription/usecases"
	"github.com/orris-inc/subadmin/internal/domain/subscription"
	"github.com/orris-inc/subadmin/internal/shared/constants"
	"github.com/orris-inc/subadmin/internal/shared/logger"
)

const (
	DefaultMaxProofSize = 5 << 20
	minProofSize        = 16
)

// allowedProofMIMETypes maps content-detected types to stored extensions.
var allowedProofMIMETypes = map[string]string{
	"image/png":       ".png",
	"image/jpeg":      ".jpg",
	"image/webp":      ".webp",
	"image/gif":       ".gif",
	"application/pdf": ".pdf",
}

// LocalProofStorage keeps proof-of-payment files under
// <root>/transitions and serves them from <baseURL>/uploads/transitions.
type LocalProofStorage struct {
	dir     string
	baseURL string
	maxSize int64
	logger  logger.Interface
}

var _ usecases.ProofStorage = (*LocalProofStorage)(nil)

func NewLocalProofStorage(root, baseURL string, maxSize int64, logger logger.Interface) (*LocalProofStorage, error) {
	if root == "" {
		root = "./uploads"
	}
	if maxSize <= 0 {
		maxSize = DefaultMaxProofSize
	}

	dir := filepath.Join(root, constants.ProofSubdirectory)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	return &LocalProofStorage{
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
		maxSize: maxSize,
		logger:  logger,
	}, nil
}

func (s *LocalProofStorage) Save(ctx context.Context, upload usecases.ProofUpload) (string, error) {
	if upload.Content == nil {
		return "", fmt.Errorf("%w: file is required", subscription.ErrInvalidProof)
	}
	if upload.Size > s.maxSize {
		return "", fmt.Errorf("%w: file exceeds %d bytes", subscription.ErrInvalidProof, s.maxSize)
	}

	content, err := io.ReadAll(io.LimitReader(upload.Content, s.maxSize+1))
	if err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}
	if int64(len(content)) > s.maxSize {
		return "", fmt.Errorf("%w: file exceeds %d bytes", subscription.ErrInvalidProof, s.maxSize)
	}
	if len(content) < minProofSize {
		return "", fmt.Errorf("%w: file is too small or empty", subscription.ErrInvalidProof)
	}

	detected := mimetype.Detect(content).String()
	ext, allowed := allowedProofMIMETypes[detected]
	if !allowed {
		s.logger.Warnw("rejected proof upload with invalid MIME type",
			"detected_mime", detected,
			"filename", upload.Filename,
		)
		return "", fmt.Errorf("%w: only PNG, JPG, WEBP, GIF and PDF files are allowed", subscription.ErrInvalidProof)
	}

	filename := uuid.NewString() + ext
	dst, err := s.path(filename)
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(dst, content, 0640); err != nil {
		return "", fmt.Errorf("failed to save proof: %w", err)
	}

	s.logger.Debugw("proof stored", "file", filename, "mime", detected, "size", len(content))
	return filename, nil
}

func (s *LocalProofStorage) Delete(ctx context.Context, filename string) error {
	p, err := s.path(filename)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete proof: %w", err)
	}
	return nil
}

func (s *LocalProofStorage) URL(filename string) string {
	if filename == "" {
		return ""
	}
	return s.baseURL + constants.UploadsRoutePrefix + "/" + constants.ProofSubdirectory + "/" + filename
}

// path resolves filename inside the proof directory, rejecting anything that
// would escape it.
func (s *LocalProofStorage) path(filename string) (string, error) {
	if filename == "" || filename != filepath.Base(filename) || strings.HasPrefix(filename, ".") {
		return "", fmt.Errorf("invalid proof file name %q", filename)
	}
	return filepath.Join(s.dir, filename), nil
}
