package media

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/simp-lee/cmsbase/internal/config"
	"github.com/simp-lee/cmsbase/internal/domain"
)

// UploadInput carries an incoming file. The reader is consumed once.
type UploadInput struct {
	Filename string
	MimeType string
	Size     int64
	Reader   io.Reader
}

// Service defines the business operations for media.
type Service interface {
	Upload(ctx context.Context, in UploadInput) (*domain.Media, error)
	Get(ctx context.Context, id uint) (*domain.Media, error)
	List(ctx context.Context, req domain.PageRequest) (*domain.PageResult[domain.Media], error)
	Delete(ctx context.Context, id uint) error
}

// mediaService implements Service. Files live on the local filesystem
// under the configured upload directory; the database row is the source
// of truth and the file is written first, removed again if the row
// cannot be created.
type mediaService struct {
	repo    domain.MediaRepository
	storage config.StorageConfig
}

// NewService creates a new media Service with the given repository and
// storage settings.
func NewService(repo domain.MediaRepository, storage config.StorageConfig) Service {
	return &mediaService{repo: repo, storage: storage}
}

// Upload validates, stores, and records an uploaded image file.
func (s *mediaService) Upload(ctx context.Context, in UploadInput) (*domain.Media, error) {
	if in.Filename == "" {
		return nil, domain.NewAppError(domain.CodeValidation, "filename is required", nil)
	}
	if !strings.HasPrefix(in.MimeType, "image/") {
		return nil, domain.NewAppError(domain.CodeValidation, "only image uploads are allowed", nil)
	}
	maxBytes := int64(s.storage.MaxUploadMB) << 20
	if in.Size > maxBytes {
		return nil, domain.NewAppError(domain.CodeValidation,
			fmt.Sprintf("file exceeds the %d MB upload limit", s.storage.MaxUploadMB), nil)
	}

	// Client file names never touch the filesystem; a fresh UUID plus the
	// original extension does.
	storedName := uuid.NewString() + strings.ToLower(filepath.Ext(in.Filename))
	storedPath := filepath.Join(s.storage.UploadDir, storedName)

	if err := os.MkdirAll(s.storage.UploadDir, 0o755); err != nil {
		return nil, domain.NewAppError(domain.CodeInternal, "failed to prepare upload directory", err)
	}

	written, err := s.writeFile(storedPath, in.Reader, maxBytes)
	if err != nil {
		return nil, err
	}

	media := &domain.Media{
		Filename:   filepath.Base(in.Filename),
		StoredName: storedName,
		URL:        path.Join(s.storage.PublicBaseURL, storedName),
		MimeType:   in.MimeType,
		SizeBytes:  written,
	}
	if err := s.repo.Create(ctx, media); err != nil {
		os.Remove(storedPath)
		return nil, err
	}
	return media, nil
}

// writeFile copies the upload to disk, enforcing the size cap while
// copying since the declared size is client-controlled.
func (s *mediaService) writeFile(storedPath string, r io.Reader, maxBytes int64) (int64, error) {
	dst, err := os.Create(storedPath)
	if err != nil {
		return 0, domain.NewAppError(domain.CodeInternal, "failed to store uploaded file", err)
	}
	defer dst.Close()

	written, err := io.Copy(dst, io.LimitReader(r, maxBytes+1))
	if err != nil {
		os.Remove(storedPath)
		return 0, domain.NewAppError(domain.CodeInternal, "failed to store uploaded file", err)
	}
	if written > maxBytes {
		os.Remove(storedPath)
		return 0, domain.NewAppError(domain.CodeValidation,
			fmt.Sprintf("file exceeds the %d MB upload limit", s.storage.MaxUploadMB), nil)
	}
	return written, nil
}

// Get retrieves a media record by ID.
func (s *mediaService) Get(ctx context.Context, id uint) (*domain.Media, error) {
	return s.repo.GetByID(ctx, id)
}

// List retrieves a page of media records.
func (s *mediaService) List(ctx context.Context, req domain.PageRequest) (*domain.PageResult[domain.Media], error) {
	return s.repo.List(ctx, req)
}

// Delete removes a media record and its file. A missing file is not an
// error; the record is authoritative.
func (s *mediaService) Delete(ctx context.Context, id uint) error {
	media, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(s.storage.UploadDir, media.StoredName)); err != nil && !os.IsNotExist(err) {
		return domain.NewAppError(domain.CodeInternal, "failed to remove stored file", err)
	}
	return nil
}
