package media

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/simp-lee/cmsbase/internal/config"
	"github.com/simp-lee/cmsbase/internal/domain"
)

// --- mock repository ---

type mockMediaRepo struct {
	records map[uint]*domain.Media
	nextID  uint
	// hooks for error injection
	createErr error
}

func newMockRepo() *mockMediaRepo {
	return &mockMediaRepo{records: make(map[uint]*domain.Media), nextID: 1}
}

func (m *mockMediaRepo) Create(_ context.Context, media *domain.Media) error {
	if m.createErr != nil {
		return m.createErr
	}
	media.ID = m.nextID
	m.nextID++
	m.records[media.ID] = media
	return nil
}

func (m *mockMediaRepo) GetByID(_ context.Context, id uint) (*domain.Media, error) {
	rec, ok := m.records[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return rec, nil
}

func (m *mockMediaRepo) List(_ context.Context, req domain.PageRequest) (*domain.PageResult[domain.Media], error) {
	items := make([]domain.Media, 0, len(m.records))
	for _, rec := range m.records {
		items = append(items, *rec)
	}
	return &domain.PageResult[domain.Media]{
		Items:        items,
		TotalItems:   int64(len(items)),
		CurrentPage:  req.Page,
		ItemsPerPage: req.PageSize,
	}, nil
}

func (m *mockMediaRepo) Delete(_ context.Context, id uint) error {
	if _, ok := m.records[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.records, id)
	return nil
}

// --- helpers ---

func newTestService(t *testing.T) (Service, *mockMediaRepo, string) {
	t.Helper()
	dir := t.TempDir()
	repo := newMockRepo()
	svc := NewService(repo, config.StorageConfig{
		UploadDir:     dir,
		MaxUploadMB:   1,
		PublicBaseURL: "/uploads",
	})
	return svc, repo, dir
}

func pngUpload(name, content string) UploadInput {
	return UploadInput{
		Filename: name,
		MimeType: "image/png",
		Size:     int64(len(content)),
		Reader:   strings.NewReader(content),
	}
}

// --- tests ---

func TestUpload(t *testing.T) {
	svc, _, dir := newTestService(t)

	media, err := svc.Upload(context.Background(), pngUpload("photo.PNG", "fake image bytes"))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if media.ID == 0 {
		t.Error("expected non-zero ID")
	}
	if media.Filename != "photo.PNG" {
		t.Errorf("Filename=%q; want photo.PNG", media.Filename)
	}
	if media.StoredName == "photo.PNG" {
		t.Error("stored name must not reuse the client file name")
	}
	if !strings.HasSuffix(media.StoredName, ".png") {
		t.Errorf("StoredName=%q; want .png extension", media.StoredName)
	}
	if media.URL != "/uploads/"+media.StoredName {
		t.Errorf("URL=%q; want /uploads/%s", media.URL, media.StoredName)
	}
	if media.SizeBytes != int64(len("fake image bytes")) {
		t.Errorf("SizeBytes=%d; want %d", media.SizeBytes, len("fake image bytes"))
	}

	data, err := os.ReadFile(filepath.Join(dir, media.StoredName))
	if err != nil {
		t.Fatalf("read stored file: %v", err)
	}
	if string(data) != "fake image bytes" {
		t.Errorf("stored content = %q", data)
	}
}

func TestUpload_DistinctStoredNames(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	first, err := svc.Upload(ctx, pngUpload("same.png", "a"))
	if err != nil {
		t.Fatalf("first Upload: %v", err)
	}
	second, err := svc.Upload(ctx, pngUpload("same.png", "b"))
	if err != nil {
		t.Fatalf("second Upload: %v", err)
	}
	if first.StoredName == second.StoredName {
		t.Error("two uploads of the same file name must store under distinct names")
	}
}

func TestUpload_RejectsNonImage(t *testing.T) {
	svc, _, _ := newTestService(t)

	in := UploadInput{
		Filename: "malware.exe",
		MimeType: "application/octet-stream",
		Size:     4,
		Reader:   strings.NewReader("data"),
	}
	_, err := svc.Upload(context.Background(), in)
	if !domain.IsValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestUpload_RejectsDeclaredOversize(t *testing.T) {
	svc, _, _ := newTestService(t)

	in := pngUpload("big.png", "x")
	in.Size = 2 << 20 // 2 MB declared against a 1 MB cap
	_, err := svc.Upload(context.Background(), in)
	if !domain.IsValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestUpload_RejectsActualOversize(t *testing.T) {
	svc, _, dir := newTestService(t)

	// Declared size lies; the actual stream exceeds the cap.
	big := strings.Repeat("x", (1<<20)+1)
	in := UploadInput{
		Filename: "big.png",
		MimeType: "image/png",
		Size:     10,
		Reader:   strings.NewReader(big),
	}
	_, err := svc.Upload(context.Background(), in)
	if !domain.IsValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}

	// The partial file must not be left behind.
	entries, readErr := os.ReadDir(dir)
	if readErr != nil {
		t.Fatalf("read dir: %v", readErr)
	}
	if len(entries) != 0 {
		t.Errorf("expected no files after rejected upload, found %d", len(entries))
	}
}

func TestUpload_RemovesFileWhenRecordFails(t *testing.T) {
	svc, repo, dir := newTestService(t)
	repo.createErr = domain.ErrInternal

	_, err := svc.Upload(context.Background(), pngUpload("photo.png", "bytes"))
	if err == nil {
		t.Fatal("expected error from failing repository")
	}

	entries, readErr := os.ReadDir(dir)
	if readErr != nil {
		t.Fatalf("read dir: %v", readErr)
	}
	if len(entries) != 0 {
		t.Errorf("expected stored file rolled back, found %d entries", len(entries))
	}
}

func TestDelete_RemovesRecordAndFile(t *testing.T) {
	svc, repo, dir := newTestService(t)
	ctx := context.Background()

	media, err := svc.Upload(ctx, pngUpload("photo.png", "bytes"))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	if err := svc.Delete(ctx, media.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok := repo.records[media.ID]; ok {
		t.Error("record should be gone")
	}
	if _, err := os.Stat(filepath.Join(dir, media.StoredName)); !os.IsNotExist(err) {
		t.Errorf("stored file should be gone, stat err=%v", err)
	}
}

func TestDelete_MissingFileIsNotAnError(t *testing.T) {
	svc, _, dir := newTestService(t)
	ctx := context.Background()

	media, err := svc.Upload(ctx, pngUpload("photo.png", "bytes"))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if err := os.Remove(filepath.Join(dir, media.StoredName)); err != nil {
		t.Fatalf("remove file: %v", err)
	}

	if err := svc.Delete(ctx, media.ID); err != nil {
		t.Errorf("Delete with missing file: %v", err)
	}
}

func TestDelete_NotFound(t *testing.T) {
	svc, _, _ := newTestService(t)

	err := svc.Delete(context.Background(), 999)
	if !domain.IsNotFound(err) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
