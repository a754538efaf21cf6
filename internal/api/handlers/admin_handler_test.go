package handlers

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/TimCalavera/calavera-web/internal/api/middleware"
	"github.com/TimCalavera/calavera-web/internal/models"
	"github.com/TimCalavera/calavera-web/internal/storage"
)

type fakeStrukturRepo struct {
	item      *models.Struktur
	deleteErr error
}

func (f *fakeStrukturRepo) List(ctx context.Context) ([]models.Struktur, error) { return nil, nil }
func (f *fakeStrukturRepo) GetByID(ctx context.Context, id int64) (*models.Struktur, error) {
	if f.item == nil {
		return nil, errors.New("data tidak ditemukan")
	}
	return f.item, nil
}
func (f *fakeStrukturRepo) ListExcept(ctx context.Context, id int64) ([]models.Struktur, error) {
	return nil, nil
}
func (f *fakeStrukturRepo) Create(ctx context.Context, s *models.Struktur) error { return nil }
func (f *fakeStrukturRepo) Update(ctx context.Context, s *models.Struktur, updateFoto bool) error {
	return nil
}
func (f *fakeStrukturRepo) Delete(ctx context.Context, id int64) error { return f.deleteErr }

type fakeGaleriRepo struct {
	item      *models.Galeri
	deleteErr error
}

func (f *fakeGaleriRepo) List(ctx context.Context) ([]models.Galeri, error) { return nil, nil }
func (f *fakeGaleriRepo) GetByID(ctx context.Context, id int64) (*models.Galeri, error) {
	if f.item == nil {
		return nil, errors.New("data tidak ditemukan")
	}
	return f.item, nil
}
func (f *fakeGaleriRepo) Create(ctx context.Context, g *models.Galeri) error { return nil }
func (f *fakeGaleriRepo) UpdateCaption(ctx context.Context, id int64, caption string) error {
	return nil
}
func (f *fakeGaleriRepo) Delete(ctx context.Context, id int64) error { return f.deleteErr }

func testRenderer(t *testing.T) *Renderer {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "edit.html"), []byte("{{.Title}}"), 0o644); err != nil {
		t.Fatal(err)
	}
	renderer, err := NewRenderer(dir)
	if err != nil {
		t.Fatal(err)
	}
	return renderer
}

func adminFixture(t *testing.T, strukturRepo *fakeStrukturRepo, galeriRepo *fakeGaleriRepo) (*AdminHandler, *storage.UploadStore) {
	t.Helper()
	uploads, err := storage.NewUploadStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	sessions := middleware.NewSessionManager("test-secret")
	handler := NewAdminHandler(testRenderer(t), sessions, uploads, strukturRepo, nil, nil, nil, galeriRepo)
	return handler, uploads
}

func writeUpload(t *testing.T, uploads *storage.UploadStore, name string) string {
	t.Helper()
	path := filepath.Join(uploads.BaseDir(), name)
	if err := os.WriteFile(path, []byte("img"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDeleteStrukturPhotoCleanup(t *testing.T) {
	t.Run("photo removed after the row", func(t *testing.T) {
		repo := &fakeStrukturRepo{item: &models.Struktur{
			ID: 1, Nama: "Wali", Foto: sql.NullString{String: "wali.png", Valid: true},
		}}
		handler, uploads := adminFixture(t, repo, &fakeGaleriRepo{})
		path := writeUpload(t, uploads, "wali.png")

		req := httptest.NewRequest(http.MethodPost, "/admin/struktur/delete/1", nil)
		handler.DeleteStruktur(httptest.NewRecorder(), req, 1)

		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Errorf("photo should be gone after a successful delete")
		}
	})

	t.Run("photo kept when the row delete fails", func(t *testing.T) {
		repo := &fakeStrukturRepo{
			item:      &models.Struktur{ID: 1, Nama: "Wali", Foto: sql.NullString{String: "wali.png", Valid: true}},
			deleteErr: errors.New("lock wait timeout"),
		}
		handler, uploads := adminFixture(t, repo, &fakeGaleriRepo{})
		path := writeUpload(t, uploads, "wali.png")

		req := httptest.NewRequest(http.MethodPost, "/admin/struktur/delete/1", nil)
		handler.DeleteStruktur(httptest.NewRecorder(), req, 1)

		if _, err := os.Stat(path); err != nil {
			t.Errorf("photo must survive a failed delete: %v", err)
		}
	})
}

func TestDeleteGaleriPhotoCleanup(t *testing.T) {
	t.Run("photo kept when the row delete fails", func(t *testing.T) {
		repo := &fakeGaleriRepo{
			item:      &models.Galeri{ID: 1, Filename: "kelas.jpg"},
			deleteErr: errors.New("lock wait timeout"),
		}
		handler, uploads := adminFixture(t, &fakeStrukturRepo{}, repo)
		path := writeUpload(t, uploads, "kelas.jpg")

		req := httptest.NewRequest(http.MethodPost, "/admin/galeri/delete/1", nil)
		handler.DeleteGaleri(httptest.NewRecorder(), req, 1)

		if _, err := os.Stat(path); err != nil {
			t.Errorf("photo must survive a failed delete: %v", err)
		}
	})

	t.Run("photo removed after the row", func(t *testing.T) {
		repo := &fakeGaleriRepo{item: &models.Galeri{ID: 1, Filename: "kelas.jpg"}}
		handler, uploads := adminFixture(t, &fakeStrukturRepo{}, repo)
		path := writeUpload(t, uploads, "kelas.jpg")

		req := httptest.NewRequest(http.MethodPost, "/admin/galeri/delete/1", nil)
		handler.DeleteGaleri(httptest.NewRecorder(), req, 1)

		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Errorf("photo should be gone after a successful delete")
		}
	})
}
