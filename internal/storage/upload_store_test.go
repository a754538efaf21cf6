package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSafeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"foto.jpg", "foto.jpg"},
		{"../../etc/passwd", "passwd"},
		{"nama spasi.png", "nama_spasi.png"},
		{"weird$#!.gif", "weird___.gif"},
		{"...", "file"},
		{"", "file"},
	}

	for _, tt := range tests {
		if got := SafeFilename(tt.in); got != tt.want {
			t.Errorf("SafeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSavePhoto(t *testing.T) {
	store, err := NewUploadStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewUploadStore: %v", err)
	}

	filename, err := store.SavePhoto("siswa", "siswa", "foto profil.jpg", strings.NewReader("imgdata"))
	if err != nil {
		t.Fatalf("SavePhoto: %v", err)
	}
	if !strings.HasPrefix(filename, "siswa_") || !strings.HasSuffix(filename, "_foto_profil.jpg") {
		t.Errorf("unexpected filename %q", filename)
	}

	data, err := os.ReadFile(filepath.Join(store.BaseDir(), "siswa", filename))
	if err != nil {
		t.Fatalf("stored file missing: %v", err)
	}
	if string(data) != "imgdata" {
		t.Errorf("stored content = %q", data)
	}
}

func TestRemovePhotoMissingFile(t *testing.T) {
	store, err := NewUploadStore(t.TempDir())
	propagate(t, err)

	// Must not panic or create anything.
	store.RemovePhoto("", "tidak-ada.jpg")
	store.RemovePhoto("siswa", "")
}

func TestChatUploadLifecycle(t *testing.T) {
	store, err := NewUploadStore(t.TempDir())
	propagate(t, err)

	session := "abc-123"
	path, url, err := store.SaveChatUpload(session, "chat", "gambar.png", []byte("png"))
	if err != nil {
		t.Fatalf("SaveChatUpload: %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("chat upload not on disk: %v", err)
	}
	if !strings.HasPrefix(url, "/static/img/chat/abc-123/") {
		t.Errorf("unexpected url %q", url)
	}

	if err := store.ClearChat(session); err != nil {
		t.Fatalf("ClearChat: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("chat upload still present after clear")
	}
}

func TestClearChatScopedToSession(t *testing.T) {
	store, err := NewUploadStore(t.TempDir())
	propagate(t, err)

	pathA, _, err := store.SaveChatUpload("sesi-a", "chat", "a.png", []byte("a"))
	propagate(t, err)
	pathB, _, err := store.SaveChatUpload("sesi-b", "chat", "b.png", []byte("b"))
	propagate(t, err)

	if err := store.ClearChat("sesi-a"); err != nil {
		t.Fatalf("ClearChat: %v", err)
	}

	if _, err := os.Stat(pathA); !os.IsNotExist(err) {
		t.Errorf("session a upload should be gone")
	}
	if _, err := os.Stat(pathB); err != nil {
		t.Errorf("session b upload should survive: %v", err)
	}
}

func TestClearChatUnknownSession(t *testing.T) {
	store, err := NewUploadStore(t.TempDir())
	propagate(t, err)

	if err := store.ClearChat("belum-pernah-chat"); err != nil {
		t.Errorf("clearing an unknown session should be a no-op, got %v", err)
	}
}

func propagate(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
}
