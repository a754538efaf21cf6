package parser

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func TestParseTxt(t *testing.T) {
	t.Run("utf-8 content", func(t *testing.T) {
		path := writeTemp(t, "catatan.txt", []byte("materi ujian bab 3\nhalaman 42"))
		got := Parse(path, "txt")
		if got != "materi ujian bab 3\nhalaman 42" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("latin-1 fallback", func(t *testing.T) {
		// 0xE9 is é in Latin-1 and invalid as a standalone UTF-8 byte.
		path := writeTemp(t, "latin.txt", []byte{'c', 'a', 'f', 0xE9})
		got := Parse(path, "txt")
		if got != "café" {
			t.Errorf("got %q", got)
		}
		if IsWarning(got) {
			t.Errorf("latin-1 content should not warn: %q", got)
		}
	})

	t.Run("missing file warns", func(t *testing.T) {
		got := Parse(filepath.Join(t.TempDir(), "hilang.txt"), "txt")
		if !IsWarning(got) {
			t.Errorf("expected warning, got %q", got)
		}
	})
}

func TestParseUnknownExtension(t *testing.T) {
	got := Parse("whatever.xyz", "xyz")
	if !IsWarning(got) {
		t.Fatalf("expected warning, got %q", got)
	}
	if got != "⚠️ Format file .xyz belum didukung." {
		t.Errorf("got %q", got)
	}
}

func TestParseInvalidPDF(t *testing.T) {
	path := writeTemp(t, "rusak.pdf", []byte("not a pdf at all"))
	got := Parse(path, "pdf")
	if !IsWarning(got) {
		t.Errorf("expected warning for invalid pdf, got %q", got)
	}
}

func TestParseInvalidDocx(t *testing.T) {
	path := writeTemp(t, "rusak.docx", []byte("not a zip archive"))
	got := Parse(path, "docx")
	if !IsWarning(got) {
		t.Errorf("expected warning for invalid docx, got %q", got)
	}
}

func TestIsWarning(t *testing.T) {
	if IsWarning("teks biasa") {
		t.Error("plain text flagged as warning")
	}
	if !IsWarning("⚠️ ada masalah") {
		t.Error("warning text not detected")
	}
}
