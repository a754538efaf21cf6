package storage

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// UploadStore owns the upload tree: admin photos at the root and per-student
// photos under siswa/, with transient chat attachments scoped per chat session
// under chat/<session id>/.
type UploadStore struct {
	baseDir string
}

func NewUploadStore(baseDir string) (*UploadStore, error) {
	for _, dir := range []string{baseDir, filepath.Join(baseDir, "siswa"), filepath.Join(baseDir, "chat")} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create upload dir %s: %w", dir, err)
		}
	}
	return &UploadStore{baseDir: baseDir}, nil
}

func (s *UploadStore) BaseDir() string {
	return s.baseDir
}

// SafeFilename strips path components and anything outside a conservative
// character set from an uploaded filename.
func SafeFilename(name string) string {
	name = filepath.Base(name)
	var sb strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '-', r == '_':
			sb.WriteRune(r)
		default:
			sb.WriteRune('_')
		}
	}
	cleaned := strings.Trim(sb.String(), "._")
	if cleaned == "" {
		cleaned = "file"
	}
	return cleaned
}

func timestamped(prefix, name string) string {
	stamp := time.Now().Format("20060102_150405")
	if prefix != "" {
		return fmt.Sprintf("%s_%s_%s", prefix, stamp, SafeFilename(name))
	}
	return fmt.Sprintf("%s_%s", stamp, SafeFilename(name))
}

// SavePhoto stores an admin-area photo under the given subdir ("" or "siswa")
// with a timestamped name and returns that name.
func (s *UploadStore) SavePhoto(subdir, prefix, originalName string, data io.Reader) (string, error) {
	filename := timestamped(prefix, originalName)
	dir := filepath.Join(s.baseDir, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	out, err := os.Create(filepath.Join(dir, filename))
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, data); err != nil {
		return "", err
	}
	return filename, nil
}

// RemovePhoto deletes a stored photo. A missing file is a no-op, not an error.
func (s *UploadStore) RemovePhoto(subdir, filename string) {
	if filename == "" {
		return
	}
	path := filepath.Join(s.baseDir, subdir, filepath.Base(filename))
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Printf("⚠️ failed to delete %s: %v", path, err)
	}
}

// ChatDir returns (and creates) the chat-upload directory for one session.
func (s *UploadStore) ChatDir(sessionID string) (string, error) {
	dir := filepath.Join(s.baseDir, "chat", SafeFilename(sessionID))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

// SaveChatUpload stores a chat attachment for one session and returns the
// on-disk path plus the URL the frontend uses to show it.
func (s *UploadStore) SaveChatUpload(sessionID, prefix, originalName string, data []byte) (string, string, error) {
	dir, err := s.ChatDir(sessionID)
	if err != nil {
		return "", "", err
	}

	filename := timestamped(prefix, originalName)
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", "", err
	}

	url := fmt.Sprintf("/static/img/chat/%s/%s", SafeFilename(sessionID), filename)
	return path, url, nil
}

// RemoveFile deletes a file by absolute path, best effort.
func (s *UploadStore) RemoveFile(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Printf("⚠️ failed to delete %s: %v", path, err)
	}
}

// ClearChat removes every attachment belonging to one chat session.
func (s *UploadStore) ClearChat(sessionID string) error {
	dir := filepath.Join(s.baseDir, "chat", SafeFilename(sessionID))
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if err := os.Remove(filepath.Join(dir, entry.Name())); err != nil {
			log.Printf("⚠️ failed to delete %s: %v", entry.Name(), err)
		}
	}
	return nil
}
