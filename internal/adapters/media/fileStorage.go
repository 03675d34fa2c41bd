package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/gofrs/uuid"
)

const (
	maxStemLen = 100
	maxExtLen  = 16
)

// FileStorage keeps media under Root and serves it below BaseURL.
type FileStorage struct {
	Root    string
	BaseURL string
}

func NewFileStorage(root, baseURL string) *FileStorage {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &FileStorage{Root: root, BaseURL: baseURL}
}

// Save writes content to dir/filename. When the name is taken a random
// suffix is added before the extension. The returned path is relative to Root
// and always uses forward slashes.
func (s *FileStorage) Save(ctx context.Context, dir, filename string, content io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := cleanName(filename)
	if err := os.MkdirAll(filepath.Join(s.Root, dir), 0o755); err != nil {
		return "", fmt.Errorf("creating media dir: %w", err)
	}

	ext := path.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	candidate := name
	for attempt := 0; attempt < 5; attempt++ {
		rel := path.Join(dir, candidate)
		f, err := os.OpenFile(filepath.Join(s.Root, filepath.FromSlash(rel)), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, os.ErrExist) {
			candidate = stem + "_" + uuid.Must(uuid.NewV4()).String()[:7] + ext
			continue
		}
		if err != nil {
			return "", fmt.Errorf("creating media file: %w", err)
		}
		if _, err := io.Copy(f, content); err != nil {
			f.Close()
			_ = os.Remove(f.Name())
			return "", fmt.Errorf("writing media file: %w", err)
		}
		if err := f.Close(); err != nil {
			return "", fmt.Errorf("closing media file: %w", err)
		}
		return rel, nil
	}
	return "", fmt.Errorf("no free name for %q in %q", name, dir)
}

func (s *FileStorage) Delete(ctx context.Context, rel string) error {
	err := os.Remove(filepath.Join(s.Root, filepath.FromSlash(rel)))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

func (s *FileStorage) URL(rel string) string {
	return s.BaseURL + rel
}

func cleanName(filename string) string {
	name := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	name = strings.ReplaceAll(name, " ", "_")
	if name == "." || name == "/" || name == "" || name == ".." {
		name = uuid.Must(uuid.NewV4()).String()
	}

	// keeps dir/name plus a collision suffix inside a varchar(255) column
	ext := path.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	if len(ext) > maxExtLen {
		ext = ""
	}
	return truncate(stem, maxStemLen) + ext
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
