package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrTooLarge         = errors.New("file too large")
	ErrUnsupportedType  = errors.New("unsupported file type")
	allowedResumeFormat = map[string]bool{".pdf": true, ".doc": true, ".docx": true, ".rtf": true, ".txt": true}
)

// Local stores uploads on disk under Dir and exposes them below PublicPrefix.
type Local struct {
	Dir          string
	PublicPrefix string
	MaxBytes     int64
}

func NewLocal(dir string, maxBytes int64) *Local {
	return &Local{Dir: dir, PublicPrefix: "/uploads", MaxBytes: maxBytes}
}

// SaveResume writes r under a random name keeping the original extension and
// returns the public URL. At most MaxBytes are accepted.
func (l *Local) SaveResume(filename string, size int64, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedResumeFormat[ext] {
		return "", ErrUnsupportedType
	}
	if l.MaxBytes > 0 && size > l.MaxBytes {
		return "", ErrTooLarge
	}

	if err := os.MkdirAll(l.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	name := uuid.NewString() + ext
	path := filepath.Join(l.Dir, name)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("create upload: %w", err)
	}

	src := r
	if l.MaxBytes > 0 {
		src = io.LimitReader(r, l.MaxBytes+1)
	}
	n, copyErr := io.Copy(f, src)
	closeErr := f.Close()
	if copyErr == nil && l.MaxBytes > 0 && n > l.MaxBytes {
		copyErr = ErrTooLarge
	}
	if copyErr != nil || closeErr != nil {
		_ = os.Remove(path)
		if copyErr != nil {
			return "", copyErr
		}
		return "", closeErr
	}

	return l.PublicPrefix + "/" + name, nil
}

// Remove deletes a file previously returned by SaveResume. Unknown URLs are
// ignored.
func (l *Local) Remove(url string) error {
	name := strings.TrimPrefix(url, l.PublicPrefix+"/")
	if name == url || name == "" || strings.ContainsAny(name, `/\`) {
		return nil
	}
	err := os.Remove(filepath.Join(l.Dir, name))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
