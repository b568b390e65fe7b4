package helper

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// FileStore menyimpan hasil upload dan mengembalikan URL publik.
type FileStore interface {
	Put(ctx context.Context, key string, data []byte) (string, error)
}

// LocalStore menulis ke disk (UPLOAD_DIR), disajikan fiber Static di BaseURL.
type LocalStore struct {
	Dir     string
	BaseURL string
}

func NewLocalStore(dir, baseURL string) *LocalStore {
	if dir == "" {
		dir = "./uploads"
	}
	if baseURL == "" {
		baseURL = "/uploads"
	}
	return &LocalStore{Dir: dir, BaseURL: strings.TrimRight(baseURL, "/")}
}

func (s *LocalStore) Put(ctx context.Context, key string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	key = strings.TrimLeft(path.Clean("/"+key), "/")
	full := filepath.Join(s.Dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("gagal membuat folder upload: %w", err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", fmt.Errorf("gagal menyimpan file: %w", err)
	}
	return s.BaseURL + "/" + key, nil
}

// PhotoKey: orders/<order_id>/<kind>/<yyyymmdd>-<uuid>.webp
func PhotoKey(folder, kind string) string {
	return fmt.Sprintf("%s/%s/%s-%s.webp", folder, Slugify(kind, 40), time.Now().Format("20060102"), uuid.NewString())
}
