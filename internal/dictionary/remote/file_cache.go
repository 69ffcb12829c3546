package remote

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// FileCache keeps downloaded dictionaries on disk, one file per URL.
type FileCache struct {
	rootDir string
}

func NewFileCache(cacheDirectory string) *FileCache {
	return &FileCache{
		rootDir: cacheDirectory,
	}
}

func (f *FileCache) filePath(url string) string {
	sum := sha256.Sum256([]byte(url))
	return filepath.Join(f.rootDir, hex.EncodeToString(sum[:])+".dict")
}

func (cache *FileCache) cache(url string, f func() ([]byte, error)) ([]byte, error) {
	localFilePath := cache.filePath(url)
	if _, err := os.Stat(localFilePath); err == nil {
		contents, err := cache.read(url)
		if err != nil {
			return nil, fmt.Errorf("cache.read > %w", err)
		}
		return contents, nil
	}

	contents, err := f()
	if err != nil {
		return nil, fmt.Errorf("download %s > %w", url, err)
	}

	if err := os.MkdirAll(cache.rootDir, 0o755); err != nil {
		return contents, fmt.Errorf("os.MkdirAll > %w", err)
	}
	file, err := os.Create(localFilePath)
	if err != nil {
		return contents, fmt.Errorf("os.Create > %w", err)
	}
	defer func() {
		_ = file.Close()
	}()
	if _, err := file.Write(contents); err != nil {
		return contents, fmt.Errorf("file.Write > %w", err)
	}
	return contents, nil
}

func (cache *FileCache) read(url string) ([]byte, error) {
	file, err := os.Open(cache.filePath(url))
	if err != nil {
		return nil, fmt.Errorf("os.Open > %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	contents, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("io.ReadAll > %w", err)
	}
	return contents, nil
}
