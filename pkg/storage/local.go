package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// LocalStore writes uploads to a directory on disk and serves them
// through the app's /uploads static route.
type LocalStore struct {
	baseDir   string
	baseURL   string
	maxUpload int64
}

func NewLocalStore(baseDir, baseURL string, maxUpload int64) (*LocalStore, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &LocalStore{
		baseDir:   baseDir,
		baseURL:   strings.TrimRight(baseURL, "/"),
		maxUpload: maxUpload,
	}, nil
}

// Save stores an uploaded file under the given subdirectory and returns
// the stored path and its public URL.
func (s *LocalStore) Save(subdir string, file *multipart.FileHeader, ownerKey string) (string, string, error) {
	if s.maxUpload > 0 && file.Size > s.maxUpload {
		return "", "", fmt.Errorf("file too large (max %d bytes)", s.maxUpload)
	}

	src, err := file.Open()
	if err != nil {
		return "", "", err
	}
	defer src.Close()

	dir := filepath.Join(s.baseDir, subdir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", "", err
	}

	ext := filepath.Ext(file.Filename)
	filename := fmt.Sprintf("%s_%d%s", ownerKey, time.Now().UnixNano(), ext)
	dstPath := filepath.Join(dir, filename)

	dst, err := os.Create(dstPath)
	if err != nil {
		return "", "", err
	}
	defer dst.Close()

	if _, err = io.Copy(dst, src); err != nil {
		os.Remove(dstPath)
		return "", "", err
	}

	publicURL := fmt.Sprintf("%s/uploads/%s/%s", s.baseURL, subdir, filename)
	return dstPath, publicURL, nil
}

// Promote moves a staged file into its final subdirectory and returns
// the stored path and public URL.
func (s *LocalStore) Promote(stagedPath, subdir string) (string, string, error) {
	dir := filepath.Join(s.baseDir, subdir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", "", err
	}

	filename := filepath.Base(stagedPath)
	dstPath := filepath.Join(dir, filename)
	if err := os.Rename(stagedPath, dstPath); err != nil {
		return "", "", err
	}

	publicURL := fmt.Sprintf("%s/uploads/%s/%s", s.baseURL, subdir, filename)
	return dstPath, publicURL, nil
}

// Remove deletes a stored file. Missing files are not an error.
func (s *LocalStore) Remove(storagePath string) error {
	if storagePath == "" {
		return nil
	}
	if err := os.Remove(storagePath); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// BaseDir exposes the root directory for the static file route.
func (s *LocalStore) BaseDir() string {
	return s.baseDir
}
