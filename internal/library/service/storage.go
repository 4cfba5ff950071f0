package service

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ============================================================
// File Storage
// ============================================================

// FileStorage хранит архивы пресетов как <root>/<id>.klwp
type FileStorage struct {
	root string
}

func NewFileStorage(root string) *FileStorage {
	return &FileStorage{root: root}
}

func (s *FileStorage) ArchivePath(id string) string {
	return filepath.Join(s.root, id+".klwp")
}

func (s *FileStorage) EnsureDir() error {
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return fmt.Errorf("mkdir storage dir: %w", err)
	}
	return nil
}

func (s *FileStorage) Save(id string, data []byte) error {
	if err := s.EnsureDir(); err != nil {
		return err
	}
	return os.WriteFile(s.ArchivePath(id), data, 0o644)
}

func (s *FileStorage) Read(id string) ([]byte, error) {
	return os.ReadFile(s.ArchivePath(id))
}

// Remove не считает ошибкой отсутствие файла.
func (s *FileStorage) Remove(id string) error {
	if err := os.Remove(s.ArchivePath(id)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove archive: %w", err)
	}
	return nil
}
