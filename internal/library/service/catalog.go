package service

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"klwp-gateway/internal/library/models"
	"klwp-gateway/internal/library/repository"

	"github.com/google/uuid"
)

// CreatedAtLayout: фиксированная ширина, чтобы строки сортировались как время.
const CreatedAtLayout = "2006-01-02T15:04:05.000000Z"

const (
	DefaultPageSize = 50
	MaxPageSize     = 200
)

// ============================================================
// Catalog
// ============================================================

// Catalog связывает записи в sqlite с архивами на диске.
type Catalog struct {
	repo    *repository.Repository
	storage *FileStorage
	now     func() time.Time
}

func NewCatalog(repo *repository.Repository, storage *FileStorage) *Catalog {
	return &Catalog{
		repo:    repo,
		storage: storage,
		now:     time.Now,
	}
}

// Upload проверяет архив, сохраняет файл и создает запись.
func (c *Catalog) Upload(ctx context.Context, filename string, archive []byte) (*models.PresetRecord, error) {
	meta, err := ExtractMetadata(archive)
	if err != nil {
		return nil, err
	}

	record := &models.PresetRecord{
		ID:          uuid.NewString(),
		Filename:    filepath.Base(filename),
		Title:       meta.Title,
		Author:      meta.Author,
		Description: meta.Description,
		Width:       meta.Width,
		Height:      meta.Height,
		Release:     meta.Release,
		RootItems:   meta.RootItems,
		Size:        int64(len(archive)),
		CreatedAt:   c.now().UTC().Format(CreatedAtLayout),
	}

	if err := c.storage.Save(record.ID, archive); err != nil {
		return nil, fmt.Errorf("save archive: %w", err)
	}
	if err := c.repo.Insert(ctx, record); err != nil {
		_ = c.storage.Remove(record.ID)
		return nil, err
	}
	return record, nil
}

func (c *Catalog) Get(ctx context.Context, id string) (*models.PresetRecord, error) {
	return c.repo.GetByID(ctx, id)
}

// List нормализует limit/offset и возвращает страницу каталога.
func (c *Catalog) List(ctx context.Context, limit, offset int) (*models.PresetPage, error) {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	if offset < 0 {
		offset = 0
	}

	items, total, err := c.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	return &models.PresetPage{Items: items, Total: total, Limit: limit, Offset: offset}, nil
}

// Archive возвращает запись и байты архива.
func (c *Catalog) Archive(ctx context.Context, id string) (*models.PresetRecord, []byte, error) {
	record, err := c.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	data, err := c.storage.Read(id)
	if err != nil {
		return nil, nil, fmt.Errorf("read archive: %w", err)
	}
	return record, data, nil
}

func (c *Catalog) Delete(ctx context.Context, id string) error {
	if err := c.repo.Delete(ctx, id); err != nil {
		return err
	}
	return c.storage.Remove(id)
}

func (c *Catalog) Ready(ctx context.Context) error {
	return c.repo.Ping(ctx)
}
