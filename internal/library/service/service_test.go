package service

import (
	"archive/zip"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"klwp-gateway/internal/converter/models"
	"klwp-gateway/internal/converter/parser"
	"klwp-gateway/internal/library/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const infoJSON = `{"version":1,"title":"t","description":"","author":"a","email":"","width":1080,"height":1920,"features":"","release":1,"locked":false,"pflags":0}`

func fixtureArchive(t *testing.T) []byte {
	t.Helper()
	document, err := os.ReadFile("../../converter/parser/testdata/preset.json")
	require.NoError(t, err)
	archive, err := parser.WriteArchive(document)
	require.NoError(t, err)
	return archive
}

func archiveOf(t *testing.T, document string) []byte {
	t.Helper()
	archive, err := parser.WriteArchive([]byte(document))
	require.NoError(t, err)
	return archive
}

func newTestCatalog(t *testing.T) (*Catalog, *FileStorage) {
	t.Helper()
	dir := t.TempDir()
	db, err := repository.OpenSQLite(filepath.Join(dir, "library.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := repository.New(db)
	require.NoError(t, repo.Init(context.Background()))

	storage := NewFileStorage(filepath.Join(dir, "presets"))
	return NewCatalog(repo, storage), storage
}

func TestExtractMetadata(t *testing.T) {
	t.Run("Should read preset_info and count root items", func(t *testing.T) {
		meta, err := ExtractMetadata(fixtureArchive(t))
		require.NoError(t, err)

		assert.Equal(t, "Minimal Clock", meta.Title)
		assert.Equal(t, "kustom-user", meta.Author)
		assert.Equal(t, 1080, meta.Width)
		assert.Equal(t, 2400, meta.Height)
		assert.Equal(t, 3, meta.Release)
		assert.Equal(t, 3, meta.RootItems)
	})

	t.Run("Should reject archives without preset.json", func(t *testing.T) {
		buf := new(bytes.Buffer)
		w := zip.NewWriter(buf)
		_, err := w.Create("readme.txt")
		require.NoError(t, err)
		require.NoError(t, w.Close())

		_, err = ExtractMetadata(buf.Bytes())
		assert.ErrorIs(t, err, models.ErrMalformedContainer)
	})

	t.Run("Should reject documents that are not valid presets", func(t *testing.T) {
		cases := []string{
			`{"preset_info":`,
			`{"preset_root":{"viewgroup_items":[]}}`,
			`{"preset_info":{},"preset_root":{}}`,
			`{"preset_info":{},"preset_root":{"viewgroup_items":{}}}`,
			`{"preset_info":{"title":"t"},"preset_root":{"viewgroup_items":[]}}`,
			`{"preset_info":` + infoJSON + `,"preset_root":{"viewgroup_items":[{"internal_type":"ShapeModule","shape_type":"HEART"}]}}`,
		}
		for _, doc := range cases {
			_, err := ExtractMetadata(archiveOf(t, doc))
			assert.ErrorIs(t, err, models.ErrMalformedDocument, doc)
		}
	})

	t.Run("Should reject presets that cannot be normalized", func(t *testing.T) {
		doc := `{"preset_info":` + infoJSON + `,"preset_root":{"viewgroup_items":[{"internal_type":"StackLayerModule"}]}}`
		_, err := ExtractMetadata(archiveOf(t, doc))
		assert.ErrorIs(t, err, models.ErrSchemaViolation)
	})
}

func TestFileStorage(t *testing.T) {
	t.Run("Should save read and remove archives", func(t *testing.T) {
		storage := NewFileStorage(filepath.Join(t.TempDir(), "nested", "presets"))

		require.NoError(t, storage.Save("id-1", []byte("zip")))
		assert.FileExists(t, storage.ArchivePath("id-1"))

		data, err := storage.Read("id-1")
		require.NoError(t, err)
		assert.Equal(t, []byte("zip"), data)

		require.NoError(t, storage.Remove("id-1"))
		assert.NoFileExists(t, storage.ArchivePath("id-1"))
		assert.NoError(t, storage.Remove("id-1"))
	})
}

func TestCatalog(t *testing.T) {
	ctx := context.Background()

	t.Run("Should upload and fetch a preset", func(t *testing.T) {
		catalog, storage := newTestCatalog(t)
		archive := fixtureArchive(t)

		record, err := catalog.Upload(ctx, "../../clock.klwp", archive)
		require.NoError(t, err)
		assert.NotEmpty(t, record.ID)
		assert.Equal(t, "clock.klwp", record.Filename)
		assert.Equal(t, "Minimal Clock", record.Title)
		assert.Equal(t, int64(len(archive)), record.Size)
		assert.FileExists(t, storage.ArchivePath(record.ID))

		got, data, err := catalog.Archive(ctx, record.ID)
		require.NoError(t, err)
		assert.Equal(t, record, got)
		assert.Equal(t, archive, data)
	})

	t.Run("Should not store rejected uploads", func(t *testing.T) {
		catalog, _ := newTestCatalog(t)
		_, err := catalog.Upload(ctx, "bad.klwp", []byte("not a zip"))
		assert.ErrorIs(t, err, models.ErrMalformedContainer)

		page, err := catalog.List(ctx, 0, 0)
		require.NoError(t, err)
		assert.Equal(t, 0, page.Total)
	})

	t.Run("Should not store presets with an unknown shape", func(t *testing.T) {
		catalog, _ := newTestCatalog(t)
		doc := `{"preset_info":` + infoJSON + `,"preset_root":{"viewgroup_items":[{"internal_type":"ShapeModule","shape_type":"HEART"}]}}`
		_, err := catalog.Upload(ctx, "heart.klwp", archiveOf(t, doc))
		assert.ErrorIs(t, err, models.ErrMalformedDocument)

		page, err := catalog.List(ctx, 0, 0)
		require.NoError(t, err)
		assert.Equal(t, 0, page.Total)
	})

	t.Run("Should clamp paging", func(t *testing.T) {
		catalog, _ := newTestCatalog(t)
		base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
		for i := 0; i < 3; i++ {
			at := base.Add(time.Duration(i) * time.Second)
			catalog.now = func() time.Time { return at }
			_, err := catalog.Upload(ctx, "p.klwp", fixtureArchive(t))
			require.NoError(t, err)
		}

		page, err := catalog.List(ctx, 1000, -5)
		require.NoError(t, err)
		assert.Equal(t, MaxPageSize, page.Limit)
		assert.Equal(t, 0, page.Offset)
		assert.Equal(t, 3, page.Total)
		assert.Len(t, page.Items, 3)
		assert.Equal(t, "2026-03-01T12:00:02.000000Z", page.Items[0].CreatedAt)

		page, err = catalog.List(ctx, 0, 0)
		require.NoError(t, err)
		assert.Equal(t, DefaultPageSize, page.Limit)
	})

	t.Run("Should delete the record and the file", func(t *testing.T) {
		catalog, storage := newTestCatalog(t)
		record, err := catalog.Upload(ctx, "p.klwp", fixtureArchive(t))
		require.NoError(t, err)

		require.NoError(t, catalog.Delete(ctx, record.ID))
		assert.NoFileExists(t, storage.ArchivePath(record.ID))

		_, err = catalog.Get(ctx, record.ID)
		assert.ErrorIs(t, err, repository.ErrNotFound)
		assert.ErrorIs(t, catalog.Delete(ctx, record.ID), repository.ErrNotFound)
	})
}
