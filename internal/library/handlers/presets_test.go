package handlers

import (
	"bytes"
	"context"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"klwp-gateway/internal/common/logger"
	"klwp-gateway/internal/converter/parser"
	"klwp-gateway/internal/library/client"
	"klwp-gateway/internal/library/repository"
	"klwp-gateway/internal/library/service"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func newTestApp(t *testing.T, converter http.Handler) *fiber.App {
	t.Helper()
	dir := t.TempDir()
	db, err := repository.OpenSQLite(filepath.Join(dir, "library.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := repository.New(db)
	require.NoError(t, repo.Init(context.Background()))
	catalog := service.NewCatalog(repo, service.NewFileStorage(filepath.Join(dir, "presets")))

	upstream := httptest.NewServer(converter)
	t.Cleanup(upstream.Close)

	app := fiber.New()
	NewPresetsHandler(catalog, client.NewConverterClient(upstream.URL, time.Second), logger.Discard()).Register(app)
	return app
}

func fixtureArchive(t *testing.T) []byte {
	t.Helper()
	document, err := os.ReadFile("../../converter/parser/testdata/preset.json")
	require.NoError(t, err)
	archive, err := parser.WriteArchive(document)
	require.NoError(t, err)
	return archive
}

func uploadRequest(t *testing.T, filename string, content []byte) *http.Request {
	t.Helper()
	body := new(bytes.Buffer)
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/presets", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func do(t *testing.T, app *fiber.App, req *http.Request) (int, []byte) {
	t.Helper()
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, body
}

func upload(t *testing.T, app *fiber.App) string {
	t.Helper()
	status, body := do(t, app, uploadRequest(t, "clock.klwp", fixtureArchive(t)))
	require.Equal(t, fiber.StatusCreated, status, string(body))
	return gjson.GetBytes(body, "id").String()
}

func okConverter() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"root":{"items":["0"]}}`))
	})
}

func TestPresetsHandler(t *testing.T) {
	t.Run("Should store an uploaded archive", func(t *testing.T) {
		app := newTestApp(t, okConverter())
		status, body := do(t, app, uploadRequest(t, "clock.klwp", fixtureArchive(t)))

		require.Equal(t, fiber.StatusCreated, status, string(body))
		assert.NotEmpty(t, gjson.GetBytes(body, "id").String())
		assert.Equal(t, "Minimal Clock", gjson.GetBytes(body, "title").String())
		assert.Equal(t, int64(3), gjson.GetBytes(body, "root_items").Int())
	})

	t.Run("Should reject a broken archive", func(t *testing.T) {
		app := newTestApp(t, okConverter())
		status, body := do(t, app, uploadRequest(t, "bad.klwp", []byte("not a zip")))
		assert.Equal(t, fiber.StatusBadRequest, status)
		assert.Contains(t, gjson.GetBytes(body, "error").String(), "malformed container")
	})

	t.Run("Should reject archives the converter cannot normalize", func(t *testing.T) {
		app := newTestApp(t, okConverter())
		info := `{"version":1,"title":"t","description":"","author":"a","email":"","width":1,"height":1,"features":"","release":1,"locked":false,"pflags":0}`

		bad, err := parser.WriteArchive([]byte(`{"preset_info":` + info + `,"preset_root":{"viewgroup_items":[{"internal_type":"TextModule","text_size_type":"FIT"}]}}`))
		require.NoError(t, err)
		status, _ := do(t, app, uploadRequest(t, "bad.klwp", bad))
		assert.Equal(t, fiber.StatusBadRequest, status)

		hollow, err := parser.WriteArchive([]byte(`{"preset_info":` + info + `,"preset_root":{"viewgroup_items":[{"internal_type":"OverlapLayerModule"}]}}`))
		require.NoError(t, err)
		status, _ = do(t, app, uploadRequest(t, "hollow.klwp", hollow))
		assert.Equal(t, fiber.StatusUnprocessableEntity, status)

		status, body := do(t, app, httptest.NewRequest(http.MethodGet, "/presets", nil))
		require.Equal(t, fiber.StatusOK, status)
		assert.Equal(t, int64(0), gjson.GetBytes(body, "total").Int())
	})

	t.Run("Should require the file field", func(t *testing.T) {
		app := newTestApp(t, okConverter())
		req := httptest.NewRequest(http.MethodPost, "/presets", nil)
		status, _ := do(t, app, req)
		assert.Equal(t, fiber.StatusBadRequest, status)
	})

	t.Run("Should list and fetch stored presets", func(t *testing.T) {
		app := newTestApp(t, okConverter())
		id := upload(t, app)
		upload(t, app)

		status, body := do(t, app, httptest.NewRequest(http.MethodGet, "/presets?limit=1", nil))
		require.Equal(t, fiber.StatusOK, status)
		assert.Equal(t, int64(2), gjson.GetBytes(body, "total").Int())
		assert.Equal(t, int64(1), gjson.GetBytes(body, "limit").Int())
		assert.Len(t, gjson.GetBytes(body, "items").Array(), 1)

		status, body = do(t, app, httptest.NewRequest(http.MethodGet, "/presets/"+id, nil))
		require.Equal(t, fiber.StatusOK, status)
		assert.Equal(t, id, gjson.GetBytes(body, "id").String())
	})

	t.Run("Should reject non-integer paging", func(t *testing.T) {
		app := newTestApp(t, okConverter())
		status, _ := do(t, app, httptest.NewRequest(http.MethodGet, "/presets?offset=abc", nil))
		assert.Equal(t, fiber.StatusBadRequest, status)
	})

	t.Run("Should return the stored archive", func(t *testing.T) {
		app := newTestApp(t, okConverter())
		id := upload(t, app)

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/presets/"+id+"/archive", nil))
		require.NoError(t, err)
		defer resp.Body.Close()
		data, err := io.ReadAll(resp.Body)
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, "application/zip", resp.Header.Get("Content-Type"))
		assert.Contains(t, resp.Header.Get("Content-Disposition"), "clock.klwp")
		assert.Equal(t, fixtureArchive(t), data)
	})

	t.Run("Should escape quotes in the archive filename", func(t *testing.T) {
		app := newTestApp(t, okConverter())
		status, body := do(t, app, uploadRequest(t, `my "best".klwp`, fixtureArchive(t)))
		require.Equal(t, fiber.StatusCreated, status, string(body))
		id := gjson.GetBytes(body, "id").String()

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/presets/"+id+"/archive", nil))
		require.NoError(t, err)
		defer resp.Body.Close()

		disposition := resp.Header.Get("Content-Disposition")
		assert.Equal(t, 2, strings.Count(disposition, `"`), disposition)
		kind, params, err := mime.ParseMediaType(disposition)
		require.NoError(t, err)
		assert.Equal(t, "attachment", kind)
		assert.Contains(t, params["filename"], "best")
		assert.Equal(t, "application/zip", resp.Header.Get("Content-Type"))
	})

	t.Run("Should relay the converter response", func(t *testing.T) {
		app := newTestApp(t, okConverter())
		id := upload(t, app)

		status, body := do(t, app, httptest.NewRequest(http.MethodGet, "/presets/"+id+"/normalized", nil))
		assert.Equal(t, fiber.StatusOK, status)
		assert.JSONEq(t, `{"root":{"items":["0"]}}`, string(body))
	})

	t.Run("Should relay converter errors with their status", func(t *testing.T) {
		app := newTestApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`{"error":"schema violation"}`))
		}))
		id := upload(t, app)

		status, body := do(t, app, httptest.NewRequest(http.MethodGet, "/presets/"+id+"/normalized", nil))
		assert.Equal(t, fiber.StatusUnprocessableEntity, status)
		assert.Equal(t, "schema violation", gjson.GetBytes(body, "error").String())
	})

	t.Run("Should answer 404 for unknown ids", func(t *testing.T) {
		app := newTestApp(t, okConverter())
		for _, req := range []*http.Request{
			httptest.NewRequest(http.MethodGet, "/presets/missing", nil),
			httptest.NewRequest(http.MethodGet, "/presets/missing/archive", nil),
			httptest.NewRequest(http.MethodGet, "/presets/missing/normalized", nil),
			httptest.NewRequest(http.MethodDelete, "/presets/missing", nil),
		} {
			status, _ := do(t, app, req)
			assert.Equal(t, fiber.StatusNotFound, status, req.URL.Path)
		}
	})

	t.Run("Should delete a preset", func(t *testing.T) {
		app := newTestApp(t, okConverter())
		id := upload(t, app)

		status, _ := do(t, app, httptest.NewRequest(http.MethodDelete, "/presets/"+id, nil))
		assert.Equal(t, fiber.StatusNoContent, status)

		status, _ = do(t, app, httptest.NewRequest(http.MethodGet, "/presets/"+id, nil))
		assert.Equal(t, fiber.StatusNotFound, status)
	})
}
