package proxy

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"klwp-gateway/internal/common/logger"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

// echoServer отвечает методом, путем, query и телом запроса.
func echoServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte(`{"method":"` + r.Method + `","path":"` + r.URL.Path + `","query":"` + r.URL.RawQuery + `","body":"` + string(body) + `"}`))
	}))
	t.Cleanup(server.Close)
	return server
}

func newTestApp(converterURL, libraryURL string) *fiber.App {
	app := fiber.New()
	Mount(app.Group(APIPrefix), New(logger.Discard(), time.Second), converterURL, libraryURL)
	return app
}

func call(t *testing.T, app *fiber.App, req *http.Request) (int, []byte) {
	t.Helper()
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, body
}

func TestMount(t *testing.T) {
	t.Run("Should forward converter routes with method and body", func(t *testing.T) {
		converter := echoServer(t)
		app := newTestApp(converter.URL, "http://127.0.0.1:1")

		req := httptest.NewRequest(http.MethodPost, APIPrefix+"/normalize", strings.NewReader("payload"))
		status, body := call(t, app, req)

		assert.Equal(t, http.StatusAccepted, status)
		assert.Equal(t, "POST", gjson.GetBytes(body, "method").String())
		assert.Equal(t, "/normalize", gjson.GetBytes(body, "path").String())
		assert.Equal(t, "payload", gjson.GetBytes(body, "body").String())
	})

	t.Run("Should map preset paths and keep the query string", func(t *testing.T) {
		library := echoServer(t)
		app := newTestApp("http://127.0.0.1:1", library.URL)

		status, body := call(t, app, httptest.NewRequest(http.MethodGet, APIPrefix+"/presets?limit=5&offset=10", nil))
		assert.Equal(t, http.StatusAccepted, status)
		assert.Equal(t, "/presets", gjson.GetBytes(body, "path").String())
		assert.Equal(t, "limit=5&offset=10", gjson.GetBytes(body, "query").String())

		_, body = call(t, app, httptest.NewRequest(http.MethodDelete, APIPrefix+"/presets/abc", nil))
		assert.Equal(t, "DELETE", gjson.GetBytes(body, "method").String())
		assert.Equal(t, "/presets/abc", gjson.GetBytes(body, "path").String())
	})

	t.Run("Should answer 502 when the upstream is down", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		url := server.URL
		server.Close()

		app := newTestApp(url, url)
		status, body := call(t, app, httptest.NewRequest(http.MethodGet, APIPrefix+"/schema", nil))
		assert.Equal(t, fiber.StatusBadGateway, status)
		assert.Equal(t, "failed to reach upstream service", gjson.GetBytes(body, "error").String())
	})
}
