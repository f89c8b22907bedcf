package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/vidask/vidask/internal/api/handlers"
	"github.com/vidask/vidask/internal/config"
	"github.com/vidask/vidask/internal/models"
	"github.com/vidask/vidask/internal/services/analyzer"
)

func newTestRouter(t *testing.T, staticDir string) *Router {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Server: config.ServerConfig{Host: "localhost", Port: "8080", StaticDir: staticDir},
		API:    config.APIConfig{RateLimitRPS: 100, RateLimitBurst: 100},
	}
	return NewRouter(cfg, handlers.NewAnalyzeHandler(analyzer.New(nil, nil, nil)), handlers.NewHealthHandler())
}

func TestUnknownAPIPathReturnsJSONWithoutStaticDir(t *testing.T) {
	r := newTestRouter(t, "does/not/exist")

	req := httptest.NewRequest(http.MethodGet, "/api/nope", nil)
	w := httptest.NewRecorder()
	r.Engine().ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	var resp models.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unknown API path must return JSON, got %q: %v", w.Body.String(), err)
	}
	if resp.Error != "Not found" {
		t.Errorf("Error = %q, want %q", resp.Error, "Not found")
	}
}

func TestUnknownPathsWithStaticDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>app</html>"), 0o644); err != nil {
		t.Fatal(err)
	}
	r := newTestRouter(t, dir)

	// Unknown API paths stay JSON 404 even when a frontend is served.
	apiReq := httptest.NewRequest(http.MethodGet, "/api/nope", nil)
	apiW := httptest.NewRecorder()
	r.Engine().ServeHTTP(apiW, apiReq)
	if apiW.Code != http.StatusNotFound {
		t.Errorf("API status = %d, want 404", apiW.Code)
	}

	// Unknown non-API paths fall back to the SPA entry point.
	pageReq := httptest.NewRequest(http.MethodGet, "/videos/recent", nil)
	pageW := httptest.NewRecorder()
	r.Engine().ServeHTTP(pageW, pageReq)
	if pageW.Code != http.StatusOK || pageW.Body.String() != "<html>app</html>" {
		t.Errorf("SPA fallback: status = %d, body = %q", pageW.Code, pageW.Body.String())
	}
}
