package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"murmur/internal/config"
	"murmur/internal/database"
	"murmur/internal/models"
	"murmur/internal/sns"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestApp builds a full app over an in-memory database, with one seeded
// tenant. No Redis: rate limiting fails open.
func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	tenant := models.Tenant{Slug: "acme", Name: "Acme"}
	require.NoError(t, db.Create(&tenant).Error)

	cfg := &config.Config{
		Port:            "0",
		Env:             "test",
		AllowDevHeaders: true,
	}
	srv, err := NewServerWithDeps(cfg, db, nil)
	require.NoError(t, err)

	app := fiber.New()
	srv.SetupMiddleware(app)
	srv.SetupRoutes(app)
	return app, db
}

// call performs one RPC as the given identity and decodes the response body.
func call(t *testing.T, app *fiber.App, proc, tenant, user string, req, resp any) int {
	t.Helper()

	var body io.Reader
	if req != nil {
		raw, err := json.Marshal(req)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}

	httpReq := httptest.NewRequest(http.MethodPost, "/"+proc, body)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set(sns.HeaderProtocolVersion, sns.ProtocolVersion)
	if tenant != "" {
		httpReq.Header.Set(sns.HeaderTenant, tenant)
	}
	if user != "" {
		httpReq.Header.Set(sns.HeaderUser, user)
	}

	httpResp, err := app.Test(httpReq, -1)
	require.NoError(t, err)
	defer httpResp.Body.Close()

	if resp != nil && httpResp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(httpResp.Body).Decode(resp))
	}
	return httpResp.StatusCode
}

func asAlice(t *testing.T, app *fiber.App, proc string, req, resp any) int {
	return call(t, app, proc, "acme", "u_alice", req, resp)
}
