// Package testutil wires an in-memory SQLite database and the full Fiber app
// for controller tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"schoolku_backend/internals/configs"
	database "schoolku_backend/internals/databases"
	helper "schoolku_backend/internals/helpers"
	"schoolku_backend/internals/server"
)

const Secret = "test-secret"

var dbSeq atomic.Int64

// NewDB opens a private in-memory database with every table migrated.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", dbSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), database.GormConfig(false))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.AutoMigrate(db))
	return db
}

// Config is the configuration the test app runs with.
func Config() configs.Config {
	return configs.Config{
		JWTSecret:   Secret,
		CorsOrigins: "*",
		BodyLimit:   4 * 1024 * 1024,
		RateLimit:   100000,
	}
}

// NewApp builds the production app on top of db.
func NewApp(t *testing.T, db *gorm.DB) *fiber.App {
	t.Helper()
	return server.New(Config(), db, nil)
}

// Token signs a valid access token for userID.
func Token(t *testing.T, userID int64) string {
	t.Helper()
	tok, err := helper.GenerateToken(Secret, userID, fmt.Sprintf("user%d", userID), time.Hour)
	require.NoError(t, err)
	return tok
}

// Response is a decoded JSON reply.
type Response struct {
	Status int
	Header map[string]string
	Raw    []byte
	Body   map[string]any
}

// Client issues authenticated requests against an app.
type Client struct {
	T     *testing.T
	App   *fiber.App
	Token string
}

func NewClient(t *testing.T, app *fiber.App, userID int64) *Client {
	return &Client{T: t, App: app, Token: Token(t, userID)}
}

// Do sends body (marshalled to JSON unless it is already a string) and decodes
// the reply when it is a JSON object.
func (c *Client) Do(method, path string, body any) Response {
	c.T.Helper()

	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(c.T, err)
		r = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, r)
	if r != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if c.Token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+c.Token)
	}

	res, err := c.App.Test(req, -1)
	require.NoError(c.T, err)
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	require.NoError(c.T, err)

	out := Response{Status: res.StatusCode, Raw: raw, Header: map[string]string{}}
	for k := range res.Header {
		out.Header[k] = res.Header.Get(k)
	}
	if bytes.HasPrefix(bytes.TrimSpace(raw), []byte("{")) {
		require.NoError(c.T, json.Unmarshal(raw, &out.Body), string(raw))
	}
	return out
}

func (c *Client) Get(path string) Response { return c.Do("GET", path, nil) }
func (c *Client) Post(path string, body any) Response { return c.Do("POST", path, body) }
func (c *Client) Put(path string, body any) Response { return c.Do("PUT", path, body) }
func (c *Client) Delete(path string) Response { return c.Do("DELETE", path, nil) }

// Obj returns body[key] as an object.
func Obj(t *testing.T, body map[string]any, key string) map[string]any {
	t.Helper()
	v, ok := body[key].(map[string]any)
	require.True(t, ok, "%s is not an object: %#v", key, body[key])
	return v
}

// Items returns the items array of a list reply.
func Items(t *testing.T, body map[string]any) []any {
	t.Helper()
	v, ok := body["items"].([]any)
	require.True(t, ok, "items is not an array: %#v", body["items"])
	return v
}
