package routes_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	database "schoolku_backend/internals/databases"
	"schoolku_backend/internals/testutil"
)

func TestHealth(t *testing.T) {
	db := testutil.NewDB(t)
	api := testutil.NewClient(t, testutil.NewApp(t, db), 1)
	api.Token = ""

	res := api.Get("/health")
	require.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, "OK", res.Body["status"])
	assert.Equal(t, "Connected", res.Body["database"])
	assert.NotEmpty(t, res.Body["server_time"])

	database.Close(db)
	res = api.Get("/health")
	assert.Equal(t, http.StatusServiceUnavailable, res.Status)
	assert.Equal(t, "DOWN", res.Body["status"])
}

func TestRootAndUnknownRoutes(t *testing.T) {
	api := testutil.NewClient(t, testutil.NewApp(t, testutil.NewDB(t)), 1)

	res := api.Get("/")
	assert.Equal(t, http.StatusOK, res.Status)
	assert.Contains(t, string(res.Raw), "running")

	res = api.Get("/api/nope")
	assert.Equal(t, http.StatusNotFound, res.Status)
}
