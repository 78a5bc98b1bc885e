package controller_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"schoolku_backend/internals/features/users/user/model"
	"schoolku_backend/internals/testutil"
)

func createUser(t *testing.T, api *testutil.Client, username string) int64 {
	t.Helper()
	res := api.Post("/api/users", map[string]any{
		"username": username,
		"email":    username + "@school.test",
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, res.Status, string(res.Raw))
	return int64(testutil.Obj(t, res.Body, "user")["id"].(float64))
}

func TestCreateUserHidesPassword(t *testing.T) {
	db := testutil.NewDB(t)
	api := testutil.NewClient(t, testutil.NewApp(t, db), 1)

	res := api.Post("/api/users", map[string]any{
		"username":  "admin_01",
		"email":     " Admin@School.test ",
		"password":  "secret123",
		"firstName": "Ani",
	})
	require.Equal(t, http.StatusCreated, res.Status, string(res.Raw))
	assert.Equal(t, "User created successfully", res.Body["message"])

	user := testutil.Obj(t, res.Body, "user")
	assert.Equal(t, "admin@school.test", user["email"])
	assert.Equal(t, true, user["active"])
	assert.NotContains(t, user, "password")
	assert.NotContains(t, string(res.Raw), "secret123")

	var stored model.UserModel
	require.NoError(t, db.Where("username = ?", "admin_01").Take(&stored).Error)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("secret123")))

	res = api.Post("/api/users", map[string]any{"username": "other", "email": "admin@school.test", "password": "secret123"})
	assert.Equal(t, http.StatusConflict, res.Status)
	assert.Equal(t, "Username or email already exists", res.Body["error"])

	res = api.Post("/api/users", map[string]any{"username": "x1"})
	assert.Equal(t, http.StatusBadRequest, res.Status)
	assert.Equal(t, "Username, email, and password are required", res.Body["error"])

	res = api.Post("/api/users", map[string]any{"username": "bad name", "email": "b@school.test", "password": "secret123"})
	assert.Equal(t, http.StatusBadRequest, res.Status)
}

func TestUpdateUser(t *testing.T) {
	db := testutil.NewDB(t)
	api := testutil.NewClient(t, testutil.NewApp(t, db), 1)
	id := createUser(t, api, "guru_a")
	createUser(t, api, "guru_b")
	path := fmt.Sprintf("/api/users/%d", id)

	res := api.Put(path, map[string]any{"firstName": "Ahmad", "lastName": nil})
	require.Equal(t, http.StatusOK, res.Status, string(res.Raw))
	assert.Equal(t, "User updated successfully", res.Body["message"])
	assert.Equal(t, "Ahmad", testutil.Obj(t, res.Body, "user")["firstName"])

	res = api.Put(path, map[string]any{"email": "guru_b@school.test"})
	assert.Equal(t, http.StatusConflict, res.Status)
	assert.Equal(t, "Email already exists for another user", res.Body["error"])

	res = api.Put(path, map[string]any{"username": "guru_b"})
	assert.Equal(t, http.StatusConflict, res.Status)
	assert.Equal(t, "Username already exists for another user", res.Body["error"])

	res = api.Put(path, map[string]any{"password": "newsecret"})
	assert.Equal(t, http.StatusBadRequest, res.Status)
	assert.Equal(t, "Field not allowed: password", res.Body["error"])

	res = api.Put(path, map[string]any{"email": "guru_a@school.test"})
	assert.Equal(t, http.StatusOK, res.Status)
}

func TestDeactivateAndActivateUser(t *testing.T) {
	db := testutil.NewDB(t)
	admin := testutil.NewClient(t, testutil.NewApp(t, db), 1)
	self := createUser(t, admin, "admin_self")
	target := createUser(t, admin, "staff_one")

	me := testutil.NewClient(t, admin.App, self)
	res := me.Delete(fmt.Sprintf("/api/users/%d", self))
	assert.Equal(t, http.StatusBadRequest, res.Status)
	assert.Equal(t, "You cannot delete your own account", res.Body["error"])

	res = me.Delete(fmt.Sprintf("/api/users/%d", target))
	require.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, "User deactivated successfully", res.Body["message"])

	res = me.Get(fmt.Sprintf("/api/users/%d", target))
	require.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, false, res.Body["active"])

	res = me.Get("/api/users?active=false")
	assert.Len(t, testutil.Items(t, res.Body), 1)

	res = me.Put(fmt.Sprintf("/api/users/%d/activate", target), nil)
	require.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, "User activated successfully", res.Body["message"])

	res = me.Get("/api/users/stats/overview")
	require.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, float64(2), res.Body["total"])
	assert.Equal(t, float64(2), res.Body["active"])
	assert.Equal(t, float64(0), res.Body["inactive"])
	assert.Equal(t, float64(2), res.Body["recentRegistrations"])

	assert.Equal(t, http.StatusNotFound, me.Delete("/api/users/999").Status)
	assert.Equal(t, http.StatusNotFound, me.Put("/api/users/999/activate", nil).Status)
}

func TestListUsersSearch(t *testing.T) {
	db := testutil.NewDB(t)
	api := testutil.NewClient(t, testutil.NewApp(t, db), 1)
	createUser(t, api, "siti_100")
	createUser(t, api, "siti_200")
	createUser(t, api, "budi")

	res := api.Get("/api/users?search=SITI")
	require.Equal(t, http.StatusOK, res.Status)
	items := testutil.Items(t, res.Body)
	assert.Len(t, items, 2)
	for _, it := range items {
		assert.NotContains(t, it.(map[string]any), "password")
	}

	// underscore is matched literally
	res = api.Get("/api/users?search=i_1")
	assert.Len(t, testutil.Items(t, res.Body), 1)
}
