package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/arzan03/EstateHub/internal/models"
	"github.com/arzan03/EstateHub/internal/services"
	"github.com/arzan03/EstateHub/internal/testhelpers"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type testEnv struct {
	app        *fiber.App
	auth       *services.AuthService
	users      *testhelpers.UserRepo
	properties *testhelpers.PropertyRepo
	store      *testhelpers.Storage
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	users := testhelpers.NewUserRepo()
	properties := testhelpers.NewPropertyRepo(users)
	store := testhelpers.NewStorage()
	auth := services.NewAuthService(users, "handler-secret", time.Hour)

	app := NewApp(Options{BodyLimitMB: 5, RequestTimeout: 5 * time.Second}, Services{
		Auth:       auth,
		Properties: services.NewPropertyService(properties, users),
		Users:      services.NewUserService(users),
		Uploads:    services.NewUploadService(store, users),
	})
	return &testEnv{app: app, auth: auth, users: users, properties: properties, store: store}
}

func (e *testEnv) token(t *testing.T, u models.User) string {
	t.Helper()
	token, err := e.auth.GenerateJWT(u.ID.Hex(), u.Role)
	require.NoError(t, err)
	return token
}

func (e *testEnv) send(t *testing.T, req *http.Request, token string) (*http.Response, []byte) {
	t.Helper()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

// call sends an optional JSON body and decodes the JSON response.
func (e *testEnv) call(t *testing.T, method, path, token string, payload any) (int, map[string]any) {
	t.Helper()
	var reader io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, body := e.send(t, req, token)
	out := map[string]any{}
	if len(body) > 0 {
		require.NoError(t, json.Unmarshal(body, &out), string(body))
	}
	return resp.StatusCode, out
}

func (e *testEnv) upload(t *testing.T, path, token string, fields map[string]string, field string, files ...testhelpers.File) (int, map[string]any) {
	t.Helper()
	body, contentType := testhelpers.MultipartBody(t, fields, field, files...)
	req := httptest.NewRequest(fiber.MethodPost, path, body)
	req.Header.Set("Content-Type", contentType)
	resp, raw := e.send(t, req, token)
	out := map[string]any{}
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return resp.StatusCode, out
}

func propertyBody() map[string]any {
	return map[string]any{
		"title":         "Garden Flat",
		"description":   "Ground floor flat with a garden.",
		"price":         2500,
		"listing_type":  "rent",
		"property_type": "apartment",
		"address":       map[string]any{"street": "5 Elm St", "city": "Austin", "state": "TX", "zip_code": "73301"},
		"details":       map[string]any{"sqft": 700, "bedrooms": 1, "bathrooms": 1},
		"amenities":     []string{"Garden"},
		"contact_info":  map[string]any{"name": "Owner", "phone": "555-0101", "email": "owner@example.com"},
	}
}

func TestSignup(t *testing.T) {
	e := newTestEnv(t)

	status, body := e.call(t, "POST", "/api/signup", "", map[string]string{"name": "Ann", "email": "ann@example.com", "password": "short"})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, body["error"], "password")
	assert.Zero(t, e.users.Calls)

	status, body = e.call(t, "POST", "/api/signup", "", map[string]string{"name": "Ann", "email": "ann@example.com", "password": "password123"})
	assert.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, "User registered successfully", body["message"])
	user := body["user"].(map[string]any)
	assert.Equal(t, "user", user["role"])
	assert.NotContains(t, user, "password")

	status, _ = e.call(t, "POST", "/api/signup", "", map[string]string{"name": "Ann", "email": "ANN@example.com", "password": "password123"})
	assert.Equal(t, fiber.StatusConflict, status)
}

func TestSignupRejectsMalformedBody(t *testing.T) {
	e := newTestEnv(t)
	req := httptest.NewRequest("POST", "/api/signup", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")

	resp, _ := e.send(t, req, "")

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestLogin(t *testing.T) {
	e := newTestEnv(t)
	testhelpers.NewUser(t, e.users, "Ann", "ann@example.com", "password123", models.RoleUser)

	status, body := e.call(t, "POST", "/api/login", "", map[string]string{"email": "ann@example.com", "password": "password123"})
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "user", body["role"])
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)

	status, body = e.call(t, "GET", "/api/user/profile", token, nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Ann", body["user"].(map[string]any)["name"])

	status, body = e.call(t, "POST", "/api/login", "", map[string]string{"email": "ann@example.com", "password": "wrong-pass"})
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "Invalid email or password", body["error"])
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	e := newTestEnv(t)

	for _, route := range []struct{ method, path string }{
		{"GET", "/api/properties/mine"},
		{"POST", "/api/properties"},
		{"GET", "/api/user/profile"},
		{"POST", "/api/upload"},
		{"GET", "/api/admin/users"},
	} {
		status, body := e.call(t, route.method, route.path, "", nil)
		assert.Equal(t, fiber.StatusUnauthorized, status, route.path)
		assert.NotEmpty(t, body["error"], route.path)
	}

	status, _ := e.call(t, "GET", "/api/user/profile", "not-a-token", nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestListPropertiesIsPublicAndFiltered(t *testing.T) {
	e := newTestEnv(t)
	owner := testhelpers.NewUser(t, e.users, "Owner", "owner@example.com", "password123", models.RoleUser)
	testhelpers.NewProperty(t, e.properties, owner, "Cheap", models.ListingRent, "apartment", 500)
	match := testhelpers.NewProperty(t, e.properties, owner, "Match", models.ListingRent, "apartment", 2000)
	testhelpers.NewProperty(t, e.properties, owner, "For sale", models.ListingSell, "house", 2000)

	status, body := e.call(t, "GET", "/api/properties?listingType=rent&minPrice=1000&maxPrice=5000", "", nil)
	require.Equal(t, fiber.StatusOK, status)
	listings := body["properties"].([]any)
	require.Len(t, listings, 1)
	first := listings[0].(map[string]any)
	assert.Equal(t, match.ID.Hex(), first["id"])
	assert.Equal(t, "Owner", first["owner_info"].(map[string]any)["name"])

	status, body = e.call(t, "GET", "/api/properties?status=featured", "", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, body["properties"].([]any), 3)

	status, body = e.call(t, "GET", "/api/properties?minPrice=abc", "", nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.NotEmpty(t, body["error"])
}

func TestGetProperty(t *testing.T) {
	e := newTestEnv(t)
	owner := testhelpers.NewUser(t, e.users, "Owner", "owner@example.com", "password123", models.RoleUser)
	p := testhelpers.NewProperty(t, e.properties, owner, "Loft", models.ListingSell, "apartment", 1)

	status, body := e.call(t, "GET", "/api/properties/"+p.ID.Hex(), "", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Loft", body["property"].(map[string]any)["title"])

	status, _ = e.call(t, "GET", "/api/properties/"+primitive.NewObjectID().Hex(), "", nil)
	assert.Equal(t, fiber.StatusNotFound, status)

	status, _ = e.call(t, "GET", "/api/properties/xyz", "", nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestPropertyLifecycle(t *testing.T) {
	e := newTestEnv(t)
	owner := testhelpers.NewUser(t, e.users, "Owner", "owner@example.com", "password123", models.RoleUser)
	other := testhelpers.NewUser(t, e.users, "Other", "other@example.com", "password123", models.RoleUser)
	ownerToken, otherToken := e.token(t, owner), e.token(t, other)

	status, body := e.call(t, "POST", "/api/properties", ownerToken, propertyBody())
	require.Equal(t, fiber.StatusCreated, status, body)
	created := body["property"].(map[string]any)
	id := created["id"].(string)
	assert.Equal(t, owner.ID.Hex(), created["owner"])
	assert.Equal(t, "active", created["status"])

	status, body = e.call(t, "GET", "/api/properties/mine", ownerToken, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, body["properties"].([]any), 1)

	status, body = e.call(t, "GET", "/api/properties/mine", otherToken, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Empty(t, body["properties"])

	status, _ = e.call(t, "PUT", "/api/properties/"+id, otherToken, map[string]any{"title": "Mine now"})
	assert.Equal(t, fiber.StatusForbidden, status)

	status, _ = e.call(t, "DELETE", "/api/properties/"+id, otherToken, nil)
	assert.Equal(t, fiber.StatusForbidden, status)

	status, body = e.call(t, "PUT", "/api/properties/"+id, ownerToken, map[string]any{"price": 2300, "status": "rented"})
	require.Equal(t, fiber.StatusOK, status, body)
	updated := body["property"].(map[string]any)
	assert.Equal(t, 2300.0, updated["price"])
	assert.Equal(t, "rented", updated["status"])
	assert.Equal(t, "Garden Flat", updated["title"])

	status, _ = e.call(t, "PUT", "/api/properties/"+id, ownerToken, map[string]any{"property_type": "castle"})
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, body = e.call(t, "DELETE", "/api/properties/"+id, ownerToken, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Property deleted successfully", body["message"])

	status, _ = e.call(t, "DELETE", "/api/properties/"+id, ownerToken, nil)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestCreatePropertyValidation(t *testing.T) {
	e := newTestEnv(t)
	owner := testhelpers.NewUser(t, e.users, "Owner", "owner@example.com", "password123", models.RoleUser)
	payload := propertyBody()
	payload["listing_type"] = "lease"

	status, body := e.call(t, "POST", "/api/properties", e.token(t, owner), payload)

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, body["error"], "listing_type")
	assert.Zero(t, e.properties.Count())
}

func TestProfileUpdate(t *testing.T) {
	e := newTestEnv(t)
	ann := testhelpers.NewUser(t, e.users, "Ann", "ann@example.com", "password123", models.RoleUser)
	token := e.token(t, ann)

	status, body := e.call(t, "PUT", "/api/user/profile", token, map[string]string{"phone": "555-0199", "email": "hijack@example.com"})
	require.Equal(t, fiber.StatusOK, status)
	user := body["user"].(map[string]any)
	assert.Equal(t, "555-0199", user["phone"])
	assert.Equal(t, "ann@example.com", user["email"])

	status, _ = e.call(t, "PUT", "/api/user/profile", token, map[string]string{"name": ""})
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestUploadPhoto(t *testing.T) {
	e := newTestEnv(t)
	ann := testhelpers.NewUser(t, e.users, "Ann", "ann@example.com", "password123", models.RoleUser)
	token := e.token(t, ann)
	photo := testhelpers.File{Name: "me.png", ContentType: "image/png", Content: "png-bytes"}

	status, body := e.upload(t, "/api/user/upload-photo", token, map[string]string{"type": "banner"}, "photo", photo)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "invalid type", body["error"])
	assert.Zero(t, e.store.Puts)

	status, body = e.upload(t, "/api/user/upload-photo", token, map[string]string{"type": "profile"}, "photo")
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "no file uploaded", body["error"])

	status, body = e.upload(t, "/api/user/upload-photo", token, map[string]string{"type": "profile"}, "photo", photo)
	require.Equal(t, fiber.StatusOK, status, body)
	url := body["url"].(string)
	assert.True(t, strings.HasPrefix(url, "/uploads/"))
	assert.Equal(t, url, body["user"].(map[string]any)["profile_photo"])
}

func TestUploadAndServeImages(t *testing.T) {
	e := newTestEnv(t)
	ann := testhelpers.NewUser(t, e.users, "Ann", "ann@example.com", "password123", models.RoleUser)

	status, body := e.upload(t, "/api/upload", e.token(t, ann), nil, "images",
		testhelpers.File{Name: "front.webp", Content: "front"},
		testhelpers.File{Name: "back.JPEG", Content: "back"},
	)
	require.Equal(t, fiber.StatusOK, status, body)
	urls := body["urls"].([]any)
	require.Len(t, urls, 2)

	resp, raw := e.send(t, httptest.NewRequest("GET", urls[0].(string), nil), "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "front", string(raw))
	assert.Equal(t, "image/webp", resp.Header.Get("Content-Type"))
	assert.Equal(t, "public, max-age=31536000, immutable", resp.Header.Get("Cache-Control"))

	resp, _ = e.send(t, httptest.NewRequest("GET", urls[1].(string), nil), "")
	assert.Equal(t, "image/jpeg", resp.Header.Get("Content-Type"))
}

func TestServeUploadRejectsBadNames(t *testing.T) {
	e := newTestEnv(t)

	for _, path := range []string{"/uploads/..%2Fconfig.yaml", "/uploads/..%5Cwin.ini", "/uploads/a..png"} {
		resp, _ := e.send(t, httptest.NewRequest("GET", path, nil), "")
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, path)
	}

	resp, _ := e.send(t, httptest.NewRequest("GET", "/uploads/missing.png", nil), "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestAdminRoutes(t *testing.T) {
	e := newTestEnv(t)
	admin := testhelpers.NewUser(t, e.users, "Root", "root@example.com", "password123", models.RoleAdmin)
	ann := testhelpers.NewUser(t, e.users, "Ann", "ann@example.com", "password123", models.RoleUser)
	p := testhelpers.NewProperty(t, e.properties, ann, "Loft", models.ListingSell, "apartment", 1)
	adminToken, annToken := e.token(t, admin), e.token(t, ann)

	status, body := e.call(t, "GET", "/api/admin/users", annToken, nil)
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Equal(t, "Access denied. Admins only.", body["error"])

	status, body = e.call(t, "GET", "/api/admin/users", adminToken, nil)
	require.Equal(t, fiber.StatusOK, status)
	users := body["users"].([]any)
	assert.Len(t, users, 2)
	for _, u := range users {
		assert.NotContains(t, u.(map[string]any), "password")
	}

	status, body = e.call(t, "GET", "/api/admin/users/"+ann.ID.Hex(), adminToken, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Ann", body["user"].(map[string]any)["name"])

	status, _ = e.call(t, "PATCH", "/api/admin/properties/"+p.ID.Hex()+"/featured", annToken, map[string]bool{"featured": true})
	assert.Equal(t, fiber.StatusForbidden, status)

	status, _ = e.call(t, "PATCH", "/api/admin/properties/"+p.ID.Hex()+"/featured", adminToken, map[string]any{})
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, body = e.call(t, "PATCH", "/api/admin/properties/"+p.ID.Hex()+"/featured", adminToken, map[string]bool{"featured": true})
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, body["property"].(map[string]any)["featured"])

	status, body = e.call(t, "GET", "/api/properties?featured=true", "", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, body["properties"].([]any), 1)

	status, _ = e.call(t, "DELETE", "/api/admin/users/"+admin.ID.Hex(), adminToken, nil)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = e.call(t, "DELETE", "/api/admin/users/"+ann.ID.Hex(), adminToken, nil)
	assert.Equal(t, fiber.StatusOK, status)

	status, _ = e.call(t, "DELETE", "/api/admin/users/"+ann.ID.Hex(), adminToken, nil)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestHealth(t *testing.T) {
	e := newTestEnv(t)
	status, body := e.call(t, "GET", "/healthz", "", nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "ok", body["status"])

	down := NewApp(Options{}, Services{
		Auth: services.NewAuthService(testhelpers.NewUserRepo(), "x", time.Hour),
		Ping: func(context.Context) error { return errors.New("no route to host") },
	})
	resp, err := down.Test(httptest.NewRequest("GET", "/healthz", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}

func TestErrorHandler(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/boom", func(c *fiber.Ctx) error { return errors.New("kaboom") })
	app.Get("/teapot", func(c *fiber.Ctx) error { return fiber.NewError(fiber.StatusTeapot, "short and stout") })

	resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.JSONEq(t, `{"error":"Internal server error"}`, string(body))

	resp, err = app.Test(httptest.NewRequest("GET", "/teapot", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTeapot, resp.StatusCode)
}

// contextStore hands out readers that fail once the context passed to Get
// is done, like MinIO objects and GCS readers.
type contextStore struct {
	*testhelpers.Storage
}

type contextReader struct {
	ctx context.Context
	io.ReadCloser
}

func (r contextReader) Read(p []byte) (int, error) {
	if err := r.ctx.Err(); err != nil {
		return 0, err
	}
	return r.ReadCloser.Read(p)
}

func (s contextStore) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	rc, err := s.Storage.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	return contextReader{ctx: ctx, ReadCloser: rc}, nil
}

func TestServeUploadReadsWithinRequestContext(t *testing.T) {
	users := testhelpers.NewUserRepo()
	store := testhelpers.NewStorage()
	store.Seed("house.png", []byte("png-bytes"))
	app := NewApp(Options{RequestTimeout: 5 * time.Second}, Services{
		Auth:    services.NewAuthService(users, "handler-secret", time.Hour),
		Uploads: services.NewUploadService(contextStore{store}, users),
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/uploads/house.png", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "png-bytes", string(body))
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
}
