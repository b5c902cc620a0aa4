package http

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"example.com/ecomshop/app/internal/infra/persistence/sqlite"
	"example.com/ecomshop/app/internal/infra/security"
	authuc "example.com/ecomshop/app/internal/usecase/auth"
	memberuc "example.com/ecomshop/app/internal/usecase/member"
	productuc "example.com/ecomshop/app/internal/usecase/product"
)

type stubStorage struct {
	result     *productuc.UploadResult
	uploadErr  error
	deleteErr  error
	deletedIDs []string
}

func (s *stubStorage) Upload(ctx context.Context, up productuc.Upload) (*productuc.UploadResult, error) {
	if s.uploadErr != nil {
		return nil, s.uploadErr
	}
	return s.result, nil
}

func (s *stubStorage) Delete(ctx context.Context, publicID string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deletedIDs = append(s.deletedIDs, publicID)
	return nil
}

type testEnv struct {
	router  chi.Router
	db      *sql.DB
	storage *stubStorage
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := sqlite.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	storage := &stubStorage{
		result: &productuc.UploadResult{
			URL:      "https://cdn/uploaded.jpg",
			PublicID: "pub-uploaded",
			Bytes:    1024,
			Width:    800,
			Height:   600,
		},
	}

	productRepo := sqlite.NewProductRepository(db)
	memberRepo := sqlite.NewMemberRepository(db)
	userRepo := sqlite.NewUserRepository(db)

	tokenSvc := security.NewJWTService("test-secret", time.Hour)
	hasher := security.NewBcryptService(4)

	api := NewAPI(Dependencies{
		ProductService: productuc.NewService(productRepo, storage),
		MemberService:  memberuc.NewService(memberRepo),
		AuthService:    authuc.NewService(userRepo, memberRepo, hasher, tokenSvc),
		TokenService:   tokenSvc,
		Logger:         zap.NewNop(),
		Store:          db,
	})

	return &testEnv{router: api.Router(), db: db, storage: storage}
}

func (e *testEnv) seedProduct(t *testing.T, name, category string) int64 {
	t.Helper()
	res, err := e.db.Exec(`INSERT INTO products (name, category, packaged_weight) VALUES (?, ?, 10)`, name, category)
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return id
}

func (e *testEnv) seedAsset(t *testing.T, productID int64, url, publicID string) int64 {
	t.Helper()
	res, err := e.db.Exec(`
        INSERT INTO assets (url, public_id, file_name, type, created_at, product_id)
        VALUES (?, ?, 'f.jpg', 'image', '2026-01-01T00:00:00Z', ?)
    `, url, publicID, productID)
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return id
}

func (e *testEnv) do(t *testing.T, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestListProducts_Envelope(t *testing.T) {
	env := newTestEnv(t)
	for i := 0; i < 5; i++ {
		env.seedProduct(t, fmt.Sprintf("Товар %d", i), "Furniture")
	}

	rec := env.do(t, http.MethodGet, "/api/products?pageSize=2&pageIndex=2", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	require.EqualValues(t, 2, body["pageIndex"])
	require.EqualValues(t, 2, body["pageSize"])
	require.EqualValues(t, 5, body["count"])
	require.EqualValues(t, 3, body["totalPages"])
	require.Equal(t, true, body["hasPrevious"])
	require.Equal(t, true, body["hasNext"])
	require.EqualValues(t, 3, body["firstItemIndex"])
	require.EqualValues(t, 4, body["lastItemIndex"])
	require.Len(t, body["data"], 2)
}

func TestListProducts_ParamClamping(t *testing.T) {
	env := newTestEnv(t)
	env.seedProduct(t, "Шкаф", "Furniture")

	rec := env.do(t, http.MethodGet, "/api/products?pageIndex=0&pageSize=500", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	require.EqualValues(t, 1, body["pageIndex"])
	require.EqualValues(t, 100, body["pageSize"])
}

func TestListProducts_CyrillicSearch(t *testing.T) {
	env := newTestEnv(t)
	env.seedProduct(t, "Шкаф-купе", "Furniture")
	env.seedProduct(t, "Стол", "Furniture")

	rec := env.do(t, http.MethodGet, "/api/products?searchQuery=шкаф", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.EqualValues(t, 1, decodeBody(t, rec)["count"])
}

func TestGetProduct(t *testing.T) {
	env := newTestEnv(t)
	id := env.seedProduct(t, "Кресло", "Seating")

	rec := env.do(t, http.MethodGet, fmt.Sprintf("/api/products/%d", id), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	require.Equal(t, "Кресло", body["name"])
	require.Equal(t, "Seating", body["category"])

	rec = env.do(t, http.MethodGet, "/api/products/9999", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/products/abc", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetCategories(t *testing.T) {
	env := newTestEnv(t)
	env.seedProduct(t, "Шкаф", "Furniture")
	env.seedProduct(t, "Стул", "Seating")
	env.seedProduct(t, "Стол", "Furniture")

	rec := env.do(t, http.MethodGet, "/api/products/categories", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var categories []string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &categories))
	require.Equal(t, []string{"Furniture", "Seating"}, categories)
}

func TestUpdateProduct(t *testing.T) {
	env := newTestEnv(t)
	id := env.seedProduct(t, "Шкаф", "Furniture")

	rec := env.do(t, http.MethodPut, "/api/products", map[string]any{
		"id":           id,
		"name":         "Шкаф-купе",
		"defaultColor": "RAL 9010",
		"size":         map[string]any{"widthMm": 100, "heightMm": 50, "depthMm": 30},
	})
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.do(t, http.MethodGet, fmt.Sprintf("/api/products/%d", id), nil)
	body := decodeBody(t, rec)
	require.Equal(t, "Шкаф-купе", body["name"])
	require.Equal(t, "RAL 9010", body["defaultColor"])
	require.NotNil(t, body["size"])
}

func TestUpdateProduct_Validation(t *testing.T) {
	env := newTestEnv(t)
	id := env.seedProduct(t, "Шкаф", "Furniture")

	tests := []struct {
		name string
		body map[string]any
		want int
	}{
		{"missing id", map[string]any{"name": "x"}, http.StatusBadRequest},
		{"unknown product", map[string]any{"id": 9999, "name": "x"}, http.StatusNotFound},
		{"ral with space", map[string]any{"id": id, "defaultColor": "RAL 1234"}, http.StatusNoContent},
		{"ral without space", map[string]any{"id": id, "defaultColor": "RAL5678"}, http.StatusNoContent},
		{"ral too short", map[string]any{"id": id, "defaultColor": "RAL 123"}, http.StatusBadRequest},
		{"free-form color", map[string]any{"id": id, "defaultColor": "red"}, http.StatusBadRequest},
		{"zero weight", map[string]any{"id": id, "packagedWeight": 0}, http.StatusNoContent},
		{"negative weight", map[string]any{"id": id, "packagedWeight": -1}, http.StatusBadRequest},
		{"empty name", map[string]any{"id": id, "name": ""}, http.StatusNoContent},
		{"zero-side size", map[string]any{"id": id, "size": map[string]any{"widthMm": 100, "heightMm": 0, "depthMm": 30}}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodPut, "/api/products", tt.body)
			require.Equal(t, tt.want, rec.Code, rec.Body.String())
		})
	}
}

func TestUpdatePrice(t *testing.T) {
	env := newTestEnv(t)
	id := env.seedProduct(t, "Шкаф", "Furniture")

	rec := env.do(t, http.MethodPost, fmt.Sprintf("/api/products/%d/update-price", id), map[string]any{
		"kind":   "RETAIL",
		"amount": 250000,
	})
	require.Equal(t, http.StatusNoContent, rec.Code)

	var count int
	require.NoError(t, env.db.QueryRow(`SELECT COUNT(*) FROM prices WHERE product_id = ?`, id).Scan(&count))
	require.Equal(t, 1, count)

	rec = env.do(t, http.MethodPost, fmt.Sprintf("/api/products/%d/update-price", id), map[string]any{
		"amount": -1,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPost, fmt.Sprintf("/api/products/%d/update-price", id), map[string]any{
		"kind":   "DISCOUNT",
		"amount": 100,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/products/9999/update-price", map[string]any{
		"amount": 100,
	})
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAddAsset(t *testing.T) {
	env := newTestEnv(t)
	id := env.seedProduct(t, "Шкаф", "Furniture")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "photo.jpg")
	require.NoError(t, err)
	_, err = part.Write([]byte("jpeg-bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/products/%d/add-asset", id), &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	require.Equal(t, "https://cdn/uploaded.jpg", body["url"])
	require.Equal(t, "image", body["type"])
	require.Equal(t, true, body["isImage"])

	var count int
	require.NoError(t, env.db.QueryRow(`SELECT COUNT(*) FROM assets WHERE product_id = ?`, id).Scan(&count))
	require.Equal(t, 1, count)
}

func TestSetMainAsset(t *testing.T) {
	env := newTestEnv(t)
	id := env.seedProduct(t, "Шкаф", "Furniture")
	aID := env.seedAsset(t, id, "https://cdn/a.jpg", "pub-a")
	bID := env.seedAsset(t, id, "https://cdn/b.jpg", "pub-b")
	_, err := env.db.Exec(`UPDATE products SET image_url = 'https://cdn/a.jpg' WHERE id = ?`, id)
	require.NoError(t, err)

	rec := env.do(t, http.MethodPut, fmt.Sprintf("/api/set-main-asset/%d", bID), nil)
	require.Equal(t, http.StatusNotFound, rec.Code, "route lives under /api/products")

	rec = env.do(t, http.MethodPut, fmt.Sprintf("/api/products/set-main-asset/%d", bID), nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.do(t, http.MethodGet, fmt.Sprintf("/api/products/%d", id), nil)
	require.Equal(t, "https://cdn/b.jpg", decodeBody(t, rec)["imageUrl"])

	// Promoting the current main image again is rejected.
	rec = env.do(t, http.MethodPut, fmt.Sprintf("/api/products/set-main-asset/%d", bID), nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPut, fmt.Sprintf("/api/products/set-main-asset/%d", aID+999), nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteAsset(t *testing.T) {
	env := newTestEnv(t)
	id := env.seedProduct(t, "Шкаф", "Furniture")
	aID := env.seedAsset(t, id, "https://cdn/a.jpg", "pub-a")
	bID := env.seedAsset(t, id, "https://cdn/b.jpg", "pub-b")
	_, err := env.db.Exec(`UPDATE products SET image_url = 'https://cdn/a.jpg' WHERE id = ?`, id)
	require.NoError(t, err)

	rec := env.do(t, http.MethodDelete, fmt.Sprintf("/api/products/delete-asset/%d", aID), nil)
	require.Equal(t, http.StatusBadRequest, rec.Code, "main image cannot be deleted")

	rec = env.do(t, http.MethodDelete, fmt.Sprintf("/api/products/delete-asset/%d", bID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, []string{"pub-b"}, env.storage.deletedIDs)

	var count int
	require.NoError(t, env.db.QueryRow(`SELECT COUNT(*) FROM assets WHERE product_id = ?`, id).Scan(&count))
	require.Equal(t, 1, count)
}

func TestProductPhotos(t *testing.T) {
	env := newTestEnv(t)
	id := env.seedProduct(t, "Шкаф", "Furniture")
	env.seedAsset(t, id, "https://cdn/a.jpg", "pub-a")
	_, err := env.db.Exec(`
        INSERT INTO assets (url, file_name, type, created_at, product_id)
        VALUES ('https://cdn/manual.pdf', 'manual.pdf', 'document', '2026-01-01T00:00:00Z', ?)
    `, id)
	require.NoError(t, err)

	rec := env.do(t, http.MethodGet, fmt.Sprintf("/api/products/%d/photos", id), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var photos []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &photos))
	require.Len(t, photos, 1)
	require.Equal(t, "https://cdn/a.jpg", photos[0]["url"])
}

func TestMembers_RequireAuth(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/members", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/auth/register", map[string]any{
		"email":       "ivan@example.com",
		"displayName": "Ivan",
		"password":    "secret123",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	token, ok := decodeBody(t, rec)["token"].(string)
	require.True(t, ok)
	require.NotEmpty(t, token)

	req := httptest.NewRequest(http.MethodGet, "/api/members", strings.NewReader(""))
	req.Header.Set("Authorization", "Bearer "+token)
	rec2 := httptest.NewRecorder()
	env.router.ServeHTTP(rec2, req)
	require.Equal(t, http.StatusOK, rec2.Code, rec2.Body.String())
}
