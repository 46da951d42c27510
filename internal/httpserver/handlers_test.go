package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"catalog/backend/internal/config"
	domain "catalog/backend/internal/domain/product"
	"catalog/backend/internal/infrastructure/memory"
	"catalog/backend/internal/infrastructure/token"
	authusecase "catalog/backend/internal/usecase/auth"
	productusecase "catalog/backend/internal/usecase/product"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	cfg := config.Config{
		HTTPPort:        "0",
		AllowedOrigins:  []string{"*"},
		ReadTimeoutSec:  5,
		WriteTimeoutSec: 5,
		IdleTimeoutSec:  5,
	}
	tokens := token.NewJWTManager("test-secret", time.Minute, "catalog")
	authService := authusecase.NewService("admin", string(hash), tokens)
	manager := productusecase.NewManager(memory.NewProductRepository())

	return NewServer(cfg, authService, manager)
}

func (s *Server) do(t *testing.T, method, path, bearer string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	rec := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rec, req)
	return rec
}

func (s *Server) login(t *testing.T) string {
	t.Helper()

	rec := s.do(t, http.MethodPost, "/auth/login", "", map[string]string{
		"username": "admin",
		"password": "s3cret",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&payload))
	require.NotEmpty(t, payload.Token)
	return payload.Token
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var payload struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&payload))
	return payload.Error
}

func sampleProduct() domain.Product {
	return domain.Product{
		ProductCode:   "P-1001",
		ProductName:   "Arabica Beans",
		OriginCountry: "Colombia",
		Price:         12.5,
		Quantity:      40,
		Description:   "Single-origin, medium roast",
	}
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	rec := srv.do(t, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	srv := newTestServer(t)
	rec := srv.do(t, http.MethodPost, "/auth/login", "", map[string]string{
		"username": "admin",
		"password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestListProductsEmptyCatalog(t *testing.T) {
	srv := newTestServer(t)
	rec := srv.do(t, http.MethodGet, "/products", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "No product found.", errorMessage(t, rec))
}

func TestCreateProductRequiresAuth(t *testing.T) {
	srv := newTestServer(t)
	rec := srv.do(t, http.MethodPost, "/products", "", sampleProduct())
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateAndFetchProduct(t *testing.T) {
	srv := newTestServer(t)
	bearer := srv.login(t)

	rec := srv.do(t, http.MethodPost, "/products", bearer, sampleProduct())
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = srv.do(t, http.MethodGet, "/products", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var listing struct {
		Items []domain.Product `json:"items"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&listing))
	require.Len(t, listing.Items, 1)
	require.Equal(t, "P-1001", listing.Items[0].ProductCode)

	rec = srv.do(t, http.MethodGet, "/products/P-1001", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var item domain.Product
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&item))
	require.Equal(t, "Arabica Beans", item.ProductName)
	require.Equal(t, 12.5, item.Price)
}

func TestCreateInvalidProduct(t *testing.T) {
	srv := newTestServer(t)
	bearer := srv.login(t)

	bad := sampleProduct()
	bad.Price = 0
	rec := srv.do(t, http.MethodPost, "/products", bearer, bad)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "Invalid product!", errorMessage(t, rec))
}

func TestCreateDuplicateProductCode(t *testing.T) {
	srv := newTestServer(t)
	bearer := srv.login(t)

	rec := srv.do(t, http.MethodPost, "/products", bearer, sampleProduct())
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = srv.do(t, http.MethodPost, "/products", bearer, sampleProduct())
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestGetUnknownProduct(t *testing.T) {
	srv := newTestServer(t)
	rec := srv.do(t, http.MethodGet, "/products/P-404", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "No product found with product code: P-404", errorMessage(t, rec))
}

func TestSearchByOriginCountry(t *testing.T) {
	srv := newTestServer(t)
	bearer := srv.login(t)

	rec := srv.do(t, http.MethodPost, "/products", bearer, sampleProduct())
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = srv.do(t, http.MethodGet, "/products/search?origin_country=Colombia", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var listing struct {
		Items []domain.Product `json:"items"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&listing))
	require.Len(t, listing.Items, 1)

	rec = srv.do(t, http.MethodGet, "/products/search?origin_country=Peru", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "No product found with the given first name.", errorMessage(t, rec))

	rec = srv.do(t, http.MethodGet, "/products/search", "", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateProduct(t *testing.T) {
	srv := newTestServer(t)
	bearer := srv.login(t)

	rec := srv.do(t, http.MethodPost, "/products", bearer, sampleProduct())
	require.Equal(t, http.StatusCreated, rec.Code)

	changed := sampleProduct()
	changed.ProductName = "Arabica Beans Dark"
	changed.Price = 14.25
	rec = srv.do(t, http.MethodPut, "/products/P-1001", bearer, changed)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = srv.do(t, http.MethodGet, "/products/P-1001", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var item domain.Product
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&item))
	require.Equal(t, "Arabica Beans Dark", item.ProductName)
	require.Equal(t, 14.25, item.Price)
}

func TestUpdateInvalidProduct(t *testing.T) {
	srv := newTestServer(t)
	bearer := srv.login(t)

	rec := srv.do(t, http.MethodPost, "/products", bearer, sampleProduct())
	require.Equal(t, http.StatusCreated, rec.Code)

	bad := sampleProduct()
	bad.Price = -1
	rec = srv.do(t, http.MethodPut, "/products/P-1001", bearer, bad)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "Invalid prduct!", errorMessage(t, rec))
}

func TestUpdateUnknownProduct(t *testing.T) {
	srv := newTestServer(t)
	bearer := srv.login(t)

	rec := srv.do(t, http.MethodPut, "/products/P-GHOST", bearer, sampleProduct())
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteProduct(t *testing.T) {
	srv := newTestServer(t)
	bearer := srv.login(t)

	rec := srv.do(t, http.MethodPost, "/products", bearer, sampleProduct())
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = srv.do(t, http.MethodDelete, "/products/P-1001", bearer, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = srv.do(t, http.MethodGet, "/products/P-1001", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteWithEmptyCode(t *testing.T) {
	srv := newTestServer(t)
	bearer := srv.login(t)

	rec := srv.do(t, http.MethodDelete, "/products/", bearer, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "Product code cannot be empty.", errorMessage(t, rec))
}

func TestDeleteUnknownProduct(t *testing.T) {
	srv := newTestServer(t)
	bearer := srv.login(t)

	rec := srv.do(t, http.MethodDelete, "/products/P-GHOST", bearer, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t)
	rec := srv.do(t, http.MethodDelete, "/products", "", nil)
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
