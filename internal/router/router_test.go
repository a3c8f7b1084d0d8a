package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/javajoker/catalog-admin/internal/config"
	"github.com/javajoker/catalog-admin/internal/models"
	"github.com/javajoker/catalog-admin/internal/repository/repositorytest"
	"github.com/javajoker/catalog-admin/internal/services"
	"github.com/javajoker/catalog-admin/internal/utils"
)

const (
	adminEmail    = "owner@shop.test"
	adminPassword = "s3cret-pass"
)

var pngHeader = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}

// Every request gets its own client address so the shared rate limiters
// never trip.
var clientSeq int64

type RouterTestSuite struct {
	suite.Suite
	store  *repositorytest.Store
	svc    *Services
	router *gin.Engine
	token  string
}

func (s *RouterTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		JWT:   config.JWTConfig{SecretKey: "router-secret", AccessTokenTTL: 1},
		Admin: config.AdminConfig{Email: adminEmail, Password: adminPassword},
		CORS:  config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
		Upload: config.UploadConfig{
			LocalDir:  s.T().TempDir(),
			PublicURL: "http://localhost:8080/uploads",
			MaxSizeMB: 1,
		},
	}

	storage, err := services.NewStorageService(cfg)
	s.Require().NoError(err)

	s.store = repositorytest.NewStore()
	s.svc = NewServices(s.store.Repositories(), storage, cfg)
	s.Require().NoError(s.svc.Auth.EnsureAdminAccount(context.Background()))
	s.router = Initialize(s.svc, cfg)

	w, body := s.request(http.MethodPost, "/v1/auth/login", "",
		`{"email":"`+adminEmail+`","password":"`+adminPassword+`"}`)
	s.Require().Equal(http.StatusOK, w.Code)
	s.token = body["data"].(map[string]interface{})["token"].(string)
}

func (s *RouterTestSuite) send(req *http.Request, token string) (*httptest.ResponseRecorder, map[string]interface{}) {
	n := atomic.AddInt64(&clientSeq, 1)
	req.Header.Set("X-Forwarded-For", fmt.Sprintf("10.%d.%d.%d", n/65536%256, n/256%256, n%256))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var body map[string]interface{}
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	}
	return w, body
}

func (s *RouterTestSuite) request(method, path, token, payload string) (*httptest.ResponseRecorder, map[string]interface{}) {
	var reader io.Reader
	if payload != "" {
		reader = strings.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if payload != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	return s.send(req, token)
}

func (s *RouterTestSuite) uploadPNG(name string) (*httptest.ResponseRecorder, map[string]interface{}) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", name)
	s.Require().NoError(err)
	_, err = part.Write(pngHeader)
	s.Require().NoError(err)
	s.Require().NoError(mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/v1/admin/uploads", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return s.send(req, s.token)
}

func data(body map[string]interface{}) map[string]interface{} {
	return body["data"].(map[string]interface{})
}

func (s *RouterTestSuite) TestHealth() {
	w, body := s.request(http.MethodGet, "/health", "", "")
	s.Equal(http.StatusOK, w.Code)
	s.Equal("healthy", body["status"])
}

func (s *RouterTestSuite) TestLoginRejectsWrongPassword() {
	w, body := s.request(http.MethodPost, "/v1/auth/login", "",
		`{"email":"`+adminEmail+`","password":"nope"}`)
	s.Equal(http.StatusUnauthorized, w.Code)
	s.False(body["success"].(bool))
}

func (s *RouterTestSuite) TestSessionReportsView() {
	w, body := s.request(http.MethodGet, "/v1/auth/session", s.token, "")
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal("authorized", data(body)["state"])
	s.Equal("dashboard", data(body)["view"])

	w, body = s.request(http.MethodGet, "/v1/auth/session", "", "")
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal("login", data(body)["view"])
}

func (s *RouterTestSuite) TestAdminRoutesAreGated() {
	w, _ := s.request(http.MethodGet, "/v1/admin/products", "", "")
	s.Equal(http.StatusUnauthorized, w.Code)

	shopper, err := utils.GenerateJWT(uuid.New(), "shopper@shop.test", 1)
	s.Require().NoError(err)
	w, _ = s.request(http.MethodGet, "/v1/admin/products", shopper, "")
	s.Equal(http.StatusForbidden, w.Code)

	w, _ = s.request(http.MethodGet, "/v1/admin/products", s.token, "")
	s.Equal(http.StatusOK, w.Code)
}

func (s *RouterTestSuite) TestFormCreateFlow() {
	w, body := s.request(http.MethodPost, "/v1/admin/form/new", s.token, "")
	s.Require().Equal(http.StatusOK, w.Code)
	s.True(data(body)["open"].(bool))
	s.Equal("create", data(body)["mode"])

	w, body = s.request(http.MethodPatch, "/v1/admin/form", s.token,
		`{"name":"Linen Tote Bag","description":"Roomy","category":"Bags","price":"12.5"}`)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal("linen-tote-bag", data(body)["data"].(map[string]interface{})["slug"])

	w, body = s.request(http.MethodPost, "/v1/admin/form/submit", s.token, "")
	s.Require().Equal(http.StatusCreated, w.Code)
	product := data(body)["product"].(map[string]interface{})
	s.Equal("linen-tote-bag", product["slug"])

	w, body = s.request(http.MethodGet, "/v1/admin/form", s.token, "")
	s.Require().Equal(http.StatusOK, w.Code)
	s.False(data(body)["open"].(bool))

	w, body = s.request(http.MethodGet, "/v1/admin/products", s.token, "")
	s.Require().Equal(http.StatusOK, w.Code)
	s.Len(body["data"], 1)
}

func (s *RouterTestSuite) TestFormValidationKeepsDialogOpen() {
	s.request(http.MethodPost, "/v1/admin/form/new", s.token, "")
	s.request(http.MethodPatch, "/v1/admin/form", s.token, `{"name":"Tote","price":"abc"}`)

	w, body := s.request(http.MethodPost, "/v1/admin/form/submit", s.token, "")
	s.Require().Equal(http.StatusBadRequest, w.Code)
	s.Equal("VALIDATION_ERROR", body["error"].(map[string]interface{})["code"])

	w, body = s.request(http.MethodGet, "/v1/admin/form", s.token, "")
	s.Require().Equal(http.StatusOK, w.Code)
	s.True(data(body)["open"].(bool))

	w, body = s.request(http.MethodGet, "/v1/admin/products", s.token, "")
	s.Require().Equal(http.StatusOK, w.Code)
	s.Empty(body["data"])
}

func (s *RouterTestSuite) TestFormClosedRejectsEdits() {
	w, _ := s.request(http.MethodPatch, "/v1/admin/form", s.token, `{"name":"Tote"}`)
	s.Equal(http.StatusConflict, w.Code)
}

func (s *RouterTestSuite) TestUploadFillsNextImageSlot() {
	s.request(http.MethodPost, "/v1/admin/form/new", s.token, "")

	w, body := s.uploadPNG("tote.png")
	s.Require().Equal(http.StatusCreated, w.Code)
	result := data(body)["upload"].(map[string]interface{})
	s.True(result["assigned"].(bool))
	s.EqualValues(1, result["slot"])
	url := result["url"].(string)
	s.True(strings.HasPrefix(url, "http://localhost:8080/uploads/products/"))

	w, body = s.request(http.MethodGet, "/v1/admin/form", s.token, "")
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal(url, data(body)["data"].(map[string]interface{})["image_url_1"])
}

func (s *RouterTestSuite) TestUploadRejectsNonImage() {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "notes.txt")
	s.Require().NoError(err)
	_, _ = part.Write([]byte("hello"))
	s.Require().NoError(mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/v1/admin/uploads", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w, _ := s.send(req, s.token)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *RouterTestSuite) TestDeleteNeedsConfirmation() {
	w, body := s.request(http.MethodPost, "/v1/admin/products", s.token,
		`{"name":"Wool Scarf","description":"Warm","category":"Accessories","price":20}`)
	s.Require().Equal(http.StatusCreated, w.Code)
	id := data(body)["product"].(map[string]interface{})["id"].(string)

	w, _ = s.request(http.MethodDelete, "/v1/admin/products/"+id, s.token, "")
	s.Equal(http.StatusBadRequest, w.Code)

	w, _ = s.request(http.MethodDelete, "/v1/admin/products/"+id+"?confirm=true", s.token, "")
	s.Equal(http.StatusOK, w.Code)

	w, _ = s.request(http.MethodGet, "/v1/admin/products/"+id, s.token, "")
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *RouterTestSuite) TestTaxonomyRoutes() {
	w, _ := s.request(http.MethodPost, "/v1/admin/styles", s.token, `{"name":" Minimal "}`)
	s.Require().Equal(http.StatusCreated, w.Code)

	w, body := s.request(http.MethodGet, "/v1/admin/styles", s.token, "")
	s.Require().Equal(http.StatusOK, w.Code)
	entries := body["data"].([]interface{})
	s.Require().Len(entries, 1)
	s.Equal("Minimal", entries[0].(map[string]interface{})["name"])
}

func (s *RouterTestSuite) TestOrderStatusMustBeKnown() {
	w, _ := s.request(http.MethodPut, "/v1/admin/orders/"+uuid.NewString()+"/status", s.token, `{"status":"lost"}`)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *RouterTestSuite) TestDashboardIncludesSalesCount() {
	_, err := s.svc.Orders.CreateOrder(context.Background(), &services.NewOrderRequest{
		CustomerName:  "Ada",
		CustomerEmail: "ada@example.com",
		Products:      []models.OrderLine{{ID: "p-1", Quantity: 2}},
		TotalAmount:   30,
	})
	s.Require().NoError(err)

	w, body := s.request(http.MethodGet, "/v1/admin/dashboard", s.token, "")
	s.Require().Equal(http.StatusOK, w.Code)
	s.EqualValues(2, data(body)["sales_count"].(map[string]interface{})["p-1"])
}

func TestRouterTestSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}

func TestInitializeRequiresAdminEmail(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		JWT:  config.JWTConfig{SecretKey: "router-secret", AccessTokenTTL: 1},
		CORS: config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
	}
	storage, err := services.NewStorageService(cfg)
	require.NoError(t, err)

	r := Initialize(NewServices(repositorytest.NewStore().Repositories(), storage, cfg), cfg)

	token, err := utils.GenerateJWT(uuid.New(), "someone@shop.test", 1)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/v1/admin/products", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("X-Forwarded-For", "172.16.0.1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
