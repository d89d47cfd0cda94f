package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/phanto-shop/storefront/catalog"
	"github.com/phanto-shop/storefront/models"
	"github.com/phanto-shop/storefront/pkg/apperrors"
)

// --- Mock Source ---

type MockSource struct {
	mock.Mock
}

func (m *MockSource) ListProducts(ctx context.Context, filter catalog.Filter) ([]models.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockSource) ListCategories(ctx context.Context) ([]models.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Category), args.Error(1)
}

type prefixResolver struct{ base string }

func (r prefixResolver) ImageURL(path string) string { return r.base + path }

// --- Tests ---

func TestListProductsEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success with category filter and image rewrite", func(t *testing.T) {
		source := new(MockSource)
		source.On("ListProducts", mock.Anything, catalog.Filter{Category: "furniture"}).
			Return([]models.Product{{ID: 1, Name: "Chair", Images: []string{"/media/chair.png"}}}, nil).Once()

		router := gin.New()
		router.GET("/products", NewCatalogController(source, prefixResolver{base: "http://cdn"}).ListProducts)

		recorder := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/products?category=furniture", nil)
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "http://cdn/media/chair.png")
		source.AssertExpectations(t)
	})

	t.Run("remote failure - 502", func(t *testing.T) {
		source := new(MockSource)
		source.On("ListProducts", mock.Anything, catalog.Filter{}).
			Return(nil, &catalog.RemoteError{Status: http.StatusServiceUnavailable, URL: "http://x"}).Once()

		router := gin.New()
		router.Use(apperrors.ErrorMiddleware())
		router.GET("/products", NewCatalogController(source, nil).ListProducts)

		recorder := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/products", nil)
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusBadGateway, recorder.Code)
		assert.JSONEq(t, `{"code":502,"message":"catalog service unavailable"}`, recorder.Body.String())
		source.AssertExpectations(t)
	})

	t.Run("empty result stays an array", func(t *testing.T) {
		source := new(MockSource)
		source.On("ListProducts", mock.Anything, catalog.Filter{}).Return([]models.Product{}, nil).Once()

		router := gin.New()
		router.GET("/products", NewCatalogController(source, nil).ListProducts)

		recorder := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/products", nil)
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.JSONEq(t, `{"results":[]}`, recorder.Body.String())
	})
}

func TestListCategoriesEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)

	source := new(MockSource)
	source.On("ListCategories", mock.Anything).
		Return([]models.Category{{ID: 1, Name: "Furniture", Slug: "furniture", ProductCount: 2}}, nil).Once()

	router := gin.New()
	router.GET("/categories", NewCatalogController(source, nil).ListCategories)

	recorder := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/categories", nil)
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"product_count":2`)
	source.AssertExpectations(t)
}
