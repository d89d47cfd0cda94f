package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/phanto-shop/storefront/catalog"
	"github.com/phanto-shop/storefront/models"
	"github.com/phanto-shop/storefront/pkg/apperrors"
	"github.com/phanto-shop/storefront/pkg/logger"
)

// ImageResolver turns a server-provided relative image path into an
// absolute URL. The remote catalog client implements it; the static source
// serves paths as-is.
type ImageResolver interface {
	ImageURL(path string) string
}

type CatalogController struct {
	source   catalog.Source
	resolver ImageResolver
}

// NewCatalogController wires the catalog source. resolver may be nil, in
// which case image paths are passed through untouched.
func NewCatalogController(source catalog.Source, resolver ImageResolver) *CatalogController {
	return &CatalogController{source: source, resolver: resolver}
}

// ListProducts handles GET /api/products, optionally filtered by the
// category query parameter.
func (ctrl *CatalogController) ListProducts(c *gin.Context) {
	filter := catalog.Filter{Category: c.Query("category")}

	products, err := ctrl.source.ListProducts(c.Request.Context(), filter)
	if err != nil {
		ctrl.remoteFailure(c, "Failed to list products", err)
		return
	}
	if products == nil {
		products = []models.Product{}
	}

	for i := range products {
		products[i].Images = ctrl.resolveImages(products[i].Images)
	}

	c.JSON(http.StatusOK, gin.H{"results": products})
}

// ListCategories handles GET /api/categories.
func (ctrl *CatalogController) ListCategories(c *gin.Context) {
	categories, err := ctrl.source.ListCategories(c.Request.Context())
	if err != nil {
		ctrl.remoteFailure(c, "Failed to list categories", err)
		return
	}
	if categories == nil {
		categories = []models.Category{}
	}

	c.JSON(http.StatusOK, gin.H{"results": categories})
}

// remoteFailure maps catalog errors to a response the page can render as an
// error state. Remote failures are surfaced, never retried; the error
// middleware turns the attached error into the JSON body.
func (ctrl *CatalogController) remoteFailure(c *gin.Context, msg string, err error) {
	var remoteErr *catalog.RemoteError
	if errors.As(err, &remoteErr) {
		logger.Error(c, msg, err, zap.Int("upstream_status", remoteErr.Status))
		c.Error(apperrors.New(http.StatusBadGateway, "catalog service unavailable", err))
		return
	}
	logger.Error(c, msg, err)
	c.Error(apperrors.New(http.StatusInternalServerError, msg, err))
}

func (ctrl *CatalogController) resolveImages(images []string) []string {
	if ctrl.resolver == nil || len(images) == 0 {
		return images
	}
	out := make([]string, len(images))
	for i, img := range images {
		out[i] = ctrl.resolver.ImageURL(img)
	}
	return out
}
