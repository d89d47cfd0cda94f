package controllers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/phanto-shop/storefront/cart"
	"github.com/phanto-shop/storefront/models"
	"github.com/phanto-shop/storefront/pkg/apperrors"
	"github.com/phanto-shop/storefront/pkg/logger"
	"github.com/phanto-shop/storefront/pkg/money"
)

// CartAPI is the slice of the cart store the controller needs.
type CartAPI interface {
	AddItem(ctx context.Context, product models.Product, qty int) error
	RemoveItem(ctx context.Context, productID int64) error
	UpdateQuantity(ctx context.Context, productID int64, qty int) error
	Clear(ctx context.Context) error
	Items() []models.CartLine
	Total() money.Cents
	Count() int
	Summary() cart.Summary
}

type CartController struct {
	store CartAPI
}

func NewCartController(store CartAPI) *CartController {
	return &CartController{store: store}
}

// AddItemRequest carries the product being added; the page already holds the
// full product record, so the snapshot travels with the request instead of
// being re-fetched from the catalog.
type AddItemRequest struct {
	Product  models.Product `json:"product" binding:"required"`
	Quantity int            `json:"quantity"`
}

type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// GetCart handles GET /api/cart.
func (cc *CartController) GetCart(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"items": cc.store.Items(),
		"total": cc.store.Total(),
		"count": cc.store.Count(),
	})
}

// AddItem handles POST /api/cart/items.
func (cc *CartController) AddItem(c *gin.Context) {
	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if req.Product.ID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "product id is required"})
		return
	}

	if err := cc.store.AddItem(c.Request.Context(), req.Product, req.Quantity); err != nil {
		logger.Error(c, "Failed to add cart item", err, zap.Int64("product_id", req.Product.ID))
		c.Error(apperrors.New(http.StatusInternalServerError, "failed to save cart", err))
		return
	}

	cc.GetCart(c)
}

// UpdateQuantity handles PATCH /api/cart/items/:product_id. A quantity of
// zero or less removes the line.
func (cc *CartController) UpdateQuantity(c *gin.Context) {
	productID, ok := cc.productID(c)
	if !ok {
		return
	}

	var req UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	if err := cc.store.UpdateQuantity(c.Request.Context(), productID, req.Quantity); err != nil {
		logger.Error(c, "Failed to update cart item", err, zap.Int64("product_id", productID))
		c.Error(apperrors.New(http.StatusInternalServerError, "failed to save cart", err))
		return
	}

	cc.GetCart(c)
}

// RemoveItem handles DELETE /api/cart/items/:product_id.
func (cc *CartController) RemoveItem(c *gin.Context) {
	productID, ok := cc.productID(c)
	if !ok {
		return
	}

	if err := cc.store.RemoveItem(c.Request.Context(), productID); err != nil {
		logger.Error(c, "Failed to remove cart item", err, zap.Int64("product_id", productID))
		c.Error(apperrors.New(http.StatusInternalServerError, "failed to save cart", err))
		return
	}

	cc.GetCart(c)
}

// ClearCart handles DELETE /api/cart.
func (cc *CartController) ClearCart(c *gin.Context) {
	if err := cc.store.Clear(c.Request.Context()); err != nil {
		logger.Error(c, "Failed to clear cart", err)
		c.Error(apperrors.New(http.StatusInternalServerError, "failed to clear cart", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "cart cleared"})
}

// GetSummary handles GET /api/cart/summary.
func (cc *CartController) GetSummary(c *gin.Context) {
	c.JSON(http.StatusOK, cc.store.Summary())
}

// Checkout handles POST /api/cart/checkout. Payment is not implemented; the
// endpoint mirrors the storefront's checkout affordance by clearing the cart
// and saying so.
func (cc *CartController) Checkout(c *gin.Context) {
	if cc.store.Count() == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cart is empty"})
		return
	}

	summary := cc.store.Summary()
	if err := cc.store.Clear(c.Request.Context()); err != nil {
		logger.Error(c, "Failed to clear cart after checkout", err)
		c.Error(apperrors.New(http.StatusInternalServerError, "failed to clear cart", err))
		return
	}

	logger.Info(c, "Checkout recorded", zap.Int("units", summary.Count))
	c.JSON(http.StatusOK, gin.H{
		"message": "checkout recorded, payment not implemented",
		"summary": summary,
	})
}

func (cc *CartController) productID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("product_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return 0, false
	}
	return id, true
}
