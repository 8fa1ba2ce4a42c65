package handler

import (
	"net/http"
	"strings"

	"petchat/internal/model"
	"petchat/internal/service"

	"github.com/gin-gonic/gin"
)

// ProductHandler handles catalog HTTP requests
type ProductHandler struct {
	chatService *service.ChatService
}

// NewProductHandler creates a new product handler
func NewProductHandler(chatService *service.ChatService) *ProductHandler {
	return &ProductHandler{
		chatService: chatService,
	}
}

// List handles GET /api/v1/products?q=
func (h *ProductHandler) List(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		products := h.chatService.ListProducts()
		c.JSON(http.StatusOK, model.ProductListResponse{Products: products, Total: len(products)})
		return
	}

	products, attrs := h.chatService.SearchProducts(query)
	c.JSON(http.StatusOK, model.ProductListResponse{
		Products:   products,
		Total:      len(products),
		Query:      query,
		Attributes: &attrs,
	})
}

// Get handles GET /api/v1/products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	product, ok := h.chatService.GetProduct(c.Request.Context(), c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, product)
}
