package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/server/http/dto"
)

// ProductHandler serves the catalog.
type ProductHandler struct {
	facade CatalogFacade
}

// NewProductHandler constructs ProductHandler.
func NewProductHandler(facade CatalogFacade) *ProductHandler {
	return &ProductHandler{facade: facade}
}

// List handles GET /api/v1/products.
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.facade.Products(c.Request.Context())
	if err != nil {
		failWith(c, err)
		return
	}
	response := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		response = append(response, toProductResponse(p))
	}
	respond(c, http.StatusOK, gin.H{"products": response})
}

// Get handles GET /api/v1/products/:id.
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	product, err := h.facade.Product(c.Request.Context(), id)
	if err != nil {
		failWith(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"product": toProductResponse(*product)})
}

// Create handles POST /api/v1/products/admin.
func (h *ProductHandler) Create(c *gin.Context) {
	var req dto.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "malformed request body")
		return
	}
	product, err := h.facade.CreateProduct(c.Request.Context(), fromProductRequest(0, req))
	if err != nil {
		failWith(c, err)
		return
	}
	respond(c, http.StatusCreated, gin.H{"product": toProductResponse(*product)})
}

// Update handles PUT /api/v1/products/admin/:id.
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "malformed request body")
		return
	}
	product, err := h.facade.UpdateProduct(c.Request.Context(), fromProductRequest(id, req))
	if err != nil {
		failWith(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"product": toProductResponse(*product)})
}

// Delete handles DELETE /api/v1/products/admin/:id.
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.facade.DeleteProduct(c.Request.Context(), id); err != nil {
		failWith(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"message": "product deleted"})
}

func fromProductRequest(id int64, req dto.ProductRequest) *model.Product {
	return &model.Product{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Image:       req.Image,
		Category:    req.Category,
		Stock:       req.Stock,
	}
}

func toProductResponse(p model.Product) dto.ProductResponse {
	sizes := p.Sizes
	if sizes == nil {
		sizes = []string{}
	}
	return dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Image:       p.Image,
		Category:    p.Category,
		Stock:       model.NormalizeStock(p.Stock),
		Sizes:       sizes,
		CreatedAt:   p.CreatedAt,
	}
}
