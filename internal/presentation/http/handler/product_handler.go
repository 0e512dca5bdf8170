package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/bytechef-api/internal/application/service"
	"github.com/sangkips/bytechef-api/internal/presentation/http/dto/request"
	"github.com/sangkips/bytechef-api/internal/presentation/http/dto/response"
)

// ProductHandler handles catalog HTTP requests
type ProductHandler struct {
	catalogService *service.CatalogService
}

// NewProductHandler creates a new product handler
func NewProductHandler(catalogService *service.CatalogService) *ProductHandler {
	return &ProductHandler{catalogService: catalogService}
}

// List handles GET /products
func (h *ProductHandler) List(c *gin.Context) {
	var filter request.ProductFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Parâmetros inválidos")
		return
	}

	products, err := h.catalogService.ListProducts(c.Request.Context(), filter.Search)
	if err != nil {
		response.Error(c, err, "Erro ao buscar produtos")
		return
	}

	response.OK(c, products)
}
