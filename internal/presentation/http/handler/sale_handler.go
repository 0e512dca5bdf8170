package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/bytechef-api/internal/application/service"
	"github.com/sangkips/bytechef-api/internal/presentation/http/dto/request"
	"github.com/sangkips/bytechef-api/internal/presentation/http/dto/response"
)

// SaleHandler handles sale and ledger HTTP requests
type SaleHandler struct {
	saleService *service.SaleService
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(saleService *service.SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

// Open handles POST /sales/open
func (h *SaleHandler) Open(c *gin.Context) {
	var req request.OpenSaleRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		response.BadRequest(c, "Requisição inválida")
		return
	}

	input := &service.OpenSaleInput{Items: make([]service.OpenSaleItemInput, 0, len(req.Items))}
	for _, item := range req.Items {
		productID, err := uuid.Parse(item.ProductID)
		if err != nil {
			response.BadRequest(c, "Produto inválido")
			return
		}
		input.Items = append(input.Items, service.OpenSaleItemInput{
			ProductID: productID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	sale, err := h.saleService.OpenSale(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err, "Erro ao abrir venda")
		return
	}

	response.OK(c, sale)
}

// Close handles POST /sales/:id/close
func (h *SaleHandler) Close(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		response.NotFound(c, service.MsgSaleNotFound)
		return
	}

	var req request.CloseSaleRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		response.BadRequest(c, "Pagamentos inválidos")
		return
	}

	sale, err := h.saleService.CloseSale(c.Request.Context(), id, req.Payments)
	if err != nil {
		response.Error(c, err, "Erro ao fechar venda")
		return
	}

	response.OK(c, sale)
}

// Get handles GET /sales/:id
func (h *SaleHandler) Get(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		response.NotFound(c, service.MsgSaleNotFound)
		return
	}

	sale, err := h.saleService.GetSale(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err, "Erro ao buscar venda")
		return
	}

	response.OK(c, sale)
}

// ListDaily handles GET /sales/daily
func (h *SaleHandler) ListDaily(c *gin.Context) {
	sales, err := h.saleService.ListDaily(c.Request.Context())
	if err != nil {
		response.Error(c, err, "Erro ao buscar vendas diárias")
		return
	}

	response.OK(c, sales)
}

// SendToMonthly handles POST /sales/daily/sendToMonthly
func (h *SaleHandler) SendToMonthly(c *gin.Context) {
	res, err := h.saleService.SendDailyToMonthly(c.Request.Context())
	if err != nil {
		response.Error(c, err, "Erro ao enviar para o mensal")
		return
	}

	response.OK(c, response.NewRollupResponse(res))
}

// PurgeDaily handles DELETE /sales/daily
func (h *SaleHandler) PurgeDaily(c *gin.Context) {
	if _, err := h.saleService.PurgeDaily(c.Request.Context()); err != nil {
		response.Error(c, err, "Erro ao limpar vendas do dia")
		return
	}

	response.Message(c, service.MsgDailyPurged)
}

// ListMonthly handles GET /sales/monthly
func (h *SaleHandler) ListMonthly(c *gin.Context) {
	rows, err := h.saleService.ListMonthly(c.Request.Context())
	if err != nil {
		response.Error(c, err, "Erro ao buscar vendas mensais")
		return
	}

	response.OK(c, rows)
}
