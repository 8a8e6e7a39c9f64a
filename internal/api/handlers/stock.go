package handlers

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/wonny/mandacaru-broker/internal/api/response"
	"github.com/wonny/mandacaru-broker/internal/domain/stock"
	stockservice "github.com/wonny/mandacaru-broker/internal/service/stock"
)

// StockHandler handles stock-related HTTP requests
type StockHandler struct {
	service *stockservice.Service
}

// NewStockHandler creates a new StockHandler
func NewStockHandler(service *stockservice.Service) *StockHandler {
	return &StockHandler{
		service: service,
	}
}

// List handles GET /api/stocks
func (h *StockHandler) List(c *gin.Context) {
	stocks, err := h.service.List(c.Request.Context())
	if err != nil {
		response.DatabaseError(c, err)
		return
	}

	response.SuccessList(c, stocks, len(stocks))
}

// Get handles GET /api/stocks/:id
func (h *StockHandler) Get(c *gin.Context) {
	id := c.Param("id")

	s, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, id, err)
		return
	}

	response.Success(c, s)
}

// Create handles POST /api/stocks
func (h *StockHandler) Create(c *gin.Context) {
	var req stock.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	s, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, "", err)
		return
	}

	response.Created(c, s, "Stock created")
}

// Update handles PUT /api/stocks/:id
func (h *StockHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var req stock.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	s, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.handleError(c, id, err)
		return
	}

	response.Success(c, s)
}

// AdjustPrice handles PATCH /api/stocks/:id/price
func (h *StockHandler) AdjustPrice(c *gin.Context) {
	id := c.Param("id")

	var req stock.PriceAdjustment
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if req.ChangePct == nil {
		response.ValidationError(c, "", []response.FieldError{
			{Field: "change_pct", Message: "Price change cannot be null"},
		})
		return
	}

	s, err := h.service.AdjustPrice(c.Request.Context(), id, *req.ChangePct)
	if err != nil {
		h.handleError(c, id, err)
		return
	}

	response.Success(c, s)
}

// Delete handles DELETE /api/stocks/:id
func (h *StockHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, id, err)
		return
	}

	response.NoContent(c)
}

// handleError maps service errors onto responses
func (h *StockHandler) handleError(c *gin.Context, id string, err error) {
	var verr *stock.ValidationError
	switch {
	case errors.As(err, &verr):
		fields := make([]response.FieldError, 0, len(verr.Violations))
		for _, v := range verr.Violations {
			fields = append(fields, response.FieldError{Field: v.Field, Message: v.Message})
		}
		response.ValidationError(c, verr.Error(), fields)
	case errors.Is(err, stock.ErrStockNotFound):
		response.NotFound(c, fmt.Sprintf("No stock found with id: %s", id))
	default:
		response.DatabaseError(c, err)
	}
}
