package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/dispatch/internal/domain/model"
	"github.com/polkiloo/dispatch/internal/server/http/dto"
)

// DeliveryHandler manages delivery endpoints.
type DeliveryHandler struct {
	facade DeliveryFacade
}

// NewDeliveryHandler constructs DeliveryHandler.
func NewDeliveryHandler(facade DeliveryFacade) *DeliveryHandler {
	return &DeliveryHandler{facade: facade}
}

// List handles GET /api/deliveries.
func (h *DeliveryHandler) List(c *gin.Context) {
	deliveries, err := h.facade.Deliveries(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	respondList(c, mapSlice(deliveries, toDeliveryResponse), "deliveries found", "no deliveries found")
}

// Get handles GET /api/deliveries/:id.
func (h *DeliveryHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "delivery id")
	if !ok {
		return
	}
	delivery, err := h.facade.Delivery(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	respondData(c, http.StatusOK, "delivery found", toDeliveryResponse(*delivery))
}

// ByOrder handles GET /api/orders/:id/delivery.
func (h *DeliveryHandler) ByOrder(c *gin.Context) {
	id, ok := pathID(c, "order id")
	if !ok {
		return
	}
	delivery, err := h.facade.OrderDelivery(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	respondData(c, http.StatusOK, "delivery found", toDeliveryResponse(*delivery))
}

// SetStatus handles PUT /api/deliveries/:id/status.
func (h *DeliveryHandler) SetStatus(c *gin.Context) {
	id, ok := pathID(c, "delivery id")
	if !ok {
		return
	}
	var req dto.DeliveryStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, err)
		return
	}
	delivery, err := h.facade.SetDeliveryStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		fail(c, err)
		return
	}
	respondResult(c, "delivery status updated", toDeliveryResponse(*delivery))
}

// Cancel handles DELETE /api/deliveries/:id. The row is kept with status CANCELED.
func (h *DeliveryHandler) Cancel(c *gin.Context) {
	id, ok := pathID(c, "delivery id")
	if !ok {
		return
	}
	delivery, err := h.facade.CancelDelivery(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	respondResult(c, "delivery canceled", toDeliveryResponse(*delivery))
}

func toDeliveryResponse(d model.Delivery) dto.DeliveryResponse {
	return dto.DeliveryResponse{
		ID:           d.ID,
		OrderID:      d.OrderID,
		DistanceCost: d.DistanceCost,
		WeightCost:   d.WeightCost,
		Surcharge:    d.Surcharge,
		ExtraFee:     d.ExtraFee,
		Discount:     d.Discount,
		TotalCost:    d.TotalCost,
		Status:       string(d.Status),
	}
}
