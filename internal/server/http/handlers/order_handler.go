package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/dispatch/internal/domain/model"
	"github.com/polkiloo/dispatch/internal/server/http/dto"
	"github.com/polkiloo/dispatch/internal/usecase"
)

// OrderHandler manages order-related endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Create handles POST /api/orders.
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, err)
		return
	}

	order, delivery, err := h.facade.CreateOrder(c.Request.Context(), usecase.OrderInput{
		CustomerID:          string(req.CustomerID),
		Urgency:             req.Urgency,
		DistanceKm:          string(req.DistanceKm),
		WeightKg:            string(req.WeightKg),
		UnitPriceByWeight:   string(req.UnitPriceByWeight),
		UnitPriceByDistance: string(req.UnitPriceByDistance),
	})
	if err != nil {
		fail(c, err)
		return
	}
	respondData(c, http.StatusCreated, "order created", toOrderDetails(order, delivery))
}

// List handles GET /api/orders.
func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.facade.Orders(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	respondList(c, mapSlice(orders, toOrderResponse), "orders found", "no orders found")
}

// Get handles GET /api/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "order id")
	if !ok {
		return
	}
	order, delivery, err := h.facade.Order(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	respondData(c, http.StatusOK, "order found", toOrderDetails(order, delivery))
}

// Update handles PUT /api/orders/:id.
func (h *OrderHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "order id")
	if !ok {
		return
	}
	var req dto.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, err)
		return
	}

	order, delivery, err := h.facade.UpdateOrder(c.Request.Context(), id, usecase.OrderPatch{
		Urgency:             req.Urgency,
		DistanceKm:          req.DistanceKm.Text(),
		WeightKg:            req.WeightKg.Text(),
		UnitPriceByWeight:   req.UnitPriceByWeight.Text(),
		UnitPriceByDistance: req.UnitPriceByDistance.Text(),
	})
	if err != nil {
		fail(c, err)
		return
	}
	respondResult(c, "order updated", toOrderDetails(order, delivery))
}

// Cancel handles DELETE /api/orders/:id. The delivery is removed with the order.
func (h *OrderHandler) Cancel(c *gin.Context) {
	id, ok := pathID(c, "order id")
	if !ok {
		return
	}
	if err := h.facade.CancelOrder(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.Envelope{Message: "order canceled"})
}

// ListByCustomer handles GET /api/customers/:id/orders.
func (h *OrderHandler) ListByCustomer(c *gin.Context) {
	id, ok := pathID(c, "customer id")
	if !ok {
		return
	}
	orders, err := h.facade.CustomerOrders(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	respondList(c, mapSlice(orders, toOrderResponse), "orders found", "customer has no orders")
}

func toOrderResponse(order model.Order) dto.OrderResponse {
	return dto.OrderResponse{
		ID:                  order.ID,
		CustomerID:          order.CustomerID,
		Urgency:             string(order.Urgency),
		DistanceKm:          order.DistanceKm,
		WeightKg:            order.WeightKg,
		UnitPriceByWeight:   order.UnitPriceByWeight,
		UnitPriceByDistance: order.UnitPriceByDistance,
		CreatedAt:           order.CreatedAt,
	}
}

func toOrderDetails(order *model.Order, delivery *model.Delivery) dto.OrderDetailsResponse {
	return dto.OrderDetailsResponse{
		Order:    toOrderResponse(*order),
		Delivery: toDeliveryResponse(*delivery),
	}
}
