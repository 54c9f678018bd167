package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type checkoutPayload struct {
	PaymentMethodID uint `json:"payment_method_id"`
}

// Checkout places an order for the session cart and empties it.
func (a *API) Checkout(c *gin.Context) {
	var payload checkoutPayload
	if c.Request.ContentLength != 0 {
		if !bindJSON(c, &payload, a.t(c, "invalid_request")) {
			return
		}
	}

	cc, err := a.loadCart(c)
	if err != nil {
		a.handleServiceError(c, err)
		return
	}

	order, err := a.orders.Checkout(currentUserID(c), cc, payload.PaymentMethodID, a.now())
	if err != nil {
		a.handleServiceError(c, err)
		return
	}

	cc.Clear()
	if err := a.saveCart(c, cc); err != nil {
		a.logger.Warn("failed to clear cart after checkout", zap.Uint("order_id", order.ID), zap.Error(err))
	}
	c.JSON(http.StatusCreated, gin.H{"order": orderToPayload(*order)})
}

// ListOrders returns the signed-in user's orders, newest first.
func (a *API) ListOrders(c *gin.Context) {
	orders, err := a.orders.List(currentUserID(c))
	if err != nil {
		a.handleServiceError(c, err)
		return
	}

	items := make([]gin.H, 0, len(orders))
	for _, order := range orders {
		items = append(items, orderToPayload(order))
	}
	c.JSON(http.StatusOK, gin.H{"orders": items})
}

// GetOrder returns one of the signed-in user's orders.
func (a *API) GetOrder(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		a.fail(c, http.StatusBadRequest, "invalid_id")
		return
	}

	order, err := a.orders.Get(currentUserID(c), id)
	if err != nil {
		a.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": orderToPayload(*order)})
}
