package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/greencart/internal/service"
	"github.com/greencart/internal/view"
)

type cardPayload struct {
	Number string `json:"number"`
	Holder string `json:"holder"`
	Expiry string `json:"expiry"`
	CVC    string `json:"cvc"`
}

// ListPaymentMethods returns the signed-in user's cards, default first.
func (a *API) ListPaymentMethods(c *gin.Context) {
	methods, err := a.payments.List(currentUserID(c))
	if err != nil {
		a.handleServiceError(c, err)
		return
	}

	items := make([]gin.H, 0, len(methods))
	for _, method := range methods {
		items = append(items, paymentMethodToPayload(method))
	}
	c.JSON(http.StatusOK, gin.H{
		"payment_methods": items,
		"brands":          view.CardBrandOptions(),
	})
}

// AddPaymentMethod stores a new card.
func (a *API) AddPaymentMethod(c *gin.Context) {
	var payload cardPayload
	if !bindJSON(c, &payload, a.t(c, "invalid_request")) {
		return
	}

	method, err := a.payments.Add(currentUserID(c), service.CardInput{
		Number: payload.Number,
		Holder: payload.Holder,
		Expiry: payload.Expiry,
		CVC:    payload.CVC,
	}, a.now())
	if err != nil {
		a.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"payment_method": paymentMethodToPayload(*method)})
}

// SetDefaultPaymentMethod marks a card as the default.
func (a *API) SetDefaultPaymentMethod(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		a.fail(c, http.StatusBadRequest, "invalid_id")
		return
	}

	method, err := a.payments.SetDefault(currentUserID(c), id)
	if err != nil {
		a.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payment_method": paymentMethodToPayload(*method)})
}

// DeletePaymentMethod removes a card.
func (a *API) DeletePaymentMethod(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		a.fail(c, http.StatusBadRequest, "invalid_id")
		return
	}

	if err := a.payments.Delete(currentUserID(c), id); err != nil {
		a.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": a.t(c, "deleted")})
}
