package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/greencart/internal/cart"
	"github.com/greencart/internal/service"
	"go.uber.org/zap"
)

var errorStatus = []struct {
	err    error
	status int
	key    string
}{
	{service.ErrInvalidCredentials, http.StatusUnauthorized, "invalid_credentials"},
	{service.ErrEmailTaken, http.StatusConflict, "email_taken"},
	{service.ErrInvalidEmail, http.StatusBadRequest, "invalid_email"},
	{service.ErrPasswordTooShort, http.StatusBadRequest, "password_too_short"},
	{service.ErrPasswordTooLong, http.StatusBadRequest, "password_too_long"},
	{service.ErrBirthDateRequired, http.StatusBadRequest, "birth_date_required"},
	{service.ErrUnderage, http.StatusForbidden, "underage"},
	{service.ErrUserNotFound, http.StatusNotFound, "user_not_found"},
	{service.ErrStrainNotFound, http.StatusNotFound, "strain_not_found"},
	{service.ErrStrainInvalidInput, http.StatusBadRequest, "invalid_strain"},
	{cart.ErrInvalidQuantity, http.StatusBadRequest, "invalid_quantity"},
	{service.ErrEmptyCart, http.StatusBadRequest, "empty_cart"},
	{service.ErrOrderNotFound, http.StatusNotFound, "order_not_found"},
	{service.ErrPaymentMethodNotFound, http.StatusNotFound, "payment_not_found"},
	{service.ErrInvalidCard, http.StatusBadRequest, "invalid_card"},
	{service.ErrDiaryEntryNotFound, http.StatusNotFound, "diary_not_found"},
	{service.ErrDiaryInvalidInput, http.StatusBadRequest, "invalid_diary"},
	{service.ErrReviewInvalidInput, http.StatusBadRequest, "invalid_review"},
}

// handleServiceError maps service sentinels to a status and a localized
// message. Anything unknown is logged and reported as 500.
func (a *API) handleServiceError(c *gin.Context, err error) {
	for _, mapping := range errorStatus {
		if errors.Is(err, mapping.err) {
			a.fail(c, mapping.status, mapping.key)
			return
		}
	}

	_ = c.Error(err)
	a.logger.Error("request failed",
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	a.fail(c, http.StatusInternalServerError, "internal_error")
}
