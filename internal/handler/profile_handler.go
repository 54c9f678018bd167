package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/greencart/internal/service"
)

type profilePayload struct {
	DisplayName string `json:"display_name"`
	Phone       string `json:"phone"`
	PhotoURL    string `json:"photo_url"`
}

// GetMe returns the signed-in user's profile.
func (a *API) GetMe(c *gin.Context) {
	user, err := a.users.Get(currentUserID(c))
	if err != nil {
		a.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": userToPayload(*user)})
}

// UpdateMe edits the signed-in user's profile.
func (a *API) UpdateMe(c *gin.Context) {
	var payload profilePayload
	if !bindJSON(c, &payload, a.t(c, "invalid_request")) {
		return
	}

	user, err := a.users.UpdateProfile(currentUserID(c), service.ProfileInput{
		DisplayName: payload.DisplayName,
		Phone:       payload.Phone,
		PhotoURL:    payload.PhotoURL,
	})
	if err != nil {
		a.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": userToPayload(*user)})
}
