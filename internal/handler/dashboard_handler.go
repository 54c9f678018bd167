package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/greencart/internal/insights"
)

// GetDashboard returns the statistics view-model. window is 7d, 30d or all;
// anything else means 7d.
func (a *API) GetDashboard(c *gin.Context) {
	window := insights.ParseWindow(c.Query("window"))

	dashboard, err := a.dashboard.Build(currentUserID(c), window, a.now())
	if err != nil {
		a.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"dashboard": dashboardToPayload(dashboard)})
}
