package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListFavorites returns the signed-in user's favorite strains.
func (a *API) ListFavorites(c *gin.Context) {
	strains, err := a.favorites.Strains(currentUserID(c))
	if err != nil {
		a.handleServiceError(c, err)
		return
	}

	items := make([]gin.H, 0, len(strains))
	ids := make([]uint, 0, len(strains))
	for _, strain := range strains {
		items = append(items, strainToPayload(strain))
		ids = append(ids, strain.ID)
	}
	c.JSON(http.StatusOK, gin.H{"strain_ids": ids, "strains": items})
}

// ToggleFavorite flips the favorite flag of a strain.
func (a *API) ToggleFavorite(c *gin.Context) {
	strainID, err := parseUintParam(c, "strainId")
	if err != nil {
		a.fail(c, http.StatusBadRequest, "invalid_id")
		return
	}

	favorited, err := a.favorites.Toggle(currentUserID(c), strainID)
	if err != nil {
		a.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"strain_id": strainID, "favorited": favorited})
}
