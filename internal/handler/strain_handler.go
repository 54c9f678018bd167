package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/greencart/internal/service"
)

type reviewPayload struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// ListStrains returns the catalog, filtered by effect, type, search and limit.
func (a *API) ListStrains(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	filter := service.CatalogFilter{
		Effect: c.Query("effect"),
		Type:   c.Query("type"),
		Search: c.Query("search"),
		Limit:  limit,
	}

	strains, err := a.catalog.List(filter)
	if err != nil {
		a.handleServiceError(c, err)
		return
	}

	items := make([]gin.H, 0, len(strains))
	for _, strain := range strains {
		items = append(items, strainToPayload(strain))
	}
	c.JSON(http.StatusOK, gin.H{"strains": items})
}

// GetStrain returns one strain with its review summary.
func (a *API) GetStrain(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		a.fail(c, http.StatusBadRequest, "invalid_id")
		return
	}

	strain, err := a.catalog.Get(id)
	if err != nil {
		a.handleServiceError(c, err)
		return
	}

	summary, err := a.reviews.Summary(id)
	if err != nil {
		a.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"strain": strainToPayload(*strain),
		"reviews": gin.H{
			"count":   summary.Count,
			"average": roundMoney(summary.Average),
		},
	})
}

// ListStrainReviews returns a strain's reviews, newest first.
func (a *API) ListStrainReviews(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		a.fail(c, http.StatusBadRequest, "invalid_id")
		return
	}
	if _, err := a.catalog.Get(id); err != nil {
		a.handleServiceError(c, err)
		return
	}

	reviews, err := a.reviews.ListForStrain(id)
	if err != nil {
		a.handleServiceError(c, err)
		return
	}

	items := make([]gin.H, 0, len(reviews))
	for _, review := range reviews {
		items = append(items, reviewToPayload(review))
	}
	c.JSON(http.StatusOK, gin.H{"reviews": items})
}

// AddStrainReview posts a review as the signed-in user.
func (a *API) AddStrainReview(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		a.fail(c, http.StatusBadRequest, "invalid_id")
		return
	}

	var payload reviewPayload
	if !bindJSON(c, &payload, a.t(c, "invalid_request")) {
		return
	}

	review, err := a.reviews.Add(currentUserID(c), id, payload.Rating, payload.Comment, a.now())
	if err != nil {
		a.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"review": reviewToPayload(*review)})
}

// ListStrainNotes returns the signed-in user's diary notes for a strain.
func (a *API) ListStrainNotes(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		a.fail(c, http.StatusBadRequest, "invalid_id")
		return
	}

	strain, err := a.catalog.Get(id)
	if err != nil {
		a.handleServiceError(c, err)
		return
	}

	entries, err := a.diary.StrainNotes(currentUserID(c), id)
	if err != nil {
		a.handleServiceError(c, err)
		return
	}

	items := make([]gin.H, 0, len(entries))
	for _, entry := range entries {
		items = append(items, diaryToPayload(entry, strain.Name))
	}
	c.JSON(http.StatusOK, gin.H{"notes": items})
}
