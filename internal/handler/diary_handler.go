package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/greencart/internal/service"
)

type diaryPayload struct {
	StrainID      uint     `json:"strain_id"`
	UseDate       string   `json:"use_date"`
	DurationHours float64  `json:"duration_hours"`
	Rating        float64  `json:"rating"`
	Feelings      []string `json:"feelings"`
	Reasons       []string `json:"reasons"`
	Notes         string   `json:"notes"`
}

func (a *API) diaryInput(c *gin.Context) (service.DiaryInput, bool) {
	var payload diaryPayload
	if !bindJSON(c, &payload, a.t(c, "invalid_request")) {
		return service.DiaryInput{}, false
	}

	useDate, err := parseDateInput(payload.UseDate, a.now().Location())
	if err != nil {
		a.fail(c, http.StatusBadRequest, "invalid_date")
		return service.DiaryInput{}, false
	}

	return service.DiaryInput{
		StrainID:      payload.StrainID,
		UseDate:       useDate,
		DurationHours: payload.DurationHours,
		Rating:        payload.Rating,
		Feelings:      payload.Feelings,
		Reasons:       payload.Reasons,
		Notes:         payload.Notes,
	}, true
}

// strainNames maps catalog ids to names for diary payloads.
func (a *API) strainNames() map[uint]string {
	snapshot, err := a.catalog.Snapshot()
	if err != nil {
		return map[uint]string{}
	}
	names := make(map[uint]string, len(snapshot))
	for _, strain := range snapshot {
		names[strain.ID] = strain.Name
	}
	return names
}

// ListDiary returns the signed-in user's diary, most recent use first.
func (a *API) ListDiary(c *gin.Context) {
	entries, err := a.diary.List(currentUserID(c))
	if err != nil {
		a.handleServiceError(c, err)
		return
	}

	names := a.strainNames()
	items := make([]gin.H, 0, len(entries))
	for _, entry := range entries {
		items = append(items, diaryToPayload(entry, names[entry.StrainID]))
	}
	c.JSON(http.StatusOK, gin.H{"entries": items})
}

// GetDiaryEntry returns one diary entry.
func (a *API) GetDiaryEntry(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		a.fail(c, http.StatusBadRequest, "invalid_id")
		return
	}

	entry, err := a.diary.Get(currentUserID(c), id)
	if err != nil {
		a.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entry": diaryToPayload(*entry, a.strainNames()[entry.StrainID])})
}

// CreateDiaryEntry logs a manual entry.
func (a *API) CreateDiaryEntry(c *gin.Context) {
	input, ok := a.diaryInput(c)
	if !ok {
		return
	}

	entry, err := a.diary.Create(currentUserID(c), input, a.now())
	if err != nil {
		a.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"entry": diaryToPayload(*entry, a.strainNames()[entry.StrainID])})
}

// UpdateDiaryEntry rates or annotates an entry.
func (a *API) UpdateDiaryEntry(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		a.fail(c, http.StatusBadRequest, "invalid_id")
		return
	}

	input, ok := a.diaryInput(c)
	if !ok {
		return
	}

	entry, err := a.diary.Update(currentUserID(c), id, input)
	if err != nil {
		a.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entry": diaryToPayload(*entry, a.strainNames()[entry.StrainID])})
}

// DeleteDiaryEntry removes an entry.
func (a *API) DeleteDiaryEntry(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		a.fail(c, http.StatusBadRequest, "invalid_id")
		return
	}

	if err := a.diary.Delete(currentUserID(c), id); err != nil {
		a.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": a.t(c, "deleted")})
}

// DiaryOptions returns the suggested feeling and reason tags.
func (a *API) DiaryOptions(c *gin.Context) {
	opts := a.diary.Options()
	c.JSON(http.StatusOK, gin.H{"feelings": opts.Feelings, "reasons": opts.Reasons})
}
