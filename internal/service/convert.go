package service

import (
	"github.com/greencart/internal/db"
	"github.com/greencart/internal/insights"
)

func toInsightsStrain(s db.Strain) insights.Strain {
	return insights.Strain{
		ID:          s.ID,
		Name:        s.Name,
		THCMin:      s.THCMin,
		THCMax:      s.THCMax,
		CBDMin:      s.CBDMin,
		CBDMax:      s.CBDMax,
		Price:       s.Price,
		Type:        s.Type,
		Parents:     s.Parents,
		Aromas:      s.Aromas,
		Effects:     s.Effects,
		Description: s.Description,
		MainURL:     s.MainURL,
		ImageURL:    s.ImageURL,
	}
}

func toInsightsEntry(e db.DiaryEntry) insights.Entry {
	return insights.Entry{
		ID:            e.ID,
		UserID:        e.UserID,
		OrderID:       e.OrderID,
		StrainID:      e.StrainID,
		OrderDate:     e.OrderDate,
		UseDate:       e.UseDate,
		DurationHours: e.DurationHours,
		Rating:        e.Rating,
		Feelings:      e.Feelings,
		Reasons:       e.Reasons,
		Notes:         e.Notes,
	}
}
