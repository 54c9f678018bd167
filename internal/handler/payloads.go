package handler

import (
	"math"

	"github.com/gin-gonic/gin"
	"github.com/greencart/internal/cart"
	"github.com/greencart/internal/db"
	"github.com/greencart/internal/insights"
	"github.com/greencart/internal/service"
	"github.com/greencart/internal/view"
)

func userToPayload(user db.User) gin.H {
	payload := gin.H{
		"id":           user.ID,
		"email":        user.Email,
		"display_name": user.DisplayName,
		"phone":        user.Phone,
		"photo_url":    user.PhotoURL,
		"birth_date":   "",
	}
	if user.BirthDate != nil {
		payload["birth_date"] = user.BirthDate.Format(dateFormat)
	}
	if user.LastLoginAt != nil {
		payload["last_login_at"] = formatTime(*user.LastLoginAt)
	}
	return payload
}

func strainToPayload(strain db.Strain) gin.H {
	return gin.H{
		"id":          strain.ID,
		"name":        strain.Name,
		"type":        strain.Type,
		"thc_min":     strain.THCMin,
		"thc_max":     strain.THCMax,
		"cbd_min":     strain.CBDMin,
		"cbd_max":     strain.CBDMax,
		"price":       strain.Price,
		"parents":     nonNil(strain.Parents),
		"aromas":      nonNil(strain.Aromas),
		"effects":     nonNil(strain.Effects),
		"description": strain.Description,
		"main_url":    strain.MainURL,
		"image_url":   strain.ImageURL,
	}
}

func insightsStrainToPayload(strain insights.Strain) gin.H {
	return gin.H{
		"id":        strain.ID,
		"name":      strain.Name,
		"type":      strain.Type,
		"price":     strain.Price,
		"effects":   nonNil(strain.Effects),
		"main_url":  strain.MainURL,
		"image_url": strain.ImageURL,
	}
}

func reviewToPayload(review db.Review) gin.H {
	return gin.H{
		"id":            review.ID,
		"strain_id":     review.StrainID,
		"reviewer_name": review.ReviewerName,
		"date":          formatTime(review.Date),
		"rating":        review.Rating,
		"comment":       review.Comment,
		"comment_html":  string(service.RenderMarkdown(review.Comment)),
	}
}

func diaryToPayload(entry db.DiaryEntry, strainName string) gin.H {
	return gin.H{
		"id":             entry.ID,
		"order_id":       entry.OrderID,
		"strain_id":      entry.StrainID,
		"strain_name":    strainName,
		"order_date":     formatTime(entry.OrderDate),
		"use_date":       formatTime(entry.UseDate),
		"duration_hours": entry.DurationHours,
		"rating":         entry.Rating,
		"rated":          entry.Rating > 0,
		"feelings":       nonNil(entry.Feelings),
		"reasons":        nonNil(entry.Reasons),
		"notes":          entry.Notes,
		"notes_html":     string(service.RenderMarkdown(entry.Notes)),
	}
}

func orderToPayload(order db.Order) gin.H {
	items := make([]gin.H, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, gin.H{
			"strain_id": item.StrainID,
			"name":      item.Name,
			"grams":     item.Quantity,
			"price":     roundMoney(item.Price),
		})
	}
	return gin.H{
		"id":                order.ID,
		"status":            order.Status,
		"order_date":        formatTime(order.OrderDate),
		"payment_method_id": order.PaymentMethodID,
		"total":             roundMoney(order.Total),
		"items":             items,
	}
}

func paymentMethodToPayload(method db.PaymentMethod) gin.H {
	icon := view.CardBrandIcon(method.Brand)
	return gin.H{
		"id":              method.ID,
		"public_id":       method.PublicID,
		"brand":           method.Brand,
		"brand_icon":      icon.Key,
		"last4":           method.Last4,
		"exp_month":       method.ExpMonth,
		"exp_year":        method.ExpYear,
		"cardholder_name": method.CardholderName,
		"is_default":      method.IsDefault,
	}
}

func cartToPayload(c *cart.Cart) gin.H {
	lines := c.Lines()
	items := make([]gin.H, 0, len(lines))
	for _, line := range lines {
		items = append(items, gin.H{
			"strain_id":  line.Item.StrainID,
			"name":       line.Item.Name,
			"unit_price": line.Item.Price,
			"unit_grams": cart.UnitGrams,
			"grams":      line.Grams,
			"price":      roundMoney(line.Price()),
		})
	}
	return gin.H{
		"items":       items,
		"total_grams": c.TotalGrams(),
		"total":       roundMoney(c.Total()),
	}
}

func dashboardToPayload(d insights.Dashboard) gin.H {
	series := make([]gin.H, 0, len(d.RatingSeries))
	for _, point := range d.RatingSeries {
		series = append(series, gin.H{
			"date":           point.Date.Format(dateFormat),
			"average_rating": point.AverageRating,
			"entries":        point.Entries,
		})
	}

	effects := make([]gin.H, 0, len(d.CommonEffects))
	for _, effect := range d.CommonEffects {
		effects = append(effects, gin.H{"effect": effect.Effect, "count": effect.Count})
	}

	tried := make([]gin.H, 0, len(d.TriedStrains))
	for _, strain := range d.TriedStrains {
		tried = append(tried, insightsStrainToPayload(strain))
	}

	recs := make([]gin.H, 0, len(d.Recommendations))
	for _, rec := range d.Recommendations {
		recs = append(recs, gin.H{
			"strain":   insightsStrainToPayload(rec.Strain),
			"score":    rec.Score,
			"strategy": string(rec.Strategy),
		})
	}

	return gin.H{
		"window":          string(d.Window),
		"generated_at":    formatTime(d.GeneratedAt),
		"rating_series":   series,
		"common_effects":  effects,
		"tried_strains":   tried,
		"recommendations": recs,
		"total_entries":   d.TotalEntries,
		"rated_entries":   d.RatedEntries,
	}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}
