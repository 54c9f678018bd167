package router

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/greencart/internal/handler"
	"github.com/greencart/internal/logging"
	"github.com/greencart/internal/metrics"
	"go.uber.org/zap"
)

const (
	sessionName   = "greencart_session"
	sessionMaxAge = 30 * 24 * 60 * 60
)

// Options configures SetupRouter.
type Options struct {
	SessionSecret string
	SecureCookies bool
	Metrics       *metrics.Metrics
	Logger        *zap.Logger
}

// SetupRouter wires middleware and the JSON API routes.
func SetupRouter(api *handler.API, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logging.GinLogger(opts.Logger))
	if opts.Metrics != nil {
		r.Use(opts.Metrics.Middleware())
	}

	secret := opts.SessionSecret
	if secret == "" {
		secret = "greencart-dev-secret"
	}
	store := cookie.NewStore([]byte(secret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   sessionMaxAge,
		HttpOnly: true,
		Secure:   opts.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(sessionName, store))
	r.Use(api.LocaleMiddleware())

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	if opts.Metrics != nil {
		r.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	}

	apiGroup := r.Group("/api")
	{
		authGroup := apiGroup.Group("/auth")
		authGroup.POST("/signup", api.Signup)
		authGroup.POST("/login", api.Login)
		authGroup.POST("/logout", api.Logout)

		apiGroup.GET("/strains", api.ListStrains)
		apiGroup.GET("/strains/:id", api.GetStrain)
		apiGroup.GET("/strains/:id/reviews", api.ListStrainReviews)

		member := apiGroup.Group("")
		member.Use(api.AuthRequired())
		{
			member.GET("/me", api.GetMe)
			member.PUT("/me", api.UpdateMe)

			member.POST("/strains/:id/reviews", api.AddStrainReview)
			member.GET("/strains/:id/notes", api.ListStrainNotes)

			member.GET("/favorites", api.ListFavorites)
			member.POST("/favorites/:strainId/toggle", api.ToggleFavorite)

			member.GET("/cart", api.GetCart)
			member.DELETE("/cart", api.ClearCart)
			member.POST("/cart/items", api.AddCartItem)
			member.PUT("/cart/items/:strainId", api.UpdateCartItem)
			member.DELETE("/cart/items/:strainId", api.RemoveCartItem)

			member.POST("/checkout", api.Checkout)
			member.GET("/orders", api.ListOrders)
			member.GET("/orders/:id", api.GetOrder)

			member.GET("/diary", api.ListDiary)
			member.POST("/diary", api.CreateDiaryEntry)
			member.GET("/diary/options", api.DiaryOptions)
			member.GET("/diary/:id", api.GetDiaryEntry)
			member.PUT("/diary/:id", api.UpdateDiaryEntry)
			member.DELETE("/diary/:id", api.DeleteDiaryEntry)

			member.GET("/payment-methods", api.ListPaymentMethods)
			member.POST("/payment-methods", api.AddPaymentMethod)
			member.PUT("/payment-methods/:id/default", api.SetDefaultPaymentMethod)
			member.DELETE("/payment-methods/:id", api.DeletePaymentMethod)

			member.GET("/dashboard", api.GetDashboard)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})

	return r
}
