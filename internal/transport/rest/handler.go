package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"lexmarket/config"
	"lexmarket/internal/service"
)

type Handler struct {
	services *service.Services
	logger   *zap.Logger
	config   *config.Config
}

func NewHandler(services *service.Services, logger *zap.Logger, config *config.Config) *Handler {
	return &Handler{
		services: services,
		logger:   logger,
		config:   config,
	}
}

func (h *Handler) InitRoutes(router *gin.Engine) {
	router.Use(h.loggerMiddleware())
	router.Use(h.corsMiddleware())

	// Wrong verbs on known paths answer 405, not 404.
	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		errorResponse(c, http.StatusMethodNotAllowed, "method not allowed")
	})

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", h.register)
			auth.POST("/login", h.login)
			auth.POST("/refresh", h.refreshTokens)
			auth.POST("/logout", h.logout)
		}

		users := api.Group("/users")
		users.Use(h.authMiddleware())
		{
			users.GET("/me", h.getCurrentUser)
			users.PUT("/me", h.updateCurrentUser)
			users.PUT("/me/password", h.updatePassword)
		}

		lawyers := api.Group("/lawyers")
		{
			lawyers.GET("", h.searchLawyers)
			lawyers.GET("/facets", h.getDirectoryFacets)
			lawyers.GET("/:id", h.getLawyerByID)
			lawyers.GET("/:id/reviews", h.getLawyerReviews)

			auth := lawyers.Group("", h.authMiddleware())
			{
				auth.POST("", h.lawyerMiddleware(), h.createLawyer)
				auth.PUT("/:id", h.updateLawyer)
				auth.PUT("/:id/verify", h.adminMiddleware(), h.setLawyerVerified)
				auth.POST("/:id/avatar", h.uploadLawyerAvatar)
				auth.DELETE("/:id/avatar", h.deleteLawyerAvatar)
			}
		}

		bookings := api.Group("/bookings")
		bookings.Use(h.authMiddleware())
		{
			bookings.POST("", h.createBooking)
			bookings.GET("", h.getBookings)
			bookings.GET("/free-slots", h.getFreeSlots)
			bookings.GET("/:id", h.getBookingByID)
			bookings.POST("/:id/confirm", h.confirmBooking)
			bookings.POST("/:id/cancel", h.cancelBooking)
			bookings.POST("/:id/complete", h.completeBooking)
		}

		reviews := api.Group("/reviews")
		reviews.Use(h.authMiddleware())
		{
			reviews.POST("", h.createReview)
		}
	}
}
