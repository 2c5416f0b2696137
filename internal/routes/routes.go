package routes

import (
	"lumina_back_end/internal/handlers/payement"
	"lumina_back_end/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, h *payement.Handler) {
	api := r.Group("/api")

	checkout := api.Group("/checkout", middleware.AuthRequired())
	checkout.POST("/create-session", h.CreateCheckoutSession)
	checkout.POST("/success", h.CheckoutSuccess)

	coupons := api.Group("/coupons", middleware.AuthRequired())
	coupons.GET("", h.GetMyCoupon)
	coupons.POST("/validate", h.ValidateCoupon)
}
