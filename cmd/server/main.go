package main

import (
	"log"
	"os"

	"lumina_back_end/internal/config"
	"lumina_back_end/internal/database"
	"lumina_back_end/internal/handlers/payement"
	"lumina_back_end/internal/routes"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v83"
)

func main() {
	config.Load()

	// Clé absente = pas de crash : les handlers répondent 500 configuration
	if key, err := config.StripeKey(); err != nil {
		log.Println("⚠️ Stripe non configuré :", err)
	} else {
		stripe.Key = key
		log.Println("✅ Stripe initialisé")
	}

	database.ConnectDatabases()

	handler := payement.NewHandler(
		database.NewCouponStore(),
		database.NewOrderStore(),
		payement.LiveStripe{},
		database.Redis,
	)

	r := gin.Default()
	r.Use(corsConfig())
	routes.RegisterRoutes(r, handler)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Println("🚀 Serveur Lumina lancé sur le port", port)
	r.Run(":" + port)
}

func corsConfig() gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	if clientURL, err := config.ClientURL(); err == nil {
		cfg.AllowOrigins = []string{clientURL}
	} else {
		cfg.AllowOrigins = []string{"http://localhost:3000"}
	}
	cfg.AllowCredentials = true
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization")
	return cors.New(cfg)
}
