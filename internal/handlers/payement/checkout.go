package payement

import (
	"log"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v83"

	"lumina_back_end/internal/config"
	"lumina_back_end/internal/models"
)

// CreateCheckoutSession crée une session de paiement hébergée Stripe à partir
// du panier envoyé par le client, applique le coupon éventuel et déclenche
// l'émission du coupon cadeau au-delà du seuil.
func (h *Handler) CreateCheckoutSession(c *gin.Context) {
	if _, err := config.StripeKey(); err != nil {
		log.Println("❌ Stripe non configuré:", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Erreur de configuration du paiement",
			"error":   err.Error(),
		})
		return
	}

	clientURL, err := config.ClientURL()
	if err != nil {
		log.Println("❌ URL client non configurée:", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Erreur de configuration",
			"error":   err.Error(),
		})
		return
	}

	var req struct {
		Products   []models.CartItem `json:"products"`
		CouponCode string            `json:"couponCode"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Products) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Panier vide ou invalide"})
		return
	}

	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	ctx := c.Request.Context()

	// Montant total en centimes + line items Stripe (prix unitaire par
	// article, jamais le total remisé)
	var totalAmount int64
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(req.Products))

	for _, product := range req.Products {
		cents := amountInCents(product.Price)
		quantity := lineQuantity(product.Quantity)
		totalAmount += cents * quantity

		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String("usd"),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name:   stripe.String(product.Name),
					Images: stripe.StringSlice([]string{product.Image}),
				},
				UnitAmount: stripe.Int64(cents),
			},
			Quantity: stripe.Int64(quantity),
		})
	}

	// Coupon : appliqué une seule fois sur le total cumulé. Un code inactif
	// ou appartenant à un autre utilisateur est ignoré sans erreur.
	var applied *models.Coupon
	if req.CouponCode != "" {
		applied, err = h.cachedActiveCoupon(ctx, userID)
		if err != nil {
			log.Println("❌ Erreur lecture coupon:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur serveur", "error": err.Error()})
			return
		}
		if applied != nil && applied.Code != req.CouponCode {
			applied = nil
		}
		if applied != nil {
			totalAmount -= int64(math.Round(float64(totalAmount) * applied.DiscountPercentage / 100))
			log.Printf("🎟️ Coupon %s appliqué (-%.0f%%) → %d centimes", applied.Code, applied.DiscountPercentage, totalAmount)
		}
	}

	var discounts []*stripe.CheckoutSessionDiscountParams
	if applied != nil {
		stripeCouponID, err := h.createStripeCoupon(applied.DiscountPercentage)
		if err != nil {
			log.Println("❌ Erreur création coupon Stripe:", err)
			stripeFailure(c, "Erreur lors du traitement du paiement", err)
			return
		}
		discounts = append(discounts, &stripe.CheckoutSessionDiscountParams{
			Coupon: stripe.String(stripeCouponID),
		})
	}

	cartMetadata, err := encodeCartMetadata(req.Products)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur sérialisation panier", "error": err.Error()})
		return
	}

	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems:          lineItems,
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:         stripe.String(clientURL + "/purchase-success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:          stripe.String(clientURL + "/purchase-cancel"),
		Discounts:          discounts,
		Metadata: map[string]string{
			"userId":     userID,
			"couponCode": req.CouponCode,
			"products":   cartMetadata,
		},
	}

	session, err := h.Stripe.NewCheckoutSession(params)
	if err != nil {
		log.Println("❌ Erreur création session Stripe:", err)
		stripeFailure(c, "Erreur lors du traitement du paiement", err)
		return
	}

	log.Printf("💳 Session checkout créée: %s (%d centimes) pour %s", session.ID, totalAmount, userID)

	// Coupon cadeau au-delà de 200$ — émis avant la réponse pour que son
	// échec soit observable
	if totalAmount >= giftThresholdCents {
		if _, err := h.issueRewardCoupon(ctx, userID); err != nil {
			log.Println("❌ Erreur émission coupon cadeau:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur serveur", "error": err.Error()})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"id":          session.ID,
		"totalAmount": float64(totalAmount) / 100,
	})
}
