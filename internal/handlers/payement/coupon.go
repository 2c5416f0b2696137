package payement

import (
	"context"
	"log"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v83"

	"lumina_back_end/internal/models"
)

const (
	// Seuil (en centimes) au-delà duquel un coupon cadeau est offert
	giftThresholdCents = 20000

	giftDiscountPercentage = 10
	giftValidityDays       = 30
)

const giftCodeAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// createStripeCoupon enregistre côté Stripe une réduction en pourcentage à
// usage unique et retourne son identifiant. Rien n'est persisté localement.
func (h *Handler) createStripeCoupon(discountPercentage float64) (string, error) {
	stripeCoupon, err := h.Stripe.NewCoupon(&stripe.CouponParams{
		PercentOff: stripe.Float64(discountPercentage),
		Duration:   stripe.String(string(stripe.CouponDurationOnce)),
	})
	if err != nil {
		return "", err
	}
	return stripeCoupon.ID, nil
}

// issueRewardCoupon remplace le coupon de l'utilisateur par un coupon cadeau
// GIFT à 10%, valable 30 jours. Le delete-avant-insert maintient l'invariant
// "au plus un coupon par utilisateur" au sein de la requête.
func (h *Handler) issueRewardCoupon(ctx context.Context, userID string) (*models.Coupon, error) {
	if err := h.Coupons.DeleteByUser(ctx, userID); err != nil {
		return nil, err
	}

	coupon := &models.Coupon{
		ID:                 gocql.UUID(uuid.New()),
		Code:               "GIFT" + randomGiftCode(6),
		DiscountPercentage: giftDiscountPercentage,
		UserID:             userID,
		ExpiresAt:          time.Now().Add(giftValidityDays * 24 * time.Hour),
		IsActive:           true,
		CreatedAt:          time.Now(),
	}

	if err := h.Coupons.Insert(ctx, coupon); err != nil {
		return nil, err
	}
	h.invalidateCouponCache(ctx, userID)

	log.Printf("🎁 Coupon cadeau %s émis pour %s", coupon.Code, userID)
	return coupon, nil
}

func randomGiftCode(length int) string {
	code := make([]byte, length)
	for i := range code {
		code[i] = giftCodeAlphabet[rand.IntN(len(giftCodeAlphabet))]
	}
	return string(code)
}

// GetMyCoupon retourne le coupon actif de l'utilisateur connecté.
func (h *Handler) GetMyCoupon(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	coupon, err := h.cachedActiveCoupon(c.Request.Context(), userID)
	if err != nil {
		log.Println("❌ Erreur lecture coupon:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur serveur", "error": err.Error()})
		return
	}
	if coupon == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Aucun coupon actif"})
		return
	}

	c.JSON(http.StatusOK, coupon)
}

// ValidateCoupon vérifie qu'un code appartient bien à l'utilisateur et qu'il
// est encore valable. Un coupon expiré est désactivé au passage.
func (h *Handler) ValidateCoupon(c *gin.Context) {
	var req struct {
		Code string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Code requis"})
		return
	}

	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	ctx := c.Request.Context()
	coupon, err := h.Coupons.ActiveByUserAndCode(ctx, userID, req.Code)
	if err != nil {
		log.Println("❌ Erreur lecture coupon:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur serveur", "error": err.Error()})
		return
	}
	if coupon == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Coupon invalide"})
		return
	}

	if time.Now().After(coupon.ExpiresAt) {
		if err := h.Coupons.Deactivate(ctx, userID, coupon.Code); err != nil {
			log.Println("❌ Erreur désactivation coupon expiré:", err)
		}
		h.invalidateCouponCache(ctx, userID)
		c.JSON(http.StatusNotFound, gin.H{"message": "Coupon expiré"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":            "Coupon valide",
		"code":               coupon.Code,
		"discountPercentage": coupon.DiscountPercentage,
	})
}
