package payement

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v83"

	"lumina_back_end/internal/models"
)

// CheckoutSuccess finalise une session payée : désactive le coupon utilisé,
// crée la commande depuis les metadata de la session et déclenche la
// confirmation. Rejouer le même sessionId ne crée pas de seconde commande.
func (h *Handler) CheckoutSuccess(c *gin.Context) {
	var req struct {
		SessionID string `json:"sessionId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sessionId requis"})
		return
	}

	session, err := h.Stripe.GetCheckoutSession(req.SessionID)
	if err != nil {
		log.Println("❌ Erreur récupération session Stripe:", err)
		stripeFailure(c, "Erreur lors de la finalisation du paiement", err)
		return
	}

	if session.PaymentStatus != stripe.CheckoutSessionPaymentStatusPaid {
		c.JSON(http.StatusBadRequest, gin.H{
			"success":        false,
			"message":        "Paiement non finalisé",
			"payment_status": string(session.PaymentStatus),
		})
		return
	}

	ctx := c.Request.Context()

	// Garde d'idempotence : un callback rejoué renvoie la commande existante
	existing, err := h.Orders.BySession(ctx, req.SessionID)
	if err != nil {
		log.Println("❌ Erreur lecture commande:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur serveur", "error": err.Error()})
		return
	}
	if existing != nil {
		log.Printf("🔁 Commande déjà enregistrée pour la session %s", req.SessionID)
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Commande déjà enregistrée",
			"orderId": existing.ID.String(),
		})
		return
	}

	userID := session.Metadata["userId"]

	if couponCode := session.Metadata["couponCode"]; couponCode != "" {
		if err := h.Coupons.Deactivate(ctx, userID, couponCode); err != nil {
			log.Println("❌ Erreur désactivation coupon:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur serveur", "error": err.Error()})
			return
		}
		h.invalidateCouponCache(ctx, userID)
	}

	products, err := decodeCartMetadata(session.Metadata["products"])
	if err != nil {
		log.Println("❌ Metadonnées produits illisibles:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Métadonnées de session corrompues", "error": err.Error()})
		return
	}

	order := models.Order{
		ID:              gocql.UUID(uuid.New()),
		UserID:          userID,
		TotalAmount:     float64(session.AmountTotal) / 100, // montant Stripe faisant foi
		StripeSessionID: req.SessionID,
		CreatedAt:       time.Now(),
	}
	for _, product := range products {
		order.Items = append(order.Items, models.OrderItem{
			ProductID: product.ID,
			Quantity:  product.Quantity,
			Price:     product.Price,
		})
	}

	if err := h.Orders.Insert(ctx, &order); err != nil {
		// Paiement encaissé mais commande absente : aucune compensation
		// automatique, à réconcilier manuellement
		log.Printf("🚨 Paiement encaissé mais commande non persistée (session %s): %v", req.SessionID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur enregistrement commande", "error": err.Error()})
		return
	}

	log.Printf("✅ Commande %s créée (%.2f$) pour %s", order.ID.String(), order.TotalAmount, userID)

	// Nettoyage + confirmation, sans impact sur la réponse
	if h.Cache != nil {
		if err := h.Cache.Del(ctx, "cart:"+userID).Err(); err != nil {
			log.Printf("⚠️ Suppression du panier Redis impossible pour %s: %v", userID, err)
		} else {
			log.Printf("🧹 Panier supprimé de Redis pour %s", userID)
		}
	}
	if email := c.GetString("email"); email != "" && h.Notify != nil {
		go h.Notify.OrderConfirmed(order, email)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Paiement réussi, commande créée et coupon désactivé le cas échéant.",
		"orderId": order.ID.String(),
	})
}
