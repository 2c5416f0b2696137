package payement

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stripe/stripe-go/v83"

	"lumina_back_end/internal/models"
)

// CouponStore persiste les coupons utilisateur. Une absence de coupon est
// rendue par (nil, nil), jamais par une erreur.
type CouponStore interface {
	ActiveByUserAndCode(ctx context.Context, userID, code string) (*models.Coupon, error)
	ByUser(ctx context.Context, userID string) (*models.Coupon, error)
	Deactivate(ctx context.Context, userID, code string) error
	DeleteByUser(ctx context.Context, userID string) error
	Insert(ctx context.Context, coupon *models.Coupon) error
}

// OrderStore persiste les commandes. BySession rend (nil, nil) si aucune
// commande n'existe pour la session.
type OrderStore interface {
	Insert(ctx context.Context, order *models.Order) error
	BySession(ctx context.Context, sessionID string) (*models.Order, error)
}

// Notifier envoie la confirmation de commande (e-mail + facture PDF).
type Notifier interface {
	OrderConfirmed(order models.Order, email string)
}

// CacheClient est le sous-ensemble de redis.Client utilisé par les handlers
// (cache coupon en lecture + nettoyage panier), substituable en test.
type CacheClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// Handler regroupe les dépendances des endpoints checkout.
type Handler struct {
	Coupons CouponStore
	Orders  OrderStore
	Stripe  StripeAPI
	Cache   CacheClient // optionnel (cache coupon + nettoyage panier)
	Notify  Notifier    // optionnel (confirmation commande)
}

func NewHandler(coupons CouponStore, orders OrderStore, api StripeAPI, cache CacheClient) *Handler {
	return &Handler{
		Coupons: coupons,
		Orders:  orders,
		Stripe:  api,
		Cache:   cache,
		Notify:  MailNotifier{},
	}
}

// stripeFailure mappe une erreur Stripe en 500 en conservant type/code/param
// pour le diagnostic, comme le fait le SDK côté dashboard.
func stripeFailure(c *gin.Context, message string, err error) {
	body := gin.H{"message": message, "error": err.Error()}

	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		body["type"] = stripeErr.Type
		body["code"] = stripeErr.Code
		body["param"] = stripeErr.Param
	}

	c.JSON(http.StatusInternalServerError, body)
}
