package payement

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"lumina_back_end/internal/models"
)

// TTL du cache coupon, aligné sur les autres caches Redis de lecture
const couponCacheTTL = 5 * time.Minute

func couponCacheKey(userID string) string {
	return "coupon:" + userID
}

// cachedActiveCoupon récupère le coupon actif de l'utilisateur depuis Redis,
// avec repli sur le store. Toute erreur cache est traitée comme un miss : la
// base reste la source de vérité.
func (h *Handler) cachedActiveCoupon(ctx context.Context, userID string) (*models.Coupon, error) {
	if h.Cache != nil {
		if data, err := h.Cache.Get(ctx, couponCacheKey(userID)).Result(); err == nil {
			var coupon models.Coupon
			if json.Unmarshal([]byte(data), &coupon) == nil {
				return &coupon, nil
			}
		}
	}

	coupon, err := h.Coupons.ByUser(ctx, userID)
	if err != nil || coupon == nil {
		return coupon, err
	}

	if h.Cache != nil {
		if data, err := json.Marshal(coupon); err == nil {
			if err := h.Cache.Set(ctx, couponCacheKey(userID), data, couponCacheTTL).Err(); err != nil {
				log.Printf("⚠️ Écriture cache coupon impossible pour %s: %v", userID, err)
			}
		}
	}

	return coupon, nil
}

// invalidateCouponCache purge l'entrée cache après toute écriture coupon
// (désactivation, remplacement par la factory, expiration constatée).
func (h *Handler) invalidateCouponCache(ctx context.Context, userID string) {
	if h.Cache == nil {
		return
	}
	if err := h.Cache.Del(ctx, couponCacheKey(userID)).Err(); err != nil {
		log.Printf("⚠️ Invalidation cache coupon impossible pour %s: %v", userID, err)
	}
}
