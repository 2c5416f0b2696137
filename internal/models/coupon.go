package models

import (
	"time"

	"github.com/gocql/gocql"
)

// Coupon est une réduction en pourcentage liée à un utilisateur.
// Invariant visé : au plus un coupon actif par utilisateur (garanti par
// delete-avant-insert dans la factory, pas par une contrainte d'unicité).
type Coupon struct {
	ID                 gocql.UUID `json:"id"`
	Code               string     `json:"code"`
	DiscountPercentage float64    `json:"discount_percentage"`
	UserID             string     `json:"user_id"`
	ExpiresAt          time.Time  `json:"expires_at"`
	IsActive           bool       `json:"is_active"`
	CreatedAt          time.Time  `json:"created_at"`
}
