package database

import (
	"context"
	"errors"

	"github.com/gocql/gocql"

	"lumina_back_end/internal/models"
)

// ScyllaCouponStore persiste les coupons dans le keyspace orders.
// La table est partitionnée par user_id : un utilisateur possède au plus
// une ligne coupon (remplacée par la factory, jamais accumulée).
type ScyllaCouponStore struct{}

func NewCouponStore() *ScyllaCouponStore {
	return &ScyllaCouponStore{}
}

func (s *ScyllaCouponStore) row(ctx context.Context, userID string) (*models.Coupon, error) {
	session, err := GetOrdersSession()
	if err != nil {
		return nil, err
	}

	coupon := models.Coupon{UserID: userID}
	query := `SELECT id, code, discount_percentage, expires_at, is_active, created_at
			  FROM coupons WHERE user_id = ?`

	err = session.Query(query, userID).WithContext(ctx).Scan(
		&coupon.ID, &coupon.Code, &coupon.DiscountPercentage,
		&coupon.ExpiresAt, &coupon.IsActive, &coupon.CreatedAt,
	)
	if errors.Is(err, gocql.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &coupon, nil
}

// ActiveByUserAndCode retourne le coupon actif de l'utilisateur si son code
// correspond, nil sinon (absence ≠ erreur).
func (s *ScyllaCouponStore) ActiveByUserAndCode(ctx context.Context, userID, code string) (*models.Coupon, error) {
	coupon, err := s.row(ctx, userID)
	if err != nil || coupon == nil {
		return nil, err
	}
	if !coupon.IsActive || coupon.Code != code {
		return nil, nil
	}
	return coupon, nil
}

// ByUser retourne le coupon actif de l'utilisateur, nil s'il n'en a pas.
func (s *ScyllaCouponStore) ByUser(ctx context.Context, userID string) (*models.Coupon, error) {
	coupon, err := s.row(ctx, userID)
	if err != nil || coupon == nil {
		return nil, err
	}
	if !coupon.IsActive {
		return nil, nil
	}
	return coupon, nil
}

// Deactivate passe is_active à false si le coupon de l'utilisateur porte ce
// code. Un code inconnu est ignoré silencieusement.
func (s *ScyllaCouponStore) Deactivate(ctx context.Context, userID, code string) error {
	coupon, err := s.row(ctx, userID)
	if err != nil {
		return err
	}
	if coupon == nil || coupon.Code != code {
		return nil
	}

	session, err := GetOrdersSession()
	if err != nil {
		return err
	}
	return session.Query(`UPDATE coupons SET is_active = false WHERE user_id = ?`, userID).
		WithContext(ctx).Exec()
}

func (s *ScyllaCouponStore) DeleteByUser(ctx context.Context, userID string) error {
	session, err := GetOrdersSession()
	if err != nil {
		return err
	}
	return session.Query(`DELETE FROM coupons WHERE user_id = ?`, userID).
		WithContext(ctx).Exec()
}

func (s *ScyllaCouponStore) Insert(ctx context.Context, coupon *models.Coupon) error {
	session, err := GetOrdersSession()
	if err != nil {
		return err
	}

	query := `INSERT INTO coupons (user_id, id, code, discount_percentage, expires_at, is_active, created_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?)`
	return session.Query(query,
		coupon.UserID, coupon.ID, coupon.Code, coupon.DiscountPercentage,
		coupon.ExpiresAt, coupon.IsActive, coupon.CreatedAt,
	).WithContext(ctx).Exec()
}
