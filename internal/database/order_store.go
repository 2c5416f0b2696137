package database

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/gocql/gocql"

	"lumina_back_end/internal/models"
)

// ScyllaOrderStore persiste les commandes dans le keyspace orders.
// Les articles sont stockés en JSON dans la ligne (lecture toujours par
// commande entière, jamais par article).
type ScyllaOrderStore struct{}

func NewOrderStore() *ScyllaOrderStore {
	return &ScyllaOrderStore{}
}

func (s *ScyllaOrderStore) Insert(ctx context.Context, order *models.Order) error {
	session, err := GetOrdersSession()
	if err != nil {
		return err
	}

	itemsJSON, err := json.Marshal(order.Items)
	if err != nil {
		return err
	}

	query := `INSERT INTO orders (id, user_id, items_json, total_amount, stripe_session_id, created_at)
			  VALUES (?, ?, ?, ?, ?, ?)`
	return session.Query(query,
		order.ID, order.UserID, string(itemsJSON), order.TotalAmount,
		order.StripeSessionID, order.CreatedAt,
	).WithContext(ctx).Exec()
}

// BySession retourne la commande liée à une session Stripe, nil si aucune.
// Sert de garde d'idempotence au finalizer : un callback rejoué ne doit pas
// créer une seconde commande. Requiert l'index orders_by_stripe_session
// (voir scripts/scylladb_init.cql).
func (s *ScyllaOrderStore) BySession(ctx context.Context, sessionID string) (*models.Order, error) {
	session, err := GetOrdersSession()
	if err != nil {
		return nil, err
	}

	order := models.Order{StripeSessionID: sessionID}
	var itemsJSON string
	query := `SELECT id, user_id, items_json, total_amount, created_at
			  FROM orders WHERE stripe_session_id = ? LIMIT 1`

	err = session.Query(query, sessionID).WithContext(ctx).Scan(
		&order.ID, &order.UserID, &itemsJSON, &order.TotalAmount, &order.CreatedAt,
	)
	if errors.Is(err, gocql.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(itemsJSON), &order.Items); err != nil {
		return nil, err
	}
	return &order, nil
}
