package payement

import (
	"encoding/json"
	"math"

	"lumina_back_end/internal/models"
)

// checkoutProduct est la forme embarquée dans les metadata Stripe (champs
// string uniquement côté Stripe, d'où le JSON). Name et Image sont
// volontairement absents : purement décoratifs, la commande n'en a pas besoin.
type checkoutProduct struct {
	ID       string  `json:"id"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// amountInCents convertit un prix décimal en centimes, arrondi comme Stripe
// l'attend.
func amountInCents(price float64) int64 {
	return int64(math.Round(price * 100))
}

// lineQuantity traite une quantité absente ou nulle comme 1.
func lineQuantity(quantity int) int64 {
	if quantity <= 0 {
		return 1
	}
	return int64(quantity)
}

// encodeCartMetadata sérialise le panier pour les metadata de session.
// Contrat : decodeCartMetadata(encodeCartMetadata(items)) restitue les
// triplets {id, quantity, price} à l'identique.
func encodeCartMetadata(items []models.CartItem) (string, error) {
	products := make([]checkoutProduct, 0, len(items))
	for _, item := range items {
		products = append(products, checkoutProduct{
			ID:       item.ID,
			Quantity: item.Quantity,
			Price:    item.Price,
		})
	}

	raw, err := json.Marshal(products)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// decodeCartMetadata reconstruit les articles depuis les metadata d'une
// session payée.
func decodeCartMetadata(raw string) ([]checkoutProduct, error) {
	var products []checkoutProduct
	if err := json.Unmarshal([]byte(raw), &products); err != nil {
		return nil, err
	}
	return products, nil
}
