package models

// CartItem est un article de panier tel qu'envoyé par le client.
// Name et Image ne servent qu'à l'affichage (page Stripe) et ne sont
// jamais persistés côté commande.
type CartItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Image    string  `json:"image"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

type Cart struct {
	UserID string     `json:"user_id"`
	Items  []CartItem `json:"items"`
}
