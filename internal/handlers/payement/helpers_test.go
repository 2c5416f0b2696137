package payement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lumina_back_end/internal/models"
)

func TestAmountInCents(t *testing.T) {
	tests := []struct {
		price float64
		want  int64
	}{
		{0, 0},
		{19.99, 1999},
		{249.90, 24990},
		{0.555, 56}, // arrondi au centime le plus proche
		{0.004, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, amountInCents(tt.price), "prix %v", tt.price)
	}
}

func TestLineQuantity(t *testing.T) {
	assert.Equal(t, int64(1), lineQuantity(0), "quantité nulle traitée comme 1")
	assert.Equal(t, int64(1), lineQuantity(-2))
	assert.Equal(t, int64(3), lineQuantity(3))
}

func TestCartMetadataRoundTrip(t *testing.T) {
	items := []models.CartItem{
		{ID: "prod-1", Name: "Lampe", Image: "https://cdn/lampe.png", Price: 49.90, Quantity: 2},
		{ID: "prod-2", Name: "Câble", Image: "https://cdn/cable.png", Price: 9.99, Quantity: 1},
	}

	raw, err := encodeCartMetadata(items)
	require.NoError(t, err)

	// name/image ne doivent pas survivre à l'encodage
	assert.NotContains(t, raw, "Lampe")
	assert.NotContains(t, raw, "cdn")

	products, err := decodeCartMetadata(raw)
	require.NoError(t, err)
	require.Len(t, products, 2)

	for i, p := range products {
		assert.Equal(t, items[i].ID, p.ID)
		assert.Equal(t, items[i].Quantity, p.Quantity)
		assert.Equal(t, items[i].Price, p.Price)
	}
}

func TestDecodeCartMetadataInvalid(t *testing.T) {
	_, err := decodeCartMetadata("pas du json")
	assert.Error(t, err)
}
