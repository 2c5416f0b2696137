package config

import (
	"errors"
	"log"
	"os"

	"github.com/joho/godotenv"
)

func Load() {
	err := godotenv.Load(".env")
	if err != nil {
		log.Println("⚠️  Aucun fichier .env trouvé — on continue avec les variables d'environnement du système")
	} else {
		log.Println("✅ Fichier .env chargé avec succès")
	}
}

// StripeKey retourne la clé secrète Stripe. Son absence est une erreur de
// configuration remontée en 500 par le handler, pas un crash du process.
func StripeKey() (string, error) {
	key := os.Getenv("STRIPE_SECRET_KEY")
	if key == "" {
		return "", errors.New("STRIPE_SECRET_KEY non configurée")
	}
	return key, nil
}

// ClientURL retourne l'URL de base du front (redirections succès/annulation).
func ClientURL() (string, error) {
	u := os.Getenv("CLIENT_URL")
	if u == "" {
		return "", errors.New("CLIENT_URL non configurée")
	}
	return u, nil
}
