package payement

import (
	"log"

	"lumina_back_end/internal/models"
	"lumina_back_end/internal/utils"
)

// MailNotifier envoie l'e-mail de confirmation avec la facture PDF en pièce
// jointe. Toujours appelé hors du chemin de réponse : un échec est loggé,
// jamais remonté au client.
type MailNotifier struct{}

func (MailNotifier) OrderConfirmed(order models.Order, email string) {
	html := utils.GenerateOrderConfirmationHTML(order)

	pdf, err := utils.GenerateInvoicePDF(order)
	if err != nil {
		log.Println("❌ Erreur génération PDF :", err)
		pdf = nil
	}

	if err := utils.SendConfirmationEmail(email, "Confirmation de votre commande Lumina", html, pdf); err != nil {
		log.Println("❌ Erreur envoi e-mail confirmation :", err)
	} else {
		log.Println("📧 E-mail de confirmation envoyé à", email)
	}
}
