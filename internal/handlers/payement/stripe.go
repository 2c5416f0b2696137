package payement

import (
	"github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/checkout/session"
	"github.com/stripe/stripe-go/v83/coupon"
)

// StripeAPI isole les appels Stripe du handler pour pouvoir les substituer
// en test (pas de client global dans les handlers).
type StripeAPI interface {
	NewCheckoutSession(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
	GetCheckoutSession(id string) (*stripe.CheckoutSession, error)
	NewCoupon(params *stripe.CouponParams) (*stripe.Coupon, error)
}

// LiveStripe appelle le SDK Stripe (clé globale initialisée dans main).
type LiveStripe struct{}

func (LiveStripe) NewCheckoutSession(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	return session.New(params)
}

func (LiveStripe) GetCheckoutSession(id string) (*stripe.CheckoutSession, error) {
	return session.Get(id, nil)
}

func (LiveStripe) NewCoupon(params *stripe.CouponParams) (*stripe.Coupon, error) {
	return coupon.New(params)
}
