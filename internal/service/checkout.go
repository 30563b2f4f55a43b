package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v81"
	checkoutsession "github.com/stripe/stripe-go/v81/checkout/session"

	"zipdrop/internal/config"
)

var ErrUnknownProduct = errors.New("unknown checkout product")

// Product identifies one of the fixed checkout offerings.
type Product string

const (
	ProductDonation Product = "donation"
	ProductPremium  Product = "premium"
)

// CheckoutService starts hosted payment checkout sessions.
type CheckoutService interface {
	// Create builds a checkout session for the product and returns the
	// provider-hosted URL the browser should be redirected to.
	Create(ctx context.Context, product Product) (string, error)
}

// sessionCreator matches checkout/session.New so tests can stub the provider call.
type sessionCreator func(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)

type productSpec struct {
	name        string
	amountCents int64
	successPath string
	cancelPath  string
}

type checkoutService struct {
	baseURL  string
	products map[Product]productSpec
	create   sessionCreator
}

// NewCheckoutService constructs a CheckoutService backed by Stripe Checkout.
// The provider API key is set process-wide once here.
func NewCheckoutService(cfg config.StripeConfig, baseURL string) CheckoutService {
	stripe.Key = cfg.SecretKey

	return &checkoutService{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		products: map[Product]productSpec{
			ProductDonation: {
				name:        "Donation to the site creator",
				amountCents: cfg.DonationAmountCents,
				successPath: "/success-donation",
				cancelPath:  "/donate",
			},
			ProductPremium: {
				name:        "Premium compressor upgrade",
				amountCents: cfg.PremiumAmountCents,
				successPath: "/success-premium",
				cancelPath:  "/premium",
			},
		},
		create: checkoutsession.New,
	}
}

func (s *checkoutService) Create(ctx context.Context, product Product) (string, error) {
	spec, ok := s.products[product]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownProduct, product)
	}

	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(string(stripe.CurrencyUSD)),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(spec.name),
				},
				UnitAmount: stripe.Int64(spec.amountCents),
			},
			Quantity: stripe.Int64(1),
		}},
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(s.baseURL + spec.successPath),
		CancelURL:  stripe.String(s.baseURL + spec.cancelPath),
	}
	params.Context = ctx

	sess, err := s.create(params)
	if err != nil {
		return "", err
	}
	return sess.URL, nil
}
