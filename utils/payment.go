package utils

import (
	"context"
	"fmt"

	"github.com/velure-shop/velure-backend-go/config"
	"github.com/velure-shop/velure-backend-go/models"
)

// CheckoutItem is one line of a hosted checkout session.
type CheckoutItem struct {
	Title    string  `json:"title"`
	SKU      string  `json:"sku"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// CheckoutSession is the gateway's handle for a pending payment. The client
// is redirected to URL and the webhook reports the outcome against ID.
type CheckoutSession struct {
	ID     string  `json:"id"`
	URL    string  `json:"url"`
	Amount float64 `json:"amount"`
}

// CheckoutClient creates hosted payment sessions. The production
// implementation talks to Stripe; handlers only ever see this interface.
type CheckoutClient interface {
	CreateSession(ctx context.Context, orderNumber string, items []CheckoutItem) (*CheckoutSession, error)
}

// BuildCheckoutItems flattens an order into gateway line items.
func BuildCheckoutItems(order *models.Order) []CheckoutItem {
	items := make([]CheckoutItem, len(order.Items))
	for i, it := range order.Items {
		items[i] = CheckoutItem{
			Title:    it.Title,
			SKU:      it.SKU,
			Price:    it.Price,
			Quantity: it.Quantity,
		}
	}
	return items
}

type localCheckoutClient struct{}

// NewCheckoutClient returns the development client, which fabricates a
// session pointing back at the storefront's confirmation page.
func NewCheckoutClient() CheckoutClient {
	return &localCheckoutClient{}
}

func (c *localCheckoutClient) CreateSession(ctx context.Context, orderNumber string, items []CheckoutItem) (*CheckoutSession, error) {
	total := 0.0
	for _, it := range items {
		total += it.Price * float64(it.Quantity)
	}

	clientURL := config.GetEnv("CLIENT_URL", "http://localhost:5173")
	return &CheckoutSession{
		ID:     "cs_" + orderNumber,
		URL:    fmt.Sprintf("%s/checkout/%s", clientURL, orderNumber),
		Amount: total,
	}, nil
}
