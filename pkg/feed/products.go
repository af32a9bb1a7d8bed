package feed

import (
	"context"
	"net/http"
	"time"

	loja "github.com/lucasSanto5s/LojaOnline"
)

// DefaultProductsURL is the public catalog source.
const DefaultProductsURL = "https://fakestoreapi.com/products"

// ProductFeed fetches the product catalog. The wire shape matches
// loja.Product directly, so no mapping layer is needed.
type ProductFeed struct {
	URL     string
	Client  *http.Client
	Timeout time.Duration
}

// NewProductFeed builds a feed against url, or the public default when
// url is empty.
func NewProductFeed(url string) *ProductFeed {
	if url == "" {
		url = DefaultProductsURL
	}
	return &ProductFeed{URL: url, Timeout: DefaultTimeout}
}

// Fetch returns the full catalog.
func (f *ProductFeed) Fetch(ctx context.Context) ([]loja.Product, error) {
	var products []loja.Product
	if err := getJSON(ctx, f.Client, f.Timeout, f.URL, &products); err != nil {
		return nil, wrapErr("products", err)
	}
	return products, nil
}

// Top returns the first n catalog entries in feed order.
func (f *ProductFeed) Top(ctx context.Context, n int) ([]loja.Product, error) {
	products, err := f.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	if n > 0 && len(products) > n {
		products = products[:n]
	}
	return products, nil
}
