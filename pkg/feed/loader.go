package feed

import (
	"context"

	"github.com/rs/zerolog"

	loja "github.com/lucasSanto5s/LojaOnline"
)

// Loader runs the one-shot bulk loads against a store, guarding against
// repeat fetches and stale writes.
type Loader struct {
	Store     *loja.Store
	Products  *ProductFeed
	Directory *DirectoryFeed
	Logger    zerolog.Logger
}

// LoadProducts fetches the catalog and dispatches the bulk load, unless
// the catalog is already loaded. A fetch that outlives its context is
// discarded rather than written.
func (l *Loader) LoadProducts(ctx context.Context) error {
	if l.Store.ProductsLoaded() {
		return nil
	}

	products, err := l.Products.Fetch(ctx)
	if err != nil {
		l.Logger.Warn().Err(err).Msg("product feed fetch failed")
		return err
	}
	if err := ctx.Err(); err != nil {
		return wrapErr("products", err)
	}
	if l.Store.ProductsLoaded() {
		l.Logger.Debug().Msg("catalog loaded while fetching, discarding feed result")
		return nil
	}

	if err := l.Store.Dispatch(ctx, loja.LoadProducts{Products: products}); err != nil {
		return wrapErr("products", err)
	}
	l.Logger.Info().Int("count", len(products)).Msg("catalog loaded from feed")
	return nil
}

// LoadClients mirrors LoadProducts for the contact directory.
func (l *Loader) LoadClients(ctx context.Context) error {
	if l.Store.ClientsLoaded() {
		return nil
	}

	clients, err := l.Directory.Fetch(ctx)
	if err != nil {
		l.Logger.Warn().Err(err).Msg("directory feed fetch failed")
		return err
	}
	if err := ctx.Err(); err != nil {
		return wrapErr("directory", err)
	}
	if l.Store.ClientsLoaded() {
		l.Logger.Debug().Msg("directory loaded while fetching, discarding feed result")
		return nil
	}

	if err := l.Store.Dispatch(ctx, loja.LoadClients{Clients: clients}); err != nil {
		return wrapErr("directory", err)
	}
	l.Logger.Info().Int("count", len(clients)).Msg("directory loaded from feed")
	return nil
}
