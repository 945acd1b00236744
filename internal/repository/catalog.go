package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/raffle-ticket-sales/internal/model"
)

// Catalog bundles the read-only repositories behind one value so handlers
// can depend on a single interface.
type Catalog struct {
	Raffles *RaffleRepo
	Sales   *SaleRepo
}

// NewCatalog builds a Catalog on one DB handle.
func NewCatalog(db *sql.DB) *Catalog {
	return &Catalog{Raffles: NewRaffleRepo(db), Sales: NewSaleRepo(db)}
}

func (c *Catalog) ListRaffles(ctx context.Context) ([]model.Raffle, error) {
	return c.Raffles.ListWithSoldCount(ctx)
}

func (c *Catalog) GetRaffle(ctx context.Context, id uint64) (*model.Raffle, error) {
	return c.Raffles.GetByID(ctx, id)
}

func (c *Catalog) ListSales(ctx context.Context, raffleID uint64) ([]model.Sale, error) {
	return c.Sales.ListByRaffle(ctx, raffleID)
}
