package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/iliyamo/raffle-ticket-sales/internal/model"
)

// SaleRepo reads the selection table: one row per sold number.
type SaleRepo struct {
	db *sql.DB
}

// NewSaleRepo constructs a SaleRepo with the given DB handle.
func NewSaleRepo(db *sql.DB) *SaleRepo {
	return &SaleRepo{db: db}
}

// ListByRaffle returns every sold number of a raffle, cancelled ones
// included, in insertion order.
func (r *SaleRepo) ListByRaffle(ctx context.Context, raffleID uint64) ([]model.Sale, error) {
	const q = `SELECT id, raffle_id, number, customer_name, customer_phone, created_at,
		is_canceled, payment_method, sinpe_name, sinpe_phone
		FROM selection WHERE raffle_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, raffleID)
	if err != nil {
		return nil, fmt.Errorf("list sales of raffle %d: %w", raffleID, err)
	}
	defer rows.Close()

	var out []model.Sale
	for rows.Next() {
		var (
			s                             model.Sale
			method, sinpeName, sinpePhone sql.NullString
		)
		if err := rows.Scan(&s.ID, &s.RaffleID, &s.Number, &s.CustomerName, &s.CustomerPhone,
			&s.CreatedAt, &s.Canceled, &method, &sinpeName, &sinpePhone); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		s.PaymentMethod = method.String
		s.SinpeName = sinpeName.String
		s.SinpePhone = sinpePhone.String
		out = append(out, s)
	}
	return out, rows.Err()
}
