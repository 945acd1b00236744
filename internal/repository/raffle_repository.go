package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/iliyamo/raffle-ticket-sales/internal/model"
)

// RaffleRepo reads the raffle table.
type RaffleRepo struct {
	db *sql.DB
}

// NewRaffleRepo constructs a RaffleRepo with the given DB handle.
func NewRaffleRepo(db *sql.DB) *RaffleRepo {
	return &RaffleRepo{db: db}
}

const raffleColumns = `r.id, r.raffle_number, r.name, r.price, r.prize, r.detail, r.raffle_date,
	r.raffle_time, r.image_filename, r.winning_numbers, r.sinpe_name_default, r.sinpe_phone_default`

type rowScanner interface {
	Scan(dest ...any) error
}

// ListWithSoldCount returns every raffle, newest draw date first, with the
// number of sold tickets that are not cancelled.
func (r *RaffleRepo) ListWithSoldCount(ctx context.Context) ([]model.Raffle, error) {
	q := `SELECT ` + raffleColumns + `, COUNT(s.id)
		FROM raffle r
		LEFT JOIN selection s ON r.id = s.raffle_id AND s.is_canceled = 0
		GROUP BY r.id
		ORDER BY r.raffle_date DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list raffles: %w", err)
	}
	defer rows.Close()

	var out []model.Raffle
	for rows.Next() {
		var sold int
		rf, err := scanRaffle(rows, &sold)
		if err != nil {
			return nil, fmt.Errorf("scan raffle: %w", err)
		}
		rf.SoldCount = sold
		out = append(out, rf)
	}
	return out, rows.Err()
}

// GetByID returns one raffle or ErrRaffleNotFound.
func (r *RaffleRepo) GetByID(ctx context.Context, id uint64) (*model.Raffle, error) {
	q := `SELECT ` + raffleColumns + ` FROM raffle r WHERE r.id = ?`
	rf, err := scanRaffle(r.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRaffleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get raffle %d: %w", id, err)
	}
	return &rf, nil
}

func scanRaffle(s rowScanner, extra ...any) (model.Raffle, error) {
	var (
		rf                    model.Raffle
		date                  time.Time
		rtime, winners        sql.NullString
		sinpeName, sinpePhone sql.NullString
	)
	dest := []any{
		&rf.ID, &rf.Number, &rf.Name, &rf.Price, &rf.Prize, &rf.Detail, &date,
		&rtime, &rf.ImageFilename, &winners, &sinpeName, &sinpePhone,
	}
	if err := s.Scan(append(dest, extra...)...); err != nil {
		return model.Raffle{}, err
	}
	rf.Date = date
	rf.Time = rtime.String
	rf.SinpeName = sinpeName.String
	rf.SinpePhone = sinpePhone.String
	rf.WinningNumbers = DecodeWinningNumbers(winners.String)
	return rf, nil
}

// DecodeWinningNumbers parses the JSON winning_numbers column.  Numbers may
// be stored as strings or integers; both come back as two-digit strings.
// Malformed content yields an empty list.
func DecodeWinningNumbers(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		log.WithFields(log.Fields{"raw": raw, "error": err}).Debug("winning_numbers is not a JSON list")
		return nil
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		var s string
		if err := json.Unmarshal(it, &s); err == nil {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
			continue
		}
		var n int
		if err := json.Unmarshal(it, &n); err == nil {
			out = append(out, fmt.Sprintf("%02d", n))
		}
	}
	return out
}
