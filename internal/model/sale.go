package model

import "time"

// Sale is one sold number of a raffle (selection table).  A buyer who
// purchased several numbers owns several sales sharing the same phone.
type Sale struct {
	ID            uint64    // selection.id
	RaffleID      uint64    // selection.raffle_id
	Number        string    // "00".."99"
	CustomerName  string    // selection.customer_name
	CustomerPhone string    // selection.customer_phone
	CreatedAt     time.Time // selection.created_at
	Canceled      bool      // selection.is_canceled (payment confirmed)
	PaymentMethod string    // selection.payment_method
	SinpeName     string    // selection.sinpe_name
	SinpePhone    string    // selection.sinpe_phone
}
