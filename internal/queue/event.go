// Package queue defines the messages exchanged with the raffle backend over
// RabbitMQ and the audit consumer that logs them.
package queue

// SelectionSubmittedQueue is the durable queue purchase requests go to.
const SelectionSubmittedQueue = "selection.submitted"

// SelectionSubmittedEvent is a buyer's purchase request relayed to the
// backend, which owns the decision to sell.  The password never travels in
// clear: PasswordHash is a bcrypt hash the backend stores as the release
// password of the selection.
type SelectionSubmittedEvent struct {
	RaffleID      uint64   `json:"raffle_id"`
	RaffleNumber  string   `json:"raffle_number"`
	CustomerName  string   `json:"customer_name"`
	CustomerPhone string   `json:"customer_phone"`
	PasswordHash  string   `json:"password_hash"`
	Numbers       []string `json:"numbers"`
	Skipped       []string `json:"skipped,omitempty"`
	PaymentMethod string   `json:"payment_method"`
	SinpeName     string   `json:"sinpe_name,omitempty"`
	SinpePhone    string   `json:"sinpe_phone,omitempty"`
	UnitPrice     float64  `json:"unit_price"`
	Total         string   `json:"total"`
	SubmittedAt   string   `json:"submitted_at"`
	RequestID     string   `json:"request_id,omitempty"`
}
