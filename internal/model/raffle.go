package model

import "time"

// Raffle is a raffle as stored by the backend in the raffle table.  The
// page server only reads it.
//
// Fields:
//
//	Number         – public raffle number (raffle.raffle_number).
//	Price          – price of one ticket number.
//	Date, Time     – draw date and optional free-text time.
//	WinningNumbers – decoded from the JSON column; empty when no winner was
//	                 announced or the column is malformed.
//	SinpeName/SinpePhone – default payment account shown to buyers.
//	SoldCount      – non-cancelled numbers sold, filled by list queries.
type Raffle struct {
	ID             uint64
	Number         string
	Name           string
	Price          float64
	Prize          string
	Detail         string
	Date           time.Time
	Time           string
	ImageFilename  string
	WinningNumbers []string
	SinpeName      string
	SinpePhone     string
	SoldCount      int
}

// HasWinners reports whether at least one winning number was announced.
func (r Raffle) HasWinners() bool { return len(r.WinningNumbers) > 0 }
