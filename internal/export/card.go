// Package export draws a buyer's result card as a PNG image and hands it
// over together with the WhatsApp link used to share it.
package export

import (
	"strings"
)

// CardData is everything drawn on a card image.
type CardData struct {
	RaffleNumber  string
	RaffleName    string
	DrawDate      string
	Customer      string
	Phone         string
	Numbers       []string
	Total         string
	Canceled      bool
	PaymentMethod string
	ShareText     string
}

// FileName returns rifa_<raffleNumber>_<customer>.png where every character
// of customer outside [a-z0-9] (any case) becomes "_" and the rest is
// lowercased.
func FileName(raffleNumber, customer string) string {
	var b strings.Builder
	for _, r := range customer {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		default:
			b.WriteByte('_')
		}
	}
	return "rifa_" + raffleNumber + "_" + b.String() + ".png"
}
