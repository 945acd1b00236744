// Package deeplink builds the outbound messaging links of result cards.
package deeplink

import (
	"fmt"
	"net/url"
	"strings"
)

// DefaultCountryCode is prepended to local phone numbers.
const DefaultCountryCode = "506"

const (
	waBase      = "https://wa.me/"
	localDigits = 8
)

// Linker builds wa.me links for one country.
type Linker struct {
	CountryCode string
}

// NewLinker returns a Linker; an empty code means DefaultCountryCode.
func NewLinker(countryCode string) Linker {
	cc := digits(countryCode)
	if cc == "" {
		cc = DefaultCountryCode
	}
	return Linker{CountryCode: cc}
}

// WhatsApp builds a wa.me link with the default country code.
func WhatsApp(phone, text string) string {
	return NewLinker(DefaultCountryCode).WhatsApp(phone, text)
}

// WhatsApp returns https://wa.me/<cc><phone>?text=<escaped>.  Everything
// but digits is dropped from phone; a local number gets the country code,
// a number already carrying it is kept.  Without a phone the link opens the
// contact picker: https://wa.me/?text=<escaped>.
func (l Linker) WhatsApp(phone, text string) string {
	q := url.QueryEscape(text)
	p := digits(phone)
	if p == "" {
		return waBase + "?text=" + q
	}
	if len(p) <= localDigits || !strings.HasPrefix(p, l.CountryCode) {
		p = l.CountryCode + p
	}
	return waBase + p + "?text=" + q
}

// ShareMessage is the text sent to a buyer along with the card image.
func ShareMessage(customer, raffleNumber, raffleName string, numbers []string, total string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hola %s, estos son tus números de la rifa #%s", strings.TrimSpace(customer), raffleNumber)
	if raffleName != "" {
		fmt.Fprintf(&b, " (%s)", raffleName)
	}
	fmt.Fprintf(&b, ": %s.", strings.Join(numbers, ", "))
	if total != "" {
		fmt.Fprintf(&b, " Total: %s.", total)
	}
	b.WriteString(" ¡Mucha suerte!")
	return b.String()
}

func digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
