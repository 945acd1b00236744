package view

import (
	"strconv"
	"strings"
	"time"

	"github.com/iliyamo/raffle-ticket-sales/internal/deeplink"
	"github.com/iliyamo/raffle-ticket-sales/internal/export"
	"github.com/iliyamo/raffle-ticket-sales/internal/model"
	"github.com/iliyamo/raffle-ticket-sales/internal/selection"
)

// Group gathers the sales of one buyer, keyed by phone.
type Group struct {
	Name          string
	Phone         string
	CreatedAt     time.Time
	Numbers       []string
	IDs           []uint64
	Canceled      bool
	PaymentMethod string
	SinpeName     string
	SinpePhone    string
}

// GroupSales groups sales by customer phone in first-seen order.  The
// cancelled flag of a group is the one of its last sale.
func GroupSales(sales []model.Sale) []Group {
	var groups []Group
	pos := make(map[string]int)
	for _, s := range sales {
		i, ok := pos[s.CustomerPhone]
		if !ok {
			i = len(groups)
			pos[s.CustomerPhone] = i
			groups = append(groups, Group{
				Name:          s.CustomerName,
				Phone:         s.CustomerPhone,
				CreatedAt:     s.CreatedAt,
				PaymentMethod: s.PaymentMethod,
				SinpeName:     s.SinpeName,
				SinpePhone:    s.SinpePhone,
			})
		}
		g := &groups[i]
		g.Numbers = append(g.Numbers, s.Number)
		g.IDs = append(g.IDs, s.ID)
		g.Canceled = s.Canceled
	}
	for i := range groups {
		selection.SortNumbers(groups[i].Numbers)
	}
	return groups
}

// Card is the result card of one buyer.  The Data* fields are the
// lowercased values the filter matches.
type Card struct {
	Group
	ID          string
	NumbersText string
	IDsText     string
	Total       string

	DataName    string
	DataPhone   string
	DataNumbers string
	Visible     bool

	ShareText     string
	ShareURL      string
	ActionsHidden bool

	Delete DeleteModal
	Cancel CancelModal
	Edit   EditModal

	raffle model.Raffle
}

// CardOptions carries what every card of a page shares.
type CardOptions struct {
	Raffle  model.Raffle
	Price   float64
	Money   selection.MoneyFormatter
	Linker  deeplink.Linker
	Actions Actions
}

// BuildCards turns groups into result cards, all visible.
func BuildCards(groups []Group, opt CardOptions) []Card {
	cards := make([]Card, 0, len(groups))
	for i, g := range groups {
		ids := make([]string, len(g.IDs))
		for j, id := range g.IDs {
			ids[j] = strconv.FormatUint(id, 10)
		}
		numbersText := strings.Join(g.Numbers, ", ")
		idsText := strings.Join(ids, ",")
		total := opt.Money.Format(float64(len(g.Numbers)) * opt.Price)
		share := deeplink.ShareMessage(g.Name, opt.Raffle.Number, opt.Raffle.Name, g.Numbers, total)

		cards = append(cards, Card{
			Group:       g,
			ID:          cardID(g.Phone, i),
			NumbersText: numbersText,
			IDsText:     idsText,
			Total:       total,
			DataName:    strings.ToLower(g.Name),
			DataPhone:   strings.ToLower(g.Phone),
			DataNumbers: strings.ToLower(strings.Join(g.Numbers, ",")),
			Visible:     true,
			ShareText:   share,
			ShareURL:    opt.Linker.WhatsApp(g.Phone, share),
			Delete:      NewDeleteModal(opt.Actions, opt.Raffle.ID, idsText, g.Name, numbersText),
			Cancel:      NewCancelModal(opt.Actions, opt.Raffle.ID, idsText, g.Name, g.Canceled),
			Edit:        NewEditModal(opt.Actions, opt.Raffle.ID, idsText, numbersText, g.Name, g.Phone),
			raffle:      opt.Raffle,
		})
	}
	return cards
}

// FilterCards applies query to cards in place and returns the counts.
func FilterCards(cards []Card, query string) selection.FilterResult {
	in := make([]selection.Card, len(cards))
	for i, c := range cards {
		in[i] = selection.Card{Name: c.DataName, Phone: c.DataPhone, Numbers: c.DataNumbers}
	}
	res := selection.Filter(in, query)
	for i := range cards {
		cards[i].Visible = res.Visible[i]
	}
	return res
}

// FindCard returns the card of phone.
func FindCard(cards []Card, phone string) (*Card, bool) {
	for i := range cards {
		if cards[i].Phone == phone {
			return &cards[i], true
		}
	}
	return nil, false
}

// RestrictIDs keeps the ids of raw (brackets and spaces allowed) that belong
// to the card.  An empty result means every id of the card.
func (c *Card) RestrictIDs(raw string) string {
	clean := CleanIDs(raw)
	if clean == "" {
		return c.IDsText
	}
	own := make(map[string]bool, len(c.IDs))
	for _, id := range c.IDs {
		own[strconv.FormatUint(id, 10)] = true
	}
	var keep []string
	for _, id := range strings.Split(clean, ",") {
		if own[id] {
			keep = append(keep, id)
		}
	}
	if len(keep) == 0 {
		return c.IDsText
	}
	return strings.Join(keep, ",")
}

func (c *Card) HideActions() { c.ActionsHidden = true }

func (c *Card) ShowActions() { c.ActionsHidden = false }

// CardData is the snapshot the image exporter draws.
func (c *Card) CardData() export.CardData {
	return export.CardData{
		RaffleNumber:  c.raffle.Number,
		RaffleName:    c.raffle.Name,
		DrawDate:      c.raffle.Date.Format("02/01/2006"),
		Customer:      c.Name,
		Phone:         c.Phone,
		Numbers:       append([]string(nil), c.Numbers...),
		Total:         c.Total,
		Canceled:      c.Canceled,
		PaymentMethod: c.PaymentMethod,
		ShareText:     c.ShareText,
	}
}

func cardID(phone string, i int) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "card-" + strconv.Itoa(i)
	}
	return "card-" + b.String()
}
