package view

import (
	"fmt"
	"regexp"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Modal kinds served by the fragment endpoint.
const (
	ModalDelete       = "delete"
	ModalCancel       = "cancel"
	ModalEdit         = "edit"
	ModalWinner       = "winner"
	ModalDeleteRaffle = "delete-raffle"
)

// Form action values understood by the backend.
const (
	ActionDeleteSelection = "delete_selection"
	ActionMarkCanceled    = "mark_canceled"
	WinnerAnnounce        = "announce"
	WinnerRemove          = "remove_winners"
)

var idJunk = regexp.MustCompile(`[\[\]\s]`)

// CleanIDs strips brackets and whitespace from a selection id list, so
// "[12, 13]" becomes "12,13".
func CleanIDs(raw string) string { return idJunk.ReplaceAllString(raw, "") }

// Actions builds the backend URLs the modal forms post to.  An empty Base
// keeps them relative to the page origin.
type Actions struct {
	Base string
}

func (a Actions) url(format string, args ...any) string {
	return strings.TrimRight(a.Base, "/") + fmt.Sprintf(format, args...)
}

// Selection is the target of the delete, cancel and edit forms.
func (a Actions) Selection(raffleID uint64) string { return a.url("/rifas/%d", raffleID) }

func (a Actions) AnnounceWinner(raffleID uint64) string {
	return a.url("/rifas/anunciar_ganador/%d", raffleID)
}

func (a Actions) DeleteRaffle(raffleID uint64) string { return a.url("/rifas/eliminar/%d", raffleID) }

// DeleteModal releases a buyer's numbers after the buyer's password.
type DeleteModal struct {
	IDs         string
	Name        string
	NumbersText string
	Action      string
	ActionValue string
	Password    string
}

// CancelModal marks a buyer's numbers as cancelled (paid).  Admin only.
type CancelModal struct {
	IDs         string
	Name        string
	Action      string
	ActionValue string
	Disabled    bool
}

// EditModal shows the buyer's data read-only and asks for the password to
// release the numbers.
type EditModal struct {
	IDs         string
	NumbersText string
	Name        string
	Phone       string
	Password    string
	Action      string
	ActionValue string
}

// WinnerModal announces winning numbers, or removes them when some were
// already announced.
type WinnerModal struct {
	RaffleID      uint64
	RaffleName    string
	Action        string
	Mode          string
	NumWinners    int
	Numbers       string
	InputRequired bool
	Instructions  string
}

// DeleteRaffleModal asks for an explicit confirmation before deleting.
type DeleteRaffleModal struct {
	RaffleID   uint64
	RaffleName string
	Action     string
	Confirmed  bool
}

// Modal wraps one modal for the fragment template.
type Modal struct {
	Kind         string
	Delete       *DeleteModal
	Cancel       *CancelModal
	Edit         *EditModal
	Winner       *WinnerModal
	DeleteRaffle *DeleteRaffleModal
}

func NewDeleteModal(a Actions, raffleID uint64, ids, name, numbers string) DeleteModal {
	return DeleteModal{
		IDs:         CleanIDs(ids),
		Name:        name,
		NumbersText: numbers,
		Action:      a.Selection(raffleID),
		ActionValue: ActionDeleteSelection,
	}
}

// NewCancelModal prepares the cancel form.  A selection that is already
// cancelled yields a disabled modal: submitting it again would be a no-op.
func NewCancelModal(a Actions, raffleID uint64, ids, name string, alreadyCanceled bool) CancelModal {
	m := CancelModal{
		IDs:         CleanIDs(ids),
		Name:        name,
		Action:      a.Selection(raffleID),
		ActionValue: ActionMarkCanceled,
	}
	if alreadyCanceled {
		log.WithFields(log.Fields{"raffle_id": raffleID, "ids": m.IDs}).Debug("cancel modal for a cancelled selection")
		m.Disabled = true
	}
	return m
}

func NewEditModal(a Actions, raffleID uint64, ids, numbers, name, phone string) EditModal {
	return EditModal{
		IDs:         CleanIDs(ids),
		NumbersText: numbers,
		Name:        name,
		Phone:       phone,
		Action:      a.Selection(raffleID),
		ActionValue: ActionDeleteSelection,
	}
}

// NewWinnerModal picks the mode from whether winners were announced.
func NewWinnerModal(a Actions, raffleID uint64, raffleName string, winnersAnnounced bool) WinnerModal {
	m := WinnerModal{
		RaffleID:   raffleID,
		RaffleName: raffleName,
		Action:     a.AnnounceWinner(raffleID),
		NumWinners: 1,
	}
	if winnersAnnounced {
		m.Mode = WinnerRemove
		m.Instructions = fmt.Sprintf("Ya hay ganadores anunciados para %s. Presione Eliminar Ganadores para resetear la rifa y anunciar nuevos.", raffleName)
		return m
	}
	m.Mode = WinnerAnnounce
	m.InputRequired = true
	m.Instructions = fmt.Sprintf("Seleccione el número de ganadores para la rifa %s.", raffleName)
	return m
}

func NewDeleteRaffleModal(a Actions, raffleID uint64, raffleName string) DeleteRaffleModal {
	return DeleteRaffleModal{RaffleID: raffleID, RaffleName: raffleName, Action: a.DeleteRaffle(raffleID)}
}
