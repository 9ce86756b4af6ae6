// Package session defines per-conversation chat state: history, the
// accumulated user profile, and the last recommended cards.
package session

import (
	"time"

	"github.com/cardwise/cardwise/internal/domain/card"
)

// Profile slot names, in the order the assistant asks for them.
const (
	SlotIncome     = "income"
	SlotCibil      = "cibil"
	SlotMaxFee     = "max_fee"
	SlotCategories = "categories"
	SlotBank       = "bank"
)

var slotOrder = []string{SlotIncome, SlotCibil, SlotMaxFee, SlotCategories, SlotBank}

// Message is one chat turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
	TS      int64  `json:"ts"`
}

// NewMessage creates a timestamped chat message.
func NewMessage(role, content string) Message {
	return Message{Role: role, Content: content, TS: time.Now().Unix()}
}

// Profile holds the slots the assistant fills before recommending.
// Nil/empty values mean "not provided yet".
type Profile struct {
	Income     *int     `json:"income"`
	Cibil      *int     `json:"cibil"`
	MaxFee     *int     `json:"max_fee"`
	Categories []string `json:"categories"`
	Bank       string   `json:"bank"`
}

// MissingSlots lists unfilled slots in asking order.
func (p *Profile) MissingSlots() []string {
	var missing []string
	for _, slot := range slotOrder {
		switch slot {
		case SlotIncome:
			if p.Income == nil {
				missing = append(missing, slot)
			}
		case SlotCibil:
			if p.Cibil == nil {
				missing = append(missing, slot)
			}
		case SlotMaxFee:
			if p.MaxFee == nil {
				missing = append(missing, slot)
			}
		case SlotCategories:
			if len(p.Categories) == 0 {
				missing = append(missing, slot)
			}
		case SlotBank:
			if p.Bank == "" {
				missing = append(missing, slot)
			}
		}
	}
	return missing
}

// Session is one conversation's full state.
type Session struct {
	Chat      []Message     `json:"chat"`
	Profile   Profile       `json:"profile"`
	LastCards []card.Record `json:"last_cards"`
}
