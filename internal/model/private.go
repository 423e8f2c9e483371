package model

import "time"

// The types below are stored by no route yet. They are kept so the shapes
// and rules are settled when the private space and easter eggs move
// server-side.

type MessageType string

const (
	MessagePlain       MessageType = "message"
	MessageAnniversary MessageType = "anniversary"
	MessageTimeCapsule MessageType = "timecapsule"
)

var MessageTypes = []MessageType{MessagePlain, MessageAnniversary, MessageTimeCapsule}

// PrivateMessage is a note behind the shared password, optionally sealed
// until UnlockDate.
type PrivateMessage struct {
	ID         string      `json:"_id"                  bson:"_id,omitempty"`
	Content    string      `json:"content"              bson:"content"`
	Date       string      `json:"date"                 bson:"date"`
	UnlockDate *time.Time  `json:"unlockDate,omitempty" bson:"unlockDate,omitempty"`
	Type       MessageType `json:"type"                 bson:"type"`
	IsUnlocked bool        `json:"isUnlocked"           bson:"isUnlocked"`
	CreatedAt  time.Time   `json:"createdAt"            bson:"createdAt"`
	UpdatedAt  time.Time   `json:"updatedAt"            bson:"updatedAt"`
}

// NewPrivateMessage returns a message carrying the schema defaults.
func NewPrivateMessage(content, date string) PrivateMessage {
	return PrivateMessage{
		Content:    content,
		Date:       date,
		Type:       MessagePlain,
		IsUnlocked: true,
	}
}

func (m *PrivateMessage) Validate() error {
	return firstErr(
		required("content", m.Content),
		required("date", m.Date),
		oneOf("type", m.Type, MessageTypes),
	)
}

type EggTrigger string

const (
	TriggerScroll EggTrigger = "scroll"
	TriggerClick  EggTrigger = "click"
	TriggerTime   EggTrigger = "time"
	TriggerKonami EggTrigger = "konami"
)

var EggTriggers = []EggTrigger{TriggerScroll, TriggerClick, TriggerTime, TriggerKonami}

type EggPosition struct {
	Section string   `json:"section"     bson:"section"`
	X       *float64 `json:"x,omitempty" bson:"x,omitempty"`
	Y       *float64 `json:"y,omitempty" bson:"y,omitempty"`
}

// EasterEgg is a hidden message revealed by a page interaction.
type EasterEgg struct {
	ID        string       `json:"_id"                bson:"_id,omitempty"`
	Trigger   EggTrigger   `json:"trigger"            bson:"trigger"`
	Message   string       `json:"message"            bson:"message"`
	Position  *EggPosition `json:"position,omitempty" bson:"position,omitempty"`
	IsActive  bool         `json:"isActive"           bson:"isActive"`
	CreatedAt time.Time    `json:"createdAt"          bson:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"          bson:"updatedAt"`
}

// NewEasterEgg returns an active egg for trigger.
func NewEasterEgg(trigger EggTrigger, message string) EasterEgg {
	return EasterEgg{Trigger: trigger, Message: message, IsActive: true}
}

func (e *EasterEgg) Validate() error {
	if e.Trigger == "" {
		return required("trigger", "")
	}
	return firstErr(
		oneOf("trigger", e.Trigger, EggTriggers),
		required("message", e.Message),
	)
}
