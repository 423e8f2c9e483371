package model

import "time"

// LoveLetter is a letter shown in the vault. Private letters are only
// listed when the caller asks for them explicitly.
type LoveLetter struct {
	ID        string    `json:"_id"       bson:"_id,omitempty"`
	Title     string    `json:"title"     bson:"title"`
	Date      string    `json:"date"      bson:"date"`
	Preview   string    `json:"preview"   bson:"preview"`
	Content   string    `json:"content"   bson:"content"`
	From      string    `json:"from"      bson:"from"`
	IsPrivate bool      `json:"isPrivate" bson:"isPrivate"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

func (l *LoveLetter) Validate() error {
	return firstErr(
		required("title", l.Title),
		required("date", l.Date),
		required("preview", l.Preview),
		required("content", l.Content),
		required("from", l.From),
	)
}
