package model

import "time"

// TimelineIcon is the glyph drawn next to a timeline entry.
type TimelineIcon string

const (
	IconHeart    TimelineIcon = "heart"
	IconMessage  TimelineIcon = "message"
	IconCamera   TimelineIcon = "camera"
	IconPlane    TimelineIcon = "plane"
	IconRing     TimelineIcon = "ring"
	IconCalendar TimelineIcon = "calendar"
	IconPin      TimelineIcon = "pin"
)

// TimelineIcons lists every accepted icon.
var TimelineIcons = []TimelineIcon{
	IconHeart, IconMessage, IconCamera, IconPlane, IconRing, IconCalendar, IconPin,
}

// TimelineEvent is one milestone in the story. Events are displayed in
// ascending Order.
type TimelineEvent struct {
	ID          string       `json:"_id"              bson:"_id,omitempty"`
	Date        string       `json:"date"             bson:"date"` // free-text label, e.g. "Summer 2019"
	Title       string       `json:"title"            bson:"title"`
	Description string       `json:"description"      bson:"description"`
	Image       string       `json:"image,omitempty"  bson:"image,omitempty"`
	Icon        TimelineIcon `json:"icon"             bson:"icon"`
	Poetry      string       `json:"poetry,omitempty" bson:"poetry,omitempty"`
	Order       int          `json:"order"            bson:"order"`
	CreatedAt   time.Time    `json:"createdAt"        bson:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"        bson:"updatedAt"`
}

// ApplyDefaults fills the icon when none was given.
func (e *TimelineEvent) ApplyDefaults() {
	if e.Icon == "" {
		e.Icon = IconHeart
	}
}

func (e *TimelineEvent) Validate() error {
	return firstErr(
		required("date", e.Date),
		required("title", e.Title),
		required("description", e.Description),
		oneOf("icon", e.Icon, TimelineIcons),
	)
}
