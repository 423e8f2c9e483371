package model

import "time"

// MediaType distinguishes photos from clips in the memories gallery.
type MediaType string

const (
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
)

var MediaTypes = []MediaType{MediaImage, MediaVideo}

// Memory is a gallery item hosted on an external asset host. PublicID always
// mirrors URL; no separate asset id is resolved.
type Memory struct {
	ID         string    `json:"_id"                 bson:"_id,omitempty"`
	Type       MediaType `json:"type"                bson:"type"`
	URL        string    `json:"url"                 bson:"url"`
	PublicID   string    `json:"publicId"            bson:"publicId"`
	Thumbnail  string    `json:"thumbnail,omitempty" bson:"thumbnail,omitempty"`
	Caption    string    `json:"caption,omitempty"   bson:"caption,omitempty"`
	Date       string    `json:"date,omitempty"      bson:"date,omitempty"`
	Poetry     string    `json:"poetry,omitempty"    bson:"poetry,omitempty"`
	Tags       []string  `json:"tags"                bson:"tags"`
	IsFavorite bool      `json:"isFavorite"          bson:"isFavorite"`
	CreatedAt  time.Time `json:"createdAt"           bson:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"           bson:"updatedAt"`
}

// ApplyDefaults sets the type, tag list and public id the way a freshly
// created memory expects them.
func (m *Memory) ApplyDefaults() {
	if m.Type == "" {
		m.Type = MediaImage
	}
	m.Tags = cloneTags(m.Tags)
	m.PublicID = m.URL
}

func (m *Memory) Validate() error {
	return firstErr(
		required("url", m.URL),
		oneOf("type", m.Type, MediaTypes),
	)
}

// MemoryPatch holds the fields of a partial update. A nil field was absent
// from the request and must not be touched.
type MemoryPatch struct {
	Type       *MediaType
	URL        *string
	Thumbnail  *string
	Caption    *string
	Date       *string
	Poetry     *string
	Tags       *[]string
	IsFavorite *bool
}

func (p MemoryPatch) Validate() error {
	if p.Type != nil {
		if err := oneOf("type", *p.Type, MediaTypes); err != nil {
			return err
		}
	}
	if p.URL != nil {
		return required("url", *p.URL)
	}
	return nil
}

// Apply merges the present fields into m. Changing the URL also moves the
// public id.
func (p MemoryPatch) Apply(m *Memory) {
	if p.Type != nil {
		m.Type = *p.Type
	}
	if p.URL != nil {
		m.URL = *p.URL
		m.PublicID = *p.URL
	}
	if p.Thumbnail != nil {
		m.Thumbnail = *p.Thumbnail
	}
	if p.Caption != nil {
		m.Caption = *p.Caption
	}
	if p.Date != nil {
		m.Date = *p.Date
	}
	if p.Poetry != nil {
		m.Poetry = *p.Poetry
	}
	if p.Tags != nil {
		m.Tags = cloneTags(*p.Tags)
	}
	if p.IsFavorite != nil {
		m.IsFavorite = *p.IsFavorite
	}
}

// Fields returns the present fields keyed by their stored name.
func (p MemoryPatch) Fields() map[string]any {
	f := make(map[string]any)
	if p.Type != nil {
		f["type"] = *p.Type
	}
	if p.URL != nil {
		f["url"] = *p.URL
		f["publicId"] = *p.URL
	}
	if p.Thumbnail != nil {
		f["thumbnail"] = *p.Thumbnail
	}
	if p.Caption != nil {
		f["caption"] = *p.Caption
	}
	if p.Date != nil {
		f["date"] = *p.Date
	}
	if p.Poetry != nil {
		f["poetry"] = *p.Poetry
	}
	if p.Tags != nil {
		f["tags"] = cloneTags(*p.Tags)
	}
	if p.IsFavorite != nil {
		f["isFavorite"] = *p.IsFavorite
	}
	return f
}
