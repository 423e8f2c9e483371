package model

import "time"

// VideoMemory is a clip in the video room. Title and URL are both required.
type VideoMemory struct {
	ID          string    `json:"_id"                   bson:"_id,omitempty"`
	Title       string    `json:"title"                 bson:"title"`
	URL         string    `json:"url"                   bson:"url"`
	Thumbnail   string    `json:"thumbnail,omitempty"   bson:"thumbnail,omitempty"`
	Duration    string    `json:"duration,omitempty"    bson:"duration,omitempty"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	Date        string    `json:"date,omitempty"        bson:"date,omitempty"`
	Tags        []string  `json:"tags"                  bson:"tags"`
	IsFavorite  bool      `json:"isFavorite"            bson:"isFavorite"`
	CreatedAt   time.Time `json:"createdAt"             bson:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"             bson:"updatedAt"`
}

func (v *VideoMemory) ApplyDefaults() {
	v.Tags = cloneTags(v.Tags)
}

// Validate checks url before title so a request missing both reports the
// url first.
func (v *VideoMemory) Validate() error {
	return firstErr(
		required("url", v.URL),
		required("title", v.Title),
	)
}

// VideoPatch is the partial-update counterpart of MemoryPatch.
type VideoPatch struct {
	Title       *string
	URL         *string
	Thumbnail   *string
	Duration    *string
	Description *string
	Date        *string
	Tags        *[]string
	IsFavorite  *bool
}

func (p VideoPatch) Validate() error {
	if p.Title != nil {
		if err := required("title", *p.Title); err != nil {
			return err
		}
	}
	if p.URL != nil {
		return required("url", *p.URL)
	}
	return nil
}

func (p VideoPatch) Apply(v *VideoMemory) {
	if p.Title != nil {
		v.Title = *p.Title
	}
	if p.URL != nil {
		v.URL = *p.URL
	}
	if p.Thumbnail != nil {
		v.Thumbnail = *p.Thumbnail
	}
	if p.Duration != nil {
		v.Duration = *p.Duration
	}
	if p.Description != nil {
		v.Description = *p.Description
	}
	if p.Date != nil {
		v.Date = *p.Date
	}
	if p.Tags != nil {
		v.Tags = cloneTags(*p.Tags)
	}
	if p.IsFavorite != nil {
		v.IsFavorite = *p.IsFavorite
	}
}

func (p VideoPatch) Fields() map[string]any {
	f := make(map[string]any)
	if p.Title != nil {
		f["title"] = *p.Title
	}
	if p.URL != nil {
		f["url"] = *p.URL
	}
	if p.Thumbnail != nil {
		f["thumbnail"] = *p.Thumbnail
	}
	if p.Duration != nil {
		f["duration"] = *p.Duration
	}
	if p.Description != nil {
		f["description"] = *p.Description
	}
	if p.Date != nil {
		f["date"] = *p.Date
	}
	if p.Tags != nil {
		f["tags"] = cloneTags(*p.Tags)
	}
	if p.IsFavorite != nil {
		f["isFavorite"] = *p.IsFavorite
	}
	return f
}
