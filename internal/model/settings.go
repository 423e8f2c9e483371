package model

import (
	"time"

	"github.com/sakif/scrapbook/internal/apperror"
)

// SettingsKey addresses the single settings document.
const SettingsKey = "site"

type Theme struct {
	PrimaryColor string `json:"primaryColor" bson:"primaryColor"`
	AccentColor  string `json:"accentColor"  bson:"accentColor"`
}

type SocialLinks struct {
	Instagram string `json:"instagram,omitempty" bson:"instagram,omitempty"`
	TikTok    string `json:"tiktok,omitempty"    bson:"tiktok,omitempty"`
}

// SiteSettings is the singleton configuring the hero, the countdown and the
// private space.
type SiteSettings struct {
	ID                 string      `json:"_id"                          bson:"_id,omitempty"`
	Key                string      `json:"-"                            bson:"key"`
	CoupleName         string      `json:"coupleName"                   bson:"coupleName"`
	Tagline            string      `json:"tagline"                      bson:"tagline"`
	WeddingDate        time.Time   `json:"weddingDate"                  bson:"weddingDate"`
	Venue              string      `json:"venue"                        bson:"venue"`
	PrivatePassword    string      `json:"privatePassword"              bson:"privatePassword"`
	BackgroundMusicURL string      `json:"backgroundMusicUrl,omitempty" bson:"backgroundMusicUrl,omitempty"`
	Theme              Theme       `json:"theme"                        bson:"theme"`
	SocialLinks        SocialLinks `json:"socialLinks"                  bson:"socialLinks"`
	CreatedAt          time.Time   `json:"createdAt"                    bson:"createdAt"`
	UpdatedAt          time.Time   `json:"updatedAt"                    bson:"updatedAt"`
}

// DefaultSettings is the document created on first read.
func DefaultSettings() SiteSettings {
	return SiteSettings{
		Key:             SettingsKey,
		CoupleName:      "Our Love Story",
		Tagline:         "Every love story is beautiful, but ours is my favorite.",
		WeddingDate:     time.Date(2024, time.December, 31, 10, 0, 0, 0, time.UTC),
		Venue:           "Where Dreams Come True",
		PrivatePassword: "ourlove",
		Theme: Theme{
			PrimaryColor: "#FF6B8A",
			AccentColor:  "#D4AF37",
		},
	}
}

func (s *SiteSettings) Validate() error {
	if err := firstErr(
		required("coupleName", s.CoupleName),
		required("privatePassword", s.PrivatePassword),
	); err != nil {
		return err
	}
	if s.WeddingDate.IsZero() {
		return apperror.ValidationFailed("weddingDate", "weddingDate is required")
	}
	return nil
}

type ThemePatch struct {
	PrimaryColor *string `json:"primaryColor"`
	AccentColor  *string `json:"accentColor"`
}

type SocialLinksPatch struct {
	Instagram *string `json:"instagram"`
	TikTok    *string `json:"tiktok"`
}

// SettingsPatch is a partial settings update. Nested groups merge per field.
type SettingsPatch struct {
	CoupleName         *string           `json:"coupleName"`
	Tagline            *string           `json:"tagline"`
	WeddingDate        *time.Time        `json:"weddingDate"`
	Venue              *string           `json:"venue"`
	PrivatePassword    *string           `json:"privatePassword"`
	BackgroundMusicURL *string           `json:"backgroundMusicUrl"`
	Theme              *ThemePatch       `json:"theme"`
	SocialLinks        *SocialLinksPatch `json:"socialLinks"`
}

func (p SettingsPatch) Apply(s *SiteSettings) {
	setString(&s.CoupleName, p.CoupleName)
	setString(&s.Tagline, p.Tagline)
	if p.WeddingDate != nil {
		s.WeddingDate = *p.WeddingDate
	}
	setString(&s.Venue, p.Venue)
	setString(&s.PrivatePassword, p.PrivatePassword)
	setString(&s.BackgroundMusicURL, p.BackgroundMusicURL)
	if p.Theme != nil {
		setString(&s.Theme.PrimaryColor, p.Theme.PrimaryColor)
		setString(&s.Theme.AccentColor, p.Theme.AccentColor)
	}
	if p.SocialLinks != nil {
		setString(&s.SocialLinks.Instagram, p.SocialLinks.Instagram)
		setString(&s.SocialLinks.TikTok, p.SocialLinks.TikTok)
	}
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
