package model

import (
	"errors"
	"testing"

	"github.com/sakif/scrapbook/internal/apperror"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		target    interface{ Validate() error }
		wantField string // empty means valid
	}{
		{
			name: "timeline event valid",
			target: &TimelineEvent{
				Date: "June 2019", Title: "First date", Description: "Coffee", Icon: IconHeart,
			},
		},
		{
			name:      "timeline event missing title",
			target:    &TimelineEvent{Date: "June 2019", Description: "Coffee", Icon: IconHeart},
			wantField: "title",
		},
		{
			name: "timeline event unknown icon",
			target: &TimelineEvent{
				Date: "June 2019", Title: "First date", Description: "Coffee", Icon: "rocket",
			},
			wantField: "icon",
		},
		{
			name: "letter valid",
			target: &LoveLetter{
				Title: "Hi", Date: "today", Preview: "p", Content: "c", From: "me",
			},
		},
		{
			name:      "letter missing from",
			target:    &LoveLetter{Title: "Hi", Date: "today", Preview: "p", Content: "c"},
			wantField: "from",
		},
		{
			name:   "memory valid",
			target: &Memory{URL: "https://x/y.jpg", Type: MediaImage},
		},
		{
			name:      "memory empty url",
			target:    &Memory{URL: "", Type: MediaImage},
			wantField: "url",
		},
		{
			name:   "memory whitespace url is a value",
			target: &Memory{URL: "  ", Type: MediaImage},
		},
		{
			name:   "video whitespace title is a value",
			target: &VideoMemory{URL: "https://x/v.mp4", Title: " "},
		},
		{
			name:      "memory bad type",
			target:    &Memory{URL: "https://x/y.jpg", Type: "gif"},
			wantField: "type",
		},
		{
			name:      "video missing both reports url first",
			target:    &VideoMemory{},
			wantField: "url",
		},
		{
			name:      "video missing title",
			target:    &VideoMemory{URL: "https://x/v.mp4"},
			wantField: "title",
		},
		{
			name:      "settings zero wedding date",
			target:    &SiteSettings{CoupleName: "A & B", PrivatePassword: "pw"},
			wantField: "weddingDate",
		},
		{
			name:   "private message defaults are valid",
			target: func() *PrivateMessage { m := NewPrivateMessage("hello", "today"); return &m }(),
		},
		{
			name:      "private message bad type",
			target:    &PrivateMessage{Content: "hello", Date: "today", Type: "letter"},
			wantField: "type",
		},
		{
			name:      "easter egg missing trigger",
			target:    &EasterEgg{Message: "boo"},
			wantField: "trigger",
		},
		{
			name:   "easter egg konami",
			target: func() *EasterEgg { e := NewEasterEgg(TriggerKonami, "up up down down"); return &e }(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.target.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v, want nil", err)
				}
				return
			}

			var appErr *apperror.AppError
			if !errors.As(err, &appErr) {
				t.Fatalf("Validate() error = %v, want *apperror.AppError", err)
			}
			if !errors.Is(err, apperror.ErrValidation) {
				t.Errorf("error = %v, want ErrValidation", err)
			}
			if appErr.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", appErr.Field, tt.wantField)
			}
		})
	}
}

func TestMemoryApplyDefaults(t *testing.T) {
	m := Memory{URL: "https://x/y.jpg"}
	m.ApplyDefaults()

	if m.Type != MediaImage {
		t.Errorf("Type = %q, want %q", m.Type, MediaImage)
	}
	if m.PublicID != m.URL {
		t.Errorf("PublicID = %q, want %q", m.PublicID, m.URL)
	}
	if m.Tags == nil || len(m.Tags) != 0 {
		t.Errorf("Tags = %#v, want empty non-nil slice", m.Tags)
	}
}

func TestMemoryPatch_OnlyTouchesPresentFields(t *testing.T) {
	m := Memory{
		Type:       MediaImage,
		URL:        "https://x/y.jpg",
		PublicID:   "https://x/y.jpg",
		Caption:    "Day one",
		Tags:       []string{"beach"},
		IsFavorite: true,
	}

	MemoryPatch{Caption: strPtr("Day two")}.Apply(&m)

	if m.Caption != "Day two" {
		t.Errorf("Caption = %q, want %q", m.Caption, "Day two")
	}
	if m.URL != "https://x/y.jpg" || !m.IsFavorite || len(m.Tags) != 1 {
		t.Errorf("untouched fields changed: %+v", m)
	}
}

func TestMemoryPatch_URLMovesPublicID(t *testing.T) {
	p := MemoryPatch{URL: strPtr("https://x/z.jpg"), IsFavorite: boolPtr(false)}

	fields := p.Fields()
	if fields["publicId"] != "https://x/z.jpg" {
		t.Errorf("Fields()[publicId] = %v, want new url", fields["publicId"])
	}
	if len(fields) != 3 {
		t.Errorf("Fields() has %d entries, want 3: %v", len(fields), fields)
	}

	var m Memory
	p.Apply(&m)
	if m.PublicID != "https://x/z.jpg" {
		t.Errorf("PublicID = %q, want new url", m.PublicID)
	}
}

func TestVideoPatch_EmptyTitleRejected(t *testing.T) {
	err := VideoPatch{Title: strPtr("")}.Validate()
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("Validate() error = %v, want ErrValidation", err)
	}
}

func TestSettingsPatch_MergesNestedFields(t *testing.T) {
	s := DefaultSettings()

	SettingsPatch{
		CoupleName: strPtr("Ana & Leo"),
		Theme:      &ThemePatch{PrimaryColor: strPtr("#000000")},
	}.Apply(&s)

	if s.CoupleName != "Ana & Leo" {
		t.Errorf("CoupleName = %q", s.CoupleName)
	}
	if s.Theme.PrimaryColor != "#000000" {
		t.Errorf("PrimaryColor = %q, want #000000", s.Theme.PrimaryColor)
	}
	if s.Theme.AccentColor != "#D4AF37" {
		t.Errorf("AccentColor = %q, want default kept", s.Theme.AccentColor)
	}
	if s.Venue != "Where Dreams Come True" {
		t.Errorf("Venue = %q, want default kept", s.Venue)
	}
}
