// Package settings provides the user settings entity.
package settings

import (
	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/mitchellh/mapstructure"

	"github.com/osa030/focusbox/internal/domain/theme"
)

// AudioType is the slot a custom audio clip replaces.
type AudioType string

const (
	AudioNotification AudioType = "notification"
	AudioVictory      AudioType = "victory"
	AudioTick         AudioType = "tick"
)

// CustomAudio is a user-supplied sound clip.
type CustomAudio struct {
	ID   string    `json:"id"`
	Name string    `json:"name" validate:"required"`
	URL  string    `json:"url" validate:"required"`
	Type AudioType `json:"type" validate:"oneof=notification victory tick"`
}

// Settings represents the user preferences.
type Settings struct {
	Theme           theme.Theme   `json:"theme"`
	CustomAudios    []CustomAudio `json:"customAudios"`
	BackgroundImage string        `json:"backgroundImage,omitempty"`
	SoundEnabled    bool          `json:"soundEnabled"`
	Notifications   bool          `json:"notifications"`
}

// Default returns the settings used before anything is saved.
func Default() Settings {
	return Settings{
		Theme:         theme.Default(),
		CustomAudios:  []CustomAudio{},
		SoundEnabled:  true,
		Notifications: true,
	}
}

// patch is the set of keys accepted by Apply.
type patch struct {
	Theme         *string `mapstructure:"theme"`
	Background    *string `mapstructure:"background"`
	SoundEnabled  *bool   `mapstructure:"sound_enabled"`
	Notifications *bool   `mapstructure:"notifications"`
}

// Keys lists the keys accepted by Apply.
var Keys = []string{"theme", "background", "sound_enabled", "notifications"}

// Apply merges a partial update. Values may be strings ("false", "0") and are
// converted to the field type. Nothing changes when any key is invalid.
func (s *Settings) Apply(values map[string]any) error {
	var p patch
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &p,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return errors.Wrap(err, "failed to create decoder")
	}
	if err := decoder.Decode(values); err != nil {
		return errors.Wrap(err, "failed to decode settings")
	}

	next := *s
	if p.Theme != nil {
		t, err := theme.Lookup(*p.Theme)
		if err != nil {
			return err
		}
		next.Theme = t
	}
	if p.Background != nil {
		switch bg := *p.Background; bg {
		case "", "none":
			next.BackgroundImage = ""
		default:
			if b, ok := theme.LookupBackground(bg); ok {
				next.BackgroundImage = b.URL
			} else {
				next.BackgroundImage = bg
			}
		}
	}
	if p.SoundEnabled != nil {
		next.SoundEnabled = *p.SoundEnabled
	}
	if p.Notifications != nil {
		next.Notifications = *p.Notifications
	}

	*s = next
	return nil
}

// AddCustomAudio validates and appends a custom audio clip.
func (s *Settings) AddCustomAudio(name, url string, typ AudioType) (CustomAudio, error) {
	audio := CustomAudio{
		ID:   uuid.New().String(),
		Name: name,
		URL:  url,
		Type: typ,
	}
	if err := validator.New().Struct(audio); err != nil {
		return CustomAudio{}, errors.Wrap(err, "invalid custom audio")
	}
	s.CustomAudios = append(s.CustomAudios, audio)
	return audio, nil
}

// RemoveCustomAudio removes the clip with the given ID. It reports whether one was removed.
func (s *Settings) RemoveCustomAudio(id string) bool {
	for i, a := range s.CustomAudios {
		if a.ID == id {
			s.CustomAudios = append(s.CustomAudios[:i], s.CustomAudios[i+1:]...)
			return true
		}
	}
	return false
}
