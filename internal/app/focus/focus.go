// Package focus provides focus mode: ambient sound selection and quotes.
package focus

import (
	"context"
	"math/rand/v2"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"
)

// ErrUnknownSound is returned for a sound ID missing from the catalog.
var ErrUnknownSound = errors.New("unknown ambient sound")

// SoundNone disables ambient playback.
const SoundNone = "none"

// Sound is an ambient loop.
type Sound struct {
	ID   string
	Name string
	File string // File name inside the configured sound directory
}

// Sounds is the ambient sound catalog.
var Sounds = []Sound{
	{ID: SoundNone, Name: "None"},
	{ID: "rain", Name: "Rain", File: "rain.mp3"},
	{ID: "forest", Name: "Forest", File: "forest.mp3"},
	{ID: "ocean", Name: "Ocean", File: "ocean.mp3"},
	{ID: "piano", Name: "Piano", File: "piano.mp3"},
}

// Quotes rotate while focus mode is active.
var Quotes = []string{
	"Close your eyes and breathe deeply.",
	"Concentration is the key to mental strength.",
	"A focused mind is a powerful mind.",
	"Distraction is the enemy of depth.",
	"Focus on what truly matters.",
	"The quality of your attention shapes the quality of your experience.",
	"In calm, find your strength.",
	"Every moment of focus is a step toward excellence.",
}

// LookupSound returns the catalog entry for id.
func LookupSound(id string) (Sound, error) {
	for _, s := range Sounds {
		if s.ID == id {
			return s, nil
		}
	}
	return Sound{}, errors.Wrapf(ErrUnknownSound, "id %s", id)
}

// RandomQuote picks a quote.
func RandomQuote() string {
	return Quotes[rand.IntN(len(Quotes))]
}

// State is the persisted focus mode state.
type State struct {
	Active  bool   `json:"active"`
	Sound   string `json:"sound"`
	Volume  int    `json:"volume"`
	Playing bool   `json:"playing"`
}

// DefaultState returns the state used before anything is saved.
func DefaultState() State {
	return State{Sound: SoundNone, Volume: 50}
}

// ClampVolume bounds v to 0..100.
func ClampVolume(v int) int {
	return max(0, min(100, v))
}

// Player plays an ambient loop. Playback itself is external.
type Player interface {
	Play(ctx context.Context, sound Sound, volume int) error
	Stop() error
}

// Repository persists focus state.
type Repository interface {
	LoadFocus(ctx context.Context) (State, error)
	SaveFocus(ctx context.Context, s State) error
}

// Service coordinates focus state, persistence and playback.
type Service struct {
	repo   Repository
	player Player
}

// NewService creates a focus service.
func NewService(repo Repository, player Player) *Service {
	return &Service{repo: repo, player: player}
}

// Status returns the stored state.
func (s *Service) Status(ctx context.Context) (State, error) {
	return s.repo.LoadFocus(ctx)
}

// Configure selects the ambient sound and volume without starting playback.
func (s *Service) Configure(ctx context.Context, soundID string, volume int) (State, error) {
	if _, err := LookupSound(soundID); err != nil {
		return State{}, err
	}
	st, err := s.repo.LoadFocus(ctx)
	if err != nil {
		return State{}, err
	}
	st.Sound = soundID
	st.Volume = ClampVolume(volume)
	if err := s.repo.SaveFocus(ctx, st); err != nil {
		return State{}, err
	}
	return st, nil
}

// Start activates focus mode and starts the configured ambient sound.
// A playback failure is logged and leaves focus mode active but silent.
func (s *Service) Start(ctx context.Context) (State, error) {
	st, err := s.repo.LoadFocus(ctx)
	if err != nil {
		return State{}, err
	}
	sound, err := LookupSound(st.Sound)
	if err != nil {
		return State{}, err
	}

	st.Active = true
	st.Playing = false
	if sound.ID != SoundNone {
		if err := s.player.Play(ctx, sound, st.Volume); err != nil {
			zlog.Warn().Err(err).Msgf("ambient sound unavailable: %s", sound.ID)
		} else {
			st.Playing = true
		}
	}

	if err := s.repo.SaveFocus(ctx, st); err != nil {
		return State{}, err
	}
	return st, nil
}

// Stop deactivates focus mode and stops playback.
func (s *Service) Stop(ctx context.Context) (State, error) {
	st, err := s.repo.LoadFocus(ctx)
	if err != nil {
		return State{}, err
	}
	if err := s.player.Stop(); err != nil {
		zlog.Warn().Err(err).Msg("failed to stop ambient sound")
	}
	st.Active = false
	st.Playing = false
	if err := s.repo.SaveFocus(ctx, st); err != nil {
		return State{}, err
	}
	return st, nil
}
