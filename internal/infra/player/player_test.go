package player

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osa030/focusbox/internal/app/focus"
)

func TestCommand_Expand(t *testing.T) {
	p := New("mpv --loop --volume={volume} {file}", "/usr/share/focusbox")
	rain, err := focus.LookupSound("rain")
	require.NoError(t, err)

	assert.Equal(t, "mpv --loop --volume=80 /usr/share/focusbox/rain.mp3", p.Expand(rain, 80))
	assert.Equal(t, "mpv --loop --volume=100 /usr/share/focusbox/rain.mp3", p.Expand(rain, 300))
}

func TestCommand_NotConfigured(t *testing.T) {
	err := New("", "").Play(context.Background(), focus.Sounds[1], 50)
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestCommand_PlayStop(t *testing.T) {
	p := New("sleep 30", t.TempDir())
	require.NoError(t, p.Play(context.Background(), focus.Sounds[1], 50))
	assert.True(t, p.Playing())

	// switching sounds replaces the running process
	require.NoError(t, p.Play(context.Background(), focus.Sounds[2], 50))
	assert.True(t, p.Playing())

	require.NoError(t, p.Stop())
	assert.False(t, p.Playing())
	require.NoError(t, p.Stop())
}

func TestCommand_ProcessExits(t *testing.T) {
	p := New("true", t.TempDir())
	require.NoError(t, p.Play(context.Background(), focus.Sounds[1], 50))
	assert.Eventually(t, func() bool { return !p.Playing() }, 2*time.Second, 10*time.Millisecond)
	require.NoError(t, p.Stop())
}
