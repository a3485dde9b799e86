package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osa030/focusbox/internal/app/focus"
)

func TestPreview(t *testing.T) {
	assert.Equal(t, "one two", preview("one\n\ttwo  ", 40))
	assert.Equal(t, "abcd…", preview("abcdefgh", 5))
	assert.Equal(t, "", preview("", 5))
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "0f8fad5b", shortID("0f8fad5b-d9cb-469f-a165-70867728950e"))
	assert.Equal(t, "a", shortID("a"))
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "25:00", formatClock(1500))
	assert.Equal(t, "00:09", formatClock(9))
}

func TestPrintFocus(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printFocus(&buf, focus.State{Active: true, Sound: "rain", Volume: 70}))
	assert.Equal(t, "focus mode: active\nsound:      rain\nvolume:     70%\n", buf.String())
}

func TestCommandParsing(t *testing.T) {
	tests := []struct {
		args []string
		want string
		live bool
	}{
		{args: []string{"timer", "90s"}, want: "timer", live: true},
		{args: []string{"timer", "--headless"}, want: "timer", live: false},
		{args: []string{"todo"}, want: "todo list"},
		{args: []string{"todo", "add", "buy", "milk"}, want: "todo add"},
		{args: []string{"note", "edit", "abc"}, want: "note edit", live: true},
		{args: []string{"settings", "set", "theme=ocean"}, want: "settings set"},
		{args: []string{"focus"}, want: "focus status"},
		{args: []string{"data", "clear", "--yes"}, want: "data clear"},
	}
	for _, tt := range tests {
		*timerHeadless = false
		got, err := app.Parse(tt.args)
		require.NoError(t, err, tt.args)
		assert.Equal(t, tt.want, got)
		assert.Equal(t, tt.live, isLive(got), tt.args)
	}
}
