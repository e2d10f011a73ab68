package keys

import (
	"testing"

	"chatterm/config"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyNames(t *testing.T) {
	tests := []struct {
		key  string
		want KeyName
	}{
		{key: "enter", want: KeySend},
		{key: "ctrl+f", want: KeySearch},
		{key: "ctrl+l", want: KeyClear},
		{key: "ctrl+r", want: KeyRetry},
		{key: "ctrl+y", want: KeyCopy},
		{key: "ctrl+o", want: KeyOpenLink},
		{key: "?", want: KeyHelp},
		{key: "ctrl+a", want: KeyActivity},
		{key: "pgup", want: KeyPageUp},
		{key: "esc", want: KeyEscape},
		{key: "ctrl+c", want: KeyQuit},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, ok := GetKeyName(tt.key)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	_, ok := GetKeyName("x")
	assert.False(t, ok)
}

func TestApplyOverrides(t *testing.T) {
	t.Cleanup(func() { Apply(config.DefaultKeyBindings()) })

	kb := config.DefaultKeyBindings()
	kb.SetBinding("search", []string{"ctrl+s", "/"}, "ctrl+s")
	kb.SetBinding("unknown_command", []string{"z"}, "z")
	Apply(kb)

	got, ok := GetKeyName("/")
	require.True(t, ok)
	assert.Equal(t, KeySearch, got)

	_, ok = GetKeyName("ctrl+f")
	assert.False(t, ok)
	_, ok = GetKeyName("z")
	assert.False(t, ok)

	assert.True(t, key.Matches(fakeKey("ctrl+s"), Binding(KeySearch)))
	assert.Equal(t, "search", Binding(KeySearch).Help().Desc)
}

func TestBindingsSkipsUnbound(t *testing.T) {
	t.Cleanup(func() { Apply(config.DefaultKeyBindings()) })

	Apply(&config.KeyBindingsConfig{Bindings: []config.KeyBinding{
		{Command: "send", Keys: []string{"enter"}, Help: "↵"},
	}})

	got := Bindings(KeySend, KeySearch, KeyConfirm)
	assert.Len(t, got, 2)
}

type fakeKey string

func (k fakeKey) String() string { return string(k) }
