package keys

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"selectkit/internal/ui/services/navigation"
)

func TestNavigationMapping(t *testing.T) {
	km := DefaultWidgetKeyMap()
	cases := map[tea.KeyType]navigation.Event{
		tea.KeyEnter: navigation.EventKeyEnter,
		tea.KeyEsc:   navigation.EventKeyEscape,
		tea.KeyDown:  navigation.EventKeyArrowDown,
		tea.KeyUp:    navigation.EventKeyArrowUp,
		tea.KeyHome:  navigation.EventKeyHome,
		tea.KeyEnd:   navigation.EventKeyEnd,
	}
	for kt, want := range cases {
		in, ok := km.Navigation(tea.KeyMsg{Type: kt})
		assert.True(t, ok, kt.String())
		assert.Equal(t, want, in.Event, kt.String())
	}

	_, ok := km.Navigation(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	assert.False(t, ok)
}

func TestHelpBindings(t *testing.T) {
	km := DefaultAppKeyMap()
	assert.NotEmpty(t, km.ShortHelp())
	assert.Len(t, km.FullHelp(), 3)
}
