package main

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/wippyai/fontguard/backend/opentype"
	"github.com/wippyai/fontguard/font"
)

func loadGoRegular(t *testing.T) *font.Face {
	t.Helper()
	lib := font.NewLibrary(opentype.Loader{})
	t.Cleanup(func() { _ = lib.Close() })
	face, err := lib.LoadFont(goregular.TTF)
	require.NoError(t, err)
	return face
}

func typeText(m *interactiveModel, s string) *interactiveModel {
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return next.(*interactiveModel)
}

func TestInteractiveModel(t *testing.T) {
	m := newInteractiveModel(loadGoRegular(t), "regular.ttf", true)
	assert.True(t, m.supported, "empty text is supported")
	assert.Contains(t, m.View(), "Go Regular")

	m = typeText(m, "Hi")
	require.NoError(t, m.err)
	assert.True(t, m.supported)
	assert.Len(t, m.ids, 2)
	assert.Contains(t, m.View(), "supported")

	m = typeText(m, "一")
	assert.False(t, m.supported)
	assert.Equal(t, []rune{'一'}, m.missing)
	assert.Len(t, m.ids, 3)
	assert.Contains(t, m.View(), "U+4E00")
}

func TestInteractiveModel_ToggleFilter(t *testing.T) {
	m := newInteractiveModel(loadGoRegular(t), "regular.ttf", true)
	m.input.SetValue("A\u200b")
	m.refresh()
	assert.True(t, m.supported)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlF})
	m = next.(*interactiveModel)
	assert.False(t, m.filter)
	assert.False(t, m.supported)
}

func TestInteractiveModel_Quit(t *testing.T) {
	m := newInteractiveModel(loadGoRegular(t), "regular.ttf", true)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
