package app

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/wordfill/internal/ledger"
	"github.com/abhisek/wordfill/internal/router"
	"github.com/abhisek/wordfill/internal/screens/quiz"
	"github.com/abhisek/wordfill/internal/screens/words"
	"github.com/abhisek/wordfill/internal/sentences"
	"github.com/abhisek/wordfill/internal/store"
)

func testModel(t *testing.T) AppModel {
	t.Helper()
	lg := ledger.New(context.Background(), store.NewMemoryRepo(), nil)
	m := newAppModel(Options{Ledger: lg, Source: sentences.DefaultBank()})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return updated.(AppModel)
}

func send(m AppModel, msg tea.Msg) (AppModel, tea.Cmd) {
	updated, cmd := m.Update(msg)
	return updated.(AppModel), cmd
}

func TestAppModel_ViewHasHeaderAndFooter(t *testing.T) {
	m := testModel(t)
	require.True(t, m.View().AltScreen)
	content := m.render()
	assert.Contains(t, content, "wordfill")
	assert.Contains(t, content, "0 known")
	assert.Contains(t, content, "Navigate")
}

func TestAppModel_TooSmall(t *testing.T) {
	m := testModel(t)
	m, _ = send(m, tea.WindowSizeMsg{Width: 40, Height: 10})
	assert.Contains(t, m.render(), "Terminal too small")
}

func TestAppModel_EscPopsWordsScreen(t *testing.T) {
	m := testModel(t)
	m, _ = send(m, router.PushScreenMsg{Screen: words.New(m.ledger)})
	require.Equal(t, 2, m.router.Depth())

	m, cmd := send(m, tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	m, _ = send(m, cmd())
	assert.Equal(t, 1, m.router.Depth())
}

func TestAppModel_EscReachesQuiz(t *testing.T) {
	m := testModel(t)
	q := quiz.New(m.ledger, sentences.DefaultBank(), nil)
	m, _ = send(m, router.PushScreenMsg{Screen: q})

	// Nothing answered: the quiz itself asks to be popped.
	_, cmd := send(m, tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	_, ok := cmd().(router.PopScreenMsg)
	assert.True(t, ok)
}

func TestAppModel_FooterUsesScreenHints(t *testing.T) {
	m := testModel(t)
	m, _ = send(m, router.PushScreenMsg{Screen: words.New(m.ledger)})
	content := m.render()
	assert.Contains(t, content, "Filter")
	assert.True(t, strings.Contains(content, "My Words"))
}

func TestRun_RequiresLedger(t *testing.T) {
	assert.Error(t, Run(Options{}))
}
