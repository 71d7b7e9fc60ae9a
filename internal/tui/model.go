package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/journeyline/internal/constants"
	"github.com/julianstephens/journeyline/internal/guidance"
	"github.com/julianstephens/journeyline/internal/journey"
	"github.com/julianstephens/journeyline/internal/models"
	"github.com/julianstephens/journeyline/internal/router"
	"github.com/julianstephens/journeyline/internal/session"
	"github.com/julianstephens/journeyline/internal/tui/components/tasklist"
)

// Deps are the services the TUI reads from and writes through.
type Deps struct {
	Session  *session.Session
	Engine   *journey.Engine
	Guidance *guidance.Selector
	Router   *router.Router
}

// JournalFormModel backs the new-entry form of the Journal tab
type JournalFormModel struct {
	Text string
	Mood string
}

// profileChangedMsg is sent after an action replaced the session profile.
type profileChangedMsg struct {
	status string
}

var tabTitles = []string{"Today", "Timeline", "Tasks", "Ask", "Journal"}

type Model struct {
	deps          Deps
	state         constants.SessionState
	previousState constants.SessionState
	keys          KeyMap
	help          help.Model
	tasks         tasklist.Model
	input         textinput.Model
	answer        viewport.Model
	article       viewport.Model
	bar           progress.Model
	form          *huh.Form
	journalForm   *JournalFormModel
	pendingAction func() tea.Cmd
	confirmMsg    string
	topic         string
	status        string
	profile       models.UserProfile
	quitting      bool
	width         int
	height        int
}

func NewModel(deps Deps) Model {
	in := textinput.New()
	in.Placeholder = "Ask about contracts, medications, timelines..."
	in.CharLimit = 280

	m := Model{
		deps:    deps,
		state:   constants.StateToday,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		tasks:   tasklist.New(0, 0),
		input:   in,
		answer:  viewport.New(0, 0),
		article: viewport.New(0, 0),
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
	}
	m.refresh()
	return m
}

// refresh re-reads the session profile into the view models.
func (m *Model) refresh() {
	m.profile = m.deps.Session.Profile()
	m.tasks.SetTasks(m.profile.Stage, m.profile.Tasks[m.profile.Stage])
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case constants.StateToday:
		keys = append(keys, m.keys.Open)
	case constants.StateTasks:
		keys = append(keys, m.tasks.Keys().Toggle)
	case constants.StateAsk:
		keys = []key.Binding{m.keys.Tab, m.keys.Enter, m.keys.Back}
	case constants.StateJournal:
		keys = append(keys, m.keys.Add)
	case constants.StateArticle:
		keys = []key.Binding{m.keys.Up, m.keys.Down, m.keys.Back}
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Enter, m.keys.Back}

	var actions []key.Binding
	switch m.state {
	case constants.StateToday:
		actions = []key.Binding{m.keys.Open, m.keys.Reset}
	case constants.StateTasks:
		actions = []key.Binding{m.tasks.Keys().Toggle}
	case constants.StateJournal:
		actions = []key.Binding{m.keys.Add}
	}

	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// State reports the active view.
func (m Model) State() constants.SessionState {
	return m.state
}
