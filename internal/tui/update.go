package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/journeyline/internal/constants"
	"github.com/julianstephens/journeyline/internal/logger"
	"github.com/julianstephens/journeyline/internal/session"
	"github.com/julianstephens/journeyline/internal/tui/components/tasklist"
)

const (
	chromeHeight = 6
	defaultWidth = 80
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case profileChangedMsg:
		m.refresh()
		m.status = msg.status
		return m, nil
	case constants.ConfirmationMsg:
		m.previousState = m.state
		m.state = constants.StateConfirmReset
		m.confirmMsg = msg.Message
		m.pendingAction = msg.Action
		return m, nil
	case tasklist.ToggleTaskMsg:
		m.toggleTask(msg)
		return m, nil
	}

	switch m.state {
	case constants.StateAddJournal:
		return m.updateJournalForm(msg)
	case constants.StateConfirmReset:
		return m.updateConfirm(msg)
	case constants.StateArticle:
		return m.updateArticle(msg)
	case constants.StateAsk:
		return m.updateAsk(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			cmd := m.switchTab(1)
			return m, cmd
		case key.Matches(msg, m.keys.ShiftTab):
			cmd := m.switchTab(-1)
			return m, cmd
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}

		switch m.state {
		case constants.StateToday:
			if key.Matches(msg, m.keys.Open) {
				m.openArticle(msg.String())
				return m, nil
			}
			if key.Matches(msg, m.keys.Reset) && m.profile.Started() {
				return m, confirmReset(m.deps.Session)
			}
		case constants.StateJournal:
			if key.Matches(msg, m.keys.Add) {
				cmd := m.startJournalForm()
				return m, cmd
			}
		}
	}

	if m.state == constants.StateTasks {
		var cmd tea.Cmd
		m.tasks, cmd = m.tasks.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	m.help.Width = width

	body := height - chromeHeight
	if body < 3 {
		body = 3
	}
	m.tasks.SetSize(width-4, body)
	m.article.Width, m.article.Height = width-4, body
	m.answer.Width = width - 4
	m.answer.Height = body - 4
	if m.answer.Height < 1 {
		m.answer.Height = 1
	}
	m.input.Width = width - 8
}

// switchTab moves between the five main views, wrapping at either end.
func (m *Model) switchTab(delta int) tea.Cmd {
	n := len(tabTitles)
	m.state = constants.SessionState((int(m.state) + delta + n) % n)
	m.status = ""
	if m.state == constants.StateAsk {
		return m.input.Focus()
	}
	m.input.Blur()
	return nil
}

func (m *Model) toggleTask(msg tasklist.ToggleTaskMsg) {
	if _, err := m.deps.Session.ToggleTask(msg.StageID, msg.TaskID); err != nil {
		m.status = err.Error()
		return
	}
	m.refresh()
}

func (m Model) updateAsk(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "tab":
			cmd := m.switchTab(1)
			return m, cmd
		case "shift+tab":
			cmd := m.switchTab(-1)
			return m, cmd
		case "enter":
			m.ask(m.input.Value())
			return m, nil
		case "esc":
			m.input.Reset()
			m.answer.SetContent("")
			m.topic = ""
			return m, nil
		case "up", "down", "pgup", "pgdown":
			m.answer, cmd = m.answer.Update(msg)
			return m, cmd
		}
	}
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) ask(question string) {
	q := strings.TrimSpace(question)
	if q == "" {
		return
	}
	m.topic = m.deps.Router.Classify(q)
	logger.Debug("Routed question", "topic", m.topic)

	width := m.answer.Width
	if width <= 0 {
		width = defaultWidth
	}
	answer := m.deps.Router.Answer(q, m.profile)
	m.answer.SetContent(lipgloss.NewStyle().Width(width).Render(answer))
	m.answer.GotoTop()
}

// openArticle shows the nth "read next" article of the Today view.
func (m *Model) openArticle(k string) {
	if len(k) != 1 || k[0] < '1' || k[0] > '9' {
		return
	}
	n := int(k[0] - '1')
	articles := m.deps.Guidance.ForProfile(m.profile).Articles
	if n >= len(articles) {
		return
	}
	a := articles[n]

	width := m.article.Width
	if width <= 0 {
		width = defaultWidth
	}
	body := a.Body
	r, err := glamour.NewTermRenderer(glamour.WithStandardStyle("dark"), glamour.WithWordWrap(width))
	if err == nil {
		if out, err := r.Render(a.Body); err == nil {
			body = out
		}
	}
	if err != nil {
		logger.Warn("Failed to render article", "id", a.ID, "error", err)
	}

	m.article.SetContent(titleStyle.Render(a.Title) + "\n" + body)
	m.article.GotoTop()
	m.previousState = m.state
	m.state = constants.StateArticle
}

func (m Model) updateArticle(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "esc", "q":
			m.state = m.previousState
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.article, cmd = m.article.Update(msg)
	return m, cmd
}

func confirmReset(s *session.Session) tea.Cmd {
	return func() tea.Msg {
		return constants.ConfirmationMsg{
			Message: "Reset your journey? Your stage, checklists, moods and journal will be cleared.",
			Action: func() tea.Cmd {
				s.Reset()
				return func() tea.Msg { return profileChangedMsg{status: "Journey reset. Run 'journeyline init' to begin again."} }
			},
		}
	}
}

func (m Model) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	msgKey, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(msgKey, m.keys.Confirm):
		action := m.pendingAction
		m.pendingAction = nil
		m.state = constants.StateToday
		if action != nil {
			return m, action()
		}
	case key.Matches(msgKey, m.keys.Cancel):
		m.pendingAction = nil
		m.state = m.previousState
	case msgKey.String() == "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) startJournalForm() tea.Cmd {
	fm := &JournalFormModel{}
	options := []huh.Option[string]{huh.NewOption("Skip", "")}
	for _, mood := range constants.Moods {
		options = append(options, huh.NewOption(string(mood), string(mood)))
	}

	m.journalForm = fm
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("What's on your mind?").
				Value(&fm.Text),
			huh.NewSelect[string]().
				Title("How are you feeling?").
				Options(options...).
				Value(&fm.Mood),
		),
	)
	m.previousState = m.state
	m.state = constants.StateAddJournal
	return m.form.Init()
}

func (m Model) updateJournalForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = constants.StateJournal
		return m, nil
	}

	var cmds []tea.Cmd
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	cmds = append(cmds, cmd)

	switch m.form.State {
	case huh.StateCompleted:
		m.status = m.saveJournalForm()
		m.refresh()
		m.state = constants.StateJournal
	case huh.StateAborted:
		m.state = constants.StateJournal
	}
	return m, tea.Batch(cmds...)
}

// saveJournalForm records whatever the form collected and returns a status line.
func (m *Model) saveJournalForm() string {
	fm := m.journalForm
	var saved []string
	if strings.TrimSpace(fm.Text) != "" {
		if _, err := m.deps.Session.AddJournal(fm.Text); err != nil {
			return err.Error()
		}
		saved = append(saved, "entry")
	}
	if fm.Mood != "" {
		if _, err := m.deps.Session.LogMood(fm.Mood); err != nil {
			return err.Error()
		}
		saved = append(saved, "mood")
	}
	if len(saved) == 0 {
		return "Nothing to save."
	}
	return fmt.Sprintf("Saved %s.", strings.Join(saved, " and "))
}
