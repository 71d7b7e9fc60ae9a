package tasklist

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/journeyline/internal/models"
)

// ToggleTaskMsg asks the parent model to flip one task of a stage.
type ToggleTaskMsg struct {
	StageID string
	TaskID  int
}

type Item struct {
	StageID string
	Task    models.Task
}

func (i Item) Title() string {
	if i.Task.Done {
		return "✓ " + i.Task.Text
	}
	return "○ " + i.Task.Text
}

func (i Item) Description() string {
	if i.Task.Done {
		return "done"
	}
	return "to do"
}

func (i Item) FilterValue() string { return i.Task.Text }

type KeyMap struct {
	Toggle key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Toggle: key.NewBinding(
			key.WithKeys(" ", "x"),
			key.WithHelp("space", "toggle"),
		),
	}
}

type Model struct {
	list    list.Model
	keys    KeyMap
	stageID string
}

func New(width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Toggle}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Toggle}
	}

	return Model{list: l, keys: keys}
}

// SetTasks replaces the checklist, keeping the cursor where it was.
func (m *Model) SetTasks(stageID string, tasks []models.Task) {
	m.stageID = stageID
	items := make([]list.Item, len(tasks))
	for i, t := range tasks {
		items[i] = Item{StageID: stageID, Task: t}
	}
	idx := m.list.Index()
	m.list.SetItems(items)
	if idx < len(items) {
		m.list.Select(idx)
	}
}

func (m Model) StageID() string {
	return m.stageID
}

func (m Model) Items() []Item {
	out := make([]Item, 0, len(m.list.Items()))
	for _, it := range m.list.Items() {
		if i, ok := it.(Item); ok {
			out = append(out, i)
		}
	}
	return out
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		if key.Matches(msg, m.keys.Toggle) {
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return ToggleTaskMsg{StageID: i.StageID, TaskID: i.Task.ID} }
			}
			return m, nil
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return "\n  No checklist for this stage."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}

func (m Model) Keys() KeyMap {
	return m.keys
}
