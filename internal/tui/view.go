package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/journeyline/internal/constants"
	"github.com/julianstephens/journeyline/internal/journey"
	"github.com/julianstephens/journeyline/internal/utils"
)

const recentMoodLimit = 5

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string

	switch m.state {
	case constants.StateToday:
		content = m.viewToday()
	case constants.StateTimeline:
		content = m.viewTimeline()
	case constants.StateTasks:
		content = m.viewTasks()
	case constants.StateAsk:
		content = m.viewAsk()
	case constants.StateJournal:
		content = m.viewJournal()
	case constants.StateArticle:
		content = m.article.View()
	case constants.StateAddJournal:
		content = docStyle.Render(m.form.View())
	case constants.StateConfirmReset:
		content = m.viewConfirm()
	}

	var status string
	if m.status != "" {
		status = statusStyle.Render(m.status)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		status,
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	active := m.state
	if active > constants.StateJournal {
		active = m.previousState
	}
	var tabs []string
	for i, title := range tabTitles {
		if active == constants.SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func notStarted() string {
	return docStyle.Render("No journey yet.\n" + mutedStyle.Render("Run 'journeyline init' to choose your role, state and stage."))
}

func (m Model) viewToday() string {
	p := m.profile
	if !p.Started() {
		return notStarted()
	}

	today := m.deps.Guidance.ForProfile(p)
	var b strings.Builder

	if g := today.Guide; g != nil {
		greeting := g.Greeting
		if p.Name != "" {
			greeting += ", " + p.Name
		}
		b.WriteString(titleStyle.Render(greeting) + "\n")
		b.WriteString(g.Message + "\n\n")
		b.WriteString("Today: " + g.Action + "\n")
		if g.ActionDescription != "" {
			b.WriteString(mutedStyle.Render(g.ActionDescription) + "\n")
		}
		b.WriteString("\n")
	}

	if r := today.Reminder; r != nil {
		title := "Reminder: " + r.Title
		if r.Urgent {
			title = dangerStyle.Render("❗ " + title)
		} else {
			title = warningStyle.Render(title)
		}
		b.WriteString(title + "\n" + r.Description + "\n\n")
	}

	if len(today.Focus) > 0 {
		b.WriteString("Focus\n")
		for _, f := range today.Focus {
			fmt.Fprintf(&b, "  • %s: %s\n", f.Title, f.Description)
		}
		b.WriteString("\n")
	}

	if len(today.Articles) > 0 {
		b.WriteString("Read next\n")
		for i, a := range today.Articles {
			if i >= 9 {
				break
			}
			fmt.Fprintf(&b, "  [%d] %s %s\n", i+1, a.Title, mutedStyle.Render(fmt.Sprintf("(%d min)", a.ReadMinutes())))
		}
	}

	if !today.HasGuidance && len(today.Articles) == 0 {
		b.WriteString("Nothing specific for today. Check your tasks.")
	}
	return docStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func (m Model) viewTimeline() string {
	p := m.profile
	entries := m.deps.Engine.ProjectTimeline(p)
	if len(entries) == 0 {
		return notStarted()
	}

	var b strings.Builder
	days := journey.DaysInJourney(p, time.Now())
	fmt.Fprintf(&b, "Day %d (%s)  %s\n\n", days, utils.HumanizeDays(days), m.bar.ViewAs(m.deps.Engine.ProgressPercent(p)/100))

	for _, e := range entries {
		line := fmt.Sprintf("%-22s %s → %s", e.Name, utils.FormatDate(e.Start), utils.FormatDate(e.End))
		switch e.Status {
		case constants.StageDone:
			line = mutedStyle.Render("✓ " + line)
		case constants.StageCurrent:
			line = currentStyle.Render("▶ " + line)
		default:
			line = "· " + line
		}
		b.WriteString(line + "\n")
	}
	if end, ok := journey.ProjectedEnd(entries); ok {
		fmt.Fprintf(&b, "\nProjected finish: %s", utils.FormatDate(end))
	}
	return docStyle.Render(b.String())
}

func (m Model) viewTasks() string {
	p := m.profile
	if !p.Started() {
		return notStarted()
	}
	header := p.Stage
	if stage, ok := m.deps.Engine.Stage(p.Role, p.Stage); ok {
		header = stage.Name
	}
	done, total := journey.CompletionCount(p.Tasks[p.Stage])
	return docStyle.Render(titleStyle.Render(fmt.Sprintf("%s (%d/%d)", header, done, total)) + "\n" + m.tasks.View())
}

func (m Model) viewAsk() string {
	var b strings.Builder
	b.WriteString(m.input.View() + "\n\n")
	if m.topic != "" {
		b.WriteString(mutedStyle.Render("topic: "+m.topic) + "\n")
		b.WriteString(answerStyle.Render(m.answer.View()))
	} else {
		b.WriteString(mutedStyle.Render("Answers use your role and state when you have started a journey."))
	}
	return docStyle.Render(b.String())
}

func (m Model) viewJournal() string {
	p := m.profile
	var b strings.Builder

	moods := journey.RecentMoods(p, recentMoodLimit)
	if len(moods) > 0 {
		b.WriteString(titleStyle.Render("Moods") + "\n")
		for _, mood := range moods {
			fmt.Fprintf(&b, "  %s  %s\n", mutedStyle.Render(mood.At.Format(constants.TimestampFormat)), mood.Mood)
		}
		b.WriteString("\n")
	}

	entries := journey.RecentJournal(p, constants.RecentJournalLimit)
	b.WriteString(titleStyle.Render("Journal") + "\n")
	if len(entries) == 0 {
		b.WriteString(mutedStyle.Render("No entries yet. Press 'a' to write one."))
	}
	for _, e := range entries {
		fmt.Fprintf(&b, "%s\n%s\n\n", mutedStyle.Render(e.At.Format(constants.TimestampFormat)), e.Text)
	}
	return docStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func (m Model) viewConfirm() string {
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(m.confirmMsg),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
