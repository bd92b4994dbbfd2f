package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mentora/mentora/pkg/client"
	"github.com/mentora/mentora/pkg/domain"
)

type studentsLoadedMsg struct {
	identity string
	students []domain.StudentAnalytics
	err      error
}

// studentsModel is the teacher/admin roster. Students never reach it; the
// authorization gate redirects them before activation.
type studentsModel struct {
	api      *client.Client
	identity string

	students []domain.StudentAnalytics
	cursor   int

	loading bool
	err     error
	width   int
	height  int
}

func newStudentsModel(api *client.Client) studentsModel {
	return studentsModel{api: api}
}

func (m studentsModel) activate(identity string) (studentsModel, tea.Cmd) {
	m.identity = identity
	m.loading = true
	m.err = nil
	return m, m.load()
}

func (m studentsModel) load() tea.Cmd {
	api := m.api
	identity := m.identity
	return func() tea.Msg {
		students, err := api.StudentAnalytics(context.Background())
		return studentsLoadedMsg{identity: identity, students: students, err: err}
	}
}

func (m studentsModel) Update(msg tea.Msg) (studentsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case studentsLoadedMsg:
		if msg.identity != m.identity {
			return m, nil
		}
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.students = msg.students
			if m.cursor >= len(m.students) {
				m.cursor = 0
			}
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			if m.cursor < len(m.students)-1 {
				m.cursor++
			}
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}
		case "r":
			m.loading = true
			m.err = nil
			return m, m.load()
		}
	}
	return m, nil
}

func (m studentsModel) View() string {
	if m.loading {
		return "\n " + dimStyle.Render("loading students...")
	}
	if m.err != nil {
		return "\n " + errStyle.Render(client.ErrorMessage(m.err)) + "\n\n " + dimStyle.Render("r to retry")
	}

	var b strings.Builder
	b.WriteString("\n " + selectedStyle.Render("Students") + "  " +
		metaStyle.Render(fmt.Sprintf("%d", len(m.students))) + "\n\n")

	if len(m.students) == 0 {
		b.WriteString(" " + dimStyle.Render("no students yet") + "\n")
		return b.String()
	}

	for i, s := range m.students {
		level := ""
		if s.LearningLevel != "" {
			level = LevelStyle(s.LearningLevel).Render(string(s.LearningLevel))
		}
		line := fmt.Sprintf("%-28s %s  %s %3.0f%%  %s",
			truncStr(s.FullName, 26),
			level,
			progressBar(int(s.LevelCompletion), 12), s.LevelCompletion,
			metaStyle.Render(formatMinutes(s.TotalLearningTime)),
		)
		if i == m.cursor {
			b.WriteString(" " + selectedStyle.Render("› ") + line + "\n")
		} else {
			b.WriteString("   " + line + "\n")
		}
	}

	if m.cursor < len(m.students) {
		s := m.students[m.cursor]
		b.WriteString("\n " + metaStyle.Render(s.Email))
		if s.SubscriptionType != "" {
			b.WriteString(metaStyle.Render(" · " + string(s.SubscriptionType)))
		}
		b.WriteString("\n")
	}
	return b.String()
}
