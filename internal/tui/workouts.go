package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/mentora/mentora/pkg/client"
	"github.com/mentora/mentora/pkg/domain"
)

type workoutsLoadedMsg struct {
	identity string
	workouts []domain.Workout
	report   *client.WorkoutProgressReport
	err      error
}

type attemptStartedMsg struct {
	identity string
	message  string
	err      error
}

type workoutsModel struct {
	api      *client.Client
	identity string

	workouts []domain.Workout
	report   *client.WorkoutProgressReport
	cursor   int

	loading bool
	busy    bool
	info    string
	err     error
	width   int
	height  int
}

func newWorkoutsModel(api *client.Client) workoutsModel {
	return workoutsModel{api: api}
}

func (m workoutsModel) activate(identity string) (workoutsModel, tea.Cmd) {
	m.identity = identity
	m.loading = true
	m.info = ""
	m.err = nil
	return m, m.load()
}

func (m workoutsModel) load() tea.Cmd {
	api := m.api
	identity := m.identity
	return func() tea.Msg {
		out := workoutsLoadedMsg{identity: identity}
		g, ctx := errgroup.WithContext(context.Background())
		g.Go(func() error {
			workouts, err := api.ListWorkouts(ctx, client.WorkoutFilter{})
			if err != nil {
				return err
			}
			out.workouts = workouts
			return nil
		})
		g.Go(func() error {
			report, err := api.WorkoutProgress(ctx)
			if err != nil {
				return err
			}
			out.report = report
			return nil
		})
		out.err = g.Wait()
		return out
	}
}

func (m workoutsModel) startAttempt(w domain.Workout) tea.Cmd {
	api := m.api
	identity := m.identity
	return func() tea.Msg {
		started, err := api.StartWorkoutAttempt(context.Background(), w.ID)
		msg := attemptStartedMsg{identity: identity, err: err}
		if started != nil {
			msg.message = started.Message
		}
		return msg
	}
}

func (m workoutsModel) Update(msg tea.Msg) (workoutsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case workoutsLoadedMsg:
		if msg.identity != m.identity {
			return m, nil
		}
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.workouts = msg.workouts
			m.report = msg.report
			if m.cursor >= len(m.workouts) {
				m.cursor = 0
			}
		}
		return m, nil

	case attemptStartedMsg:
		if msg.identity != m.identity {
			return m, nil
		}
		m.busy = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.info = msg.message
		if m.info == "" {
			m.info = "attempt started"
		}
		// Progress counts changed on the backend; refetch.
		m.loading = true
		return m, m.load()

	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		switch msg.String() {
		case "j", "down":
			if m.cursor < len(m.workouts)-1 {
				m.cursor++
			}
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}
		case "enter":
			if m.cursor < len(m.workouts) {
				m.busy = true
				m.err = nil
				m.info = ""
				return m, m.startAttempt(m.workouts[m.cursor])
			}
		case "r":
			m.loading = true
			m.err = nil
			return m, m.load()
		}
	}
	return m, nil
}

func (m workoutsModel) View() string {
	if m.loading {
		return "\n " + dimStyle.Render("loading workouts...")
	}
	if m.err != nil {
		return "\n " + errStyle.Render(client.ErrorMessage(m.err)) + "\n\n " + dimStyle.Render("r to retry")
	}

	var b strings.Builder
	b.WriteString("\n " + selectedStyle.Render("Logical thinking workouts") + "\n")
	if m.info != "" {
		b.WriteString("\n " + okStyle.Render(m.info) + "\n")
	}
	b.WriteString("\n")

	if len(m.workouts) == 0 {
		b.WriteString(" " + dimStyle.Render("no workouts available for your level") + "\n")
	}
	for i, w := range m.workouts {
		line := fmt.Sprintf("%s  %s %s  %s",
			truncStr(w.Title, 36),
			metaStyle.Render(strings.ReplaceAll(string(w.WorkoutType), "_", " ")),
			accentStyle.Render(string(w.Difficulty)),
			metaStyle.Render(fmt.Sprintf("~%dm", w.EstimatedTime)),
		)
		if i == m.cursor {
			b.WriteString(" " + selectedStyle.Render("› ") + line + "\n")
		} else {
			b.WriteString("   " + line + "\n")
		}
	}

	if m.report != nil && len(m.report.ProgressByType) > 0 {
		b.WriteString("\n " + selectedStyle.Render("Mastery") + "  " +
			metaStyle.Render(fmt.Sprintf("%d attempts total", m.report.TotalAttempts)) + "\n\n")
		for _, p := range m.report.ProgressByType {
			b.WriteString(fmt.Sprintf("   %-24s %s %3d%%  %s\n",
				strings.ReplaceAll(string(p.WorkoutType), "_", " "),
				progressBar(p.MasteryLevel, 14), p.MasteryLevel,
				metaStyle.Render(fmt.Sprintf("%d/%d correct", p.SuccessfulAttempts, p.TotalAttempts)),
			))
		}
	}
	return b.String()
}
