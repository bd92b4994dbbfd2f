package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/mentora/mentora/pkg/client"
	"github.com/mentora/mentora/pkg/domain"
)

type coursesLoadedMsg struct {
	identity string
	courses  []domain.Course
	err      error
}

// courseDetailMsg carries the full course record; the listing omits the
// long description.
type courseDetailMsg struct {
	identity string
	course   *domain.Course
	err      error
}

// enrolledMsg reports an enrollment write. The catalog is refetched only
// after the backend confirms.
type enrolledMsg struct {
	identity string
	title    string
	err      error
}

// levelFilters cycles "" (all) then each learning level.
var levelFilters = []domain.LearningLevel{
	"", domain.LevelFoundation, domain.LevelDevelopment, domain.LevelMastery,
}

type coursesModel struct {
	api      *client.Client
	identity string

	courses      []domain.Course
	cursor       int
	filter       int
	detail       bool
	detailCourse *domain.Course

	loading bool
	busy    bool
	info    string
	err     error
	width   int
	height  int
}

func newCoursesModel(api *client.Client) coursesModel {
	return coursesModel{api: api}
}

func (m coursesModel) activate(identity string) (coursesModel, tea.Cmd) {
	m.identity = identity
	m.loading = true
	m.detail = false
	m.info = ""
	m.err = nil
	return m, m.load()
}

func (m coursesModel) load() tea.Cmd {
	api := m.api
	identity := m.identity
	filter := client.CourseFilter{LearningLevel: levelFilters[m.filter]}
	return func() tea.Msg {
		courses, err := api.ListCourses(context.Background(), filter)
		return coursesLoadedMsg{identity: identity, courses: courses, err: err}
	}
}

func (m coursesModel) loadDetail(id uuid.UUID) tea.Cmd {
	api := m.api
	identity := m.identity
	return func() tea.Msg {
		course, err := api.GetCourse(context.Background(), id)
		return courseDetailMsg{identity: identity, course: course, err: err}
	}
}

func (m coursesModel) enroll(course domain.Course) tea.Cmd {
	api := m.api
	identity := m.identity
	return func() tea.Msg {
		err := api.Enroll(context.Background(), course.ID)
		return enrolledMsg{identity: identity, title: course.Title, err: err}
	}
}

func (m coursesModel) Update(msg tea.Msg) (coursesModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case coursesLoadedMsg:
		if msg.identity != m.identity {
			return m, nil
		}
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.courses = msg.courses
			if m.cursor >= len(m.courses) {
				m.cursor = 0
			}
		}
		return m, nil

	case courseDetailMsg:
		if msg.identity != m.identity || !m.detail {
			return m, nil
		}
		// The list row is already on screen; a detail fetch failure just
		// leaves the shorter version up.
		if msg.err == nil {
			m.detailCourse = msg.course
		}
		return m, nil

	case enrolledMsg:
		if msg.identity != m.identity {
			return m, nil
		}
		m.busy = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.info = "enrolled in " + msg.title
		m.detail = false
		m.detailCourse = nil
		m.loading = true
		return m, m.load()

	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		switch msg.String() {
		case "j", "down":
			if m.cursor < len(m.courses)-1 {
				m.cursor++
			}
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}
		case "enter":
			if len(m.courses) > 0 {
				m.detail = true
				m.detailCourse = nil
				return m, m.loadDetail(m.courses[m.cursor].ID)
			}
		case "esc":
			m.detail = false
			m.detailCourse = nil
		case "f":
			m.filter = (m.filter + 1) % len(levelFilters)
			m.cursor = 0
			m.loading = true
			m.err = nil
			return m, m.load()
		case "e":
			if m.detail && m.cursor < len(m.courses) {
				m.busy = true
				m.err = nil
				m.info = ""
				return m, m.enroll(m.courses[m.cursor])
			}
		case "r":
			m.loading = true
			m.err = nil
			return m, m.load()
		}
	}
	return m, nil
}

func (m coursesModel) View() string {
	if m.loading {
		return "\n " + dimStyle.Render("loading courses...")
	}
	if m.err != nil {
		return "\n " + errStyle.Render(client.ErrorMessage(m.err)) + "\n\n " + dimStyle.Render("r to retry")
	}
	if m.detail && m.cursor < len(m.courses) {
		if m.detailCourse != nil {
			return m.viewDetail(*m.detailCourse)
		}
		return m.viewDetail(m.courses[m.cursor])
	}

	var b strings.Builder
	title := "Courses"
	if lv := levelFilters[m.filter]; lv != "" {
		title += "  " + LevelStyle(lv).Render(string(lv))
	}
	b.WriteString("\n " + selectedStyle.Render(title) + "  " + metaStyle.Render("f to filter") + "\n")
	if m.info != "" {
		b.WriteString("\n " + okStyle.Render(m.info) + "\n")
	}
	b.WriteString("\n")

	if len(m.courses) == 0 {
		b.WriteString(" " + dimStyle.Render("no courses published for this filter") + "\n")
		return b.String()
	}

	for i, c := range m.courses {
		line := fmt.Sprintf("%s %s  %s",
			truncStr(c.Title, 40),
			LevelStyle(c.LearningLevel).Render(string(c.LearningLevel)),
			metaStyle.Render(fmt.Sprintf("★ %.1f · %d enrolled", c.AverageRating, c.EnrollmentCount)),
		)
		if c.IsPremium {
			line += " " + accentStyle.Render("premium")
		}
		if i == m.cursor {
			b.WriteString(" " + selectedStyle.Render("› ") + line + "\n")
		} else {
			b.WriteString("   " + line + "\n")
		}
	}
	return b.String()
}

func (m coursesModel) viewDetail(c domain.Course) string {
	var b strings.Builder
	b.WriteString("\n " + selectedStyle.Render(c.Title) + "\n\n")
	b.WriteString(" " + LevelStyle(c.LearningLevel).Render(string(c.LearningLevel)))
	b.WriteString(metaStyle.Render(fmt.Sprintf("  ages %s · difficulty %d/5", c.AgeGroup, c.DifficultyLevel)))
	if c.EstimatedHours > 0 {
		b.WriteString(metaStyle.Render(fmt.Sprintf(" · ~%dh", c.EstimatedHours)))
	}
	b.WriteString("\n\n " + c.Description + "\n")
	if len(c.SkillAreas) > 0 {
		areas := make([]string, len(c.SkillAreas))
		for i, a := range c.SkillAreas {
			areas[i] = strings.ReplaceAll(string(a), "_", " ")
		}
		b.WriteString("\n " + metaStyle.Render("skills: ") + strings.Join(areas, ", ") + "\n")
	}
	if m.busy {
		b.WriteString("\n " + dimStyle.Render("enrolling...") + "\n")
	}
	return b.String()
}
