package tui

import (
	"context"
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/mentora/mentora/pkg/client"
	"github.com/mentora/mentora/pkg/domain"
)

// dashboardLoadedMsg carries everything the dashboard renders, fetched
// together so the stats and enrollment panels never show data from two
// different moments. identity tags who the data was fetched for.
type dashboardLoadedMsg struct {
	identity    string
	stats       *domain.DashboardStats
	enrollments []domain.Enrollment
	path        *domain.LearningPath
	err         error
}

type frameworkLoadedMsg struct {
	identity  string
	framework map[string]domain.FrameworkLevel
	err       error
}

type dashboardModel struct {
	api      *client.Client
	identity string

	user        *domain.Profile
	stats       *domain.DashboardStats
	enrollments []domain.Enrollment
	path        *domain.LearningPath

	framework     map[string]domain.FrameworkLevel
	frameworkOpen bool

	loading bool
	err     error
	width   int
	height  int
}

func newDashboardModel(api *client.Client) dashboardModel {
	return dashboardModel{api: api}
}

// activate marks the model current for the given identity and kicks off the
// joined fetch. Stale responses from a previous identity are discarded in
// Update.
func (m dashboardModel) activate(identity string, user *domain.Profile) (dashboardModel, tea.Cmd) {
	m.identity = identity
	m.user = user
	m.loading = true
	m.frameworkOpen = false
	m.err = nil
	return m, m.load()
}

func (m dashboardModel) loadFramework() tea.Cmd {
	api := m.api
	identity := m.identity
	return func() tea.Msg {
		framework, err := api.LearningFramework(context.Background())
		return frameworkLoadedMsg{identity: identity, framework: framework, err: err}
	}
}

func (m dashboardModel) load() tea.Cmd {
	api := m.api
	identity := m.identity
	student := m.user != nil && m.user.Role == domain.RoleStudent
	return func() tea.Msg {
		out := dashboardLoadedMsg{identity: identity}
		g, ctx := errgroup.WithContext(context.Background())
		g.Go(func() error {
			stats, err := api.Dashboard(ctx)
			if err != nil {
				return err
			}
			out.stats = stats
			return nil
		})
		g.Go(func() error {
			enrollments, err := api.MyEnrollments(ctx)
			if err != nil {
				return err
			}
			out.enrollments = enrollments
			return nil
		})
		if student {
			g.Go(func() error {
				path, err := api.LearningPath(ctx)
				if err != nil {
					return err
				}
				out.path = path
				return nil
			})
		}
		out.err = g.Wait()
		return out
	}
}

func (m dashboardModel) Update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case dashboardLoadedMsg:
		if msg.identity != m.identity {
			// Fetched for a previous user; drop it.
			return m, nil
		}
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.stats = msg.stats
			m.enrollments = msg.enrollments
			m.path = msg.path
		}
		return m, nil

	case frameworkLoadedMsg:
		if msg.identity != m.identity {
			return m, nil
		}
		if msg.err == nil {
			m.framework = msg.framework
			m.frameworkOpen = true
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			m.loading = true
			m.err = nil
			return m, m.load()
		case "f":
			if m.frameworkOpen {
				m.frameworkOpen = false
				return m, nil
			}
			if m.framework != nil {
				m.frameworkOpen = true
				return m, nil
			}
			return m, m.loadFramework()
		case "esc":
			m.frameworkOpen = false
		}
	}
	return m, nil
}

func (m dashboardModel) View() string {
	if m.loading {
		return "\n " + dimStyle.Render("loading dashboard...")
	}
	if m.err != nil {
		return "\n " + errStyle.Render(client.ErrorMessage(m.err)) + "\n\n " + dimStyle.Render("r to retry")
	}
	if m.frameworkOpen {
		return m.viewFramework()
	}
	if m.stats == nil {
		return "\n " + dimStyle.Render("nothing to show yet")
	}

	var b strings.Builder
	s := m.stats

	b.WriteString("\n " + selectedStyle.Render("Overview") + "\n\n")
	b.WriteString(fmt.Sprintf("   %s %s   %s %s   %s %s   %s %s\n",
		accentStyle.Render(fmt.Sprintf("%d", s.EnrolledCourses)), metaStyle.Render("enrolled"),
		accentStyle.Render(fmt.Sprintf("%d", s.CompletedCourses)), metaStyle.Render("completed"),
		accentStyle.Render(formatMinutes(s.TotalLearningTime)), metaStyle.Render("learning time"),
		accentStyle.Render(fmt.Sprintf("%d", s.CurrentStreak)), metaStyle.Render("day streak"),
	))
	b.WriteString(fmt.Sprintf("\n   %s %s %.0f%%\n",
		metaStyle.Render("level completion"),
		progressBar(int(s.LevelCompletion), 24),
		s.LevelCompletion,
	))

	if len(s.SkillProgress) > 0 {
		b.WriteString("\n " + selectedStyle.Render("Skills") + "\n\n")
		skills := make([]string, 0, len(s.SkillProgress))
		for skill := range s.SkillProgress {
			skills = append(skills, skill)
		}
		sort.Strings(skills)
		for _, skill := range skills {
			pct := s.SkillProgress[skill]
			b.WriteString(fmt.Sprintf("   %-26s %s %3d%%\n",
				strings.ReplaceAll(skill, "_", " "), progressBar(pct, 16), pct))
		}
	}

	b.WriteString("\n " + selectedStyle.Render("My courses") + "\n\n")
	if len(m.enrollments) == 0 {
		b.WriteString("   " + dimStyle.Render("no enrollments yet, see Courses (2)") + "\n")
	}
	for _, e := range m.enrollments {
		b.WriteString(fmt.Sprintf("   %s %3d%%  %s  %s\n",
			progressBar(e.Progress, 12), e.Progress, truncStr(e.CourseTitle, 44),
			metaStyle.Render(formatTime(e.EnrolledAt))))
	}

	b.WriteString("\n " + metaStyle.Render("f to view the learning framework") + "\n")

	if m.path != nil && len(m.path.CurrentFocusAreas) > 0 {
		areas := make([]string, len(m.path.CurrentFocusAreas))
		for i, a := range m.path.CurrentFocusAreas {
			areas[i] = strings.ReplaceAll(string(a), "_", " ")
		}
		b.WriteString("\n " + metaStyle.Render("focus areas: ") + strings.Join(areas, ", ") + "\n")
	}

	return b.String()
}

// frameworkOrder fixes the tier display order; unknown keys sort last.
var frameworkOrder = map[string]int{
	string(domain.LevelFoundation):  0,
	string(domain.LevelDevelopment): 1,
	string(domain.LevelMastery):     2,
}

func (m dashboardModel) viewFramework() string {
	keys := make([]string, 0, len(m.framework))
	for k := range m.framework {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		oi, iok := frameworkOrder[keys[i]]
		oj, jok := frameworkOrder[keys[j]]
		if iok != jok {
			return iok
		}
		if oi != oj {
			return oi < oj
		}
		return keys[i] < keys[j]
	})

	var b strings.Builder
	b.WriteString("\n " + selectedStyle.Render("Learning framework") + "  " + metaStyle.Render("esc to close") + "\n")
	for _, k := range keys {
		lv := m.framework[k]
		b.WriteString("\n " + LevelStyle(domain.LearningLevel(k)).Render(lv.LevelName) +
			metaStyle.Render("  ages "+lv.AgeRange) + "\n")
		b.WriteString("   " + normalStyle.Render(lv.Description) + "\n")
		if len(lv.CoreSkills) > 0 {
			b.WriteString("   " + metaStyle.Render("core: ") + strings.Join(lv.CoreSkills, ", ") + "\n")
		}
		if len(lv.FutureReadiness) > 0 {
			b.WriteString("   " + metaStyle.Render("future: ") + strings.Join(lv.FutureReadiness, ", ") + "\n")
		}
	}
	return b.String()
}
