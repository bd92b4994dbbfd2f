package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mentora/mentora/internal/i18n"
	"github.com/mentora/mentora/internal/session"
	"github.com/mentora/mentora/pkg/client"
	"github.com/mentora/mentora/pkg/domain"
)

type view int

const (
	viewLogin view = iota
	viewRegister
	viewDashboard
	viewCourses
	viewWorkouts
	viewStudents
	viewEnroll
)

// requiredRole maps views to the role they demand. Empty means any
// authenticated user; absent means the view is public.
var requiredRole = map[view]domain.Role{
	viewDashboard: "",
	viewCourses:   "",
	viewWorkouts:  "",
	viewStudents:  domain.RoleTeacher,
}

// logoTickMsg drives the header animation.
type logoTickMsg time.Time

func logoTickCmd() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return logoTickMsg(t)
	})
}

// sessionMsg carries a fresh session snapshot after an auth operation.
type sessionMsg struct {
	sess session.Session
}

// App is the root Bubbletea model. It owns the session snapshot and routes
// every navigation through the authorization gate.
type App struct {
	store *session.Store
	api   *client.Client
	loc   i18n.Locale

	sess session.Session
	view view

	login     loginModel
	dashboard dashboardModel
	courses   coursesModel
	workouts  workoutsModel
	students  studentsModel
	enroll    checkoutModel

	width  int
	height int
	frame  int
}

// NewApp creates the TUI application. The store must not have been
// initialized yet; the App drives initialization so a loading view renders
// meanwhile.
func NewApp(store *session.Store, api *client.Client, loc i18n.Locale) App {
	return App{
		store:     store,
		api:       api,
		loc:       loc,
		sess:      session.Session{Loading: true},
		login:     newLoginModel(store),
		dashboard: newDashboardModel(api),
		courses:   newCoursesModel(api),
		workouts:  newWorkoutsModel(api),
		students:  newStudentsModel(api),
		enroll:    newCheckoutModel(api, loc),
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(logoTickCmd(), a.initSession())
}

func (a App) initSession() tea.Cmd {
	store := a.store
	return func() tea.Msg {
		store.Initialize(context.Background())
		return sessionMsg{sess: store.Session()}
	}
}

func (a App) logout() tea.Cmd {
	store := a.store
	return func() tea.Msg {
		store.Logout(context.Background())
		return sessionMsg{sess: store.Session()}
	}
}

// identity returns the fetch key for the active user; data fetched under a
// different identity must never reach the current views.
func (a App) identity() string {
	if a.sess.User != nil {
		return a.sess.User.ID.String()
	}
	return ""
}

// navigate runs the authorization gate for the target view and either
// activates it or redirects. Called on every navigation; the decision is
// never cached.
func (a App) navigate(target view) (App, tea.Cmd) {
	if required, gated := requiredRole[target]; gated {
		switch session.Authorize(a.sess, required) {
		case session.ShowLoading:
			return a, nil
		case session.RedirectToLogin:
			a.view = viewLogin
			return a, nil
		case session.RedirectToDefault:
			target = viewDashboard
		}
	}

	if a.view == viewEnroll && target != viewEnroll {
		// Checkout state is transient; leaving the view discards it.
		a.enroll = newCheckoutModel(a.api, a.loc)
	}

	a.view = target
	id := a.identity()
	var cmd tea.Cmd
	switch target {
	case viewDashboard:
		a.dashboard, cmd = a.dashboard.activate(id, a.sess.User)
	case viewCourses:
		a.courses, cmd = a.courses.activate(id)
	case viewWorkouts:
		a.workouts, cmd = a.workouts.activate(id)
	case viewStudents:
		a.students, cmd = a.students.activate(id)
	case viewEnroll:
		a.enroll = newCheckoutModel(a.api, a.loc)
	}
	return a, cmd
}

func (a App) isEditing() bool {
	switch a.view {
	case viewLogin, viewRegister, viewEnroll:
		return true
	}
	return false
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Chrome: header(2) + tabs(1) + help(1) = 4 lines
		bodyMsg := tea.WindowSizeMsg{Width: msg.Width, Height: msg.Height - 4}
		a.dashboard, _ = a.dashboard.Update(bodyMsg)
		a.courses, _ = a.courses.Update(bodyMsg)
		a.workouts, _ = a.workouts.Update(bodyMsg)
		a.students, _ = a.students.Update(bodyMsg)
		a.enroll, _ = a.enroll.Update(bodyMsg)
		return a, nil

	case logoTickMsg:
		a.frame++
		return a, logoTickCmd()

	case sessionMsg:
		a.sess = msg.sess
		if a.sess.LoggedIn() {
			return a.navigate(viewDashboard)
		}
		a.view = viewLogin
		return a, nil

	case loginResultMsg:
		if msg.err == nil {
			a.sess = msg.sess
			a.login = newLoginModel(a.store)
			return a.navigate(viewDashboard)
		}
		var cmd tea.Cmd
		a.login, cmd = a.login.Update(msg)
		return a, cmd

	case registerResultMsg:
		var cmd tea.Cmd
		a.login, cmd = a.login.Update(msg)
		if msg.err == nil && a.view == viewRegister {
			// Account created; back to login, session not established.
			a.view = viewLogin
		}
		return a, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if !a.isEditing() {
			switch msg.String() {
			case "q":
				return a, tea.Quit
			case "1":
				return a.navigate(viewDashboard)
			case "2":
				return a.navigate(viewCourses)
			case "3":
				return a.navigate(viewWorkouts)
			case "4":
				return a.navigate(viewStudents)
			case "e":
				if a.view == viewCourses && a.courses.detail {
					// Course-detail enroll; the courses model owns it.
					break
				}
				return a.navigate(viewEnroll)
			case "ctrl+l":
				if a.sess.LoggedIn() {
					return a, a.logout()
				}
			}
		} else {
			switch a.view {
			case viewLogin:
				if msg.String() == "ctrl+r" {
					a.view = viewRegister
					a.login.registerOn = true
					a.login.focus = 0
					return a, nil
				}
				if msg.String() == "ctrl+e" {
					return a.navigate(viewEnroll)
				}
			case viewRegister:
				if msg.String() == "esc" {
					a.view = viewLogin
					a.login.registerOn = false
					a.login.focus = 0
					return a, nil
				}
			case viewEnroll:
				var cmd tea.Cmd
				a.enroll, cmd = a.enroll.Update(msg)
				if a.enroll.closed {
					if a.sess.LoggedIn() {
						return a.navigate(viewDashboard)
					}
					a.enroll = newCheckoutModel(a.api, a.loc)
					a.view = viewLogin
					return a, nil
				}
				return a, cmd
			}
		}
	}

	var cmd tea.Cmd
	switch a.view {
	case viewLogin, viewRegister:
		a.login, cmd = a.login.Update(msg)
	case viewDashboard:
		a.dashboard, cmd = a.dashboard.Update(msg)
	case viewCourses:
		a.courses, cmd = a.courses.Update(msg)
	case viewWorkouts:
		a.workouts, cmd = a.workouts.Update(msg)
	case viewStudents:
		a.students, cmd = a.students.Update(msg)
	case viewEnroll:
		a.enroll, cmd = a.enroll.Update(msg)
	}
	return a, cmd
}

func (a App) View() string {
	logo := renderLogo(a.frame)
	logoWidth := lipgloss.Width(logo)
	logoPad := (a.width - logoWidth) / 2
	if logoPad < 0 {
		logoPad = 0
	}
	header := strings.Repeat(" ", logoPad) + logo

	// Second header line: user identity, or the localized tagline.
	var sub string
	if a.sess.User != nil {
		u := a.sess.User
		parts := []string{u.FullName, RoleStyle(u.Role).Render(string(u.Role))}
		if u.LearningLevel != "" {
			parts = append(parts, LevelStyle(u.LearningLevel).Render(string(u.LearningLevel)))
		}
		sub = metaStyle.Render(strings.Join(parts, " · "))
	} else {
		sub = metaStyle.Render(i18n.T(a.loc, "tagline"))
	}
	subPad := (a.width - lipgloss.Width(sub)) / 2
	if subPad < 0 {
		subPad = 0
	}
	header += "\n" + strings.Repeat(" ", subPad) + sub

	tabBar := a.renderTabs()

	if a.sess.Loading {
		body := "\n " + dimStyle.Render("loading session...")
		return fmt.Sprintf("%s\n%s\n%s\n%s", header, tabBar, body, "")
	}

	var body, help string
	switch a.view {
	case viewLogin:
		body = a.login.View()
		help = " " + helpEntry("tab", "next field") + "  " + helpEntry("enter", "log in") + "  " + helpEntry("ctrl+r", "register") + "  " + helpEntry("ctrl+e", "enroll") + "  " + helpEntry("ctrl+c", "quit")
	case viewRegister:
		body = a.login.viewRegister()
		help = " " + helpEntry("tab", "next field") + "  " + helpEntry("enter", "create account") + "  " + helpEntry("esc", "back") + "  " + helpEntry("ctrl+c", "quit")
	case viewDashboard:
		body = a.dashboard.View()
		help = " " + a.navHelp() + helpEntry("f", "framework") + "  " + helpEntry("ctrl+l", "log out") + "  " + helpEntry("q", "quit")
	case viewCourses:
		body = a.courses.View()
		if a.courses.detail {
			help = " " + helpEntry("e", "enroll") + "  " + helpEntry("esc", "back")
		} else {
			help = " " + a.navHelp() + helpEntry("j/k", "nav") + "  " + helpEntry("enter", "detail") + "  " + helpEntry("q", "quit")
		}
	case viewWorkouts:
		body = a.workouts.View()
		help = " " + a.navHelp() + helpEntry("j/k", "nav") + "  " + helpEntry("enter", "start attempt") + "  " + helpEntry("q", "quit")
	case viewStudents:
		body = a.students.View()
		help = " " + a.navHelp() + helpEntry("j/k", "nav") + "  " + helpEntry("q", "quit")
	case viewEnroll:
		body = a.enroll.View()
		help = " " + a.enroll.helpKeys()
	}

	chrome := 4
	body = strings.TrimRight(truncateToHeight(body, a.height-chrome), "\n")

	return fmt.Sprintf("%s\n%s\n%s\n%s", header, tabBar, body, help)
}

func (a App) navHelp() string {
	if a.sess.User != nil && a.sess.User.Role != domain.RoleStudent {
		return helpEntry("1-4", "tabs") + "  "
	}
	return helpEntry("1-3", "tabs") + "  "
}

func (a App) renderTabs() string {
	if !a.sess.LoggedIn() {
		return ""
	}

	type tabEntry struct {
		key  string
		name string
		v    view
	}
	tabs := []tabEntry{
		{"1", "Dashboard", viewDashboard},
		{"2", "Courses", viewCourses},
		{"3", "Workouts", viewWorkouts},
	}
	if a.sess.User.Role == domain.RoleTeacher || a.sess.User.Role == domain.RoleAdmin {
		tabs = append(tabs, tabEntry{"4", "Students", viewStudents})
	}

	colWidth := a.width / len(tabs)
	var bar strings.Builder
	for _, t := range tabs {
		var label string
		if t.v == a.view {
			label = accentStyle.Render(t.key) + " " + selectedStyle.Underline(true).Render(t.name)
		} else {
			label = metaStyle.Render(t.key) + " " + dimStyle.Render(t.name)
		}
		labelWidth := lipgloss.Width(label)
		leftPad := (colWidth - labelWidth) / 2
		if leftPad < 0 {
			leftPad = 0
		}
		rightPad := colWidth - labelWidth - leftPad
		if rightPad < 0 {
			rightPad = 0
		}
		bar.WriteString(strings.Repeat(" ", leftPad) + label + strings.Repeat(" ", rightPad))
	}
	return bar.String()
}
