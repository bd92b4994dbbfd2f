package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mentora/mentora/internal/session"
	"github.com/mentora/mentora/internal/validate"
	"github.com/mentora/mentora/pkg/client"
	"github.com/mentora/mentora/pkg/domain"
)

// loginResultMsg reports the outcome of a login attempt. The root model
// consumes successes; failures fall through to the form for display.
type loginResultMsg struct {
	sess session.Session
	err  error
}

type registerResultMsg struct {
	email string
	err   error
}

type loginForm struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type registerForm struct {
	FullName string `json:"full_name" validate:"required,notblank,max=120"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginModel struct {
	store *session.Store

	email    string
	password string

	regName     string
	regEmail    string
	regPassword string
	regRole     int
	regAge      int

	focus      int
	registerOn bool
	busy       bool
	errs       []string
	info       string
}

var registerRoles = []domain.Role{domain.RoleStudent, domain.RoleTeacher}

func newLoginModel(store *session.Store) loginModel {
	return loginModel{store: store}
}

func (m loginModel) fieldCount() int {
	if m.registerOn {
		return 5
	}
	return 2
}

func (m loginModel) submitLogin() tea.Cmd {
	form := loginForm{Email: strings.TrimSpace(m.email), Password: m.password}
	if err := validate.Struct(form); err != nil {
		msgs := validate.Messages(err)
		return func() tea.Msg {
			return loginResultMsg{err: fmt.Errorf("%s", strings.Join(msgs, "; "))}
		}
	}
	store := m.store
	return func() tea.Msg {
		err := store.Login(context.Background(), form.Email, form.Password)
		return loginResultMsg{sess: store.Session(), err: err}
	}
}

func (m loginModel) submitRegister() tea.Cmd {
	form := registerForm{
		FullName: strings.TrimSpace(m.regName),
		Email:    strings.TrimSpace(m.regEmail),
		Password: m.regPassword,
	}
	if err := validate.Struct(form); err != nil {
		msgs := validate.Messages(err)
		return func() tea.Msg {
			return registerResultMsg{err: fmt.Errorf("%s", strings.Join(msgs, "; "))}
		}
	}
	store := m.store
	req := client.RegisterRequest{
		Email:    form.Email,
		Password: form.Password,
		FullName: form.FullName,
		Role:     registerRoles[m.regRole],
		AgeGroup: domain.AgeGroups[m.regAge],
	}
	return func() tea.Msg {
		_, err := store.Register(context.Background(), req)
		return registerResultMsg{email: req.Email, err: err}
	}
}

func (m loginModel) Update(msg tea.Msg) (loginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case loginResultMsg:
		m.busy = false
		if msg.err != nil {
			m.errs = strings.Split(msg.err.Error(), "; ")
		}
		return m, nil

	case registerResultMsg:
		m.busy = false
		if msg.err != nil {
			m.errs = strings.Split(msg.err.Error(), "; ")
			return m, nil
		}
		m.registerOn = false
		m.focus = 0
		m.errs = nil
		m.email = msg.email
		m.password = ""
		m.info = "account created, log in to continue"
		return m, nil

	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		switch msg.String() {
		case "tab", "down":
			m.focus = (m.focus + 1) % m.fieldCount()
			return m, nil
		case "shift+tab", "up":
			m.focus = (m.focus + m.fieldCount() - 1) % m.fieldCount()
			return m, nil
		case "enter":
			m.busy = true
			m.errs = nil
			m.info = ""
			if m.registerOn {
				return m, m.submitRegister()
			}
			return m, m.submitLogin()
		case "left", "right":
			if m.registerOn {
				d := 1
				if msg.String() == "left" {
					d = -1
				}
				switch m.focus {
				case 3:
					m.regRole = (m.regRole + d + len(registerRoles)) % len(registerRoles)
				case 4:
					m.regAge = (m.regAge + d + len(domain.AgeGroups)) % len(domain.AgeGroups)
				}
			}
			return m, nil
		}
		if m.registerOn {
			switch m.focus {
			case 0:
				m.regName = editRune(m.regName, msg.String())
			case 1:
				m.regEmail = editRune(m.regEmail, msg.String())
			case 2:
				m.regPassword = editRune(m.regPassword, msg.String())
			}
		} else {
			switch m.focus {
			case 0:
				m.email = editRune(m.email, msg.String())
			case 1:
				m.password = editRune(m.password, msg.String())
			}
		}
	}
	return m, nil
}

func field(label, value string, focused, masked bool) string {
	prompt := "  "
	if focused {
		prompt = inputPromptStyle.Render("> ")
	}
	shown := value
	if masked {
		shown = strings.Repeat("*", len([]rune(value)))
	}
	if shown == "" && !focused {
		shown = inputPlaceholderStyle.Render(label)
		return prompt + shown
	}
	return prompt + metaStyle.Render(label+": ") + shown
}

func (m loginModel) View() string {
	var b strings.Builder
	b.WriteString("\n " + selectedStyle.Render("Log in") + "\n\n")
	b.WriteString(" " + field("email", m.email, m.focus == 0, false) + "\n")
	b.WriteString(" " + field("password", m.password, m.focus == 1, true) + "\n")
	if m.busy {
		b.WriteString("\n " + dimStyle.Render("signing in...") + "\n")
	}
	if m.info != "" {
		b.WriteString("\n " + okStyle.Render(m.info) + "\n")
	}
	for _, e := range m.errs {
		b.WriteString("\n " + errStyle.Render(e))
	}
	return b.String()
}

func (m loginModel) viewRegister() string {
	var b strings.Builder
	b.WriteString("\n " + selectedStyle.Render("Create account") + "\n\n")
	b.WriteString(" " + field("full name", m.regName, m.focus == 0, false) + "\n")
	b.WriteString(" " + field("email", m.regEmail, m.focus == 1, false) + "\n")
	b.WriteString(" " + field("password", m.regPassword, m.focus == 2, true) + "\n")
	b.WriteString(" " + chooser("role", string(registerRoles[m.regRole]), m.focus == 3) + "\n")
	b.WriteString(" " + chooser("age group", string(domain.AgeGroups[m.regAge]), m.focus == 4) + "\n")
	if m.busy {
		b.WriteString("\n " + dimStyle.Render("creating account...") + "\n")
	}
	for _, e := range m.errs {
		b.WriteString("\n " + errStyle.Render(e))
	}
	return b.String()
}

func chooser(label, value string, focused bool) string {
	prompt := "  "
	val := value
	if focused {
		prompt = inputPromptStyle.Render("> ")
		val = accentStyle.Render("← " + value + " →")
	}
	return prompt + metaStyle.Render(label+": ") + val
}
