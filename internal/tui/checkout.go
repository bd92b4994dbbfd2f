package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mentora/mentora/internal/browser"
	"github.com/mentora/mentora/internal/i18n"
	"github.com/mentora/mentora/internal/validate"
	"github.com/mentora/mentora/pkg/client"
	"github.com/mentora/mentora/pkg/domain"
)

// checkoutState is the enrollment flow's state. Transitions only move
// forward through submit, except Failed, which returns to method selection
// with every entered field intact.
type checkoutState int

const (
	coFormEntry checkoutState = iota
	coMethodSelected
	coProcessing
	coRedirected
	coBankShown
	coFailed
)

type payMethod int

const (
	methodCard payMethod = iota
	methodBank
)

// Settlement account shown on the bank-transfer instructions.
const (
	bankName      = "Commercial Bank of Ceylon"
	bankBranch    = "Kollupitiya (Colombo 03)"
	bankAccName   = "Mentora Learning (Pvt) Ltd"
	bankAccNumber = "8001234567"
)

type enrollForm struct {
	StudentName  string `json:"student_name" validate:"required,notblank,max=120"`
	ParentName   string `json:"parent_name" validate:"required,notblank,max=120"`
	Email        string `json:"email" validate:"required,email"`
	Phone        string `json:"phone" validate:"required,min=9,max=15"`
	Address      string `json:"address" validate:"required_if=BillingCycle quarterly"`
	BillingCycle string `json:"billing_cycle"`
}

// checkoutResultMsg reports the backend's answer to a submission. Only a
// model still in Processing consumes it; anything later is a leftover from
// a discarded flow.
type checkoutResultMsg struct {
	method    payMethod
	url       string
	openErr   bool
	reference string
	message   string
	err       error
}

type checkoutModel struct {
	api *client.Client
	loc i18n.Locale

	state  checkoutState
	method payMethod
	closed bool

	program int
	cycle   domain.BillingCycle

	studentName string
	parentName  string
	email       string
	phone       string
	address     string

	focus int
	errs  []string

	// terminal-state payload
	url       string
	openErr   bool
	reference string
	message   string
	copied    bool

	width  int
	height int
}

const checkoutFields = 7 // program, cycle, then the five text fields

func newCheckoutModel(api *client.Client, loc i18n.Locale) checkoutModel {
	return checkoutModel{api: api, loc: loc, cycle: domain.CycleMonthly}
}

func (m checkoutModel) form() enrollForm {
	return enrollForm{
		StudentName:  strings.TrimSpace(m.studentName),
		ParentName:   strings.TrimSpace(m.parentName),
		Email:        strings.TrimSpace(m.email),
		Phone:        strings.TrimSpace(m.phone),
		Address:      strings.TrimSpace(m.address),
		BillingCycle: string(m.cycle),
	}
}

func (m checkoutModel) submit() tea.Cmd {
	api := m.api
	method := m.method
	form := m.form()
	program := domain.Programs[m.program]
	req := client.CheckoutRequest{
		StudentName:  form.StudentName,
		ParentName:   form.ParentName,
		Email:        form.Email,
		Phone:        form.Phone,
		Address:      form.Address,
		ProgramID:    program.ID,
		AgeGroup:     program.AgeRange,
		BillingCycle: m.cycle,
		Amount:       program.Price(m.cycle),
	}
	return func() tea.Msg {
		ctx := context.Background()
		if method == methodCard {
			session, err := api.CreateCheckout(ctx, req)
			if err != nil {
				return checkoutResultMsg{method: method, err: err}
			}
			openErr := browser.Open(session.CheckoutURL) != nil
			return checkoutResultMsg{method: method, url: session.CheckoutURL, openErr: openErr}
		}
		result, err := api.CreateBankTransfer(ctx, req)
		if err != nil {
			return checkoutResultMsg{method: method, err: err}
		}
		return checkoutResultMsg{
			method:    method,
			reference: result.EnrollmentID,
			message:   result.Message,
		}
	}
}

func (m checkoutModel) Update(msg tea.Msg) (checkoutModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case checkoutResultMsg:
		if m.state != coProcessing {
			return m, nil
		}
		if msg.err != nil {
			m.state = coFailed
			m.errs = []string{client.ErrorMessage(msg.err)}
			return m, nil
		}
		if msg.method == methodCard {
			m.state = coRedirected
			m.url = msg.url
			m.openErr = msg.openErr
		} else {
			m.state = coBankShown
			m.reference = msg.reference
			m.message = msg.message
		}
		return m, nil

	case tea.KeyMsg:
		switch m.state {
		case coFormEntry:
			return m.updateForm(msg)
		case coMethodSelected:
			switch msg.String() {
			case "h", "l", "left", "right":
				if m.method == methodCard {
					m.method = methodBank
				} else {
					m.method = methodCard
				}
			case "enter":
				m.state = coProcessing
				m.errs = nil
				return m, m.submit()
			case "esc":
				m.state = coFormEntry
			}
		case coProcessing:
			// No way out; the result message decides where we land.
		case coFailed:
			switch msg.String() {
			case "r":
				// Retry keeps every entered field; only the method is
				// re-chosen.
				m.state = coMethodSelected
				m.errs = nil
			case "esc":
				m.closed = true
			}
		case coBankShown:
			switch msg.String() {
			case "c":
				if clipboard.WriteAll(m.reference) == nil {
					m.copied = true
				}
			case "esc", "enter":
				m.closed = true
			}
		case coRedirected:
			switch msg.String() {
			case "esc", "enter":
				m.closed = true
			}
		}
	}
	return m, nil
}

func (m checkoutModel) updateForm(msg tea.KeyMsg) (checkoutModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closed = true
		return m, nil
	case "tab", "down":
		m.focus = (m.focus + 1) % checkoutFields
		return m, nil
	case "shift+tab", "up":
		m.focus = (m.focus + checkoutFields - 1) % checkoutFields
		return m, nil
	case "enter":
		if err := validate.Struct(m.form()); err != nil {
			m.errs = validate.Messages(err)
			return m, nil
		}
		m.errs = nil
		m.state = coMethodSelected
		return m, nil
	case "left", "right":
		d := 1
		if msg.String() == "left" {
			d = -1
		}
		switch m.focus {
		case 0:
			m.program = (m.program + d + len(domain.Programs)) % len(domain.Programs)
		case 1:
			if m.cycle == domain.CycleMonthly {
				m.cycle = domain.CycleQuarterly
			} else {
				m.cycle = domain.CycleMonthly
			}
		}
		return m, nil
	}
	switch m.focus {
	case 2:
		m.studentName = editRune(m.studentName, msg.String())
	case 3:
		m.parentName = editRune(m.parentName, msg.String())
	case 4:
		m.email = editRune(m.email, msg.String())
	case 5:
		m.phone = editRune(m.phone, msg.String())
	case 6:
		m.address = editRune(m.address, msg.String())
	}
	return m, nil
}

func (m checkoutModel) helpKeys() string {
	switch m.state {
	case coFormEntry:
		return helpEntry("tab", "next field") + "  " + helpEntry("←/→", "choose") + "  " + helpEntry("enter", "continue") + "  " + helpEntry("esc", "close")
	case coMethodSelected:
		return helpEntry("←/→", "method") + "  " + helpEntry("enter", "confirm") + "  " + helpEntry("esc", "back")
	case coProcessing:
		return helpEntry("ctrl+c", "quit")
	case coBankShown:
		return helpEntry("c", "copy reference") + "  " + helpEntry("esc", "done")
	case coFailed:
		return helpEntry("r", "retry") + "  " + helpEntry("esc", "close")
	default:
		return helpEntry("esc", "done")
	}
}

func (m checkoutModel) priceLine(p domain.Program) string {
	line := priceStyle.Render(formatLKR(p.Price(m.cycle)))
	if m.cycle == domain.CycleQuarterly {
		line += "  " + savingsStyle.Render(
			i18n.T(m.loc, "savings")+" "+formatLKR(p.Savings))
	}
	return line
}

func (m checkoutModel) View() string {
	switch m.state {
	case coMethodSelected:
		return m.viewMethod()
	case coProcessing:
		return "\n " + dimStyle.Render("processing enrollment...")
	case coRedirected:
		return m.viewRedirected()
	case coBankShown:
		return m.viewBank()
	case coFailed:
		return m.viewFailed()
	}
	return m.viewForm()
}

func (m checkoutModel) viewForm() string {
	p := domain.Programs[m.program]

	var b strings.Builder
	b.WriteString("\n " + selectedStyle.Render(i18n.T(m.loc, "enroll_cta")) + "\n\n")

	b.WriteString(" " + chooser(i18n.T(m.loc, "choose_program"),
		fmt.Sprintf("%s (ages %s)", p.Name, p.AgeRange), m.focus == 0) + "\n")
	cycleLabel := i18n.T(m.loc, "monthly")
	if m.cycle == domain.CycleQuarterly {
		cycleLabel = i18n.T(m.loc, "quarterly")
	}
	b.WriteString(" " + chooser("billing", cycleLabel, m.focus == 1) + "\n")
	b.WriteString("\n   " + m.priceLine(p) + "\n")
	if len(p.Features) > 0 {
		b.WriteString("   " + metaStyle.Render(strings.Join(p.Features, " · ")) + "\n")
	}
	b.WriteString("\n")

	b.WriteString(" " + field("student name", m.studentName, m.focus == 2, false) + "\n")
	b.WriteString(" " + field("parent name", m.parentName, m.focus == 3, false) + "\n")
	b.WriteString(" " + field("email", m.email, m.focus == 4, false) + "\n")
	b.WriteString(" " + field("phone", m.phone, m.focus == 5, false) + "\n")
	b.WriteString(" " + field("address", m.address, m.focus == 6, false) + "\n")
	if m.cycle == domain.CycleQuarterly {
		b.WriteString("   " + dimStyle.Render("address is needed to ship the learning kit") + "\n")
	}

	for _, e := range m.errs {
		b.WriteString("\n " + errStyle.Render(e))
	}
	return b.String()
}

func (m checkoutModel) viewMethod() string {
	p := domain.Programs[m.program]

	var b strings.Builder
	b.WriteString("\n " + selectedStyle.Render(i18n.T(m.loc, "choose_method")) + "\n\n")
	b.WriteString("   " + metaStyle.Render(p.Name+" · ") + m.priceLine(p) + "\n\n")

	card := i18n.T(m.loc, "card_method")
	bank := i18n.T(m.loc, "bank_method")
	if m.method == methodCard {
		b.WriteString(" " + selectedStyle.Render("› "+card) + "\n")
		b.WriteString("   " + dimStyle.Render(bank) + "\n")
	} else {
		b.WriteString("   " + dimStyle.Render(card) + "\n")
		b.WriteString(" " + selectedStyle.Render("› "+bank) + "\n")
	}
	return b.String()
}

func (m checkoutModel) viewRedirected() string {
	var b strings.Builder
	b.WriteString("\n " + okStyle.Render("Checkout opened in your browser") + "\n\n")
	if m.openErr {
		b.WriteString(" " + errStyle.Render("could not open a browser") + "\n")
	}
	b.WriteString(" " + metaStyle.Render("if nothing opened, visit:") + "\n")
	b.WriteString("   " + accentStyle.Render(m.url) + "\n")
	return b.String()
}

func (m checkoutModel) viewBank() string {
	p := domain.Programs[m.program]

	var b strings.Builder
	b.WriteString("\n " + okStyle.Render(i18n.T(m.loc, "bank_instructions")) + "\n\n")
	b.WriteString("   " + metaStyle.Render("amount     ") + priceStyle.Render(formatLKR(p.Price(m.cycle))) + "\n")
	b.WriteString("   " + metaStyle.Render("bank       ") + bankName + "\n")
	b.WriteString("   " + metaStyle.Render("branch     ") + bankBranch + "\n")
	b.WriteString("   " + metaStyle.Render("account    ") + bankAccName + "\n")
	b.WriteString("   " + metaStyle.Render("number     ") + bankAccNumber + "\n")
	b.WriteString("   " + metaStyle.Render("reference  ") + accentStyle.Render(m.reference))
	if m.copied {
		b.WriteString("  " + okStyle.Render("copied"))
	}
	b.WriteString("\n")
	if m.message != "" {
		b.WriteString("\n " + metaStyle.Render(m.message) + "\n")
	}
	b.WriteString("\n " + dimStyle.Render(i18n.T(m.loc, "bank_pending")) + "\n")
	return b.String()
}

func (m checkoutModel) viewFailed() string {
	var b strings.Builder
	b.WriteString("\n " + errStyle.Render("Payment failed") + "\n\n")
	for _, e := range m.errs {
		b.WriteString(" " + errStyle.Render(e) + "\n")
	}
	b.WriteString("\n " + dimStyle.Render("your details are kept, press r to try again") + "\n")
	return b.String()
}
