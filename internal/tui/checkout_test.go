package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mentora/mentora/internal/i18n"
	"github.com/mentora/mentora/pkg/client"
	"github.com/mentora/mentora/pkg/domain"
)

// key converts a key name into the message Update receives.
func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func testCheckout() checkoutModel {
	return newCheckoutModel(client.New("http://127.0.0.1:1", ""), i18n.EN)
}

// filledCheckout returns a model with every text field populated.
func filledCheckout() checkoutModel {
	m := testCheckout()
	m.studentName = "Nimal Perera"
	m.parentName = "Kumari Perera"
	m.email = "kumari@example.lk"
	m.phone = "0771234567"
	m.address = "12 Galle Road, Colombo 03"
	return m
}

func TestCheckoutShowsDeclaredSavings(t *testing.T) {
	// The quarterly saving is the advertised figure from the program table,
	// not an arithmetic derivation from the monthly price.
	for _, p := range domain.Programs {
		m := testCheckout()
		m.cycle = domain.CycleQuarterly
		for i := range domain.Programs {
			if domain.Programs[i].ID == p.ID {
				m.program = i
			}
		}
		view := m.View()
		if !strings.Contains(view, formatLKR(p.Savings)) {
			t.Errorf("%s: view missing declared savings %s", p.ID, formatLKR(p.Savings))
		}
		if !strings.Contains(view, formatLKR(p.Quarterly)) {
			t.Errorf("%s: view missing quarterly price %s", p.ID, formatLKR(p.Quarterly))
		}
	}
}

func TestCheckoutMonthlyHidesSavings(t *testing.T) {
	m := testCheckout()
	view := m.View()
	if strings.Contains(view, i18n.T(i18n.EN, "savings")) {
		t.Error("monthly billing should not advertise a quarterly saving")
	}
}

func TestCheckoutQuarterlyRequiresAddress(t *testing.T) {
	m := filledCheckout()
	m.cycle = domain.CycleQuarterly
	m.address = ""

	m, cmd := m.Update(key("enter"))

	if m.state != coFormEntry {
		t.Fatalf("state = %v, want form entry on a local validation failure", m.state)
	}
	if cmd != nil {
		t.Error("validation failure produced a command; nothing should reach the backend")
	}
	found := false
	for _, e := range m.errs {
		if strings.Contains(e, "address") {
			found = true
		}
	}
	if !found {
		t.Errorf("errs = %v, want an address message", m.errs)
	}
}

func TestCheckoutMonthlySkipsAddress(t *testing.T) {
	m := filledCheckout()
	m.address = ""

	m, cmd := m.Update(key("enter"))

	if m.state != coMethodSelected {
		t.Fatalf("state = %v, want method selection", m.state)
	}
	if cmd != nil {
		t.Error("advancing to method selection should not hit the backend")
	}
}

func TestCheckoutEmptyFormRejected(t *testing.T) {
	m := testCheckout()
	m, cmd := m.Update(key("enter"))
	if m.state != coFormEntry || cmd != nil {
		t.Errorf("empty form advanced: state=%v cmd=%v", m.state, cmd)
	}
	if len(m.errs) == 0 {
		t.Error("no validation messages for an empty form")
	}
}

func TestCheckoutMethodToggle(t *testing.T) {
	m := filledCheckout()
	m, _ = m.Update(key("enter"))
	if m.method != methodCard {
		t.Fatalf("default method = %v, want card", m.method)
	}
	m, _ = m.Update(key("l"))
	if m.method != methodBank {
		t.Errorf("method after toggle = %v, want bank", m.method)
	}
	m, _ = m.Update(key("h"))
	if m.method != methodCard {
		t.Errorf("method after second toggle = %v, want card", m.method)
	}
}

func TestCheckoutSubmitEntersProcessing(t *testing.T) {
	m := filledCheckout()
	m, _ = m.Update(key("enter"))
	m, cmd := m.Update(key("enter"))
	if m.state != coProcessing {
		t.Fatalf("state = %v, want processing", m.state)
	}
	if cmd == nil {
		t.Error("no submit command issued")
	}
	// Processing ignores stray keys.
	m, _ = m.Update(key("x"))
	if m.state != coProcessing {
		t.Errorf("state = %v after a stray key", m.state)
	}
}

func TestCheckoutCardRedirect(t *testing.T) {
	m := filledCheckout()
	m, _ = m.Update(key("enter"))
	m, _ = m.Update(key("enter"))

	m, _ = m.Update(checkoutResultMsg{method: methodCard, url: "https://pay.example/s1"})

	if m.state != coRedirected {
		t.Fatalf("state = %v, want redirected", m.state)
	}
	if !strings.Contains(m.View(), "https://pay.example/s1") {
		t.Error("redirect view missing the checkout URL")
	}
}

func TestCheckoutBankInstructions(t *testing.T) {
	m := filledCheckout()
	m, _ = m.Update(key("enter"))
	m, _ = m.Update(key("l"))
	m, _ = m.Update(key("enter"))

	m, _ = m.Update(checkoutResultMsg{method: methodBank, reference: "ENR-2024-0042"})

	if m.state != coBankShown {
		t.Fatalf("state = %v, want bank instructions", m.state)
	}
	view := m.View()
	for _, want := range []string{"ENR-2024-0042", bankAccNumber, bankName} {
		if !strings.Contains(view, want) {
			t.Errorf("bank view missing %q", want)
		}
	}
}

func TestCheckoutFailedRetryPreservesFields(t *testing.T) {
	m := filledCheckout()
	m.cycle = domain.CycleQuarterly
	m.program = 3
	m, _ = m.Update(key("enter"))
	m, _ = m.Update(key("l"))
	m, _ = m.Update(key("enter"))

	m, _ = m.Update(checkoutResultMsg{method: methodBank, err: errors.New("payment gateway unavailable")})
	if m.state != coFailed {
		t.Fatalf("state = %v, want failed", m.state)
	}

	m, _ = m.Update(key("r"))

	if m.state != coMethodSelected {
		t.Fatalf("state after retry = %v, want method selection", m.state)
	}
	if m.studentName != "Nimal Perera" || m.parentName != "Kumari Perera" ||
		m.email != "kumari@example.lk" || m.phone != "0771234567" ||
		m.address != "12 Galle Road, Colombo 03" {
		t.Error("retry lost entered fields")
	}
	if m.cycle != domain.CycleQuarterly || m.program != 3 {
		t.Error("retry lost program selection")
	}
	if len(m.errs) != 0 {
		t.Errorf("errs = %v, want cleared on retry", m.errs)
	}
}

func TestCheckoutStaleResultIgnored(t *testing.T) {
	// A result landing after the flow left Processing belongs to a
	// discarded submission.
	m := filledCheckout()
	m, _ = m.Update(checkoutResultMsg{method: methodCard, url: "https://pay.example/old"})
	if m.state != coFormEntry {
		t.Errorf("state = %v, stale result should not move the flow", m.state)
	}
}

func TestCheckoutEscCloses(t *testing.T) {
	m := testCheckout()
	m, _ = m.Update(key("esc"))
	if !m.closed {
		t.Error("esc in form entry did not close the flow")
	}
}

func TestCheckoutFormEditing(t *testing.T) {
	m := testCheckout()
	// focus 0 is the program chooser; move to the student name field.
	m, _ = m.Update(key("tab"))
	m, _ = m.Update(key("tab"))
	for _, r := range "Amara" {
		m, _ = m.Update(key(string(r)))
	}
	if m.studentName != "Amara" {
		t.Errorf("studentName = %q", m.studentName)
	}
	m, _ = m.Update(key("backspace"))
	if m.studentName != "Amar" {
		t.Errorf("studentName after backspace = %q", m.studentName)
	}
}
