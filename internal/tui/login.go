package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/JoaoLucasCordeiro/meetix-cli/pkg/client"
	"github.com/JoaoLucasCordeiro/meetix-cli/pkg/domain"
	"github.com/JoaoLucasCordeiro/meetix-cli/pkg/session"
)

type loginField int

const (
	fieldEmail loginField = iota
	fieldPassword
	numLoginFields
)

type registerField int

const (
	regFirstName registerField = iota
	regLastName
	regEmail
	regPassword
	regUniversity
	regCourse
	regInstagram
	numRegisterFields
)

var registerLabels = [numRegisterFields]string{
	"first name", "last name", "email", "password", "university", "course", "instagram",
}

// loggedInMsg is emitted to the root model once a login or registration
// round trip completes.
type loggedInMsg struct {
	user *domain.User
	err  error
}

type loginModel struct {
	session     *session.Manager
	registering bool
	fields      [numLoginFields]string
	regFields   [numRegisterFields]string
	focus       int
	statusMsg   string
	submitting  bool
}

func newLoginModel(s *session.Manager) loginModel {
	return loginModel{session: s}
}

func (m loginModel) Init() tea.Cmd {
	return nil
}

func (m loginModel) Update(msg tea.Msg) (loginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case loggedInMsg:
		m.submitting = false
		if msg.err != nil {
			m.statusMsg = msg.err.Error()
			m.fields[fieldPassword] = ""
			m.regFields[regPassword] = ""
		}
		return m, nil

	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m loginModel) updateKeys(msg tea.KeyMsg) (loginModel, tea.Cmd) {
	m.statusMsg = ""

	n := int(numLoginFields)
	if m.registering {
		n = int(numRegisterFields)
	}

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "ctrl+r":
		m.registering = !m.registering
		m.focus = 0
		return m, nil
	case "tab", "down":
		m.focus = (m.focus + 1) % n
	case "shift+tab", "up":
		m.focus = (m.focus - 1 + n) % n
	case "enter":
		if m.focus < n-1 {
			m.focus++
			return m, nil
		}
		return m.submit()
	case "ctrl+s":
		return m.submit()
	default:
		if m.registering {
			m.regFields[m.focus] = editRune(m.regFields[m.focus], msg.String())
		} else {
			m.fields[m.focus] = editRune(m.fields[m.focus], msg.String())
		}
	}
	return m, nil
}

func (m loginModel) submit() (loginModel, tea.Cmd) {
	if m.registering {
		return m.submitRegister()
	}

	email := strings.TrimSpace(m.fields[fieldEmail])
	password := m.fields[fieldPassword]
	if email == "" || password == "" {
		m.statusMsg = "email and password are required"
		return m, nil
	}

	m.submitting = true
	s := m.session
	return m, func() tea.Msg {
		user, err := s.Login(context.Background(), email, password)
		return loggedInMsg{user: user, err: err}
	}
}

func (m loginModel) submitRegister() (loginModel, tea.Cmd) {
	req := client.RegisterRequest{
		FirstName:  strings.TrimSpace(m.regFields[regFirstName]),
		LastName:   strings.TrimSpace(m.regFields[regLastName]),
		Email:      strings.TrimSpace(m.regFields[regEmail]),
		Password:   m.regFields[regPassword],
		University: strings.TrimSpace(m.regFields[regUniversity]),
		Course:     strings.TrimSpace(m.regFields[regCourse]),
		Instagram:  strings.TrimSpace(m.regFields[regInstagram]),
	}
	if req.FirstName == "" || req.Email == "" || req.Password == "" {
		m.statusMsg = "first name, email and password are required"
		return m, nil
	}

	m.submitting = true
	s := m.session
	return m, func() tea.Msg {
		user, err := s.Register(context.Background(), req)
		return loggedInMsg{user: user, err: err}
	}
}

func (m loginModel) View() string {
	var b strings.Builder

	if m.registering {
		b.WriteString(" " + sectionHeaderStyle.Render("── CREATE ACCOUNT ──") + "\n\n")
		for i := registerField(0); i < numRegisterFields; i++ {
			b.WriteString(m.renderField(registerLabels[i], m.regFields[i], int(i), i == regPassword))
		}
		b.WriteString("\n " + dimStyle.Render("ctrl+r back to login") + "\n")
	} else {
		b.WriteString(" " + sectionHeaderStyle.Render("── SIGN IN ──") + "\n\n")
		b.WriteString(m.renderField("email", m.fields[fieldEmail], int(fieldEmail), false))
		b.WriteString(m.renderField("password", m.fields[fieldPassword], int(fieldPassword), true))
		b.WriteString("\n " + dimStyle.Render("ctrl+r create an account") + "\n")
	}

	b.WriteString("\n")
	if m.submitting {
		b.WriteString(" " + dimStyle.Render("signing in..."))
	} else if m.statusMsg != "" {
		b.WriteString(" " + rejectStyle.Render(m.statusMsg))
	}

	return b.String()
}

func (m loginModel) renderField(label, value string, idx int, mask bool) string {
	cursor := " "
	style := metaStyle
	if idx == m.focus {
		cursor = ">"
		style = selectedStyle
	}
	display := value
	if mask {
		display = strings.Repeat("•", len([]rune(value)))
	}
	if idx == m.focus {
		display += "█"
	}
	return fmt.Sprintf(" %s %s: %s\n", cursor, style.Render(fmt.Sprintf("%-12s", label)), display)
}
