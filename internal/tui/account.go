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

// accountState is the state machine for the account view.
type accountState int

const (
	accNormal accountState = iota
	accEditing
	accLoggingOut
)

type profileField int

const (
	profFirstName profileField = iota
	profLastName
	profUniversity
	profCourse
	profInstagram
	numProfileFields
)

var profileLabels = [numProfileFields]string{
	"first name", "last name", "university", "course", "instagram",
}

// -- messages --

type profileSavedMsg struct {
	user *domain.User
	err  error
}

// loggedOutMsg tells the root model to drop back to the login view.
type loggedOutMsg struct{}

type accountModel struct {
	client    *client.Client
	session   *session.Manager
	state     accountState
	fields    [numProfileFields]string
	focus     int
	statusMsg string
	width     int
	height    int
}

func newAccountModel(c *client.Client, s *session.Manager) accountModel {
	return accountModel{client: c, session: s}
}

func (m accountModel) Init() tea.Cmd {
	return nil
}

func (m accountModel) Update(msg tea.Msg) (accountModel, tea.Cmd) {
	switch msg := msg.(type) {
	case profileSavedMsg:
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("save failed: %v", msg.err)
			return m, nil
		}
		m.session.SetUser(msg.user)
		m.state = accNormal
		m.statusMsg = "profile saved"
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		m.statusMsg = ""
		return m.handleKey(msg)
	}
	return m, nil
}

func (m accountModel) handleKey(msg tea.KeyMsg) (accountModel, tea.Cmd) {
	switch m.state {
	case accEditing:
		return m.handleKeyEditing(msg)
	case accLoggingOut:
		return m.handleKeyLoggingOut(msg)
	}

	switch msg.String() {
	case "e":
		user := m.session.CurrentUser()
		if user == nil {
			return m, nil
		}
		m.state = accEditing
		m.focus = 0
		m.fields = [numProfileFields]string{
			user.FirstName, user.LastName, user.University, user.Course, user.Instagram,
		}
	case "x":
		m.state = accLoggingOut
	}
	return m, nil
}

func (m accountModel) handleKeyEditing(msg tea.KeyMsg) (accountModel, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		m.focus = (m.focus + 1) % int(numProfileFields)
	case "shift+tab", "up":
		m.focus = (m.focus - 1 + int(numProfileFields)) % int(numProfileFields)
	case "esc":
		m.state = accNormal
	case "enter":
		return m.save()
	default:
		m.fields[m.focus] = editRune(m.fields[m.focus], msg.String())
	}
	return m, nil
}

func (m accountModel) handleKeyLoggingOut(msg tea.KeyMsg) (accountModel, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.state = accNormal
		s := m.session
		return m, func() tea.Msg {
			s.Logout(context.Background())
			return loggedOutMsg{}
		}
	case "n", "N", "esc":
		m.state = accNormal
	}
	return m, nil
}

func (m accountModel) save() (accountModel, tea.Cmd) {
	user := m.session.CurrentUser()
	if user == nil {
		m.state = accNormal
		return m, nil
	}
	req := client.UpdateProfileRequest{
		FirstName:  strings.TrimSpace(m.fields[profFirstName]),
		LastName:   strings.TrimSpace(m.fields[profLastName]),
		University: strings.TrimSpace(m.fields[profUniversity]),
		Course:     strings.TrimSpace(m.fields[profCourse]),
		Instagram:  strings.TrimSpace(m.fields[profInstagram]),
	}
	if req.FirstName == "" {
		m.statusMsg = "first name required"
		return m, nil
	}
	c := m.client
	id := user.ID
	return m, func() tea.Msg {
		updated, err := c.UpdateProfile(context.Background(), id, req)
		return profileSavedMsg{user: updated, err: err}
	}
}

// helpKeys returns context-sensitive help text based on the current state.
func (m accountModel) helpKeys() string {
	switch m.state {
	case accEditing:
		return helpEntry("tab", "next") + "  " + helpEntry("enter", "save") + "  " + helpEntry("esc", "cancel")
	case accLoggingOut:
		return helpEntry("y", "confirm") + "  " + helpEntry("n", "stay")
	default:
		return helpEntry("e", "edit profile") + "  " + helpEntry("x", "logout") + "  " + helpEntry("h", "help") + "  " + helpEntry("q", "quit")
	}
}

func (m accountModel) View() string {
	user := m.session.CurrentUser()
	if user == nil {
		return " " + dimStyle.Render("not signed in")
	}

	var sb strings.Builder

	sb.WriteString(" " + selectedStyle.Render(user.FullName()) + "\n")
	sb.WriteString("   " + metaStyle.Render(user.Email) + "\n")

	parts := []string{}
	if user.University != "" {
		parts = append(parts, user.University)
	}
	if user.Course != "" {
		parts = append(parts, user.Course)
	}
	if user.Instagram != "" {
		parts = append(parts, accentStyle.Render("@"+strings.TrimPrefix(user.Instagram, "@")))
	}
	if len(parts) > 0 {
		sb.WriteString("   " + metaStyle.Render(strings.Join(parts, " · ")) + "\n")
	}

	// Session block: where the token expires, when we can tell
	if exp, err := session.TokenExpiry(m.session.Token()); err == nil {
		sb.WriteString("\n " + sectionHeaderStyle.Render("── SESSION ──") + "\n")
		sb.WriteString("   " + metaStyle.Render("token expires "+exp.Format("02 Jan 15:04")) + "\n")
	}

	if m.statusMsg != "" {
		sb.WriteString("\n " + accentStyle.Render(m.statusMsg) + "\n")
	}

	switch m.state {
	case accEditing:
		sb.WriteString("\n " + sectionHeaderStyle.Render("── EDIT PROFILE ──") + "\n")
		for i := profileField(0); i < numProfileFields; i++ {
			cursor := " "
			style := metaStyle
			value := m.fields[i]
			if int(i) == m.focus {
				cursor = ">"
				style = selectedStyle
				value += "█"
			}
			fmt.Fprintf(&sb, "   %s %s: %s\n", cursor, style.Render(fmt.Sprintf("%-12s", profileLabels[i])), value)
		}
	case accLoggingOut:
		sb.WriteString("\n   " + rejectStyle.Render("log out? ") +
			accentStyle.Render("y") + dimStyle.Render("/") + dimStyle.Render("n") + "\n")
	}

	return sb.String()
}
