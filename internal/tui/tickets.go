package tui

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/JoaoLucasCordeiro/meetix-cli/pkg/client"
	"github.com/JoaoLucasCordeiro/meetix-cli/pkg/domain"
)

// ticketSection identifies which list the cursor is in.
type ticketSection int

const (
	sectionTickets ticketSection = iota
	sectionBadges
	sectionCertificates
)

// -- messages --

type ticketsLoadedMsg struct {
	tickets []domain.Ticket
	err     error
}

type badgesLoadedMsg struct {
	badges []domain.Badge
	err    error
}

type certificatesLoadedMsg struct {
	certificates []domain.Certificate
	err          error
}

type pdfSavedMsg struct {
	path string
	err  error
}

type copyCodeMsg struct{ err error }

// -- model --

type ticketsModel struct {
	client       *client.Client
	tickets      []domain.Ticket
	badges       []domain.Badge
	certificates []domain.Certificate
	section      ticketSection
	cursor       int
	loading      bool
	err          error
	statusMsg    string
	width        int
	height       int
}

func newTicketsModel(c *client.Client) ticketsModel {
	return ticketsModel{client: c, loading: true}
}

func (m ticketsModel) Init() tea.Cmd {
	return tea.Batch(m.loadTickets(), m.loadBadges(), m.loadCertificates())
}

func (m ticketsModel) loadTickets() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		tickets, err := c.MyTickets(context.Background())
		return ticketsLoadedMsg{tickets: tickets, err: err}
	}
}

func (m ticketsModel) loadBadges() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		badges, err := c.MyBadges(context.Background())
		return badgesLoadedMsg{badges: badges, err: err}
	}
}

func (m ticketsModel) loadCertificates() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		certs, err := c.MyCertificates(context.Background())
		return certificatesLoadedMsg{certificates: certs, err: err}
	}
}

func (m ticketsModel) Update(msg tea.Msg) (ticketsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case ticketsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.tickets = msg.tickets
			m.err = nil
		}
		return m, nil

	case badgesLoadedMsg:
		if msg.err == nil {
			m.badges = msg.badges
		}
		return m, nil

	case certificatesLoadedMsg:
		if msg.err == nil {
			m.certificates = msg.certificates
		}
		return m, nil

	case pdfSavedMsg:
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("download failed: %v", msg.err)
		} else {
			m.statusMsg = "saved " + msg.path
		}
		return m, nil

	case copyCodeMsg:
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("copy failed: %v", msg.err)
		} else {
			m.statusMsg = "code copied!"
		}
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

func (m ticketsModel) handleKey(msg tea.KeyMsg) (ticketsModel, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		m.navDown()
	case "k", "up":
		m.navUp()
	case "d":
		return m.download()
	case "c":
		if m.section == sectionTickets && m.cursor < len(m.tickets) {
			code := m.tickets[m.cursor].Code
			return m, func() tea.Msg {
				err := clipboard.WriteAll(code)
				return copyCodeMsg{err: err}
			}
		}
	case "r":
		m.loading = true
		return m, tea.Batch(m.loadTickets(), m.loadBadges(), m.loadCertificates())
	}
	return m, nil
}

// download fetches the PDF for the selected item and writes it next to the
// working directory as meetix-<kind>-<id>.pdf.
func (m ticketsModel) download() (ticketsModel, tea.Cmd) {
	c := m.client

	var kind string
	var id uuid.UUID
	var fetch func(context.Context, uuid.UUID) ([]byte, error)

	switch m.section {
	case sectionTickets:
		if m.cursor >= len(m.tickets) {
			return m, nil
		}
		kind, id, fetch = "ticket", m.tickets[m.cursor].ID, c.TicketPDF
	case sectionBadges:
		if m.cursor >= len(m.badges) {
			return m, nil
		}
		kind, id, fetch = "badge", m.badges[m.cursor].ID, c.BadgePDF
	case sectionCertificates:
		if m.cursor >= len(m.certificates) {
			return m, nil
		}
		kind, id, fetch = "certificate", m.certificates[m.cursor].ID, c.CertificatePDF
	}

	return m, func() tea.Msg {
		data, err := fetch(context.Background(), id)
		if err != nil {
			return pdfSavedMsg{err: err}
		}
		path := fmt.Sprintf("meetix-%s-%s.pdf", kind, id.String()[:8])
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return pdfSavedMsg{err: err}
		}
		return pdfSavedMsg{path: path}
	}
}

func (m ticketsModel) sectionLen(s ticketSection) int {
	switch s {
	case sectionTickets:
		return len(m.tickets)
	case sectionBadges:
		return len(m.badges)
	default:
		return len(m.certificates)
	}
}

func (m *ticketsModel) navDown() {
	if m.cursor < m.sectionLen(m.section)-1 {
		m.cursor++
		return
	}
	for s := m.section + 1; s <= sectionCertificates; s++ {
		if m.sectionLen(s) > 0 {
			m.section = s
			m.cursor = 0
			return
		}
	}
}

func (m *ticketsModel) navUp() {
	if m.cursor > 0 {
		m.cursor--
		return
	}
	for s := m.section - 1; s >= sectionTickets; s-- {
		if m.sectionLen(s) > 0 {
			m.section = s
			m.cursor = m.sectionLen(s) - 1
			return
		}
	}
}

// helpKeys returns context-sensitive help text for the active section.
func (m ticketsModel) helpKeys() string {
	base := helpEntry("j/k", "nav") + "  " + helpEntry("d", "pdf")
	if m.section == sectionTickets {
		base += "  " + helpEntry("c", "copy code")
	}
	return base + "  " + helpEntry("r", "refresh") + "  " + helpEntry("h", "help") + "  " + helpEntry("q", "quit")
}

func (m ticketsModel) View() string {
	if m.loading {
		return " " + dimStyle.Render("loading...")
	}
	if m.err != nil {
		return " " + dimStyle.Render(fmt.Sprintf("error: %v", m.err))
	}

	var b strings.Builder

	if m.statusMsg != "" {
		b.WriteString(" " + accentStyle.Render(m.statusMsg) + "\n")
	}

	// -- tickets --
	b.WriteString("\n " + sectionHeaderStyle.Render(fmt.Sprintf("── TICKETS %d ──", len(m.tickets))) + "\n")
	if len(m.tickets) == 0 {
		b.WriteString("   " + dimStyle.Render("no tickets yet") + "\n")
	}
	for i, t := range m.tickets {
		cursor := "  "
		if m.section == sectionTickets && i == m.cursor {
			cursor = accentStyle.Render("▸") + " "
		}
		name := t.EventName
		if name == "" {
			name = t.EventID.String()[:8]
		}
		codeCol := searchStyle.Render(t.Code)
		if t.UsedAt != nil {
			codeCol = usedStyle.Render(t.Code) + " " + metaStyle.Render("used "+formatTime(*t.UsedAt))
		}
		fmt.Fprintf(&b, " %s%s  %s\n", cursor, normalStyle.Render(truncStr(name, 32)), codeCol)
	}

	// -- badges --
	b.WriteString("\n " + sectionHeaderStyle.Render(fmt.Sprintf("── BADGES %d ──", len(m.badges))) + "\n")
	if len(m.badges) == 0 {
		b.WriteString("   " + dimStyle.Render("no badges yet") + "\n")
	}
	for i, bd := range m.badges {
		cursor := "  "
		if m.section == sectionBadges && i == m.cursor {
			cursor = accentStyle.Render("▸") + " "
		}
		name := bd.EventName
		if name == "" {
			name = bd.EventID.String()[:8]
		}
		fmt.Fprintf(&b, " %s%s\n", cursor, normalStyle.Render(truncStr(name, 40)))
	}

	// -- certificates --
	b.WriteString("\n " + sectionHeaderStyle.Render(fmt.Sprintf("── CERTIFICATES %d ──", len(m.certificates))) + "\n")
	if len(m.certificates) == 0 {
		b.WriteString("   " + dimStyle.Render("certificates appear after events you attended") + "\n")
	}
	for i, cert := range m.certificates {
		cursor := "  "
		if m.section == sectionCertificates && i == m.cursor {
			cursor = accentStyle.Render("▸") + " "
		}
		name := cert.EventName
		if name == "" {
			name = cert.EventID.String()[:8]
		}
		hours := goldStyle.Render(fmt.Sprintf("%dh", cert.Hours))
		fmt.Fprintf(&b, " %s%s  %s  %s\n", cursor, normalStyle.Render(truncStr(name, 32)), hours, metaStyle.Render(formatTime(cert.IssuedAt)))
	}

	return truncateToHeight(b.String(), m.height)
}
