package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/JoaoLucasCordeiro/meetix-cli/pkg/client"
	"github.com/JoaoLucasCordeiro/meetix-cli/pkg/domain"
)

// alertPollInterval is how often the alerts list auto-refreshes.
const alertPollInterval = 30 * time.Second

type alertTickMsg time.Time

func alertTickCmd() tea.Cmd {
	return tea.Tick(alertPollInterval, func(t time.Time) tea.Msg {
		return alertTickMsg(t)
	})
}

type alertsLoadedMsg struct {
	alerts []domain.Notification
	err    error
}

type alertReadMsg struct {
	id  uuid.UUID
	err error
}

type alertsAllReadMsg struct{ err error }

type unreadCountMsg struct {
	n   int
	err error
}

type alertsModel struct {
	client  *client.Client
	alerts  []domain.Notification
	unreadN int
	cursor  int
	loading bool
	err     string
	width   int
	height  int
}

func newAlertsModel(c *client.Client) alertsModel {
	return alertsModel{client: c, loading: true}
}

func (m alertsModel) Init() tea.Cmd {
	return m.load()
}

func (m alertsModel) load() tea.Cmd {
	c := m.client
	list := func() tea.Msg {
		alerts, err := c.ListNotifications(context.Background(), pageSize, 0)
		return alertsLoadedMsg{alerts: alerts, err: err}
	}
	return tea.Batch(list, m.loadUnread())
}

// loadUnread fetches the backend's unread total. The list is paged, so
// counting the loaded slice would undercount past the first page.
func (m alertsModel) loadUnread() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		n, err := c.UnreadCount(context.Background())
		return unreadCountMsg{n: n, err: err}
	}
}

// unread is the backend's unread total, for the tab bar badge. Mark-read
// acknowledgements adjust it locally between polls.
func (m alertsModel) unread() int {
	return m.unreadN
}

func (m alertsModel) Update(msg tea.Msg) (alertsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case alertsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err.Error()
		} else {
			m.alerts = msg.alerts
			m.err = ""
			if m.cursor >= len(m.alerts) {
				m.cursor = 0
			}
		}
		return m, alertTickCmd()

	case alertTickMsg:
		return m, m.load()

	case alertReadMsg:
		if msg.err == nil {
			for i := range m.alerts {
				if m.alerts[i].ID == msg.id {
					m.alerts[i].Read = true
					break
				}
			}
			if m.unreadN > 0 {
				m.unreadN--
			}
		}
		return m, nil

	case alertsAllReadMsg:
		if msg.err == nil {
			for i := range m.alerts {
				m.alerts[i].Read = true
			}
			m.unreadN = 0
		}
		return m, nil

	case unreadCountMsg:
		if msg.err == nil {
			m.unreadN = msg.n
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m alertsModel) handleKey(msg tea.KeyMsg) (alertsModel, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if m.cursor < len(m.alerts)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "enter":
		if m.cursor < len(m.alerts) && !m.alerts[m.cursor].Read {
			id := m.alerts[m.cursor].ID
			c := m.client
			return m, func() tea.Msg {
				err := c.MarkRead(context.Background(), id)
				return alertReadMsg{id: id, err: err}
			}
		}
	case "a":
		if m.unread() > 0 {
			c := m.client
			return m, func() tea.Msg {
				err := c.MarkAllRead(context.Background())
				return alertsAllReadMsg{err: err}
			}
		}
	case "r":
		return m, m.load()
	}
	return m, nil
}

// alertDot returns a colored bullet for a notification kind.
func alertDot(kind string) string {
	switch kind {
	case domain.NotifOrderApproved:
		return approvedStyle.Render("●")
	case domain.NotifOrderRejected:
		return rejectStyle.Render("●")
	case domain.NotifCertificate:
		return goldStyle.Render("●")
	case domain.NotifEventReminder:
		return accentStyle.Render("●")
	case domain.NotifEventChanged:
		return pendingStyle.Render("●")
	default:
		return metaStyle.Render("●")
	}
}

func (m alertsModel) View() string {
	if m.loading && len(m.alerts) == 0 {
		return " " + dimStyle.Render("loading alerts...")
	}
	if m.err != "" {
		return " " + dimStyle.Render("error: "+m.err)
	}
	if len(m.alerts) == 0 {
		return " " + dimStyle.Render("no alerts yet")
	}

	var sb strings.Builder

	maxLines := m.height - 2
	if maxLines < 5 {
		maxLines = 10
	}
	linesUsed := 0

	for i := 0; i < len(m.alerts) && linesUsed < maxLines; i++ {
		a := m.alerts[i]

		cursor := "  "
		if i == m.cursor {
			cursor = accentStyle.Render("▸") + " "
		}

		timeStr := metaStyle.Render(fmt.Sprintf("%8s", formatTime(a.CreatedAt)))

		titleStyle := dimStyle
		if !a.Read {
			titleStyle = normalStyle.Bold(true)
		}
		if i == m.cursor {
			titleStyle = selectedStyle
		}

		titleWidth := m.width - 18
		if titleWidth < 20 {
			titleWidth = 20
		}
		line := " " + cursor + timeStr + "  " + alertDot(a.Kind) + "  " + titleStyle.Render(truncStr(a.Title, titleWidth))
		sb.WriteString(line + "\n")
		linesUsed++

		// Body on a second line for the selected alert
		if i == m.cursor && a.Body != "" {
			sb.WriteString(strings.Repeat(" ", 15) + dimStyle.Render(truncStr(a.Body, titleWidth)) + "\n")
			linesUsed++
		}
	}

	return sb.String()
}
