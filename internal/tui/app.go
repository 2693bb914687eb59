package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/JoaoLucasCordeiro/meetix-cli/internal/browser"
	"github.com/JoaoLucasCordeiro/meetix-cli/pkg/client"
	"github.com/JoaoLucasCordeiro/meetix-cli/pkg/session"
)

type view int

const (
	viewEvents view = iota
	viewTickets
	viewOrders
	viewAlerts
	viewAccount
	viewLogin
)

// UnauthorizedMsg is sent into the program when a request came back 401 and
// the session was torn down. The UI drops to the login view.
type UnauthorizedMsg struct{}

// sessionValidatedMsg carries the result of the background token validation
// that follows an optimistic session restore.
type sessionValidatedMsg struct {
	err error
}

// App is the root Bubbletea model.
type App struct {
	client     *client.Client
	session    *session.Manager
	view       view
	events     eventsModel
	tickets    ticketsModel
	orders     ordersModel
	alerts     alertsModel
	account    accountModel
	login      loginModel
	helpOpen   bool
	helpCursor int
	width      int
	height     int
	frame      int // logo shimmer animation frame

	version   string
	newerThan string // latest release tag when an update exists
}

// NewApp creates a new TUI application. The session manager must already
// have Restore called on it; an anonymous session starts on the login view.
func NewApp(c *client.Client, s *session.Manager, version string) App {
	a := App{
		client:  c,
		session: s,
		version: version,
		events:  newEventsModel(c),
		tickets: newTicketsModel(c),
		orders:  newOrdersModel(c),
		alerts:  newAlertsModel(c),
		account: newAccountModel(c, s),
		login:   newLoginModel(s),
	}
	if s.State() == session.StateAnonymous {
		a.view = viewLogin
	}
	return a
}

func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{shimmerTickCmd()}
	if cmd := checkVersion(a.version); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if a.view != viewLogin {
		cmds = append(cmds, a.events.Init(), a.alerts.Init())
	}
	if a.session.Pending() {
		cmds = append(cmds, a.validateSession())
	}
	return tea.Batch(cmds...)
}

func (a App) validateSession() tea.Cmd {
	s := a.session
	return func() tea.Msg {
		err := s.Validate(context.Background())
		return sessionValidatedMsg{err: err}
	}
}

// dropToLogin resets to the login view with an explanation of why.
func (a App) dropToLogin(reason string) App {
	a.login = newLoginModel(a.session)
	a.login.statusMsg = reason
	a.view = viewLogin
	return a
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Chrome: header(2) + tabs(1) + help(1) = 4 lines
		bodyMsg := tea.WindowSizeMsg{Width: msg.Width, Height: msg.Height - 4}
		a.events, _ = a.events.Update(bodyMsg)
		a.tickets, _ = a.tickets.Update(bodyMsg)
		a.orders, _ = a.orders.Update(bodyMsg)
		a.alerts, _ = a.alerts.Update(bodyMsg)
		a.account, _ = a.account.Update(bodyMsg)

	case shimmerTickMsg:
		a.frame++
		return a, shimmerTickCmd()

	case versionCheckMsg:
		if msg.hasUpdate {
			a.newerThan = msg.latestVersion
		}
		return a, nil

	case sessionValidatedMsg:
		if msg.err != nil {
			return a.dropToLogin("session expired, please sign in again"), nil
		}
		return a, nil

	case UnauthorizedMsg:
		a.session.HandleUnauthorized()
		if a.view != viewLogin {
			return a.dropToLogin("session expired, please sign in again"), nil
		}
		return a, nil

	case loggedInMsg:
		var cmd tea.Cmd
		a.login, cmd = a.login.Update(msg)
		if msg.err == nil {
			a.view = viewEvents
			return a, tea.Batch(a.events.Init(), a.alerts.Init())
		}
		return a, cmd

	case loggedOutMsg:
		return a.dropToLogin("signed out"), nil

	case buyTicketMsg:
		a.orders = a.orders.startPurchase(msg.event)
		a.view = viewOrders
		return a, a.orders.load()

	// Alert messages bypass view routing so the unread badge stays
	// current while other tabs are active.
	case alertsLoadedMsg, alertTickMsg, alertReadMsg, alertsAllReadMsg, unreadCountMsg:
		var cmd tea.Cmd
		a.alerts, cmd = a.alerts.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		// Help overlay captures all keys when open
		if a.helpOpen {
			switch msg.String() {
			case "h", "esc":
				a.helpOpen = false
			case "q":
				return a, tea.Quit
			case "j", "down":
				if a.helpCursor < len(helpItems)-1 {
					a.helpCursor++
				}
			case "k", "up":
				if a.helpCursor > 0 {
					a.helpCursor--
				}
			case "enter":
				item := helpItems[a.helpCursor]
				if item.url != "" {
					browser.Open(item.url) //nolint:errcheck // best-effort browser open
				}
			}
			return a, nil
		}

		// Global keys (only when not editing)
		if !a.isEditing() {
			switch msg.String() {
			case "h":
				a.helpOpen = true
				a.helpCursor = 0
				return a, nil
			case "q":
				return a, tea.Quit
			case "1":
				return a.switchTo(viewEvents, a.events.Init())
			case "2":
				return a.switchTo(viewTickets, a.tickets.Init())
			case "3":
				return a.switchTo(viewOrders, a.orders.Init())
			case "4":
				return a.switchTo(viewAlerts, a.alerts.load())
			case "5":
				return a.switchTo(viewAccount, a.account.Init())
			}
		}
	}

	var cmd tea.Cmd
	switch a.view {
	case viewEvents:
		a.events, cmd = a.events.Update(msg)
	case viewTickets:
		a.tickets, cmd = a.tickets.Update(msg)
	case viewOrders:
		a.orders, cmd = a.orders.Update(msg)
	case viewAlerts:
		a.alerts, cmd = a.alerts.Update(msg)
	case viewAccount:
		a.account, cmd = a.account.Update(msg)
	case viewLogin:
		a.login, cmd = a.login.Update(msg)
	}

	return a, cmd
}

// switchTo changes tabs. Tabs are auth-gated: anonymous sessions stay on
// the login view.
func (a App) switchTo(v view, init tea.Cmd) (tea.Model, tea.Cmd) {
	if a.view == viewLogin || a.view == v {
		return a, nil
	}
	a.view = v
	return a, init
}

func (a App) isEditing() bool {
	switch a.view {
	case viewLogin:
		return true
	case viewEvents:
		return a.events.editing || a.events.fbEditing
	case viewOrders:
		return a.orders.state != osNormal
	case viewAccount:
		return a.account.state != accNormal
	}
	return false
}

func (a App) View() string {
	// Header: centered shimmer logo
	logo := renderShimmerLogo(a.frame)

	// Identity line below logo
	statsLine := ""
	if user := a.session.CurrentUser(); user != nil {
		parts := []string{user.FullName()}
		if user.University != "" {
			parts = append(parts, user.University)
		}
		statsLine = metaStyle.Render(strings.Join(parts, " · "))
	}
	if a.newerThan != "" {
		if statsLine != "" {
			statsLine += metaStyle.Render(" · ")
		}
		statsLine += goldStyle.Render(a.newerThan + " available, run: meetix update")
	}

	logoWidth := lipgloss.Width(logo)
	logoPad := (a.width - logoWidth) / 2
	if logoPad < 0 {
		logoPad = 0
	}
	header := strings.Repeat(" ", logoPad) + logo

	if statsLine != "" {
		statsWidth := lipgloss.Width(statsLine)
		statsPad := (a.width - statsWidth) / 2
		if statsPad < 0 {
			statsPad = 0
		}
		header += "\n" + strings.Repeat(" ", statsPad) + statsLine
	} else {
		header += "\n"
	}

	// Tab bar: equal-width columns spread across the terminal
	type tabEntry struct {
		key  string
		name string
		v    view
	}
	tabs := []tabEntry{
		{"1", "Events", viewEvents},
		{"2", "Tickets", viewTickets},
		{"3", "Orders", viewOrders},
		{"4", "Alerts", viewAlerts},
		{"5", "Account", viewAccount},
	}

	var centeredTabs string
	if a.view == viewLogin {
		centeredTabs = ""
	} else {
		colWidth := a.width / len(tabs)
		var tabBar strings.Builder
		for _, t := range tabs {
			var label string
			if t.v == a.view {
				label = accentStyle.Render(t.key) + " " + selectedStyle.Underline(true).Render(t.name)
			} else {
				label = metaStyle.Render(t.key) + " " + dimStyle.Render(t.name)
			}
			// Alerts tab: unread badge
			if t.v == viewAlerts {
				if n := a.alerts.unread(); n > 0 {
					label += " " + badgeStyle.Render(fmt.Sprintf("●%d", n))
				}
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
			tabBar.WriteString(strings.Repeat(" ", leftPad) + label + strings.Repeat(" ", rightPad))
		}
		centeredTabs = tabBar.String()
	}

	// Body + context help
	var body string
	var help string
	switch a.view {
	case viewEvents:
		body = a.events.View()
		if a.events.detail {
			help = " " + helpEntry("1-5", "tabs") + "  " + helpEntry("i", "register") + "  " + helpEntry("b", "buy") + "  " + helpEntry("c", "check-in") + "  " + helpEntry("f", "feedback") + "  " + helpEntry("o", "open") + "  " + helpEntry("esc", "back")
		} else {
			help = " " + helpEntry("1-5", "tabs") + "  " + helpEntry("j/k", "nav") + "  " + helpEntry("/", "search") + "  " + helpEntry("t", "category") + "  " + helpEntry("enter", "details") + "  " + helpEntry("h", "help") + "  " + helpEntry("q", "quit")
		}
	case viewTickets:
		body = a.tickets.View()
		help = " " + helpEntry("1-5", "tabs") + "  " + a.tickets.helpKeys()
	case viewOrders:
		body = a.orders.View()
		help = " " + helpEntry("1-5", "tabs") + "  " + a.orders.helpKeys()
	case viewAlerts:
		body = a.alerts.View()
		help = " " + helpEntry("1-5", "tabs") + "  " + helpEntry("j/k", "nav") + "  " + helpEntry("enter", "mark read") + "  " + helpEntry("a", "mark all") + "  " + helpEntry("h", "help") + "  " + helpEntry("q", "quit")
	case viewAccount:
		body = a.account.View()
		help = " " + helpEntry("1-5", "tabs") + "  " + a.account.helpKeys()
	case viewLogin:
		body = a.login.View()
		help = " " + helpEntry("tab", "next") + "  " + helpEntry("enter", "submit") + "  " + helpEntry("ctrl+r", "register") + "  " + helpEntry("ctrl+c", "quit")
	}

	// Help overlay
	if a.helpOpen {
		body = helpView(a.helpCursor)
		help = " " + helpEntry("j/k", "nav") + "  " + helpEntry("enter", "open") + "  " + helpEntry("esc", "close")
	}

	// Chrome budget: header(2) + tabs(1) + help(1) = 4 lines + body
	body = strings.TrimRight(truncateToHeight(body, a.height-4), "\n")

	return fmt.Sprintf("%s\n%s\n%s\n%s", header, centeredTabs, body, help)
}
