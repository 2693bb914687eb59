package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/JoaoLucasCordeiro/meetix-cli/internal/browser"
	"github.com/JoaoLucasCordeiro/meetix-cli/pkg/client"
	"github.com/JoaoLucasCordeiro/meetix-cli/pkg/domain"
)

// -- messages --

type eventsLoadedMsg struct {
	events []domain.Event
	err    error
}

type participantCountMsg struct {
	eventID uuid.UUID
	count   int
	err     error
}

type eventRefreshedMsg struct {
	event *domain.Event
	err   error
}

type participationsLoadedMsg struct {
	participations []domain.Participant
	err            error
}

type registerResultMsg struct {
	participant *domain.Participant
	err         error
}

type cancelRegistrationMsg struct {
	eventID uuid.UUID
	err     error
}

type checkInResultMsg struct {
	participant *domain.Participant
	err         error
}

type feedbackSubmittedMsg struct {
	feedback *domain.Feedback
	err      error
}

type myFeedbackMsg struct {
	eventID  uuid.UUID
	feedback *domain.Feedback
}

// buyTicketMsg asks the root model to open the order form for a paid event.
type buyTicketMsg struct {
	event domain.Event
}

// -- model --

type eventsModel struct {
	client         *client.Client
	events         []domain.Event
	counts         map[uuid.UUID]int
	participations map[uuid.UUID]domain.Participant
	myFeedback     map[uuid.UUID]*domain.Feedback
	cursor         int
	category       string
	search         string
	editing        bool // typing in search
	detail         bool
	loading        bool
	err            error
	statusMsg      string
	width          int
	height         int

	// inline feedback form (detail view)
	fbEditing bool
	fbRating  int
	fbComment string
}

func newEventsModel(c *client.Client) eventsModel {
	return eventsModel{
		client:         c,
		loading:        true,
		counts:         make(map[uuid.UUID]int),
		participations: make(map[uuid.UUID]domain.Participant),
		myFeedback:     make(map[uuid.UUID]*domain.Feedback),
	}
}

func (m eventsModel) Init() tea.Cmd {
	return tea.Batch(m.load(), m.loadParticipations())
}

func (m eventsModel) load() tea.Cmd {
	c := m.client
	category := m.category
	return func() tea.Msg {
		events, err := c.ListEvents(context.Background(), category, pageSize, 0)
		return eventsLoadedMsg{events: events, err: err}
	}
}

func (m eventsModel) loadParticipations() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		parts, err := c.MyParticipations(context.Background())
		return participationsLoadedMsg{participations: parts, err: err}
	}
}

// loadEvent re-fetches a single event so the detail view reflects edits
// made since the list was loaded.
func (m eventsModel) loadEvent(eventID uuid.UUID) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		e, err := c.GetEvent(context.Background(), eventID)
		return eventRefreshedMsg{event: e, err: err}
	}
}

func (m eventsModel) loadCount(eventID uuid.UUID) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		n, err := c.ParticipantCount(context.Background(), eventID)
		return participantCountMsg{eventID: eventID, count: n, err: err}
	}
}

func (m eventsModel) loadMyFeedback(eventID uuid.UUID) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		fb, err := c.MyFeedback(context.Background(), eventID)
		if err != nil {
			fb = nil
		}
		return myFeedbackMsg{eventID: eventID, feedback: fb}
	}
}

func (m eventsModel) Update(msg tea.Msg) (eventsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case eventsLoadedMsg:
		m.loading = false
		m.events = msg.events
		m.err = msg.err
		if m.cursor >= len(m.events) {
			m.cursor = 0
		}
		// Fan out one count request per event for the spots column
		var cmds []tea.Cmd
		for _, e := range m.events {
			cmds = append(cmds, m.loadCount(e.ID))
		}
		if len(cmds) > 0 {
			return m, tea.Batch(cmds...)
		}
		return m, nil

	case eventRefreshedMsg:
		if msg.err == nil && msg.event != nil {
			for i := range m.events {
				if m.events[i].ID == msg.event.ID {
					m.events[i] = *msg.event
					break
				}
			}
		}
		return m, nil

	case participantCountMsg:
		if msg.err == nil {
			m.counts[msg.eventID] = msg.count
		}
		return m, nil

	case participationsLoadedMsg:
		if msg.err == nil {
			m.participations = make(map[uuid.UUID]domain.Participant, len(msg.participations))
			for _, p := range msg.participations {
				m.participations[p.EventID] = p
			}
		}
		return m, nil

	case registerResultMsg:
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("registration failed: %v", msg.err)
			return m, nil
		}
		m.statusMsg = "registered!"
		if msg.participant != nil {
			m.participations[msg.participant.EventID] = *msg.participant
			return m, m.loadCount(msg.participant.EventID)
		}
		return m, nil

	case cancelRegistrationMsg:
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("cancel failed: %v", msg.err)
			return m, m.loadParticipations()
		}
		delete(m.participations, msg.eventID)
		m.statusMsg = "registration cancelled"
		return m, m.loadParticipations()

	case checkInResultMsg:
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("check-in failed: %v", msg.err)
			return m, nil
		}
		if msg.participant != nil {
			m.participations[msg.participant.EventID] = *msg.participant
		}
		m.statusMsg = "checked in!"
		return m, nil

	case feedbackSubmittedMsg:
		if msg.err != nil {
			if client.IsStatus(msg.err, 409) {
				m.statusMsg = "feedback already submitted"
			} else {
				m.statusMsg = fmt.Sprintf("feedback failed: %v", msg.err)
			}
		} else {
			m.myFeedback[msg.feedback.EventID] = msg.feedback
			m.statusMsg = "thanks for the feedback!"
		}
		m.fbEditing = false
		m.fbRating = 0
		m.fbComment = ""
		return m, nil

	case myFeedbackMsg:
		m.myFeedback[msg.eventID] = msg.feedback
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		m.statusMsg = ""
		if m.editing {
			return m.updateSearch(msg)
		}
		if m.fbEditing {
			return m.updateFeedback(msg)
		}
		if m.detail {
			return m.updateDetail(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m eventsModel) updateSearch(msg tea.KeyMsg) (eventsModel, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.editing = false
		m.cursor = 0
	case "esc":
		m.editing = false
		m.search = ""
		m.cursor = 0
	default:
		m.search = editRune(m.search, msg.String())
	}
	return m, nil
}

func (m eventsModel) updateList(msg tea.KeyMsg) (eventsModel, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if m.cursor < len(m.visible())-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "enter":
		if e, ok := m.selected(); ok {
			m.detail = true
			return m, tea.Batch(m.loadMyFeedback(e.ID), m.loadEvent(e.ID))
		}
	case "/":
		m.editing = true
		m.search = ""
	case "t":
		// Cycle category filter (all -> first -> ... -> last -> all)
		m.category = nextCategory(m.category)
		m.cursor = 0
		m.loading = true
		return m, m.load()
	case "r":
		m.loading = true
		return m, tea.Batch(m.load(), m.loadParticipations())
	}
	return m, nil
}

func (m eventsModel) updateDetail(msg tea.KeyMsg) (eventsModel, tea.Cmd) {
	e, ok := m.selected()
	if !ok {
		m.detail = false
		return m, nil
	}

	switch msg.String() {
	case "esc":
		m.detail = false
	case "i":
		if e.IsPaid() {
			m.statusMsg = "paid event, press b to buy a ticket"
			return m, nil
		}
		if _, registered := m.participations[e.ID]; registered {
			m.statusMsg = "already registered"
			return m, nil
		}
		c := m.client
		id := e.ID
		return m, func() tea.Msg {
			p, err := c.RegisterForEvent(context.Background(), id)
			return registerResultMsg{participant: p, err: err}
		}
	case "x":
		p, registered := m.participations[e.ID]
		if !registered {
			return m, nil
		}
		// The local entry stays until the backend confirms, so a failed
		// cancel can be retried.
		c := m.client
		eventID := e.ID
		return m, func() tea.Msg {
			err := c.CancelRegistration(context.Background(), p.ID)
			return cancelRegistrationMsg{eventID: eventID, err: err}
		}
	case "c":
		p, registered := m.participations[e.ID]
		if !registered || p.CheckedIn() {
			return m, nil
		}
		c := m.client
		return m, func() tea.Msg {
			updated, err := c.CheckIn(context.Background(), p.ID)
			return checkInResultMsg{participant: updated, err: err}
		}
	case "b":
		if !e.IsPaid() {
			m.statusMsg = "free event, press i to register"
			return m, nil
		}
		ev := e
		return m, func() tea.Msg {
			return buyTicketMsg{event: ev}
		}
	case "f":
		if !e.HasEnded() {
			m.statusMsg = "feedback opens after the event ends"
			return m, nil
		}
		if m.myFeedback[e.ID] != nil {
			m.statusMsg = "feedback already submitted"
			return m, nil
		}
		m.fbEditing = true
		m.fbRating = 5
		m.fbComment = ""
	case "o":
		if e.ExternalURL != "" {
			browser.Open(e.ExternalURL) //nolint:errcheck // best-effort browser open
		}
	}
	return m, nil
}

func (m eventsModel) updateFeedback(msg tea.KeyMsg) (eventsModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.fbEditing = false
		m.fbRating = 0
		m.fbComment = ""
	case "1", "2", "3", "4", "5":
		m.fbRating = int(msg.String()[0] - '0')
	case "enter":
		e, ok := m.selected()
		if !ok {
			m.fbEditing = false
			return m, nil
		}
		req := client.SubmitFeedbackRequest{
			EventID: e.ID,
			Rating:  m.fbRating,
			Comment: strings.TrimSpace(m.fbComment),
		}
		c := m.client
		return m, func() tea.Msg {
			fb, err := c.SubmitFeedback(context.Background(), req)
			return feedbackSubmittedMsg{feedback: fb, err: err}
		}
	default:
		m.fbComment = editRune(m.fbComment, msg.String())
	}
	return m, nil
}

// visible applies the client-side search filter on top of the server-side
// category filter.
func (m eventsModel) visible() []domain.Event {
	if m.search == "" {
		return m.events
	}
	q := strings.ToLower(m.search)
	var out []domain.Event
	for _, e := range m.events {
		if strings.Contains(strings.ToLower(e.Name), q) ||
			strings.Contains(strings.ToLower(e.Location), q) {
			out = append(out, e)
		}
	}
	return out
}

func (m eventsModel) selected() (domain.Event, bool) {
	vis := m.visible()
	if m.cursor >= len(vis) {
		return domain.Event{}, false
	}
	return vis[m.cursor], true
}

func nextCategory(current string) string {
	if current == "" {
		return domain.EventCategories[0]
	}
	for i, c := range domain.EventCategories {
		if c == current {
			if i+1 < len(domain.EventCategories) {
				return domain.EventCategories[i+1]
			}
			return "" // wrap to "all"
		}
	}
	return ""
}

func (m eventsModel) View() string {
	if m.detail {
		return m.viewDetail()
	}

	var b strings.Builder

	// Search + category filter line
	if m.editing {
		b.WriteString(" " + searchStyle.Render("/ "+m.search+"█"))
	} else if m.search != "" {
		b.WriteString(" " + searchStyle.Render("/ "+m.search))
	} else {
		b.WriteString(" " + dimStyle.Render("/ search..."))
	}
	b.WriteString("   ")
	if m.category == "" {
		b.WriteString(searchStyle.Render("[all]"))
	} else {
		b.WriteString(CategoryStyle(m.category).Render("[" + m.category + "]"))
	}
	b.WriteString("  " + helpKeyStyle.Render("t"))
	b.WriteString("\n")

	// Separator
	sepW := m.width - 2
	if sepW < 4 {
		sepW = 4
	}
	b.WriteString(" " + metaStyle.Render(strings.Repeat("─", sepW)) + "\n")

	if m.statusMsg != "" {
		b.WriteString(" " + accentStyle.Render(m.statusMsg) + "\n")
	}

	if m.loading {
		b.WriteString(" " + dimStyle.Render("loading..."))
		return b.String()
	}
	if m.err != nil {
		b.WriteString(" " + dimStyle.Render(fmt.Sprintf("error: %v", m.err)))
		return b.String()
	}

	return b.String() + m.viewList()
}

func (m eventsModel) viewList() string {
	events := m.visible()
	if len(events) == 0 {
		return " " + dimStyle.Render("no events found")
	}

	var b strings.Builder

	viewChrome := 8 // search + separator + detail preview chrome
	available := m.height - viewChrome
	if available < 6 {
		available = 6
	}
	maxVisible := available * 3 / 5
	if maxVisible < 3 {
		maxVisible = 3
	}

	start := 0
	if m.cursor >= maxVisible {
		start = m.cursor - maxVisible + 1
	}

	for i := start; i < len(events) && i < start+maxVisible; i++ {
		e := events[i]

		cursor := "  "
		titleStyle := dimStyle
		if i == m.cursor {
			cursor = accentStyle.Render("▸") + " "
			titleStyle = normalStyle.Bold(true)
		}

		dot := CategoryStyle(e.Category).Render("●") + " "

		// Right columns: date (16), price (9), spots (9)
		dateCol := metaStyle.Render(fmt.Sprintf("%-16s", formatEventDate(e.StartsAt)))
		var priceCol string
		if e.IsPaid() {
			priceCol = moneyStyle.Render(fmt.Sprintf("%9s", formatMoney(e.PriceCents)))
		} else {
			priceCol = freeStyle.Render(fmt.Sprintf("%9s", "free"))
		}
		spotsCol := ""
		if n, ok := m.counts[e.ID]; ok && e.Capacity > 0 {
			if e.IsFull(n) {
				spotsCol = rejectStyle.Render("     full")
			} else {
				spotsCol = metaStyle.Render(fmt.Sprintf("%4d left", e.Remaining(n)))
			}
		} else {
			spotsCol = strings.Repeat(" ", 9)
		}

		rightWidth := 16 + 9 + 9 + 3
		titleWidth := m.width - 4 - rightWidth
		if titleWidth < 14 {
			titleWidth = 14
		}
		name := truncStr(e.Name, titleWidth)
		if _, registered := m.participations[e.ID]; registered {
			name = truncStr(e.Name, titleWidth-2) + " ✓"
		}
		namePadded := fmt.Sprintf("%-*s", titleWidth, name)

		line := cursor + dot + titleStyle.Render(namePadded) + " " + dateCol + " " + priceCol + " " + spotsCol
		if i == m.cursor {
			padded := line + strings.Repeat(" ", max(m.width-lipgloss.Width(line), 0))
			b.WriteString(selectedRowBg.Render(padded) + "\n")
		} else {
			b.WriteString(line + "\n")
		}
	}

	// Detail preview for selected event
	if m.cursor < len(events) {
		e := events[m.cursor]
		b.WriteString("\n")

		header := " " + CategoryStyle(e.Category).Render("["+e.Category+"]")
		header += "  " + metaStyle.Render(e.Location)
		if e.IsPaid() {
			header += "  " + moneyStyle.Render(formatMoney(e.PriceCents))
		}
		b.WriteString(header + "\n")

		if e.Description != "" {
			detailWidth := m.width - 4
			if detailWidth < 40 {
				detailWidth = 40
			}
			maxDetailLines := available - maxVisible - 2
			if maxDetailLines < 2 {
				maxDetailLines = 2
			}
			wrapped := lipgloss.NewStyle().Width(detailWidth).Render(cleanDescription(e.Description))
			lines := strings.Split(wrapped, "\n")
			if len(lines) > maxDetailLines {
				lines = lines[:maxDetailLines]
			}
			for _, line := range lines {
				b.WriteString(" " + normalStyle.Render(line) + "\n")
			}
		}
	}

	return truncateToHeight(b.String(), m.height)
}

func (m eventsModel) viewDetail() string {
	e, ok := m.selected()
	if !ok {
		return ""
	}

	var b strings.Builder
	b.WriteString(" " + dimStyle.Render("<- back (esc)") + "\n")
	b.WriteString(" " + selectedStyle.Render(e.Name) + "\n")

	meta := " " + CategoryStyle(e.Category).Render(e.Category)
	meta += metaStyle.Render(" · ") + metaStyle.Render(e.Location)
	meta += metaStyle.Render(" · ") + metaStyle.Render(formatEventDate(e.StartsAt))
	if e.IsPaid() {
		meta += metaStyle.Render(" · ") + moneyStyle.Render(formatMoney(e.PriceCents))
	} else {
		meta += metaStyle.Render(" · ") + freeStyle.Render("free")
	}
	b.WriteString(meta + "\n")

	if n, ok := m.counts[e.ID]; ok && e.Capacity > 0 {
		spots := fmt.Sprintf("%d / %d registered", n, e.Capacity)
		if e.IsFull(n) {
			spots += "  " + rejectStyle.Render("FULL")
		}
		b.WriteString(" " + metaStyle.Render(spots) + "\n")
	}

	b.WriteString("\n")
	detailWidth := m.width - 4
	if detailWidth < 40 {
		detailWidth = 40
	}
	wrapped := lipgloss.NewStyle().Width(detailWidth).Render(e.Description)
	for _, line := range strings.Split(wrapped, "\n") {
		b.WriteString(" " + normalStyle.Render(line) + "\n")
	}

	if e.ExternalURL != "" {
		b.WriteString("\n " + metaStyle.Render(e.ExternalURL) + "\n")
	}

	// Registration status line
	if p, registered := m.participations[e.ID]; registered {
		status := "registered"
		if p.CheckedIn() {
			status = "checked in " + formatTime(*p.CheckedInAt)
		}
		b.WriteString("\n " + approvedStyle.Render("✓ "+status) + "\n")
	}

	// Feedback: either the submitted rating or the inline form
	if fb := m.myFeedback[e.ID]; fb != nil {
		b.WriteString("\n " + sectionHeaderStyle.Render("YOUR FEEDBACK") + "  " + ratingStars(fb.Rating) + "\n")
		if fb.Comment != "" {
			b.WriteString(" " + dimStyle.Render(fb.Comment) + "\n")
		}
	} else if m.fbEditing {
		b.WriteString("\n " + sectionHeaderStyle.Render("RATE THIS EVENT") + "\n")
		b.WriteString("   " + ratingStars(m.fbRating) + "  " + dimStyle.Render("(1-5)") + "\n")
		b.WriteString("   " + inputPromptStyle.Render("comment:") + " " + m.fbComment + accentStyle.Render("█") + "\n")
		b.WriteString("   " + dimStyle.Render("enter submit · esc cancel") + "\n")
	}

	if m.statusMsg != "" {
		b.WriteString("\n " + accentStyle.Render(m.statusMsg) + "\n")
	}

	return truncateToHeight(b.String(), m.height)
}
