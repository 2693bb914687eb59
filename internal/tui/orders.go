package tui

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/JoaoLucasCordeiro/meetix-cli/pkg/client"
	"github.com/JoaoLucasCordeiro/meetix-cli/pkg/domain"
)

// orderState is the state machine for order interactions.
type orderState int

const (
	osNormal   orderState = iota
	osCreating            // quantity + coupon form for a chosen event
	osProof               // typing the path of the payment proof file
	osDeleting            // cancel confirmation
)

// -- messages --

type ordersLoadedMsg struct {
	orders []domain.TicketOrder
	err    error
}

type orderCreatedMsg struct {
	order *domain.TicketOrder
	err   error
}

type orderRefreshedMsg struct {
	order *domain.TicketOrder
	err   error
}

type orderCancelledMsg struct {
	id  string
	err error
}

type proofUploadedMsg struct {
	order *domain.TicketOrder
	err   error
}

type couponRejectedMsg struct {
	code string
}

type copyPixMsg struct{ err error }

// -- model --

type ordersModel struct {
	client    *client.Client
	orders    []domain.TicketOrder
	cursor    int
	state     orderState
	statusMsg string
	loading   bool
	err       error
	width     int
	height    int

	// creating
	buyEvent    *domain.Event
	qtyField    string
	couponField string
	formFocus   int // 0=quantity, 1=coupon

	// proof upload
	proofPath string
}

func newOrdersModel(c *client.Client) ordersModel {
	return ordersModel{client: c, loading: true}
}

func (m ordersModel) Init() tea.Cmd {
	return m.load()
}

func (m ordersModel) load() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		orders, err := c.MyOrders(context.Background())
		return ordersLoadedMsg{orders: orders, err: err}
	}
}

// startPurchase opens the order form for an event picked in the events view.
func (m ordersModel) startPurchase(e domain.Event) ordersModel {
	m.state = osCreating
	m.buyEvent = &e
	m.qtyField = "1"
	m.couponField = ""
	m.formFocus = 0
	m.statusMsg = ""
	return m
}

func (m ordersModel) Update(msg tea.Msg) (ordersModel, tea.Cmd) {
	switch msg := msg.(type) {
	case ordersLoadedMsg:
		m.loading = false
		m.orders = msg.orders
		m.err = msg.err
		if m.cursor >= len(m.orders) {
			m.cursor = 0
		}
		return m, nil

	case orderCreatedMsg:
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("order failed: %v", msg.err)
			return m, nil
		}
		m.state = osNormal
		m.buyEvent = nil
		m.statusMsg = "order created, pay via PIX and upload the proof (u)"
		return m, m.load()

	case orderRefreshedMsg:
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("refresh failed: %v", msg.err)
			return m, nil
		}
		if msg.order != nil {
			for i := range m.orders {
				if m.orders[i].ID == msg.order.ID {
					m.orders[i] = *msg.order
					break
				}
			}
			m.statusMsg = "status: " + msg.order.Status
		}
		return m, nil

	case couponRejectedMsg:
		m.statusMsg = fmt.Sprintf("coupon %q is not valid for this event", msg.code)
		return m, nil

	case orderCancelledMsg:
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("cancel failed: %v", msg.err)
		} else {
			for i, o := range m.orders {
				if o.ID.String() == msg.id {
					m.orders = append(m.orders[:i], m.orders[i+1:]...)
					break
				}
			}
			if m.cursor >= len(m.orders) && m.cursor > 0 {
				m.cursor = len(m.orders) - 1
			}
			m.statusMsg = "order cancelled"
		}
		m.state = osNormal
		return m, nil

	case proofUploadedMsg:
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("upload failed: %v", msg.err)
			return m, nil
		}
		m.state = osNormal
		m.proofPath = ""
		m.statusMsg = "proof uploaded, awaiting review"
		return m, m.load()

	case copyPixMsg:
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("copy failed: %v", msg.err)
		} else {
			m.statusMsg = "PIX code copied!"
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

func (m ordersModel) handleKey(msg tea.KeyMsg) (ordersModel, tea.Cmd) {
	switch m.state {
	case osCreating:
		return m.handleKeyCreating(msg)
	case osProof:
		return m.handleKeyProof(msg)
	case osDeleting:
		return m.handleKeyDeleting(msg)
	}

	switch msg.String() {
	case "j", "down":
		if m.cursor < len(m.orders)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "enter":
		// Re-fetch the selected order so a review decision shows up
		// without reloading the whole list.
		if o, ok := m.selected(); ok {
			c := m.client
			id := o.ID
			return m, func() tea.Msg {
				order, err := c.GetOrder(context.Background(), id)
				return orderRefreshedMsg{order: order, err: err}
			}
		}
	case "u":
		if o, ok := m.selected(); ok && o.AwaitingProof() {
			m.state = osProof
			m.proofPath = ""
		}
	case "c":
		if o, ok := m.selected(); ok && o.PixPayload != "" {
			payload := o.PixPayload
			return m, func() tea.Msg {
				err := clipboard.WriteAll(payload)
				return copyPixMsg{err: err}
			}
		}
	case "d":
		if o, ok := m.selected(); ok && o.Status == domain.OrderPending {
			m.state = osDeleting
		}
	case "r":
		m.loading = true
		return m, m.load()
	}
	return m, nil
}

func (m ordersModel) handleKeyCreating(msg tea.KeyMsg) (ordersModel, tea.Cmd) {
	switch msg.String() {
	case "tab":
		m.formFocus = 1 - m.formFocus
	case "esc":
		m.state = osNormal
		m.buyEvent = nil
	case "enter":
		return m.submitOrder()
	default:
		if m.formFocus == 0 {
			key := msg.String()
			if key == "backspace" || (len(key) == 1 && key[0] >= '0' && key[0] <= '9') {
				m.qtyField = editRune(m.qtyField, key)
			}
		} else {
			m.couponField = editRune(m.couponField, msg.String())
		}
	}
	return m, nil
}

// submitOrder validates the coupon first when one was typed, then creates
// the order. An invalid coupon aborts without placing the order.
func (m ordersModel) submitOrder() (ordersModel, tea.Cmd) {
	if m.buyEvent == nil {
		m.state = osNormal
		return m, nil
	}
	qty, err := strconv.Atoi(strings.TrimSpace(m.qtyField))
	if err != nil || qty < 1 {
		m.statusMsg = "quantity must be at least 1"
		return m, nil
	}

	req := client.CreateOrderRequest{
		EventID:    m.buyEvent.ID,
		Quantity:   qty,
		CouponCode: strings.TrimSpace(strings.ToUpper(m.couponField)),
	}
	c := m.client
	return m, func() tea.Msg {
		if req.CouponCode != "" {
			coupon, err := c.ValidateCoupon(context.Background(), req.CouponCode, req.EventID)
			if err != nil || !coupon.Valid {
				return couponRejectedMsg{code: req.CouponCode}
			}
		}
		order, err := c.CreateOrder(context.Background(), req)
		return orderCreatedMsg{order: order, err: err}
	}
}

func (m ordersModel) handleKeyProof(msg tea.KeyMsg) (ordersModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.state = osNormal
		m.proofPath = ""
	case "enter":
		o, ok := m.selected()
		if !ok {
			m.state = osNormal
			return m, nil
		}
		path := strings.TrimSpace(m.proofPath)
		if path == "" {
			m.statusMsg = "path required"
			return m, nil
		}
		c := m.client
		id := o.ID
		return m, func() tea.Msg {
			data, err := os.ReadFile(path)
			if err != nil {
				return proofUploadedMsg{err: err}
			}
			order, err := c.UploadProof(context.Background(), id, path, data)
			return proofUploadedMsg{order: order, err: err}
		}
	default:
		m.proofPath = editRune(m.proofPath, msg.String())
	}
	return m, nil
}

func (m ordersModel) handleKeyDeleting(msg tea.KeyMsg) (ordersModel, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		if o, ok := m.selected(); ok {
			id := o.ID
			c := m.client
			return m, func() tea.Msg {
				err := c.CancelOrder(context.Background(), id)
				return orderCancelledMsg{id: id.String(), err: err}
			}
		}
		m.state = osNormal
	case "n", "N", "esc":
		m.state = osNormal
	}
	return m, nil
}

func (m ordersModel) selected() (domain.TicketOrder, bool) {
	if m.cursor >= len(m.orders) {
		return domain.TicketOrder{}, false
	}
	return m.orders[m.cursor], true
}

// helpKeys returns context-sensitive help text based on the current state.
func (m ordersModel) helpKeys() string {
	switch m.state {
	case osCreating:
		return helpEntry("tab", "next") + "  " + helpEntry("enter", "place order") + "  " + helpEntry("esc", "cancel")
	case osProof:
		return helpEntry("enter", "upload") + "  " + helpEntry("esc", "cancel")
	case osDeleting:
		return helpEntry("y", "confirm") + "  " + helpEntry("n", "keep")
	default:
		return helpEntry("j/k", "nav") + "  " + helpEntry("enter", "status") + "  " + helpEntry("u", "proof") + "  " + helpEntry("c", "copy pix") + "  " + helpEntry("d", "cancel") + "  " + helpEntry("h", "help") + "  " + helpEntry("q", "quit")
	}
}

func (m ordersModel) View() string {
	var b strings.Builder

	if m.state == osCreating && m.buyEvent != nil {
		return m.viewOrderForm()
	}

	b.WriteString(" " + sectionHeaderStyle.Render(fmt.Sprintf("── ORDERS %d ──", len(m.orders))) + "\n")

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
	if len(m.orders) == 0 {
		b.WriteString(" " + dimStyle.Render("no orders yet · buy a ticket from the events tab (b)"))
		return b.String()
	}

	for i, o := range m.orders {
		cursor := "  "
		nameStyle := dimStyle
		if i == m.cursor {
			cursor = accentStyle.Render("▸") + " "
			nameStyle = normalStyle.Bold(true)
		}

		name := o.EventName
		if name == "" {
			name = o.EventID.String()[:8]
		}
		nameCol := nameStyle.Render(fmt.Sprintf("%-28s", truncStr(name, 28)))
		qtyCol := metaStyle.Render(fmt.Sprintf("x%d", o.Quantity))
		totalCol := moneyStyle.Render(fmt.Sprintf("%10s", formatMoney(o.TotalCents)))
		statusCol := statusStyle(o.Status).Render(o.Status)

		line := " " + cursor + nameCol + " " + qtyCol + " " + totalCol + "  " + statusCol
		if o.AwaitingProof() {
			line += " " + pendingStyle.Render("(needs proof)")
		}
		if i == m.cursor {
			padded := line + strings.Repeat(" ", max(m.width-lipgloss.Width(line), 0))
			b.WriteString(selectedRowBg.Render(padded) + "\n")
		} else {
			b.WriteString(line + "\n")
		}

		// Cancel confirmation on selected row
		if i == m.cursor && m.state == osDeleting {
			b.WriteString("   " + rejectStyle.Render("cancel this order? ") +
				accentStyle.Render("y") + dimStyle.Render("/") + dimStyle.Render("n") + "\n")
		}
	}

	// Detail block for the selected order
	if o, ok := m.selected(); ok {
		b.WriteString("\n")
		b.WriteString(" " + metaStyle.Render("placed "+formatTime(o.CreatedAt)) + "\n")
		if o.CouponCode != "" {
			b.WriteString(" " + metaStyle.Render("coupon: ") + goldStyle.Render(o.CouponCode) + "\n")
		}
		if o.Status == domain.OrderPending && o.PixKey != "" {
			b.WriteString(" " + metaStyle.Render("pix key: ") + normalStyle.Render(o.PixKey) + "  " + dimStyle.Render("(c to copy the full code)") + "\n")
		}
		if o.Status == domain.OrderRejected && o.RejectReason != "" {
			b.WriteString(" " + rejectStyle.Render("rejected: "+o.RejectReason) + "\n")
		}
		if m.state == osProof {
			b.WriteString("\n " + inputPromptStyle.Render("proof file:") + " " + m.proofPath + accentStyle.Render("█") + "\n")
			b.WriteString(" " + dimStyle.Render("path to a receipt image or pdf · enter upload · esc cancel") + "\n")
		}
	}

	return truncateToHeight(b.String(), m.height)
}

func (m ordersModel) viewOrderForm() string {
	e := m.buyEvent

	var b strings.Builder
	b.WriteString(" " + sectionHeaderStyle.Render("── BUY TICKETS ──") + "\n\n")
	b.WriteString(" " + selectedStyle.Render(e.Name) + "  " + moneyStyle.Render(formatMoney(e.PriceCents)) + dimStyle.Render(" each") + "\n\n")

	qtyCursor, couponCursor := " ", " "
	qtyStyle, couponStyle := metaStyle, metaStyle
	if m.formFocus == 0 {
		qtyCursor = ">"
		qtyStyle = selectedStyle
	} else {
		couponCursor = ">"
		couponStyle = selectedStyle
	}

	qtyVal := m.qtyField
	couponVal := m.couponField
	if m.formFocus == 0 {
		qtyVal += "█"
	} else {
		couponVal += "█"
	}
	fmt.Fprintf(&b, " %s %s: %s\n", qtyCursor, qtyStyle.Render("quantity"), qtyVal)
	fmt.Fprintf(&b, " %s %s: %s  %s\n", couponCursor, couponStyle.Render("coupon  "), couponVal, dimStyle.Render("(optional)"))

	if qty, err := strconv.Atoi(strings.TrimSpace(m.qtyField)); err == nil && qty > 0 {
		b.WriteString("\n " + metaStyle.Render("total: ") + moneyStyle.Render(formatMoney(qty*e.PriceCents)) + dimStyle.Render(" before discount") + "\n")
	}

	if m.statusMsg != "" {
		b.WriteString("\n " + rejectStyle.Render(m.statusMsg) + "\n")
	}
	return b.String()
}
