package tui

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/JoaoLucasCordeiro/meetix-cli/pkg/client"
	"github.com/JoaoLucasCordeiro/meetix-cli/pkg/domain"
)

func sampleOrders() []domain.TicketOrder {
	return []domain.TicketOrder{
		{ID: uuid.New(), EventName: "Rust Workshop", Quantity: 2, TotalCents: 5000,
			Status: domain.OrderPending, PixKey: "meetix@pix", PixPayload: "000201pixpayload"},
		{ID: uuid.New(), EventName: "Hack Night", Quantity: 1, TotalCents: 1500,
			Status: domain.OrderApproved},
	}
}

func loadedOrdersModel(t *testing.T, c *client.Client) ordersModel {
	t.Helper()
	m := newOrdersModel(c)
	m.width = 100
	m.height = 30
	m, _ = m.Update(ordersLoadedMsg{orders: sampleOrders()})
	return m
}

func TestStartPurchasePrimesForm(t *testing.T) {
	m := newOrdersModel(nil)
	e := domain.Event{ID: uuid.New(), Name: "Rust Workshop", PriceCents: 2500}

	m = m.startPurchase(e)
	if m.state != osCreating {
		t.Fatalf("state = %d, want osCreating", m.state)
	}
	if m.qtyField != "1" {
		t.Errorf("qtyField = %q, want default 1", m.qtyField)
	}
	if m.buyEvent == nil || m.buyEvent.Name != "Rust Workshop" {
		t.Error("buyEvent not set")
	}
}

func TestQuantityFieldAcceptsDigitsOnly(t *testing.T) {
	m := newOrdersModel(nil)
	m = m.startPurchase(domain.Event{ID: uuid.New(), PriceCents: 1000})

	for _, key := range []string{"a", "x", "-", "3"} {
		m, _ = m.Update(keyRunes(key))
	}
	if m.qtyField != "13" {
		t.Errorf("qtyField = %q, want %q", m.qtyField, "13")
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	if m.qtyField != "1" {
		t.Errorf("qtyField after backspace = %q, want %q", m.qtyField, "1")
	}
}

func TestSubmitOrderRejectsZeroQuantity(t *testing.T) {
	m := newOrdersModel(nil)
	m = m.startPurchase(domain.Event{ID: uuid.New(), PriceCents: 1000})
	m.qtyField = "0"

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("expected no command for zero quantity")
	}
	if !strings.Contains(m.statusMsg, "at least 1") {
		t.Errorf("statusMsg = %q, want quantity hint", m.statusMsg)
	}
}

func TestInvalidCouponAbortsOrder(t *testing.T) {
	var orderPosted bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/api/coupon/validate"):
			json.NewEncoder(w).Encode(domain.Coupon{Code: "NOPE", Valid: false})
		case r.URL.Path == "/api/ticket-orders" && r.Method == http.MethodPost:
			orderPosted = true
			json.NewEncoder(w).Encode(domain.TicketOrder{ID: uuid.New()})
		default:
			w.Write([]byte("[]"))
		}
	}))
	defer srv.Close()

	c := client.New(client.Config{BaseURL: srv.URL})
	m := newOrdersModel(c)
	m = m.startPurchase(domain.Event{ID: uuid.New(), PriceCents: 1000})
	m.couponField = "nope"

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a submit command")
	}
	msg, ok := cmd().(couponRejectedMsg)
	if !ok {
		t.Fatalf("cmd returned %T, want couponRejectedMsg", cmd())
	}
	if msg.code != "NOPE" {
		t.Errorf("rejected code = %q, want upper-cased NOPE", msg.code)
	}
	if orderPosted {
		t.Error("order was created despite the invalid coupon")
	}
}

func TestValidCouponPlacesOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/api/coupon/validate"):
			json.NewEncoder(w).Encode(domain.Coupon{Code: "SAVE10", DiscountPercent: 10, Valid: true})
		case r.URL.Path == "/api/ticket-orders" && r.Method == http.MethodPost:
			var req client.CreateOrderRequest
			json.NewDecoder(r.Body).Decode(&req)
			json.NewEncoder(w).Encode(domain.TicketOrder{
				ID: uuid.New(), Quantity: req.Quantity, Status: domain.OrderPending,
			})
		default:
			w.Write([]byte("[]"))
		}
	}))
	defer srv.Close()

	c := client.New(client.Config{BaseURL: srv.URL})
	m := newOrdersModel(c)
	m = m.startPurchase(domain.Event{ID: uuid.New(), PriceCents: 1000})
	m.qtyField = "2"
	m.couponField = "save10"

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a submit command")
	}
	msg, ok := cmd().(orderCreatedMsg)
	if !ok {
		t.Fatalf("cmd returned %T, want orderCreatedMsg", cmd())
	}
	if msg.err != nil {
		t.Fatalf("unexpected error: %v", msg.err)
	}
	if msg.order.Quantity != 2 {
		t.Errorf("order quantity = %d, want 2", msg.order.Quantity)
	}
}

func TestEnterRefreshesSelectedOrder(t *testing.T) {
	orders := sampleOrders()
	reviewed := orders[0]
	reviewed.Status = domain.OrderApproved

	var hit string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hit = r.URL.Path
		json.NewEncoder(w).Encode(reviewed) //nolint:errcheck
	}))
	defer srv.Close()

	c := client.New(client.Config{BaseURL: srv.URL})
	m := loadedOrdersModel(t, c)

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter did not issue a refresh command")
	}
	msg, ok := cmd().(orderRefreshedMsg)
	if !ok {
		t.Fatalf("cmd returned %T, want orderRefreshedMsg", cmd())
	}
	if msg.err != nil {
		t.Fatalf("refresh failed: %v", msg.err)
	}
	if want := "/api/ticket-orders/" + reviewed.ID.String(); hit != want {
		t.Errorf("fetched %q, want %q", hit, want)
	}

	m, _ = m.Update(msg)
	if got := m.orders[0].Status; got != domain.OrderApproved {
		t.Errorf("Status = %q, want the reviewed status in place", got)
	}
	if !strings.Contains(m.statusMsg, domain.OrderApproved) {
		t.Errorf("statusMsg = %q, want it to surface the new status", m.statusMsg)
	}
}

func TestCancelRequiresConfirmation(t *testing.T) {
	m := loadedOrdersModel(t, nil)
	m.cursor = 0 // pending order

	m, _ = m.Update(keyRunes("d"))
	if m.state != osDeleting {
		t.Fatalf("state = %d, want osDeleting", m.state)
	}
	m, _ = m.Update(keyRunes("n"))
	if m.state != osNormal {
		t.Error("n did not abort the cancellation")
	}
	if len(m.orders) != 2 {
		t.Error("order list changed without confirmation")
	}
}

func TestCancelRefusedForApprovedOrder(t *testing.T) {
	m := loadedOrdersModel(t, nil)
	m.cursor = 1 // approved order

	m, _ = m.Update(keyRunes("d"))
	if m.state != osNormal {
		t.Error("approved order entered cancel confirmation")
	}
}

func TestOrderCancelledRemovesRow(t *testing.T) {
	m := loadedOrdersModel(t, nil)
	id := m.orders[0].ID

	m, _ = m.Update(orderCancelledMsg{id: id.String()})
	if len(m.orders) != 1 {
		t.Fatalf("orders = %d, want 1 after cancellation", len(m.orders))
	}
	if m.orders[0].EventName != "Hack Night" {
		t.Error("wrong order removed")
	}
	if m.statusMsg != "order cancelled" {
		t.Errorf("statusMsg = %q", m.statusMsg)
	}
}

func TestProofUploadGatedOnAwaitingProof(t *testing.T) {
	m := loadedOrdersModel(t, nil)

	m.cursor = 1 // approved, nothing to prove
	m, _ = m.Update(keyRunes("u"))
	if m.state != osNormal {
		t.Error("u opened proof input for an approved order")
	}

	m.cursor = 0 // pending without proof
	m, _ = m.Update(keyRunes("u"))
	if m.state != osProof {
		t.Error("u did not open proof input for a pending order")
	}
}

func TestProofUploadRequiresPath(t *testing.T) {
	m := loadedOrdersModel(t, nil)
	m.state = osProof

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("expected no upload command without a path")
	}
	if m.statusMsg != "path required" {
		t.Errorf("statusMsg = %q", m.statusMsg)
	}
}

func TestOrdersViewMarksNeedsProof(t *testing.T) {
	m := loadedOrdersModel(t, nil)

	out := m.View()
	if !strings.Contains(out, "needs proof") {
		t.Errorf("view missing needs-proof marker:\n%s", out)
	}
	if !strings.Contains(out, "R$ 50,00") {
		t.Errorf("view missing formatted total:\n%s", out)
	}
}

func TestOrderFormShowsRunningTotal(t *testing.T) {
	m := newOrdersModel(nil)
	m = m.startPurchase(domain.Event{ID: uuid.New(), Name: "Rust Workshop", PriceCents: 2500})
	m.qtyField = "3"

	out := m.View()
	if !strings.Contains(out, "R$ 75,00") {
		t.Errorf("form missing running total:\n%s", out)
	}
}
