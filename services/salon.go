package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/restsoft-app/restsoft-pos/backend"
	"github.com/restsoft-app/restsoft-pos/models"
	"github.com/restsoft-app/restsoft-pos/utils"
)

// Per-table lifecycle.
type TableState string

const (
	TableFree     TableState = "free"
	TableOpen     TableState = "open"
	TableOccupied TableState = "occupied"
	TableBilled   TableState = "billed"
)

type tableTransition struct {
	From TableState
	To   TableState
}

// validTableTransitions is the authoritative lifecycle definition.
// Opening is allowed from every state (re-opening a table preserves
// whatever is pending on it); closing settles from any non-free state.
var validTableTransitions = []tableTransition{
	{From: TableFree, To: TableOpen},
	{From: TableOccupied, To: TableOpen},
	{From: TableBilled, To: TableOpen},
	{From: TableOpen, To: TableOccupied},
	{From: TableOpen, To: TableBilled},
	{From: TableOccupied, To: TableBilled},
	{From: TableOpen, To: TableFree},
	{From: TableOccupied, To: TableFree},
	{From: TableBilled, To: TableFree},
}

var tableTransitionSet = func() map[tableTransition]bool {
	m := make(map[tableTransition]bool, len(validTableTransitions))
	for _, t := range validTableTransitions {
		m[t] = true
	}
	return m
}()

func checkTransition(from, to TableState) error {
	if from == to {
		return nil
	}
	if tableTransitionSet[tableTransition{From: from, To: to}] {
		return nil
	}
	return fmt.Errorf("table cannot go from %s to %s: %w", from, to, ErrBadState)
}

// Table is one salon table. Cart holds the not-yet-sent lines;
// LastSubmitted keeps the lines of the last order that reached the
// upstream, for billing and reprints after the cart was cleared.
type Table struct {
	ID            int
	State         TableState
	Waiter        string
	PartySize     int
	Cart          *Cart
	LastSubmitted []models.CartLine
	BilledLines   []models.CartLine
	OrderID       uint
}

// TableSummary is what the grid renders per table.
type TableSummary struct {
	ID           int        `json:"id"`
	State        TableState `json:"state"`
	Waiter       string     `json:"waiter,omitempty"`
	PartySize    int        `json:"party_size"`
	PendingItems int        `json:"pending_items"`
	PendingTotal float64    `json:"pending_total"`
	OrderID      uint       `json:"order_id,omitempty"`
}

// TableDetail is the sidebar view of one table.
type TableDetail struct {
	TableSummary
	Lines         []models.CartLine `json:"lines"`
	LastSubmitted []models.CartLine `json:"last_submitted,omitempty"`
}

// ResizeBlockedError reports which tables still hold state when a
// shrink would wipe them; the surface shows it as a warning the
// operator must confirm.
type ResizeBlockedError struct {
	Affected []int
}

func (e *ResizeBlockedError) Error() string {
	return fmt.Sprintf("reducing the table count discards active state on tables %v", e.Affected)
}

// Board owns every table of the salon. All methods are called with the
// App serialized, so tables never see interleaved mutations.
type Board struct {
	client  *backend.Client
	gateway *Gateway
	tables  []*Table

	persistCount func(int) error
	notify       func(event string, data interface{})
}

func NewBoard(client *backend.Client, gateway *Gateway, count int, persistCount func(int) error, notify func(string, interface{})) *Board {
	b := &Board{
		client:       client,
		gateway:      gateway,
		persistCount: persistCount,
		notify:       notify,
	}
	b.tables = makeTables(count)
	return b
}

func makeTables(count int) []*Table {
	tables := make([]*Table, count)
	for i := range tables {
		tables[i] = &Table{
			ID:        i + 1,
			State:     TableFree,
			PartySize: 1,
			Cart:      NewCart(),
		}
	}
	return tables
}

func (b *Board) emit(event string, data interface{}) {
	if b.notify != nil {
		b.notify(event, data)
	}
}

func (b *Board) Count() int { return len(b.tables) }

func (b *Board) table(id int) (*Table, error) {
	if id < 1 || id > len(b.tables) {
		return nil, fmt.Errorf("no table %d: %w", id, ErrValidation)
	}
	return b.tables[id-1], nil
}

func (b *Board) Tables() []TableSummary {
	out := make([]TableSummary, 0, len(b.tables))
	for _, t := range b.tables {
		out = append(out, summarize(t))
	}
	return out
}

func summarize(t *Table) TableSummary {
	return TableSummary{
		ID:           t.ID,
		State:        t.State,
		Waiter:       t.Waiter,
		PartySize:    t.PartySize,
		PendingItems: t.Cart.ItemCount(),
		PendingTotal: t.Cart.Total(),
		OrderID:      t.OrderID,
	}
}

func (b *Board) Table(id int) (*TableDetail, error) {
	t, err := b.table(id)
	if err != nil {
		return nil, err
	}
	detail := &TableDetail{
		TableSummary:  summarize(t),
		Lines:         t.Cart.Lines(),
		LastSubmitted: append([]models.CartLine(nil), t.LastSubmitted...),
	}
	return detail, nil
}

// OpenTable makes the table the active focus. Pending lines survive a
// re-open; nothing is cleared here.
func (b *Board) OpenTable(id int) error {
	t, err := b.table(id)
	if err != nil {
		return err
	}
	if err := checkTransition(t.State, TableOpen); err != nil {
		return err
	}
	t.State = TableOpen
	b.emit(EventTableUpdate, summarize(t))
	return nil
}

func (b *Board) SetWaiter(id int, waiter string) error {
	t, err := b.table(id)
	if err != nil {
		return err
	}
	t.Waiter = waiter
	return nil
}

func (b *Board) SetPartySize(id, partySize int) error {
	if partySize < 1 {
		return fmt.Errorf("party size must be at least 1: %w", ErrValidation)
	}
	t, err := b.table(id)
	if err != nil {
		return err
	}
	t.PartySize = partySize
	return nil
}

func (b *Board) AddItem(id int, product models.Product, comment string) error {
	t, err := b.table(id)
	if err != nil {
		return err
	}
	if t.State != TableOpen {
		return fmt.Errorf("table %d is not open: %w", id, ErrBadState)
	}
	t.Cart.AddItem(product, comment)
	b.emit(EventTableUpdate, summarize(t))
	return nil
}

func (b *Board) RemoveItem(id int, productID uint) error {
	t, err := b.table(id)
	if err != nil {
		return err
	}
	t.Cart.RemoveItem(productID)
	b.emit(EventTableUpdate, summarize(t))
	return nil
}

func (b *Board) AdjustQuantity(id int, productID uint, delta int) error {
	t, err := b.table(id)
	if err != nil {
		return err
	}
	t.Cart.AdjustQuantity(productID, delta)
	b.emit(EventTableUpdate, summarize(t))
	return nil
}

// SubmitOrder sends the table's pending lines upstream. On success the
// table becomes occupied, the lines move into LastSubmitted and the
// server order id is recorded. On failure nothing changes.
func (b *Board) SubmitOrder(ctx context.Context, id int, submittedBy string) (*Submission, error) {
	t, err := b.table(id)
	if err != nil {
		return nil, err
	}
	if err := checkTransition(t.State, TableOccupied); err != nil {
		return nil, err
	}

	tc := TableContext{TableID: t.ID, Waiter: t.Waiter, PartySize: t.PartySize}

	snapshot := t.Cart.Lines()
	sub, err := b.gateway.Submit(ctx, tc, t.Cart, submittedBy)
	if err != nil {
		return nil, err
	}

	t.LastSubmitted = snapshot
	t.OrderID = sub.OrderID
	t.State = TableOccupied
	b.emit(EventTableUpdate, summarize(t))
	b.emit(EventOrderUpdate, sub)
	return sub, nil
}

// BillPreview builds the read-only account summary: pending lines if
// there are any, otherwise the last submitted ones. It never mutates
// table state.
func (b *Board) BillPreview(id int) (*models.BillPreview, error) {
	t, err := b.table(id)
	if err != nil {
		return nil, err
	}
	items := t.Cart.Lines()
	if len(items) == 0 {
		items = append([]models.CartLine(nil), t.LastSubmitted...)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("table %d has nothing to bill: %w", id, ErrValidation)
	}

	var total float64
	for _, it := range items {
		total += it.Subtotal()
	}
	return &models.BillPreview{
		TableID:   t.ID,
		Waiter:    t.Waiter,
		PartySize: t.PartySize,
		Items:     items,
		Total:     total,
		Timestamp: time.Now(),
	}, nil
}

// ConfirmBill settles the preview: the table moves to billed and the
// billed item set is snapshotted.
func (b *Board) ConfirmBill(id int) error {
	t, err := b.table(id)
	if err != nil {
		return err
	}
	if err := checkTransition(t.State, TableBilled); err != nil {
		return err
	}
	items := t.Cart.Lines()
	if len(items) == 0 {
		items = append([]models.CartLine(nil), t.LastSubmitted...)
	}
	if len(items) == 0 {
		return fmt.Errorf("table %d has nothing to bill: %w", id, ErrValidation)
	}

	t.BilledLines = items
	t.State = TableBilled
	b.emit(EventTableUpdate, summarize(t))
	return nil
}

// CloseTable resets the table to free. When the table was billed and
// an upstream order exists, that order is deleted: the account was
// settled in cash outside the system and the upstream list must not
// keep showing it as open.
func (b *Board) CloseTable(ctx context.Context, id int) error {
	t, err := b.table(id)
	if err != nil {
		return err
	}
	if err := checkTransition(t.State, TableFree); err != nil {
		return err
	}

	if t.State == TableBilled && t.OrderID != 0 {
		if err := b.client.DeleteOrder(ctx, t.OrderID); err != nil {
			utils.ErrorLogger.Printf("Could not delete settled order %d for table %d: %v", t.OrderID, id, err)
		}
	}

	t.Cart.Clear()
	t.LastSubmitted = nil
	t.BilledLines = nil
	t.OrderID = 0
	t.Waiter = ""
	t.PartySize = 1
	t.State = TableFree
	b.emit(EventTableUpdate, summarize(t))
	utils.InfoLogger.Printf("Table %d closed", id)
	return nil
}

// Resize regenerates the whole board with the new count, discarding
// every table's state. Shrinking below a table that still holds active
// state is refused unless force is set, so the operator gets warned
// first.
func (b *Board) Resize(count int, force bool) error {
	if count < 1 || count > 100 {
		return fmt.Errorf("table count must be between 1 and 100: %w", ErrValidation)
	}

	if count < len(b.tables) && !force {
		var affected []int
		for _, t := range b.tables[count:] {
			if t.State != TableFree || !t.Cart.Empty() {
				affected = append(affected, t.ID)
			}
		}
		if len(affected) > 0 {
			sort.Ints(affected)
			return &ResizeBlockedError{Affected: affected}
		}
	}

	b.tables = makeTables(count)
	if b.persistCount != nil {
		if err := b.persistCount(count); err != nil {
			utils.ErrorLogger.Printf("Could not persist table count: %v", err)
		}
	}
	b.emit(EventBoardResize, map[string]int{"count": count})
	utils.InfoLogger.Printf("Salon reconfigured to %d tables", count)
	return nil
}

// OrderMetadata fetches timestamp and items for a submitted dine-in
// order, trying the enriched salon view first and falling back to the
// plain order list.
func (b *Board) OrderMetadata(ctx context.Context, orderID uint) (time.Time, []models.OrderLine, error) {
	if rows, err := b.client.SalonOrders(ctx); err == nil {
		for _, row := range rows {
			if row.PedidoID == orderID {
				return row.PlacedAt(), row.Lines(), nil
			}
		}
	}
	orders, err := b.client.ListOrders(ctx)
	if err != nil {
		return time.Time{}, nil, err
	}
	for _, o := range orders {
		if o.ID == orderID {
			return o.PlacedAt, o.Items, nil
		}
	}
	return time.Time{}, nil, fmt.Errorf("order %d: %w", orderID, backend.ErrNotFound)
}
