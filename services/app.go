package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/restsoft-app/restsoft-pos/backend"
	"github.com/restsoft-app/restsoft-pos/config"
	"github.com/restsoft-app/restsoft-pos/models"
	"github.com/restsoft-app/restsoft-pos/store"
)

// App wires the state machines together and serializes every mutation
// behind one mutex, so no two operations ever interleave on the same
// table or cart. The catalog carries its own lock because refreshes
// block on the network and must not stall the rest.
type App struct {
	mu sync.Mutex

	Store   *store.Store
	Client  *backend.Client
	Catalog *Catalog
	Gateway *Gateway
	Board   *Board
	Gate    *Gate

	deliveryCart *Cart
	deliveryCtx  DeliveryContext
	counterCart  *Cart
	counterCtx   CounterContext
}

func NewApp(cfg *config.Config, st *store.Store, client *backend.Client, notify func(string, interface{})) *App {
	gateway := NewGateway(client)

	tableCount := cfg.DefaultTables
	if n, ok := st.TableCount(); ok {
		tableCount = n
	}

	return &App{
		Store:        st,
		Client:       client,
		Catalog:      NewCatalog(client),
		Gateway:      gateway,
		Board:        NewBoard(client, gateway, tableCount, st.SetTableCount, notify),
		Gate:         NewGate(st, cfg.SplashSeconds),
		deliveryCart: NewCart(),
		counterCart:  NewCart(),
	}
}

func (a *App) product(productID uint) (models.Product, error) {
	p, ok := a.Catalog.Product(productID)
	if !ok {
		return models.Product{}, fmt.Errorf("no product %d in the catalog: %w", productID, ErrValidation)
	}
	return p, nil
}

// ---- salon ----

func (a *App) Tables() []TableSummary {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.Board.Tables()
}

func (a *App) TableDetail(id int) (*TableDetail, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.Board.Table(id)
}

func (a *App) OpenTable(id int) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.Board.OpenTable(id)
}

func (a *App) SetTableWaiter(id int, waiter string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.Board.SetWaiter(id, waiter)
}

func (a *App) SetTablePartySize(id, partySize int) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.Board.SetPartySize(id, partySize)
}

func (a *App) AddTableItem(id int, productID uint, comment string) error {
	p, err := a.product(productID)
	if err != nil {
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.Board.AddItem(id, p, comment)
}

func (a *App) RemoveTableItem(id int, productID uint) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.Board.RemoveItem(id, productID)
}

func (a *App) AdjustTableItem(id int, productID uint, delta int) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.Board.AdjustQuantity(id, productID, delta)
}

func (a *App) SubmitTableOrder(ctx context.Context, id int, submittedBy string) (*Submission, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.Board.SubmitOrder(ctx, id, submittedBy)
}

func (a *App) TableBill(id int) (*models.BillPreview, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.Board.BillPreview(id)
}

func (a *App) ConfirmTableBill(id int) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.Board.ConfirmBill(id)
}

func (a *App) CloseTable(ctx context.Context, id int) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.Board.CloseTable(ctx, id)
}

// TableOrderMetadata looks up when the table's submitted order was
// placed and what it contained, for the bill header.
func (a *App) TableOrderMetadata(ctx context.Context, id int) (*models.Order, error) {
	a.mu.Lock()
	detail, err := a.Board.Table(id)
	a.mu.Unlock()
	if err != nil {
		return nil, err
	}
	if detail.OrderID == 0 {
		return nil, fmt.Errorf("table %d has no submitted order: %w", id, ErrValidation)
	}
	placedAt, items, err := a.Board.OrderMetadata(ctx, detail.OrderID)
	if err != nil {
		return nil, err
	}
	return &models.Order{
		ID:       detail.OrderID,
		PlacedAt: placedAt,
		Origin:   models.OriginSalon,
		Items:    items,
	}, nil
}

func (a *App) ResizeBoard(count int, force bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.Board.Resize(count, force)
}

func (a *App) TableCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.Board.Count()
}

// ---- delivery and counter ----

// CartView is what the composer screens render.
type CartView struct {
	Lines []models.CartLine `json:"lines"`
	Count int               `json:"count"`
	Total float64           `json:"total"`
}

func viewOf(c *Cart) CartView {
	return CartView{Lines: c.Lines(), Count: c.ItemCount(), Total: c.Total()}
}

func (a *App) cartFor(origin string) (*Cart, error) {
	switch origin {
	case models.OriginDelivery:
		return a.deliveryCart, nil
	case models.OriginCounter:
		return a.counterCart, nil
	}
	return nil, fmt.Errorf("no standalone cart for origin %q: %w", origin, ErrValidation)
}

func (a *App) CartState(origin string) (CartView, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	cart, err := a.cartFor(origin)
	if err != nil {
		return CartView{}, err
	}
	return viewOf(cart), nil
}

func (a *App) AddCartItem(origin string, productID uint, comment string) (CartView, error) {
	p, err := a.product(productID)
	if err != nil {
		return CartView{}, err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	cart, err := a.cartFor(origin)
	if err != nil {
		return CartView{}, err
	}
	cart.AddItem(p, comment)
	return viewOf(cart), nil
}

func (a *App) RemoveCartItem(origin string, productID uint) (CartView, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	cart, err := a.cartFor(origin)
	if err != nil {
		return CartView{}, err
	}
	cart.RemoveItem(productID)
	return viewOf(cart), nil
}

func (a *App) AdjustCartItem(origin string, productID uint, delta int) (CartView, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	cart, err := a.cartFor(origin)
	if err != nil {
		return CartView{}, err
	}
	cart.AdjustQuantity(productID, delta)
	return viewOf(cart), nil
}

func (a *App) ClearCart(origin string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	cart, err := a.cartFor(origin)
	if err != nil {
		return err
	}
	cart.Clear()
	return nil
}

func (a *App) SetDeliveryDetails(dc DeliveryContext) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.deliveryCtx = dc
}

func (a *App) SetCounterDetails(cc CounterContext) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.counterCtx = cc
}

// SubmitDelivery sends the delivery cart with its form data. The form
// is cleared only after the upstream accepted the order.
func (a *App) SubmitDelivery(ctx context.Context, submittedBy string) (*Submission, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	sub, err := a.Gateway.Submit(ctx, a.deliveryCtx, a.deliveryCart, submittedBy)
	if err != nil {
		return nil, err
	}
	a.deliveryCtx = DeliveryContext{}
	return sub, nil
}

func (a *App) SubmitCounter(ctx context.Context, submittedBy string) (*Submission, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	sub, err := a.Gateway.Submit(ctx, a.counterCtx, a.counterCart, submittedBy)
	if err != nil {
		return nil, err
	}
	a.counterCtx = CounterContext{}
	return sub, nil
}

// ---- history and statistics ----

// Orders fetches the upstream history, optionally restricted to one
// channel. Always live, never cached.
func (a *App) Orders(ctx context.Context, origin string) ([]models.Order, error) {
	orders, err := a.Client.ListOrders(ctx)
	if err != nil {
		return nil, err
	}
	if origin == "" {
		return orders, nil
	}
	out := orders[:0]
	for _, o := range orders {
		if o.Origin == origin {
			out = append(out, o)
		}
	}
	return out, nil
}

func (a *App) Stats(ctx context.Context, period, origin string) (*StatsReport, error) {
	orders, err := a.Client.ListOrders(ctx)
	if err != nil {
		return nil, err
	}
	return Aggregate(orders, period, origin, time.Now())
}

// ---- auth ----

func (a *App) ChooseRole(role string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.Gate.ChooseRole(role)
}

func (a *App) RegisterAdmin(req RegisterRequest) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.Gate.RegisterAdmin(req)
}

func (a *App) LoginAdmin(email, password string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.Gate.LoginAdmin(email, password)
}

func (a *App) LoginEmployee(email, password string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.Gate.LoginEmployee(email, password)
}

func (a *App) RequestRecovery(email string) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.Gate.RequestRecovery(email)
}

func (a *App) ResetPassword(email, code, newPassword, confirm string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.Gate.ResetPassword(email, code, newPassword, confirm)
}

func (a *App) FinishSplash() (*models.User, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.Gate.FinishSplash()
}

func (a *App) Logout() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Gate.Logout()
}

func (a *App) CurrentUser() (*models.User, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.Gate.CurrentUser()
}

func (a *App) ChosenRole() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.Gate.Role()
}

func (a *App) GateState() GateState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.Gate.State()
}

func (a *App) SplashSeconds() int { return a.Gate.SplashSeconds() }

func (a *App) AddEmployeeCredential(name, email, password, phone string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.Gate.AddEmployeeCredential(name, email, password, phone)
}
