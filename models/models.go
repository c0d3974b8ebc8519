package models

import "time"

// Order origins as the upstream records them.
const (
	OriginSalon    = "salon"
	OriginDelivery = "delivery"
	OriginCounter  = "mostrador"
)

// Session roles.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Product comes from the upstream catalog and is read-only here.
type Product struct {
	ID          uint     `json:"producto_id"`
	Name        string   `json:"nombre"`
	Description string   `json:"descripcion"`
	Price       float64  `json:"precio"`
	Cost        *float64 `json:"costo,omitempty"`
	Image       string   `json:"imagen"`
	Category    string   `json:"categoria"`
}

type Category struct {
	ID          uint   `json:"categoria_id"`
	Name        string `json:"nombre"`
	Description string `json:"descripcion,omitempty"`
}

// Employee is upstream staff. FullName is what order payloads and the
// waiter selectors use.
type Employee struct {
	ID        uint   `json:"empleado_id"`
	FirstName string `json:"nombre"`
	LastName  string `json:"apellido"`
	DNI       string `json:"dni,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"telefono,omitempty"`
	Role      string `json:"rol"`
}

func (e Employee) FullName() string {
	if e.LastName == "" {
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}

// CartLine is one product inside an in-progress order. Quantity is
// always >= 1; a line that would drop to zero is removed instead.
type CartLine struct {
	ProductID uint    `json:"producto_id"`
	Name      string  `json:"nombre"`
	Price     float64 `json:"precio"`
	Category  string  `json:"categoria"`
	Quantity  int     `json:"quantity"`
	Comment   string  `json:"comentario,omitempty"`
}

func (l CartLine) Subtotal() float64 {
	return l.Price * float64(l.Quantity)
}

// OrderLine is a historical line item with the unit price captured at
// order time.
type OrderLine struct {
	ProductID uint    `json:"producto_id"`
	Name      string  `json:"nombre"`
	Category  string  `json:"categoria"`
	Quantity  int     `json:"cantidad"`
	UnitPrice float64 `json:"precio_unitario"`
	Comment   string  `json:"comentario,omitempty"`
}

// Order is a submitted order as the upstream reports it. Read-only on
// this side.
type Order struct {
	ID          uint        `json:"pedido_id"`
	Customer    string      `json:"nombre_cliente"`
	Address     string      `json:"direccion"`
	Total       float64     `json:"total"`
	PlacedAt    time.Time   `json:"fecha_pedido"`
	Origin      string      `json:"origen"`
	Phone       string      `json:"telefono,omitempty"`
	Waiter      string      `json:"camarero,omitempty"`
	Comment     string      `json:"comentario,omitempty"`
	SubmittedBy string      `json:"cargado_por,omitempty"`
	TableID     *int        `json:"mesa,omitempty"`
	PartySize   *int        `json:"personas,omitempty"`
	Items       []OrderLine `json:"items"`
}

// AgeMinutes reports how long ago the order was placed, for the
// "hace X min" badge on order cards.
func (o Order) AgeMinutes(now time.Time) int {
	if o.PlacedAt.IsZero() || now.Before(o.PlacedAt) {
		return 0
	}
	return int(now.Sub(o.PlacedAt) / time.Minute)
}

// User is the authenticated identity. BusinessName is only set for
// admins, Role distinguishes admin from employee sessions.
type User struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone,omitempty"`
	Country      string `json:"country,omitempty"`
	BusinessName string `json:"business_name,omitempty"`
	Role         string `json:"role"`
}

// BillPreview is the read-only account summary shown before a table is
// settled. Generating one never mutates table state.
type BillPreview struct {
	TableID   int        `json:"table_id"`
	Waiter    string     `json:"waiter,omitempty"`
	PartySize int        `json:"party_size"`
	Items     []CartLine `json:"items"`
	Total     float64    `json:"total"`
	Timestamp time.Time  `json:"timestamp"`
}
