package backend

import (
	"time"

	"github.com/restsoft-app/restsoft-pos/models"
)

// Wire records for the upstream API. Field names are the Spanish ones
// the FastAPI service expects; they are parsed into models at this
// boundary and nowhere else.

type productDTO struct {
	ProductoID  uint     `json:"producto_id"`
	Nombre      string   `json:"nombre"`
	Descripcion string   `json:"descripcion"`
	Precio      float64  `json:"precio"`
	Costo       *float64 `json:"costo"`
	Imagen      string   `json:"imagen"`
	Categoria   string   `json:"categoria"`
}

func (d productDTO) toModel() models.Product {
	return models.Product{
		ID:          d.ProductoID,
		Name:        d.Nombre,
		Description: d.Descripcion,
		Price:       d.Precio,
		Cost:        d.Costo,
		Image:       d.Imagen,
		Category:    d.Categoria,
	}
}

type categoryDTO struct {
	CategoriaID uint   `json:"categoria_id"`
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion"`
}

func (d categoryDTO) toModel() models.Category {
	return models.Category{ID: d.CategoriaID, Name: d.Nombre, Description: d.Descripcion}
}

type employeeDTO struct {
	EmpleadoID uint   `json:"empleado_id"`
	Nombre     string `json:"nombre"`
	Apellido   string `json:"apellido"`
	DNI        string `json:"dni"`
	Email      string `json:"email"`
	Telefono   string `json:"telefono"`
	Rol        string `json:"rol"`
}

func (d employeeDTO) toModel() models.Employee {
	return models.Employee{
		ID:        d.EmpleadoID,
		FirstName: d.Nombre,
		LastName:  d.Apellido,
		DNI:       d.DNI,
		Email:     d.Email,
		Phone:     d.Telefono,
		Role:      d.Rol,
	}
}

type CreateProductRequest struct {
	Nombre      string   `json:"nombre"`
	Descripcion string   `json:"descripcion"`
	Precio      float64  `json:"precio"`
	Costo       *float64 `json:"costo,omitempty"`
	Imagen      string   `json:"imagen"`
	Categoria   string   `json:"categoria"`
}

// UpdateProductRequest is a partial update; nil fields are left alone.
type UpdateProductRequest struct {
	Nombre      *string  `json:"nombre,omitempty"`
	Descripcion *string  `json:"descripcion,omitempty"`
	Precio      *float64 `json:"precio,omitempty"`
	Costo       *float64 `json:"costo,omitempty"`
	Imagen      *string  `json:"imagen,omitempty"`
	Categoria   *string  `json:"categoria,omitempty"`
}

type CreateCategoryRequest struct {
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion,omitempty"`
}

type CreateEmployeeRequest struct {
	Nombre   string  `json:"nombre"`
	Apellido string  `json:"apellido"`
	DNI      *string `json:"dni"`
	Email    *string `json:"email"`
	Telefono *string `json:"telefono"`
	Rol      string  `json:"rol"`
}

type OrderDetail struct {
	ProductoID uint   `json:"producto_id"`
	Cantidad   int    `json:"cantidad"`
	Comentario string `json:"comentario,omitempty"`
}

type CreateOrderRequest struct {
	NombreCliente string        `json:"nombre_cliente"`
	Direccion     string        `json:"direccion"`
	Detalles      []OrderDetail `json:"detalles"`
	Origen        string        `json:"origen,omitempty"`
	Telefono      string        `json:"telefono,omitempty"`
	Camarero      string        `json:"camarero,omitempty"`
	Comentario    string        `json:"comentario,omitempty"`
	CargadoPor    string        `json:"cargado_por,omitempty"`
	Mesa          *int          `json:"mesa,omitempty"`
	Mozo          string        `json:"mozo,omitempty"`
	Personas      *int          `json:"personas,omitempty"`
}

type CreateOrderResponse struct {
	PedidoID uint    `json:"pedido_id"`
	Total    float64 `json:"total"`
}

type orderLineDTO struct {
	ProductoID     uint    `json:"producto_id"`
	Cantidad       int     `json:"cantidad"`
	PrecioUnitario float64 `json:"precio_unitario"`
	Comentario     string  `json:"comentario"`
	Nombre         string  `json:"nombre"`
	Categoria      string  `json:"categoria"`
}

func (d orderLineDTO) toModel() models.OrderLine {
	return models.OrderLine{
		ProductID: d.ProductoID,
		Name:      d.Nombre,
		Category:  d.Categoria,
		Quantity:  d.Cantidad,
		UnitPrice: d.PrecioUnitario,
		Comment:   d.Comentario,
	}
}

type orderDTO struct {
	PedidoID      uint           `json:"pedido_id"`
	NombreCliente string         `json:"nombre_cliente"`
	Direccion     string         `json:"direccion"`
	Total         float64        `json:"total"`
	FechaPedido   string         `json:"fecha_pedido"`
	Origen        string         `json:"origen"`
	Telefono      string         `json:"telefono"`
	Camarero      string         `json:"camarero"`
	Comentario    string         `json:"comentario"`
	CargadoPor    string         `json:"cargado_por"`
	Mesa          *int           `json:"mesa,omitempty"`
	Mozo          string         `json:"mozo,omitempty"`
	Personas      *int           `json:"personas,omitempty"`
	Items         []orderLineDTO `json:"items"`
}

func (d orderDTO) toModel() models.Order {
	items := make([]models.OrderLine, 0, len(d.Items))
	for _, it := range d.Items {
		items = append(items, it.toModel())
	}
	return models.Order{
		ID:          d.PedidoID,
		Customer:    d.NombreCliente,
		Address:     d.Direccion,
		Total:       d.Total,
		PlacedAt:    parseUpstreamTime(d.FechaPedido),
		Origin:      d.Origen,
		Phone:       d.Telefono,
		Waiter:      d.Camarero,
		Comment:     d.Comentario,
		SubmittedBy: d.CargadoPor,
		TableID:     d.Mesa,
		PartySize:   d.Personas,
		Items:       items,
	}
}

// SalonOrder is a row of the enriched dine-in view; used as a metadata
// source for bill reprints.
type SalonOrder struct {
	PedidoID uint           `json:"pedido_id"`
	Mesa     *int           `json:"mesa"`
	Mozo     string         `json:"mozo"`
	Personas *int           `json:"personas"`
	Total    float64        `json:"total"`
	Fecha    string         `json:"fecha"`
	Items    []orderLineDTO `json:"items"`
}

func (s SalonOrder) PlacedAt() time.Time { return parseUpstreamTime(s.Fecha) }

func (s SalonOrder) Lines() []models.OrderLine {
	items := make([]models.OrderLine, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, it.toModel())
	}
	return items
}

// The upstream writes datetime.isoformat() without a timezone, so
// time.Time's own unmarshalling chokes on it.
var upstreamTimeLayouts = []string{
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

func parseUpstreamTime(s string) time.Time {
	for _, layout := range upstreamTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t
		}
	}
	return time.Time{}
}
