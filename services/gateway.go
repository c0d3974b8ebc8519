package services

import (
	"context"
	"fmt"

	"github.com/restsoft-app/restsoft-pos/backend"
	"github.com/restsoft-app/restsoft-pos/models"
	"github.com/restsoft-app/restsoft-pos/utils"
)

// Gateway turns a validated cart plus its context into the upstream's
// order payload and submits it. On success the cart is cleared and the
// server total becomes authoritative; on any failure the cart is left
// exactly as it was so the operator can retry.
type Gateway struct {
	client *backend.Client
}

func NewGateway(client *backend.Client) *Gateway {
	return &Gateway{client: client}
}

type Submission struct {
	OrderID uint    `json:"pedido_id"`
	Total   float64 `json:"total"`
}

func (g *Gateway) Submit(ctx context.Context, oc OrderContext, cart *Cart, submittedBy string) (*Submission, error) {
	if cart.Empty() {
		return nil, fmt.Errorf("no items in the order: %w", ErrValidation)
	}
	if err := oc.Validate(); err != nil {
		return nil, err
	}

	req := buildOrderRequest(oc, cart.Lines(), submittedBy)

	resp, err := g.client.CreateOrder(ctx, req, cart.IdempotencyKey())
	if err != nil {
		utils.ErrorLogger.Printf("Order submission failed (origin=%s): %v", oc.Origin(), err)
		return nil, err
	}

	cart.Clear()
	utils.InfoLogger.Printf("Order %d submitted (origin=%s, total=%.2f)", resp.PedidoID, oc.Origin(), resp.Total)
	return &Submission{OrderID: resp.PedidoID, Total: resp.Total}, nil
}

// buildOrderRequest matches exhaustively on the context variants; the
// direccion and nombre_cliente conventions are the ones the upstream
// already stores for every existing installation.
func buildOrderRequest(oc OrderContext, lines []models.CartLine, submittedBy string) backend.CreateOrderRequest {
	detalles := make([]backend.OrderDetail, 0, len(lines))
	for _, l := range lines {
		detalles = append(detalles, backend.OrderDetail{
			ProductoID: l.ProductID,
			Cantidad:   l.Quantity,
			Comentario: l.Comment,
		})
	}

	req := backend.CreateOrderRequest{
		Detalles:   detalles,
		Origen:     oc.Origin(),
		CargadoPor: submittedBy,
	}

	switch c := oc.(type) {
	case TableContext:
		tableID := c.TableID
		party := c.PartySize
		req.NombreCliente = fmt.Sprintf("Mesa %d", c.TableID)
		req.Direccion = fmt.Sprintf("Mozo: %s | Personas: %d", c.Waiter, c.PartySize)
		req.Mesa = &tableID
		req.Mozo = c.Waiter
		req.Personas = &party
	case DeliveryContext:
		req.NombreCliente = c.Customer
		req.Direccion = c.Address()
		req.Telefono = c.Phone
	case CounterContext:
		req.NombreCliente = c.Customer
		req.Direccion = "Mostrador"
		req.Camarero = c.Staff
		req.Comentario = c.Comment
	}
	return req
}
