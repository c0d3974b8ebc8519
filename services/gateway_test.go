package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/restsoft-app/restsoft-pos/backend"
	"github.com/restsoft-app/restsoft-pos/utils"
)

func init() {
	utils.InitLogger()
}

// fakeUpstream records the order payloads it accepts.
type fakeUpstream struct {
	requests []backend.CreateOrderRequest
	idemKeys []string
	fail     int // HTTP status to fail with, 0 means accept
	nextID   uint
}

func (f *fakeUpstream) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/pedidos" {
			http.NotFound(w, r)
			return
		}
		if f.fail != 0 {
			w.WriteHeader(f.fail)
			json.NewEncoder(w).Encode(map[string]string{"detail": "producto sin stock"})
			return
		}
		var req backend.CreateOrderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		f.requests = append(f.requests, req)
		f.idemKeys = append(f.idemKeys, r.Header.Get("X-Idempotency-Key"))

		var total float64
		for _, d := range req.Detalles {
			switch d.ProductoID {
			case 1:
				total += 1000 * float64(d.Cantidad)
			case 2:
				total += 500 * float64(d.Cantidad)
			}
		}
		f.nextID++
		json.NewEncoder(w).Encode(map[string]interface{}{
			"pedido_id": f.nextID,
			"total":     total,
		})
	}
}

func newTestGateway(t *testing.T, f *fakeUpstream) *Gateway {
	t.Helper()
	srv := httptest.NewServer(f.handler())
	t.Cleanup(srv.Close)
	return NewGateway(backend.NewClient(srv.URL))
}

func TestSubmitDeliveryOrder(t *testing.T) {
	f := &fakeUpstream{}
	gw := newTestGateway(t, f)

	cart := NewCart()
	cart.AddItem(pizza(), "")
	cart.AddItem(pizza(), "")
	cart.AddItem(empanada(), "")

	dc := DeliveryContext{
		Customer: "Juan Pérez",
		Phone:    "1122334455",
		Street:   "Av. Siempre Viva",
		Number:   "123",
	}

	sub, err := gw.Submit(context.Background(), dc, cart, "mostrador1")
	require.NoError(t, err)
	assert.Equal(t, uint(1), sub.OrderID)
	assert.Equal(t, 2500.0, sub.Total)
	assert.True(t, cart.Empty(), "cart must be cleared after a successful submission")

	require.Len(t, f.requests, 1)
	sent := f.requests[0]
	assert.Equal(t, "Juan Pérez", sent.NombreCliente)
	assert.Equal(t, "delivery", sent.Origen)
	assert.Equal(t, "1122334455", sent.Telefono)
	assert.Equal(t, "mostrador1", sent.CargadoPor)
	require.Len(t, sent.Detalles, 2)
	assert.NotEmpty(t, f.idemKeys[0])
}

func TestSubmitTableOrderPayload(t *testing.T) {
	f := &fakeUpstream{}
	gw := newTestGateway(t, f)

	cart := NewCart()
	cart.AddItem(pizza(), "")

	tc := TableContext{TableID: 4, Waiter: "Carlos", PartySize: 3}
	_, err := gw.Submit(context.Background(), tc, cart, "admin")
	require.NoError(t, err)

	sent := f.requests[0]
	assert.Equal(t, "Mesa 4", sent.NombreCliente)
	assert.Equal(t, "Mozo: Carlos | Personas: 3", sent.Direccion)
	assert.Equal(t, "salon", sent.Origen)
	require.NotNil(t, sent.Mesa)
	assert.Equal(t, 4, *sent.Mesa)
	require.NotNil(t, sent.Personas)
	assert.Equal(t, 3, *sent.Personas)
}

func TestSubmitCounterOrderPayload(t *testing.T) {
	f := &fakeUpstream{}
	gw := newTestGateway(t, f)

	cart := NewCart()
	cart.AddItem(empanada(), "")

	cc := CounterContext{Customer: "Ana", Staff: "Luis", Comment: "para llevar"}
	_, err := gw.Submit(context.Background(), cc, cart, "admin")
	require.NoError(t, err)

	sent := f.requests[0]
	assert.Equal(t, "Mostrador", sent.Direccion)
	assert.Equal(t, "mostrador", sent.Origen)
	assert.Equal(t, "Luis", sent.Camarero)
	assert.Equal(t, "para llevar", sent.Comentario)
}

func TestSubmitEmptyCartFails(t *testing.T) {
	f := &fakeUpstream{}
	gw := newTestGateway(t, f)

	_, err := gw.Submit(context.Background(), CounterContext{Customer: "Ana", Staff: "Luis"}, NewCart(), "admin")
	assert.True(t, errors.Is(err, ErrValidation))
	assert.Empty(t, f.requests)
}

func TestSubmitInvalidContextLeavesCartAlone(t *testing.T) {
	f := &fakeUpstream{}
	gw := newTestGateway(t, f)

	cart := NewCart()
	cart.AddItem(pizza(), "")

	tc := TableContext{TableID: 1, Waiter: "", PartySize: 2}
	_, err := gw.Submit(context.Background(), tc, cart, "admin")
	assert.True(t, errors.Is(err, ErrValidation))
	assert.Equal(t, 1, cart.ItemCount())
	assert.Empty(t, f.requests)
}

func TestSubmitUpstreamFailurePreservesCartAndKey(t *testing.T) {
	f := &fakeUpstream{fail: http.StatusInternalServerError}
	gw := newTestGateway(t, f)

	cart := NewCart()
	cart.AddItem(pizza(), "")
	key := cart.IdempotencyKey()

	_, err := gw.Submit(context.Background(), CounterContext{Customer: "Ana", Staff: "Luis"}, cart, "admin")
	require.Error(t, err)

	var subErr *backend.SubmissionError
	assert.True(t, errors.As(err, &subErr))
	assert.Equal(t, 1, cart.ItemCount(), "failed submission must not touch the cart")
	assert.Equal(t, key, cart.IdempotencyKey(), "retry must reuse the same idempotency key")
}
