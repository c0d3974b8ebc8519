package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/restsoft-app/restsoft-pos/backend"
)

// salonUpstream accepts orders and records deletions.
type salonUpstream struct {
	deleted []string
	nextID  uint
}

func (s *salonUpstream) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/pedidos":
			s.nextID++
			json.NewEncoder(w).Encode(map[string]interface{}{
				"pedido_id": s.nextID,
				"total":     1000,
			})
		case r.Method == http.MethodDelete && strings.HasPrefix(r.URL.Path, "/pedidos/"):
			s.deleted = append(s.deleted, strings.TrimPrefix(r.URL.Path, "/pedidos/"))
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"ok": true}`))
		default:
			http.NotFound(w, r)
		}
	}
}

func newTestBoard(t *testing.T, count int) (*Board, *salonUpstream) {
	t.Helper()
	up := &salonUpstream{}
	srv := httptest.NewServer(up.handler())
	t.Cleanup(srv.Close)
	client := backend.NewClient(srv.URL)
	return NewBoard(client, NewGateway(client), count, nil, nil), up
}

func TestTableLifecycle(t *testing.T) {
	board, up := newTestBoard(t, 5)

	require.NoError(t, board.OpenTable(2))
	require.NoError(t, board.SetWaiter(2, "Carlos"))
	require.NoError(t, board.SetPartySize(2, 4))
	require.NoError(t, board.AddItem(2, pizza(), ""))

	sub, err := board.SubmitOrder(context.Background(), 2, "admin")
	require.NoError(t, err)
	assert.Equal(t, uint(1), sub.OrderID)

	detail, err := board.Table(2)
	require.NoError(t, err)
	assert.Equal(t, TableOccupied, detail.State)
	assert.Empty(t, detail.Lines, "pending lines move out on submission")
	require.Len(t, detail.LastSubmitted, 1)
	assert.Equal(t, "Pizza Muzzarella", detail.LastSubmitted[0].Name)

	// bill from the last submitted lines, confirm, close
	bill, err := board.BillPreview(2)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, bill.Total)
	assert.Equal(t, "Carlos", bill.Waiter)

	require.NoError(t, board.ConfirmBill(2))
	require.NoError(t, board.CloseTable(context.Background(), 2))

	detail, err = board.Table(2)
	require.NoError(t, err)
	assert.Equal(t, TableFree, detail.State)
	assert.Empty(t, detail.Lines)
	assert.Empty(t, detail.LastSubmitted)
	assert.Equal(t, "", detail.Waiter)

	// the settled order was removed upstream
	assert.Equal(t, []string{"1"}, up.deleted)
}

func TestCloseWithoutBillKeepsUpstreamOrder(t *testing.T) {
	board, up := newTestBoard(t, 3)

	require.NoError(t, board.OpenTable(1))
	require.NoError(t, board.SetWaiter(1, "Carlos"))
	require.NoError(t, board.AddItem(1, pizza(), ""))
	_, err := board.SubmitOrder(context.Background(), 1, "admin")
	require.NoError(t, err)

	// closing an occupied table without billing must not delete
	require.NoError(t, board.CloseTable(context.Background(), 1))
	assert.Empty(t, up.deleted)
}

func TestSubmitWithoutWaiterLeavesTableIntact(t *testing.T) {
	board, _ := newTestBoard(t, 3)

	require.NoError(t, board.OpenTable(1))
	require.NoError(t, board.AddItem(1, pizza(), ""))

	_, err := board.SubmitOrder(context.Background(), 1, "admin")
	assert.True(t, errors.Is(err, ErrValidation))

	detail, err := board.Table(1)
	require.NoError(t, err)
	assert.Equal(t, TableOpen, detail.State)
	require.Len(t, detail.Lines, 1)
}

func TestReopenPreservesPendingLines(t *testing.T) {
	board, _ := newTestBoard(t, 3)

	require.NoError(t, board.OpenTable(1))
	require.NoError(t, board.AddItem(1, pizza(), ""))
	require.NoError(t, board.SetWaiter(1, "Carlos"))
	_, err := board.SubmitOrder(context.Background(), 1, "admin")
	require.NoError(t, err)

	// add a second round after reopening
	require.NoError(t, board.OpenTable(1))
	require.NoError(t, board.AddItem(1, empanada(), ""))

	detail, err := board.Table(1)
	require.NoError(t, err)
	require.Len(t, detail.Lines, 1)
	assert.Equal(t, "Empanada de Carne", detail.Lines[0].Name)
	require.Len(t, detail.LastSubmitted, 1)
}

func TestAddItemRequiresOpenTable(t *testing.T) {
	board, _ := newTestBoard(t, 3)

	err := board.AddItem(1, pizza(), "")
	assert.True(t, errors.Is(err, ErrBadState))
}

func TestBillPreviewWithNothingFails(t *testing.T) {
	board, _ := newTestBoard(t, 3)

	require.NoError(t, board.OpenTable(1))
	_, err := board.BillPreview(1)
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestResizeGuardsActiveTables(t *testing.T) {
	var persisted int
	up := &salonUpstream{}
	srv := httptest.NewServer(up.handler())
	t.Cleanup(srv.Close)
	client := backend.NewClient(srv.URL)
	board := NewBoard(client, NewGateway(client), 10, func(n int) error {
		persisted = n
		return nil
	}, nil)

	require.NoError(t, board.OpenTable(8))
	require.NoError(t, board.AddItem(8, pizza(), ""))

	err := board.Resize(5, false)
	var blocked *ResizeBlockedError
	require.True(t, errors.As(err, &blocked))
	assert.Equal(t, []int{8}, blocked.Affected)
	assert.Equal(t, 10, board.Count(), "refused resize must not touch the board")

	require.NoError(t, board.Resize(5, true))
	assert.Equal(t, 5, board.Count())
	assert.Equal(t, 5, persisted)

	// growing never needs force
	require.NoError(t, board.Resize(30, false))
	assert.Equal(t, 30, board.Count())
	assert.Equal(t, 30, persisted)
}

func TestResizeRejectsOutOfRange(t *testing.T) {
	board, _ := newTestBoard(t, 5)

	assert.True(t, errors.Is(board.Resize(0, false), ErrValidation))
	assert.True(t, errors.Is(board.Resize(101, false), ErrValidation))
}

func TestUnknownTableID(t *testing.T) {
	board, _ := newTestBoard(t, 3)

	assert.True(t, errors.Is(board.OpenTable(4), ErrValidation))
	assert.True(t, errors.Is(board.OpenTable(0), ErrValidation))
}
