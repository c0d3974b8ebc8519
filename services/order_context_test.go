package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/restsoft-app/restsoft-pos/models"
)

func TestTableContextRequiresWaiter(t *testing.T) {
	t.Parallel()

	tc := TableContext{TableID: 3, Waiter: "  ", PartySize: 2}
	err := tc.Validate()
	assert.True(t, errors.Is(err, ErrValidation))

	tc.Waiter = "Carlos"
	assert.NoError(t, tc.Validate())
	assert.Equal(t, models.OriginSalon, tc.Origin())
}

func TestDeliveryContextValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		ctx  DeliveryContext
		ok   bool
	}{
		{
			name: "complete",
			ctx:  DeliveryContext{Customer: "Juan Pérez", Phone: "1122334455", Street: "Av. Siempre Viva", Number: "123"},
			ok:   true,
		},
		{
			name: "missing phone",
			ctx:  DeliveryContext{Customer: "Juan Pérez", Street: "Av. Siempre Viva"},
			ok:   false,
		},
		{
			name: "missing street",
			ctx:  DeliveryContext{Customer: "Juan Pérez", Phone: "1122334455"},
			ok:   false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.ctx.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.True(t, errors.Is(err, ErrValidation))
			}
		})
	}
}

func TestDeliveryAddressFormat(t *testing.T) {
	t.Parallel()

	dc := DeliveryContext{Street: "Av. Siempre Viva", Number: "123", Neighborhood: "Centro"}
	assert.Equal(t, "Av. Siempre Viva 123 - Centro", dc.Address())

	dc.Floor = "2B"
	assert.Equal(t, "Av. Siempre Viva 123 2B - Centro", dc.Address())
}

func TestCounterContextValidation(t *testing.T) {
	t.Parallel()

	cc := CounterContext{Customer: "Ana", Staff: "Luis"}
	assert.NoError(t, cc.Validate())
	assert.Equal(t, models.OriginCounter, cc.Origin())

	cc.Staff = ""
	assert.True(t, errors.Is(cc.Validate(), ErrValidation))
}
