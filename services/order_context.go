package services

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/restsoft-app/restsoft-pos/models"
)

var validate = validator.New()

// OrderContext is the channel an order is composed for. It is a sealed
// union: the gateway matches exhaustively on the three variants instead
// of branching on origin strings.
type OrderContext interface {
	Origin() string
	Validate() error

	orderContext()
}

// TableContext is a dine-in order for one table of the salon.
type TableContext struct {
	TableID   int    `validate:"min=1"`
	Waiter    string `validate:"required"`
	PartySize int    `validate:"min=1"`
}

func (TableContext) orderContext()  {}
func (TableContext) Origin() string { return models.OriginSalon }

func (t TableContext) Validate() error {
	if strings.TrimSpace(t.Waiter) == "" {
		return fmt.Errorf("a waiter must be assigned before sending the order: %w", ErrValidation)
	}
	if err := validate.Struct(t); err != nil {
		return fmt.Errorf("table data incomplete: %w", ErrValidation)
	}
	return nil
}

// DeliveryContext carries the customer and address fields of the
// delivery form. Number, floor and neighborhood are optional.
type DeliveryContext struct {
	Customer     string `json:"cliente" validate:"required"`
	Phone        string `json:"telefono" validate:"required"`
	Street       string `json:"calle" validate:"required"`
	Number       string `json:"numero"`
	Floor        string `json:"piso"`
	Neighborhood string `json:"barrio"`
}

func (DeliveryContext) orderContext()  {}
func (DeliveryContext) Origin() string { return models.OriginDelivery }

func (d DeliveryContext) Validate() error {
	if err := validate.Struct(d); err != nil {
		return fmt.Errorf("delivery order needs customer, phone and street: %w", ErrValidation)
	}
	return nil
}

// Address assembles the single direccion string in the exact shape the
// upstream stores for every existing installation.
func (d DeliveryContext) Address() string {
	addr := d.Street + " " + d.Number
	if d.Floor != "" {
		addr += " " + d.Floor
	}
	return addr + " - " + d.Neighborhood
}

// CounterContext is a walk-up order taken at the counter.
type CounterContext struct {
	Customer string `json:"cliente" validate:"required"`
	Staff    string `json:"camarero" validate:"required"`
	Comment  string `json:"comentario"`
}

func (CounterContext) orderContext()  {}
func (CounterContext) Origin() string { return models.OriginCounter }

func (c CounterContext) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("counter order needs customer and staff member: %w", ErrValidation)
	}
	return nil
}
