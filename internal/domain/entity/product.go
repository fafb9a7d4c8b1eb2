package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo.
// Code es único; una vez existen movimientos solo cambian nombre y precios de referencia.
// Cost y Price son referencias: nunca alteran el costo ya registrado en movimientos.
type Product struct {
	ID        string
	Code      string
	Name      string
	Cost      decimal.Decimal // costo de referencia
	Price     decimal.Decimal // precio de venta de referencia
	CreatedAt time.Time
	UpdatedAt time.Time
}
