package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock es el contador materializado de un producto en una bodega (proyección del libro).
// Se actualiza solo dentro de la misma transacción que agrega el movimiento.
type Stock struct {
	ProductID   string
	WarehouseID string
	Quantity    decimal.Decimal // suma con signo de los movimientos
	Reserved    decimal.Decimal // retenido por reservas, traslados pendientes o en tránsito
	AvgCost     decimal.Decimal // costo promedio ponderado
	UpdatedAt   time.Time
}

// Available cantidad libre para nuevas operaciones.
func (s *Stock) Available() decimal.Decimal {
	return s.Quantity.Sub(s.Reserved)
}

// TotalValue valor del stock al costo promedio.
func (s *Stock) TotalValue() decimal.Decimal {
	return s.Quantity.Mul(s.AvgCost)
}

// StockKey identifica una fila del contador.
type StockKey struct {
	ProductID   string
	WarehouseID string
}

// Less orden total de claves; se usa para bloquear filas siempre en el mismo orden.
func (k StockKey) Less(o StockKey) bool {
	if k.ProductID != o.ProductID {
		return k.ProductID < o.ProductID
	}
	return k.WarehouseID < o.WarehouseID
}
