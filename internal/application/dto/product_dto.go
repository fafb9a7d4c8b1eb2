package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Code  string          `json:"code" validate:"required,min=1,max=64"`
	Name  string          `json:"name" validate:"required,min=1,max=200"`
	Cost  decimal.Decimal `json:"cost" validate:"gte=0"`
	Price decimal.Decimal `json:"price" validate:"gte=0"`
}

// UpdateProductRequest entrada para actualizar un producto. Code solo cambia
// mientras el producto no tenga movimientos.
type UpdateProductRequest struct {
	Code  *string          `json:"code" validate:"omitempty,min=1,max=64"`
	Name  *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Cost  *decimal.Decimal `json:"cost" validate:"omitempty,gte=0"`
	Price *decimal.Decimal `json:"price" validate:"omitempty,gte=0"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID        string          `json:"id"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Cost      decimal.Decimal `json:"cost"`
	Price     decimal.Decimal `json:"price"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
