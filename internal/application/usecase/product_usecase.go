package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

// ProductUseCase casos de uso del catálogo de productos. El stock se maneja vía movimientos.
type ProductUseCase struct {
	repo      repository.ProductRepository
	movements repository.MovementRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, movements repository.MovementRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, movements: movements}
}

// Create crea un nuevo producto con código único.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	code := strings.TrimSpace(in.Code)
	if code == "" {
		return nil, domain.NewValidationError("code", "required")
	}
	if err := checkMoney(in.Cost, in.Price); err != nil {
		return nil, err
	}
	existing, err := uc.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("producto %s: %w", code, domain.ErrDuplicate)
	}
	now := time.Now().UTC()
	product := &entity.Product{
		ID:        uuid.New().String(),
		Code:      code,
		Name:      in.Name,
		Cost:      in.Cost,
		Price:     in.Price,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("producto %s: %w", id, domain.ErrNotFound)
	}
	return toProductResponse(product), nil
}

// Update actualiza nombre, costo y precio. El código queda fijo en cuanto el producto
// tiene movimientos; un cambio de precio no toca los costos ya registrados.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("producto %s: %w", id, domain.ErrNotFound)
	}
	if in.Code != nil && strings.TrimSpace(*in.Code) != product.Code {
		code := strings.TrimSpace(*in.Code)
		n, err := uc.movements.CountByProduct(ctx, id)
		if err != nil {
			return nil, err
		}
		if n > 0 {
			return nil, fmt.Errorf("producto %s con %d movimientos: el código no se puede cambiar: %w", product.Code, n, domain.ErrConflict)
		}
		other, err := uc.repo.GetByCode(ctx, code)
		if err != nil {
			return nil, err
		}
		if other != nil {
			return nil, fmt.Errorf("producto %s: %w", code, domain.ErrDuplicate)
		}
		product.Code = code
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Cost != nil {
		product.Cost = *in.Cost
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if err := checkMoney(product.Cost, product.Price); err != nil {
		return nil, err
	}
	product.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos con paginación.
func (uc *ProductUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

func checkMoney(cost, price decimal.Decimal) error {
	if cost.IsNegative() {
		return domain.NewValidationError("cost", "must_not_be_negative")
	}
	if price.IsNegative() {
		return domain.NewValidationError("price", "must_not_be_negative")
	}
	return nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:        p.ID,
		Code:      p.Code,
		Name:      p.Name,
		Cost:      p.Cost,
		Price:     p.Price,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
