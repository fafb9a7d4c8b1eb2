package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ repository.SerialUnitRepository = (*SerialUnitRepo)(nil)

// SerialUnitRepo registro de unidades serializadas sobre PostgreSQL.
type SerialUnitRepo struct {
	q Querier
}

// NewSerialUnitRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSerialUnitRepository(q Querier) *SerialUnitRepo {
	return &SerialUnitRepo{q: q}
}

const serialColumns = `id, serial_code, product_id, warehouse_id, unit_cost, selling_price, supplier_price,
	status, reference_number, hold_reference, received_at, sold_at, buyer_id, updated_at`

func scanSerial(row pgx.Row) (*entity.SerialUnit, error) {
	var u entity.SerialUnit
	err := row.Scan(
		&u.ID, &u.SerialCode, &u.ProductID, &u.WarehouseID, &u.UnitCost, &u.SellingPrice, &u.SupplierPrice,
		&u.Status, &u.ReferenceNumber, &u.HoldReference, &u.ReceivedAt, &u.SoldAt, &u.BuyerID, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create persiste la unidad; el índice único de serial_code se traduce a DuplicateSerialError.
func (r *SerialUnitRepo) Create(ctx context.Context, u *entity.SerialUnit) error {
	query := `INSERT INTO serial_units (` + serialColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		u.ID, u.SerialCode, u.ProductID, u.WarehouseID, u.UnitCost, u.SellingPrice, u.SupplierPrice,
		u.Status, u.ReferenceNumber, u.HoldReference, u.ReceivedAt, u.SoldAt, u.BuyerID, u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.DuplicateSerialError{SerialCode: u.SerialCode}
		}
		return fmt.Errorf("insert serial unit: %w", err)
	}
	return nil
}

func (r *SerialUnitRepo) getOne(ctx context.Context, query string, arg any) (*entity.SerialUnit, error) {
	u, err := scanSerial(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get serial unit: %w", err)
	}
	return u, nil
}

// GetByID obtiene una unidad por ID.
func (r *SerialUnitRepo) GetByID(ctx context.Context, id string) (*entity.SerialUnit, error) {
	if !validID(id) {
		return nil, nil
	}
	return r.getOne(ctx, `SELECT `+serialColumns+` FROM serial_units WHERE id = $1`, id)
}

// GetByCode obtiene una unidad por código serial.
func (r *SerialUnitRepo) GetByCode(ctx context.Context, code string) (*entity.SerialUnit, error) {
	return r.getOne(ctx, `SELECT `+serialColumns+` FROM serial_units WHERE serial_code = $1`, code)
}

// GetForUpdate obtiene la unidad y bloquea la fila.
func (r *SerialUnitRepo) GetForUpdate(ctx context.Context, id string) (*entity.SerialUnit, error) {
	if !validID(id) {
		return nil, nil
	}
	return r.getOne(ctx, `SELECT `+serialColumns+` FROM serial_units WHERE id = $1 FOR UPDATE`, id)
}

// Update guarda ubicación, estado, referencias y datos de venta. El código no cambia.
func (r *SerialUnitRepo) Update(ctx context.Context, u *entity.SerialUnit) error {
	query := `
		UPDATE serial_units SET warehouse_id = $2, status = $3, reference_number = $4, hold_reference = $5,
			selling_price = $6, sold_at = $7, buyer_id = $8, updated_at = $9
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		u.ID, u.WarehouseID, u.Status, u.ReferenceNumber, u.HoldReference,
		u.SellingPrice, u.SoldAt, u.BuyerID, u.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update serial unit: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("unidad %s: %w", u.ID, domain.ErrNotFound)
	}
	return nil
}

// ListByWarehouse lista unidades de la bodega por código, opcionalmente filtradas por estado.
func (r *SerialUnitRepo) ListByWarehouse(ctx context.Context, warehouseID string, status entity.SerialStatus, limit, offset int) ([]*entity.SerialUnit, error) {
	if !validID(warehouseID) {
		return nil, nil
	}
	query := `SELECT ` + serialColumns + ` FROM serial_units
		WHERE warehouse_id = $1 AND ($2 = '' OR status = $2)
		ORDER BY serial_code LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, warehouseID, string(status), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list serial units: %w", err)
	}
	defer rows.Close()
	var list []*entity.SerialUnit
	for rows.Next() {
		u, err := scanSerial(rows)
		if err != nil {
			return nil, fmt.Errorf("scan serial unit: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

// CountReserving unidades de la clave que ocupan reserva en el contador.
func (r *SerialUnitRepo) CountReserving(ctx context.Context, productID, warehouseID string) (int, error) {
	if !validID(productID) || !validID(warehouseID) {
		return 0, nil
	}
	var n int
	err := r.q.QueryRow(ctx, `SELECT count(*) FROM serial_units
		WHERE product_id = $1 AND warehouse_id = $2
		  AND (status IN ('reserved', 'transferred') OR hold_reference <> '')`,
		productID, warehouseID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count reserving units: %w", err)
	}
	return n, nil
}
