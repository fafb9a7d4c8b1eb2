package postgres

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var (
	_ repository.StockRepository    = (*StockRepo)(nil)
	_ repository.MovementRepository = (*MovementRepo)(nil)
)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

const stockColumns = `product_id, warehouse_id, quantity, reserved, avg_cost, updated_at`

func scanStock(row pgx.Row) (*entity.Stock, error) {
	var s entity.Stock
	if err := row.Scan(&s.ProductID, &s.WarehouseID, &s.Quantity, &s.Reserved, &s.AvgCost, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

func zeroStock(productID, warehouseID string) *entity.Stock {
	return &entity.Stock{
		ProductID:   productID,
		WarehouseID: warehouseID,
		Quantity:    decimal.Zero,
		Reserved:    decimal.Zero,
		AvgCost:     decimal.Zero,
	}
}

// Get obtiene el stock actual de un producto en una bodega.
func (r *StockRepo) Get(ctx context.Context, productID, warehouseID string) (*entity.Stock, error) {
	if !validID(productID) || !validID(warehouseID) {
		return zeroStock(productID, warehouseID), nil
	}
	s, err := scanStock(r.q.QueryRow(ctx,
		`SELECT `+stockColumns+` FROM stock WHERE product_id = $1 AND warehouse_id = $2`,
		productID, warehouseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return zeroStock(productID, warehouseID), nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return s, nil
}

// GetForUpdate crea la fila en cero si falta y la bloquea (SELECT FOR UPDATE).
func (r *StockRepo) GetForUpdate(ctx context.Context, productID, warehouseID string) (*entity.Stock, error) {
	_, err := r.q.Exec(ctx, `
		INSERT INTO stock (product_id, warehouse_id, quantity, reserved, avg_cost, updated_at)
		VALUES ($1, $2, 0, 0, 0, now())
		ON CONFLICT (product_id, warehouse_id) DO NOTHING`, productID, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("ensure stock row: %w", err)
	}
	s, err := scanStock(r.q.QueryRow(ctx,
		`SELECT `+stockColumns+` FROM stock WHERE product_id = $1 AND warehouse_id = $2 FOR UPDATE`,
		productID, warehouseID))
	if err != nil {
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	return s, nil
}

// Upsert inserta o actualiza el contador (por producto y bodega).
func (r *StockRepo) Upsert(ctx context.Context, s *entity.Stock) error {
	query := `
		INSERT INTO stock (product_id, warehouse_id, quantity, reserved, avg_cost, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (product_id, warehouse_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, reserved = EXCLUDED.reserved,
			avg_cost = EXCLUDED.avg_cost, updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(ctx, query, s.ProductID, s.WarehouseID, s.Quantity, s.Reserved, s.AvgCost, s.UpdatedAt)
	if err != nil {
		if isCheckViolation(err) {
			return fmt.Errorf("stock %s/%s: %w", s.ProductID, s.WarehouseID, domain.ErrConflict)
		}
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}

// ListKeys claves con contador o con movimientos, ordenadas.
func (r *StockRepo) ListKeys(ctx context.Context) ([]entity.StockKey, error) {
	rows, err := r.q.Query(ctx, `
		SELECT product_id::text, warehouse_id::text FROM stock
		UNION
		SELECT DISTINCT product_id::text, warehouse_id::text FROM movement_entries
		ORDER BY 1, 2`)
	if err != nil {
		return nil, fmt.Errorf("list stock keys: %w", err)
	}
	defer rows.Close()
	var keys []entity.StockKey
	for rows.Next() {
		var k entity.StockKey
		if err := rows.Scan(&k.ProductID, &k.WarehouseID); err != nil {
			return nil, fmt.Errorf("scan stock key: %w", err)
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// MovementRepo libro de movimientos sobre PostgreSQL. La tabla rechaza UPDATE y DELETE por trigger.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

const movementColumns = `sequence, id, product_id, COALESCE(serial_unit_id::text, ''), warehouse_id, kind, direction,
	quantity, unit_cost, total_cost, reference_type, reference_number, note, created_at, created_by`

func scanMovement(row pgx.Row) (*entity.MovementEntry, error) {
	var m entity.MovementEntry
	err := row.Scan(
		&m.Sequence, &m.ID, &m.ProductID, &m.SerialUnitID, &m.WarehouseID, &m.Kind, &m.Direction,
		&m.Quantity, &m.UnitCost, &m.TotalCost, &m.ReferenceType, &m.ReferenceNumber, &m.Note,
		&m.CreatedAt, &m.CreatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Append persiste el movimiento y asigna Sequence desde la secuencia de la tabla.
func (r *MovementRepo) Append(ctx context.Context, m *entity.MovementEntry) error {
	query := `
		INSERT INTO movement_entries (id, product_id, serial_unit_id, warehouse_id, kind, direction,
			quantity, unit_cost, total_cost, reference_type, reference_number, note, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING sequence`
	err := r.q.QueryRow(ctx, query,
		m.ID, m.ProductID, nullable(m.SerialUnitID), m.WarehouseID, m.Kind, m.Direction,
		m.Quantity, m.UnitCost, m.TotalCost, m.ReferenceType, m.ReferenceNumber, m.Note,
		m.CreatedAt, m.CreatedBy,
	).Scan(&m.Sequence)
	if err != nil {
		return fmt.Errorf("append movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID.
func (r *MovementRepo) GetByID(ctx context.Context, id string) (*entity.MovementEntry, error) {
	if !validID(id) {
		return nil, nil
	}
	m, err := scanMovement(r.q.QueryRow(ctx, `SELECT `+movementColumns+` FROM movement_entries WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return m, nil
}

// movementQuery arma el SELECT filtrado; Limit 0 no limita.
func movementQuery(f repository.MovementFilter) (string, []any) {
	var (
		where []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if f.ProductID != "" {
		add("product_id = $%d", f.ProductID)
	}
	if f.WarehouseID != "" {
		add("warehouse_id = $%d", f.WarehouseID)
	}
	if f.From != nil {
		add("created_at >= $%d", *f.From)
	}
	if f.To != nil {
		add("created_at <= $%d", *f.To)
	}
	if f.ReferenceType != "" {
		add("reference_type = $%d", f.ReferenceType)
	}
	if f.ReferenceNumber != "" {
		add("reference_number = $%d", f.ReferenceNumber)
	}
	if f.AfterSequence > 0 {
		add("sequence > $%d", f.AfterSequence)
	}
	var sb strings.Builder
	sb.WriteString(`SELECT ` + movementColumns + ` FROM movement_entries`)
	if len(where) > 0 {
		sb.WriteString(" WHERE " + strings.Join(where, " AND "))
	}
	sb.WriteString(" ORDER BY sequence")
	if f.Limit > 0 {
		args = append(args, f.Limit)
		fmt.Fprintf(&sb, " LIMIT $%d", len(args))
	}
	return sb.String(), args
}

// Iterate recorre las filas a medida que llegan; cortar el range cierra el cursor.
// Dentro de una tx no se deben emitir otras consultas hasta terminar el recorrido.
func (r *MovementRepo) Iterate(ctx context.Context, filter repository.MovementFilter) iter.Seq2[*entity.MovementEntry, error] {
	return func(yield func(*entity.MovementEntry, error) bool) {
		if (filter.ProductID != "" && !validID(filter.ProductID)) || (filter.WarehouseID != "" && !validID(filter.WarehouseID)) {
			return
		}
		query, args := movementQuery(filter)
		rows, err := r.q.Query(ctx, query, args...)
		if err != nil {
			yield(nil, fmt.Errorf("iterate movements: %w", err))
			return
		}
		defer rows.Close()
		for rows.Next() {
			m, err := scanMovement(rows)
			if err != nil {
				yield(nil, fmt.Errorf("scan movement: %w", err))
				return
			}
			if !yield(m, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(nil, fmt.Errorf("iterate movements: %w", err))
		}
	}
}

// CountByProduct cuántos movimientos tiene el producto en cualquier bodega.
func (r *MovementRepo) CountByProduct(ctx context.Context, productID string) (int, error) {
	if !validID(productID) {
		return 0, nil
	}
	var n int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM movement_entries WHERE product_id = $1`, productID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count movements: %w", err)
	}
	return n, nil
}
