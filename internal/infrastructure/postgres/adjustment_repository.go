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

var _ repository.AdjustmentRepository = (*AdjustmentRepo)(nil)

// AdjustmentRepo ajustes con sus ítems sobre PostgreSQL.
type AdjustmentRepo struct {
	q Querier
}

// NewAdjustmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAdjustmentRepository(q Querier) *AdjustmentRepo {
	return &AdjustmentRepo{q: q}
}

const adjustmentColumns = `id, number, warehouse_id, type, reason, status, total_items, failed_items,
	created_by, approved_by, decision_reason, created_at, decided_at, updated_at`

const adjustmentItemColumns = `id, adjustment_id, line, serial_unit_id, serial_code, missing, note, status,
	failure_code, failure_detail, movement_id`

func scanAdjustment(row pgx.Row) (*entity.Adjustment, error) {
	var a entity.Adjustment
	err := row.Scan(
		&a.ID, &a.Number, &a.WarehouseID, &a.Type, &a.Reason, &a.Status, &a.TotalItems, &a.FailedItems,
		&a.CreatedBy, &a.ApprovedBy, &a.DecisionReason, &a.CreatedAt, &a.DecidedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create persiste cabecera e ítems.
func (r *AdjustmentRepo) Create(ctx context.Context, a *entity.Adjustment) error {
	query := `INSERT INTO adjustments (` + adjustmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		a.ID, a.Number, a.WarehouseID, a.Type, a.Reason, a.Status, a.TotalItems, a.FailedItems,
		a.CreatedBy, a.ApprovedBy, a.DecisionReason, a.CreatedAt, a.DecidedAt, a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("ajuste %s: %w", a.Number, domain.ErrDuplicate)
		}
		return fmt.Errorf("insert adjustment: %w", err)
	}
	b := &pgx.Batch{}
	for _, it := range a.Items {
		b.Queue(`INSERT INTO adjustment_items (`+adjustmentItemColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			it.ID, a.ID, it.Line, it.SerialUnitID, it.SerialCode, it.Missing, it.Note, it.Status,
			it.FailureCode, it.FailureDetail, it.MovementID)
	}
	return execBatch(ctx, r.q, b, "insert adjustment items")
}

func (r *AdjustmentRepo) getOne(ctx context.Context, query string, arg any) (*entity.Adjustment, error) {
	a, err := scanAdjustment(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get adjustment: %w", err)
	}
	items, err := loadAdjustmentItems(ctx, r.q, []string{a.ID})
	if err != nil {
		return nil, err
	}
	a.Items = items[a.ID]
	return a, nil
}

// GetByID obtiene el ajuste con sus ítems.
func (r *AdjustmentRepo) GetByID(ctx context.Context, id string) (*entity.Adjustment, error) {
	if !validID(id) {
		return nil, nil
	}
	return r.getOne(ctx, `SELECT `+adjustmentColumns+` FROM adjustments WHERE id = $1`, id)
}

// GetByNumber obtiene el ajuste por número.
func (r *AdjustmentRepo) GetByNumber(ctx context.Context, number string) (*entity.Adjustment, error) {
	return r.getOne(ctx, `SELECT `+adjustmentColumns+` FROM adjustments WHERE number = $1`, number)
}

// GetForUpdate bloquea la cabecera.
func (r *AdjustmentRepo) GetForUpdate(ctx context.Context, id string) (*entity.Adjustment, error) {
	if !validID(id) {
		return nil, nil
	}
	return r.getOne(ctx, `SELECT `+adjustmentColumns+` FROM adjustments WHERE id = $1 FOR UPDATE`, id)
}

// Update guarda la cabecera: estado, conteo de fallos y decisión.
func (r *AdjustmentRepo) Update(ctx context.Context, a *entity.Adjustment) error {
	query := `
		UPDATE adjustments SET status = $2, failed_items = $3, approved_by = $4, decision_reason = $5,
			decided_at = $6, updated_at = $7
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, a.ID, a.Status, a.FailedItems, a.ApprovedBy, a.DecisionReason, a.DecidedAt, a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update adjustment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("ajuste %s: %w", a.ID, domain.ErrNotFound)
	}
	return nil
}

// UpdateItem guarda el resultado de un ítem.
func (r *AdjustmentRepo) UpdateItem(ctx context.Context, it *entity.AdjustmentItem) error {
	query := `
		UPDATE adjustment_items SET serial_unit_id = $2, serial_code = $3, status = $4, failure_code = $5,
			failure_detail = $6, movement_id = $7
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, it.ID, it.SerialUnitID, it.SerialCode, it.Status, it.FailureCode, it.FailureDetail, it.MovementID)
	if err != nil {
		return fmt.Errorf("update adjustment item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("ítem de ajuste %s: %w", it.ID, domain.ErrNotFound)
	}
	return nil
}

// List lista ajustes recientes primero.
func (r *AdjustmentRepo) List(ctx context.Context, f repository.AdjustmentFilter) ([]*entity.Adjustment, error) {
	if f.WarehouseID != "" && !validID(f.WarehouseID) {
		return nil, nil
	}
	query := `SELECT ` + adjustmentColumns + ` FROM adjustments
		WHERE ($1 = '' OR status = $1) AND ($2 = '' OR warehouse_id::text = $2) AND ($3 = '' OR type = $3)
		ORDER BY created_at DESC, number
		LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(ctx, query, string(f.Status), f.WarehouseID, string(f.Type), f.Limit, f.Offset)
	if err != nil {
		return nil, fmt.Errorf("list adjustments: %w", err)
	}
	var (
		list []*entity.Adjustment
		ids  []string
	)
	for rows.Next() {
		a, err := scanAdjustment(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan adjustment: %w", err)
		}
		list = append(list, a)
		ids = append(ids, a.ID)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list adjustments: %w", err)
	}
	if len(ids) == 0 {
		return list, nil
	}
	items, err := loadAdjustmentItems(ctx, r.q, ids)
	if err != nil {
		return nil, err
	}
	for _, a := range list {
		a.Items = items[a.ID]
	}
	return list, nil
}

func loadAdjustmentItems(ctx context.Context, q Querier, ids []string) (map[string][]*entity.AdjustmentItem, error) {
	rows, err := q.Query(ctx, `SELECT `+adjustmentItemColumns+` FROM adjustment_items
		WHERE adjustment_id = ANY($1) ORDER BY adjustment_id, line`, ids)
	if err != nil {
		return nil, fmt.Errorf("load adjustment items: %w", err)
	}
	defer rows.Close()
	out := make(map[string][]*entity.AdjustmentItem, len(ids))
	for rows.Next() {
		var it entity.AdjustmentItem
		if err := rows.Scan(&it.ID, &it.AdjustmentID, &it.Line, &it.SerialUnitID, &it.SerialCode, &it.Missing,
			&it.Note, &it.Status, &it.FailureCode, &it.FailureDetail, &it.MovementID); err != nil {
			return nil, fmt.Errorf("scan adjustment item: %w", err)
		}
		out[it.AdjustmentID] = append(out[it.AdjustmentID], &it)
	}
	return out, rows.Err()
}
