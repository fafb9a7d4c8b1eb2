package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ repository.TransferRepository = (*TransferRepo)(nil)

// TransferRepo traslados con sus ítems sobre PostgreSQL.
type TransferRepo struct {
	q Querier
}

// NewTransferRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransferRepository(q Querier) *TransferRepo {
	return &TransferRepo{q: q}
}

const transferColumns = `id, number, source_warehouse_id, target_warehouse_id, status, total_items, total_quantity,
	note, initiated_by, confirmed_by, created_at, submitted_at, dispatched_at, delivered_at, completed_at,
	cancelled_at, updated_at`

func scanTransfer(row pgx.Row) (*entity.Transfer, error) {
	var t entity.Transfer
	err := row.Scan(
		&t.ID, &t.Number, &t.SourceWarehouseID, &t.TargetWarehouseID, &t.Status, &t.TotalItems, &t.TotalQuantity,
		&t.Note, &t.InitiatedBy, &t.ConfirmedBy, &t.CreatedAt, &t.SubmittedAt, &t.DispatchedAt, &t.DeliveredAt,
		&t.CompletedAt, &t.CancelledAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Create persiste cabecera e ítems; los ítems van en un solo batch.
func (r *TransferRepo) Create(ctx context.Context, t *entity.Transfer) error {
	query := `INSERT INTO transfers (` + transferColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.Number, t.SourceWarehouseID, t.TargetWarehouseID, t.Status, t.TotalItems, t.TotalQuantity,
		t.Note, t.InitiatedBy, t.ConfirmedBy, t.CreatedAt, t.SubmittedAt, t.DispatchedAt, t.DeliveredAt,
		t.CompletedAt, t.CancelledAt, t.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("traslado %s: %w", t.Number, domain.ErrDuplicate)
		}
		return fmt.Errorf("insert transfer: %w", err)
	}

	b := &pgx.Batch{}
	for i, it := range t.Items {
		b.Queue(`
			INSERT INTO transfer_items (id, transfer_id, position, product_id, serial_unit_id, serial_code, quantity, unit_cost, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			it.ID, t.ID, i+1, it.ProductID, nullable(it.SerialUnitID), it.SerialCode, it.Quantity, it.UnitCost, it.Status)
	}
	return execBatch(ctx, r.q, b, "insert transfer items")
}

func (r *TransferRepo) getOne(ctx context.Context, query string, arg any) (*entity.Transfer, error) {
	t, err := scanTransfer(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transfer: %w", err)
	}
	items, err := loadTransferItems(ctx, r.q, []string{t.ID})
	if err != nil {
		return nil, err
	}
	t.Items = items[t.ID]
	return t, nil
}

// GetByID obtiene el traslado con sus ítems.
func (r *TransferRepo) GetByID(ctx context.Context, id string) (*entity.Transfer, error) {
	if !validID(id) {
		return nil, nil
	}
	return r.getOne(ctx, `SELECT `+transferColumns+` FROM transfers WHERE id = $1`, id)
}

// GetByNumber obtiene el traslado por número.
func (r *TransferRepo) GetByNumber(ctx context.Context, number string) (*entity.Transfer, error) {
	return r.getOne(ctx, `SELECT `+transferColumns+` FROM transfers WHERE number = $1`, number)
}

// GetForUpdate bloquea la cabecera; los ítems solo cambian con la cabecera bloqueada.
func (r *TransferRepo) GetForUpdate(ctx context.Context, id string) (*entity.Transfer, error) {
	if !validID(id) {
		return nil, nil
	}
	return r.getOne(ctx, `SELECT `+transferColumns+` FROM transfers WHERE id = $1 FOR UPDATE`, id)
}

// Update guarda estado, marcas de tiempo y nota de la cabecera y el estado de cada ítem.
func (r *TransferRepo) Update(ctx context.Context, t *entity.Transfer) error {
	query := `
		UPDATE transfers SET status = $2, note = $3, confirmed_by = $4, submitted_at = $5, dispatched_at = $6,
			delivered_at = $7, completed_at = $8, cancelled_at = $9, updated_at = $10
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		t.ID, t.Status, t.Note, t.ConfirmedBy, t.SubmittedAt, t.DispatchedAt,
		t.DeliveredAt, t.CompletedAt, t.CancelledAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update transfer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("traslado %s: %w", t.ID, domain.ErrNotFound)
	}
	b := &pgx.Batch{}
	for _, it := range t.Items {
		b.Queue(`UPDATE transfer_items SET status = $2, unit_cost = $3 WHERE id = $1`, it.ID, it.Status, it.UnitCost)
	}
	return execBatch(ctx, r.q, b, "update transfer items")
}

// List lista traslados recientes primero; WarehouseID filtra por origen o destino.
func (r *TransferRepo) List(ctx context.Context, f repository.TransferFilter) ([]*entity.Transfer, error) {
	if f.WarehouseID != "" && !validID(f.WarehouseID) {
		return nil, nil
	}
	query := `SELECT ` + transferColumns + ` FROM transfers
		WHERE ($1 = '' OR status = $1)
		  AND ($2 = '' OR source_warehouse_id::text = $2 OR target_warehouse_id::text = $2)
		ORDER BY created_at DESC, number
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, string(f.Status), f.WarehouseID, f.Limit, f.Offset)
	if err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}
	var (
		list []*entity.Transfer
		ids  []string
	)
	for rows.Next() {
		t, err := scanTransfer(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan transfer: %w", err)
		}
		list = append(list, t)
		ids = append(ids, t.ID)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}
	if len(ids) == 0 {
		return list, nil
	}
	items, err := loadTransferItems(ctx, r.q, ids)
	if err != nil {
		return nil, err
	}
	for _, t := range list {
		t.Items = items[t.ID]
	}
	return list, nil
}

func loadTransferItems(ctx context.Context, q Querier, transferIDs []string) (map[string][]*entity.TransferItem, error) {
	rows, err := q.Query(ctx, `
		SELECT id, transfer_id, product_id, COALESCE(serial_unit_id::text, ''), serial_code, quantity, unit_cost, status
		FROM transfer_items WHERE transfer_id = ANY($1)
		ORDER BY transfer_id, position`, transferIDs)
	if err != nil {
		return nil, fmt.Errorf("load transfer items: %w", err)
	}
	defer rows.Close()
	out := make(map[string][]*entity.TransferItem, len(transferIDs))
	for rows.Next() {
		var it entity.TransferItem
		if err := rows.Scan(&it.ID, &it.TransferID, &it.ProductID, &it.SerialUnitID, &it.SerialCode,
			&it.Quantity, &it.UnitCost, &it.Status); err != nil {
			return nil, fmt.Errorf("scan transfer item: %w", err)
		}
		out[it.TransferID] = append(out[it.TransferID], &it)
	}
	return out, rows.Err()
}

// execBatch envía el batch y revisa cada resultado.
func execBatch(ctx context.Context, q Querier, b *pgx.Batch, what string) error {
	if b.Len() == 0 {
		return nil
	}
	br := q.SendBatch(ctx, b)
	for i := 0; i < b.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return fmt.Errorf("%s: %w", what, err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("%s: %w", what, err)
	}
	return nil
}

// ReservedQuantity suma los ítems sin serial que reservan stock en la clave.
func (r *TransferRepo) ReservedQuantity(ctx context.Context, productID, warehouseID string) (decimal.Decimal, error) {
	if !validID(productID) || !validID(warehouseID) {
		return decimal.Zero, nil
	}
	var total decimal.Decimal
	err := r.q.QueryRow(ctx, `SELECT COALESCE(SUM(i.quantity), 0)
		FROM transfer_items i JOIN transfers t ON t.id = i.transfer_id
		WHERE i.product_id = $1 AND i.serial_unit_id IS NULL
		  AND ((t.status = 'pending' AND t.source_warehouse_id = $2)
		    OR (t.status IN ('in_transit', 'delivered') AND t.target_warehouse_id = $2))`,
		productID, warehouseID).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("reserved quantity: %w", err)
	}
	return total, nil
}
