package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/linemk/warehouse-facade/internal/domain/models"
	"github.com/linemk/warehouse-facade/internal/warehouse"
)

// SummaryStorage описывает агрегирующий запрос по заказам клиента.
type SummaryStorage interface {
	// GetOrderSummaryRows возвращает строки сводки по возрастанию месяца.
	// Пустой результат не является ошибкой.
	GetOrderSummaryRows(ctx context.Context, customerID int64) ([]models.SummaryRow, error)
}

type summaryRepository struct {
	repository
}

// NewSummaryRepository создаёт репозиторий сводок по заказам.
func NewSummaryRepository(db *sqlx.DB, dialect warehouse.Dialect, timeout time.Duration) SummaryStorage {
	return &summaryRepository{repository: newRepository(db, dialect, timeout)}
}

// summaryQuery соединяет итоги по клиенту (t) и помесячные итоги (m).
// grand_total считается оконной функцией независимо от t.total_orders_value.
func summaryQuery(d warehouse.Dialect) string {
	month := d.MonthLabel("o_orderdate")
	return fmt.Sprintf(`WITH co AS (
			SELECT c.c_custkey, c.c_name, o.o_orderdate, o.o_totalprice
			FROM %s c INNER JOIN %s o ON c.c_custkey = o.o_custkey
			WHERE c.c_custkey = ?
		),
		t AS (
			SELECT c_custkey, c_name,
				MIN(o_orderdate) AS first_order_date,
				MAX(o_orderdate) AS last_order_date,
				SUM(o_totalprice) AS total_orders_value
			FROM co GROUP BY c_custkey, c_name
		),
		m AS (
			SELECT c_custkey, %s AS tick,
				SUM(o_totalprice) AS monthly_total,
				SUM(SUM(o_totalprice)) OVER () AS grand_total
			FROM co GROUP BY c_custkey, %s
		)
		SELECT t.c_custkey AS %s, t.c_name AS %s,
			t.first_order_date AS %s, t.last_order_date AS %s, t.total_orders_value AS %s,
			m.tick AS %s, m.monthly_total AS %s, m.grand_total AS %s
		FROM t INNER JOIN m ON t.c_custkey = m.c_custkey
		ORDER BY m.tick`,
		d.Table("customer"), d.Table("orders"),
		month, month,
		d.Alias("id"), d.Alias("name"),
		d.Alias("first_order_date"), d.Alias("last_order_date"), d.Alias("total_orders_value"),
		d.Alias("tick"), d.Alias("monthly_total"), d.Alias("grand_total"))
}

func (r *summaryRepository) GetOrderSummaryRows(ctx context.Context, customerID int64) ([]models.SummaryRow, error) {
	const op = "storage.GetOrderSummaryRows"

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var rows []models.SummaryRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(summaryQuery(r.dialect)), customerID); err != nil {
		return nil, queryFailed(op, err)
	}
	return rows, nil
}
