package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SummaryRow - строка агрегирующего запроса по заказам клиента.
// Скалярные поля повторяются в каждой строке, помесячные - свои для каждой.
type SummaryRow struct {
	ID               int64           `db:"id"`
	Name             string          `db:"name"`
	FirstOrderDate   time.Time       `db:"first_order_date"`
	LastOrderDate    time.Time       `db:"last_order_date"`
	TotalOrdersValue decimal.Decimal `db:"total_orders_value"`
	Tick             string          `db:"tick"`
	MonthlyTotal     decimal.Decimal `db:"monthly_total"`
	GrandTotal       decimal.Decimal `db:"grand_total"`
}

// CustomerOrderSummary - сводка по заказам клиента
type CustomerOrderSummary struct {
	ID               int64
	Name             string
	FirstOrderDate   time.Time
	LastOrderDate    time.Time
	TotalOrdersValue decimal.Decimal
	OrderHistory     OrderHistory
}

// OrderHistory - два параллельных ряда одинаковой длины, по возрастанию месяца
type OrderHistory struct {
	Ticks  []string
	Totals []decimal.Decimal
}
