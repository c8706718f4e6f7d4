package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/linemk/warehouse-facade/internal/domain/models"
	"github.com/linemk/warehouse-facade/internal/storage"
	"github.com/shopspring/decimal"
)

// ErrInconsistentSummary - строки запроса нарушают инварианты сводки
var ErrInconsistentSummary = errors.New("inconsistent order summary rows")

// SummaryService строит сводку по заказам клиента.
type SummaryService interface {
	// GetCustomerOrderSummary возвращает storage.ErrNoOrders, если у клиента нет заказов,
	// и ошибку с storage.ErrQueryFailed, если хранилище не выполнило запрос.
	GetCustomerOrderSummary(ctx context.Context, customerID int64) (*models.CustomerOrderSummary, error)
}

type summaryService struct {
	log         *slog.Logger
	summaryRepo storage.SummaryStorage
}

func NewSummaryService(log *slog.Logger, summaryRepo storage.SummaryStorage) SummaryService {
	return &summaryService{
		log:         log,
		summaryRepo: summaryRepo,
	}
}

func (s *summaryService) GetCustomerOrderSummary(ctx context.Context, customerID int64) (*models.CustomerOrderSummary, error) {
	const op = "service.SummaryService.GetCustomerOrderSummary"
	logger := s.log.With(slog.String("op", op), slog.Int64("customerID", customerID))

	rows, err := s.summaryRepo.GetOrderSummaryRows(ctx, customerID)
	if err != nil {
		logger.Error("failed to get summary rows", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if len(rows) == 0 {
		logger.Debug("no orders for customer")
		return nil, storage.ErrNoOrders
	}

	summary, err := foldSummary(rows)
	if err != nil {
		logger.Error("summary rows are inconsistent", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	logger.Debug("summary built", slog.Int("months", len(summary.OrderHistory.Ticks)))
	return summary, nil
}

// foldSummary сворачивает строки в сводку: первая строка задаёт скалярные поля,
// каждая строка добавляет месяц и его сумму в историю.
func foldSummary(rows []models.SummaryRow) (*models.CustomerOrderSummary, error) {
	first := rows[0]
	summary := &models.CustomerOrderSummary{
		ID:               first.ID,
		Name:             first.Name,
		FirstOrderDate:   first.FirstOrderDate,
		LastOrderDate:    first.LastOrderDate,
		TotalOrdersValue: first.TotalOrdersValue,
		OrderHistory: models.OrderHistory{
			Ticks:  make([]string, 0, len(rows)),
			Totals: make([]decimal.Decimal, 0, len(rows)),
		},
	}

	for i, row := range rows {
		if row.ID != first.ID || row.Name != first.Name ||
			!row.FirstOrderDate.Equal(first.FirstOrderDate) || !row.LastOrderDate.Equal(first.LastOrderDate) ||
			!row.TotalOrdersValue.Equal(first.TotalOrdersValue) {
			return nil, fmt.Errorf("%w: row %d has different customer totals", ErrInconsistentSummary, i)
		}
		if !row.GrandTotal.Equal(row.TotalOrdersValue) {
			return nil, fmt.Errorf("%w: monthly grand total %s != total %s", ErrInconsistentSummary, row.GrandTotal, row.TotalOrdersValue)
		}
		if i > 0 && row.Tick <= rows[i-1].Tick {
			return nil, fmt.Errorf("%w: month %q after %q", ErrInconsistentSummary, row.Tick, rows[i-1].Tick)
		}

		summary.OrderHistory.Ticks = append(summary.OrderHistory.Ticks, row.Tick)
		summary.OrderHistory.Totals = append(summary.OrderHistory.Totals, row.MonthlyTotal)
	}

	return summary, nil
}
