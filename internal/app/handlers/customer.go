package handlers

import (
	"log/slog"
	"net/http"

	"github.com/linemk/warehouse-facade/internal/domain/models"
	"github.com/linemk/warehouse-facade/internal/service"
)

const dateLayout = "2006-01-02"

// CustomerResponse - ответ GET /customer/{id}
type CustomerResponse struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	Address        string  `json:"address"`
	Phone          string  `json:"phone"`
	AccountBalance float64 `json:"account_balance"`
	Comment        string  `json:"comment"`
}

// TopCustomerResponse - элемент ответа GET /top_customers
type TopCustomerResponse struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	OrderTotal float64 `json:"order_total"`
}

// OrderSummaryResponse - ответ GET /customer/{id}/order_summary
type OrderSummaryResponse struct {
	ID               int64                `json:"id"`
	Name             string               `json:"name"`
	FirstOrderDate   string               `json:"first_order_date"`
	LastOrderDate    string               `json:"last_order_date"`
	TotalOrdersValue float64              `json:"total_orders_value"`
	OrderHistory     OrderHistoryResponse `json:"order_history"`
}

type OrderHistoryResponse struct {
	Ticks  []string `json:"ticks"`
	Totals []string `json:"totals"`
}

func newOrderSummaryResponse(s *models.CustomerOrderSummary) OrderSummaryResponse {
	totals := make([]string, 0, len(s.OrderHistory.Totals))
	for _, t := range s.OrderHistory.Totals {
		totals = append(totals, t.StringFixed(2))
	}
	ticks := s.OrderHistory.Ticks
	if ticks == nil {
		ticks = []string{}
	}
	return OrderSummaryResponse{
		ID:               s.ID,
		Name:             s.Name,
		FirstOrderDate:   s.FirstOrderDate.Format(dateLayout),
		LastOrderDate:    s.LastOrderDate.Format(dateLayout),
		TotalOrdersValue: s.TotalOrdersValue.InexactFloat64(),
		OrderHistory:     OrderHistoryResponse{Ticks: ticks, Totals: totals},
	}
}

// TopCustomersHandler обрабатывает GET /top_customers
func TopCustomersHandler(log *slog.Logger, customerService service.CustomerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.TopCustomersHandler"
		logger := requestLogger(log, r, op)

		customers, err := customerService.TopCustomers(r.Context())
		if err != nil {
			writeError(w, logger, err)
			return
		}

		resp := make([]TopCustomerResponse, 0, len(customers))
		for _, c := range customers {
			resp = append(resp, TopCustomerResponse{
				ID:         c.ID,
				Name:       c.Name,
				OrderTotal: c.OrderTotal.InexactFloat64(),
			})
		}
		writeJSON(w, logger, resp)
	}
}

// CustomerHandler обрабатывает GET /customer/{id}
func CustomerHandler(log *slog.Logger, customerService service.CustomerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CustomerHandler"
		logger := requestLogger(log, r, op)

		id, err := parseCustomerID(r)
		if err != nil {
			logger.Warn("invalid customer id", slog.Any("error", err))
			http.Error(w, "invalid customer id", http.StatusBadRequest)
			return
		}

		customer, err := customerService.GetCustomer(r.Context(), id)
		if err != nil {
			writeError(w, logger.With(slog.Int64("customerID", id)), err)
			return
		}

		writeJSON(w, logger, CustomerResponse{
			ID:             customer.ID,
			Name:           customer.Name,
			Address:        customer.Address,
			Phone:          customer.Phone,
			AccountBalance: customer.AccountBalance.InexactFloat64(),
			Comment:        customer.Comment,
		})
	}
}

// OrderSummaryHandler обрабатывает GET /customer/{id}/order_summary
func OrderSummaryHandler(log *slog.Logger, summaryService service.SummaryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.OrderSummaryHandler"
		logger := requestLogger(log, r, op)

		id, err := parseCustomerID(r)
		if err != nil {
			logger.Warn("invalid customer id", slog.Any("error", err))
			http.Error(w, "invalid customer id", http.StatusBadRequest)
			return
		}

		summary, err := summaryService.GetCustomerOrderSummary(r.Context(), id)
		if err != nil {
			writeError(w, logger.With(slog.Int64("customerID", id)), err)
			return
		}

		writeJSON(w, logger, newOrderSummaryResponse(summary))
	}
}
