package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/linemk/warehouse-facade/internal/domain/models"
	"github.com/linemk/warehouse-facade/internal/storage"
	"github.com/shopspring/decimal"
)

const (
	// SentinelCustomerID - клиент, для которого при неудачном поиске отдаётся тестовая запись
	SentinelCustomerID int64 = 0
	TopCustomersLimit        = 10
)

// DefaultCustomer возвращает тестовую запись для SentinelCustomerID
func DefaultCustomer() *models.Customer {
	return &models.Customer{
		ID:             SentinelCustomerID,
		Name:           "Test Name",
		Address:        "Test Address",
		Phone:          "Test Phone",
		AccountBalance: decimal.RequireFromString("100.4"),
		Comment:        "Test Comment",
	}
}

// CustomerService - чтение клиентов.
type CustomerService interface {
	GetCustomer(ctx context.Context, customerID int64) (*models.Customer, error)
	TopCustomers(ctx context.Context) ([]models.CustomerTotal, error)
}

type customerService struct {
	log          *slog.Logger
	customerRepo storage.CustomerStorage
}

func NewCustomerService(log *slog.Logger, customerRepo storage.CustomerStorage) CustomerService {
	return &customerService{
		log:          log,
		customerRepo: customerRepo,
	}
}

// GetCustomer ищет клиента. Если поиск не удался и запрошен SentinelCustomerID,
// возвращается DefaultCustomer; для остальных id ошибка пробрасывается как есть.
func (s *customerService) GetCustomer(ctx context.Context, customerID int64) (*models.Customer, error) {
	const op = "service.CustomerService.GetCustomer"
	logger := s.log.With(slog.String("op", op), slog.Int64("customerID", customerID))

	customer, err := s.customerRepo.GetCustomerByID(ctx, customerID)
	if err != nil {
		if customerID == SentinelCustomerID {
			logger.Warn("lookup failed, using default customer", slog.Any("error", err))
			return DefaultCustomer(), nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return customer, nil
}

// TopCustomers возвращает не более TopCustomersLimit клиентов по убыванию суммы заказов
func (s *customerService) TopCustomers(ctx context.Context) ([]models.CustomerTotal, error) {
	const op = "service.CustomerService.TopCustomers"

	customers, err := s.customerRepo.ListTopCustomers(ctx, TopCustomersLimit)
	if err != nil {
		s.log.Error("failed to list top customers", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	sort.SliceStable(customers, func(i, j int) bool {
		return customers[i].OrderTotal.GreaterThan(customers[j].OrderTotal)
	})
	if len(customers) > TopCustomersLimit {
		customers = customers[:TopCustomersLimit]
	}
	return customers, nil
}
