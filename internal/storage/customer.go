package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/linemk/warehouse-facade/internal/domain/models"
	"github.com/linemk/warehouse-facade/internal/warehouse"
)

// CustomerStorage описывает чтение клиентов из хранилища.
type CustomerStorage interface {
	// GetCustomerByID возвращает клиента или ErrCustomerNotFound.
	GetCustomerByID(ctx context.Context, id int64) (*models.Customer, error)
	// ListTopCustomers возвращает клиентов с наибольшей суммой заказов, по убыванию суммы.
	ListTopCustomers(ctx context.Context, limit int) ([]models.CustomerTotal, error)
}

type customerRepository struct {
	repository
}

// NewCustomerRepository создаёт репозиторий клиентов.
func NewCustomerRepository(db *sqlx.DB, dialect warehouse.Dialect, timeout time.Duration) CustomerStorage {
	return &customerRepository{repository: newRepository(db, dialect, timeout)}
}

func (r *customerRepository) GetCustomerByID(ctx context.Context, id int64) (*models.Customer, error) {
	const op = "storage.GetCustomerByID"

	d := r.dialect
	query := fmt.Sprintf(`SELECT c_custkey AS %s, c_name AS %s, c_address AS %s, c_phone AS %s, c_acctbal AS %s, c_comment AS %s
		FROM %s WHERE c_custkey = ?`,
		d.Alias("id"), d.Alias("name"), d.Alias("address"), d.Alias("phone"), d.Alias("account_balance"), d.Alias("comment"),
		d.Table("customer"))

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	customer := &models.Customer{}
	if err := r.db.GetContext(ctx, customer, r.db.Rebind(query), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCustomerNotFound
		}
		return nil, queryFailed(op, err)
	}
	return customer, nil
}

func (r *customerRepository) ListTopCustomers(ctx context.Context, limit int) ([]models.CustomerTotal, error) {
	const op = "storage.ListTopCustomers"

	d := r.dialect
	query := fmt.Sprintf(`SELECT c.c_custkey AS %s, c.c_name AS %s, o.order_total AS %s
		FROM %s c
		INNER JOIN (
			SELECT o_custkey, SUM(o_totalprice) AS order_total
			FROM %s
			GROUP BY o_custkey
			ORDER BY order_total DESC
			LIMIT %d
		) o ON c.c_custkey = o.o_custkey
		ORDER BY o.order_total DESC, c.c_custkey`,
		d.Alias("id"), d.Alias("name"), d.Alias("order_total"),
		d.Table("customer"), d.Table("orders"), limit)

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var customers []models.CustomerTotal
	if err := r.db.SelectContext(ctx, &customers, query); err != nil {
		return nil, queryFailed(op, err)
	}
	return customers, nil
}
