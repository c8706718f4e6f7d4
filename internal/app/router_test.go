package app_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aws/aws-lambda-go/events"
	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"
	"github.com/linemk/warehouse-facade/internal/app"
	"github.com/linemk/warehouse-facade/internal/auth"
	"github.com/linemk/warehouse-facade/internal/warehouse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const token = "demo-token"

func newTestRouter(t *testing.T) (*chi.Mux, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	dialect, err := warehouse.NewDialect("postgres", "tpch", "tpch_sf10")
	require.NoError(t, err)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := app.NewServices(log, sqlx.NewDb(db, "postgres"), dialect, time.Second)
	router := app.NewRouter(log, []string{"http://localhost:3000"}, auth.NewStaticTokenAuthorizer(token), svc)
	return router, mock
}

func get(router http.Handler, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestRouter_UnauthorizedBeforeAnyQuery(t *testing.T) {
	router, mock := newTestRouter(t)

	paths := []string{"/top_customers", "/backend", "/customer/1", "/customer/1/order_summary"}
	for _, path := range paths {
		for _, header := range []string{"", "Bearer wrong", token} {
			rr := get(router, path, header)
			assert.Equal(t, http.StatusUnauthorized, rr.Code, "%s %q", path, header)
		}
	}

	// ни одного запроса к хранилищу
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRouter_RootIsPublicRedirect(t *testing.T) {
	router, _ := newTestRouter(t)

	rr := get(router, "/", "")
	assert.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "/docs", rr.Header().Get("Location"))

	rr = get(router, "/docs", "")
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRouter_OrderSummary(t *testing.T) {
	router, mock := newTestRouter(t)

	d := func(s string) time.Time {
		v, _ := time.Parse("2006-01-02", s)
		return v
	}
	cols := []string{"id", "name", "first_order_date", "last_order_date", "total_orders_value", "tick", "monthly_total", "grand_total"}
	mock.ExpectQuery(`WITH co AS`).WithArgs(int64(5)).WillReturnRows(sqlmock.NewRows(cols).
		AddRow(int64(5), "Customer#5", d("2023-01-04"), d("2023-03-28"), "175.00", "2023-01", "100.00", "175.00").
		AddRow(int64(5), "Customer#5", d("2023-01-04"), d("2023-03-28"), "175.00", "2023-02", "50.00", "175.00").
		AddRow(int64(5), "Customer#5", d("2023-01-04"), d("2023-03-28"), "175.00", "2023-03", "25.00", "175.00"))

	rr := get(router, "/customer/5/order_summary", "Bearer "+token)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.JSONEq(t, `{
		"id": 5,
		"name": "Customer#5",
		"first_order_date": "2023-01-04",
		"last_order_date": "2023-03-28",
		"total_orders_value": 175,
		"order_history": {
			"ticks": ["2023-01", "2023-02", "2023-03"],
			"totals": ["100.00", "50.00", "25.00"]
		}
	}`, rr.Body.String())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRouter_OrderSummaryNoOrders(t *testing.T) {
	router, mock := newTestRouter(t)

	mock.ExpectQuery(`WITH co AS`).WithArgs(int64(77)).WillReturnRows(sqlmock.NewRows([]string{"id"}))

	rr := get(router, "/customer/77/order_summary", "Bearer "+token)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestRouter_NegativeIDIsNotFound(t *testing.T) {
	router, mock := newTestRouter(t)

	mock.ExpectQuery(`FROM tpch_sf10.customer WHERE c_custkey`).WithArgs(int64(-1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "address", "phone", "account_balance", "comment"}))
	mock.ExpectQuery(`WITH co AS`).WithArgs(int64(-1)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	rr := get(router, "/customer/-1", "Bearer "+token)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = get(router, "/customer/-1/order_summary", "Bearer "+token)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRouter_CustomerLookupFailure(t *testing.T) {
	router, mock := newTestRouter(t)

	mock.ExpectQuery(`FROM tpch_sf10.customer WHERE c_custkey`).WithArgs(int64(5)).
		WillReturnError(errors.New("connection refused"))

	rr := get(router, "/customer/5", "Bearer "+token)
	assert.Equal(t, http.StatusBadGateway, rr.Code)
}

func TestRouter_SentinelCustomerFallback(t *testing.T) {
	router, mock := newTestRouter(t)

	mock.ExpectQuery(`FROM tpch_sf10.customer WHERE c_custkey`).WithArgs(int64(0)).
		WillReturnError(errors.New("connection refused"))

	rr := get(router, "/customer/0", "Bearer "+token)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{
		"id": 0,
		"name": "Test Name",
		"address": "Test Address",
		"phone": "Test Phone",
		"account_balance": 100.4,
		"comment": "Test Comment"
	}`, rr.Body.String())
}

func TestRouter_TopCustomers(t *testing.T) {
	router, mock := newTestRouter(t)

	mock.ExpectQuery(`LIMIT 10`).WillReturnRows(sqlmock.NewRows([]string{"id", "name", "order_total"}).
		AddRow(int64(2), "Customer#2", "500.50").
		AddRow(int64(1), "Customer#1", "100.00"))

	rr := get(router, "/top_customers", "Bearer "+token)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp []map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	assert.Equal(t, 500.5, resp[0]["order_total"])
	assert.Equal(t, 100.0, resp[1]["order_total"])
}

func TestRouter_CORSPreflight(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/top_customers", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	req.Header.Set("Access-Control-Request-Headers", "Authorization")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, "http://localhost:3000", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rr.Header().Get("Access-Control-Allow-Credentials"))
}

func TestLambdaHandler(t *testing.T) {
	router, mock := newTestRouter(t)
	handler := app.NewLambdaHandler(router)

	mock.ExpectQuery(`SELECT VERSION\(\)`).
		WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow("PostgreSQL 16.2"))

	resp, err := handler(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod: http.MethodGet,
		Path:       "/backend",
		Headers:    map[string]string{"Authorization": "Bearer " + token},
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"data_store_version": "PostgreSQL 16.2"}`, resp.Body)

	resp, err = handler(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod: http.MethodGet,
		Path:       "/backend",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
