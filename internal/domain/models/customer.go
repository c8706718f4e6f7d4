package models

import "github.com/shopspring/decimal"

// Customer представляет клиента из таблицы customer хранилища
type Customer struct {
	ID             int64           `db:"id"`
	Name           string          `db:"name"`
	Address        string          `db:"address"`
	Phone          string          `db:"phone"`
	AccountBalance decimal.Decimal `db:"account_balance"`
	Comment        string          `db:"comment"`
}

// CustomerTotal - клиент с суммой всех его заказов
type CustomerTotal struct {
	ID         int64           `db:"id"`
	Name       string          `db:"name"`
	OrderTotal decimal.Decimal `db:"order_total"`
}
