package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/avolkov/ozon-economics-api/infrastructure/database/postgres"
	"github.com/avolkov/ozon-economics-api/internal/domain"
)

const (
	ordersTable = "orders o"

	orderColumns = "o.id, o.product, o.order_id, o.order_number, o.posting_number, " +
		"o.status, o.created_at, o.in_process_at, o.sku, o.old_price, o.price, o.currency_code"
)

type OrderRepository interface {
	FindAll(filter domain.OrderFilter) ([]*domain.Order, error)
	Upsert(order *domain.Order) error
	CountByDateRange(from, to time.Time) (int, error)
}

type orderRepository struct {
	conn *postgres.Connection
}

func NewOrderRepository(conn *postgres.Connection) OrderRepository {
	return &orderRepository{
		conn: conn,
	}
}

func (r *orderRepository) FindAll(filter domain.OrderFilter) ([]*domain.Order, error) {
	builder := squirrel.
		Select(orderColumns).
		From(ordersTable).
		OrderBy("o.created_at ASC").
		PlaceholderFormat(squirrel.Dollar)

	if filter.PostingNumber != "" {
		builder = builder.Where(squirrel.Eq{"o.posting_number": filter.PostingNumber})
	}
	if filter.SKU != "" {
		builder = builder.Where(squirrel.Eq{"o.sku": filter.SKU})
	}
	if filter.From != nil {
		builder = builder.Where(squirrel.GtOrEq{"o.created_at": *filter.From})
	}
	if filter.To != nil {
		builder = builder.Where(squirrel.LtOrEq{"o.created_at": *filter.To})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("executing query: %w", err)
	}
	defer rows.Close()

	orders := make([]*domain.Order, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning order: %w", err)
		}
		orders = append(orders, order)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}

	return orders, nil
}

func (r *orderRepository) Upsert(order *domain.Order) error {
	query, args, err := squirrel.StatementBuilder.
		Insert("orders").
		Columns(
			"product", "order_id", "order_number", "posting_number", "status",
			"created_at", "in_process_at", "sku", "old_price", "price", "currency_code",
		).
		Values(
			order.Product,
			order.OrderID,
			order.OrderNumber,
			order.PostingNumber,
			order.Status,
			order.CreatedAt,
			order.InProcessAt,
			order.SKU,
			order.OldPrice,
			order.Price,
			order.CurrencyCode,
		).
		Suffix(`
			ON CONFLICT (posting_number) DO UPDATE SET
				product = EXCLUDED.product,
				order_id = EXCLUDED.order_id,
				order_number = EXCLUDED.order_number,
				status = EXCLUDED.status,
				created_at = EXCLUDED.created_at,
				in_process_at = EXCLUDED.in_process_at,
				sku = EXCLUDED.sku,
				old_price = EXCLUDED.old_price,
				price = EXCLUDED.price,
				currency_code = EXCLUDED.currency_code
		`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("building query: %w", err)
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("database error: %w (code: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("executing query: %w", err)
	}

	return nil
}

func (r *orderRepository) CountByDateRange(from, to time.Time) (int, error) {
	query, args, err := squirrel.
		Select("COUNT(*)").
		From(ordersTable).
		Where(squirrel.GtOrEq{"o.created_at": from}).
		Where(squirrel.LtOrEq{"o.created_at": to}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("building query: %w", err)
	}

	var count int
	if err := r.conn.QueryRow(query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("executing query: %w", err)
	}

	return count, nil
}

func scanOrder(rows *sql.Rows) (*domain.Order, error) {
	order := &domain.Order{}

	err := rows.Scan(
		&order.ID,
		&order.Product,
		&order.OrderID,
		&order.OrderNumber,
		&order.PostingNumber,
		&order.Status,
		&order.CreatedAt,
		&order.InProcessAt,
		&order.SKU,
		&order.OldPrice,
		&order.Price,
		&order.CurrencyCode,
	)
	if err != nil {
		return nil, err
	}

	return order, nil
}
