package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/avolkov/ozon-economics-api/infrastructure/database/postgres"
	"github.com/avolkov/ozon-economics-api/internal/domain"
)

const (
	transactionsTable = "transactions t"

	transactionColumns = "t.id, t.operation_id, t.name, t.date, t.posting_number, t.sku, t.price"
)

type TransactionRepository interface {
	FindAll() ([]*domain.Transaction, error)
	FindByPostingNumbers(numbers []string) ([]*domain.Transaction, error)
	Upsert(transaction *domain.Transaction) error
}

type transactionRepository struct {
	conn *postgres.Connection
}

func NewTransactionRepository(conn *postgres.Connection) TransactionRepository {
	return &transactionRepository{
		conn: conn,
	}
}

func (r *transactionRepository) FindAll() ([]*domain.Transaction, error) {
	query, args, err := squirrel.
		Select(transactionColumns).
		From(transactionsTable).
		OrderBy("t.date ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building query: %w", err)
	}

	return r.queryTransactions(query, args...)
}

// FindByPostingNumbers restricts the fetch to rows attached to the given
// posting/order numbers; rows without a posting number never match, which is
// exactly what the correlator needs.
func (r *transactionRepository) FindByPostingNumbers(numbers []string) ([]*domain.Transaction, error) {
	if len(numbers) == 0 {
		return []*domain.Transaction{}, nil
	}

	query, args, err := squirrel.
		Select(transactionColumns).
		From(transactionsTable).
		Where(squirrel.Eq{"t.posting_number": numbers}).
		OrderBy("t.date ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building query: %w", err)
	}

	return r.queryTransactions(query, args...)
}

func (r *transactionRepository) Upsert(transaction *domain.Transaction) error {
	query, args, err := squirrel.StatementBuilder.
		Insert("transactions").
		Columns("operation_id", "name", "date", "posting_number", "sku", "price").
		Values(
			transaction.OperationID,
			transaction.Name,
			transaction.Date,
			transaction.PostingNumber,
			transaction.SKU,
			transaction.Price,
		).
		Suffix(`
			ON CONFLICT (operation_id, name, posting_number) DO UPDATE SET
				date = EXCLUDED.date,
				sku = EXCLUDED.sku,
				price = EXCLUDED.price
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

func (r *transactionRepository) queryTransactions(query string, args ...interface{}) ([]*domain.Transaction, error) {
	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("executing query: %w", err)
	}
	defer rows.Close()

	transactions := make([]*domain.Transaction, 0)
	for rows.Next() {
		transaction, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}
		transactions = append(transactions, transaction)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}

	return transactions, nil
}

func scanTransaction(rows *sql.Rows) (*domain.Transaction, error) {
	transaction := &domain.Transaction{}

	err := rows.Scan(
		&transaction.ID,
		&transaction.OperationID,
		&transaction.Name,
		&transaction.Date,
		&transaction.PostingNumber,
		&transaction.SKU,
		&transaction.Price,
	)
	if err != nil {
		return nil, err
	}

	return transaction, nil
}
