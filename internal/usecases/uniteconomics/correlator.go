package uniteconomics

import (
	"fmt"

	"github.com/avolkov/ozon-economics-api/internal/domain"
)

// TransactionIndex groups ledger transactions by posting number once per
// aggregation call; correlating an order afterwards is a map lookup.
type TransactionIndex struct {
	byPosting map[string][]domain.Transaction
}

// NewTransactionIndex builds the index in one pass. Transactions without a
// posting number cannot be correlated to an order and are skipped.
func NewTransactionIndex(transactions []domain.Transaction) *TransactionIndex {
	byPosting := make(map[string][]domain.Transaction)

	for _, tx := range transactions {
		if tx.PostingNumber == "" {
			continue
		}
		byPosting[tx.PostingNumber] = append(byPosting[tx.PostingNumber], tx)
	}

	return &TransactionIndex{byPosting: byPosting}
}

// Correlate returns the deduplicated union of transactions matching either
// the posting number or the order number. The marketplace records some
// operations under one key and some under the other; an operation present
// under both keys is counted once.
func (idx *TransactionIndex) Correlate(postingNumber, orderNumber string) []domain.Transaction {
	matched := append([]domain.Transaction{}, idx.byPosting[postingNumber]...)
	if orderNumber != postingNumber {
		matched = append(matched, idx.byPosting[orderNumber]...)
	}

	return dedupeTransactions(matched)
}

func dedupeTransactions(transactions []domain.Transaction) []domain.Transaction {
	seen := make(map[string]struct{}, len(transactions))
	unique := make([]domain.Transaction, 0, len(transactions))

	for _, tx := range transactions {
		key := transactionIdentity(tx)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, tx)
	}

	return unique
}

// transactionIdentity keys a transaction by its storage ID when persisted,
// otherwise by its marketplace coordinates.
func transactionIdentity(tx domain.Transaction) string {
	if tx.ID != 0 {
		return fmt.Sprintf("id:%d", tx.ID)
	}
	return fmt.Sprintf("%s|%s|%s|%f", tx.OperationID, tx.Name, tx.PostingNumber, tx.Price)
}
