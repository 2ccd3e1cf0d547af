package uniteconomics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/avolkov/ozon-economics-api/internal/domain"
)

func TestTransactionIndex_CorrelateUnionOfBothNumbers(t *testing.T) {
	index := NewTransactionIndex([]domain.Transaction{
		{ID: 1, Name: "SaleCommission", PostingNumber: "100-200-1", Price: -10},
		{ID: 2, Name: "Logistics", PostingNumber: "ORD-55", Price: -5},
		{ID: 3, Name: "Logistics", PostingNumber: "other", Price: -99},
	})

	matched := index.Correlate("100-200-1", "ORD-55")

	assert.Len(t, matched, 2)
	ids := []int64{matched[0].ID, matched[1].ID}
	assert.ElementsMatch(t, []int64{1, 2}, ids)
}

func TestTransactionIndex_CorrelateDeduplicatesByID(t *testing.T) {
	// The same stored row can never be appended twice from one key, but an
	// operation recorded under both numbers with the same storage ID is.
	tx := domain.Transaction{ID: 9, Name: "SaleCommission", PostingNumber: "100-200-1", Price: -10}
	index := &TransactionIndex{byPosting: map[string][]domain.Transaction{
		"100-200-1": {tx},
		"ORD-55":    {tx},
	}}

	matched := index.Correlate("100-200-1", "ORD-55")

	assert.Len(t, matched, 1)
}

func TestTransactionIndex_EqualNumbersLookedUpOnce(t *testing.T) {
	index := NewTransactionIndex([]domain.Transaction{
		{ID: 1, Name: "Logistics", PostingNumber: "SAME", Price: -5},
	})

	matched := index.Correlate("SAME", "SAME")

	assert.Len(t, matched, 1)
}

func TestTransactionIndex_SkipsRowsWithoutPosting(t *testing.T) {
	index := NewTransactionIndex([]domain.Transaction{
		{ID: 1, Name: "Acquiring", PostingNumber: "", SKU: "1828048543", Price: -3},
	})

	assert.Empty(t, index.Correlate("", "ORD-55"))
}

func TestDedupeTransactions_UnpersistedRowsKeyedByCoordinates(t *testing.T) {
	rows := []domain.Transaction{
		{OperationID: "op-1", Name: "Logistics", PostingNumber: "100-200-1", Price: -5},
		{OperationID: "op-1", Name: "Logistics", PostingNumber: "100-200-1", Price: -5},
		{OperationID: "op-1", Name: "Logistics", PostingNumber: "100-200-1", Price: -6},
	}

	unique := dedupeTransactions(rows)

	assert.Len(t, unique, 2)
}
