package sellerclient

import (
	"context"

	ozondomain "github.com/avolkov/ozon-economics-api/infrastructure/integrator/ozon/domain"
)

const transactionListPath = "/v3/finance/transaction/list"

func (c *SellerClient) ListTransactions(ctx context.Context, req ozondomain.TransactionListRequest) (*ozondomain.TransactionListResponse, error) {
	response := &ozondomain.TransactionListResponse{}

	if err := c.post(ctx, transactionListPath, req, response); err != nil {
		return nil, err
	}

	return response, nil
}
