package sellerclient

import (
	"context"

	ozondomain "github.com/avolkov/ozon-economics-api/infrastructure/integrator/ozon/domain"
)

const postingListPath = "/v3/posting/fbs/list"

func (c *SellerClient) ListPostings(ctx context.Context, req ozondomain.PostingListRequest) (*ozondomain.PostingListResponse, error) {
	response := &ozondomain.PostingListResponse{}

	if err := c.post(ctx, postingListPath, req, response); err != nil {
		return nil, err
	}

	return response, nil
}
