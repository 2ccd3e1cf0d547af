package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/avolkov/ozon-economics-api/infrastructure/database/postgres"
	"github.com/avolkov/ozon-economics-api/internal/domain"
	"github.com/avolkov/ozon-economics-api/pkg/utils"
)

const (
	advertisingTable = "advertising_spends a"

	advertisingColumns = "a.id, a.campaign_id, a.sku, a.date, a.type, a.clicks, a.to_cart, " +
		"a.avg_bid, a.money_spent, a.min_bid_cpo, a.min_bid_cpo_top, a.competitive_bid, a.weekly_budget"
)

type AdvertisingRepository interface {
	FindBySKUsAndDateRange(skus []string, from, to time.Time) ([]*domain.AdvertisingSpend, error)
	UpsertMany(spends []*domain.AdvertisingSpend) error
}

type advertisingRepository struct {
	conn *postgres.Connection
}

func NewAdvertisingRepository(conn *postgres.Connection) AdvertisingRepository {
	return &advertisingRepository{
		conn: conn,
	}
}

func (r *advertisingRepository) FindBySKUsAndDateRange(skus []string, from, to time.Time) ([]*domain.AdvertisingSpend, error) {
	if len(skus) == 0 {
		return []*domain.AdvertisingSpend{}, nil
	}

	query, args, err := squirrel.
		Select(advertisingColumns).
		From(advertisingTable).
		Where(squirrel.Eq{"a.sku": skus}).
		Where(squirrel.GtOrEq{"a.date": from}).
		Where(squirrel.Lt{"a.date": to}).
		OrderBy("a.date ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("executing query: %w", err)
	}
	defer rows.Close()

	spends := make([]*domain.AdvertisingSpend, 0)
	for rows.Next() {
		spend, err := scanAdvertisingSpend(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning advertising spend: %w", err)
		}
		spends = append(spends, spend)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}

	return spends, nil
}

// UpsertMany stores the daily campaign rows from a sync run in a single
// transaction. Report dates arrive in several formats, so they are normalized
// before hitting the date column; rows with unparseable dates are rejected up
// front instead of poisoning the range queries.
func (r *advertisingRepository) UpsertMany(spends []*domain.AdvertisingSpend) error {
	if len(spends) == 0 {
		return nil
	}

	return r.conn.RunInTransaction(context.Background(), func(tx *sql.Tx) error {
		for _, spend := range spends {
			date, ok := utils.ParseFlexibleDate(spend.Date)
			if !ok {
				return fmt.Errorf("invalid date %q for campaign %s sku %s", spend.Date, spend.CampaignID, spend.SKU)
			}

			query, args, err := squirrel.StatementBuilder.
				Insert("advertising_spends").
				Columns(
					"campaign_id", "sku", "date", "type", "clicks", "to_cart",
					"avg_bid", "money_spent", "min_bid_cpo", "min_bid_cpo_top",
					"competitive_bid", "weekly_budget",
				).
				Values(
					spend.CampaignID,
					spend.SKU,
					date,
					spend.Type,
					spend.Clicks,
					spend.ToCart,
					spend.AvgBid,
					spend.MoneySpent,
					spend.MinBidCPO,
					spend.MinBidCPOTop,
					spend.CompetitiveBid,
					spend.WeeklyBudget,
				).
				Suffix(`
					ON CONFLICT (campaign_id, sku, date, type) DO UPDATE SET
						clicks = EXCLUDED.clicks,
						to_cart = EXCLUDED.to_cart,
						avg_bid = EXCLUDED.avg_bid,
						money_spent = EXCLUDED.money_spent,
						min_bid_cpo = EXCLUDED.min_bid_cpo,
						min_bid_cpo_top = EXCLUDED.min_bid_cpo_top,
						competitive_bid = EXCLUDED.competitive_bid,
						weekly_budget = EXCLUDED.weekly_budget
				`).
				PlaceholderFormat(squirrel.Dollar).
				ToSql()
			if err != nil {
				return fmt.Errorf("building query: %w", err)
			}

			if _, err = tx.Exec(query, args...); err != nil {
				if pqErr, ok := err.(*pq.Error); ok {
					return fmt.Errorf("database error: %w (code: %s)", pqErr, pqErr.Code)
				}
				return fmt.Errorf("executing query: %w", err)
			}
		}

		return nil
	})
}

func scanAdvertisingSpend(rows *sql.Rows) (*domain.AdvertisingSpend, error) {
	spend := &domain.AdvertisingSpend{}
	var date time.Time

	err := rows.Scan(
		&spend.ID,
		&spend.CampaignID,
		&spend.SKU,
		&date,
		&spend.Type,
		&spend.Clicks,
		&spend.ToCart,
		&spend.AvgBid,
		&spend.MoneySpent,
		&spend.MinBidCPO,
		&spend.MinBidCPOTop,
		&spend.CompetitiveBid,
		&spend.WeeklyBudget,
	)
	if err != nil {
		return nil, err
	}

	spend.Date = date.Format(time.DateOnly)

	return spend, nil
}
