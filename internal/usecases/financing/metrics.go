package financing

import (
	"github.com/shopspring/decimal"

	"github.com/avolkov/ozon-economics-api/internal/domain"
	"github.com/avolkov/ozon-economics-api/pkg/utils"
)

// Buyout is the share of finished orders that actually reached the customer:
// delivered / (delivered + PVZ cancels + returns + instant cancels) × 100.
// Orders still in flight do not enter the denominator.
func Buyout(statusCounts map[domain.CustomStatus]int) float64 {
	delivered := decimal.NewFromInt(int64(statusCounts[domain.StatusDelivered]))
	cancelPVZ := decimal.NewFromInt(int64(statusCounts[domain.StatusCancelPVZ]))
	returned := decimal.NewFromInt(int64(statusCounts[domain.StatusReturn]))
	instantCancel := decimal.NewFromInt(int64(statusCounts[domain.StatusInstantCancel]))

	denominator := delivered.Add(cancelPVZ).Add(returned).Add(instantCancel)
	if denominator.IsZero() {
		return 0
	}

	return utils.Round2(delivered.Div(denominator).Mul(decimal.NewFromInt(100)))
}

// Margin subtracts everything the SKU paid for from what it earned. Service,
// shared and other sums enter as absolute values.
func Margin(totalRevenue, totalCost, totalServices float64, sharedSum, otherSum decimal.Decimal) float64 {
	return utils.Round2(
		decimal.NewFromFloat(totalRevenue).
			Sub(decimal.NewFromFloat(totalCost)).
			Sub(decimal.NewFromFloat(totalServices)).
			Sub(sharedSum).
			Sub(otherSum),
	)
}

func MarginPercent(margin, totalRevenue float64) float64 {
	if totalRevenue <= 0 {
		return 0
	}
	return utils.Round2(
		decimal.NewFromFloat(margin).
			Div(decimal.NewFromFloat(totalRevenue)).
			Mul(decimal.NewFromInt(100)),
	)
}

func ProfitabilityPercent(margin, totalCost float64) float64 {
	if totalCost <= 0 {
		return 0
	}
	return utils.Round2(
		decimal.NewFromFloat(margin).
			Div(decimal.NewFromFloat(totalCost)).
			Mul(decimal.NewFromInt(100)),
	)
}
