package uniteconomics

import (
	"github.com/shopspring/decimal"

	"github.com/avolkov/ozon-economics-api/internal/domain"
)

// Service names the marketplace bills when a cancelled posting went through
// pickup-point return logistics. Their presence distinguishes a pickup-point
// cancellation from an instant one.
var returnLogisticsServices = map[string]struct{}{
	"MarketplaceServiceItemRedistributionReturnsPVZ": {},
	"MarketplaceServiceItemReturnFlowLogistic":       {},
}

// economyContext carries everything a status rule may look at. All monetary
// members are decimals; rounding happens after rule dispatch.
type economyContext struct {
	rawStatus          string
	price              decimal.Decimal
	totalServices      decimal.Decimal
	hasSaleCommission  bool
	saleCommissionSum  decimal.Decimal
	hasReturnLogistics bool
	costPriceLookup    decimal.Decimal
	advertisingPerUnit decimal.Decimal
}

// economyOutcome is a rule's verdict: the business status plus the cost and
// margin that follow from it.
type economyOutcome struct {
	status    domain.CustomStatus
	costPrice decimal.Decimal
	margin    decimal.Decimal
}

type statusRule func(ctx economyContext) economyOutcome

// statusRules is the decision table keyed by marketplace status. Every rule
// is pure and total; the table is re-evaluated on every aggregation call,
// nothing is persisted.
var statusRules = map[domain.OzonStatus]statusRule{
	domain.OzonStatusCancelled: func(ctx economyContext) economyOutcome {
		status := domain.StatusInstantCancel
		if ctx.hasReturnLogistics {
			status = domain.StatusCancelPVZ
		}
		return economyOutcome{status: status, costPrice: decimal.Zero, margin: ctx.totalServices}
	},
	domain.OzonStatusAwaitingDeliver: func(ctx economyContext) economyOutcome {
		return economyOutcome{status: domain.StatusAwaitingDelivery, costPrice: decimal.Zero, margin: ctx.totalServices}
	},
	domain.OzonStatusAwaitingPackaging: func(ctx economyContext) economyOutcome {
		return economyOutcome{status: domain.StatusAwaitingPackaging, costPrice: decimal.Zero, margin: ctx.totalServices}
	},
	domain.OzonStatusDelivering: func(ctx economyContext) economyOutcome {
		return economyOutcome{status: domain.StatusDelivering, costPrice: decimal.Zero, margin: ctx.totalServices}
	},
	domain.OzonStatusDelivered: func(ctx economyContext) economyOutcome {
		if !ctx.hasSaleCommission {
			// The marketplace has not posted the commission yet, so the
			// sale is not financially settled.
			return economyOutcome{status: domain.StatusAwaitingPayment, costPrice: decimal.Zero, margin: ctx.totalServices}
		}

		if ctx.saleCommissionSum.IsNegative() {
			// A fee was charged: the sale is final. Only here does the
			// purchase cost enter the margin.
			margin := ctx.price.
				Sub(ctx.costPriceLookup).
				Sub(ctx.advertisingPerUnit).
				Add(ctx.totalServices)
			return economyOutcome{status: domain.StatusDelivered, costPrice: ctx.costPriceLookup, margin: margin}
		}

		// Commission refunded: the buyer returned the item after delivery.
		return economyOutcome{status: domain.StatusReturn, costPrice: decimal.Zero, margin: ctx.totalServices}
	},
}

// defaultRule handles statuses outside the decision table. The raw status
// string stays visible when present, otherwise the unknown sentinel.
func defaultRule(ctx economyContext) economyOutcome {
	status := domain.StatusUnknown
	if ctx.rawStatus != "" {
		status = domain.CustomStatus(ctx.rawStatus)
	}
	return economyOutcome{status: status, costPrice: decimal.Zero, margin: ctx.totalServices}
}

// resolveRule picks the rule for a marketplace status.
func resolveRule(status string) statusRule {
	if rule, ok := statusRules[domain.OzonStatus(status)]; ok {
		return rule
	}
	return defaultRule
}
