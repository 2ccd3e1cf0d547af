package domain

// OzonStatus is the raw marketplace status of a posting.
type OzonStatus string

const (
	OzonStatusCancelled         OzonStatus = "cancelled"
	OzonStatusAwaitingDeliver   OzonStatus = "awaiting_deliver"
	OzonStatusAwaitingPackaging OzonStatus = "awaiting_packaging"
	OzonStatusDelivering        OzonStatus = "delivering"
	OzonStatusDelivered         OzonStatus = "delivered"
)

// CustomStatus is the seller-facing business status derived from the
// marketplace status plus the correlated ledger transactions. The values are
// the display strings the reports are built around.
type CustomStatus string

const (
	StatusCancelPVZ         CustomStatus = "Отмена ПВЗ"
	StatusInstantCancel     CustomStatus = "Моментальная отмена"
	StatusAwaitingDelivery  CustomStatus = "Ожидает доставки"
	StatusAwaitingPackaging CustomStatus = "Ожидает сборки"
	StatusDelivering        CustomStatus = "Доставляется"
	StatusDelivered         CustomStatus = "Доставлен"
	StatusReturn            CustomStatus = "Возврат"
	StatusAwaitingPayment   CustomStatus = "Ожидаем оплаты"
	StatusUnknown           CustomStatus = "Неизвестный статус"
)
