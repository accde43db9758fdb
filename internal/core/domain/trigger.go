package domain

// TriggerEvent names a business event that can generate an automatic
// journal entry through an auto-posting template.
type TriggerEvent string

// Known trigger events. Templates may be authored for other keys, but the
// set below covers the business events the platform currently raises.
const (
	TriggerRentalPaymentReceived TriggerEvent = "rental_payment_received"
	TriggerMaintenanceExpense    TriggerEvent = "maintenance_expense"
	TriggerLoanDisbursed         TriggerEvent = "loan_disbursed"
	TriggerLoanPaymentReceived   TriggerEvent = "loan_payment_received"
	TriggerDistributionPaid      TriggerEvent = "distribution_paid"
	TriggerGeneralPayment        TriggerEvent = "general_payment"
)

var knownTriggers = map[TriggerEvent]struct{}{
	TriggerRentalPaymentReceived: {},
	TriggerMaintenanceExpense:    {},
	TriggerLoanDisbursed:         {},
	TriggerLoanPaymentReceived:   {},
	TriggerDistributionPaid:      {},
	TriggerGeneralPayment:        {},
}

// IsKnown reports whether the trigger belongs to the closed set of events
// the platform raises. Unknown triggers are still looked up in the template
// table for extensibility, but a miss is a configuration error, never a
// silent no-op.
func (t TriggerEvent) IsKnown() bool {
	_, ok := knownTriggers[t]
	return ok
}
