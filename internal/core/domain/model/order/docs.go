// Package order provides the Order aggregate: a purchased quantity of material and the
// ledger of how much of it is booked by active visits, released by executed visits and left.
//
// The package includes:
//   - Order: the aggregate root holding quan / quan_booked / quan_released and payment facts
//   - Status: a state machine for the externally driven order lifecycle
//
// Key business rules:
//   - quan is positive; quan_left = quan - quan_booked - quan_released never goes negative
//   - booked and released quantities change only through Reconcile (full recompute)
//   - payment is an input fact: RecordPayment stores the transaction id, nothing is charged here
//   - only unpaid orders can be failed by the overdue sweep
package order
