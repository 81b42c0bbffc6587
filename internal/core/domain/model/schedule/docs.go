// Package schedule models a booked visit of one vehicle to a workshop and its audit trail.
//
// A Schedule is created active at the first checkpoint and then moves strictly along the
// operation graph. It ends in exactly one of two ways:
//
//	executed: passed the last checkpoint, is_active=false, is_executed=true
//	canceled: denied at a cancelable checkpoint, is_active=false, is_canceled=true
//
// Every take and decision leaves a History row; weighings also leave an InitialWeight (tare)
// or ActWeight (brutto/netto) record pointing at the History row that produced it.
//
// Ledger contribution of a schedule to its order:
//
//	active, not executed   -> booked   += loading_volume
//	inactive, executed     -> released += vehicle_netto
//	canceled               -> nothing
package schedule
