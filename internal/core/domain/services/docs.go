// Package services provides domain services that work across the yard aggregates.
//
// The package includes:
//   - SlotGenerator: turns a workshop template and a date into bookable slots
//   - SelectActiveTemplate: resolves the single template in force for a workshop and date
//   - OrderLedger: recomputes an order's booked/released totals from its schedules
//   - BookingPolicy: authorization and business checks for a new booking
//   - CheckpointMachine: take and decide transitions of a visit along the operation graph
//
// All services are pure: they read and mutate the aggregates handed to them and never touch
// storage. Persisting the result is the caller's unit of work.
package services
