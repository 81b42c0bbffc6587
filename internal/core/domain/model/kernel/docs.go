// Package kernel provides core domain primitives shared by the yard domain model.
//
// The package includes:
//   - UUID: identifier value object with validation and comparison
//   - Weight: kilograms backed by shopspring/decimal, used by the order ledger and weighing
//   - Owner: exclusive-or of an individual user and an organization
//
// These primitives enforce domain invariants at construction, are immutable and safe for
// concurrent use.
package kernel
