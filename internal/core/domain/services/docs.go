// Package services provides domain services that orchestrate business
// operations across multiple aggregates.
//
// The package includes:
//   - CostCalculator: pure reconciliation math producing a CostRecord from
//     an order, its line items and the carrier-cost inputs
//
// Domain services hold logic that spans aggregates and stays free of I/O;
// external provider calls happen in the application layer before any
// transaction opens.
package services
