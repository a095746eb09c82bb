// Package order contains the Order aggregate: the marketplace order as it
// moves from open, through operator fulfillment, to finalized shipment.
//
// The aggregate owns the status machine (Open -> InProgress -> Finalized),
// the operator reservation that serializes fulfillment work on a single
// order, and the list of packaging line items recorded at finalize time.
// All state changes go through aggregate methods so the invariants hold:
// a reservation always carries both holder and timestamp, line items never
// have a quantity below one, and finalized orders keep their status across
// later edits.
package order
