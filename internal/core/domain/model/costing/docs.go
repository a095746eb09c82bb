// Package costing contains the financial side of a shipment: the CostRecord
// entity holding the reconciled outcome of one order, and the channel policy
// table that decides where an order's carrier-cost estimate comes from.
//
// A CostRecord is keyed 1:1 by order number and only ever upserted; the
// derived figures (total cost, gain/loss, margin) are recomputed from the
// inputs on every write so repeated reconciliation with unchanged inputs is
// byte-identical.
package costing
