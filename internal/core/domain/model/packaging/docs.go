// Package packaging contains the PackageType aggregate: the catalog of
// packaging materials (boxes, mailers, void fill) with their unit costs,
// dimensions and on-hand stock.
//
// Stock accounting is deliberately permissive: debits always succeed and the
// counter may go negative, because physical packing already happened by the
// time the system hears about it. A negative balance is a signal to recount,
// not a reason to block a shipment.
package packaging
