// Package kernel contains shared value objects used across the domain model.
// These types are immutable, validated at construction and safe to pass by
// value: UUID identifies entities and aggregates, Money carries monetary
// amounts with the 2-decimal rounding policy applied on every operation.
package kernel
