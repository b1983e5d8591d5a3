// Package domain defines the core business entities of the meal-analysis
// pipeline and nutrition-aggregation engine: meal entries and their analysis
// lifecycle, recognized food items, weight observations, and the user profile
// with its calorie goal.
//
// Entities are created through New* constructors that validate their inputs,
// and expose Validate methods so stores can re-check invariants after
// deserialization. The package has no dependencies on services, persistence,
// or external APIs.
package domain
