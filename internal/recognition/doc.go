// Package recognition defines the contract between the application core and
// external food-recognition services. The Analyzer interface is the boundary;
// vision-capable backends live under internal/platform and implement it.
//
// The package also owns the fixed fallback analysis the meal entry store
// substitutes when a recognition call fails, so downstream aggregation always
// has numeric data to sum.
package recognition
