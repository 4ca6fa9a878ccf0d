// Package feature carries the boolean feature toggles consumed by the search layer.
package feature

// Toggles are read once (remote or static config) and passed explicitly to
// the compiler, the localisation machine and the suggestion aggregator.
type Toggles struct {
	FormatsEnabled       bool
	GeolocationEnabled   bool
	SearchHistoryEnabled bool
}
