// Package history provides an optional, append-only audit trail of
// Submit/Status/Kill calls made through a torquedriver.Driver.
//
// history is a diagnostic aid, not a persistence layer: it is never
// consulted by the driver to make a decision, only written to after
// the fact. Losing the history store does not affect the correctness
// of Submit, Status, or Kill.
package history
