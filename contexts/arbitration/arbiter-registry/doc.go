// Package arbiterregistry maintains the roster of arbiters allowed to vote
// on disputes. The roster is owner-gated, capped at 100 rows, and keeps
// duplicate entries; revocation removes every row naming the arbiter. All
// mutations leave an audit trail.
package arbiterregistry
