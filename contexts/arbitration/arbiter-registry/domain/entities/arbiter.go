package entities

import "time"

// RegistryCapacity is the maximum number of roster rows the registry accepts.
// Authorizations past this point are rejected outright.
const RegistryCapacity = 100

// ArbiterEntry is a single roster row. The roster is an append-only list,
// not a set: authorizing the same arbiter twice produces two rows, and a
// revocation removes every row naming that arbiter.
type ArbiterEntry struct {
	EntryID      string    `json:"entry_id"`
	Arbiter      string    `json:"arbiter"`
	AuthorizedBy string    `json:"authorized_by"`
	AuthorizedAt time.Time `json:"authorized_at"`
}
