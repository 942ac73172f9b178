// Package disputeservice implements stake-weighted dispute arbitration
// inside the arbitration context.
//
// The module owns the dispute lifecycle (open, evidence, vote, resolve), the
// per-dispute vote ledger, and the resolution engine that settles the
// majority outcome and pays winner rewards through the settlement port.
// Business rules live in the domain/application layers; persistence, HTTP,
// and event transport sit behind ports and adapters.
package disputeservice
