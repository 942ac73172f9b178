// Package settlementledger keeps named account balances and moves value
// between them atomically. The arbitration context uses it to custody vote
// stakes and pay out resolution rewards; a consumer mirrors dispute.resolved
// events into settlement audit rows for reconciliation.
package settlementledger
