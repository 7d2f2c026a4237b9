// Package polllifecycle implements the poll and voting lifecycle inside the
// event-planning context.
//
// The module owns poll orchestration (create/add-option/vote/close), the
// append-only vote ledger with ledger-derived tallies, the accepted-member
// authorization gate, and outbox-backed notification delivery. Event metadata,
// memberships and identities are owned by sibling services and reached
// through read-only projections or outbound clients behind ports.
package polllifecycle
