// Package votingengine implements the voting transaction core inside the
// election-core context.
//
// The module owns ballot admission: credential resolution, the
// one-ballot-per-voter-per-election guarantee, observed-vote classification,
// mesa open gating, and the atomic ledger write (ballot row plus its option
// and voter link rows). The duplicate pre-check is a fast path only; the
// unique constraint on the voter-ballot link is the authoritative guard.
package votingengine
