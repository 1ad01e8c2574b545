// Package voterdirectory implements the Voter Directory inside the
// identity-access context.
//
// The module resolves a voter identity and assigned circuit from a voting
// credential, and resolves whether an identity serves as a polling-station
// official. It is read-only during an election; registration and padron
// maintenance happen through external admin tooling.
package voterdirectory
