// Package tallyservice implements the read-side Tally Aggregator inside the
// election-core context.
//
// The module joins the ballot ledger against the ballot-option catalog to
// produce ranked counts at circuit, department, and national scope. Circuit
// results are gated: while a mesa is open only its own officials may see the
// partial tally; department and national views are always public.
package tallyservice
