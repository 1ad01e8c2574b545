// Package mesaservice implements the Mesa State Store inside the
// election-core context.
//
// The module owns the per-circuit polling-station lifecycle: opening at
// election start, the single authorized close per election, and the
// open/closed gate every vote and result read consults. Closing requires a
// mesa official assigned to the same circuit; re-closing an already closed
// mesa is rejected rather than silently overwritten.
package mesaservice
