// Package operation defines the checkpoint graph a visit travels through at the yard.
//
// The graph is a static table of Operations linked by Next/Prev codes:
//
//	entry ─> initial_weighing ─> loading_entry ─> loading ─> final_weighing ─> exit
//	                                  ^                        │    ^
//	                                  │      (deny)            v    │
//	                           tare_reweighing <───────────────┤    │
//	                                                           └─> reloading
//
// Passing a checkpoint follows Next; denying a cancelable checkpoint ends the visit; denying
// final_weighing routes the visit to one of its reload targets. No other moves exist.
package operation
