// Package workshop models a loading workshop's daily slot template and the slots generated
// from it.
//
// A Template describes one working day: the first visit starts StartAt minutes after local
// midnight, every visit takes CarServiceMin minutes followed by BreakBetweenServiceMin minutes
// of changeover, and up to MachineAtOneTime vehicles are served in parallel. A Template applies
// to every date in [DateStart, DateEnd] while it is active.
package workshop
