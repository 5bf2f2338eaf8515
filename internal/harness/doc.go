// Package harness drives a golden-file run: for every discovered case it
// reads the fixture's annotations, invokes the tool, normalizes the output,
// compares both sides and reports the verdict.
//
// A run is sequential unless more than one job is configured, in which case
// the cases of a suite are evaluated by a bounded pool of workers. Verdicts
// are always reported in discovery order.
//
// Faults are split in two classes. A fixture that cannot be judged (an
// unreadable file, a malformed annotation, a tool that outlived its
// timeout) fails that case only. A tool that cannot be started, or a
// cancelled context, aborts the run and is returned with the statistics
// gathered so far.
package harness
