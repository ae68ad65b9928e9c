// Package workflow plans and executes the fixed OTU analysis chain.
//
// A run moves through denoising (optional), OTU picking, representative set
// selection, alignment, taxonomy assignment, alignment filtering, tree
// building and OTU table construction. The planner decides which steps are
// enabled from the supplied inputs and threads each step's declared output
// into the step that consumes it, producing an immutable ordered list of
// fully resolved invocations.
//
// Execution is delegated to a Policy selected once at startup: print the
// commands, run them serially, or hand parallel-capable steps to an external
// backend. All policies stop at the first failing step; outputs of completed
// steps are left on disk for inspection.
package workflow
