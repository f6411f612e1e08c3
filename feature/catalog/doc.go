// Package catalog merges the parsed game sources into one normalized
// vehicle catalog: the structural shop tree decides which vehicles exist
// and where they sit, the economics and localization sources decorate
// them, and the tree positions plus explicit references yield the unlock
// dependency graph.
//
// Hard invariant violations (conflicting duplicates, unknown edge targets,
// unlock cycles) surface as *IntegrityError and abort the run. Softer
// findings become Diagnostics and only fail the run in strict mode.
package catalog
