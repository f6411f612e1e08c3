// Package rank extracts per-nation rank unlock gates from the rank tree.
//
// A gate is either a researched-vehicle count or a research point
// threshold. Gates are independent of individual vehicles and are merged
// into the final catalog by (country, rank) only.
package rank
