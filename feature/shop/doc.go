// Package shop extracts structural vehicle records from the parsed shop
// tree.
//
// The shop tree is the authoritative source for which vehicles exist and
// where they sit in the tech tree. Position is encoded purely through block
// order: the rank block's ordinal within its country is the rank id, the
// tier block's ordinal is the row, and the vehicle block's ordinal within
// its tier is the column. Reordering sibling blocks in the source therefore
// changes the extracted coordinates deterministically.
//
// Entries may carry an explicit reqAir reference naming their unlock
// predecessor, or an empty reqAir meaning "researchable from the start".
// Entries without the key fall back to positional adjacency, which is
// resolved later by the dependency graph builder.
package shop
