// Package economy extracts research and purchase costs from the economics
// tree.
//
// The economics file is keyed by vehicle id and is allowed to lag behind
// the shop tree: a vehicle missing here is usually a reward or premium
// entry, which downstream reports as an economy-exempt diagnostic instead
// of an error. Absent values stay absent; a nil cost is never collapsed
// into a zero cost because zero is a legitimate price.
package economy
