// Package blk implements the reader for the game's block config format.
//
// The format consists of nested named blocks and typed key/value scalars:
//
//	country_usa {
//	    rank {
//	        tier {
//	            a_1_fighter { reqAir:t = "" }
//	            a_2_fighter { }
//	        }
//	    }
//	}
//
// Scalars carry an optional single letter type marker (:t string, :i int,
// :r float, :b bool); without one the type is inferred from the literal
// shape. Values may be comma separated arrays of a uniform scalar type.
// Line (//) and block (/* */) comments are allowed anywhere and are
// stripped during tokenization.
//
// The parser is intentionally not a general purpose config language
// implementation: it supports exactly the constructs the source files use,
// and it never serializes trees back to text.
//
// # Ordering
//
// A block's children preserve source order exactly, and sibling names may
// repeat. Both properties are semantically significant: the shop tree
// encodes tech tree rows and columns purely through position.
//
// # Usage
//
//	root, err := blk.Parse("shop.blk", raw)
//	if err != nil {
//	    var serr *blk.SyntaxError
//	    errors.As(err, &serr) // file and line context
//	}
package blk
