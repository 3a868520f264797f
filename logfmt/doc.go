// Package logfmt owns the event line codec.
//
// Ownership boundary:
// - value model and coercion primitives
// - flattening, shared-reference collapse, and escaping for encode
// - tolerant tokenization for decode
//
// Encode and Parse are pure functions over their inputs. Neither ever
// fails: every value reduces to tokens, and input that matches no pair
// rule surfaces as "junk" entries instead of an error.
package logfmt
