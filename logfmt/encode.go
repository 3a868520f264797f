package logfmt

import (
	"strconv"
	"strings"
)

// Pair is one top-level key/value input to Encode.
type Pair struct {
	Key   string
	Value *Value
}

// KV builds a Pair from any Go value via Any.
func KV(key string, value any) Pair {
	return Pair{Key: key, Value: Any(value)}
}

// Encode renders pairs as one logfmt line, tokens joined by single
// spaces, no trailing newline. Identical input graphs produce identical
// bytes.
//
// Lists flatten to 0-based index paths in element order, maps to child
// key paths in ascending lexical key order, with segments joined by '.'.
// A list or map reached a second time in the same call collapses to a
// back-reference token naming the path of its first occurrence.
func Encode(pairs []Pair) string {
	e := encoder{seen: make(map[*Value]string)}
	for _, p := range pairs {
		e.flatten(sanitizeKey(p.Key), p.Value)
	}
	return strings.Join(e.toks, " ")
}

// encoder carries one call's output tokens and its seen-set. The
// seen-set maps container identity to the back-reference token for the
// path where that container was first expanded. It lives for exactly
// one Encode call.
type encoder struct {
	toks []string
	seen map[*Value]string
}

// flatten appends the tokens for one node. path is already sanitized
// and dot-joined.
func (e *encoder) flatten(path string, v *Value) {
	v = v.force()

	switch v.kind {
	case KindList, KindMap:
		if ref, ok := e.seen[v]; ok {
			e.emit(path, quoteValue(ref))
			return
		}
		e.seen[v] = "&" + path
	default:
		e.emit(path, quoteValue(v.text()))
		return
	}

	if v.kind == KindList {
		for i, item := range v.listVal {
			e.flatten(path+"."+strconv.Itoa(i), item)
		}
		return
	}
	for _, ent := range sortEntries(v.mapVal) {
		e.flatten(path+"."+sanitizeKey(ent.Key), ent.Value)
	}
}

func (e *encoder) emit(path, rendered string) {
	e.toks = append(e.toks, path+"="+rendered)
}

// sortEntries returns entries in ascending lexical key order. Insertion
// sort; map payloads are small.
func sortEntries(entries []MapEntry) []MapEntry {
	if len(entries) <= 1 {
		return entries
	}
	sorted := make([]MapEntry, len(entries))
	copy(sorted, entries)
	for i := 1; i < len(sorted); i++ {
		j := i
		for j > 0 && sorted[j].Key < sorted[j-1].Key {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
			j--
		}
	}
	return sorted
}
