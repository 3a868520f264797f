package logfmt

import "testing"

func TestParseBarePairs(t *testing.T) {
	got := Parse("a=1 b=two c=1.5")
	want := []Entry{{"a", "1"}, {"b", "two"}, {"c", "1.5"}}
	checkEntries(t, got, want)
}

func TestParseWhitespaceRuns(t *testing.T) {
	got := Parse("  a=1 \t  b=2\t")
	checkEntries(t, got, []Entry{{"a", "1"}, {"b", "2"}})
}

func TestParseEmptyLine(t *testing.T) {
	if got := Parse(""); len(got) != 0 {
		t.Fatalf("expected no entries, got %v", got)
	}
	if got := Parse(" \t "); len(got) != 0 {
		t.Fatalf("expected no entries for whitespace, got %v", got)
	}
}

func TestParseQuotedUnescapes(t *testing.T) {
	got := Parse(`msg="two words" esc="a\tb\nc\rd" q="say \"hi\"" bs="a\\b" hex="\x{01}"`)
	want := []Entry{
		{"msg", "two words"},
		{"esc", "a\tb\nc\rd"},
		{"q", `say "hi"`},
		{"bs", `a\b`},
		{"hex", "\x01"},
	}
	checkEntries(t, got, want)
}

func TestParseQuotedEmpty(t *testing.T) {
	checkEntries(t, Parse(`a=""`), []Entry{{"a", ""}})
}

func TestParseHexEscapeMultibyte(t *testing.T) {
	got := Parse(`u="\x{e2}\x{80}\x{a8}"`)
	checkEntries(t, got, []Entry{{"u", "\u2028"}})
}

func TestParseHexEscapeWideGroup(t *testing.T) {
	got := Parse(`u="\x{2028}"`)
	checkEntries(t, got, []Entry{{"u", "\u2028"}})
}

func TestParseUnknownEscapeKept(t *testing.T) {
	got := Parse(`a="\q" b="\x{zz}" c="\x{}" d="\x" e="\x{1}"`)
	want := []Entry{
		{"a", `\q`},
		{"b", `\x{zz}`},
		{"c", `\x{}`},
		{"d", `\x`},
		{"e", `\x{1}`},
	}
	checkEntries(t, got, want)
}

func TestParseJunkFallback(t *testing.T) {
	got := Parse(`one a=1 tw"o b=2 = c=`)
	want := []Entry{
		{JunkKey, "one"},
		{"a", "1"},
		{JunkKey, `tw"o`},
		{"b", "2"},
		{JunkKey, "="},
		{JunkKey, "c="},
	}
	checkEntries(t, got, want)
}

func TestParseUnterminatedQuoteIsJunk(t *testing.T) {
	checkEntries(t, Parse(`a="never`), []Entry{{JunkKey, `a="never`}})
	checkEntries(t, Parse(`a="x\`), []Entry{{JunkKey, `a="x\`}})
}

func TestParseQuoteWithTrailingGarbageIsJunk(t *testing.T) {
	checkEntries(t, Parse(`a="x"y`), []Entry{{JunkKey, `a="x"y`}})
}

func TestParseDoubleEqualsIsJunk(t *testing.T) {
	checkEntries(t, Parse("a=b=c"), []Entry{{JunkKey, "a=b=c"}})
}

func TestParseDuplicateKeysPreserved(t *testing.T) {
	got := Parse("a=1 a=2 a=3")
	checkEntries(t, got, []Entry{{"a", "1"}, {"a", "2"}, {"a", "3"}})
}

func TestParseMapLastWriteWins(t *testing.T) {
	m := ParseMap("a=1 b=2 a=3")
	if len(m) != 2 {
		t.Fatalf("expected two keys, got %v", m)
	}
	if m["a"] != "3" || m["b"] != "2" {
		t.Fatalf("unexpected hash view: %v", m)
	}
}

func TestRoundTripIdentifierScalars(t *testing.T) {
	line := Encode([]Pair{KV("a", "1"), KV("host", "edge-1")})
	checkEntries(t, Parse(line), []Entry{{"a", "1"}, {"host", "edge-1"}})
}

func TestRoundTripRecoversOriginalStrings(t *testing.T) {
	values := []string{
		"plain",
		"two words",
		`back\slash and "quotes"`,
		"tab\tnewline\ncr\r",
		"ctrl\x01\x02",
		"wide \u2028 separator",
		"naïve",
		"",
	}
	pairs := make([]Pair, 0, len(values))
	for i, v := range values {
		pairs = append(pairs, Pair{Key: keyFor(i), Value: Str(v)})
	}
	got := Parse(Encode(pairs))
	if len(got) != len(values) {
		t.Fatalf("expected %d entries, got %d: %v", len(values), len(got), got)
	}
	for i, e := range got {
		if e.Key == JunkKey {
			t.Fatalf("round trip produced junk at %d: %v", i, e)
		}
		if e.Value != values[i] {
			t.Fatalf("value %d did not round trip: got %q, want %q", i, e.Value, values[i])
		}
	}
}

func TestRoundTripFlattened(t *testing.T) {
	line := Encode([]Pair{
		{Key: "event", Value: Str("connect")},
		{Key: "peer", Value: Map(
			Field("host", Str("edge-1")),
			Field("port", Int(9443)),
		)},
		{Key: "tags", Value: List(Str("a"), Str("b"))},
	})
	got := Parse(line)
	want := []Entry{
		{"event", "connect"},
		{"peer.host", "edge-1"},
		{"peer.port", "9443"},
		{"tags.0", "a"},
		{"tags.1", "b"},
	}
	checkEntries(t, got, want)
}

func checkEntries(t *testing.T, got, want []Entry) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d entries, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("entry %d: got %q=%q, want %q=%q",
				i, got[i].Key, got[i].Value, want[i].Key, want[i].Value)
		}
	}
}

func keyFor(i int) string {
	return "k" + string(rune('a'+i))
}
