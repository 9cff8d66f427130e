package rawhttp

import "testing"

func TestParseQueryString_EmptyAndBareAmpersand(t *testing.T) {
	for _, raw := range []string{"", "&"} {
		got, err := ParseQueryString(raw)
		if err != nil {
			t.Fatalf("ParseQueryString(%q) error = %v", raw, err)
		}
		if len(got) != 0 {
			t.Errorf("ParseQueryString(%q) = %v, want empty map", raw, got)
		}
	}
}

func TestParseQueryString_BareEquals(t *testing.T) {
	got, err := ParseQueryString("=")
	if err != nil {
		t.Fatalf("ParseQueryString() error = %v", err)
	}
	if values, ok := got[""]; !ok || len(values) != 1 || values[0] != "" {
		t.Errorf("got[\"\"] = %v, %v, want [\"\"], true", values, ok)
	}
}

func TestParseQueryString_KeyWithoutEqualsHasNoValues(t *testing.T) {
	got, err := ParseQueryString("hello")
	if err != nil {
		t.Fatalf("ParseQueryString() error = %v", err)
	}
	values, ok := got["hello"]
	if !ok {
		t.Fatalf("got[\"hello\"] missing")
	}
	if len(values) != 0 {
		t.Errorf("got[\"hello\"] = %v, want empty slice", values)
	}
}

func TestParseQueryString_KeyWithTrailingEqualsHasEmptyValue(t *testing.T) {
	got, err := ParseQueryString("hello=")
	if err != nil {
		t.Fatalf("ParseQueryString() error = %v", err)
	}
	if values, ok := got["hello"]; !ok || len(values) != 1 || values[0] != "" {
		t.Errorf("got[\"hello\"] = %v, %v, want [\"\"], true", values, ok)
	}
}

func TestParseQueryString_DuplicateKeysAccumulateInOrder(t *testing.T) {
	got, err := ParseQueryString("a=1&a=2&b=3&a=4")
	if err != nil {
		t.Fatalf("ParseQueryString() error = %v", err)
	}
	wantA := []string{"1", "2", "4"}
	a := got["a"]
	if len(a) != len(wantA) {
		t.Fatalf("got[\"a\"] = %v, want %v", a, wantA)
	}
	for i := range wantA {
		if a[i] != wantA[i] {
			t.Errorf("got[\"a\"][%d] = %q, want %q", i, a[i], wantA[i])
		}
	}
	if b := got["b"]; len(b) != 1 || b[0] != "3" {
		t.Errorf("got[\"b\"] = %v, want [\"3\"]", b)
	}
}

func TestParseQueryString_NoPercentDecoding(t *testing.T) {
	got, err := ParseQueryString("k=%2F")
	if err != nil {
		t.Fatalf("ParseQueryString() error = %v", err)
	}
	if v := got["k"]; len(v) != 1 || v[0] != "%2F" {
		t.Errorf("got[\"k\"] = %v, want [\"%%2F\"] (unchanged, no percent-decoding)", v)
	}
}
