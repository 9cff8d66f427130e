package uri

import "testing"

func TestParse_OriginForm(t *testing.T) {
	u, err := Parse("/", false)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if u.RawPath() != "/" {
		t.Errorf("RawPath() = %q, want %q", u.RawPath(), "/")
	}
	if _, ok := u.Host(); ok {
		t.Errorf("Host() present for origin-form target")
	}
}

func TestParse_IPv6AuthorityInfersHTTPScheme(t *testing.T) {
	u, err := Parse("[::8a2e:370:7334]:43", false)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	host, ok := u.Host()
	if !ok || host != "[::8a2e:370:7334]" {
		t.Errorf("Host() = %q, %v, want %q, true", host, ok, "[::8a2e:370:7334]")
	}
	if u.Port != 43 {
		t.Errorf("Port = %d, want 43", u.Port)
	}
	if u.Scheme != "http" {
		t.Errorf("Scheme = %q, want %q", u.Scheme, "http")
	}
}

func TestParse_RepairsIllegalPathBytesAndPreservesExistingEscapes(t *testing.T) {
	u, err := Parse("/id/{0x0}?encoded=%2F%2Fexample.com", true)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if u.RawPath() != "/id/%7B0x0%7D" {
		t.Errorf("RawPath() = %q, want %q", u.RawPath(), "/id/%7B0x0%7D")
	}
	q, ok := u.RawQuery()
	if !ok || q != "encoded=%2F%2Fexample.com" {
		t.Errorf("RawQuery() = %q, %v, want unchanged", q, ok)
	}
}

func TestParse_RejectsIllegalPathByteInStrictMode(t *testing.T) {
	_, err := Parse("/id/{0x0}", false)
	uerr, ok := err.(*Error)
	if !ok {
		t.Fatalf("err = %v (%T), want *Error", err, err)
	}
	if uerr.Component != ComponentPath {
		t.Errorf("Component = %q, want %q", uerr.Component, ComponentPath)
	}
	if uerr.Index != 4 {
		t.Errorf("Index = %d, want 4", uerr.Index)
	}
	if uerr.Snippet != "{0x0}" {
		t.Errorf("Snippet = %q, want %q", uerr.Snippet, "{0x0}")
	}
}

func TestParse_AbsoluteFormWithAuthorityAndPath(t *testing.T) {
	u, err := Parse("http://user:pw@example.com:8080/a/b?x=1#frag", false)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if u.Scheme != "http" {
		t.Errorf("Scheme = %q", u.Scheme)
	}
	if ui, ok := u.UserInfo(); !ok || ui != "user:pw" {
		t.Errorf("UserInfo() = %q, %v", ui, ok)
	}
	if host, ok := u.Host(); !ok || host != "example.com" {
		t.Errorf("Host() = %q, %v", host, ok)
	}
	if u.Port != 8080 {
		t.Errorf("Port = %d, want 8080", u.Port)
	}
	if u.RawPath() != "/a/b" {
		t.Errorf("RawPath() = %q", u.RawPath())
	}
	if q, ok := u.RawQuery(); !ok || q != "x=1" {
		t.Errorf("RawQuery() = %q, %v", q, ok)
	}
	if f, ok := u.RawFragment(); !ok || f != "frag" {
		t.Errorf("RawFragment() = %q, %v", f, ok)
	}
}

func TestParse_AsteriskForm(t *testing.T) {
	u, err := Parse("*", false)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if u.RawPath() != "*" {
		t.Errorf("RawPath() = %q, want %q", u.RawPath(), "*")
	}
}

func TestParse_QuestionMarkLegalInFragmentHashLegalToo(t *testing.T) {
	u, err := Parse("/p#frag?still-frag#more", false)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	f, ok := u.RawFragment()
	if !ok || f != "frag?still-frag#more" {
		t.Errorf("RawFragment() = %q, %v", f, ok)
	}
}

func TestParse_HashAfterQueryStartsFragmentStrictMode(t *testing.T) {
	_, err := Parse("/p?a=1#b", false)
	if err != nil {
		t.Fatalf("unexpected error: %v (# starts a fragment, not a query error)", err)
	}
}

func TestParse_PathAndQueryPercentDecode(t *testing.T) {
	u, err := Parse("/a%20b?k=v%20v", false)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if u.Path() != "/a b" {
		t.Errorf("Path() = %q, want %q", u.Path(), "/a b")
	}
	if u.Query() != "k=v v" {
		t.Errorf("Query() = %q, want %q", u.Query(), "k=v v")
	}
}

func TestParse_StringRoundTrip(t *testing.T) {
	u, err := Parse("http://example.com:80/x?y=1#z", false)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got, want := u.String(), "http://example.com:80/x?y=1#z"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
