package header_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ghettovoice/sipsub/header"
)

func TestStripParams(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"presence", "presence"},
		{"presence;id=a1", "presence"},
		{" dialog ; id = z9 ", "dialog"},
		{";id=a1", ""},
	}

	for _, c := range cases {
		if got := header.StripParams(c.in); got != c.want {
			t.Errorf("header.StripParams(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestParam(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in    string
		param string
		want  string
	}{
		{"presence", "id", ""},
		{"presence;id=a1", "id", "a1"},
		{"presence;ID=a1", "id", "a1"},
		{"presence;foo=1;id=a1;bar=2", "id", "a1"},
		{" refer ; id = \"7\" ", "id", "7"},
		{"active;expires=3600", "expires", "3600"},
		{"terminated;reason", "reason", ""},
	}

	for _, c := range cases {
		if got := header.Param(c.in, c.param); got != c.want {
			t.Errorf("header.Param(%q, %q) = %q, want %q", c.in, c.param, got, c.want)
		}
	}
}

func TestHeaders_Get(t *testing.T) {
	t.Parallel()

	hs := header.Headers{}.
		Add(header.NameEvent, "presence").
		Add("event", "dialog").
		Add(header.NameExpires, "60")

	// first match wins, lookup is case-insensitive
	if got, ok := hs.Get("EVENT"); !ok || got != "presence" {
		t.Errorf("hs.Get(EVENT) = %q, %v, want %q, true", got, ok, "presence")
	}
	if got, ok := hs.Get(header.NameExpires); !ok || got != "60" {
		t.Errorf("hs.Get(Expires) = %q, %v, want %q, true", got, ok, "60")
	}
	if _, ok := hs.Get(header.NameRetryAfter); ok {
		t.Error("hs.Get(Retry-After) = _, true, want false")
	}
}

func TestHeaders_Clone(t *testing.T) {
	t.Parallel()

	if got := header.Headers(nil).Clone(); got != nil {
		t.Errorf("Headers(nil).Clone() = %+v, want nil", got)
	}

	hs := header.Headers{}.Add(header.NameEvent, "presence")
	hs2 := hs.Clone()
	if diff := cmp.Diff(hs2, hs); diff != "" {
		t.Errorf("hs.Clone() mismatch\ndiff (-got +want):\n%v", diff)
	}
	hs2[0].Value = "dialog"
	if hs[0].Value != "presence" {
		t.Error("hs.Clone() shares backing storage with the original")
	}
}
