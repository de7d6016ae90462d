package header_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/ghettovoice/sipsub/header"
)

func TestParseExpires(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		in      string
		want    *header.Expires
		wantErr bool
	}{
		{"empty", "", nil, true},
		{"not a number", "abc", nil, true},
		{"negative", "-1", nil, true},
		{"zero", "0", &header.Expires{}, false},
		{"seconds", "3600", &header.Expires{Duration: 3600 * time.Second}, false},
		{"with params", "60;refresher=uac", &header.Expires{Duration: 60 * time.Second}, false},
		{"spaced", " 60 ", &header.Expires{Duration: 60 * time.Second}, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			got, err := header.ParseExpires(c.in)
			if (err != nil) != c.wantErr {
				t.Fatalf("header.ParseExpires(%q) error = %v, wantErr %v", c.in, err, c.wantErr)
			}
			if diff := cmp.Diff(got, c.want); diff != "" {
				t.Errorf("header.ParseExpires(%q) mismatch\ndiff (-got +want):\n%v", c.in, diff)
			}
		})
	}
}

func TestExpires_Render(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		hdr  *header.Expires
		want string
	}{
		{"nil", nil, ""},
		{"zero", &header.Expires{}, "Expires: 0"},
		{"full", &header.Expires{Duration: 123 * time.Second}, "Expires: 123"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got := c.hdr.Render(); got != c.want {
				t.Errorf("hdr.Render() = %q, want %q", got, c.want)
			}
		})
	}
}

func TestExpires_Equal(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		hdr  *header.Expires
		val  any
		want bool
	}{
		{"nil to nil", nil, nil, false},
		{"nil to nil ptr", nil, (*header.Expires)(nil), true},
		{"zero to zero", &header.Expires{}, &header.Expires{}, true},
		{"not match", &header.Expires{Duration: 123 * time.Second}, &header.Expires{Duration: 456 * time.Second}, false},
		{"match", &header.Expires{Duration: 123 * time.Second}, header.Expires{Duration: 123 * time.Second}, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got := c.hdr.Equal(c.val); got != c.want {
				t.Errorf("hdr.Equal(val) = %v, want %v", got, c.want)
			}
		})
	}
}

func TestExpires_Clone(t *testing.T) {
	t.Parallel()

	if got := (*header.Expires)(nil).Clone(); got != nil {
		t.Errorf("(*Expires)(nil).Clone() = %+v, want nil", got)
	}

	hdr := &header.Expires{Duration: 123 * time.Second}
	got := hdr.Clone()
	if diff := cmp.Diff(got, header.Header(hdr)); diff != "" {
		t.Errorf("hdr.Clone() mismatch\ndiff (-got +want):\n%v", diff)
	}
}
