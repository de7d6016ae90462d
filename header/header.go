// Package header provides the SIP header fields consumed and produced by
// the subscription dialog-usage core: Event (RFC 6665), Subscription-State
// (RFC 6665), Expires and Retry-After (RFC 3261).
//
// Header values are carried as raw strings inside a [Headers] block and
// promoted to typed values on demand with the Parse functions. Parsing
// covers only the value shapes this core reads; full grammar validation
// belongs to the message parser.
package header

import (
	"io"
	"strings"

	"github.com/ghettovoice/sipsub/internal/util"
)

// Name is a SIP header field name. Comparison is case-insensitive.
type Name string

// Canonical names of the headers known to this package.
const (
	NameEvent             Name = "Event"
	NameSubscriptionState Name = "Subscription-State"
	NameExpires           Name = "Expires"
	NameRetryAfter        Name = "Retry-After"
)

// Equal checks whether the name is equal to another name.
func (n Name) Equal(other Name) bool { return util.EqFold(n, other) }

func (n Name) String() string { return string(n) }

// Raw is a single raw header field.
type Raw struct {
	Name  Name   `json:"name"`
	Value string `json:"value"`
}

// Headers is an ordered raw header block.
type Headers []Raw

// Get returns the value of the first header field with the given name.
func (hs Headers) Get(name Name) (string, bool) {
	for _, h := range hs {
		if h.Name.Equal(name) {
			return h.Value, true
		}
	}
	return "", false
}

// Add returns the block with the header field appended.
func (hs Headers) Add(name Name, value string) Headers {
	return append(hs, Raw{Name: name, Value: value})
}

// Clone returns a copy of the header block.
func (hs Headers) Clone() Headers {
	if hs == nil {
		return nil
	}
	hs2 := make(Headers, len(hs))
	copy(hs2, hs)
	return hs2
}

// Header is a typed SIP header value.
type Header interface {
	CanonicName() Name
	RenderTo(w io.Writer) error
	Render() string
	Clone() Header
	IsValid() bool
}

const nilTag = "<nil>"

// StripParams returns the header value with any ;param parts removed.
func StripParams(s string) string {
	if i := strings.IndexByte(s, ';'); i >= 0 {
		s = s[:i]
	}
	return util.TrimSP(s)
}

// Param extracts the named ;param value from a header value.
// It returns an empty string when the parameter is absent or has no value.
func Param(s, name string) string {
	rest := s
	for {
		i := strings.IndexByte(rest, ';')
		if i < 0 {
			return ""
		}
		rest = rest[i+1:]

		param := rest
		if j := strings.IndexByte(param, ';'); j >= 0 {
			param = param[:j]
		}

		key, val, _ := strings.Cut(param, "=")
		if util.EqFold(util.TrimSP(key), name) {
			return util.TrimSP(strings.Trim(util.TrimSP(val), `"`))
		}
	}
}
