package header

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipsub/internal/errorutil"
	"github.com/ghettovoice/sipsub/internal/util"
)

// Expires represents the Expires header field defined in RFC 3261 Section 20.19.
type Expires struct {
	time.Duration
}

// ParseExpires parses a raw Expires header value in delta-seconds.
func ParseExpires(s string) (*Expires, error) {
	sec, err := strconv.ParseUint(StripParams(s), 10, 32)
	if err != nil {
		return nil, errtrace.Wrap(errorutil.NewInvalidArgumentError(err))
	}
	return &Expires{time.Duration(sec) * time.Second}, nil
}

func (*Expires) CanonicName() Name { return NameExpires }

func (hdr *Expires) RenderTo(w io.Writer) error {
	if hdr == nil {
		return nil
	}
	if _, err := fmt.Fprint(w, hdr.CanonicName(), ": "); err != nil {
		return errtrace.Wrap(err)
	}
	return errtrace.Wrap(hdr.renderValue(w))
}

func (hdr *Expires) renderValue(w io.Writer) error {
	_, err := fmt.Fprint(w, int(hdr.Seconds()))
	return errtrace.Wrap(err)
}

func (hdr *Expires) Render() string {
	if hdr == nil {
		return ""
	}
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	_ = hdr.RenderTo(sb)
	return sb.String()
}

func (hdr *Expires) String() string {
	if hdr == nil {
		return nilTag
	}
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	_ = hdr.renderValue(sb)
	return sb.String()
}

func (hdr *Expires) Clone() Header {
	if hdr == nil {
		return nil
	}
	hdr2 := *hdr
	return &hdr2
}

func (hdr *Expires) Equal(val any) bool {
	var other *Expires
	switch v := val.(type) {
	case Expires:
		other = &v
	case *Expires:
		other = v
	default:
		return false
	}

	if hdr == other {
		return true
	} else if hdr == nil || other == nil {
		return false
	}

	return int(hdr.Seconds()) == int(other.Seconds())
}

func (hdr *Expires) IsValid() bool { return hdr != nil }
