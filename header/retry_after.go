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

// RetryAfter represents the Retry-After header field defined in RFC 3261
// Section 20.33.
type RetryAfter struct {
	Delay time.Duration
}

// ParseRetryAfter parses a raw Retry-After header value in delta-seconds.
func ParseRetryAfter(s string) (*RetryAfter, error) {
	sec, err := strconv.ParseUint(StripParams(s), 10, 32)
	if err != nil {
		return nil, errtrace.Wrap(errorutil.NewInvalidArgumentError(err))
	}
	return &RetryAfter{time.Duration(sec) * time.Second}, nil
}

func (*RetryAfter) CanonicName() Name { return NameRetryAfter }

func (hdr *RetryAfter) RenderTo(w io.Writer) error {
	if hdr == nil {
		return nil
	}
	if _, err := fmt.Fprint(w, hdr.CanonicName(), ": "); err != nil {
		return errtrace.Wrap(err)
	}
	return errtrace.Wrap(hdr.renderValue(w))
}

func (hdr *RetryAfter) renderValue(w io.Writer) error {
	_, err := fmt.Fprint(w, int(hdr.Delay.Seconds()))
	return errtrace.Wrap(err)
}

func (hdr *RetryAfter) Render() string {
	if hdr == nil {
		return ""
	}
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	_ = hdr.RenderTo(sb)
	return sb.String()
}

func (hdr *RetryAfter) String() string {
	if hdr == nil {
		return nilTag
	}
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	_ = hdr.renderValue(sb)
	return sb.String()
}

func (hdr *RetryAfter) Clone() Header {
	if hdr == nil {
		return nil
	}
	hdr2 := *hdr
	return &hdr2
}

func (hdr *RetryAfter) Equal(val any) bool {
	var other *RetryAfter
	switch v := val.(type) {
	case RetryAfter:
		other = &v
	case *RetryAfter:
		other = v
	default:
		return false
	}

	if hdr == other {
		return true
	} else if hdr == nil || other == nil {
		return false
	}

	return int(hdr.Delay.Seconds()) == int(other.Delay.Seconds())
}

func (hdr *RetryAfter) IsValid() bool { return hdr != nil }
