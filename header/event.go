package header

import (
	"fmt"
	"io"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipsub/internal/errorutil"
	"github.com/ghettovoice/sipsub/internal/util"
)

// Event represents the Event header field defined in RFC 6665 Section 8.2.1.
// It names the event package of a subscription and an optional "id"
// parameter distinguishing multiple subscriptions to the same package.
type Event struct {
	Type string
	ID   string
}

// ParseEvent parses a raw Event header value, e.g. "presence;id=a1".
func ParseEvent(s string) (*Event, error) {
	typ := StripParams(s)
	if typ == "" {
		return nil, errtrace.Wrap(errorutil.NewInvalidArgumentError("empty event type"))
	}
	return &Event{Type: typ, ID: Param(s, "id")}, nil
}

func (*Event) CanonicName() Name { return NameEvent }

func (hdr *Event) RenderTo(w io.Writer) error {
	if hdr == nil {
		return nil
	}
	if _, err := fmt.Fprint(w, hdr.CanonicName(), ": "); err != nil {
		return errtrace.Wrap(err)
	}
	return errtrace.Wrap(hdr.renderValue(w))
}

func (hdr *Event) renderValue(w io.Writer) error {
	if _, err := fmt.Fprint(w, hdr.Type); err != nil {
		return errtrace.Wrap(err)
	}
	if hdr.ID != "" {
		_, err := fmt.Fprint(w, ";id=", hdr.ID)
		return errtrace.Wrap(err)
	}
	return nil
}

func (hdr *Event) Render() string {
	if hdr == nil {
		return ""
	}
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	_ = hdr.RenderTo(sb)
	return sb.String()
}

func (hdr *Event) String() string {
	if hdr == nil {
		return nilTag
	}
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	_ = hdr.renderValue(sb)
	return sb.String()
}

func (hdr *Event) Clone() Header {
	if hdr == nil {
		return nil
	}
	hdr2 := *hdr
	return &hdr2
}

func (hdr *Event) Equal(val any) bool {
	var other *Event
	switch v := val.(type) {
	case Event:
		other = &v
	case *Event:
		other = v
	default:
		return false
	}

	if hdr == other {
		return true
	} else if hdr == nil || other == nil {
		return false
	}

	return util.EqFold(hdr.Type, other.Type) && hdr.ID == other.ID
}

func (hdr *Event) IsValid() bool { return hdr != nil && hdr.Type != "" }
