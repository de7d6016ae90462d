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

// Subscription-State values defined in RFC 6665 Section 8.2.4.
const (
	SubStateActive     = "active"
	SubStatePending    = "pending"
	SubStateTerminated = "terminated"
)

// SubscriptionState represents the Subscription-State header field defined
// in RFC 6665 Section 8.2.4. It conveys the notifier's view of the
// subscription status and its remaining lifetime.
type SubscriptionState struct {
	// Value is the state token: "active", "pending", "terminated" or an
	// extension token.
	Value string
	// Expires is the remaining subscription lifetime from the "expires"
	// parameter. Meaningful only when HasExpires is true.
	Expires time.Duration
	// HasExpires reports whether a parsable "expires" parameter was present.
	HasExpires bool
	// Reason is the optional termination reason from the "reason" parameter.
	Reason string
}

// ParseSubscriptionState parses a raw Subscription-State header value,
// e.g. "active;expires=3600" or "terminated;reason=timeout".
// An unparsable "expires" parameter degrades to absent.
func ParseSubscriptionState(s string) (*SubscriptionState, error) {
	val := StripParams(s)
	if val == "" {
		return nil, errtrace.Wrap(errorutil.NewInvalidArgumentError("empty subscription state"))
	}

	hdr := &SubscriptionState{Value: val, Reason: Param(s, "reason")}
	if exp := Param(s, "expires"); exp != "" {
		if sec, err := strconv.ParseUint(exp, 10, 32); err == nil {
			hdr.Expires = time.Duration(sec) * time.Second
			hdr.HasExpires = true
		}
	}
	return hdr, nil
}

// IsActive reports whether the state token is "active".
func (hdr *SubscriptionState) IsActive() bool {
	return hdr != nil && util.EqFold(hdr.Value, SubStateActive)
}

// IsPending reports whether the state token is "pending".
func (hdr *SubscriptionState) IsPending() bool {
	return hdr != nil && util.EqFold(hdr.Value, SubStatePending)
}

// IsTerminated reports whether the state token is "terminated".
func (hdr *SubscriptionState) IsTerminated() bool {
	return hdr != nil && util.EqFold(hdr.Value, SubStateTerminated)
}

func (*SubscriptionState) CanonicName() Name { return NameSubscriptionState }

func (hdr *SubscriptionState) RenderTo(w io.Writer) error {
	if hdr == nil {
		return nil
	}
	if _, err := fmt.Fprint(w, hdr.CanonicName(), ": "); err != nil {
		return errtrace.Wrap(err)
	}
	return errtrace.Wrap(hdr.renderValue(w))
}

func (hdr *SubscriptionState) renderValue(w io.Writer) error {
	if _, err := fmt.Fprint(w, hdr.Value); err != nil {
		return errtrace.Wrap(err)
	}
	if hdr.HasExpires {
		if _, err := fmt.Fprint(w, ";expires=", int(hdr.Expires.Seconds())); err != nil {
			return errtrace.Wrap(err)
		}
	}
	if hdr.Reason != "" {
		if _, err := fmt.Fprint(w, ";reason=", hdr.Reason); err != nil {
			return errtrace.Wrap(err)
		}
	}
	return nil
}

func (hdr *SubscriptionState) Render() string {
	if hdr == nil {
		return ""
	}
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	_ = hdr.RenderTo(sb)
	return sb.String()
}

func (hdr *SubscriptionState) String() string {
	if hdr == nil {
		return nilTag
	}
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	_ = hdr.renderValue(sb)
	return sb.String()
}

func (hdr *SubscriptionState) Clone() Header {
	if hdr == nil {
		return nil
	}
	hdr2 := *hdr
	return &hdr2
}

func (hdr *SubscriptionState) Equal(val any) bool {
	var other *SubscriptionState
	switch v := val.(type) {
	case SubscriptionState:
		other = &v
	case *SubscriptionState:
		other = v
	default:
		return false
	}

	if hdr == other {
		return true
	} else if hdr == nil || other == nil {
		return false
	}

	return util.EqFold(hdr.Value, other.Value) &&
		hdr.HasExpires == other.HasExpires &&
		int(hdr.Expires.Seconds()) == int(other.Expires.Seconds()) &&
		hdr.Reason == other.Reason
}

func (hdr *SubscriptionState) IsValid() bool { return hdr != nil && hdr.Value != "" }
