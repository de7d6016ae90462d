package sipsub

import "time"

// T1 is the SIP retransmission base interval estimate, RFC 3261 Section 17.1.1.1.
const T1 = 500 * time.Millisecond

// TimingConfig represents the subscription timing config.
// Zero value uses the default base value [T1]; Timer N is derived from it.
type TimingConfig struct {
	t1 time.Duration
}

var defTimingCfg TimingConfig

// NewTimings creates a new timing config with the specified T1 base value.
func NewTimings(t1 time.Duration) TimingConfig {
	return TimingConfig{t1}
}

// T1 is the retransmission base interval.
// It is equal to [T1] if not specified.
func (c TimingConfig) T1() time.Duration {
	if c.t1 == 0 {
		return T1
	}
	return c.t1
}

// TimeN returns the Timer N duration, the RFC 6665 Section 4.1.2 guard
// bounding how long a SUBSCRIBE or REFER may go unanswered by a NOTIFY.
// It is equal to 64*[TimingConfig.T1].
func (c TimingConfig) TimeN() time.Duration { return 64 * c.T1() }

func (c TimingConfig) IsZero() bool { return c.t1 == 0 }
