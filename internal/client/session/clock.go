package session

import "time"

type Timer interface {
	Stop() bool
}

// Clock abstracts time so expiry can be driven by tests.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func (systemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// SystemClock uses the real wall clock.
func SystemClock() Clock { return systemClock{} }

// expiryGrace fires the logout a second early to tolerate clock skew.
const expiryGrace = time.Second

// ExpiryDelay returns how long until logout for a token expiring at exp,
// never negative.
func ExpiryDelay(exp, now time.Time) time.Duration {
	delay := time.Duration(exp.UnixMilli()-now.UnixMilli())*time.Millisecond - expiryGrace
	if delay < 0 {
		return 0
	}
	return delay
}
