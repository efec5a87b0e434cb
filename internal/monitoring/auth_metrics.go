package monitoring

import (
	"sync/atomic"
	"time"
)

var loginAttemptsTotal atomic.Uint64
var loginAttemptsFailed atomic.Uint64
var loginDurationMicrosTotal atomic.Uint64
var registrationsTotal atomic.Uint64

type AuthStats struct {
	LoginsTotal   uint64
	LoginsFailed  uint64
	AvgLoginMS    float64
	Registrations uint64
}

// RecordLogin counts one login attempt. bcrypt dominates the duration, so the
// average doubles as a check on the configured hash cost.
func RecordLogin(duration time.Duration, success bool) {
	loginAttemptsTotal.Add(1)
	if !success {
		loginAttemptsFailed.Add(1)
	}
	if duration > 0 {
		loginDurationMicrosTotal.Add(uint64(duration / time.Microsecond))
	}
}

func RecordRegistration() {
	registrationsTotal.Add(1)
}

func getAuthStats() AuthStats {
	total := loginAttemptsTotal.Load()
	avg := 0.0
	if total > 0 {
		avg = float64(loginDurationMicrosTotal.Load()) / float64(total) / 1000.0
	}
	return AuthStats{
		LoginsTotal:   total,
		LoginsFailed:  loginAttemptsFailed.Load(),
		AvgLoginMS:    avg,
		Registrations: registrationsTotal.Load(),
	}
}
