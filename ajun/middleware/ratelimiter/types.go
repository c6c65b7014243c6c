package ratelimiter

import "time"

type ClientData struct {
	Count        int
	WindowEnd    time.Time
	DisableUntil time.Time
}
