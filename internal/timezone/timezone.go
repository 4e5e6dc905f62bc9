package timezone

import "time"

const DefaultTimezone = "UTC"

// Location resolves an IANA zone name, falling back to UTC so a
// misconfigured center never breaks date parsing.
func Location(tz string) *time.Location {
	if tz != "" {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}
	loc, _ := time.LoadLocation(DefaultTimezone)
	return loc
}

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Now() time.Time {
	return time.Now().In(Location(DefaultTimezone))
}

// NowIn is the clock every center-scoped check reads: "the future" is
// judged on the center's wall clock, not the server's.
func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}
