// Package timezone keeps every timestamp the service produces in one configured location.
//
// Usage:
//
//	timezone.Init(cfg.App.Timezone)       // once, at boot
//	now := timezone.Now()                  // current time in the app timezone
//	s := timezone.Format(now, time.RFC3339)
//
// Names must come from the IANA database ("UTC", "Asia/Jakarta", "Europe/London").
// Until Init succeeds every helper works in UTC.
package timezone
