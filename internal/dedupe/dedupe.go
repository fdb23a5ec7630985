package dedupe

// Package dedupe provides shared singleflight groups used to deduplicate
// concurrent work. Using a centralized singleflight.Group ensures that only
// one job runs for a given key while other callers wait for the result.

import "golang.org/x/sync/singleflight"

// SessionGroup deduplicates session loads from storage keyed by
// "session:<id>", so concurrent requests for a cold session decode its
// snapshot once.
var SessionGroup singleflight.Group

// SessionKey is the SessionGroup key for a session id.
func SessionKey(id string) string {
	return "session:" + id
}
