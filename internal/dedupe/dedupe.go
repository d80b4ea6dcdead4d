// Package dedupe provides shared singleflight groups used to deduplicate
// concurrent solver requests. Only one search runs for a given key while
// other callers wait for its result.
package dedupe

import "golang.org/x/sync/singleflight"

// SolveGroup deduplicates reachability searches keyed by keys.SolveKey.
var SolveGroup singleflight.Group
