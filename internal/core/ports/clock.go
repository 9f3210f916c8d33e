package ports

import "time"

// Clock supplies the current instant. Injected so tests can pin timestamps;
// created_at is digest keying material and must be reproducible in tests.
type Clock interface {
	Now() time.Time
}
