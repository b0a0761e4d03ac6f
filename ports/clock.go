package ports

import (
	"time"
)

// Clock supplies the current instant. The analyzer resolves its reference
// date from one Clock reading per run, and tests pin it to a fixed moment.
type Clock interface {
	Now() time.Time
}
