package app

import "errors"

var (
	ErrInitialSnapshot = errors.New("initial APC snapshot unavailable")
	ErrSnapshotSource  = errors.New("snapshot source unavailable")
)
