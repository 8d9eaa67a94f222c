package record

import "errors"

var (
	// ErrInvalidLog reports a log that cannot be decoded or has a bad header.
	ErrInvalidLog = errors.New("invalid execution log")
	// ErrReplayMismatch reports a run that diverged from its log.
	ErrReplayMismatch = errors.New("replay mismatch")
	// ErrLogExhausted reports a run that made more calls than the log holds.
	ErrLogExhausted = errors.New("replay log exhausted")
)
