package record

import "errors"

// Sentinel kinds for normalization errors.
var (
	// ErrNoRecordsFound means the payload carried no usable single or average.
	ErrNoRecordsFound = errors.New("no records found")
	// ErrInvalidPayload means the payload failed the minimum-field contract.
	ErrInvalidPayload = errors.New("invalid competitor payload")
)
