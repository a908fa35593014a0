package errors

import "errors"

var (
	ErrStorageUnavailable = errors.New("booking storage is unavailable")

	ErrInvalidBody = errors.New("invalid request body")
)
