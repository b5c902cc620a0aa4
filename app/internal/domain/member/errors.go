package member

import "errors"

var (
	ErrMemberNotFound = errors.New("member not found")
	ErrUpdateFailed   = errors.New("failed to update member")
)
