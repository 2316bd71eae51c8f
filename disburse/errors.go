package disburse

import (
	"errors"
)

// The complete failure taxonomy of a disbursement. Callers are
// expected to match with errors.Is; element level failures wrap the
// sentinel together with the offending index.
var (
	ErrWrongNetwork       = errors.New("operation is not running on the designated network")
	ErrLengthMismatch     = errors.New("recipients and amounts must have the same length")
	ErrInsufficientFunds  = errors.New("supplied value does not cover the requested amounts")
	ErrInvalidRecipient   = errors.New("recipient is the zero address")
	ErrTransferFailed     = errors.New("transfer failed")
	ErrArithmeticOverflow = errors.New("arithmetic overflow")
)
