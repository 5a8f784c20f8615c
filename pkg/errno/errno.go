package errno

import "errors"

// Errno defines the error code logic
type Errno struct {
	Code    int
	Message string
}

func (e Errno) Error() string {
	return e.Message
}

// WithMessage returns a copy of e carrying a more specific message.
// The code stays the same so clients can still switch on it.
func (e Errno) WithMessage(msg string) Errno {
	return Errno{Code: e.Code, Message: msg}
}

// Decode tries to convert an error to Errno.
// Wrapped errors are unwrapped with errors.As; anything else is an internal error.
func Decode(err error) (int, string) {
	if err == nil {
		return OK.Code, OK.Message
	}

	var ptr *Errno
	if errors.As(err, &ptr) && ptr != nil {
		return ptr.Code, ptr.Message
	}
	var val Errno
	if errors.As(err, &val) {
		return val.Code, val.Message
	}
	return InternalServerError.Code, err.Error()
}

// Common Errors
var (
	OK                  = Errno{Code: 0, Message: "Success"}
	InternalServerError = Errno{Code: 10001, Message: "Internal server error"}
	ErrBind             = Errno{Code: 10002, Message: "Error occurred while binding the request body to the struct"}
	ErrUnavailable      = Errno{Code: 10005, Message: "Service unavailable"}
)

// Business Errors (20000+)
var (
	ErrInvalidAddress  = Errno{Code: 20201, Message: "Invalid address"}
	ErrInvalidTxHash   = Errno{Code: 20202, Message: "Invalid transaction hash"}
	ErrInvalidAmount   = Errno{Code: 20203, Message: "Invalid amount"}
	ErrTransferFailed  = Errno{Code: 20301, Message: "Transfer failed"}
	ErrRPC             = Errno{Code: 20302, Message: "Node RPC error"}
	ErrTxNotFound      = Errno{Code: 20303, Message: "Transaction not found"}
	ErrWalletNotLoaded = Errno{Code: 20401, Message: "Hot wallet key not configured"}
)
