package errno

import (
	"errors"
	"fmt"
)

const (
	SuccessCode      = 0
	ServiceErrCode   = 10001
	RequestErrCode   = 10002
	ValidationCode   = 10003
	AuthRequiredCode = 10004
	ForbiddenCode    = 10005
	NotFoundCode     = 10006
)

type ErrNo struct {
	ErrCode int64
	ErrMsg  string
}

func (e ErrNo) Error() string {
	return fmt.Sprintf("err_code=%d, err_msg=%s", e.ErrCode, e.ErrMsg)
}

func NewErrNo(code int64, msg string) ErrNo {
	return ErrNo{ErrCode: code, ErrMsg: msg}
}

// WithMessage returns a copy carrying a more specific message under the same code.
func (e ErrNo) WithMessage(msg string) ErrNo {
	e.ErrMsg = msg
	return e
}

// Is matches by code so errors.Is works across WithMessage copies and
// github.com/pkg/errors wrapping.
func (e ErrNo) Is(target error) bool {
	var t ErrNo
	if errors.As(target, &t) {
		return e.ErrCode == t.ErrCode
	}
	return false
}

var (
	Success         = NewErrNo(SuccessCode, "success")
	ServiceErr      = NewErrNo(ServiceErrCode, "service internal error")
	RequestErr      = NewErrNo(RequestErrCode, "request failed")
	ValidationErr   = NewErrNo(ValidationCode, "invalid input")
	AuthRequiredErr = NewErrNo(AuthRequiredCode, "authentication required")
	ForbiddenErr    = NewErrNo(ForbiddenCode, "operation not allowed")
	NotFoundErr     = NewErrNo(NotFoundCode, "resource not found")
)

// ConvertErr maps any error back onto the taxonomy; unknown errors become
// ServiceErr with the original message preserved.
func ConvertErr(err error) ErrNo {
	var e ErrNo
	if errors.As(err, &e) {
		return e
	}
	return ServiceErr.WithMessage(err.Error())
}
