package errno

import (
	"errors"
	"fmt"
)

const (
	SuccessCode       = int64(0)
	ServiceErrCode    = int64(10001)
	ParamErrCode      = int64(10002)
	NotFoundErrCode   = int64(10003)
	AuthorizationCode = int64(10004)
	ConflictErrCode   = int64(10005)
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

func (e ErrNo) WithMessage(msg string) ErrNo {
	e.ErrMsg = msg
	return e
}

var (
	Success          = NewErrNo(SuccessCode, "Success")
	ServiceErr       = NewErrNo(ServiceErrCode, "Service is unable to start successfully")
	ParamErr         = NewErrNo(ParamErrCode, "Wrong Parameter has been given")
	RequestErr       = ParamErr
	NotFoundErr      = NewErrNo(NotFoundErrCode, "Resource not found")
	AuthorizationErr = NewErrNo(AuthorizationCode, "Caller is not the resource owner")
	ConflictErr      = NewErrNo(ConflictErrCode, "Resource already exists")
)

// ConvertErr 将任意error转换为ErrNo 未知错误归为ServiceErr
func ConvertErr(err error) ErrNo {
	if err == nil {
		return Success
	}
	var e ErrNo
	if errors.As(err, &e) {
		return e
	}
	s := ServiceErr
	s.ErrMsg = err.Error()
	return s
}

// StatusCode 错误码到HTTP语义状态码的映射 供响应封装使用
func (e ErrNo) StatusCode() int64 {
	switch e.ErrCode {
	case SuccessCode:
		return 200
	case ParamErrCode:
		return 400
	case AuthorizationCode:
		return 403
	case NotFoundErrCode:
		return 404
	case ConflictErrCode:
		return 409
	default:
		return 500
	}
}
