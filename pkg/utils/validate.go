package utils

import (
	"VidTube.com/pkg/errno"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateStruct 校验请求参数结构体 失败归为参数错误
func ValidateStruct(v any) error {
	if err := validate.Struct(v); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
			return errno.ParamErr.WithMessage("invalid field: " + fieldErrs[0].Field())
		}
		return errno.ParamErr.WithMessage(err.Error())
	}
	return nil
}
