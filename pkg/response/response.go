package response

import (
	"VidTube.com/pkg/errno"
)

// Response 统一响应信封
type Response struct {
	StatusCode int64  `json:"statusCode"`
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	Data       any    `json:"data"`
}

// Pack 按错误码封装响应 调用层只需要传业务结果与错误
func Pack(err error, data any, message string) *Response {
	e := errno.ConvertErr(err)
	if e.ErrCode != errno.SuccessCode {
		return &Response{
			StatusCode: e.StatusCode(),
			Success:    false,
			Message:    e.ErrMsg,
			Data:       nil,
		}
	}
	if message == "" {
		message = e.ErrMsg
	}
	return &Response{
		StatusCode: 200,
		Success:    true,
		Message:    message,
		Data:       data,
	}
}

// Created 资源创建成功
func Created(data any, message string) *Response {
	return &Response{
		StatusCode: 201,
		Success:    true,
		Message:    message,
		Data:       data,
	}
}
