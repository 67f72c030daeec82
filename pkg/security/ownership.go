package security

import (
	"VidTube.com/pkg/constants"
	"VidTube.com/pkg/errno"
)

// AuthorizeMutation 所有权闸门 资源属主与调用者不一致时拒绝
// 授权是策略判断 不是并发原语 真正的排他性由存储层唯一约束兜底
func AuthorizeMutation(ownerId, callerId int64) error {
	if callerId == constants.AnonymousUserId {
		return errno.AuthorizationErr.WithMessage("authentication required")
	}
	if ownerId != callerId {
		return errno.AuthorizationErr
	}
	return nil
}
