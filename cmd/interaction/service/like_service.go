package service

import (
	"context"

	"VidTube.com/pkg/constants"
	"VidTube.com/pkg/edge"
	"VidTube.com/pkg/errno"
	"VidTube.com/pkg/storage"
	"github.com/pkg/errors"
)

// LikeService 点赞边的幂等翻转 目标类型由端点固定 不做推断
type LikeService struct {
	store   storage.Store
	toggler *edge.Toggler
}

func NewLikeService(store storage.Store) *LikeService {
	return &LikeService{
		store:   store,
		toggler: edge.NewToggler(store),
	}
}

func (service *LikeService) ToggleVideoLike(ctx context.Context, videoId, callerId int64) (bool, error) {
	return service.toggle(ctx, constants.VideoCollection, "videoId", videoId, callerId, "Video not found")
}

func (service *LikeService) ToggleTweetLike(ctx context.Context, tweetId, callerId int64) (bool, error) {
	return service.toggle(ctx, constants.TweetCollection, "tweetId", tweetId, callerId, "Tweet not found")
}

func (service *LikeService) ToggleCommentLike(ctx context.Context, commentId, callerId int64) (bool, error) {
	return service.toggle(ctx, constants.CommentCollection, "commentId", commentId, callerId, "Comment not found")
}

func (service *LikeService) toggle(ctx context.Context, targetCollection, targetField string, targetId, callerId int64, missing string) (bool, error) {
	if callerId == constants.AnonymousUserId {
		return false, errno.AuthorizationErr.WithMessage("authentication required")
	}
	if targetId <= 0 {
		return false, errno.ParamErr.WithMessage("invalid target id")
	}
	if _, err := service.store.FindByID(ctx, targetCollection, targetId); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return false, errno.NotFoundErr.WithMessage(missing)
		}
		return false, errors.WithMessage(err, "Failed to load like target")
	}
	return service.toggler.Toggle(ctx, constants.LikeCollection, "likedById", callerId, targetField, targetId, nil)
}
