package service

import (
	"context"

	"VidTube.com/pkg/constants"
	"VidTube.com/pkg/edge"
	"VidTube.com/pkg/errno"
	"VidTube.com/pkg/storage"
	"VidTube.com/pkg/view"
	"github.com/pkg/errors"
)

// SubscriptionService 订阅边的翻转与订阅者视图
type SubscriptionService struct {
	store    storage.Store
	executor *view.Executor
	toggler  *edge.Toggler
}

func NewSubscriptionService(store storage.Store) *SubscriptionService {
	return &SubscriptionService{
		store:    store,
		executor: view.NewExecutor(store),
		toggler:  edge.NewToggler(store),
	}
}

// ToggleSubscription 订阅/退订频道 自订阅拒绝
func (service *SubscriptionService) ToggleSubscription(ctx context.Context, channelId, callerId int64) (bool, error) {
	if callerId == constants.AnonymousUserId {
		return false, errno.AuthorizationErr.WithMessage("authentication required")
	}
	if channelId <= 0 {
		return false, errno.ParamErr.WithMessage("invalid channel id")
	}
	if callerId == channelId {
		return false, errno.ParamErr.WithMessage("cannot subscribe to your own channel")
	}
	if _, err := service.store.FindByID(ctx, constants.UserCollection, channelId); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return false, errno.NotFoundErr.WithMessage("Channel not found")
		}
		return false, errors.WithMessage(err, "Failed to load channel")
	}
	return service.toggler.Toggle(ctx, constants.SubscriptionCollection,
		"subscriberId", callerId, "channelId", channelId, nil)
}

// CheckSubscriptionStatus 当前调用者对频道的订阅状态
func (service *SubscriptionService) CheckSubscriptionStatus(ctx context.Context, channelId, callerId int64) (bool, error) {
	if channelId <= 0 {
		return false, errno.ParamErr.WithMessage("invalid channel id")
	}
	return service.toggler.IsActive(ctx, constants.SubscriptionCollection,
		"subscriberId", callerId, "channelId", channelId)
}
