package handlers

import (
	"context"

	"VidTube.com/cmd/relation/service"
	"VidTube.com/pkg/response"
	"VidTube.com/pkg/storage"
	"VidTube.com/pkg/utils"
)

// RelationHandler 订阅边与订阅者视图的信封层
type RelationHandler struct {
	subscriptions *service.SubscriptionService
}

func NewRelationHandler(store storage.Store) *RelationHandler {
	return &RelationHandler{
		subscriptions: service.NewSubscriptionService(store),
	}
}

type ToggleSubscriptionParam struct {
	ChannelId int64 `json:"channelId" validate:"required,gt=0"`
}

type SubscriberListParam struct {
	ChannelId int64 `json:"channelId" validate:"required,gt=0"`
	PageNum   int64 `json:"page" validate:"omitempty,gt=0"`
	PageSize  int64 `json:"limit" validate:"omitempty,gt=0"`
}

type SubscribedChannelsParam struct {
	SubscriberId int64 `json:"subscriberId" validate:"required,gt=0"`
	PageNum      int64 `json:"page" validate:"omitempty,gt=0"`
	PageSize     int64 `json:"limit" validate:"omitempty,gt=0"`
}

func (h *RelationHandler) ToggleSubscription(ctx context.Context, callerId int64, param ToggleSubscriptionParam) *response.Response {
	if err := utils.ValidateStruct(param); err != nil {
		return response.Pack(err, nil, "")
	}
	active, err := h.subscriptions.ToggleSubscription(ctx, param.ChannelId, callerId)
	if err != nil {
		return response.Pack(err, nil, "")
	}
	message := "unsubscribed successfully"
	if active {
		message = "subscribed successfully"
	}
	return response.Pack(nil, map[string]any{"subscribed": active}, message)
}

func (h *RelationHandler) GetChannelSubscribers(ctx context.Context, callerId int64, param SubscriberListParam) *response.Response {
	if err := utils.ValidateStruct(param); err != nil {
		return response.Pack(err, nil, "")
	}
	page, err := h.subscriptions.GetChannelSubscribers(ctx, param.ChannelId, param.PageNum, param.PageSize, callerId)
	return response.Pack(err, page, "subscribers fetched successfully")
}

func (h *RelationHandler) GetSubscribedChannels(ctx context.Context, callerId int64, param SubscribedChannelsParam) *response.Response {
	if err := utils.ValidateStruct(param); err != nil {
		return response.Pack(err, nil, "")
	}
	page, err := h.subscriptions.GetSubscribedChannels(ctx, param.SubscriberId, param.PageNum, param.PageSize, callerId)
	return response.Pack(err, page, "subscribed channels fetched successfully")
}

func (h *RelationHandler) CheckSubscriptionStatus(ctx context.Context, callerId int64, param ToggleSubscriptionParam) *response.Response {
	if err := utils.ValidateStruct(param); err != nil {
		return response.Pack(err, nil, "")
	}
	subscribed, err := h.subscriptions.CheckSubscriptionStatus(ctx, param.ChannelId, callerId)
	return response.Pack(err, map[string]any{"subscribed": subscribed}, "Subscription status fetched")
}
