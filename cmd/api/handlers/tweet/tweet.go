package handlers

import (
	"context"

	"VidTube.com/cmd/tweet/service"
	"VidTube.com/pkg/response"
	"VidTube.com/pkg/storage"
	"VidTube.com/pkg/utils"
)

// TweetHandler 推文的信封层
type TweetHandler struct {
	tweets *service.TweetService
}

func NewTweetHandler(store storage.Store) *TweetHandler {
	return &TweetHandler{
		tweets: service.NewTweetService(store),
	}
}

type CreateTweetParam struct {
	Content string `json:"content" validate:"required"`
}

type UpdateTweetParam struct {
	TweetId int64  `json:"tweetId" validate:"required,gt=0"`
	Content string `json:"content" validate:"required"`
}

type UserTweetsParam struct {
	UserId   int64 `json:"userId" validate:"required,gt=0"`
	PageNum  int64 `json:"page" validate:"omitempty,gt=0"`
	PageSize int64 `json:"limit" validate:"omitempty,gt=0"`
}

func (h *TweetHandler) CreateTweet(ctx context.Context, callerId int64, param CreateTweetParam) *response.Response {
	if err := utils.ValidateStruct(param); err != nil {
		return response.Pack(err, nil, "")
	}
	tweet, err := h.tweets.CreateTweet(ctx, param.Content, callerId)
	if err != nil {
		return response.Pack(err, nil, "")
	}
	return response.Created(tweet, "Tweet created successfully")
}

func (h *TweetHandler) UpdateTweet(ctx context.Context, callerId int64, param UpdateTweetParam) *response.Response {
	if err := utils.ValidateStruct(param); err != nil {
		return response.Pack(err, nil, "")
	}
	tweet, err := h.tweets.UpdateTweet(ctx, param.TweetId, param.Content, callerId)
	return response.Pack(err, tweet, "tweet updated successfully")
}

func (h *TweetHandler) DeleteTweet(ctx context.Context, callerId, tweetId int64) *response.Response {
	err := h.tweets.DeleteTweet(ctx, tweetId, callerId)
	return response.Pack(err, map[string]any{"tweetId": tweetId}, "tweet deleted successfully")
}

func (h *TweetHandler) GetUserTweets(ctx context.Context, callerId int64, param UserTweetsParam) *response.Response {
	if err := utils.ValidateStruct(param); err != nil {
		return response.Pack(err, nil, "")
	}
	page, err := h.tweets.GetUserTweets(ctx, param.UserId, param.PageNum, param.PageSize, callerId)
	return response.Pack(err, page, "tweets fetched successfully")
}
