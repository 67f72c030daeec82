package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"VidTube.com/cmd/model"
	"VidTube.com/pkg/constants"
	"VidTube.com/pkg/errno"
	"VidTube.com/pkg/security"
	"VidTube.com/pkg/storage"
	"VidTube.com/pkg/utils"
	"VidTube.com/pkg/view"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type TweetService struct {
	store    storage.Store
	executor *view.Executor
}

func NewTweetService(store storage.Store) *TweetService {
	return &TweetService{
		store:    store,
		executor: view.NewExecutor(store),
	}
}

func (service *TweetService) validateContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return errno.ParamErr.WithMessage("content is required")
	}
	if utf8.RuneCountInString(content) > constants.MaxTweetLength {
		return errno.ParamErr.WithMessage("Tweet too long, maximum 280 characters allowed")
	}
	return nil
}

// CreateTweet 内容非空
func (service *TweetService) CreateTweet(ctx context.Context, content string, callerId int64) (*model.Tweet, error) {
	if callerId == constants.AnonymousUserId {
		return nil, errno.AuthorizationErr.WithMessage("authentication required")
	}
	if err := service.validateContent(content); err != nil {
		return nil, err
	}
	tweet := &model.Tweet{
		Id:        utils.NewID(),
		OwnerId:   callerId,
		Content:   content,
		CreatedAt: time.Now().Format(constants.DataFormate),
		UpdatedAt: time.Now().Format(constants.DataFormate),
	}
	doc, err := storage.Encode(tweet)
	if err != nil {
		return nil, err
	}
	if err := service.store.Create(ctx, constants.TweetCollection, doc); err != nil {
		logrus.Errorf("create tweet failed: %v", err)
		return nil, errors.WithMessage(err, "failed to create tweet please try again")
	}
	return tweet, nil
}

// UpdateTweet 仅属主可编辑
func (service *TweetService) UpdateTweet(ctx context.Context, tweetId int64, content string, callerId int64) (*model.Tweet, error) {
	if err := service.validateContent(content); err != nil {
		return nil, err
	}
	tweet, err := service.loadTweet(ctx, tweetId)
	if err != nil {
		return nil, err
	}
	if err := security.AuthorizeMutation(tweet.OwnerId, callerId); err != nil {
		return nil, err
	}
	tweet.Content = content
	tweet.UpdatedAt = time.Now().Format(constants.DataFormate)
	patch := storage.Doc{"content": content, "updatedAt": tweet.UpdatedAt}
	if err := service.store.UpdateByID(ctx, constants.TweetCollection, tweetId, patch); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, errno.NotFoundErr.WithMessage("tweet not found")
		}
		return nil, errors.WithMessage(err, "failed to edit tweet please try again")
	}
	return tweet, nil
}

// DeleteTweet 仅属主可删除 点赞边一并清除
func (service *TweetService) DeleteTweet(ctx context.Context, tweetId, callerId int64) error {
	tweet, err := service.loadTweet(ctx, tweetId)
	if err != nil {
		return err
	}
	if err := security.AuthorizeMutation(tweet.OwnerId, callerId); err != nil {
		return err
	}
	if err := service.store.DeleteByID(ctx, constants.TweetCollection, tweetId); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return errno.NotFoundErr.WithMessage("tweet not found")
		}
		return errors.WithMessage(err, "failed to delete tweet")
	}
	if _, err := service.store.DeleteMany(ctx, constants.LikeCollection, storage.Predicate{"tweetId": tweetId}); err != nil {
		return errors.WithMessage(err, "failed to delete tweet likes")
	}
	return nil
}

// GetUserTweets 用户推文流 相对调用者派生点赞状态
func (service *TweetService) GetUserTweets(ctx context.Context, userId, pageNum, pageSize, callerId int64) (*view.Page, error) {
	if userId <= 0 {
		return nil, errno.ParamErr.WithMessage("invalid user id")
	}
	spec := view.Spec{
		Source: constants.TweetCollection,
		Match:  storage.Predicate{"ownerId": userId},
		Joins: []view.Join{
			{
				Name:         "ownerDetails",
				From:         constants.UserCollection,
				LocalField:   "ownerId",
				ForeignField: "id",
				Project:      []string{"id", "username", "avatar.url"},
			},
			{
				Name:         "likeDetails",
				From:         constants.LikeCollection,
				LocalField:   "id",
				ForeignField: "tweetId",
				Project:      []string{"likedById"},
			},
		},
		Derives: []view.Derive{
			view.Count("likesCount", "likeDetails"),
			view.First("ownerDetails", "ownerDetails"),
			view.ContainsCaller("isLiked", "likeDetails", "likedById"),
		},
		Sort: &view.SortKey{Field: "createdAt", Desc: true},
		Project: []string{
			"id", "content", "ownerDetails", "likesCount", "createdAt", "isLiked",
		},
	}
	return service.executor.Paginate(ctx, spec, callerId, pageNum, pageSize)
}

func (service *TweetService) loadTweet(ctx context.Context, tweetId int64) (*model.Tweet, error) {
	if tweetId <= 0 {
		return nil, errno.ParamErr.WithMessage("invalid tweet id")
	}
	doc, err := service.store.FindByID(ctx, constants.TweetCollection, tweetId)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, errno.NotFoundErr.WithMessage("tweet not found")
		}
		return nil, errors.WithMessage(err, "failed to load tweet")
	}
	var tweet model.Tweet
	if err := storage.Decode(doc, &tweet); err != nil {
		return nil, errors.WithMessage(err, "failed to decode tweet")
	}
	return &tweet, nil
}
