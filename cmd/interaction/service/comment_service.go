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

type CommentService struct {
	store    storage.Store
	executor *view.Executor
}

func NewCommentService(store storage.Store) *CommentService {
	return &CommentService{
		store:    store,
		executor: view.NewExecutor(store),
	}
}

// validateContent 评论内容非空且不超长
func (service *CommentService) validateContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return errno.ParamErr.WithMessage("Comment content cannot be empty")
	}
	if utf8.RuneCountInString(content) > constants.MaxCommentLength {
		return errno.ParamErr.WithMessage("Comment too long, maximum 500 characters allowed")
	}
	return nil
}

// commentListSpec 评论列表视图 点赞联结+派生字段+属主投影
func commentListSpec(match storage.Predicate) view.Spec {
	return view.Spec{
		Source: constants.CommentCollection,
		Match:  match,
		Joins: []view.Join{
			{Name: "owner", From: constants.UserCollection, LocalField: "ownerId", ForeignField: "id"},
			{Name: "likes", From: constants.LikeCollection, LocalField: "id", ForeignField: "commentId"},
		},
		Derives: []view.Derive{
			view.Count("likesCount", "likes"),
			view.First("owner", "owner"),
			view.ContainsCaller("isLiked", "likes", "likedById"),
		},
		Sort: &view.SortKey{Field: "createdAt", Desc: true},
		Project: []string{
			"id", "parentId", "content", "createdAt", "likesCount", "isLiked",
			"owner.id", "owner.username", "owner.fullName", "owner.avatar.url",
		},
	}
}

// ListVideoComments 视频的顶级评论 parentId为0 回复不在此出现
func (service *CommentService) ListVideoComments(ctx context.Context, videoId, pageNum, pageSize, callerId int64) (*view.Page, error) {
	if _, err := service.store.FindByID(ctx, constants.VideoCollection, videoId); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, errno.NotFoundErr.WithMessage("Video not found")
		}
		return nil, errors.WithMessage(err, "Failed to load video")
	}
	spec := commentListSpec(storage.Predicate{"videoId": videoId, "parentId": constants.RootParentId})
	return service.executor.Paginate(ctx, spec, callerId, pageNum, pageSize)
}

// ListTweetComments 推文的顶级评论
func (service *CommentService) ListTweetComments(ctx context.Context, tweetId, pageNum, pageSize, callerId int64) (*view.Page, error) {
	if _, err := service.store.FindByID(ctx, constants.TweetCollection, tweetId); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, errno.NotFoundErr.WithMessage("Tweet not found")
		}
		return nil, errors.WithMessage(err, "Failed to load tweet")
	}
	spec := commentListSpec(storage.Predicate{"tweetId": tweetId, "parentId": constants.RootParentId})
	return service.executor.Paginate(ctx, spec, callerId, pageNum, pageSize)
}

// ListReplies 某条评论的一层子评论 独立分页 默认窗口更小
// 树按请求逐层懒解析 不做递归抓取
func (service *CommentService) ListReplies(ctx context.Context, commentId, pageNum, pageSize, callerId int64) (*view.Page, error) {
	if _, err := service.store.FindByID(ctx, constants.CommentCollection, commentId); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, errno.NotFoundErr.WithMessage("Comment not found")
		}
		return nil, errors.WithMessage(err, "Failed to load comment")
	}
	if pageSize < 1 {
		pageSize = constants.ReplyPageSize
	}
	spec := commentListSpec(storage.Predicate{"parentId": commentId})
	return service.executor.Paginate(ctx, spec, callerId, pageNum, pageSize)
}

// AddComment 在视频或推文下新增顶级评论 根目标二选一
func (service *CommentService) AddComment(ctx context.Context, videoId, tweetId int64, content string, callerId int64) (*model.Comment, error) {
	if callerId == constants.AnonymousUserId {
		return nil, errno.AuthorizationErr.WithMessage("authentication required")
	}
	if err := service.validateContent(content); err != nil {
		return nil, err
	}
	if (videoId == 0) == (tweetId == 0) {
		return nil, errno.ParamErr.WithMessage("Comment needs exactly one of videoId and tweetId")
	}
	if videoId != 0 {
		if _, err := service.store.FindByID(ctx, constants.VideoCollection, videoId); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, errno.NotFoundErr.WithMessage("Video not found")
			}
			return nil, errors.WithMessage(err, "Failed to load video")
		}
	} else {
		if _, err := service.store.FindByID(ctx, constants.TweetCollection, tweetId); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, errno.NotFoundErr.WithMessage("Tweet not found")
			}
			return nil, errors.WithMessage(err, "Failed to load tweet")
		}
	}
	return service.insertComment(ctx, &model.Comment{
		Id:        utils.NewID(),
		OwnerId:   callerId,
		VideoId:   videoId,
		TweetId:   tweetId,
		ParentId:  constants.RootParentId,
		Content:   content,
		CreatedAt: time.Now().Format(constants.DataFormate),
		UpdatedAt: time.Now().Format(constants.DataFormate),
	})
}

// AddReply 回复评论 根目标在创建时从父评论继承
func (service *CommentService) AddReply(ctx context.Context, parentCommentId int64, content string, callerId int64) (*model.Comment, error) {
	if callerId == constants.AnonymousUserId {
		return nil, errno.AuthorizationErr.WithMessage("authentication required")
	}
	if err := service.validateContent(content); err != nil {
		return nil, err
	}
	parentDoc, err := service.store.FindByID(ctx, constants.CommentCollection, parentCommentId)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, errno.NotFoundErr.WithMessage("Comment not found")
		}
		return nil, errors.WithMessage(err, "Failed to load parent comment")
	}
	var parent model.Comment
	if err := storage.Decode(parentDoc, &parent); err != nil {
		return nil, errors.WithMessage(err, "Failed to decode parent comment")
	}
	return service.insertComment(ctx, &model.Comment{
		Id:        utils.NewID(),
		OwnerId:   callerId,
		VideoId:   parent.VideoId,
		TweetId:   parent.TweetId,
		ParentId:  parent.Id,
		Content:   content,
		CreatedAt: time.Now().Format(constants.DataFormate),
		UpdatedAt: time.Now().Format(constants.DataFormate),
	})
}

func (service *CommentService) insertComment(ctx context.Context, comment *model.Comment) (*model.Comment, error) {
	doc, err := storage.Encode(comment)
	if err != nil {
		return nil, err
	}
	if err := service.store.Create(ctx, constants.CommentCollection, doc); err != nil {
		logrus.Errorf("create comment failed: %v", err)
		return nil, errors.WithMessage(err, "Failed to add comment please try again")
	}
	return comment, nil
}

// UpdateComment 仅属主可编辑
func (service *CommentService) UpdateComment(ctx context.Context, commentId int64, content string, callerId int64) (*model.Comment, error) {
	if err := service.validateContent(content); err != nil {
		return nil, err
	}
	doc, err := service.store.FindByID(ctx, constants.CommentCollection, commentId)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, errno.NotFoundErr.WithMessage("Comment not found")
		}
		return nil, errors.WithMessage(err, "Failed to load comment")
	}
	var comment model.Comment
	if err := storage.Decode(doc, &comment); err != nil {
		return nil, errors.WithMessage(err, "Failed to decode comment")
	}
	if err := security.AuthorizeMutation(comment.OwnerId, callerId); err != nil {
		return nil, err
	}
	comment.Content = content
	comment.UpdatedAt = time.Now().Format(constants.DataFormate)
	patch := storage.Doc{"content": comment.Content, "updatedAt": comment.UpdatedAt}
	if err := service.store.UpdateByID(ctx, constants.CommentCollection, commentId, patch); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			// 鉴权与写之间被并发删除 按未找到返回
			return nil, errno.NotFoundErr.WithMessage("Comment not found")
		}
		return nil, errors.WithMessage(err, "Failed to edit comment, please try again")
	}
	return &comment, nil
}

// DeleteComment 仅属主可删除 级联删除指向它的点赞与整棵回复子树
func (service *CommentService) DeleteComment(ctx context.Context, commentId, callerId int64) error {
	doc, err := service.store.FindByID(ctx, constants.CommentCollection, commentId)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return errno.NotFoundErr.WithMessage("Comment not found")
		}
		return errors.WithMessage(err, "Failed to load comment")
	}
	if err := security.AuthorizeMutation(storage.AsInt64(doc["ownerId"]), callerId); err != nil {
		return err
	}

	// 宽度优先收集子树 树为森林无环 深度任意
	ids := []int64{commentId}
	for cursor := 0; cursor < len(ids); cursor++ {
		children, err := service.store.FindMany(ctx, constants.CommentCollection,
			storage.Predicate{"parentId": ids[cursor]}, nil)
		if err != nil {
			return errors.WithMessage(err, "Failed to collect replies")
		}
		for _, child := range children {
			ids = append(ids, storage.AsInt64(child["id"]))
		}
	}

	for _, id := range ids {
		if _, err := service.store.DeleteMany(ctx, constants.LikeCollection, storage.Predicate{"commentId": id}); err != nil {
			return errors.WithMessage(err, "Failed to delete comment likes")
		}
		if err := service.store.DeleteByID(ctx, constants.CommentCollection, id); err != nil && !errors.Is(err, storage.ErrNotFound) {
			return errors.WithMessage(err, "Failed to delete comment")
		}
	}
	return nil
}
