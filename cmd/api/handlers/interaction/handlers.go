package handlers

import (
	"context"

	"VidTube.com/cmd/interaction/service"
	"VidTube.com/pkg/errno"
	"VidTube.com/pkg/response"
	"VidTube.com/pkg/storage"
	"VidTube.com/pkg/utils"
)

// InteractionHandler 评论与点赞的信封层 身份与参数由外部请求层解析完毕后传入
type InteractionHandler struct {
	comments *service.CommentService
	likes    *service.LikeService
}

func NewInteractionHandler(store storage.Store) *InteractionHandler {
	return &InteractionHandler{
		comments: service.NewCommentService(store),
		likes:    service.NewLikeService(store),
	}
}

type ListCommentsParam struct {
	VideoId  int64 `json:"videoId" validate:"omitempty,gt=0"`
	TweetId  int64 `json:"tweetId" validate:"omitempty,gt=0"`
	PageNum  int64 `json:"page" validate:"omitempty,gt=0"`
	PageSize int64 `json:"limit" validate:"omitempty,gt=0"`
}

type ListRepliesParam struct {
	CommentId int64 `json:"commentId" validate:"required,gt=0"`
	PageNum   int64 `json:"page" validate:"omitempty,gt=0"`
	PageSize  int64 `json:"limit" validate:"omitempty,gt=0"`
}

type CreateCommentParam struct {
	VideoId int64  `json:"videoId" validate:"omitempty,gt=0"`
	TweetId int64  `json:"tweetId" validate:"omitempty,gt=0"`
	Content string `json:"content" validate:"required"`
}

type CreateReplyParam struct {
	CommentId int64  `json:"commentId" validate:"required,gt=0"`
	Content   string `json:"content" validate:"required"`
}

type UpdateCommentParam struct {
	CommentId int64  `json:"commentId" validate:"required,gt=0"`
	Content   string `json:"content" validate:"required"`
}

type LikeParam struct {
	VideoId   int64 `json:"videoId" validate:"omitempty,gt=0"`
	TweetId   int64 `json:"tweetId" validate:"omitempty,gt=0"`
	CommentId int64 `json:"commentId" validate:"omitempty,gt=0"`
}

// ListComments 列表目标由参数中唯一的非零id决定 多给或不给都算参数错误
func (h *InteractionHandler) ListComments(ctx context.Context, callerId int64, param ListCommentsParam) *response.Response {
	if err := utils.ValidateStruct(param); err != nil {
		return response.Pack(err, nil, "")
	}
	if (param.VideoId == 0) == (param.TweetId == 0) {
		return response.Pack(errno.ParamErr.WithMessage("comment list needs exactly one of videoId and tweetId"), nil, "")
	}
	if param.TweetId != 0 {
		page, err := h.comments.ListTweetComments(ctx, param.TweetId, param.PageNum, param.PageSize, callerId)
		return response.Pack(err, page, "Comments fetched successfully")
	}
	page, err := h.comments.ListVideoComments(ctx, param.VideoId, param.PageNum, param.PageSize, callerId)
	return response.Pack(err, page, "Comments fetched successfully")
}

func (h *InteractionHandler) ListReplies(ctx context.Context, callerId int64, param ListRepliesParam) *response.Response {
	if err := utils.ValidateStruct(param); err != nil {
		return response.Pack(err, nil, "")
	}
	page, err := h.comments.ListReplies(ctx, param.CommentId, param.PageNum, param.PageSize, callerId)
	return response.Pack(err, page, "Replies fetched successfully")
}

func (h *InteractionHandler) AddComment(ctx context.Context, callerId int64, param CreateCommentParam) *response.Response {
	if err := utils.ValidateStruct(param); err != nil {
		return response.Pack(err, nil, "")
	}
	comment, err := h.comments.AddComment(ctx, param.VideoId, param.TweetId, param.Content, callerId)
	if err != nil {
		return response.Pack(err, nil, "")
	}
	return response.Created(comment, "comment added successfully")
}

func (h *InteractionHandler) AddReply(ctx context.Context, callerId int64, param CreateReplyParam) *response.Response {
	if err := utils.ValidateStruct(param); err != nil {
		return response.Pack(err, nil, "")
	}
	reply, err := h.comments.AddReply(ctx, param.CommentId, param.Content, callerId)
	if err != nil {
		return response.Pack(err, nil, "")
	}
	return response.Created(reply, "reply added successfully")
}

func (h *InteractionHandler) UpdateComment(ctx context.Context, callerId int64, param UpdateCommentParam) *response.Response {
	if err := utils.ValidateStruct(param); err != nil {
		return response.Pack(err, nil, "")
	}
	comment, err := h.comments.UpdateComment(ctx, param.CommentId, param.Content, callerId)
	return response.Pack(err, comment, "comment edited successfully")
}

func (h *InteractionHandler) DeleteComment(ctx context.Context, callerId, commentId int64) *response.Response {
	err := h.comments.DeleteComment(ctx, commentId, callerId)
	return response.Pack(err, map[string]any{"commentId": commentId}, "Comment deleted successfully")
}

// ToggleLike 目标类型由参数中唯一的非零id决定 多给或不给都算参数错误
func (h *InteractionHandler) ToggleLike(ctx context.Context, callerId int64, param LikeParam) *response.Response {
	if err := utils.ValidateStruct(param); err != nil {
		return response.Pack(err, nil, "")
	}
	var active bool
	var err error
	switch {
	case param.VideoId != 0 && param.TweetId == 0 && param.CommentId == 0:
		active, err = h.likes.ToggleVideoLike(ctx, param.VideoId, callerId)
	case param.TweetId != 0 && param.VideoId == 0 && param.CommentId == 0:
		active, err = h.likes.ToggleTweetLike(ctx, param.TweetId, callerId)
	case param.CommentId != 0 && param.VideoId == 0 && param.TweetId == 0:
		active, err = h.likes.ToggleCommentLike(ctx, param.CommentId, callerId)
	default:
		return response.Pack(errno.ParamErr.WithMessage("like needs exactly one target"), nil, "")
	}
	if err != nil {
		return response.Pack(err, nil, "")
	}
	message := "unliked successfully"
	if active {
		message = "liked successfully"
	}
	return response.Pack(nil, map[string]any{"liked": active}, message)
}
