package storage

import (
	"context"
	"errors"

	"VidTube.com/pkg/constants"
)

// Doc 一条以字段名为键的记录 数值经Normalize统一为int64/float64
type Doc = map[string]any

// Predicate 等值过滤条件 值为[]int64时表示IN语义
type Predicate = map[string]any

type Sort struct {
	Field string
	Desc  bool
}

type FindOptions struct {
	Sort  []Sort
	Skip  int64
	Limit int64
}

var (
	ErrNotFound  = errors.New("storage: document not found")
	ErrDuplicate = errors.New("storage: duplicate key")
)

// Store 对命名集合的最小数据访问契约 核心只依赖该接口 不依赖任何具体存储的查询语言
type Store interface {
	FindByID(ctx context.Context, collection string, id int64) (Doc, error)
	FindMany(ctx context.Context, collection string, pred Predicate, opts *FindOptions) ([]Doc, error)
	Count(ctx context.Context, collection string, pred Predicate) (int64, error)
	Create(ctx context.Context, collection string, doc Doc) error
	UpdateByID(ctx context.Context, collection string, id int64, patch Doc) error
	DeleteByID(ctx context.Context, collection string, id int64) error
	DeleteMany(ctx context.Context, collection string, pred Predicate) (int64, error)
}

// UniqueIndex 稀疏唯一约束 所有字段均为非零值的文档参与约束
type UniqueIndex struct {
	Collection string
	Fields     []string
}

// EdgeIndexes 边集合的唯一约束 并发toggle的重复插入由此收敛为ErrDuplicate
var EdgeIndexes = []UniqueIndex{
	{Collection: constants.LikeCollection, Fields: []string{"likedById", "videoId"}},
	{Collection: constants.LikeCollection, Fields: []string{"likedById", "tweetId"}},
	{Collection: constants.LikeCollection, Fields: []string{"likedById", "commentId"}},
	{Collection: constants.SubscriptionCollection, Fields: []string{"subscriberId", "channelId"}},
}

// UserIndexes 用户身份字段的唯一约束
var UserIndexes = []UniqueIndex{
	{Collection: constants.UserCollection, Fields: []string{"username"}},
	{Collection: constants.UserCollection, Fields: []string{"email"}},
}

// Collections 全部命名集合
var Collections = []string{
	constants.UserCollection,
	constants.VideoCollection,
	constants.TweetCollection,
	constants.CommentCollection,
	constants.LikeCollection,
	constants.SubscriptionCollection,
	constants.PlaylistCollection,
}
