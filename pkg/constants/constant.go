package constants

// DataFormate 统一的时间字符串格式，按字典序排序即为时间序
const DataFormate = "2006-01-02 15:04:05"

// 集合名称
const (
	UserCollection         = "users"
	VideoCollection        = "videos"
	TweetCollection        = "tweets"
	CommentCollection      = "comments"
	LikeCollection         = "likes"
	SubscriptionCollection = "subscriptions"
	PlaylistCollection     = "playlists"
)

// 分页默认值
const (
	DefaultPageNum   = int64(1)
	DefaultPageSize  = int64(10)
	ReplyPageSize    = int64(2) // 子评论列表默认窗口更小
	MaxPageSize      = int64(100)
	MaxCommentLength = 500
	MaxTweetLength   = 280
)

// 匿名调用者 调用者身份缺失时派生字段一律为 false
const AnonymousUserId = int64(0)

// 顶级评论的 parentId
const RootParentId = int64(0)
