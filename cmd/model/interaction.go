package model

// Comment 根目标为Video或Tweet二选一 ParentId为0表示顶级评论
// 回复在创建时继承父评论的根目标 读取时不再推导
type Comment struct {
	Id        int64  `json:"id"`
	OwnerId   int64  `json:"ownerId"`
	VideoId   int64  `json:"videoId"`
	TweetId   int64  `json:"tweetId"`
	ParentId  int64  `json:"parentId"`
	Content   string `json:"content"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// Like 用户到单一目标(视频/推文/评论)的边 (likedById,目标)唯一
type Like struct {
	Id        int64  `json:"id"`
	LikedById int64  `json:"likedById"`
	VideoId   int64  `json:"videoId"`
	TweetId   int64  `json:"tweetId"`
	CommentId int64  `json:"commentId"`
	CreatedAt string `json:"createdAt"`
}
