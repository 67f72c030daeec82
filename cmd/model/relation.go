package model

// Subscription 用户到频道(亦为用户)的边 (subscriberId,channelId)唯一
// 自订阅在服务层拒绝
type Subscription struct {
	Id           int64  `json:"id"`
	SubscriberId int64  `json:"subscriberId"`
	ChannelId    int64  `json:"channelId"`
	CreatedAt    string `json:"createdAt"`
}
