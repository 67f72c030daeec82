package model

// Playlist VideoIds为保持插入序的集合 重复加入为空操作
type Playlist struct {
	Id          int64   `json:"id"`
	OwnerId     int64   `json:"ownerId"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	VideoIds    []int64 `json:"videoIds"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}
