package model

type Video struct {
	Id          int64    `json:"id"`
	OwnerId     int64    `json:"ownerId"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	VideoFile   MediaRef `json:"videoFile"`
	Thumbnail   MediaRef `json:"thumbnail"`
	Duration    int64    `json:"duration"`
	Views       int64    `json:"views"`
	IsPublished bool     `json:"isPublished"`
	CreatedAt   string   `json:"createdAt"`
	UpdatedAt   string   `json:"updatedAt"`
}
