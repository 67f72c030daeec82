package model

type Tweet struct {
	Id        int64  `json:"id"`
	OwnerId   int64  `json:"ownerId"`
	Content   string `json:"content"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}
