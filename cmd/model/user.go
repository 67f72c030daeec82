package model

// MediaRef 外部介质存储产出的不透明引用 核心只透传不解释
type MediaRef struct {
	URL string `json:"url"`
}

type User struct {
	Id           int64    `json:"id"`
	Username     string   `json:"username"`
	Email        string   `json:"email"`
	FullName     string   `json:"fullName"`
	PasswordHash string   `json:"passwordHash"`
	Avatar       MediaRef `json:"avatar"`
	CoverImage   MediaRef `json:"coverImage"`
	CreatedAt    string   `json:"createdAt"`
	UpdatedAt    string   `json:"updatedAt"`
}
