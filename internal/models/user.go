package models

import (
	"time"

	"gorm.io/datatypes"
)

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"size:50;uniqueIndex;not null" json:"username"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Email        string    `gorm:"size:100" json:"email"`
	CreatedAt    time.Time `json:"created_at"`
}

// History records one successful assisted-read request. Rows are append-only
// and carry a snapshot of the paper's display fields plus the structured
// analysis the model produced at that moment.
type History struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	UserID     uint           `gorm:"index;not null" json:"user_id"`
	ArxivID    string         `gorm:"size:50;not null" json:"arxiv_id"`
	Title      string         `gorm:"size:500" json:"title"`
	LikeNum    int            `gorm:"default:0" json:"like_num"`
	GithubNum  string         `gorm:"size:100" json:"github_num"`
	ImgLink    string         `gorm:"type:text" json:"img_link"`
	Analysis   datatypes.JSON `gorm:"type:json" json:"analysis"`
	AccessTime time.Time      `gorm:"index" json:"access_time"`
}
