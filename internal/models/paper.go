package models

import "time"

// Paper is one scraped listing entry. Rows are written once by the collector
// and never updated: like/comment counts are a snapshot of scrape time.
type Paper struct {
	ID          string    `gorm:"primaryKey;size:50" json:"id"`
	Title       string    `gorm:"size:500;index" json:"title"`
	Authors     string    `gorm:"type:text" json:"authors"`
	Abstract    string    `gorm:"type:text" json:"abstract"`
	PublishTime string    `gorm:"type:text" json:"publish_time"`
	PDFLink     string    `gorm:"type:text" json:"pdf_link"`
	Year        int       `json:"year"`
	Month       int       `gorm:"index" json:"month"`
	LikeNum     int       `gorm:"default:0" json:"like_num"`
	AuthorNum   string    `gorm:"size:100" json:"author_num"`
	GithubNum   string    `gorm:"size:100" json:"github_num"`
	CommentNum  int       `gorm:"default:0" json:"comment_num"`
	ImgLink     string    `gorm:"type:text" json:"img_link"`
	CreatedAt   time.Time `json:"created_at"`
}
