package post

import (
	"time"

	"github.com/NikitaSavelev/BlogDeck-Back/internal/aggregate"
)

type Post struct {
	ID               string `gorm:"primaryKey"`
	CreatedAt        time.Time
	Title            string
	ShortDescription string
	Content          string
	BlogID           string `gorm:"index"`
	BlogName         string
	ImageURL         string
}

func (Post) TableName() string {
	return "posts"
}

// ViewPost carries the post plus its viewer-specific likes view.
type ViewPost struct {
	ID                string                      `json:"id"`
	Title             string                      `json:"title"`
	ShortDescription  string                      `json:"shortDescription"`
	Content           string                      `json:"content"`
	BlogID            string                      `json:"blogId"`
	BlogName          string                      `json:"blogName"`
	ImageURL          string                      `json:"imageUrl,omitempty"`
	CreatedAt         time.Time                   `json:"createdAt"`
	ExtendedLikesInfo aggregate.ExtendedLikesInfo `json:"extendedLikesInfo"`
}

func toView(p Post, likes aggregate.ExtendedLikesInfo) ViewPost {
	return ViewPost{
		ID:                p.ID,
		Title:             p.Title,
		ShortDescription:  p.ShortDescription,
		Content:           p.Content,
		BlogID:            p.BlogID,
		BlogName:          p.BlogName,
		ImageURL:          p.ImageURL,
		CreatedAt:         p.CreatedAt,
		ExtendedLikesInfo: likes,
	}
}
