package comment

import (
	"time"

	"github.com/NikitaSavelev/BlogDeck-Back/internal/aggregate"
)

type Comment struct {
	ID        string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CreatedAt time.Time
	PostID    string `gorm:"index"`
	UserID    string `gorm:"index"`
	UserLogin string
	Content   string
}

func (Comment) TableName() string {
	return "comments"
}

type ViewComment struct {
	ID        string              `json:"id"`
	Content   string              `json:"content"`
	UserID    string              `json:"userId"`
	UserLogin string              `json:"userLogin"`
	CreatedAt time.Time           `json:"createdAt"`
	LikesInfo aggregate.LikesInfo `json:"likesInfo"`
}

func toView(cm Comment, likes aggregate.LikesInfo) ViewComment {
	return ViewComment{
		ID:        cm.ID,
		Content:   cm.Content,
		UserID:    cm.UserID,
		UserLogin: cm.UserLogin,
		CreatedAt: cm.CreatedAt,
		LikesInfo: likes,
	}
}
