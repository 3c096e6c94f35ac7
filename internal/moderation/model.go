package moderation

import "time"

// UserBan is the platform-wide ban state of one user. A row with
// Banned=false is equivalent to no row; unban keeps the row but clears
// the date and reason.
type UserBan struct {
	UserID    string `gorm:"primaryKey"`
	Banned    bool
	BanDate   *time.Time
	BanReason *string
}

func (UserBan) TableName() string {
	return "user_bans"
}

// BlogBan scopes a ban to one blog: the user keeps their standing
// everywhere else.
type BlogBan struct {
	ID        string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	BlogID    string `gorm:"uniqueIndex:idx_blog_user"`
	UserID    string `gorm:"uniqueIndex:idx_blog_user"`
	Banned    bool
	BanDate   *time.Time
	BanReason *string
}

func (BlogBan) TableName() string {
	return "blog_bans"
}
