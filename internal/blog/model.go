package blog

import "time"

type Blog struct {
	ID           string `gorm:"primaryKey"`
	CreatedAt    time.Time
	Name         string `gorm:"index"`
	Description  string
	WebsiteURL   string
	WallpaperURL string
	OwnerID      string `gorm:"index"`
	OwnerLogin   string
	Banned       bool `gorm:"index"`
	BanDate      *time.Time
}

func (Blog) TableName() string {
	return "blogs"
}

// ViewBlog is the public JSON shape.
type ViewBlog struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	WebsiteURL   string    `json:"websiteUrl"`
	WallpaperURL string    `json:"wallpaperUrl,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// SaViewBlog adds owner and ban info for the admin listing.
type SaViewBlog struct {
	ViewBlog
	BlogOwnerInfo OwnerInfo   `json:"blogOwnerInfo"`
	BanInfo       BlogBanInfo `json:"banInfo"`
}

type OwnerInfo struct {
	UserID    string `json:"userId"`
	UserLogin string `json:"userLogin"`
}

type BlogBanInfo struct {
	IsBanned bool       `json:"isBanned"`
	BanDate  *time.Time `json:"banDate"`
}

func toView(b Blog) ViewBlog {
	return ViewBlog{
		ID:           b.ID,
		Name:         b.Name,
		Description:  b.Description,
		WebsiteURL:   b.WebsiteURL,
		WallpaperURL: b.WallpaperURL,
		CreatedAt:    b.CreatedAt,
	}
}

func toSaView(b Blog) SaViewBlog {
	return SaViewBlog{
		ViewBlog:      toView(b),
		BlogOwnerInfo: OwnerInfo{UserID: b.OwnerID, UserLogin: b.OwnerLogin},
		BanInfo:       BlogBanInfo{IsBanned: b.Banned, BanDate: b.BanDate},
	}
}
