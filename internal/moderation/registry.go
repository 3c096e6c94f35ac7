package moderation

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm/clause"

	"github.com/NikitaSavelev/BlogDeck-Back/internal/database"
)

// The registry is read fresh on every request. Nothing here is cached
// at process scope: staleness is bounded by storage consistency only.

func IsUserBannedGlobally(userID string) (bool, error) {
	var count int64
	err := database.DB.Model(&UserBan{}).
		Where("user_id = ? AND banned = true", userID).
		Count(&count).Error
	return count > 0, err
}

func IsUserBannedForBlog(blogID, userID string) (bool, error) {
	var count int64
	err := database.DB.Model(&BlogBan{}).
		Where("blog_id = ? AND user_id = ? AND banned = true", blogID, userID).
		Count(&count).Error
	return count > 0, err
}

func IsBlogBanned(blogID string) (bool, error) {
	var count int64
	err := database.DB.Table("blogs").
		Where("id = ? AND banned = true", blogID).
		Count(&count).Error
	return count > 0, err
}

// BanUser sets or lifts the global ban. Unbanning clears the date and
// reason, matching the Active -> Banned -> Active state machine; bans
// never expire on their own.
func BanUser(userID string, isBanned bool, reason string) error {
	ban := UserBan{UserID: userID, Banned: isBanned}
	if isBanned {
		now := time.Now()
		ban.BanDate = &now
		ban.BanReason = &reason
	}
	return database.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"banned", "ban_date", "ban_reason"}),
	}).Create(&ban).Error
}

// BanUserForBlog sets or lifts a blog-scoped ban. Ownership of the
// blog is the caller's responsibility (guard.RequireBlogOwner).
func BanUserForBlog(blogID, userID string, isBanned bool, reason string) error {
	ban := BlogBan{
		ID:     uuid.New().String(),
		BlogID: blogID,
		UserID: userID,
		Banned: isBanned,
	}
	if isBanned {
		now := time.Now()
		ban.BanDate = &now
		ban.BanReason = &reason
	}
	return database.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "blog_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"banned", "ban_date", "ban_reason"}),
	}).Create(&ban).Error
}

// BanBlog flips the ban flag on the blog row itself. A banned blog
// hides all its posts and their comments from public listings and from
// likes aggregation without touching the underlying data.
func BanBlog(blogID string, isBanned bool) error {
	updates := map[string]interface{}{"banned": isBanned, "ban_date": nil}
	if isBanned {
		updates["ban_date"] = time.Now()
	}
	return database.DB.Table("blogs").Where("id = ?", blogID).Updates(updates).Error
}

// BannedBlogIDs returns all banned blog ids in one query. Listing
// filters call this once per request instead of checking blogs one by
// one.
func BannedBlogIDs() ([]string, error) {
	var ids []string
	err := database.DB.Table("blogs").Where("banned = true").Pluck("id", &ids).Error
	return ids, err
}

// BannedUserIDs returns all globally banned user ids in one query.
func BannedUserIDs() ([]string, error) {
	var ids []string
	err := database.DB.Model(&UserBan{}).Where("banned = true").Pluck("user_id", &ids).Error
	return ids, err
}

// BannedUserIDsForBlog returns the blog-scoped banned user ids, again
// as a single lookup for per-request aggregation.
func BannedUserIDsForBlog(blogID string) ([]string, error) {
	var ids []string
	err := database.DB.Model(&BlogBan{}).
		Where("blog_id = ? AND banned = true", blogID).
		Pluck("user_id", &ids).Error
	return ids, err
}
