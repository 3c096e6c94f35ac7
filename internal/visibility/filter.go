package visibility

import (
	"gorm.io/gorm"

	"github.com/NikitaSavelev/BlogDeck-Back/internal/moderation"
)

// The visibility filter is the single place deciding which content a
// viewer may see given the current ban state. Listings push it into
// the query as a gorm scope; single-item fetches re-check after the
// load so a direct link to banned content is blocked the same way.

// PostScope excludes posts whose owning blog is banned.
func PostScope(bannedBlogIDs []string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if len(bannedBlogIDs) == 0 {
			return db
		}
		return db.Where("blog_id NOT IN ?", bannedBlogIDs)
	}
}

// CommentScope excludes comments under banned blogs and comments by
// globally banned authors.
func CommentScope(bannedBlogIDs, bannedUserIDs []string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if len(bannedBlogIDs) > 0 {
			db = db.Where("post_id NOT IN (SELECT id FROM posts WHERE blog_id IN ?)", bannedBlogIDs)
		}
		if len(bannedUserIDs) > 0 {
			db = db.Where("user_id NOT IN ?", bannedUserIDs)
		}
		return db
	}
}

// BlogScope hides banned blogs from public listings. Admin tooling
// passes includeBanned to see them.
func BlogScope(includeBanned bool) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if includeBanned {
			return db
		}
		return db.Where("banned = false")
	}
}

// PostVisible is the single-item check for direct post fetches.
func PostVisible(blogID string) (bool, error) {
	banned, err := moderation.IsBlogBanned(blogID)
	return !banned, err
}

// CommentVisible is the single-item check for direct comment fetches.
func CommentVisible(blogID, authorID string) (bool, error) {
	banned, err := moderation.IsBlogBanned(blogID)
	if err != nil || banned {
		return false, err
	}
	banned, err = moderation.IsUserBannedGlobally(authorID)
	return !banned, err
}

// BlogVisible is the single-item check for direct blog fetches.
func BlogVisible(banned, includeBanned bool) bool {
	return includeBanned || !banned
}
