package guard

import (
	"errors"

	"gorm.io/gorm"

	"github.com/NikitaSavelev/BlogDeck-Back/internal/apperror"
	"github.com/NikitaSavelev/BlogDeck-Back/internal/database"
)

// RequireBlogOwner verifies that userID owns the blog before any
// mutation of the blog or its posts. NotFound wins over Forbidden: a
// missing blog is reported as missing even to a would-be intruder.
func RequireBlogOwner(blogID, userID string) error {
	var ownerID string
	err := database.DB.Table("blogs").Select("owner_id").Where("id = ?", blogID).Scan(&ownerID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrNotFound
		}
		return err
	}
	if ownerID == "" {
		// Scan leaves the dest zero-valued when no row matched.
		var count int64
		if err := database.DB.Table("blogs").Where("id = ?", blogID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return apperror.ErrNotFound
		}
	}
	if ownerID != userID {
		return apperror.ErrForbidden
	}
	return nil
}

// RequireNotBanned rejects an actor who is banned globally or, when
// blogID is non-empty, banned within that blog. Checked before every
// comment, like and ban mutation.
func RequireNotBanned(userID, blogID string) error {
	var count int64
	err := database.DB.Table("user_bans").
		Where("user_id = ? AND banned = true", userID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return apperror.ErrForbidden
	}

	if blogID != "" {
		err = database.DB.Table("blog_bans").
			Where("blog_id = ? AND user_id = ? AND banned = true", blogID, userID).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return apperror.ErrForbidden
		}
	}
	return nil
}
