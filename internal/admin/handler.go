package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/NikitaSavelev/BlogDeck-Back/internal/database"
	"github.com/NikitaSavelev/BlogDeck-Back/internal/logs"
)

// GetDashboardStats GET /api/admin/stats
func GetDashboardStats(c *gin.Context) {
	var totalUsers, totalBlogs, totalPosts, totalComments, totalLikes int64
	var bannedUsers, bannedBlogs int64

	database.DB.Table("users").Count(&totalUsers)
	database.DB.Table("blogs").Count(&totalBlogs)
	database.DB.Table("posts").Count(&totalPosts)
	database.DB.Table("comments").Count(&totalComments)
	database.DB.Table("likes").Count(&totalLikes)
	database.DB.Table("user_bans").Where("banned = true").Count(&bannedUsers)
	database.DB.Table("blogs").Where("banned = true").Count(&bannedBlogs)

	c.JSON(http.StatusOK, gin.H{
		"total_users":    totalUsers,
		"total_blogs":    totalBlogs,
		"total_posts":    totalPosts,
		"total_comments": totalComments,
		"total_likes":    totalLikes,
		"banned_users":   bannedUsers,
		"banned_blogs":   bannedBlogs,
	})
}

// DeleteAllData DELETE /api/testing/all-data
//
// Wipes every table for test-suite resets. Best-effort on purpose:
// a partial failure is logged and the call still succeeds, since the
// purge is idempotent and re-runnable.
func DeleteAllData(c *gin.Context) {
	route := c.FullPath()

	tables := []string{"likes", "comments", "posts", "blog_bans", "user_bans", "blogs", "users"}
	for _, table := range tables {
		if err := database.DB.Exec("DELETE FROM " + table).Error; err != nil {
			logs.LogJSON("WARN", "Purge failed for table", map[string]interface{}{
				"error": err.Error(),
				"route": route,
				"table": table,
			})
		}
	}

	c.Status(http.StatusNoContent)
}
