package moderation

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/NikitaSavelev/BlogDeck-Back/internal/apperror"
	"github.com/NikitaSavelev/BlogDeck-Back/internal/database"
	"github.com/NikitaSavelev/BlogDeck-Back/internal/guard"
	"github.com/NikitaSavelev/BlogDeck-Back/internal/logs"
	"github.com/NikitaSavelev/BlogDeck-Back/internal/pagination"
)

var allowedSort = map[string]bool{
	"ban_date": true,
	"login":    true,
}

// BanUserHandler PUT /api/sa/users/:id/ban
func BanUserHandler(c *gin.Context) {
	route := c.FullPath()
	userID := c.Param("id")

	var input struct {
		IsBanned  bool   `json:"isBanned"`
		BanReason string `json:"banReason"`
	}
	if err := c.BindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	var count int64
	database.DB.Table("users").Where("id = ?", userID).Count(&count)
	if count == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if err := BanUser(userID, input.IsBanned, input.BanReason); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating ban state"})
		logs.LogJSON("ERROR", "Error updating ban state", map[string]interface{}{"error": err.Error(), "route": route, "userID": userID})
		return
	}

	logs.LogJSON("INFO", "User ban state changed", map[string]interface{}{
		"route":    route,
		"userID":   userID,
		"isBanned": input.IsBanned,
	})
	c.Status(http.StatusNoContent)
}

// BanBlogHandler PUT /api/sa/blogs/:id/ban
func BanBlogHandler(c *gin.Context) {
	route := c.FullPath()
	blogID := c.Param("id")

	var input struct {
		IsBanned bool `json:"isBanned"`
	}
	if err := c.BindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	var count int64
	database.DB.Table("blogs").Where("id = ?", blogID).Count(&count)
	if count == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Blog not found"})
		return
	}

	if err := BanBlog(blogID, input.IsBanned); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating ban state"})
		logs.LogJSON("ERROR", "Error updating ban state", map[string]interface{}{"error": err.Error(), "route": route, "blogID": blogID})
		return
	}

	logs.LogJSON("INFO", "Blog ban state changed", map[string]interface{}{
		"route":    route,
		"blogID":   blogID,
		"isBanned": input.IsBanned,
	})
	c.Status(http.StatusNoContent)
}

// BanUserForBlogHandler PUT /api/blogger/users/:userId/ban
// The actor must own the blog named in the body.
func BanUserForBlogHandler(c *gin.Context) {
	route := c.FullPath()
	targetID := c.Param("userId")
	actorID := c.GetString("user_id")

	var input struct {
		IsBanned  bool   `json:"isBanned"`
		BanReason string `json:"banReason"`
		BlogID    string `json:"blogId"`
	}
	if err := c.BindJSON(&input); err != nil || input.BlogID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := guard.RequireBlogOwner(input.BlogID, actorID); err != nil {
		c.JSON(apperror.Status(err), gin.H{"error": "Blog access denied"})
		return
	}

	var count int64
	database.DB.Table("users").Where("id = ?", targetID).Count(&count)
	if count == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if err := BanUserForBlog(input.BlogID, targetID, input.IsBanned, input.BanReason); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating ban state"})
		logs.LogJSON("ERROR", "Error updating ban state", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": targetID,
			"blogID": input.BlogID,
		})
		return
	}

	c.Status(http.StatusNoContent)
}

type bannedUserRow struct {
	UserID    string
	Login     string
	BanDate   *time.Time
	BanReason *string
}

type viewBannedUser struct {
	ID      string      `json:"id"`
	Login   string      `json:"login"`
	BanInfo viewBanInfo `json:"banInfo"`
}

type viewBanInfo struct {
	IsBanned  bool       `json:"isBanned"`
	BanDate   *time.Time `json:"banDate"`
	BanReason *string    `json:"banReason"`
}

// GetBannedUsersForBlog GET /api/blogger/blogs/:blogId/banned-users
// The blog's ban list for its owner, with login search and
// pagination.
func GetBannedUsersForBlog(c *gin.Context) {
	route := c.FullPath()
	blogID := c.Param("blogId")
	actorID := c.GetString("user_id")
	params := pagination.FromQuery(c, allowedSort)

	if err := guard.RequireBlogOwner(blogID, actorID); err != nil {
		c.JSON(apperror.Status(err), gin.H{"error": "Blog access denied"})
		return
	}

	query := database.DB.Table("blog_bans").
		Select("blog_bans.user_id, users.login, blog_bans.ban_date, blog_bans.ban_reason").
		Joins("JOIN users ON users.id = blog_bans.user_id").
		Where("blog_bans.blog_id = ? AND blog_bans.banned = true", blogID)

	if searchLogin := c.Query("searchLoginTerm"); searchLogin != "" {
		query = query.Where("users.login ILIKE ?", "%"+searchLogin+"%")
	}

	var totalCount int64
	if err := query.Count(&totalCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	sortColumn := "blog_bans.ban_date"
	if params.SortBy == "login" {
		sortColumn = "users.login"
	}

	var rows []bannedUserRow
	if err := query.Order(sortColumn + " " + params.SortDirection).
		Limit(params.PageSize).Offset(params.Offset()).Scan(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		logs.LogJSON("ERROR", "Database error", map[string]interface{}{"error": err.Error(), "route": route, "blogID": blogID})
		return
	}

	items := make([]viewBannedUser, 0, len(rows))
	for _, row := range rows {
		items = append(items, viewBannedUser{
			ID:    row.UserID,
			Login: row.Login,
			BanInfo: viewBanInfo{
				IsBanned:  true,
				BanDate:   row.BanDate,
				BanReason: row.BanReason,
			},
		})
	}

	c.JSON(http.StatusOK, pagination.NewPaginator(items, totalCount, params))
}
