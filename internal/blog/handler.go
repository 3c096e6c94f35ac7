package blog

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/NikitaSavelev/BlogDeck-Back/internal/apperror"
	"github.com/NikitaSavelev/BlogDeck-Back/internal/database"
	"github.com/NikitaSavelev/BlogDeck-Back/internal/guard"
	"github.com/NikitaSavelev/BlogDeck-Back/internal/logs"
	"github.com/NikitaSavelev/BlogDeck-Back/internal/pagination"
	"github.com/NikitaSavelev/BlogDeck-Back/internal/user"
	"github.com/NikitaSavelev/BlogDeck-Back/internal/visibility"
)

var allowedSort = map[string]bool{
	"created_at": true,
	"name":       true,
}

type blogInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	WebsiteURL  string `json:"websiteUrl"`
}

// GetBlogs GET /api/blogs
func GetBlogs(c *gin.Context) {
	listBlogs(c, false, "")
}

// GetBlogsAdmin GET /api/sa/blogs
// Includes banned blogs and owner info, for moderation tooling.
func GetBlogsAdmin(c *gin.Context) {
	route := c.FullPath()
	params := pagination.FromQuery(c, allowedSort)

	query := database.DB.Model(&Blog{}).Scopes(visibility.BlogScope(true))
	if searchName := c.Query("searchNameTerm"); searchName != "" {
		query = query.Where("name ILIKE ?", "%"+searchName+"%")
	}

	blogs, totalCount, err := pageBlogs(query, params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		logs.LogJSON("ERROR", "Database error", map[string]interface{}{
			"error": err.Error(),
			"route": route,
		})
		return
	}

	items := make([]SaViewBlog, 0, len(blogs))
	for _, b := range blogs {
		items = append(items, toSaView(b))
	}
	c.JSON(http.StatusOK, pagination.NewPaginator(items, totalCount, params))
}

// GetOwnBlogs GET /api/blogger/blogs
func GetOwnBlogs(c *gin.Context) {
	listBlogs(c, false, c.GetString("user_id"))
}

func listBlogs(c *gin.Context, includeBanned bool, ownerID string) {
	route := c.FullPath()
	params := pagination.FromQuery(c, allowedSort)

	query := database.DB.Model(&Blog{}).Scopes(visibility.BlogScope(includeBanned))
	if searchName := c.Query("searchNameTerm"); searchName != "" {
		query = query.Where("name ILIKE ?", "%"+searchName+"%")
	}
	if ownerID != "" {
		query = query.Where("owner_id = ?", ownerID)
	}

	blogs, totalCount, err := pageBlogs(query, params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		logs.LogJSON("ERROR", "Database error", map[string]interface{}{
			"error": err.Error(),
			"route": route,
		})
		return
	}

	items := make([]ViewBlog, 0, len(blogs))
	for _, b := range blogs {
		items = append(items, toView(b))
	}
	c.JSON(http.StatusOK, pagination.NewPaginator(items, totalCount, params))
}

func pageBlogs(query *gorm.DB, params pagination.Params) ([]Blog, int64, error) {
	var totalCount int64
	if err := query.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}
	var blogs []Blog
	err := query.Order(params.Order()).Limit(params.PageSize).Offset(params.Offset()).Find(&blogs).Error
	return blogs, totalCount, err
}

// GetBlog GET /api/blogs/:blogId
// A banned blog is NotFound for public callers, consistent with its
// absence from listings.
func GetBlog(c *gin.Context) {
	blogID := c.Param("blogId")

	var b Blog
	if err := database.DB.Where("id = ?", blogID).First(&b).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Blog not found"})
		return
	}
	if !visibility.BlogVisible(b.Banned, false) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Blog not found"})
		return
	}
	c.JSON(http.StatusOK, toView(b))
}

// CreateBlog POST /api/blogger/blogs
func CreateBlog(c *gin.Context) {
	route := c.FullPath()
	userID := c.GetString("user_id")

	if err := guard.RequireNotBanned(userID, ""); err != nil {
		c.JSON(apperror.Status(err), gin.H{"error": "User is banned"})
		return
	}

	var input blogInput
	if err := c.BindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if input.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name is required"})
		return
	}

	owner, err := user.GetByID(userID)
	if err != nil {
		c.JSON(apperror.Status(apperror.ErrUnauthorized), gin.H{"error": "Unknown user"})
		return
	}

	newBlog := Blog{
		ID:          uuid.New().String(),
		CreatedAt:   time.Now(),
		Name:        input.Name,
		Description: input.Description,
		WebsiteURL:  input.WebsiteURL,
		OwnerID:     owner.ID,
		OwnerLogin:  owner.Login,
	}
	if err := database.DB.Create(&newBlog).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating blog"})
		logs.LogJSON("ERROR", "Error creating blog", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": userID,
		})
		return
	}

	logs.LogJSON("INFO", "Blog created", map[string]interface{}{
		"route":  route,
		"userID": userID,
		"blogID": newBlog.ID,
	})
	c.JSON(http.StatusCreated, toView(newBlog))
}

// UpdateBlog PUT /api/blogger/blogs/:blogId
func UpdateBlog(c *gin.Context) {
	blogID := c.Param("blogId")
	userID := c.GetString("user_id")

	if err := guard.RequireBlogOwner(blogID, userID); err != nil {
		c.JSON(apperror.Status(err), gin.H{"error": "Blog access denied"})
		return
	}

	var input blogInput
	if err := c.BindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	err := database.DB.Model(&Blog{}).Where("id = ?", blogID).Updates(map[string]interface{}{
		"name":        input.Name,
		"description": input.Description,
		"website_url": input.WebsiteURL,
	}).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating blog"})
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteBlog DELETE /api/blogger/blogs/:blogId
//
// The whole subtree goes in one transaction: posts, their comments,
// and every like record either of them accumulated. Orphaned like rows
// could otherwise resurrect a deleted subject's counts.
func DeleteBlog(c *gin.Context) {
	route := c.FullPath()
	blogID := c.Param("blogId")
	userID := c.GetString("user_id")

	if err := guard.RequireBlogOwner(blogID, userID); err != nil {
		c.JSON(apperror.Status(err), gin.H{"error": "Blog access denied"})
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`DELETE FROM likes WHERE subject_kind = 'comment' AND subject_id IN
			(SELECT id FROM comments WHERE post_id IN (SELECT id FROM posts WHERE blog_id = ?))`, blogID).Error; err != nil {
			return err
		}
		if err := tx.Exec(`DELETE FROM likes WHERE subject_kind = 'post' AND subject_id IN
			(SELECT id FROM posts WHERE blog_id = ?)`, blogID).Error; err != nil {
			return err
		}
		if err := tx.Exec(`DELETE FROM comments WHERE post_id IN (SELECT id FROM posts WHERE blog_id = ?)`, blogID).Error; err != nil {
			return err
		}
		if err := tx.Exec(`DELETE FROM posts WHERE blog_id = ?`, blogID).Error; err != nil {
			return err
		}
		if err := tx.Exec(`DELETE FROM blog_bans WHERE blog_id = ?`, blogID).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", blogID).Delete(&Blog{}).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting blog"})
		logs.LogJSON("ERROR", "Error deleting blog", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": userID,
			"blogID": blogID,
		})
		return
	}
	c.Status(http.StatusNoContent)
}

// BindBlogWithUser PUT /api/sa/blogs/:id/bind-with-user/:userId
// Admin repair operation for ownerless blogs.
func BindBlogWithUser(c *gin.Context) {
	blogID := c.Param("id")
	userID := c.Param("userId")

	var b Blog
	if err := database.DB.Where("id = ?", blogID).First(&b).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Blog not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if b.OwnerID != "" {
		c.JSON(http.StatusConflict, gin.H{"error": "Blog already has an owner"})
		return
	}

	owner, err := user.GetByID(userID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User not found"})
		return
	}

	err = database.DB.Model(&Blog{}).Where("id = ?", blogID).Updates(map[string]interface{}{
		"owner_id":    owner.ID,
		"owner_login": owner.Login,
	}).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error binding blog"})
		return
	}
	c.Status(http.StatusNoContent)
}
