package post

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/NikitaSavelev/BlogDeck-Back/internal/aggregate"
	"github.com/NikitaSavelev/BlogDeck-Back/internal/apperror"
	"github.com/NikitaSavelev/BlogDeck-Back/internal/database"
	"github.com/NikitaSavelev/BlogDeck-Back/internal/guard"
	"github.com/NikitaSavelev/BlogDeck-Back/internal/like"
	"github.com/NikitaSavelev/BlogDeck-Back/internal/logs"
	"github.com/NikitaSavelev/BlogDeck-Back/internal/moderation"
	"github.com/NikitaSavelev/BlogDeck-Back/internal/pagination"
	"github.com/NikitaSavelev/BlogDeck-Back/internal/visibility"
)

var allowedSort = map[string]bool{
	"created_at": true,
	"title":      true,
	"blog_name":  true,
}

type postInput struct {
	Title            string `json:"title"`
	ShortDescription string `json:"shortDescription"`
	Content          string `json:"content"`
}

// GetPosts GET /api/posts
// Public listing across all blogs. Banned blogs are filtered in the
// query; likes are aggregated per item with a bounded fan-out.
func GetPosts(c *gin.Context) {
	route := c.FullPath()
	viewerID := c.GetString("user_id")
	params := pagination.FromQuery(c, allowedSort)

	bannedBlogIDs, err := moderation.BannedBlogIDs()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		logs.LogJSON("ERROR", "Database error", map[string]interface{}{"error": err.Error(), "route": route})
		return
	}

	query := database.DB.Model(&Post{}).Scopes(visibility.PostScope(bannedBlogIDs))
	page, err := buildPage(c, query, params, viewerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error retrieving posts"})
		logs.LogJSON("ERROR", "Error retrieving posts", map[string]interface{}{"error": err.Error(), "route": route, "userID": viewerID})
		return
	}
	c.JSON(http.StatusOK, page)
}

// GetPostsByBlog GET /api/blogs/:blogId/posts
func GetPostsByBlog(c *gin.Context) {
	route := c.FullPath()
	blogID := c.Param("blogId")
	viewerID := c.GetString("user_id")
	params := pagination.FromQuery(c, allowedSort)

	var blogCount int64
	if err := database.DB.Table("blogs").Where("id = ? AND banned = false", blogID).Count(&blogCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if blogCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Blog not found"})
		return
	}

	query := database.DB.Model(&Post{}).Where("blog_id = ?", blogID)
	page, err := buildPage(c, query, params, viewerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error retrieving posts"})
		logs.LogJSON("ERROR", "Error retrieving posts", map[string]interface{}{"error": err.Error(), "route": route, "blogID": blogID})
		return
	}
	c.JSON(http.StatusOK, page)
}

func buildPage(c *gin.Context, query *gorm.DB, params pagination.Params, viewerID string) (pagination.Paginator[ViewPost], error) {
	var empty pagination.Paginator[ViewPost]

	var totalCount int64
	if err := query.Count(&totalCount).Error; err != nil {
		return empty, err
	}

	var posts []Post
	if err := query.Order(params.Order()).Limit(params.PageSize).Offset(params.Offset()).Find(&posts).Error; err != nil {
		return empty, err
	}

	excl, err := aggregate.LoadExclusions()
	if err != nil {
		return empty, err
	}

	items := make([]ViewPost, len(posts))
	err = aggregate.ForPage(len(posts), func(i int) error {
		likes, err := aggregate.BuildLikesInfo(posts[i].ID, like.SubjectPost, posts[i].BlogID, viewerID, excl)
		if err != nil {
			return err
		}
		items[i] = toView(posts[i], likes)
		return nil
	})
	if err != nil {
		return empty, err
	}

	return pagination.NewPaginator(items, totalCount, params), nil
}

// GetPost GET /api/posts/:postId
// A post under a banned blog is NotFound for everyone, including its
// author; direct links behave like listings.
func GetPost(c *gin.Context) {
	route := c.FullPath()
	postID := c.Param("postId")
	viewerID := c.GetString("user_id")

	var p Post
	if err := database.DB.Where("id = ?", postID).First(&p).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	visible, err := visibility.PostVisible(p.BlogID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if !visible {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	excl, err := aggregate.LoadExclusions()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	likes, err := aggregate.BuildLikesInfo(p.ID, like.SubjectPost, p.BlogID, viewerID, excl)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error aggregating likes"})
		logs.LogJSON("ERROR", "Error aggregating likes", map[string]interface{}{"error": err.Error(), "route": route, "postID": postID})
		return
	}

	c.JSON(http.StatusOK, toView(p, likes))
}

// CreatePost POST /api/blogger/blogs/:blogId/posts
func CreatePost(c *gin.Context) {
	route := c.FullPath()
	blogID := c.Param("blogId")
	userID := c.GetString("user_id")

	if err := guard.RequireBlogOwner(blogID, userID); err != nil {
		c.JSON(apperror.Status(err), gin.H{"error": "Blog access denied"})
		return
	}

	var input postInput
	if err := c.BindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if input.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
		return
	}

	var blogName string
	database.DB.Table("blogs").Select("name").Where("id = ?", blogID).Scan(&blogName)

	newPost := Post{
		ID:               uuid.New().String(),
		CreatedAt:        time.Now(),
		Title:            input.Title,
		ShortDescription: input.ShortDescription,
		Content:          input.Content,
		BlogID:           blogID,
		BlogName:         blogName,
	}
	if err := database.DB.Create(&newPost).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating post"})
		logs.LogJSON("ERROR", "Error creating post", map[string]interface{}{"error": err.Error(), "route": route, "blogID": blogID})
		return
	}

	logs.LogJSON("INFO", "Post created", map[string]interface{}{"route": route, "userID": userID, "postID": newPost.ID})
	c.JSON(http.StatusCreated, toView(newPost, aggregate.ExtendedLikesInfo{
		MyStatus:    like.StatusNone,
		NewestLikes: []aggregate.LikeDetails{},
	}))
}

// UpdatePost PUT /api/blogger/blogs/:blogId/posts/:postId
func UpdatePost(c *gin.Context) {
	blogID := c.Param("blogId")
	postID := c.Param("postId")
	userID := c.GetString("user_id")

	if err := guard.RequireBlogOwner(blogID, userID); err != nil {
		c.JSON(apperror.Status(err), gin.H{"error": "Blog access denied"})
		return
	}

	var input postInput
	if err := c.BindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	result := database.DB.Model(&Post{}).Where("id = ? AND blog_id = ?", postID, blogID).Updates(map[string]interface{}{
		"title":             input.Title,
		"short_description": input.ShortDescription,
		"content":           input.Content,
	})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating post"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

// DeletePost DELETE /api/blogger/blogs/:blogId/posts/:postId
//
// Comments and every like record of the post or its comments are
// removed in the same transaction, so nothing orphaned can resurface
// in counts later.
func DeletePost(c *gin.Context) {
	route := c.FullPath()
	blogID := c.Param("blogId")
	postID := c.Param("postId")
	userID := c.GetString("user_id")

	if err := guard.RequireBlogOwner(blogID, userID); err != nil {
		c.JSON(apperror.Status(err), gin.H{"error": "Blog access denied"})
		return
	}

	var p Post
	if err := database.DB.Where("id = ? AND blog_id = ?", postID, blogID).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`DELETE FROM likes WHERE subject_kind = 'comment' AND subject_id IN
			(SELECT id FROM comments WHERE post_id = ?)`, postID).Error; err != nil {
			return err
		}
		if err := like.DeleteAllForSubject(tx, postID, like.SubjectPost); err != nil {
			return err
		}
		if err := tx.Exec(`DELETE FROM comments WHERE post_id = ?`, postID).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", postID).Delete(&Post{}).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting post"})
		logs.LogJSON("ERROR", "Error deleting post", map[string]interface{}{"error": err.Error(), "route": route, "postID": postID})
		return
	}
	c.Status(http.StatusNoContent)
}
