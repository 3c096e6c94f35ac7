package comment

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
	"github.com/NikitaSavelev/BlogDeck-Back/internal/user"
	"github.com/NikitaSavelev/BlogDeck-Back/internal/visibility"
)

var allowedSort = map[string]bool{
	"created_at": true,
}

// postBlogID resolves the owning blog of a post, ErrNotFound when the
// post is missing.
func postBlogID(postID string) (string, error) {
	var blogID string
	err := database.DB.Table("posts").Select("blog_id").Where("id = ?", postID).Scan(&blogID).Error
	if err != nil {
		return "", err
	}
	if blogID == "" {
		return "", apperror.ErrNotFound
	}
	return blogID, nil
}

// CreateComment POST /api/posts/:postId/comments
func CreateComment(c *gin.Context) {
	route := c.FullPath()
	postID := c.Param("postId")
	userID := c.GetString("user_id")

	blogID, err := postBlogID(postID)
	if err != nil {
		c.JSON(apperror.Status(err), gin.H{"error": "Post not found"})
		return
	}

	// Banned users (globally or within this blog) cannot comment.
	if err := guard.RequireNotBanned(userID, blogID); err != nil {
		c.JSON(apperror.Status(err), gin.H{"error": "User is banned"})
		return
	}

	var input struct {
		Content string `json:"content"`
	}
	if err := c.BindJSON(&input); err != nil || input.Content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Content is required"})
		return
	}

	author, err := user.GetByID(userID)
	if err != nil {
		c.JSON(apperror.Status(apperror.ErrUnauthorized), gin.H{"error": "Unknown user"})
		return
	}

	newComment := Comment{
		ID:        uuid.New().String(),
		CreatedAt: time.Now(),
		PostID:    postID,
		UserID:    author.ID,
		UserLogin: author.Login,
		Content:   input.Content,
	}
	if err := database.DB.Create(&newComment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating comment"})
		logs.LogJSON("ERROR", "Error creating comment", map[string]interface{}{"error": err.Error(), "route": route, "postID": postID})
		return
	}

	c.JSON(http.StatusCreated, toView(newComment, aggregate.LikesInfo{MyStatus: like.StatusNone}))
}

// GetComment GET /api/comments/:commentId
// Hidden when the owning blog is banned or the author is globally
// banned.
func GetComment(c *gin.Context) {
	commentID := c.Param("commentId")
	viewerID := c.GetString("user_id")

	var cm Comment
	if err := database.DB.Where("id = ?", commentID).First(&cm).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		return
	}

	blogID, err := postBlogID(cm.PostID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		return
	}

	visible, err := visibility.CommentVisible(blogID, cm.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if !visible {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		return
	}

	excl, err := aggregate.LoadExclusions()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	likes, err := aggregate.BuildCommentLikesInfo(cm.ID, blogID, viewerID, excl)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error aggregating likes"})
		return
	}

	c.JSON(http.StatusOK, toView(cm, likes))
}

// GetCommentsByPost GET /api/posts/:postId/comments
func GetCommentsByPost(c *gin.Context) {
	route := c.FullPath()
	postID := c.Param("postId")
	viewerID := c.GetString("user_id")
	params := pagination.FromQuery(c, allowedSort)

	blogID, err := postBlogID(postID)
	if err != nil {
		c.JSON(apperror.Status(err), gin.H{"error": "Post not found"})
		return
	}

	visible, err := visibility.PostVisible(blogID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if !visible {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	bannedUserIDs, err := moderation.BannedUserIDs()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	query := database.DB.Model(&Comment{}).Where("post_id = ?", postID).
		Scopes(visibility.CommentScope(nil, bannedUserIDs))

	var totalCount int64
	if err := query.Count(&totalCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	var comments []Comment
	if err := query.Order(params.Order()).Limit(params.PageSize).Offset(params.Offset()).Find(&comments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error retrieving comments"})
		logs.LogJSON("ERROR", "Error retrieving comments", map[string]interface{}{"error": err.Error(), "route": route, "postID": postID})
		return
	}

	excl, err := aggregate.LoadExclusions()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	items := make([]ViewComment, len(comments))
	err = aggregate.ForPage(len(comments), func(i int) error {
		likes, err := aggregate.BuildCommentLikesInfo(comments[i].ID, blogID, viewerID, excl)
		if err != nil {
			return err
		}
		items[i] = toView(comments[i], likes)
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error aggregating likes"})
		return
	}

	c.JSON(http.StatusOK, pagination.NewPaginator(items, totalCount, params))
}

// UpdateComment PUT /api/comments/:commentId (author only)
func UpdateComment(c *gin.Context) {
	commentID := c.Param("commentId")
	userID := c.GetString("user_id")

	var cm Comment
	if err := database.DB.Where("id = ?", commentID).First(&cm).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		return
	}
	if cm.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not the comment author"})
		return
	}

	var input struct {
		Content string `json:"content"`
	}
	if err := c.BindJSON(&input); err != nil || input.Content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Content is required"})
		return
	}

	if err := database.DB.Model(&Comment{}).Where("id = ?", commentID).Update("content", input.Content).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating comment"})
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteComment DELETE /api/comments/:commentId (author only)
// The comment's like records go in the same transaction.
func DeleteComment(c *gin.Context) {
	route := c.FullPath()
	commentID := c.Param("commentId")
	userID := c.GetString("user_id")

	var cm Comment
	if err := database.DB.Where("id = ?", commentID).First(&cm).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if cm.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not the comment author"})
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := like.DeleteAllForSubject(tx, commentID, like.SubjectComment); err != nil {
			return err
		}
		return tx.Where("id = ?", commentID).Delete(&Comment{}).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting comment"})
		logs.LogJSON("ERROR", "Error deleting comment", map[string]interface{}{"error": err.Error(), "route": route, "commentID": commentID})
		return
	}
	c.Status(http.StatusNoContent)
}
