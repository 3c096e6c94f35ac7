package like

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/NikitaSavelev/BlogDeck-Back/internal/apperror"
	"github.com/NikitaSavelev/BlogDeck-Back/internal/database"
	"github.com/NikitaSavelev/BlogDeck-Back/internal/guard"
	"github.com/NikitaSavelev/BlogDeck-Back/internal/logs"
	"github.com/NikitaSavelev/BlogDeck-Back/internal/user"
)

type likeInput struct {
	LikeStatus string `json:"likeStatus"`
}

// SetPostLikeStatus PUT /api/posts/:postId/like-status
func SetPostLikeStatus(c *gin.Context) {
	route := c.FullPath()
	postID := c.Param("postId")
	userID := c.GetString("user_id")

	var blogID string
	if err := database.DB.Table("posts").Select("blog_id").Where("id = ?", postID).Scan(&blogID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		logs.LogJSON("ERROR", "Database error", map[string]interface{}{"error": err.Error(), "route": route, "postID": postID})
		return
	}
	if blogID == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	setStatus(c, postID, SubjectPost, blogID, userID)
}

// SetCommentLikeStatus PUT /api/comments/:commentId/like-status
func SetCommentLikeStatus(c *gin.Context) {
	route := c.FullPath()
	commentID := c.Param("commentId")
	userID := c.GetString("user_id")

	var blogID string
	err := database.DB.Table("comments").
		Select("posts.blog_id").
		Joins("JOIN posts ON posts.id = comments.post_id").
		Where("comments.id = ?", commentID).
		Scan(&blogID).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		logs.LogJSON("ERROR", "Database error", map[string]interface{}{"error": err.Error(), "route": route, "commentID": commentID})
		return
	}
	if blogID == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		return
	}

	setStatus(c, commentID, SubjectComment, blogID, userID)
}

func setStatus(c *gin.Context, subjectID string, kind SubjectKind, blogID, userID string) {
	route := c.FullPath()

	// Ban check runs before any write: a rejected actor leaves the
	// ledger untouched.
	if err := guard.RequireNotBanned(userID, blogID); err != nil {
		c.JSON(apperror.Status(err), gin.H{"error": "User is banned"})
		return
	}

	var input likeInput
	if err := c.BindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	status, err := ParseStatus(input.LikeStatus)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid like status"})
		return
	}

	actor, err := user.GetByID(userID)
	if err != nil {
		c.JSON(apperror.Status(apperror.ErrUnauthorized), gin.H{"error": "Unknown user"})
		return
	}

	if err := SetStatus(subjectID, kind, actor.ID, actor.Login, status); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error saving like status"})
		logs.LogJSON("ERROR", "Error saving like status", map[string]interface{}{
			"error":     err.Error(),
			"route":     route,
			"subjectID": subjectID,
			"userID":    userID,
		})
		return
	}

	c.Status(http.StatusNoContent)
}
