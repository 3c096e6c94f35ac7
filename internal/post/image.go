package post

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/NikitaSavelev/BlogDeck-Back/internal/apperror"
	"github.com/NikitaSavelev/BlogDeck-Back/internal/database"
	"github.com/NikitaSavelev/BlogDeck-Back/internal/guard"
	"github.com/NikitaSavelev/BlogDeck-Back/internal/storage"
)

var validImageExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true,
}

// UploadImage POST /api/blogger/blogs/:blogId/posts/:postId/image
func UploadImage(c *gin.Context) {
	blogID := c.Param("blogId")
	postID := c.Param("postId")
	userID := c.GetString("user_id")

	if err := guard.RequireBlogOwner(blogID, userID); err != nil {
		c.JSON(apperror.Status(err), gin.H{"error": "Blog access denied"})
		return
	}

	var count int64
	database.DB.Model(&Post{}).Where("id = ? AND blog_id = ?", postID, blogID).Count(&count)
	if count == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided", "details": err.Error()})
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !validImageExtensions[ext] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file extension"})
		return
	}

	filename := fmt.Sprintf("post_%s%s", postID, ext)
	url, err := storage.UploadToS3(file, filename, header.Header.Get("Content-Type"), "posts")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload error", "details": err.Error()})
		return
	}

	if err := database.DB.Model(&Post{}).Where("id = ?", postID).Update("image_url", url).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error saving image"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"imageUrl": url})
}
