package blog

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/NikitaSavelev/BlogDeck-Back/internal/apperror"
	"github.com/NikitaSavelev/BlogDeck-Back/internal/database"
	"github.com/NikitaSavelev/BlogDeck-Back/internal/guard"
	"github.com/NikitaSavelev/BlogDeck-Back/internal/logs"
	"github.com/NikitaSavelev/BlogDeck-Back/internal/storage"
)

var validImageExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".webp": true,
}

// UploadWallpaper POST /api/blogger/blogs/:blogId/wallpaper
func UploadWallpaper(c *gin.Context) {
	route := c.FullPath()
	blogID := c.Param("blogId")
	userID := c.GetString("user_id")

	if err := guard.RequireBlogOwner(blogID, userID); err != nil {
		c.JSON(apperror.Status(err), gin.H{"error": "Blog access denied"})
		return
	}

	file, header, err := c.Request.FormFile("wallpaper")
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

	filename := fmt.Sprintf("blog_%s%s", blogID, ext)
	url, err := storage.UploadToS3(file, filename, header.Header.Get("Content-Type"), "blogs")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload error", "details": err.Error()})
		logs.LogJSON("ERROR", "Wallpaper upload error", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"blogID": blogID,
		})
		return
	}

	if err := database.DB.Model(&Blog{}).Where("id = ?", blogID).Update("wallpaper_url", url).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error saving wallpaper"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"wallpaperUrl": url})
}
