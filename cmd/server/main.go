package main

import (
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/NikitaSavelev/BlogDeck-Back/internal/admin"
	"github.com/NikitaSavelev/BlogDeck-Back/internal/auth"
	"github.com/NikitaSavelev/BlogDeck-Back/internal/blog"
	"github.com/NikitaSavelev/BlogDeck-Back/internal/comment"
	"github.com/NikitaSavelev/BlogDeck-Back/internal/config"
	"github.com/NikitaSavelev/BlogDeck-Back/internal/database"
	"github.com/NikitaSavelev/BlogDeck-Back/internal/like"
	"github.com/NikitaSavelev/BlogDeck-Back/internal/logs"
	"github.com/NikitaSavelev/BlogDeck-Back/internal/middleware"
	"github.com/NikitaSavelev/BlogDeck-Back/internal/moderation"
	"github.com/NikitaSavelev/BlogDeck-Back/internal/post"
	"github.com/NikitaSavelev/BlogDeck-Back/internal/storage"
	"github.com/NikitaSavelev/BlogDeck-Back/internal/user"
)

func main() {
	_ = godotenv.Load()
	cfg := config.LoadConfig()
	if cfg.DBUrl == "" {
		panic("DATABASE_URL missing")
	}

	database.Connect(cfg.DBUrl)
	database.Migrate(
		&user.User{},
		&blog.Blog{},
		&post.Post{},
		&comment.Comment{},
		&like.Record{},
		&moderation.UserBan{},
		&moderation.BlogBan{},
	)

	if err := storage.InitS3(); err != nil {
		logs.LogJSON("WARN", "S3 unavailable, uploads disabled", map[string]interface{}{
			"error": err.Error(),
		})
	}

	r := gin.Default()
	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	// Auth
	api.POST("/auth/signup", auth.Signup)
	api.POST("/auth/login", auth.Login)
	api.POST("/auth/refresh-token", auth.RefreshToken)

	// Public reads; the optional auth resolves myStatus for signed-in
	// viewers.
	public := api.Group("")
	public.Use(middleware.OptionalAuthMiddleware())
	public.GET("/blogs", blog.GetBlogs)
	public.GET("/blogs/:blogId", blog.GetBlog)
	public.GET("/blogs/:blogId/posts", post.GetPostsByBlog)
	public.GET("/posts", post.GetPosts)
	public.GET("/posts/:postId", post.GetPost)
	public.GET("/posts/:postId/comments", comment.GetCommentsByPost)
	public.GET("/comments/:commentId", comment.GetComment)

	// Authenticated actions
	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware())
	authed.PUT("/posts/:postId/like-status", like.SetPostLikeStatus)
	authed.PUT("/comments/:commentId/like-status", like.SetCommentLikeStatus)
	authed.POST("/posts/:postId/comments", comment.CreateComment)
	authed.PUT("/comments/:commentId", comment.UpdateComment)
	authed.DELETE("/comments/:commentId", comment.DeleteComment)

	// Blogger surface (blog owners)
	blogger := api.Group("/blogger")
	blogger.Use(middleware.AuthMiddleware())
	blogger.GET("/blogs", blog.GetOwnBlogs)
	blogger.POST("/blogs", blog.CreateBlog)
	blogger.PUT("/blogs/:blogId", blog.UpdateBlog)
	blogger.DELETE("/blogs/:blogId", blog.DeleteBlog)
	blogger.POST("/blogs/:blogId/wallpaper", blog.UploadWallpaper)
	blogger.POST("/blogs/:blogId/posts", post.CreatePost)
	blogger.PUT("/blogs/:blogId/posts/:postId", post.UpdatePost)
	blogger.DELETE("/blogs/:blogId/posts/:postId", post.DeletePost)
	blogger.POST("/blogs/:blogId/posts/:postId/image", post.UploadImage)
	blogger.PUT("/users/:userId/ban", moderation.BanUserForBlogHandler)
	blogger.GET("/blogs/:blogId/banned-users", moderation.GetBannedUsersForBlog)

	// Admin surface
	sa := api.Group("/sa")
	sa.Use(middleware.AuthMiddleware(), middleware.AdminOnlyMiddleware())
	sa.GET("/users", user.GetUsers)
	sa.POST("/users", user.CreateUser)
	sa.DELETE("/users/:id", user.DeleteUser)
	sa.PUT("/users/:id/ban", moderation.BanUserHandler)
	sa.GET("/blogs", blog.GetBlogsAdmin)
	sa.PUT("/blogs/:id/ban", moderation.BanBlogHandler)
	sa.PUT("/blogs/:id/bind-with-user/:userId", blog.BindBlogWithUser)

	adminGroup := api.Group("/admin")
	adminGroup.Use(middleware.AuthMiddleware(), middleware.AdminOnlyMiddleware())
	adminGroup.GET("/stats", admin.GetDashboardStats)

	api.DELETE("/testing/all-data", admin.DeleteAllData)

	if err := r.Run(":" + cfg.Port); err != nil {
		logs.LogJSON("FATAL", "Server stopped", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
