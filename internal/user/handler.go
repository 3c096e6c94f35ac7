package user

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/NikitaSavelev/BlogDeck-Back/internal/database"
	"github.com/NikitaSavelev/BlogDeck-Back/internal/logs"
	"github.com/NikitaSavelev/BlogDeck-Back/internal/pagination"
)

var allowedSort = map[string]bool{
	"created_at": true,
	"login":      true,
	"email":      true,
}

type bannedRow struct {
	ID        string
	Login     string
	Email     string
	CreatedAt time.Time
	Banned    *bool
	BanDate   *time.Time
	BanReason *string
}

// GetUsers GET /api/sa/users
func GetUsers(c *gin.Context) {
	route := c.FullPath()
	params := pagination.FromQuery(c, allowedSort)
	searchLogin := c.Query("searchLoginTerm")
	searchEmail := c.Query("searchEmailTerm")

	query := database.DB.Table("users").
		Select("users.id, users.login, users.email, users.created_at, user_bans.banned, user_bans.ban_date, user_bans.ban_reason").
		Joins("LEFT JOIN user_bans ON user_bans.user_id = users.id")

	switch {
	case searchLogin != "" && searchEmail != "":
		query = query.Where("users.login ILIKE ? OR users.email ILIKE ?", "%"+searchLogin+"%", "%"+searchEmail+"%")
	case searchLogin != "":
		query = query.Where("users.login ILIKE ?", "%"+searchLogin+"%")
	case searchEmail != "":
		query = query.Where("users.email ILIKE ?", "%"+searchEmail+"%")
	}

	var totalCount int64
	if err := query.Count(&totalCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		logs.LogJSON("ERROR", "Database error", map[string]interface{}{
			"error": err.Error(),
			"route": route,
		})
		return
	}

	var rows []bannedRow
	if err := query.Order("users." + params.SortBy + " " + params.SortDirection).
		Limit(params.PageSize).Offset(params.Offset()).Scan(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		logs.LogJSON("ERROR", "Database error", map[string]interface{}{
			"error": err.Error(),
			"route": route,
		})
		return
	}

	items := make([]ViewUser, 0, len(rows))
	for _, row := range rows {
		view := ViewUser{
			ID:        row.ID,
			Login:     row.Login,
			Email:     row.Email,
			CreatedAt: row.CreatedAt,
		}
		if row.Banned != nil && *row.Banned {
			view.BanInfo = BanInfo{IsBanned: true, BanDate: row.BanDate, BanReason: row.BanReason}
		}
		items = append(items, view)
	}

	c.JSON(http.StatusOK, pagination.NewPaginator(items, totalCount, params))
}

// CreateUser POST /api/sa/users
func CreateUser(c *gin.Context) {
	route := c.FullPath()

	var input struct {
		Login    string `json:"login"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if input.Login == "" || input.Email == "" || input.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}
	if ExistsByLogin(input.Login) {
		c.JSON(http.StatusConflict, gin.H{"error": "Login already in use"})
		return
	}
	if ExistsByEmail(input.Email) {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already in use"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error hashing password"})
		return
	}

	newUser := User{
		ID:           uuid.New().String(),
		CreatedAt:    time.Now(),
		Login:        input.Login,
		Email:        input.Email,
		PasswordHash: string(hash),
	}
	if err := database.DB.Create(&newUser).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating user"})
		logs.LogJSON("ERROR", "Error creating user", map[string]interface{}{
			"error": err.Error(),
			"route": route,
			"login": input.Login,
		})
		return
	}

	logs.LogJSON("INFO", "User created", map[string]interface{}{
		"route":  route,
		"userID": newUser.ID,
	})
	c.JSON(http.StatusCreated, ViewUser{
		ID:        newUser.ID,
		Login:     newUser.Login,
		Email:     newUser.Email,
		CreatedAt: newUser.CreatedAt,
	})
}

// DeleteUser DELETE /api/sa/users/:id
func DeleteUser(c *gin.Context) {
	route := c.FullPath()
	userID := c.Param("id")

	var count int64
	database.DB.Model(&User{}).Where("id = ?", userID).Count(&count)
	if count == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	// The user's like records and ban rows go with the account so the
	// ids cannot resurface in anyone's counts.
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM likes WHERE user_id = ?", userID).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM user_bans WHERE user_id = ?", userID).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM blog_bans WHERE user_id = ?", userID).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", userID).Delete(&User{}).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting user"})
		logs.LogJSON("ERROR", "Error deleting user", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": userID,
		})
		return
	}

	c.Status(http.StatusNoContent)
}
