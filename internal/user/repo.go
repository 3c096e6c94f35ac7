package user

import (
	"errors"

	"gorm.io/gorm"

	"github.com/NikitaSavelev/BlogDeck-Back/internal/apperror"
	"github.com/NikitaSavelev/BlogDeck-Back/internal/database"
)

// GetByID loads one user, apperror.ErrNotFound when absent.
func GetByID(userID string) (*User, error) {
	var u User
	if err := database.DB.Where("id = ?", userID).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// GetByLoginOrEmail resolves the login credential used at sign-in.
func GetByLoginOrEmail(loginOrEmail string) (*User, error) {
	var u User
	err := database.DB.Where("login = ? OR email = ?", loginOrEmail, loginOrEmail).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func ExistsByLogin(login string) bool {
	var count int64
	database.DB.Model(&User{}).Where("login = ?", login).Count(&count)
	return count > 0
}

func ExistsByEmail(email string) bool {
	var count int64
	database.DB.Model(&User{}).Where("email = ?", email).Count(&count)
	return count > 0
}

// IsAdmin checks the is_admin flag for middleware; an unknown user is
// simply not an admin.
func IsAdmin(userID string) (bool, error) {
	var isAdmin bool
	if err := database.DB.Model(&User{}).Select("is_admin").Where("id = ?", userID).Scan(&isAdmin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return isAdmin, nil
}
