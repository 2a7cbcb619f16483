package utils

import (
	"TuneDuel/models/postgres"
	"fmt"

	"gorm.io/gorm"
)

// FindUserByEmail resolves the account behind an authenticated email.
func FindUserByEmail(db *gorm.DB, email string) (*postgres.User, error) {
	var user postgres.User
	result := db.Where("email = ?", email).First(&user)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("user not found")
		}
		return nil, result.Error
	}
	return &user, nil
}

// ProfileExists checks that a game profile exists for the username.
func ProfileExists(db *gorm.DB, username string) (bool, error) {
	var count int64
	err := db.Model(&postgres.GameProfile{}).
		Where("username = ?", username).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
