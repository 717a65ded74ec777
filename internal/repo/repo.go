package repo

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNoCartItems    = errors.New("no items in cart")
	ErrUserExists     = errors.New("user already exists")
	ErrTokenNotUsable = errors.New("token expired or revoked")
	// ErrTokenRotated means another request rotated the token within RotationGrace.
	ErrTokenRotated = errors.New("token was just rotated")
)

type GormRepo struct{ DB *gorm.DB }

func New(db *gorm.DB) *GormRepo {
	return &GormRepo{DB: db}
}
