package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Skotchmaster/beauty_portal/internal/models"
	"github.com/Skotchmaster/beauty_portal/internal/tokens"
)

func (r *GormRepo) SaveRefreshToken(ctx context.Context, t *models.RefreshToken) error {
	return r.DB.WithContext(ctx).Create(t).Error
}

// RotationGrace is how long a rotated token is reported as ErrTokenRotated rather than
// ErrTokenNotUsable. It is never accepted again either way.
const RotationGrace = 30 * time.Second

func usable(db *gorm.DB, jti, rawToken string) error {
	var stored models.RefreshToken
	if err := db.Where("jti = ?", jti).First(&stored).Error; err != nil {
		return err
	}
	now := time.Now()
	if stored.ExpiresAt < now.Unix() || stored.Token != tokens.Sha256Hex(rawToken) {
		return ErrTokenNotUsable
	}
	if stored.Revoked {
		if stored.RotatedAt > 0 && now.Sub(time.Unix(stored.RotatedAt, 0)) < RotationGrace {
			return ErrTokenRotated
		}
		return ErrTokenNotUsable
	}
	return nil
}

// RotateRefreshToken revokes the presented token and stores its replacement atomically.
func (r *GormRepo) RotateRefreshToken(ctx context.Context, oldJTI, oldRaw string, next *models.RefreshToken) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := usable(tx, oldJTI, oldRaw); err != nil {
			return err
		}
		res := tx.Model(&models.RefreshToken{}).
			Where("jti = ? AND revoked = ?", oldJTI, false).
			Updates(map[string]any{"revoked": true, "rotated_at": time.Now().Unix()})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrTokenRotated
		}
		return tx.Create(next).Error
	})
}

func (r *GormRepo) RevokeRefreshToken(ctx context.Context, rawToken string) error {
	return r.DB.WithContext(ctx).Model(&models.RefreshToken{}).
		Where("token = ?", tokens.Sha256Hex(rawToken)).
		Update("revoked", true).Error
}
