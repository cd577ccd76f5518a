package persistence

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/carbon-tracker/backend/internal/application/adapter"
	"github.com/carbon-tracker/backend/internal/integration/persistence/model"
)

// TokenRepository stores refresh tokens. Only a SHA-256 digest of each token
// is written; callers always pass the raw token.
type TokenRepository interface {
	SaveRefreshToken(ctx context.Context, token string, userID uuid.UUID, expiresAt time.Time) error
	RefreshTokenState(ctx context.Context, token string) (adapter.RefreshTokenState, error)
	InvalidateRefreshToken(ctx context.Context, token string) error
	InvalidateUserRefreshTokens(ctx context.Context, userID uuid.UUID) error

	// DeleteExpiredRefreshTokens removes tokens that expired before the cutoff.
	DeleteExpiredRefreshTokens(ctx context.Context, before time.Time) (int64, error)
}

type tokenRepository struct {
	db *gorm.DB
}

// NewTokenRepository creates a new token repository instance.
func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &tokenRepository{db: db}
}

func tokenDigest(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func (r *tokenRepository) SaveRefreshToken(ctx context.Context, token string, userID uuid.UUID, expiresAt time.Time) error {
	return r.db.WithContext(ctx).Create(&model.RefreshTokenModel{
		ID:        uuid.New(),
		Token:     tokenDigest(token),
		UserID:    userID,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().UTC(),
	}).Error
}

func (r *tokenRepository) RefreshTokenState(ctx context.Context, token string) (adapter.RefreshTokenState, error) {
	var m model.RefreshTokenModel
	err := r.db.WithContext(ctx).Where("token = ?", tokenDigest(token)).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return adapter.RefreshTokenUnknown, nil
	}
	if err != nil {
		return "", err
	}

	switch {
	case m.Invalidated:
		return adapter.RefreshTokenRevoked, nil
	case !m.ExpiresAt.After(time.Now().UTC()):
		return adapter.RefreshTokenExpired, nil
	default:
		return adapter.RefreshTokenActive, nil
	}
}

func (r *tokenRepository) InvalidateRefreshToken(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).
		Model(&model.RefreshTokenModel{}).
		Where("token = ?", tokenDigest(token)).
		Update("invalidated", true).Error
}

func (r *tokenRepository) InvalidateUserRefreshTokens(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&model.RefreshTokenModel{}).
		Where("user_id = ? AND invalidated = ?", userID, false).
		Update("invalidated", true).Error
}

func (r *tokenRepository) DeleteExpiredRefreshTokens(ctx context.Context, before time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at < ?", before).
		Delete(&model.RefreshTokenModel{})
	return result.RowsAffected, result.Error
}
