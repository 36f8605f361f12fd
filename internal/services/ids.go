package services

import (
	"time"

	"gorm.io/gorm"

	apperrors "fundportal/internal/errors"
	"fundportal/internal/uuid"
)

const idAttempts = 10

// newRecordID returns an unused PREFIX-YYYYMMDD-NNN identifier for model's table.
func newRecordID(db *gorm.DB, model interface{}, prefix string) (string, error) {
	now := time.Now()
	for i := 0; i < idAttempts; i++ {
		id := uuid.Prefixed(prefix, now)
		taken, err := idTaken(db, model, id)
		if err != nil {
			return "", err
		}
		if !taken {
			return id, nil
		}
	}
	// The day's three-digit space is crowded; fall back to a UUID.
	return prefix + "-" + uuid.New(), nil
}

// idTaken reports whether id exists in model's table, soft-deleted rows included.
func idTaken(db *gorm.DB, model interface{}, id string) (bool, error) {
	var count int64
	if err := db.Unscoped().Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return count > 0, nil
}
