package models

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	apperrors "fundportal/internal/errors"
)

func requireID(id string) error {
	if strings.TrimSpace(id) == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "id is required")
	}
	return nil
}

func nonNegative(field string, v decimal.Decimal) error {
	if v.IsNegative() {
		return apperrors.WithMessage(apperrors.ErrInvalidAmount, field+" must not be negative")
	}
	return nil
}

func positive(field string, v decimal.Decimal) error {
	if !v.IsPositive() {
		return apperrors.WithMessage(apperrors.ErrInvalidAmount, field+" must be positive")
	}
	return nil
}

// withinScale rejects values with more than places decimal places.
func withinScale(field string, v decimal.Decimal, places int32) error {
	if !v.Equal(v.Round(places)) {
		return apperrors.WithMessage(apperrors.ErrInvalidInput,
			field+" must have at most "+strconv.Itoa(int(places))+" decimal places")
	}
	return nil
}
