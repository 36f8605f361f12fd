package seed

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"fundportal/internal/models"
)

// ErrAlreadySeeded is returned by Load when the sample investor exists.
var ErrAlreadySeeded = errors.New("sample fund already loaded")

// Load writes the sample fund to db in one transaction. A non-nil userID
// links the investor to that login.
func Load(db *gorm.DB, userID *string) (*models.Investor, error) {
	snap := Snapshot()
	investor := snap.Investors[0]
	investor.UserID = userID

	err := db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Investor{}).Where("id = ?", investor.ID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrAlreadySeeded
		}

		if err := tx.Create(&investor).Error; err != nil {
			return fmt.Errorf("investor: %w", err)
		}
		batches := []struct {
			what string
			rows interface{}
			n    int
		}{
			{"contributions", &snap.Contributions, len(snap.Contributions)},
			{"fees", &snap.Fees, len(snap.Fees)},
			{"distributions", &snap.Distributions, len(snap.Distributions)},
			{"NAV statements", &snap.NAVStatements, len(snap.NAVStatements)},
			{"documents", &snap.Documents, len(snap.Documents)},
			{"drawdown notices", &snap.DrawdownNotices, len(snap.DrawdownNotices)},
			{"fund investments", &snap.FundInvestments, len(snap.FundInvestments)},
			{"co-investments", &snap.CoInvestments, len(snap.CoInvestments)},
		}
		for _, b := range batches {
			// gorm rejects empty slices.
			if b.n == 0 {
				continue
			}
			if err := tx.Create(b.rows).Error; err != nil {
				return fmt.Errorf("%s: %w", b.what, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &investor, nil
}
