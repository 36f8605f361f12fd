package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "fundportal/internal/errors"
	"fundportal/internal/models"
	"fundportal/internal/pagination"
)

// recordPtr is satisfied by pointers to investor-scoped models.
type recordPtr[T any] interface {
	*T
	models.ScopedRecord
	SetID(string)
	AssignInvestor(string)
}

// RecordOptions configures a record service.
type RecordOptions struct {
	// Prefix starts generated identifiers, e.g. "CC" for CC-20210625-001.
	Prefix string
	// SortColumns may be named in ?sort=; DefaultOrder applies otherwise.
	SortColumns  []string
	DefaultOrder string
}

// recordService is the gorm-backed RecordServicer shared by contributions,
// fees, distributions, NAV statements and co-investments.
type recordService[T any, P recordPtr[T]] struct {
	db        *gorm.DB
	opts      RecordOptions
	dashboard DashboardServicer
}

// NewRecordService creates a RecordServicer for T. dashboard may be nil.
func NewRecordService[T any, P recordPtr[T]](db *gorm.DB, dashboard DashboardServicer, opts RecordOptions) RecordServicer[T] {
	if opts.DefaultOrder == "" {
		opts.DefaultOrder = "created_at"
	}
	return &recordService[T, P]{db: db, opts: opts, dashboard: dashboard}
}

// NewContributionService creates the RecordServicer for capital contributions.
func NewContributionService(db *gorm.DB, dashboard DashboardServicer) RecordServicer[models.CapitalContribution] {
	return NewRecordService[models.CapitalContribution](db, dashboard, RecordOptions{
		Prefix: "CC", SortColumns: []string{"date", "amount"}, DefaultOrder: "date",
	})
}

// NewFeeService creates the RecordServicer for fee charges.
func NewFeeService(db *gorm.DB, dashboard DashboardServicer) RecordServicer[models.FeeCharge] {
	return NewRecordService[models.FeeCharge](db, dashboard, RecordOptions{
		Prefix: "FEE", SortColumns: []string{"date", "amount", "status", "type"}, DefaultOrder: "date",
	})
}

// NewDistributionService creates the RecordServicer for distributions.
func NewDistributionService(db *gorm.DB, dashboard DashboardServicer) RecordServicer[models.Distribution] {
	return NewRecordService[models.Distribution](db, dashboard, RecordOptions{
		Prefix: "DIST", SortColumns: []string{"date", "amount"}, DefaultOrder: "date",
	})
}

// NewNAVService creates the RecordServicer for NAV statements.
func NewNAVService(db *gorm.DB, dashboard DashboardServicer) RecordServicer[models.NAVStatement] {
	return NewRecordService[models.NAVStatement](db, dashboard, RecordOptions{
		Prefix: "NAV", SortColumns: []string{"date"}, DefaultOrder: "date",
	})
}

// NewCoInvestmentService creates the RecordServicer for co-investments.
func NewCoInvestmentService(db *gorm.DB, dashboard DashboardServicer) RecordServicer[models.CoInvestment] {
	return NewRecordService[models.CoInvestment](db, dashboard, RecordOptions{
		Prefix: "COINV", SortColumns: []string{"date", "amount", "status", "name"}, DefaultOrder: "date",
	})
}

func (s *recordService[T, P]) invalidate(investorID string) {
	if s.dashboard != nil {
		s.dashboard.Invalidate(investorID)
	}
}

func (s *recordService[T, P]) requireInvestor(investorID string) error {
	var count int64
	if err := s.db.Model(&models.Investor{}).Where("id = ?", investorID).Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return apperrors.ErrInvestorNotFound
	}
	return nil
}

// Create stores a new record for the investor. An empty ID is generated;
// a supplied ID that already exists is rejected.
func (s *recordService[T, P]) Create(investorID string, record *T) (*T, error) {
	if err := s.requireInvestor(investorID); err != nil {
		return nil, err
	}

	p := P(record)
	p.AssignInvestor(investorID)
	if p.GetID() == "" {
		id, err := newRecordID(s.db, new(T), s.opts.Prefix)
		if err != nil {
			return nil, err
		}
		p.SetID(id)
	} else {
		taken, err := idTaken(s.db, new(T), p.GetID())
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperrors.WithMessage(apperrors.ErrDuplicateIdentifier, "record "+p.GetID()+" already exists")
		}
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	if err := s.db.Create(record).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	s.invalidate(investorID)
	return record, nil
}

// List returns one page of the investor's records.
func (s *recordService[T, P]) List(investorID string, page pagination.PageRequest) (*pagination.PageResponse[T], error) {
	page.Defaults()

	query := s.db.Model(new(T)).Where("investor_id = ?", investorID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var records []T
	if err := query.Scopes(
		pagination.Order(page, s.opts.SortColumns, s.opts.DefaultOrder),
		pagination.Paginate(page),
	).Find(&records).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	resp := pagination.NewPageResponse(records, page.Page, page.PageSize, total)
	return &resp, nil
}

// ListAll returns every record of the investor in default order.
func (s *recordService[T, P]) ListAll(investorID string) ([]T, error) {
	var records []T
	if err := s.db.Where("investor_id = ?", investorID).Order(s.opts.DefaultOrder).Find(&records).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if records == nil {
		records = []T{}
	}
	return records, nil
}

// Get returns one of the investor's records.
func (s *recordService[T, P]) Get(investorID, id string) (*T, error) {
	record := new(T)
	if err := s.db.Where("id = ? AND investor_id = ?", id, investorID).First(record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrRecordNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return record, nil
}

// Update replaces every editable field of the record in place.
func (s *recordService[T, P]) Update(investorID, id string, record *T) (*T, error) {
	existing, err := s.Get(investorID, id)
	if err != nil {
		return nil, err
	}

	p := P(record)
	p.SetID(id)
	p.AssignInvestor(investorID)
	if err := p.Validate(); err != nil {
		return nil, err
	}

	if err := s.db.Model(existing).Select("*").Omit("id", "investor_id", "created_at", "deleted_at").
		Updates(record).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	s.invalidate(investorID)
	return s.Get(investorID, id)
}

// Delete soft-deletes the record.
func (s *recordService[T, P]) Delete(investorID, id string) error {
	existing, err := s.Get(investorID, id)
	if err != nil {
		return err
	}
	if err := s.db.Delete(existing).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	s.invalidate(investorID)
	return nil
}
