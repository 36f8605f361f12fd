package models

import (
	"time"

	"github.com/shopspring/decimal"

	apperrors "fundportal/internal/errors"
)

// NoticeStatus is the persisted lifecycle status of a drawdown notice.
type NoticeStatus string

const (
	NoticeDraft   NoticeStatus = "Draft"
	NoticeSent    NoticeStatus = "Sent"
	NoticePaid    NoticeStatus = "Paid"
	NoticePending NoticeStatus = "Pending"
)

// NoticeState is the lifecycle position of a drawdown notice. It is a closed
// set: Draft, Sent, Pending and Paid. Only Paid carries a payment date.
type NoticeState interface {
	Status() NoticeStatus
	isNoticeState()
}

// Draft is a notice still being prepared by an administrator.
type Draft struct{}

// Sent is a notice delivered to the investor and awaiting payment.
type Sent struct{}

// Pending is a sent notice whose due date passed without payment.
type Pending struct{}

// Paid is a settled notice.
type Paid struct {
	On time.Time
}

func (Draft) Status() NoticeStatus   { return NoticeDraft }
func (Sent) Status() NoticeStatus    { return NoticeSent }
func (Pending) Status() NoticeStatus { return NoticePending }
func (Paid) Status() NoticeStatus    { return NoticePaid }

func (Draft) isNoticeState()   {}
func (Sent) isNoticeState()    {}
func (Pending) isNoticeState() {}
func (Paid) isNoticeState()    {}

// DrawdownNotice is a capital call issued to an investor.
type DrawdownNotice struct {
	Base
	InvestorScope
	IssueDate   time.Time       `gorm:"not null" json:"issue_date"`
	DueDate     time.Time       `gorm:"not null" json:"due_date"`
	Amount      decimal.Decimal `gorm:"type:numeric(20,4);not null" json:"amount"`
	Percentage  decimal.Decimal `gorm:"type:numeric(9,4);not null;default:0" json:"percentage"`
	Purpose     string          `json:"purpose"`
	Status      NoticeStatus    `gorm:"not null;default:'Draft';index" json:"status"`
	PaymentDate *time.Time      `json:"payment_date,omitempty"`
}

// State projects the persisted status columns into a NoticeState.
// A notice that fails Validate projects to Draft.
func (n DrawdownNotice) State() NoticeState {
	switch n.Status {
	case NoticeSent:
		return Sent{}
	case NoticePending:
		return Pending{}
	case NoticePaid:
		if n.PaymentDate != nil {
			return Paid{On: *n.PaymentDate}
		}
	}
	return Draft{}
}

// SetState writes a NoticeState back to the status columns without
// checking the lifecycle; use Transition for administrator actions.
func (n *DrawdownNotice) SetState(s NoticeState) {
	n.Status = s.Status()
	if paid, ok := s.(Paid); ok {
		on := paid.On
		n.PaymentDate = &on
		return
	}
	n.PaymentDate = nil
}

// CanTransition reports whether a notice in state from may move to to.
func CanTransition(from, to NoticeState) bool {
	switch from.(type) {
	case Draft:
		_, ok := to.(Sent)
		return ok
	case Sent:
		switch to.(type) {
		case Paid, Pending:
			return true
		}
	case Pending:
		_, ok := to.(Paid)
		return ok
	}
	return false
}

// Transition moves the notice along its lifecycle:
// Draft -> Sent -> Paid | Pending, and Pending -> Paid.
func (n *DrawdownNotice) Transition(to NoticeState) error {
	if !CanTransition(n.State(), to) {
		return apperrors.WithMessage(apperrors.ErrInvalidNoticeTransition,
			"cannot move notice from "+string(n.Status)+" to "+string(to.Status()))
	}
	n.SetState(to)
	return nil
}

// IsOverdue reports whether a sent notice is past its due date at asOf.
func (n DrawdownNotice) IsOverdue(asOf time.Time) bool {
	_, sent := n.State().(Sent)
	return sent && asOf.After(n.DueDate)
}

func (n DrawdownNotice) Validate() error {
	if err := requireID(n.ID); err != nil {
		return err
	}
	switch n.Status {
	case NoticeDraft, NoticeSent, NoticePending:
		if n.PaymentDate != nil {
			return apperrors.WithMessage(apperrors.ErrInvalidInput, "payment date is only allowed on paid notices")
		}
	case NoticePaid:
		if n.PaymentDate == nil {
			return apperrors.WithMessage(apperrors.ErrInvalidInput, "paid notices require a payment date")
		}
	default:
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid notice status")
	}
	if n.DueDate.Before(n.IssueDate) {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "due date must not be before issue date")
	}
	if err := nonNegative("notice amount", n.Amount); err != nil {
		return err
	}
	return nonNegative("notice percentage", n.Percentage)
}
