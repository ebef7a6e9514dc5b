package model

import "errors"

type VisitorStatus string

const (
	VisitorPending   VisitorStatus = "pending"
	VisitorApproved  VisitorStatus = "approved"
	VisitorDenied    VisitorStatus = "denied"
	VisitorCompleted VisitorStatus = "completed"
)

var ErrInvalidTransition = errors.New("visitor status cannot change this way")

// CanBecome reports whether an operator decision may move a visitor from s to next.
// Pending visitors are approved or denied; approved visitors are completed.
func (s VisitorStatus) CanBecome(next VisitorStatus) bool {
	switch s {
	case VisitorPending:
		return next == VisitorApproved || next == VisitorDenied
	case VisitorApproved:
		return next == VisitorCompleted
	}
	return false
}

type Visitor struct {
	ID          string        `json:"id"`
	FullName    string        `json:"fullName" validate:"required"`
	CardNumber  string        `json:"cardNumber" validate:"required"`
	Destination string        `json:"destination"`
	VisitDate   string        `json:"visitDate" validate:"required,datetime=2006-01-02"`
	VisitTime   string        `json:"visitTime" validate:"required,datetime=15:04"`
	Purpose     string        `json:"purpose"`
	Status      VisitorStatus `json:"status" validate:"required,oneof=pending approved denied completed"`
	CreatedAt   string        `json:"createdAt"`
}

func (v Visitor) GetID() string        { return v.ID }
func (v Visitor) GetCreatedAt() string { return v.CreatedAt }

// VisitorInput is the registration form. New visitors always start pending.
type VisitorInput struct {
	FullName    string `json:"fullName"`
	CardNumber  string `json:"cardNumber"`
	Destination string `json:"destination"`
	VisitDate   string `json:"visitDate"`
	VisitTime   string `json:"visitTime"`
	Purpose     string `json:"purpose"`
}

func (in VisitorInput) Visitor(id, createdAt string) Visitor {
	return Visitor{
		ID:          id,
		FullName:    in.FullName,
		CardNumber:  in.CardNumber,
		Destination: in.Destination,
		VisitDate:   in.VisitDate,
		VisitTime:   in.VisitTime,
		Purpose:     in.Purpose,
		Status:      VisitorPending,
		CreatedAt:   createdAt,
	}
}

func (in VisitorInput) Validate() error {
	return Validate(in.Visitor("", ""))
}

// VisitorPatch holds the editable visitor fields. Status changes go through
// operator decisions instead.
type VisitorPatch struct {
	FullName    *string `json:"fullName,omitempty"`
	CardNumber  *string `json:"cardNumber,omitempty"`
	Destination *string `json:"destination,omitempty"`
	VisitDate   *string `json:"visitDate,omitempty"`
	VisitTime   *string `json:"visitTime,omitempty"`
	Purpose     *string `json:"purpose,omitempty"`
}

func (p VisitorPatch) Apply(v *Visitor) {
	set(&v.FullName, p.FullName)
	set(&v.CardNumber, p.CardNumber)
	set(&v.Destination, p.Destination)
	set(&v.VisitDate, p.VisitDate)
	set(&v.VisitTime, p.VisitTime)
	set(&v.Purpose, p.Purpose)
}

// ValidateAgainst checks the record that applying p to v would produce.
func (p VisitorPatch) ValidateAgainst(v Visitor) error {
	p.Apply(&v)
	return Validate(v)
}
