package models

import "time"

// BagType is the closed set of filter bag constructions.
type BagType string

const (
	BagTypeCollar BagType = "collar"
	BagTypeSnap   BagType = "snap"
	BagTypeRing   BagType = "ring"
)

// BagTypes lists every supported bag type in display order.
var BagTypes = []BagType{BagTypeCollar, BagTypeSnap, BagTypeRing}

// Valid reports whether t is a known bag type.
func (t BagType) Valid() bool {
	switch t {
	case BagTypeCollar, BagTypeSnap, BagTypeRing:
		return true
	}
	return false
}

// RecipientDirectLink marks a pending record created without an invite email.
const RecipientDirectLink = "direct-link-generated"

// Submission is either a pending invite or a finalized bag answer. Both share
// the same token.
type Submission struct {
	ID             string     `db:"id" json:"id"`
	Token          string     `db:"token" json:"token"`
	RecipientEmail string     `db:"recipient_email" json:"recipient_email"`
	PONumber       *string    `db:"po_number" json:"po_number,omitempty"`
	AdminQuantity  *int       `db:"admin_quantity" json:"admin_quantity,omitempty"`
	AdminSize      *string    `db:"admin_size" json:"admin_size,omitempty"`
	BagType        *string    `db:"bag_type" json:"bag_type,omitempty"`
	CollarOD       *string    `db:"collar_od" json:"collar_od,omitempty"`
	CollarID       *string    `db:"collar_id" json:"collar_id,omitempty"`
	TubesheetData  *string    `db:"tubesheet_data" json:"tubesheet_data,omitempty"`
	TubesheetDia   *string    `db:"tubesheet_dia" json:"tubesheet_dia,omitempty"`
	ClientName     *string    `db:"client_name" json:"client_name,omitempty"`
	ClientEmail    *string    `db:"client_email" json:"client_email,omitempty"`
	Quantity       *int       `db:"quantity" json:"quantity,omitempty"`
	Remarks        *string    `db:"remarks" json:"remarks,omitempty"`
	Submitted      bool       `db:"submitted" json:"submitted"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	SubmittedAt    *time.Time `db:"submitted_at" json:"submitted_at,omitempty"`
}

// IsDirectLink reports whether the record was created by the raw link flow.
func (s *Submission) IsDirectLink() bool {
	return s.RecipientEmail == RecipientDirectLink
}

// IsFinalized reports whether the record carries a client answer.
func (s *Submission) IsFinalized() bool {
	return s.BagType != nil
}

// SubmissionStatus narrows the submission listing.
type SubmissionStatus string

const (
	SubmissionStatusPending   SubmissionStatus = "pending"
	SubmissionStatusSubmitted SubmissionStatus = "submitted"
)

// SubmissionFilter captures supported filters for listing submissions.
type SubmissionFilter struct {
	Status   SubmissionStatus
	PONumber string
}

// StringPtr returns nil for blank strings.
func StringPtr(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

// StringValue dereferences p, returning "" for nil.
func StringValue(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
