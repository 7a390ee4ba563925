package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Quantity accepts either a JSON number or a numeric string.
type Quantity struct {
	raw string
}

// NewQuantity builds a Quantity from its textual form.
func NewQuantity(raw string) Quantity {
	return Quantity{raw: strings.TrimSpace(raw)}
}

// UnmarshalJSON implements json.Unmarshaler.
func (q *Quantity) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		q.raw = ""
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		q.raw = strings.TrimSpace(s)
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return fmt.Errorf("quantity must be a number or string")
		}
		q.raw = n.String()
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (q Quantity) MarshalJSON() ([]byte, error) {
	if q.raw == "" {
		return []byte("null"), nil
	}
	if n, err := q.Int(); err == nil {
		return []byte(strconv.Itoa(n)), nil
	}
	return json.Marshal(q.raw)
}

// Empty reports whether no quantity was supplied.
func (q Quantity) Empty() bool {
	return q.raw == "" || q.raw == "0"
}

// Int parses the quantity. Integral floats such as 50.0 are accepted.
func (q Quantity) Int() (int, error) {
	if n, err := strconv.Atoi(q.raw); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(q.raw, 64)
	if err != nil || f != math.Trunc(f) || math.IsInf(f, 0) || f > math.MaxInt32 || f < math.MinInt32 {
		return 0, fmt.Errorf("invalid quantity %q", q.raw)
	}
	return int(f), nil
}

// SendFormRequest is the admin invite payload.
type SendFormRequest struct {
	RecipientEmail string   `json:"recipient_email" validate:"required,email"`
	PONumber       string   `json:"po_number" validate:"max=100"`
	AdminQuantity  Quantity `json:"admin_quantity" swaggertype:"integer"`
	AdminSize      string   `json:"admin_size" validate:"required,max=200"`
}

// GenerateLinkRequest creates a pending record without sending email.
type GenerateLinkRequest struct {
	PONumber string `json:"po_number" validate:"max=100"`
}

// FormLinkResponse is returned by both link issuing endpoints.
type FormLinkResponse struct {
	FormURL string `json:"form_url"`
	Token   string `json:"token"`
}

// BagSpec is one bag answer entered by the client. Only the fields of the
// chosen bag type are kept.
type BagSpec struct {
	BagType       string `json:"bag_type" validate:"required,oneof=collar snap ring"`
	CollarOD      string `json:"collar_od" validate:"max=100"`
	CollarID      string `json:"collar_id" validate:"max=100"`
	TubesheetData string `json:"tubesheet_data"`
	TubesheetDia  string `json:"tubesheet_dia" validate:"max=100"`
	ClientName    string `json:"client_name" validate:"required,max=200"`
	ClientEmail   string `json:"client_email" validate:"omitempty,email,max=200"`
}

// SubmitFormRequest carries the client answer. Either Bags with exactly one
// element or Bag may be used.
type SubmitFormRequest struct {
	Bags          []BagSpec `json:"bags"`
	Bag           *BagSpec  `json:"bag,omitempty"`
	GlobalRemarks string    `json:"global_remarks"`
}

// SubmitFormResponse acknowledges a finalized submission.
type SubmitFormResponse struct {
	SubmissionID string `json:"submission_id"`
	BagsCount    int    `json:"bags_count"`
}
