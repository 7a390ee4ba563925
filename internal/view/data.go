package view

import "github.com/noah-isme/bagspec-api/internal/models"

// AdminPage backs the admin console.
type AdminPage struct {
	BagTypes []models.BagType
}

// FormPage backs the client form.
type FormPage struct {
	Token         string
	SubmitURL     string
	PONumber      *string
	AdminQuantity *int
	AdminSize     *string
	Submitted     bool
	// AskEmail is set for direct links where no recipient address is known.
	AskEmail bool
	BagTypes []models.BagType
}

// InvalidLinkPage is rendered for unknown tokens.
type InvalidLinkPage struct {
	Message string
}

// SubmissionsPage backs the admin submissions listing.
type SubmissionsPage struct {
	Submissions []models.Submission
	Status      string
	PONumber    string
	CSVURL      string
	PDFURL      string
}

// InviteEmail is the data of the invite email.
type InviteEmail struct {
	FormURL       string
	PONumber      string
	AdminSize     string
	AdminQuantity int
	ContactEmail  string
}

// SubmissionEmail is shared by the admin notification and client confirmation.
type SubmissionEmail struct {
	Submission     *models.Submission
	BagCount       int
	FormURL        string
	SubmissionsURL string
}
