package domain

import "time"

// FormVariant names which invoice form produced a submission.
type FormVariant string

const (
	VariantHourly   FormVariant = "hourly"
	VariantRetainer FormVariant = "retainer"
)

// Submission is the local record of one dispatch attempt. Only outcome
// metadata is kept; invoice payloads are never persisted.
type Submission struct {
	ID          string
	ClientName  string
	Variant     FormVariant
	Endpoint    string
	Recipient   string
	SubmittedAt time.Time
	OK          bool
	Error       string
}
