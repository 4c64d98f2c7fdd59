package constants

// SheetStatus is the canonical review status for rows in sheets.
type SheetStatus string

// Stable values (store these exact strings in DB).
const (
	SheetStatusOK     SheetStatus = "OK"           // result document validated
	SheetStatusReview SheetStatus = "NEEDS_REVIEW" // schema failed or lanes were discarded
)
