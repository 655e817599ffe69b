package domain

// Borrower is a customer record targeted for collections outreach. Records
// are immutable for the lifetime of the process.
type Borrower struct {
	ID                int     `json:"id"`
	Name              string  `json:"name"`
	Email             string  `json:"email"`
	Phone             string  `json:"phone"`
	OutstandingAmount float64 `json:"outstandingAmount"`
}
