package domain

import "time"

// Customer is unique per business and lower-cased e-mail.
type Customer struct {
	ID         string
	BusinessID string
	Name       string
	Email      *string
	Phone      *string
	CreatedAt  time.Time
}
