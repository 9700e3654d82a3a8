package domain

// BusinessType is the kind of business offering appointments.
type BusinessType string

const (
	BusinessTypeClinic BusinessType = "clinic"
	BusinessTypeSalon  BusinessType = "salon"
	BusinessTypeSpa    BusinessType = "spa"
)

// Business is a tenant. The booking flow only reads it.
type Business struct {
	ID      string
	Name    string
	Type    BusinessType
	Email   string
	Phone   *string
	Address *string
	OwnerID string
}

// IsOwnedBy reports whether userID manages the business.
func (b *Business) IsOwnedBy(userID string) bool {
	return userID != "" && b.OwnerID == userID
}
