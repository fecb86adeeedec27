package entities

import "time"

// Client is a customer of the business.
//
// Name and Phone are required; the remaining contact fields are optional and nil
// when the user left them blank. Orders reference clients by ID only, deleting a
// client does not touch its orders.
type Client struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     *string   `json:"email,omitempty"`
	Address   *string   `json:"address,omitempty"`
	Notes     *string   `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EmailOrEmpty returns the e-mail or "" when it was not informed.
func (c Client) EmailOrEmpty() string {
	return derefString(c.Email)
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
