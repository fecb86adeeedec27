package request

import "climatec_os/internal/usecase"

// ClientRequest is the create/update payload of a client. Required fields are
// checked by the use case so every violation is reported at once.
type ClientRequest struct {
	Name    string  `json:"name"`
	Phone   string  `json:"phone"`
	Email   *string `json:"email"`
	Address *string `json:"address"`
	Notes   *string `json:"notes"`
}

func (r ClientRequest) ToInput() usecase.ClientInput {
	return usecase.ClientInput{
		Name:    r.Name,
		Phone:   r.Phone,
		Email:   r.Email,
		Address: r.Address,
		Notes:   r.Notes,
	}
}
