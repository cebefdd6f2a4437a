package registration

type CreateRegistrationRequest struct {
	FullName        string `json:"full_name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	DateOfBirth     string `json:"date_of_birth"`
	State           string `json:"state"`
	City            string `json:"city"`
	Pincode         string `json:"pincode"`
	Position        string `json:"position"`
	PreferredTrials string `json:"preferred_trials"`
	TermsAccepted   bool   `json:"terms_accepted"`
}

func (r CreateRegistrationRequest) fields() Fields {
	return Fields{
		FullName:        r.FullName,
		Email:           r.Email,
		Phone:           r.Phone,
		DateOfBirth:     r.DateOfBirth,
		State:           r.State,
		City:            r.City,
		Pincode:         r.Pincode,
		Position:        r.Position,
		PreferredTrials: r.PreferredTrials,
		TermsAccepted:   r.TermsAccepted,
	}
}
