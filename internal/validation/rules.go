package validation

// Credentials validates a signup request.
func (v *Validator) Credentials(username, password string, minPasswordLength int) {
	v.Required("username", username)
	v.Required("password", password)
	if minPasswordLength > 1 {
		v.MinLength("password", password, minPasswordLength)
	}
}

// Transaction validates the caller-supplied fields of a ledger entry.
func (v *Validator) Transaction(username string, amount float64, location, device string) {
	v.Required("username", username)
	v.Finite("amount", amount)
	v.NonNegative("amount", amount)
	v.Required("location", location)
	v.Required("device", device)
}
