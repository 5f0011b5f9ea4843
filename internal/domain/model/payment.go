package model

// PaymentVerification is the Khalti verification outcome.
type PaymentVerification struct {
	Idx    string
	Amount int64
	State  string
}
