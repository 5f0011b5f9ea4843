package dto

// KhaltiVerifyRequest carries the wallet token and amount in paisa.
type KhaltiVerifyRequest struct {
	Token  string `json:"token"`
	Amount int64  `json:"amount"`
}

// PaymentResponse is the verification outcome.
type PaymentResponse struct {
	Idx    string `json:"idx"`
	Amount int64  `json:"amount"`
	State  string `json:"state"`
}
