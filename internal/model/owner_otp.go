package model

// OwnerOTP is the single active one-time code for an email address. Requesting
// a new code overwrites the previous row; expiry is enforced by comparing
// expires_at against the clock, rows are only removed by the cleanup job.
type OwnerOTP struct {
	Email     string `json:"email"`
	Code      string `json:"code"`
	Used      bool   `json:"used"`
	Ctime     int64  `json:"ctime"`
	ExpiresAt int64  `json:"expires_at"`
}
