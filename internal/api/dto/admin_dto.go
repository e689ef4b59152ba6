package dto

// LoginRequest payload for admin login.
type LoginRequest struct {
	Password string `json:"password"`
}

// CleanupRequest payload for the retention sweep trigger.
type CleanupRequest struct {
	Days int `json:"days"`
}
