package domain

// Identity is the already-verified user record the upstream auth layer hands
// the gateway: who the connection belongs to and their current rating.
type Identity struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Rating   int    `json:"rating"`
}
