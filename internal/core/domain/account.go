package domain

// TimeLayout is the wire/storage format for account timestamps (RFC 3339 UTC).
// created_at participates in the integrity digest, so the exact string written
// at registration must never be reformatted afterwards.
const TimeLayout = "2006-01-02T15:04:05.000Z"

// Account is the durable account record.
//
// Status and DataHash are stored in their serialized forms: Status as the JSON
// blob described in status.go, DataHash as the hex integrity digest over
// {username, password_hash, created_at, status}. Every code path that rewrites
// a digest-covered field must rewrite DataHash in the same store operation.
type Account struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	CreatedAt    string `json:"created_at"`
	LastLogin    string `json:"last_login,omitempty"`
	DisplayName  string `json:"display_name"`
	Status       string `json:"status"`
	DataHash     string `json:"-"`
	SessionToken string `json:"-"`
}

// Session is the server-held session state, keyed by the session id carried in
// the client's cookie. Status is a cached copy of the account's serialized
// status for quick checks; the authoritative copy lives on the account record.
// Token must equal the account's stored session_token for the session to be
// honored.
type Session struct {
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Status      string `json:"status"`
	Token       string `json:"token"`
}
