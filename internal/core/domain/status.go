package domain

import (
	"encoding/json"
	"fmt"
)

// Activity is the coarse account lifecycle flag. Anything other than ACTIVE
// causes the account to be pruned on its next login attempt.
type Activity string

const (
	ActivityActive   Activity = "ACTIVE"
	ActivityInactive Activity = "INACTIVE"
)

// Valid reports whether the activity value is one of the known states.
func (a Activity) Valid() bool {
	return a == ActivityActive || a == ActivityInactive
}

// AccountStatus is the structured status flag set carried by every account.
// At rest it is serialized as a JSON string; the activity flag uses the legacy
// key "status" (clients parse that key, so it cannot be renamed).
type AccountStatus struct {
	Activity Activity `json:"status"`
	Admin    bool     `json:"admin"`
	VIP      bool     `json:"vip"`
	Verified bool     `json:"verified"`
}

// DefaultStatus is the status assigned at registration.
func DefaultStatus() AccountStatus {
	return AccountStatus{Activity: ActivityActive}
}

// Serialize renders the status to its at-rest JSON form. The field order is
// fixed by the struct definition, which keeps the serialized blob stable for
// integrity digest purposes.
func (s AccountStatus) Serialize() (string, error) {
	if !s.Activity.Valid() {
		return "", fmt.Errorf("%w: activity must be ACTIVE or INACTIVE", ErrInvalidInput)
	}
	b, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("serialize status: %w", err)
	}
	return string(b), nil
}

// ParseStatus decodes a stored status blob. A blob that does not parse, or
// that carries an unknown activity value, indicates stored-data corruption and
// maps to ErrInternal rather than a panic.
func ParseStatus(raw string) (AccountStatus, error) {
	var s AccountStatus
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return AccountStatus{}, fmt.Errorf("%w: malformed stored status: %v", ErrInternal, err)
	}
	if !s.Activity.Valid() {
		return AccountStatus{}, fmt.Errorf("%w: unknown activity %q in stored status", ErrInternal, s.Activity)
	}
	return s, nil
}
