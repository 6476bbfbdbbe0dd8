package models

// Identity is the authenticated caller as established by the auth middleware.
type Identity struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// Is reports whether the identity belongs to userID. A nil identity matches nobody.
func (i *Identity) Is(userID string) bool {
	return i != nil && i.ID != "" && i.ID == userID
}
