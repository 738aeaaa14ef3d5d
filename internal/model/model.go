package model

// SessionState is the client-held authentication state.
//
// IsLoggedIn is true iff ID is set. Username travels with ID but does not affect the check.
type SessionState struct {
	IsLoggedIn bool    `json:"isLoggedIn"`
	ID         *int64  `json:"id"`
	Username   *string `json:"username"`
}

// LoggedOut returns the default session.
func LoggedOut() SessionState {
	return SessionState{}
}

// LoggedIn returns a session for the given identity.
func LoggedIn(id Identity) SessionState {
	uid := id.ID
	name := id.Username
	return SessionState{IsLoggedIn: true, ID: &uid, Username: &name}
}

func (s SessionState) Valid() bool {
	return s.IsLoggedIn == (s.ID != nil)
}

// Clone returns a copy that shares no pointers with s.
func (s SessionState) Clone() SessionState {
	out := SessionState{IsLoggedIn: s.IsLoggedIn}
	if s.ID != nil {
		v := *s.ID
		out.ID = &v
	}
	if s.Username != nil {
		v := *s.Username
		out.Username = &v
	}
	return out
}

func (s SessionState) Equal(o SessionState) bool {
	if s.IsLoggedIn != o.IsLoggedIn {
		return false
	}
	if (s.ID == nil) != (o.ID == nil) || (s.ID != nil && *s.ID != *o.ID) {
		return false
	}
	if (s.Username == nil) != (o.Username == nil) || (s.Username != nil && *s.Username != *o.Username) {
		return false
	}
	return true
}

// Identity is what the backend returns on a successful login.
type Identity struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

type UserSummary struct {
	ID       int64   `json:"id"`
	Username string  `json:"username"`
	Email    string  `json:"email"`
	Image    *string `json:"image"`
}

// PageResult is one page of the user directory. Page is 0-based.
type PageResult struct {
	Items      []UserSummary `json:"content"`
	Page       int           `json:"page"`
	Size       int           `json:"size"`
	TotalPages int           `json:"totalPages"`
}

type SignUpRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
