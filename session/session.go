// Package session adapts a newly obtained identity-provider profile
// onto the legacy "whoami" user-info shape that existing state
// consumers still expect.
package session

// Profile is the identity-provider shape, externally supplied and
// never mutated.
type Profile struct {
	Email      string `json:"email"`
	GivenName  string `json:"givenName"`
	FamilyName string `json:"familyName"`
}

// UserInfo is the legacy user-info shape. Roles is always empty: the
// identity provider does not expose role claims to this client, and
// consumers of the legacy shape tolerate an empty list. Kept as a
// documented limitation until the legacy shape is retired.
type UserInfo struct {
	Email     string   `json:"email"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Roles     []string `json:"roles"`
}

// State is the session slice. A zero State is the valid initial state:
// not logged in, no user info, no error.
type State struct {
	ErrorMessage string
	HasUserInfo  bool
	IsLoggedIn   bool
	ShowError    bool
	UserInfo     *UserInfo
}

// EventType discriminates session events.
type EventType string

// EventProfileObtained fires once when the identity provider returns
// the user's profile.
const EventProfileObtained EventType = "session/profileObtained"

// Event is a session event. Profile is only meaningful for
// EventProfileObtained.
type Event struct {
	Type    EventType
	Profile Profile
}

// Reduce is the session state transition. On EventProfileObtained it
// returns a logged-in state carrying the adapted profile; every other
// event returns the input state unchanged.
func Reduce(state State, event Event) State {
	switch event.Type {
	case EventProfileObtained:
		return State{
			ErrorMessage: state.ErrorMessage,
			HasUserInfo:  true,
			IsLoggedIn:   true,
			ShowError:    state.ShowError,
			UserInfo:     adaptProfile(event.Profile),
		}
	default:
		return state
	}
}

// adaptProfile maps the provider profile onto the legacy shape.
func adaptProfile(p Profile) *UserInfo {
	return &UserInfo{
		Email:     p.Email,
		FirstName: p.GivenName,
		LastName:  p.FamilyName,
		Roles:     []string{},
	}
}
