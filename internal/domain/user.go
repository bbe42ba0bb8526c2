package domain

import "time"

// User is the full account record. Password is the bcrypt hash and is never
// serialized.
type User struct {
	ID              string       `json:"id"`
	FirstName       string       `json:"firstName"`
	LastName        string       `json:"lastName"`
	Email           string       `json:"email"`
	Password        string       `json:"-"`
	Headline        string       `json:"headline,omitempty"`
	Summary         string       `json:"summary,omitempty"`
	ProfilePicture  string       `json:"profilePicture,omitempty"`
	Connections     []string     `json:"connections"`
	SentRequests    []string     `json:"sentRequests"`
	PendingRequests []string     `json:"pendingRequests"`
	Experience      []Experience `json:"experience"`
	Education       []Education  `json:"education"`
	CreatedAt       time.Time    `json:"createdAt"`
	UpdatedAt       time.Time    `json:"updatedAt"`
}

// Experience is a work-history entry owned by a user.
type Experience struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Location    string     `json:"location,omitempty"`
	From        time.Time  `json:"from"`
	To          *time.Time `json:"to,omitempty"`
	Current     bool       `json:"current"`
	Description string     `json:"description,omitempty"`
}

// Education is a schooling entry owned by a user.
type Education struct {
	ID           string     `json:"id"`
	School       string     `json:"school"`
	Degree       string     `json:"degree"`
	FieldOfStudy string     `json:"fieldOfStudy"`
	From         time.Time  `json:"from"`
	To           *time.Time `json:"to,omitempty"`
	Current      bool       `json:"current"`
	Description  string     `json:"description,omitempty"`
}

// UserSummary is the subset of profile fields returned by search results and
// relation listings.
type UserSummary struct {
	ID             string `json:"id"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Headline       string `json:"headline,omitempty"`
	ProfilePicture string `json:"profilePicture,omitempty"`
}

// ToSummary projects the user down to its public summary.
func (u *User) ToSummary() UserSummary {
	return UserSummary{
		ID:             u.ID,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		Headline:       u.Headline,
		ProfilePicture: u.ProfilePicture,
	}
}

// HasConnection reports whether other is in the user's connections set.
func (u *User) HasConnection(other string) bool { return contains(u.Connections, other) }

// HasSentRequest reports whether the user has an outstanding request to other.
func (u *User) HasSentRequest(other string) bool { return contains(u.SentRequests, other) }

// HasPendingRequest reports whether other has an outstanding request to the user.
func (u *User) HasPendingRequest(other string) bool { return contains(u.PendingRequests, other) }

func contains(set []string, id string) bool {
	for _, v := range set {
		if v == id {
			return true
		}
	}
	return false
}

// AddToSet appends id if absent and returns the resulting set.
func AddToSet(set []string, id string) []string {
	if contains(set, id) {
		return set
	}
	return append(set, id)
}

// RemoveFromSet deletes id if present. Removing an absent id is a no-op.
func RemoveFromSet(set []string, id string) []string {
	for i, v := range set {
		if v == id {
			return append(set[:i], set[i+1:]...)
		}
	}
	return set
}
