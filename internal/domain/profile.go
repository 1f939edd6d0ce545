package domain

import (
	"slices"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

// UserProfile is a signed-up user together with its social graph and visit diary.
// Relationship sets hold user IDs and never contain the profile's own ID.
type UserProfile struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Bio       string `json:"bio,omitempty"`
	Avatar    string `json:"avatar,omitempty"`
	CreatedAt int64  `json:"createdAt"` // epoch ms

	Followers        []string `json:"followers"`
	Following        []string `json:"following"`
	IncomingRequests []string `json:"incomingRequests"` // users asking to follow this one
	OutgoingRequests []string `json:"outgoingRequests"` // users this one asked to follow

	Diary []VisitLog `json:"diary"` // newest first
}

// Fold returns the case-folded form of s used for every case-insensitive
// identity comparison.
func Fold(s string) string {
	return cases.Fold().String(s)
}

// HasUsername reports whether username matches case-insensitively.
func (p *UserProfile) HasUsername(username string) bool {
	return Fold(p.Username) == Fold(username)
}

// HasEmail reports whether email matches case-insensitively.
func (p *UserProfile) HasEmail(email string) bool {
	return Fold(p.Email) == Fold(email)
}

// MatchesIdentifier reports whether identifier is this user's username or email.
func (p *UserProfile) MatchesIdentifier(identifier string) bool {
	return p.HasUsername(identifier) || p.HasEmail(identifier)
}

// Matches reports whether the folded query occurs in the username, name or bio.
// Callers pass an already folded, non-empty query.
func (p *UserProfile) Matches(foldedQuery string) bool {
	return strings.Contains(Fold(p.Username), foldedQuery) ||
		strings.Contains(Fold(p.Name), foldedQuery) ||
		strings.Contains(Fold(p.Bio), foldedQuery)
}

// DisplayAvatar returns the avatar, falling back to the first letter of the name.
func (p *UserProfile) DisplayAvatar() string {
	if p.Avatar != "" {
		return p.Avatar
	}
	r, size := utf8.DecodeRuneInString(p.Name)
	if size == 0 {
		return ""
	}
	return string(r)
}

// RequestFollow records a pending follow edge from p to target on both profiles.
// Repeating the request leaves both sets unchanged.
func (p *UserProfile) RequestFollow(target *UserProfile) {
	target.IncomingRequests = addID(target.IncomingRequests, p.ID, target.ID)
	p.OutgoingRequests = addID(p.OutgoingRequests, target.ID, p.ID)
}

// AcceptFollowFrom resolves requester's pending request: both pending entries go
// away and requester becomes a follower of p. Accepting twice is a no-op.
func (p *UserProfile) AcceptFollowFrom(requester *UserProfile) {
	p.IncomingRequests = removeID(p.IncomingRequests, requester.ID)
	requester.OutgoingRequests = removeID(requester.OutgoingRequests, p.ID)
	p.Followers = addID(p.Followers, requester.ID, p.ID)
	requester.Following = addID(requester.Following, p.ID, requester.ID)
}

// IsFollowing reports whether p follows userID.
func (p *UserProfile) IsFollowing(userID string) bool {
	return slices.Contains(p.Following, userID)
}

// PrependVisit adds v to the front of the diary.
func (p *UserProfile) PrependVisit(v VisitLog) {
	p.Diary = append([]VisitLog{v}, p.Diary...)
}

// Normalize replaces nil relationship and diary collections with empty ones so
// profiles persisted by older writers behave like fresh ones.
func (p *UserProfile) Normalize() {
	if p.Followers == nil {
		p.Followers = []string{}
	}
	if p.Following == nil {
		p.Following = []string{}
	}
	if p.IncomingRequests == nil {
		p.IncomingRequests = []string{}
	}
	if p.OutgoingRequests == nil {
		p.OutgoingRequests = []string{}
	}
	if p.Diary == nil {
		p.Diary = []VisitLog{}
	}
}

// addID appends id to set unless it is already present or equals owner.
func addID(set []string, id, owner string) []string {
	if id == owner || slices.Contains(set, id) {
		return set
	}
	return append(set, id)
}

func removeID(set []string, id string) []string {
	out := make([]string, 0, len(set))
	for _, existing := range set {
		if existing != id {
			out = append(out, existing)
		}
	}
	return out
}
