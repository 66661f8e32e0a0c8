package model

import "time"

// User is a registered account. GitHub OAuth is the identity provider, so
// the stable external identifier is GitHub's numeric user ID. We still mint
// our own internal string ID (xid) so primary keys aren't tied to a third
// party's numbering scheme.
//
// Email can be empty — GitHub only returns the primary email if the user has
// made it public. An empty string is simpler to handle than a nullable
// pointer and safe to render.
type User struct {
	ID        string    `json:"id"`
	GitHubID  int64     `json:"githubId"`
	Login     string    `json:"login"`
	Email     string    `json:"email"`
	AvatarURL string    `json:"avatarUrl"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
