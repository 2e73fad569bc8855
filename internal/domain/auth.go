package domain

// IdentityClaim is the only payload carried inside an access token.
type IdentityClaim struct {
	ID string `json:"id"`
}
