package sharing

// LoginRequest carries the social login attributes delivered by the
// frontend after a completed social sign-in.
type LoginRequest struct {
	Email          string
	Image          string
	SocialPlatform string
	SocialID       string
	SocialName     string
}

// IssueProfileRequest asks for a credential profile granting the named
// recipient access to the named provider's shares for TTLSeconds.
type IssueProfileRequest struct {
	Provider   string
	Recipient  string
	TTLSeconds int64
}
