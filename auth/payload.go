package auth

import "github.com/kbukum/authgate/auth/jwt"

// PayloadKind tags what a request presented.
type PayloadKind int

const (
	// PayloadAbsent means no session cookie was sent.
	PayloadAbsent PayloadKind = iota
	// PayloadPresent means the token verified.
	PayloadPresent
	// PayloadInvalid means a token was sent but failed verification.
	PayloadInvalid
)

func (k PayloadKind) String() string {
	switch k {
	case PayloadPresent:
		return "present"
	case PayloadInvalid:
		return "invalid"
	default:
		return "absent"
	}
}

// Payload is the outcome of reading a session token.
// Claims is set only for PayloadPresent; Reason and Message only for PayloadInvalid.
type Payload struct {
	Kind    PayloadKind
	Claims  *jwt.Claims
	Reason  jwt.Reason
	Message string
}

// Username returns the verified username, or "" when nothing verified.
func (p Payload) Username() string {
	if p.Kind != PayloadPresent || p.Claims == nil {
		return ""
	}
	return p.Claims.Username
}

// Authenticated reports whether the payload carries a verified identity.
// A signed token with an empty subject does not count.
func (p Payload) Authenticated() bool {
	return p.Username() != ""
}
