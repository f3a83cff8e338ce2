package jwt

import gojwt "github.com/golang-jwt/jwt/v5"

// Claims is the session payload carried by an access token.
type Claims struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	gojwt.RegisteredClaims
}
