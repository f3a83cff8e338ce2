// Package authapi exposes the credential protocol over HTTP.
//
// Routes live under {v1_prefix}{users_prefix}/auth:
//
//	POST   /register       form username, email, password -> 202 {username, email}
//	POST   /login          JSON {username, password}      -> 200 {username, email} + session cookie
//	DELETE /logout         -> 200 {"status":"logged out"}, cookie cleared
//	GET    /private_route  -> 200 true, or 406 when no valid session is presented
//
// Every failure is written as the errors.ErrorResponse envelope.
package authapi
