// Package auth implements the credential protocol of the service.
//
// Service registers users, verifies login credentials and issues session
// tokens, turns a presented session cookie into a Payload, and guards routes
// that need a verified identity. Storage, hashing and token signing sit behind
// the UserStore, PasswordHasher and TokenService interfaces; the concrete
// implementations live in the user, auth/password and auth/jwt packages.
//
// Subpackages:
//
//   - auth/jwt      RSA-signed session tokens
//   - auth/password bcrypt and argon2id hashing
//   - auth/cookie   session cookie transport
//   - auth/authctx  request context propagation of the Payload
//
// Every failure leaving the package is an *errors.AppError from the taxonomy
// in the errors package, except ExtractPayload which never fails and reports
// bad tokens as an Invalid payload.
//
// Configuration composes the subpackage configs:
//
//	auth:
//	  jwt:
//	    algorithm: RS256
//	    access_token_expire_minutes: 1440
//	  cookie:
//	    alias: JWT-ACCESS-TOKEN
//	  password:
//	    algorithm: bcrypt
//	  messages:
//	    locale: en
package auth
