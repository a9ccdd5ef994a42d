// Package identity implements a user identity core: registration,
// credential verification, signed access/refresh token issuance, and
// administrative CRUD over user records.
//
// Every public operation returns an Envelope carrying an HTTP-style status
// code, a message, and an optional payload. Failures never escape the
// envelope boundary; the transport layer forwards the status code verbatim.
//
// Collaborators are capability interfaces: UserStore (a bun-backed
// implementation ships in NewUsersRepository), PasswordAuthenticator
// (bcrypt by default), and TokenService (HS256 JWTs). Signing keys and
// token lifetimes are passed into constructors explicitly, never read from
// ambient state.
package identity
