package identity

import (
	"context"
	"net/http"

	"github.com/goliatone/go-errors"
)

// RegisterRequest is the payload for creating a new account.
type RegisterRequest struct {
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Name     string   `json:"name"`
	Role     UserRole `json:"role"`
}

// Accounts orchestrates registration, login, and token refresh against the
// user store. It is stateless between calls; every operation converts its
// failures into an Envelope and never lets an error escape.
type Accounts struct {
	store     UserStore
	passwords PasswordAuthenticator
	tokens    TokenService
	logger    Logger
}

// NewAccounts returns the authentication core wired to the given store and
// token service, hashing with bcrypt by default.
func NewAccounts(store UserStore, tokens TokenService) *Accounts {
	return &Accounts{
		store:     store,
		passwords: BcryptAuthenticator{},
		tokens:    tokens,
		logger:    defLogger{},
	}
}

func (a *Accounts) WithLogger(logger Logger) *Accounts {
	if logger != nil {
		a.logger = logger
	}
	return a
}

// WithPasswordAuthenticator swaps the hashing implementation.
func (a *Accounts) WithPasswordAuthenticator(passwords PasswordAuthenticator) *Accounts {
	if passwords != nil {
		a.passwords = passwords
	}
	return a
}

// Register validates the email shape, rejects duplicates, hashes the
// password and persists the record. The store is never touched for a
// malformed email.
func (a *Accounts) Register(ctx context.Context, req RegisterRequest) *Envelope {
	if !ValidEmailFormat(req.Email) {
		return badRequest("Invalid email format")
	}

	existing, err := a.store.FindByEmail(ctx, req.Email)
	if err != nil && !errors.IsNotFound(err) {
		a.logger.Error("register lookup failed", "email", req.Email, "error", err)
		return internalError("Error occurred: " + errMessage(err))
	}
	if existing != nil {
		return badRequest("Email address already registered")
	}

	hash, err := a.passwords.HashPassword(req.Password)
	if err != nil {
		a.logger.Error("register hashing failed", "error", err)
		return internalError("Error occurred: " + errMessage(err))
	}

	user := &User{
		Email:        req.Email,
		Name:         req.Name,
		Role:         req.Role,
		PasswordHash: hash,
	}
	user.EnsureRole()

	saved, err := a.store.Save(ctx, user)
	if err != nil {
		a.logger.Error("register save failed", "email", req.Email, "error", err)
		return internalError("Error occurred: " + errMessage(err))
	}
	if saved == nil || saved.ID == 0 {
		return internalError("User could not be saved")
	}

	env := ok("User registered successfully")
	env.User = saved
	return env
}

// Login verifies the credential pair and issues an access plus refresh
// token. A missing account surfaces as 404; a credential mismatch funnels
// into the generic internal failure path, not 401 or 404.
func (a *Accounts) Login(ctx context.Context, email, password string) *Envelope {
	user, err := a.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.IsNotFound(err) {
			return notFound("User not found with email: " + email)
		}
		a.logger.Error("login lookup failed", "email", email, "error", err)
		return internalError(errMessage(err))
	}

	if err := a.passwords.ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		a.logger.Warn("login verification failed", "email", email)
		return internalError(errMessage(err))
	}

	token, err := a.tokens.IssueAccessToken(user)
	if err != nil {
		a.logger.Error("login token issue failed", "error", err)
		return internalError(errMessage(err))
	}

	refreshToken, err := a.tokens.IssueRefreshToken(user)
	if err != nil {
		a.logger.Error("login refresh token issue failed", "error", err)
		return internalError(errMessage(err))
	}

	return &Envelope{
		StatusCode:     http.StatusOK,
		Message:        "Successfully logged in",
		Token:          token,
		RefreshToken:   refreshToken,
		Role:           user.Role,
		ExpirationTime: ExpirationLabel,
	}
}

// RefreshToken mints a new access token for the subject carried by the
// presented token and echoes the same refresh token back. A token that
// cannot be decoded at all, or whose subject has no account, funnels into
// the generic 500 path; a decodable token that fails validation is a 400.
func (a *Accounts) RefreshToken(ctx context.Context, oldToken string) *Envelope {
	subject, err := a.tokens.ExtractSubject(oldToken)
	if err != nil {
		a.logger.Error("refresh subject extraction failed", "error", err)
		return internalError("Error occurred: " + errMessage(err))
	}

	user, err := a.store.FindByEmail(ctx, subject)
	if err != nil {
		a.logger.Error("refresh lookup failed", "subject", subject, "error", err)
		return internalError("Error occurred: " + errMessage(err))
	}

	if !a.tokens.IsValid(oldToken, user) {
		return badRequest("Invalid token")
	}

	token, err := a.tokens.IssueAccessToken(user)
	if err != nil {
		a.logger.Error("refresh token issue failed", "error", err)
		return internalError("Error occurred: " + errMessage(err))
	}

	return &Envelope{
		StatusCode:     http.StatusOK,
		Message:        "Successfully refreshed token",
		Token:          token,
		RefreshToken:   oldToken,
		ExpirationTime: ExpirationLabel,
	}
}
