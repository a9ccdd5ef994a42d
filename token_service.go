package identity

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-errors"
)

// TokenServiceImpl implements the TokenService interface
type TokenServiceImpl struct {
	signingKey        []byte
	tokenExpiration   int
	refreshExpiration int
	issuer            string
	logger            Logger
}

// NewTokenService creates a new TokenService instance. Expirations are in
// hours; the refresh expiration should be at least the access expiration.
func NewTokenService(signingKey []byte, tokenExpiration, refreshExpiration int, issuer string, logger Logger) TokenService {
	if logger == nil {
		logger = defLogger{}
	}
	if refreshExpiration < tokenExpiration {
		refreshExpiration = tokenExpiration
	}
	return &TokenServiceImpl{
		signingKey:        signingKey,
		tokenExpiration:   tokenExpiration,
		refreshExpiration: refreshExpiration,
		issuer:            issuer,
		logger:            logger,
	}
}

// NewTokenServiceFromConfig builds a TokenService from explicit configuration.
func NewTokenServiceFromConfig(cfg Config, logger Logger) TokenService {
	return NewTokenService(
		[]byte(cfg.GetSigningKey()),
		cfg.GetTokenExpiration(),
		cfg.GetRefreshExpiration(),
		cfg.GetIssuer(),
		logger,
	)
}

// IssueAccessToken signs a short-lived token carrying the subject identity
// and the role claim.
func (ts *TokenServiceImpl) IssueAccessToken(user *User) (string, error) {
	if user == nil {
		return "", errors.New("user must not be nil", errors.CategoryInternal)
	}

	now := time.Now()
	claims := &JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    ts.issuer,
			Subject:   user.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(ts.tokenExpiration) * time.Hour)),
		},
		Role: user.Role,
	}

	ensureTokenID(&claims.RegisteredClaims)

	return ts.signClaims(claims)
}

// IssueRefreshToken signs a longer-lived token carrying only the subject
// identity. No role claim: the token exists solely to re-identify the user.
func (ts *TokenServiceImpl) IssueRefreshToken(user *User) (string, error) {
	if user == nil {
		return "", errors.New("user must not be nil", errors.CategoryInternal)
	}

	now := time.Now()
	claims := &JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    ts.issuer,
			Subject:   user.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(ts.refreshExpiration) * time.Hour)),
		},
	}

	ensureTokenID(&claims.RegisteredClaims)

	return ts.signClaims(claims)
}

// ExtractSubject decodes the subject claim without verifying the signature
// or the expiry, so the claimed user can be looked up before validity
// checks run. Only a structurally unparseable token errors.
func (ts *TokenServiceImpl) ExtractSubject(tokenString string) (string, error) {
	claims := &JWTClaims{}
	parser := jwt.NewParser()

	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		return "", errors.Wrap(err, ErrTokenMalformed.Category, ErrTokenMalformed.Message).
			WithTextCode(ErrTokenMalformed.TextCode)
	}

	return claims.RegisteredClaims.Subject, nil
}

// IsValid reports whether the token signature verifies against the signing
// key, the subject matches the record, and the token has not expired.
func (ts *TokenServiceImpl) IsValid(tokenString string, user *User) bool {
	if user == nil {
		return false
	}

	claims, err := ts.validate(tokenString)
	if err != nil {
		ts.logger.Debug("token validation failed", "error", err)
		return false
	}

	return claims.RegisteredClaims.Subject == user.Email
}

func (ts *TokenServiceImpl) signClaims(claims *JWTClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedString, err := token.SignedString(ts.signingKey)
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to sign JWT")
	}

	return signedString, nil
}

func (ts *TokenServiceImpl) validate(tokenString string) (*JWTClaims, error) {
	parserOptions := make([]jwt.ParserOption, 0, 1)
	if ts.issuer != "" {
		parserOptions = append(parserOptions, jwt.WithIssuer(ts.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			ts.logger.Error("TokenService validate encountered unexpected signing method", "alg", t.Header["alg"])
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return ts.signingKey, nil
	}, parserOptions...)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, errors.Wrap(err, ErrTokenMalformed.Category, ErrTokenMalformed.Message).
			WithTextCode(ErrTokenMalformed.TextCode)
	}

	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrTokenMalformed
}

var _ TokenService = (*TokenServiceImpl)(nil)
