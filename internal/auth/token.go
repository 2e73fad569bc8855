package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/devconnector/api/internal/config"
	"github.com/devconnector/api/internal/domain"
)

// ErrMissingSecret is returned when a TokenManager is built without a signing key.
var ErrMissingSecret = errors.New("auth: token signing secret is not configured")

// VerificationErrorKind classifies why a token was rejected.
type VerificationErrorKind int

const (
	KindMalformed VerificationErrorKind = iota + 1
	KindSignatureMismatch
	KindExpired
)

func (k VerificationErrorKind) String() string {
	switch k {
	case KindMalformed:
		return "malformed"
	case KindSignatureMismatch:
		return "signature mismatch"
	case KindExpired:
		return "expired"
	default:
		return "unknown"
	}
}

// VerificationError is returned by Verify for every rejected token.
type VerificationError struct {
	Kind VerificationErrorKind
	Err  error
}

func (e *VerificationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("token %s: %v", e.Kind, e.Err)
	}
	return "token " + e.Kind.String()
}

func (e *VerificationError) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is a VerificationError of the given kind.
func IsKind(err error, kind VerificationErrorKind) bool {
	var verr *VerificationError
	return errors.As(err, &verr) && verr.Kind == kind
}

// Claims describes the JWT payload. The identity lives under "user".
type Claims struct {
	User domain.IdentityClaim `json:"user"`
	jwt.RegisteredClaims
}

// TokenManager handles issuing and validating JWT tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
	parser *jwt.Parser
}

// TokenOption customizes a TokenManager.
type TokenOption func(*TokenManager)

// WithClock replaces the wall clock used for issuing and expiry checks.
func WithClock(now func() time.Time) TokenOption {
	return func(tm *TokenManager) {
		if now != nil {
			tm.now = now
		}
	}
}

// NewTokenManager builds a new manager. A missing secret is a configuration
// error and callers are expected to abort startup on it.
func NewTokenManager(cfg config.AuthConfig, opts ...TokenOption) (*TokenManager, error) {
	if cfg.JWTSecret == "" {
		return nil, ErrMissingSecret
	}
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = config.DefaultTokenTTL
	}

	tm := &TokenManager{secret: []byte(cfg.JWTSecret), ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(tm)
	}
	tm.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(tm.now),
	)
	return tm, nil
}

// TTL returns the lifetime of issued tokens.
func (tm *TokenManager) TTL() time.Duration {
	return tm.ttl
}

// Issue signs a token for the claim that expires ttl from now.
func (tm *TokenManager) Issue(claim domain.IdentityClaim) (string, time.Time, error) {
	issuedAt := tm.now()
	claims := &Claims{
		User: claim,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(tm.ttl)),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return tokenString, claims.ExpiresAt.Time, nil
}

// Verify checks the signature first and the claims second, so a token whose
// payload was altered is reported as a signature mismatch rather than a
// decoding problem.
func (tm *TokenManager) Verify(tokenStr string) (domain.IdentityClaim, error) {
	parts := strings.Split(tokenStr, ".")
	if len(parts) != 3 {
		return domain.IdentityClaim{}, &VerificationError{Kind: KindMalformed, Err: jwt.ErrTokenMalformed}
	}
	sig, err := tm.parser.DecodeSegment(parts[2])
	if err != nil {
		return domain.IdentityClaim{}, &VerificationError{Kind: KindMalformed, Err: err}
	}
	if err := jwt.SigningMethodHS256.Verify(parts[0]+"."+parts[1], sig, tm.secret); err != nil {
		return domain.IdentityClaim{}, &VerificationError{Kind: KindSignatureMismatch, Err: err}
	}

	claims := &Claims{}
	parsed, err := tm.parser.ParseWithClaims(tokenStr, claims, func(*jwt.Token) (interface{}, error) {
		return tm.secret, nil
	})
	if err != nil {
		return domain.IdentityClaim{}, classify(err)
	}
	if !parsed.Valid || claims.User.ID == "" {
		return domain.IdentityClaim{}, &VerificationError{Kind: KindMalformed, Err: errors.New("missing user claim")}
	}
	return claims.User, nil
}

func classify(err error) *VerificationError {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return &VerificationError{Kind: KindExpired, Err: err}
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return &VerificationError{Kind: KindSignatureMismatch, Err: err}
	default:
		return &VerificationError{Kind: KindMalformed, Err: err}
	}
}
