package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/global-remit/teller-desk/src/internal/adapter/http/models"
	"github.com/global-remit/teller-desk/src/internal/commons"
	"github.com/global-remit/teller-desk/src/internal/domain"
	"github.com/global-remit/teller-desk/src/internal/logger"
	"github.com/global-remit/teller-desk/src/internal/usecase/service_interfaces"
)

var _ service_interfaces.AuthService = (*AuthService)(nil)

const tokenIssuer = "teller-desk"

var ErrInvalidToken = errors.New("invalid or expired token")

type tellerClaims struct {
	TellerID string `json:"tellerId"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

type AuthService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewAuthService(secret string, ttl time.Duration) *AuthService {
	return &AuthService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// IssueToken signs an HS256 bearer token for a teller. The caller has already
// passed channel authentication.
func (s *AuthService) IssueToken(ctx context.Context, req models.TokenRequest) (commons.Response[models.TokenResponse], error) {
	logger.Info("auth service issue token request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("auth service issue token validation failed", err, nil)
		return commons.ErrorResponse[models.TokenResponse]("validation failed", err.Error()), err
	}

	tellerID := strings.TrimSpace(req.TellerID)
	role := strings.ToLower(strings.TrimSpace(req.Role))
	if role == "" {
		role = models.RoleTeller
	}

	now := s.now()
	expiresAt := now.Add(s.ttl)
	claims := tellerClaims{
		TellerID: tellerID,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
			Subject:   tellerID,
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		wrappedErr := fmt.Errorf("sign teller token: %w", err)
		logger.Error("auth service issue token sign failed", wrappedErr, logger.Fields{
			"tellerId": tellerID,
		})
		return commons.ErrorResponse[models.TokenResponse]("failed to issue token", "Unable to issue token right now"), wrappedErr
	}

	logger.Info("auth service issue token success", logger.Fields{
		"tellerId":  tellerID,
		"role":      role,
		"expiresAt": expiresAt.UTC().Format(time.RFC3339),
	})

	return commons.SuccessResponse("token issued successfully", models.TokenResponse{
		Token:     signed,
		TokenType: "Bearer",
		TellerID:  tellerID,
		Role:      role,
		ExpiresAt: expiresAt.UTC().Format(time.RFC3339),
	}), nil
}

func (s *AuthService) ParseToken(token string) (domain.Teller, error) {
	claims := &tellerClaims{}
	parsed, err := jwt.ParseWithClaims(strings.TrimSpace(token), claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid {
		return domain.Teller{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if strings.TrimSpace(claims.TellerID) == "" {
		return domain.Teller{}, fmt.Errorf("%w: missing teller id", ErrInvalidToken)
	}

	role := domain.TellerRole(claims.Role)
	if role != domain.TellerRoleAdmin {
		role = domain.TellerRoleTeller
	}

	return domain.Teller{ID: claims.TellerID, Role: role}, nil
}
