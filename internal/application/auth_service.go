package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/tsaratour/service-booking/internal/platform/auth"
	"github.com/tsaratour/service-booking/internal/platform/domain"
	"go.uber.org/zap"
)

// LoginRequest holds back-office credentials.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserDTO is the authenticated back-office user.
type UserDTO struct {
	ID    string    `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
	Role  auth.Role `json:"role"`
}

// LoginDTO is returned on successful login.
type LoginDTO struct {
	AccessToken   string    `json:"access_token"`
	RefreshToken  string    `json:"refresh_token"`
	User          UserDTO   `json:"user"`
	SessionExpiry time.Time `json:"session_expiry"`
}

// SessionDTO describes the caller's login session.
type SessionDTO struct {
	UserID        string    `json:"user_id"`
	Role          auth.Role `json:"role"`
	SessionExpiry time.Time `json:"session_expiry"`
}

// AuthService proxies login to the backend and tracks session expiry.
type AuthService struct {
	authenticator Authenticator
	jwtManager    *auth.JWTManager
	tracker       *auth.SessionTracker
	logger        *zap.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(authenticator Authenticator, jwtManager *auth.JWTManager, tracker *auth.SessionTracker, logger *zap.Logger) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		jwtManager:    jwtManager,
		tracker:       tracker,
		logger:        logger,
	}
}

// Login exchanges credentials with the backend and opens a session.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginDTO, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	res, err := s.authenticator.Login(ctx, email, req.Password)
	if err != nil {
		if k := domain.KindOf(err); k == domain.KindValidation || k == domain.KindNotFound {
			return nil, domain.NewUnauthorizedError(domain.MessageOf(err))
		}
		return nil, err
	}

	claims, err := s.jwtManager.Verify(res.Access)
	if errors.Is(err, auth.ErrUnknownRole) || (err == nil && !res.User.Role.IsValid()) {
		s.logger.Warn("login refused for role", zap.String("email", email), zap.String("role", string(res.User.Role)))
		return nil, domain.NewForbiddenError("rôle non autorisé")
	}
	if err != nil {
		s.logger.Error("backend issued an unverifiable token", zap.String("email", email), zap.Error(err))
		return nil, domain.NewUpstreamError("jeton du serveur non reconnu", err)
	}

	userID := string(claims.UserID)
	expiry := s.tracker.Start(userID)
	s.logger.Info("user logged in", zap.String("user_id", userID), zap.String("role", string(res.User.Role)))

	return &LoginDTO{
		AccessToken:  res.Access,
		RefreshToken: res.Refresh,
		User: UserDTO{
			ID:    string(res.User.ID),
			Email: res.User.Email,
			Name:  res.User.Name,
			Role:  res.User.Role,
		},
		SessionExpiry: expiry,
	}, nil
}

// Logout ends the caller's session; their open drafts are discarded.
func (s *AuthService) Logout(ctx context.Context, userID string) {
	s.tracker.End(userID)
	s.logger.Info("user logged out", zap.String("user_id", userID))
}

// Session returns the caller's session expiry.
func (s *AuthService) Session(ctx context.Context, userID string, role auth.Role) (*SessionDTO, error) {
	expiry, ok := s.tracker.Expiry(userID)
	if !ok {
		return nil, domain.NewUnauthorizedError("session expirée")
	}
	return &SessionDTO{UserID: userID, Role: role, SessionExpiry: expiry}, nil
}
