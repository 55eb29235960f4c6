package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/RevivalFireMinistries/dept-selection-app/config"
	"github.com/RevivalFireMinistries/dept-selection-app/internal/dto"
	"github.com/RevivalFireMinistries/dept-selection-app/pkg/jwt"
	"github.com/RevivalFireMinistries/dept-selection-app/pkg/redis"
)

var ErrInvalidCredentials = errors.New("invalid password")

// AuthService authenticates the shared admin identity.
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	// Logout revokes the session token by blacklisting its JWT ID for the
	// token's remaining lifetime. Without Redis it is a no-op.
	Logout(ctx context.Context, tokenString string) error
}

type authService struct {
	cfg      *config.Config
	settings SettingsService
	jwtMgr   *jwt.Manager
	rdb      *redis.Client
	logger   *zap.Logger
}

// NewAuthService creates an AuthService. rdb may be nil when Redis is
// unavailable; logout then degrades to a client-side token drop.
func NewAuthService(
	cfg *config.Config,
	settings SettingsService,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) AuthService {
	return &authService{
		cfg:      cfg,
		settings: settings,
		jwtMgr:   jwtMgr,
		rdb:      rdb,
		logger:   logger,
	}
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	// 1. Load the stored password. Seeded databases hold a bcrypt hash;
	//    databases configured through the raw settings PUT may hold plaintext.
	stored, err := s.settings.AdminPassword(ctx)
	if err != nil {
		return nil, err
	}

	// 2. Verify.
	if !passwordMatches(stored, req.Password) {
		return nil, ErrInvalidCredentials
	}

	// 3. Issue the session token.
	token, err := s.jwtMgr.GenerateSessionToken()
	if err != nil {
		s.logger.Error("generate session token failed", zap.Error(err))
		return nil, err
	}

	s.logger.Info("admin logged in")
	return &dto.LoginResponse{
		Token:     token,
		ExpiresIn: int64(s.cfg.Auth.SessionTokenTTL.Seconds()),
	}, nil
}

func (s *authService) Logout(ctx context.Context, tokenString string) error {
	claims, err := s.jwtMgr.ParseToken(tokenString)
	if err != nil {
		// An expired or invalid token needs no revocation.
		return nil
	}
	if s.rdb == nil || claims.ID == "" || claims.ExpiresAt == nil {
		return nil
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if err := s.rdb.BlacklistToken(ctx, claims.ID, ttl); err != nil {
		s.logger.Error("blacklist token failed", zap.Error(err))
		return err
	}
	s.logger.Info("admin logged out", zap.String("jti", claims.ID))
	return nil
}

// passwordMatches compares the candidate against the stored value, which is
// either a bcrypt hash or legacy plaintext.
func passwordMatches(stored, candidate string) bool {
	if strings.HasPrefix(stored, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(candidate)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(candidate)) == 1
}
