package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pucknotes/server/internal/app/models"
	"github.com/pucknotes/server/internal/app/models/dto"
	"github.com/pucknotes/server/internal/pkg/apperrors"
	jwtauth "github.com/pucknotes/server/internal/pkg/auth"
	"github.com/rs/zerolog"
)

// SessionService logs accounts in and out and resolves tokens to the acting account
type SessionService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, token string) error
	CurrentAccount(ctx context.Context, token string) *models.Account
}

type sessionServiceImpl struct {
	accountRepo AccountRepository
	store       SessionStore
	jwtService  *jwtauth.JWTService
	ttl         time.Duration
	logger      zerolog.Logger
}

// NewSessionService creates a new SessionService
func NewSessionService(
	accountRepo AccountRepository,
	store SessionStore,
	jwtService *jwtauth.JWTService,
	ttl time.Duration,
	logger zerolog.Logger,
) SessionService {
	return &sessionServiceImpl{
		accountRepo: accountRepo,
		store:       store,
		jwtService:  jwtService,
		ttl:         ttl,
		logger:      logger,
	}
}

func invalidCredentials() error {
	return &apperrors.CustomError{Err: apperrors.ErrBadRequest, Message: apperrors.ErrInvalidCredentials.Error()}
}

// Login checks the password and opens a new session
func (s *sessionServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	account, err := s.accountRepo.GetByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if apperrors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, invalidCredentials()
		}
		return nil, err
	}
	if !jwtauth.CheckPassword(account.PasswordHash, req.Password) {
		s.logger.Debug().Int64("accountID", account.ID).Msg("Password mismatch")
		return nil, invalidCredentials()
	}

	sessionID := uuid.NewString()
	if err := s.store.Save(ctx, sessionID, account.ID, s.ttl); err != nil {
		return nil, err
	}

	token, expiresAt, err := s.jwtService.GenerateToken(account, sessionID)
	if err != nil {
		_ = s.store.Revoke(ctx, sessionID)
		return nil, err
	}

	s.logger.Info().Int64("accountID", account.ID).Msg("Account logged in")
	return &dto.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
		AccountID:   account.ID,
	}, nil
}

// Logout revokes the session behind token. An invalid or expired token is already logged out.
func (s *sessionServiceImpl) Logout(ctx context.Context, token string) error {
	claims, err := s.jwtService.ValidateToken(token)
	if err != nil {
		return nil
	}
	return s.store.Revoke(ctx, claims.SessionID())
}

// CurrentAccount never fails: anything that does not resolve to a live session is anonymous
func (s *sessionServiceImpl) CurrentAccount(ctx context.Context, token string) *models.Account {
	if token == "" {
		return nil
	}
	claims, err := s.jwtService.ValidateToken(token)
	if err != nil {
		s.logger.Debug().Err(err).Msg("Rejected token")
		return nil
	}

	data, err := s.store.Lookup(ctx, claims.SessionID())
	if err != nil || data.AccountID != claims.AccountID {
		s.logger.Debug().Err(err).Int64("accountID", claims.AccountID).Msg("Session not live")
		return nil
	}

	account, err := s.accountRepo.GetByID(ctx, claims.AccountID)
	if err != nil {
		s.logger.Warn().Err(err).Int64("accountID", claims.AccountID).Msg("Failed to load session account")
		return nil
	}
	return account
}
