package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/members-auth/internal/core/domain"
	"github.com/99minutos/members-auth/internal/core/ports"
)

// Reasons recorded on failed logins. They stay in the audit trail and logs;
// clients only ever see domain.ErrInvalidCredentials.
const (
	reasonInvalidEmail   = "invalid_email"
	reasonNoAccount      = "no_account"
	reasonAmbiguousEmail = "ambiguous_email"
	reasonBadPassword    = "bad_password"
)

// AuthService implements signup, login and logout.
type AuthService struct {
	accounts  ports.AccountRepository
	hasher    ports.PasswordHasher
	validator ports.CredentialValidator
	sessions  ports.SessionManager
	audit     ports.AuditSink
	log       zerolog.Logger
}

func NewAuthService(
	accounts ports.AccountRepository,
	hasher ports.PasswordHasher,
	validator ports.CredentialValidator,
	sessions ports.SessionManager,
	audit ports.AuditSink,
	log zerolog.Logger,
) *AuthService {
	if audit == nil {
		audit = discardAudit{}
	}
	return &AuthService{
		accounts:  accounts,
		hasher:    hasher,
		validator: validator,
		sessions:  sessions,
		audit:     audit,
		log:       log,
	}
}

// Signup validates the input, stores a new account and starts its session.
// Email uniqueness is not checked.
func (s *AuthService) Signup(ctx context.Context, in ports.SignupInput) (*domain.Session, error) {
	if err := s.validator.ValidateSignup(in.Username, in.Email, in.Password); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	account := &domain.Account{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
	}
	if err := s.accounts.Insert(ctx, account); err != nil {
		return nil, err
	}
	s.log.Info().Str("username", in.Username).Msg("account created")

	sess, err := s.sessions.Create(ctx, in.Username)
	if err != nil {
		return nil, err
	}

	s.record(domain.EventSignup, in.Email, in.Username, true, "")
	return sess, nil
}

// Login verifies an email/password pair. Every credential failure returns
// domain.ErrInvalidCredentials so callers cannot tell which accounts exist.
func (s *AuthService) Login(ctx context.Context, in ports.LoginInput) (*domain.Session, error) {
	if err := s.validator.ValidateLoginEmail(in.Email); err != nil {
		return nil, s.reject(in.Email, "", reasonInvalidEmail)
	}

	matches, err := s.accounts.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	switch {
	case len(matches) == 0:
		return nil, s.reject(in.Email, "", reasonNoAccount)
	case len(matches) > 1:
		return nil, s.reject(in.Email, "", reasonAmbiguousEmail)
	}

	account := matches[0]
	if !s.hasher.Verify(in.Password, account.PasswordHash) {
		return nil, s.reject(in.Email, account.Username, reasonBadPassword)
	}

	sess, err := s.sessions.Create(ctx, account.Username)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("username", account.Username).Msg("login succeeded")
	s.record(domain.EventLogin, in.Email, account.Username, true, "")
	return sess, nil
}

// Logout destroys the session behind token. It is safe to call with an
// unknown or empty token.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	// The read only names the session for logs and the audit trail.
	sess, err := s.sessions.Read(ctx, token)
	if err != nil {
		s.log.Warn().Err(err).Msg("logout: session lookup failed")
	}
	if err := s.sessions.Destroy(ctx, token); err != nil {
		return err
	}
	if sess != nil {
		s.log.Info().Str("username", sess.Username).Msg("session destroyed")
		s.record(domain.EventLogout, "", sess.Username, true, "")
	}
	return nil
}

// reject records a failed login. username is set only when the email
// resolved to exactly one account.
func (s *AuthService) reject(email, username, reason string) error {
	s.log.Info().Str("reason", reason).Msg("login failed")
	s.record(domain.EventLogin, email, username, false, reason)
	return domain.ErrInvalidCredentials
}

func (s *AuthService) record(kind domain.AuthEventKind, email, username string, ok bool, reason string) {
	s.audit.Record(domain.AuthEvent{
		Kind:       kind,
		Email:      email,
		Username:   username,
		Success:    ok,
		Reason:     reason,
		OccurredAt: time.Now().UTC(),
	})
}

type discardAudit struct{}

func (discardAudit) Record(domain.AuthEvent) {}
