package auth

import (
	"context"
	"errors"

	"github.com/kbukum/authgate/auth/jwt"
	"github.com/kbukum/authgate/auth/password"
	apperrors "github.com/kbukum/authgate/errors"
	"github.com/kbukum/authgate/logger"
	"github.com/kbukum/authgate/observability"
	"github.com/kbukum/authgate/user"
)

// Credentials is the login input. It is never persisted.
type Credentials struct {
	Username string
	Password string
}

// RegisterInput is the registration input.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// Session is the result of a successful login. The caller binds Token to
// the cookie transport.
type Session struct {
	Token  string
	Claims *jwt.Claims
	User   user.Public
}

// Service runs the credential protocol. It holds no per-request state and is
// safe for concurrent use.
type Service struct {
	store   UserStore
	hasher  PasswordHasher
	tokens  TokenService
	msgs    Messages
	uniform bool
	metrics Metrics
	log     *logger.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithMessages sets the client-facing messages.
func WithMessages(cfg MessagesConfig) Option {
	return func(s *Service) {
		s.msgs = cfg.Resolve()
		s.uniform = cfg.UniformLoginFailure
	}
}

// WithMetrics records protocol outcomes on m.
func WithMetrics(m Metrics) Option {
	return func(s *Service) {
		if m != nil {
			s.metrics = m
		}
	}
}

// NewService creates a Service with English messages and no metrics.
func NewService(store UserStore, hasher PasswordHasher, tokens TokenService, log *logger.Logger, opts ...Option) *Service {
	s := &Service{
		store:   store,
		hasher:  hasher,
		tokens:  tokens,
		msgs:    presets[LocaleEN],
		metrics: nopMetrics{},
		log:     log.WithComponent("auth"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register hashes the password and creates the user. Uniqueness is decided by
// the store; a taken username is a DuplicateUser error and every other
// failure is Transient. No token is issued.
func (s *Service) Register(ctx context.Context, in RegisterInput) (user.Public, error) {
	ctx, span := observability.StartSpan(ctx, observability.SpanAuthRegister)
	defer span.End()
	observability.SetSpanAttribute(ctx, observability.AttrUsername, in.Username)
	log := s.log.WithContext(ctx)

	hash, err := s.hasher.Hash(in.Password)
	if errors.Is(err, password.ErrTooShort) || errors.Is(err, password.ErrTooLong) {
		s.metrics.RecordRegister(ctx, observability.OutcomeInvalid)
		observability.SetSpanAttribute(ctx, observability.AttrOutcome, observability.OutcomeInvalid)
		log.Debug("registration rejected: password length", logger.Fields(logger.FieldUsername, in.Username))
		return user.Public{}, apperrors.Validation(err.Error())
	}
	if err != nil {
		return user.Public{}, s.registerFailed(ctx, in.Username, "hash_password", err)
	}

	rec, err := s.store.Create(ctx, &user.Record{
		Username:       in.Username,
		Email:          in.Email,
		HashedPassword: hash,
	})
	if errors.Is(err, user.ErrDuplicate) {
		s.metrics.RecordRegister(ctx, observability.OutcomeDuplicate)
		observability.SetSpanAttribute(ctx, observability.AttrOutcome, observability.OutcomeDuplicate)
		log.Info("registration rejected: username taken", logger.Fields(logger.FieldUsername, in.Username))
		return user.Public{}, apperrors.DuplicateUser(render(s.msgs.UserExists, in.Username, ""), in.Username)
	}
	if err != nil {
		return user.Public{}, s.registerFailed(ctx, in.Username, "create_user", err)
	}

	s.metrics.RecordRegister(ctx, observability.OutcomeSuccess)
	observability.SetSpanAttribute(ctx, observability.AttrOutcome, observability.OutcomeSuccess)
	log.Info("user registered", logger.Fields(logger.FieldUsername, rec.Username))
	return rec.Public(), nil
}

func (s *Service) registerFailed(ctx context.Context, username, op string, err error) error {
	s.metrics.RecordRegister(ctx, observability.OutcomeTransient)
	observability.SetSpanError(ctx, err)
	fields := logger.ErrorFields(op, err)
	fields[logger.FieldUsername] = username
	s.log.WithContext(ctx).Error("registration failed", fields)
	return apperrors.Transient(s.msgs.SomethingWentWrong, err)
}

// Login verifies credentials and issues a session token. An unknown user is
// rejected without running the password check.
func (s *Service) Login(ctx context.Context, creds Credentials) (*Session, error) {
	ctx, span := observability.StartSpan(ctx, observability.SpanAuthLogin)
	defer span.End()
	observability.SetSpanAttribute(ctx, observability.AttrUsername, creds.Username)
	log := s.log.WithContext(ctx)

	rec, err := s.store.FindByUsername(ctx, creds.Username)
	if errors.Is(err, user.ErrNotFound) {
		s.loginRejected(ctx, creds.Username, observability.OutcomeUnregistered)
		msg := render(s.msgs.UserNotRegistered, creds.Username, "")
		if s.uniform {
			msg = s.msgs.InvalidCredentials
		}
		return nil, apperrors.Unauthorized(msg)
	}
	if err != nil {
		return nil, s.loginFailed(ctx, creds.Username, "find_user", err)
	}

	err = s.hasher.Verify(creds.Password, rec.HashedPassword)
	if errors.Is(err, password.ErrMismatch) {
		s.loginRejected(ctx, creds.Username, observability.OutcomeWrongPass)
		msg := s.msgs.WrongPassword
		if s.uniform {
			msg = s.msgs.InvalidCredentials
		}
		return nil, apperrors.Unauthorized(msg)
	}
	if err != nil {
		return nil, s.loginFailed(ctx, creds.Username, "verify_password", err)
	}

	token, claims, err := s.tokens.Issue(rec.Username, rec.Email)
	if err != nil {
		return nil, s.loginFailed(ctx, creds.Username, "issue_token", err)
	}

	s.metrics.RecordLogin(ctx, observability.OutcomeSuccess)
	observability.SetSpanAttribute(ctx, observability.AttrOutcome, observability.OutcomeSuccess)
	log.Info("login succeeded", logger.Fields(logger.FieldUsername, rec.Username))
	return &Session{Token: token, Claims: claims, User: rec.Public()}, nil
}

func (s *Service) loginRejected(ctx context.Context, username, outcome string) {
	s.metrics.RecordLogin(ctx, outcome)
	observability.SetSpanAttribute(ctx, observability.AttrOutcome, outcome)
	s.log.WithContext(ctx).Info("login rejected", logger.Fields(
		logger.FieldUsername, username,
		logger.FieldReason, outcome,
	))
}

func (s *Service) loginFailed(ctx context.Context, username, op string, err error) error {
	s.metrics.RecordLogin(ctx, observability.OutcomeTransient)
	observability.SetSpanError(ctx, err)
	fields := logger.ErrorFields(op, err)
	fields[logger.FieldUsername] = username
	s.log.WithContext(ctx).Error("login failed", fields)
	return apperrors.Transient(s.msgs.SomethingWentWrong, err)
}

// ExtractPayload verifies a presented session token. It never fails: a missing
// cookie gives PayloadAbsent and a bad token gives PayloadInvalid with the
// rejection reason.
func (s *Service) ExtractPayload(ctx context.Context, value string, present bool) Payload {
	if !present || value == "" {
		return Payload{Kind: PayloadAbsent}
	}

	ctx, span := observability.StartSpan(ctx, observability.SpanAuthVerify)
	defer span.End()

	claims, err := s.tokens.Parse(value)
	if err != nil {
		reason := jwt.ReasonClaims
		if invalid, ok := jwt.IsInvalidToken(err); ok {
			reason = invalid.Reason
		}
		s.metrics.RecordTokenRejected(ctx, string(reason))
		observability.SetSpanAttribute(ctx, observability.AttrTokenReason, string(reason))
		s.log.WithContext(ctx).Debug("session token rejected", logger.ErrorFields("parse_token", err))
		return Payload{
			Kind:    PayloadInvalid,
			Reason:  reason,
			Message: render(s.msgs.InvalidToken, "", string(reason)),
		}
	}

	observability.SetSpanAttribute(ctx, observability.AttrUsername, claims.Username)
	return Payload{Kind: PayloadPresent, Claims: claims}
}

// Guard admits a request only when the payload carries a verified username.
// Absent and invalid payloads get a NotAcceptable error.
func (s *Service) Guard(ctx context.Context, p Payload) (bool, error) {
	if p.Authenticated() {
		return true, nil
	}
	s.metrics.RecordGuardDenied(ctx)
	s.log.WithContext(ctx).Debug("guard denied", logger.Fields("payload", p.Kind.String()))
	return false, apperrors.NotAcceptable(s.msgs.ReloginRequired)
}

// Logout ends the session. It succeeds for every payload kind; the transport
// clears the cookie.
func (s *Service) Logout(ctx context.Context, p Payload) {
	if username := p.Username(); username != "" {
		s.log.WithContext(ctx).Info("logout", logger.Fields(logger.FieldUsername, username))
		return
	}
	s.log.WithContext(ctx).Debug("logout without session", logger.Fields("payload", p.Kind.String()))
}
