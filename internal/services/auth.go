package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"conferencehub/internal/domain"
)

const minPasswordLen = 8

type authService struct {
	userRepo       domain.UserRepository
	roleRepo       domain.RoleRepository
	hasher         domain.PasswordHasher
	tokenIssuer    domain.TokenIssuer
	tokenExpiry    time.Duration
	emailService   domain.EmailService
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewAuthService creates an AuthService with the given repositories and auth ports.
// emailService may be nil, in which case no welcome message is sent.
func NewAuthService(
	userRepo domain.UserRepository,
	roleRepo domain.RoleRepository,
	hasher domain.PasswordHasher,
	tokenIssuer domain.TokenIssuer,
	tokenExpiry time.Duration,
	emailService domain.EmailService,
	logger *slog.Logger,
	timeout time.Duration,
) domain.AuthService {
	return &authService{
		userRepo:       userRepo,
		roleRepo:       roleRepo,
		hasher:         hasher,
		tokenIssuer:    tokenIssuer,
		tokenExpiry:    tokenExpiry,
		emailService:   emailService,
		logger:         logger,
		contextTimeout: timeout,
	}
}

// SignUp registers a participant. An empty role means participant; any other
// role is provisioned by an organizer through CreateAccount.
func (s *authService) SignUp(ctx context.Context, idNumber, password, fullName, email string, role domain.Role) (*domain.User, error) {
	if role == "" {
		role = domain.RoleParticipant
	}
	role, err := domain.ParseRole(string(role))
	if err != nil {
		return nil, err
	}
	if role != domain.RoleParticipant {
		return nil, fmt.Errorf("%w: sign up creates participant accounts only", domain.ErrForbidden)
	}
	return s.register(ctx, idNumber, password, fullName, email, role)
}

func (s *authService) CreateAccount(ctx context.Context, caller domain.Principal, idNumber, password, fullName, email string, role domain.Role) (*domain.User, error) {
	if !caller.Role.CanManageAccounts() {
		return nil, domain.ErrForbidden
	}
	if role == "" {
		return nil, fmt.Errorf("%w: role is required", domain.ErrInvalidInput)
	}
	role, err := domain.ParseRole(string(role))
	if err != nil {
		return nil, err
	}
	user, err := s.register(ctx, idNumber, password, fullName, email, role)
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "account created", "user_id", user.ID, "role", user.Role, "created_by", caller.UserID)
	return user, nil
}

func (s *authService) register(ctx context.Context, idNumber, password, fullName, email string, role domain.Role) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	idNumber = strings.TrimSpace(idNumber)
	fullName = strings.TrimSpace(fullName)
	email = normalizeEmail(email)

	var problems []string
	if idNumber == "" {
		problems = append(problems, "id_number is required")
	}
	if fullName == "" {
		problems = append(problems, "full_name is required")
	}
	if !emailRegexp.MatchString(email) {
		problems = append(problems, "invalid email format")
	}
	if len(password) < minPasswordLen {
		problems = append(problems, fmt.Sprintf("password must be at least %d characters", minPasswordLen))
	}
	if len(problems) > 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, strings.Join(problems, "; "))
	}

	salt, err := s.hasher.GenerateSalt()
	if err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	hash, err := s.hasher.Hash(salt, password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	roleRecord, err := s.roleRepo.GetByCode(ctx, role)
	if err != nil {
		return nil, fmt.Errorf("get role %q: %w", role, err)
	}

	now := time.Now()
	user := domain.NewUser(idNumber, fullName, email, role, now, now)
	user.PasswordHash = hash
	user.Salt = salt
	if err := s.userRepo.Create(ctx, user, roleRecord.ID); err != nil {
		if errors.Is(err, domain.ErrDuplicateIDNumber) || errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, err
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	if s.emailService != nil {
		data := &domain.WelcomeMessageEmailData{Email: user.Email, FullName: user.FullName, IDNumber: user.IDNumber}
		if err := s.emailService.SendWelcomeMessage(ctx, data); err != nil {
			s.logger.WarnContext(ctx, "welcome email failed", "user_id", user.ID, "err", err)
		}
	}
	return user, nil
}

func (s *authService) Login(ctx context.Context, idNumber, password string) (string, *domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	user, err := s.userRepo.GetByIDNumber(ctx, strings.TrimSpace(idNumber))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("get user: %w", err)
	}
	if err := s.hasher.Compare(user.PasswordHash, user.Salt, password); err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("compare password: %w", err)
	}

	token, err := s.tokenIssuer.Issue(user, s.tokenExpiry)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return token, user, nil
}
