package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-shop-keeper/internal/config"
	"github.com/MKhiriev/go-shop-keeper/internal/crypto"
	"github.com/MKhiriev/go-shop-keeper/internal/logger"
	"github.com/MKhiriev/go-shop-keeper/internal/store"
	"github.com/MKhiriev/go-shop-keeper/internal/utils"
	"github.com/MKhiriev/go-shop-keeper/internal/validators"
	"github.com/MKhiriev/go-shop-keeper/models"
)

// adminName is the display name given to a bootstrapped admin account.
const adminName = "Admin"

// authService is the concrete implementation of AuthService.
// It handles user registration, credential verification, and JWT token
// lifecycle using a UserRepository for persistence and a PasswordHasher for
// password hashes.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// hasher hashes passwords at registration and checks them at login.
	hasher crypto.PasswordHasher

	// validator checks registration requests before anything is stored.
	validator validators.Validator

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	generateID func() string
	now        func() time.Time

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given UserRepository
// and PasswordHasher and populated with token parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(userRepository store.UserRepository, hasher crypto.PasswordHasher, cfg config.Auth, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		hasher:         hasher,
		validator:      validators.NewShopValidator(),
		tokenSignKey:   cfg.TokenSignKey,
		tokenIssuer:    cfg.TokenIssuer,
		tokenDuration:  cfg.TokenDuration,
		generateID:     utils.NewUUIDGenerator().Generate,
		now:            time.Now,
		logger:         logger,
	}
}

// Register creates a new customer account and signs it in.
//
// The identifier is normalized before the duplicate check and before it is
// stored, so "Ana@X.com " and "ana@x.com" are the same account.
//
// Returns the issued token together with the public user view or:
//   - ErrInvalidDataProvided (wrapping the validator error) for bad input.
//   - store.ErrEmailAlreadyExists if the identifier is taken, whether the
//     pre-check or the store's own uniqueness constraint caught it.
func (a *authService) Register(ctx context.Context, req models.RegisterRequest) (models.AuthResponse, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, req); err != nil {
		log.Debug().Err(err).Str("func", "*authService.Register").Msg("invalid registration request")
		return models.AuthResponse{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	email := models.NormalizeIdentifier(req.LoginIdentifier())

	_, err := a.userRepository.FindUserByEmail(ctx, email)
	switch {
	case err == nil:
		log.Debug().Str("func", "*authService.Register").Str("email", email).Msg("e-mail is already registered")
		return models.AuthResponse{}, store.ErrEmailAlreadyExists
	case !errors.Is(err, store.ErrNoUserWasFound):
		log.Err(err).Str("func", "*authService.Register").Msg("user search by e-mail failed")
		return models.AuthResponse{}, fmt.Errorf("user search by e-mail failed: %w", err)
	}

	passwordHash, err := a.hasher.Hash(req.Password)
	if err != nil {
		log.Err(err).Str("func", "*authService.Register").Msg("error hashing password")
		return models.AuthResponse{}, fmt.Errorf("error hashing password: %w", err)
	}

	userType := req.Type
	if userType == "" {
		userType = models.Wholesale
	}

	user, err := a.userRepository.CreateUser(ctx, models.User{
		ID:           a.generateID(),
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		TaxID:        strings.TrimSpace(req.TaxID),
		Phone:        strings.TrimSpace(req.Phone),
		Type:         userType,
		Role:         models.RoleCustomer,
		PasswordHash: passwordHash,
		CreatedAt:    a.now().UTC(),
	})
	if err != nil {
		log.Err(err).Str("func", "*authService.Register").Msg("user creation ended with error")
		return models.AuthResponse{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return a.signIn(ctx, user)
}

// Login authenticates an existing user by identifier and password.
//
// An unknown identifier and a wrong password are indistinguishable to the
// caller: both yield ErrWrongPassword.
func (a *authService) Login(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error) {
	user, err := a.checkCredentials(ctx, req)
	if err != nil {
		return models.AuthResponse{}, err
	}

	return a.signIn(ctx, user)
}

// AdminLogin is Login restricted to accounts holding the admin role.
func (a *authService) AdminLogin(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error) {
	user, err := a.checkCredentials(ctx, req)
	if err != nil {
		return models.AuthResponse{}, err
	}

	if !user.IsAdmin() {
		logger.FromContext(ctx).Warn().Str("func", "*authService.AdminLogin").Str("user_id", user.ID).Msg("non-admin tried to sign in as admin")
		return models.AuthResponse{}, ErrWrongPassword
	}

	return a.signIn(ctx, user)
}

func (a *authService) checkCredentials(ctx context.Context, req models.LoginRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	email := models.NormalizeIdentifier(req.LoginIdentifier())
	if email == "" || req.Password == "" {
		log.Debug().Str("func", "*authService.checkCredentials").Msg("invalid login data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	user, err := a.userRepository.FindUserByEmail(ctx, email)
	if errors.Is(err, store.ErrNoUserWasFound) {
		log.Debug().Str("func", "*authService.checkCredentials").Msg("unknown login identifier")
		return models.User{}, ErrWrongPassword
	}
	if err != nil {
		log.Err(err).Str("func", "*authService.checkCredentials").Msg("user search by e-mail failed")
		return models.User{}, fmt.Errorf("user search by e-mail failed: %w", err)
	}

	if !a.hasher.Check(req.Password, user.PasswordHash) {
		log.Debug().Str("func", "*authService.checkCredentials").Str("user_id", user.ID).Msg("wrong password")
		return models.User{}, ErrWrongPassword
	}

	return user, nil
}

func (a *authService) signIn(ctx context.Context, user models.User) (models.AuthResponse, error) {
	token, err := a.CreateToken(ctx, user)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*authService.signIn").Str("user_id", user.ID).Msg("error creating token")
		return models.AuthResponse{}, err
	}

	return models.AuthResponse{Token: token.SignedString, User: user.View()}, nil
}

// CreateToken issues a signed JWT for the given user.
//
// The token is signed with the configured tokenSignKey, carries the configured
// tokenIssuer as the "iss" claim, and expires after tokenDuration.
//
// Returns the token model on success or a wrapped error if JWT generation fails.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.ID, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string.
//
// Any validation failure (expired, wrong issuer, wrong key, malformed) is
// normalised to ErrTokenIsExpiredOrInvalid so that callers never learn why a
// token was rejected.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Str("func", "*authService.ParseToken").Msg("token rejected")
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

// Authenticate parses tokenString and loads the user it was issued to.
func (a *authService) Authenticate(ctx context.Context, tokenString string) (models.User, error) {
	token, err := a.ParseToken(ctx, tokenString)
	if err != nil {
		return models.User{}, err
	}

	user, err := a.userRepository.FindUserByID(ctx, token.UserID)
	if errors.Is(err, store.ErrNoUserWasFound) {
		logger.FromContext(ctx).Debug().Str("func", "*authService.Authenticate").Str("user_id", token.UserID).Msg("token subject no longer exists")
		return models.User{}, ErrTokenIsExpiredOrInvalid
	}
	if err != nil {
		return models.User{}, fmt.Errorf("user search by id failed: %w", err)
	}

	return user, nil
}

func (a *authService) GetUser(ctx context.Context, id string) (models.User, error) {
	user, err := a.userRepository.FindUserByID(ctx, id)
	if err != nil {
		return models.User{}, fmt.Errorf("user search by id failed: %w", err)
	}

	return user, nil
}

// EnsureAdmin makes sure an admin account exists for email. A missing account
// is created with password. An existing one keeps its password and is
// promoted if needed.
func (a *authService) EnsureAdmin(ctx context.Context, email, password string) error {
	log := logger.FromContext(ctx)
	email = models.NormalizeIdentifier(email)

	if email == "" || password == "" {
		return ErrInvalidDataProvided
	}

	user, err := a.userRepository.FindUserByEmail(ctx, email)
	switch {
	case err == nil:
		if user.IsAdmin() {
			log.Debug().Str("func", "*authService.EnsureAdmin").Str("user_id", user.ID).Msg("admin account already exists")
			return nil
		}
		if err = a.userRepository.SetUserRole(ctx, user.ID, models.RoleAdmin); err != nil {
			return fmt.Errorf("error promoting user to admin: %w", err)
		}
		log.Info().Str("func", "*authService.EnsureAdmin").Str("user_id", user.ID).Msg("user promoted to admin")
		return nil
	case !errors.Is(err, store.ErrNoUserWasFound):
		return fmt.Errorf("user search by e-mail failed: %w", err)
	}

	passwordHash, err := a.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	admin, err := a.userRepository.CreateUser(ctx, models.User{
		ID:           a.generateID(),
		Name:         adminName,
		Email:        email,
		Type:         models.Wholesale,
		Role:         models.RoleAdmin,
		PasswordHash: passwordHash,
		CreatedAt:    a.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("error creating admin account: %w", err)
	}

	log.Info().Str("func", "*authService.EnsureAdmin").Str("user_id", admin.ID).Msg("admin account created")
	return nil
}
