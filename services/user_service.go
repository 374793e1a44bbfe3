package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"hotelcore/dto"
	apperrors "hotelcore/errors"
	"hotelcore/models"
	"hotelcore/services/logger"
	"hotelcore/store"
	"hotelcore/validator"
)

const defaultTokenTTL = 24 * time.Hour

type UserService struct {
	store          store.UserStore
	logger         logger.Logger
	storageTimeout time.Duration
	tokenSecret    string
	tokenTTL       time.Duration
}

type UserServiceOptions struct {
	Store          store.UserStore
	Logger         logger.Logger
	StorageTimeout time.Duration
	TokenSecret    string
	TokenTTL       time.Duration
}

func NewUserService(opts UserServiceOptions) *UserService {
	s := &UserService{
		store:          opts.Store,
		logger:         logger.OrNop(opts.Logger),
		storageTimeout: opts.StorageTimeout,
		tokenSecret:    opts.TokenSecret,
		tokenTTL:       opts.TokenTTL,
	}
	if s.tokenTTL <= 0 {
		s.tokenTTL = defaultTokenTTL
	}
	return s
}

// CreateUser tạo tài khoản, mật khẩu được hash bằng bcrypt.
func (s *UserService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*models.User, error) {
	if err := validator.Struct(req); err != nil {
		return nil, err
	}
	role := models.RoleUser
	if req.Role != "" {
		role = models.UserRole(strings.ToLower(req.Role))
	}
	user := &models.User{
		ID:            uuid.NewString(),
		Name:          req.Name,
		Email:         strings.ToLower(strings.TrimSpace(req.Email)),
		PhoneNumber:   req.PhoneNumber,
		Role:          role,
		BookingStatus: models.UserBookingNone,
	}
	if user.Name == "" {
		user.Name = "New User"
	}
	if err := validator.ValidateUser(user); err != nil {
		return nil, err
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeValidation, "cannot hash password", err)
	}

	ctx, cancel := withStorageTimeout(ctx, s.storageTimeout)
	defer cancel()
	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Info("user %s created with role %s", user.ID, user.Role)
	return user, nil
}

func (s *UserService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	ctx, cancel := withStorageTimeout(ctx, s.storageTimeout)
	defer cancel()
	return s.store.GetUser(ctx, userID)
}

// Login kiểm tra email/mật khẩu và cấp access token.
func (s *UserService) Login(ctx context.Context, req dto.LoginInput) (*dto.LoginResponse, error) {
	if err := validator.Struct(req); err != nil {
		return nil, err
	}
	ctx, cancel := withStorageTimeout(ctx, s.storageTimeout)
	defer cancel()

	user, err := s.store.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if apperrors.HasCode(err, apperrors.ErrCodeNotFound) {
			return nil, apperrors.NewAppError(apperrors.ErrCodeUnauthorized, "Sai email hoặc mật khẩu", nil)
		}
		return nil, err
	}
	if !user.CheckPassword(req.Password) {
		return nil, apperrors.NewAppError(apperrors.ErrCodeUnauthorized, "Sai email hoặc mật khẩu", nil)
	}

	expiresAt := time.Now().Add(s.tokenTTL)
	token, err := GenerateToken(s.tokenSecret, user.ID, user.Role, s.tokenTTL)
	if err != nil {
		return nil, err
	}
	s.logger.Info("user %s logged in", user.ID)
	return &dto.LoginResponse{AccessToken: token, ExpiresAt: expiresAt, User: *user}, nil
}
