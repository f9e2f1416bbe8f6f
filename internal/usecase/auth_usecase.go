package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"blood-donation-backend/internal/converter"
	"blood-donation-backend/internal/delivery/dto"
	"blood-donation-backend/internal/domain/entity"
	"blood-donation-backend/internal/domain/repository"
	"blood-donation-backend/internal/infrastructure/storage"
	"blood-donation-backend/internal/service"
	"blood-donation-backend/pkg/jwt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthUsecase interface {
	RegisterDonor(ctx context.Context, req *dto.RegisterDonorRequest) (*dto.UserResponse, error)
	RegisterPmiCenter(ctx context.Context, req *dto.RegisterPmiRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	GoogleLogin(ctx context.Context, req *dto.GoogleLoginRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, userID uuid.UUID, accessTokenID string, req *dto.LogoutRequest) error
	RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error)
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error)
}

type authUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	userRepo        repository.UserRepository
	donorRepo       repository.DonorRepository
	pmiCenterRepo   repository.PmiCenterRepository
	jwtService      *jwt.JWTService
	sessionService  service.SessionService
	identityService service.IdentityService
	auditService    service.AuditService
	blobStore       storage.BlobStore
	now             func() time.Time
}

func NewAuthUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	donorRepo repository.DonorRepository,
	pmiCenterRepo repository.PmiCenterRepository,
	jwtService *jwt.JWTService,
	sessionService service.SessionService,
	identityService service.IdentityService,
	auditService service.AuditService,
	blobStore storage.BlobStore,
) AuthUsecase {
	return &authUsecase{
		db:              db,
		log:             log,
		userRepo:        userRepo,
		donorRepo:       donorRepo,
		pmiCenterRepo:   pmiCenterRepo,
		jwtService:      jwtService,
		sessionService:  sessionService,
		identityService: identityService,
		auditService:    auditService,
		blobStore:       blobStore,
		now:             time.Now,
	}
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func (u *authUsecase) newUser(name, email, password, phone, city string, role entity.Role) (*entity.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	return &entity.User{
		Name:     name,
		Email:    strings.ToLower(strings.TrimSpace(email)),
		Password: string(hashedPassword),
		Role:     role,
		Phone:    optional(phone),
		City:     optional(city),
	}, nil
}

func (u *authUsecase) createUser(ctx context.Context, tx *gorm.DB, user *entity.User) error {
	if err := u.userRepo.Create(ctx, tx, user); err != nil {
		if isDuplicateKeyError(err, "email") {
			return ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to create user: %+v", err)
		return err
	}
	return nil
}

func (u *authUsecase) RegisterDonor(ctx context.Context, req *dto.RegisterDonorRequest) (*dto.UserResponse, error) {
	user, err := u.newUser(req.Name, req.Email, req.Password, req.Phone, req.City, entity.RoleDonor)
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.createUser(ctx, tx, user); err != nil {
		return nil, err
	}

	donor := &entity.Donor{UserID: user.ID}
	if err := u.donorRepo.Create(ctx, tx, donor); err != nil {
		u.log.Warnf("Failed to create donor: %+v", err)
		return nil, err
	}

	response := converter.UserToResponse(user, u.blobStore.URL)
	if err := u.auditService.LogCreate(ctx, tx, &user.ID, entity.AuditActionUserRegister, "user", user.ID.String(), response); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return response, nil
}

func (u *authUsecase) RegisterPmiCenter(ctx context.Context, req *dto.RegisterPmiRequest) (*dto.UserResponse, error) {
	user, err := u.newUser(req.Name, req.Email, req.Password, req.Phone, req.City, entity.RolePmi)
	if err != nil {
		return nil, err
	}
	user.Address = optional(req.Address)

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.createUser(ctx, tx, user); err != nil {
		return nil, err
	}

	center := &entity.PmiCenter{UserID: user.ID, Location: req.Location}
	if err := u.pmiCenterRepo.Create(ctx, tx, center); err != nil {
		u.log.Warnf("Failed to create pmi center: %+v", err)
		return nil, err
	}

	response := converter.UserToResponse(user, u.blobStore.URL)
	if err := u.auditService.LogCreate(ctx, tx, &user.ID, entity.AuditActionUserRegister, "user", user.ID.String(), response); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return response, nil
}

func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	// Read-only, no transaction needed
	user, err := u.userRepo.FindByEmail(ctx, u.db, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		u.log.Warnf("Failed to find user by email: %+v", err)
		return nil, err
	}
	if user == nil || !user.HasPassword() {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return u.issueTokens(ctx, user)
}

// GoogleLogin signs in an existing account whose email the identity provider
// vouches for. Accounts are never created here.
func (u *authUsecase) GoogleLogin(ctx context.Context, req *dto.GoogleLoginRequest) (*dto.TokenResponse, error) {
	profile, err := u.identityService.Verify(ctx, req.IDToken)
	if err != nil {
		if errors.Is(err, service.ErrIdentityTokenRejected) {
			return nil, ErrIdentityRejected
		}
		return nil, err
	}

	user, err := u.userRepo.FindByEmail(ctx, u.db, profile.Email)
	if err != nil {
		u.log.Warnf("Failed to find user by email: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrAccountNotRegistered
	}

	if user.Avatar == nil && profile.Picture != "" {
		u.attachAvatar(ctx, user, profile.Picture)
	}

	return u.issueTokens(ctx, user)
}

// attachAvatar copies the provider picture into the blob store. Failures only
// cost the user their avatar, so they are logged and swallowed.
func (u *authUsecase) attachAvatar(ctx context.Context, user *entity.User, pictureURL string) {
	image, err := u.identityService.FetchAvatar(ctx, pictureURL)
	if err != nil {
		u.log.WithField("user_id", user.ID).Warnf("Failed to download avatar: %+v", err)
		return
	}

	key := fmt.Sprintf("avatars/avatar-%d-%s.jpg", u.now().Unix(), uuid.New().String()[:8])
	key, err = u.blobStore.Put(ctx, key, bytes.NewReader(image))
	if err != nil {
		u.log.WithField("user_id", user.ID).Warnf("Failed to store avatar: %+v", err)
		return
	}

	user.Avatar = &key
	if err := u.userRepo.Update(ctx, u.db, user); err != nil {
		u.log.WithField("user_id", user.ID).Warnf("Failed to save avatar: %+v", err)
		user.Avatar = nil
	}
}

func (u *authUsecase) issueTokens(ctx context.Context, user *entity.User) (*dto.TokenResponse, error) {
	accessToken, accessTokenID, err := u.jwtService.GenerateAccessToken(user.ID, user.Email, user.Role.String())
	if err != nil {
		u.log.Warnf("Failed to generate access token: %+v", err)
		return nil, err
	}

	refreshToken, refreshTokenID, err := u.jwtService.GenerateRefreshToken(user.ID, user.Email, user.Role.String())
	if err != nil {
		u.log.Warnf("Failed to generate refresh token: %+v", err)
		return nil, err
	}

	if err := u.sessionService.Store(ctx, user.ID, accessTokenID, refreshTokenID); err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(u.jwtService.GetAccessExpiry().Seconds()),
		User:         converter.UserToResponse(user, u.blobStore.URL),
	}, nil
}

// Logout revokes the current access token and, when given, the refresh token
// of the same user.
func (u *authUsecase) Logout(ctx context.Context, userID uuid.UUID, accessTokenID string, req *dto.LogoutRequest) error {
	refreshTokenID := ""
	if req != nil && req.RefreshToken != "" {
		claims, err := u.jwtService.ValidateToken(req.RefreshToken)
		if err == nil && claims.TokenType == jwt.RefreshToken && claims.UserID == userID {
			refreshTokenID = claims.TokenID
		}
	}

	return u.sessionService.Revoke(ctx, userID, accessTokenID, refreshTokenID)
}

func (u *authUsecase) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	claims, err := u.jwtService.ValidateToken(req.RefreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != jwt.RefreshToken {
		return nil, ErrInvalidToken
	}

	user, err := loadCaller(ctx, u.db, u.userRepo, claims.UserID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidToken
		}
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}

	accessToken, accessTokenID, err := u.jwtService.GenerateAccessToken(user.ID, user.Email, user.Role.String())
	if err != nil {
		u.log.Warnf("Failed to generate access token: %+v", err)
		return nil, err
	}

	refreshToken, refreshTokenID, err := u.jwtService.GenerateRefreshToken(user.ID, user.Email, user.Role.String())
	if err != nil {
		u.log.Warnf("Failed to generate refresh token: %+v", err)
		return nil, err
	}

	rotated, err := u.sessionService.Rotate(ctx, user.ID, claims.TokenID, accessTokenID, refreshTokenID)
	if err != nil {
		return nil, err
	}
	if !rotated {
		return nil, ErrTokenRevoked
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(u.jwtService.GetAccessExpiry().Seconds()),
	}, nil
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := loadCaller(ctx, u.db, u.userRepo, userID)
	if err != nil {
		return nil, err
	}
	return converter.UserToResponse(user, u.blobStore.URL), nil
}
