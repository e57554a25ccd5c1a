package usecase

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/fekuna/tagro-storefront-service/internal/apperror"
	"github.com/fekuna/tagro-storefront-service/internal/auth"
	"github.com/fekuna/tagro-storefront-service/internal/model"
	"github.com/fekuna/tagro-storefront-service/internal/notification"
	"github.com/fekuna/tagro-storefront-service/internal/user"
	"github.com/fekuna/tagro-storefront-service/internal/user/dto"
	"github.com/fekuna/tagro-storefront-service/pkg/logger"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	otpTTL            = 5 * time.Minute
	minPasswordLength = 6
)

type userUseCase struct {
	repo      user.Repository
	otps      user.OTPStore
	notifier  notification.Notifier
	templates notification.TemplateUseCase
	tokens    *auth.TokenManager
	logger    logger.ZapLogger
	now       func() time.Time
}

func NewUserUseCase(
	repo user.Repository,
	otps user.OTPStore,
	notifier notification.Notifier,
	templates notification.TemplateUseCase,
	tokens *auth.TokenManager,
	log logger.ZapLogger,
) user.UseCase {
	return &userUseCase{
		repo:      repo,
		otps:      otps,
		notifier:  notifier,
		templates: templates,
		tokens:    tokens,
		logger:    log,
		now:       time.Now,
	}
}

func defaultProfilePicture(id string) string {
	return fmt.Sprintf("https://i.pravatar.cc/150?u=%s", id)
}

func (uc *userUseCase) RequestOTP(ctx context.Context, input *dto.RequestOTPInput) error {
	phone := strings.TrimSpace(input.Phone)
	if phone == "" {
		return apperror.Validation("phone number is required")
	}

	switch input.Purpose {
	case dto.PurposeRegister:
		taken, err := uc.identityTaken(ctx, model.NormalizeEmail(input.Email), phone)
		if err != nil {
			return err
		}
		if taken {
			return apperror.Validation("User with this email or phone already exists")
		}
	case dto.PurposeResetPassword:
		u, err := uc.repo.FindByPhone(ctx, phone)
		if err != nil {
			return errors.Wrap(err, "find user by phone")
		}
		if u == nil {
			return apperror.NotFound("no account is registered with this phone number")
		}
	default:
		return apperror.Validation("unknown otp purpose %q", input.Purpose)
	}

	templates, err := uc.templates.GetTemplates(ctx)
	if err != nil {
		return err
	}
	code, err := uc.notifier.SendOTP(ctx, phone, templates.OTP.Get(input.Lang))
	if err != nil {
		return err
	}
	if err := uc.otps.Save(ctx, string(input.Purpose), phone, code, otpTTL); err != nil {
		return errors.Wrap(err, "save otp")
	}
	return nil
}

func (uc *userUseCase) identityTaken(ctx context.Context, email, phone string) (bool, error) {
	if email != "" {
		u, err := uc.repo.FindByEmail(ctx, email)
		if err != nil {
			return false, errors.Wrap(err, "find user by email")
		}
		if u != nil {
			return true, nil
		}
	}
	u, err := uc.repo.FindByPhone(ctx, phone)
	if err != nil {
		return false, errors.Wrap(err, "find user by phone")
	}
	return u != nil, nil
}

func (uc *userUseCase) verifyOTP(ctx context.Context, purpose dto.OTPPurpose, phone, code string) error {
	ok, err := uc.otps.Verify(ctx, string(purpose), phone, strings.TrimSpace(code))
	if err != nil {
		return errors.Wrap(err, "verify otp")
	}
	if !ok {
		return apperror.Validation("invalid or expired OTP").WithCode("otp_invalid")
	}
	return nil
}

func validatePassword(pw string) error {
	if len(pw) < minPasswordLength {
		return apperror.Validation("password must be at least %d characters", minPasswordLength)
	}
	return nil
}

func (uc *userUseCase) Register(ctx context.Context, input *dto.RegisterInput) (*dto.Session, error) {
	name := strings.TrimSpace(input.Name)
	email := model.NormalizeEmail(input.Email)
	phone := strings.TrimSpace(input.Phone)
	if name == "" || email == "" || phone == "" {
		return nil, apperror.Validation("name, email and phone are required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, apperror.Validation("invalid email address")
	}
	if err := validatePassword(input.Password); err != nil {
		return nil, err
	}

	taken, err := uc.identityTaken(ctx, email, phone)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperror.Validation("User with this email or phone already exists")
	}

	// the code is single use, so it is spent only once nothing else can reject the request
	if err := uc.verifyOTP(ctx, dto.PurposeRegister, phone, input.OTP); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Wrap(err, "hash password")
	}

	now := uc.now()
	id := uuid.New().String()
	u := &model.User{
		BaseModel:         model.BaseModel{ID: id, CreatedAt: now, UpdatedAt: now},
		Name:              name,
		Email:             email,
		Phone:             phone,
		PasswordHash:      string(hash),
		Role:              model.RoleCustomer,
		ProfilePictureURL: defaultProfilePicture(id),
		Addresses:         []model.Address{},
		Orders:            []model.Order{},
	}
	if err := uc.repo.Create(ctx, u); err != nil {
		return nil, errors.Wrap(err, "create user")
	}
	uc.logger.Info("user registered", zap.String("user_id", u.ID))

	return uc.session(u)
}

func (uc *userUseCase) session(u *model.User) (*dto.Session, error) {
	token, exp, err := uc.tokens.Issue(u)
	if err != nil {
		return nil, errors.Wrap(err, "issue token")
	}
	return &dto.Session{Token: token, ExpiresAt: exp, User: u}, nil
}

func (uc *userUseCase) Login(ctx context.Context, input *dto.LoginInput) (*dto.Session, error) {
	u, err := uc.repo.FindByEmail(ctx, model.NormalizeEmail(input.Email))
	if err != nil {
		return nil, errors.Wrap(err, "find user by email")
	}
	if u == nil || bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(input.Password)) != nil {
		return nil, apperror.Auth("Invalid email or password")
	}
	return uc.session(u)
}

func (uc *userUseCase) Me(ctx context.Context, userID string) (*model.User, error) {
	u, err := uc.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "find user")
	}
	if u == nil {
		return nil, apperror.NotFound("user %s not found", userID)
	}
	return u, nil
}

func (uc *userUseCase) UpdateProfile(ctx context.Context, userID string, input *dto.UpdateProfileInput) (*model.User, error) {
	u, err := uc.Me(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, apperror.Validation("name cannot be empty")
		}
		u.Name = name
	}
	if input.ProfilePictureURL != nil {
		u.ProfilePictureURL = strings.TrimSpace(*input.ProfilePictureURL)
		if u.ProfilePictureURL == "" {
			u.ProfilePictureURL = defaultProfilePicture(u.ID)
		}
	}
	u.UpdatedAt = uc.now()

	if err := uc.repo.Update(ctx, u); err != nil {
		return nil, errors.Wrap(err, "update user")
	}
	return u, nil
}

func (uc *userUseCase) ResetPassword(ctx context.Context, input *dto.ResetPasswordInput) error {
	phone := strings.TrimSpace(input.Phone)
	if err := validatePassword(input.NewPassword); err != nil {
		return err
	}
	if err := uc.verifyOTP(ctx, dto.PurposeResetPassword, phone, input.OTP); err != nil {
		return err
	}

	u, err := uc.repo.FindByPhone(ctx, phone)
	if err != nil {
		return errors.Wrap(err, "find user by phone")
	}
	if u == nil {
		return apperror.NotFound("no account is registered with this phone number")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return errors.Wrap(err, "hash password")
	}
	u.PasswordHash = string(hash)
	u.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, u); err != nil {
		return errors.Wrap(err, "update password")
	}
	uc.logger.Info("password reset", zap.String("user_id", u.ID))
	return nil
}

func (uc *userUseCase) ListUsers(ctx context.Context) ([]model.User, error) {
	users, err := uc.repo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list users")
	}
	return users, nil
}

func (uc *userUseCase) DeleteUser(ctx context.Context, actorID, userID string) error {
	if actorID == userID {
		return apperror.Validation("Cannot delete your own account")
	}
	if _, err := uc.Me(ctx, userID); err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, userID); err != nil {
		return errors.Wrap(err, "delete user")
	}
	uc.logger.Info("user deleted", zap.String("user_id", userID), zap.String("by", actorID))
	return nil
}
