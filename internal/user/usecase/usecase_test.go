package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fekuna/tagro-storefront-service/internal/apperror"
	"github.com/fekuna/tagro-storefront-service/internal/auth"
	"github.com/fekuna/tagro-storefront-service/internal/model"
	"github.com/fekuna/tagro-storefront-service/internal/notification"
	notifusecase "github.com/fekuna/tagro-storefront-service/internal/notification/usecase"
	settingsrepo "github.com/fekuna/tagro-storefront-service/internal/settings/repository"
	"github.com/fekuna/tagro-storefront-service/internal/user"
	"github.com/fekuna/tagro-storefront-service/internal/user/dto"
	userrepo "github.com/fekuna/tagro-storefront-service/internal/user/repository"
	"github.com/fekuna/tagro-storefront-service/internal/user/usecase"
	"github.com/fekuna/tagro-storefront-service/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNotifier struct {
	code      string
	templates []string
	phones    []string
	err       error
}

func (n *fakeNotifier) SendOTP(_ context.Context, phone, template string) (string, error) {
	if n.err != nil {
		return "", n.err
	}
	n.phones = append(n.phones, phone)
	n.templates = append(n.templates, template)
	return n.code, nil
}

func (n *fakeNotifier) SendOrderConfirmation(context.Context, string, string, notification.OrderConfirmationData) error {
	return nil
}

type fixture struct {
	uc       user.UseCase
	repo     *userrepo.MemoryRepository
	notifier *fakeNotifier
	tokens   *auth.TokenManager
}

func setup() *fixture {
	f := &fixture{
		repo:     userrepo.NewMemoryRepository(),
		notifier: &fakeNotifier{code: "123456"},
		tokens:   auth.NewTokenManager("test-secret", time.Hour),
	}
	templates := notifusecase.NewTemplateUseCase(settingsrepo.NewMemoryRepository(), logger.NewNop())
	f.uc = usecase.NewUserUseCase(f.repo, userrepo.NewMemoryOTPStore(), f.notifier, templates, f.tokens, logger.NewNop())
	return f
}

func (f *fixture) register(t *testing.T, name, email, phone string) *dto.Session {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, f.uc.RequestOTP(ctx, &dto.RequestOTPInput{Phone: phone, Email: email, Purpose: dto.PurposeRegister}))
	s, err := f.uc.Register(ctx, &dto.RegisterInput{Name: name, Email: email, Phone: phone, Password: "secret1", OTP: "123456"})
	require.NoError(t, err)
	return s
}

func TestRegister(t *testing.T) {
	f := setup()
	s := f.register(t, "Rahim", " Rahim@Example.com ", "01711000000")

	assert.Equal(t, "rahim@example.com", s.User.Email)
	assert.Equal(t, model.RoleCustomer, s.User.Role)
	assert.Contains(t, s.User.ProfilePictureURL, s.User.ID)
	assert.NotEqual(t, "secret1", s.User.PasswordHash)

	claims, err := f.tokens.Parse(s.Token)
	require.NoError(t, err)
	assert.Equal(t, s.User.ID, claims.UserID)
	assert.Equal(t, model.RoleCustomer, claims.Role)

	require.Len(t, f.notifier.templates, 1)
	assert.Contains(t, f.notifier.templates[0], model.PlaceholderOTP)
}

func TestRequestOTP_BanglaTemplate(t *testing.T) {
	f := setup()
	err := f.uc.RequestOTP(context.Background(), &dto.RequestOTPInput{Phone: "01711000000", Purpose: dto.PurposeRegister, Lang: model.LangBN})
	require.NoError(t, err)
	assert.Equal(t, model.DefaultSmsTemplates().OTP.BN, f.notifier.templates[0])
}

func TestRegister_OTPIsSingleUse(t *testing.T) {
	f := setup()
	ctx := context.Background()
	require.NoError(t, f.uc.RequestOTP(ctx, &dto.RequestOTPInput{Phone: "01711000000", Purpose: dto.PurposeRegister}))

	_, err := f.uc.Register(ctx, &dto.RegisterInput{Name: "A", Email: "a@example.com", Phone: "01711000000", Password: "secret1", OTP: "000000"})
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	_, err = f.uc.Register(ctx, &dto.RegisterInput{Name: "A", Email: "a@example.com", Phone: "01711000000", Password: "secret1", OTP: "123456"})
	require.NoError(t, err)
}

func TestRegister_TakenIdentityKeepsOTP(t *testing.T) {
	f := setup()
	ctx := context.Background()
	require.NoError(t, f.uc.RequestOTP(ctx, &dto.RequestOTPInput{Phone: "01711000000", Email: "rahim@example.com", Purpose: dto.PurposeRegister}))

	// the email is claimed after the code went out
	require.NoError(t, f.repo.Create(ctx, &model.User{BaseModel: model.BaseModel{ID: "other"}, Email: "rahim@example.com", Phone: "01811000000"}))

	_, err := f.uc.Register(ctx, &dto.RegisterInput{Name: "Rahim", Email: "rahim@example.com", Phone: "01711000000", Password: "secret1", OTP: "123456"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	s, err := f.uc.Register(ctx, &dto.RegisterInput{Name: "Rahim", Email: "rahim.uddin@example.com", Phone: "01711000000", Password: "secret1", OTP: "123456"})
	require.NoError(t, err)
	assert.Equal(t, "rahim.uddin@example.com", s.User.Email)
}

func TestRegister_Rejected(t *testing.T) {
	f := setup()
	ctx := context.Background()
	f.register(t, "Rahim", "rahim@example.com", "01711000000")

	err := f.uc.RequestOTP(ctx, &dto.RequestOTPInput{Phone: "01811000000", Email: "RAHIM@example.com", Purpose: dto.PurposeRegister})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	err = f.uc.RequestOTP(ctx, &dto.RequestOTPInput{Phone: "01711000000", Purpose: dto.PurposeRegister})
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	_, err = f.uc.Register(ctx, &dto.RegisterInput{Name: "B", Email: "not-an-email", Phone: "019", Password: "secret1", OTP: "123456"})
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	_, err = f.uc.Register(ctx, &dto.RegisterInput{Name: "B", Email: "b@example.com", Phone: "019", Password: "123", OTP: "123456"})
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	err = f.uc.RequestOTP(ctx, &dto.RequestOTPInput{Phone: "019", Purpose: "login"})
	assert.True(t, apperror.Is(err, apperror.KindValidation))
}

func TestRequestOTP_SendFailure(t *testing.T) {
	f := setup()
	f.notifier.err = apperror.External("bulksmsbd", errors.New("boom"))

	err := f.uc.RequestOTP(context.Background(), &dto.RequestOTPInput{Phone: "01711000000", Purpose: dto.PurposeRegister})
	assert.True(t, apperror.Is(err, apperror.KindExternal))

	_, err = f.uc.Register(context.Background(), &dto.RegisterInput{Name: "A", Email: "a@example.com", Phone: "01711000000", Password: "secret1", OTP: "123456"})
	assert.True(t, apperror.Is(err, apperror.KindValidation))
}

func TestLogin(t *testing.T) {
	f := setup()
	ctx := context.Background()
	reg := f.register(t, "Rahim", "rahim@example.com", "01711000000")

	s, err := f.uc.Login(ctx, &dto.LoginInput{Email: "RAHIM@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, s.User.ID)
	assert.NotEmpty(t, s.Token)

	_, err = f.uc.Login(ctx, &dto.LoginInput{Email: "rahim@example.com", Password: "wrong"})
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindAuth))
	assert.Equal(t, "Invalid email or password", err.Error())

	_, err = f.uc.Login(ctx, &dto.LoginInput{Email: "nobody@example.com", Password: "secret1"})
	assert.True(t, apperror.Is(err, apperror.KindAuth))
}

func TestResetPassword(t *testing.T) {
	f := setup()
	ctx := context.Background()
	f.register(t, "Rahim", "rahim@example.com", "01711000000")

	err := f.uc.RequestOTP(ctx, &dto.RequestOTPInput{Phone: "01999999999", Purpose: dto.PurposeResetPassword})
	assert.True(t, apperror.Is(err, apperror.KindNotFound))

	require.NoError(t, f.uc.RequestOTP(ctx, &dto.RequestOTPInput{Phone: "01711000000", Purpose: dto.PurposeResetPassword}))
	require.NoError(t, f.uc.ResetPassword(ctx, &dto.ResetPasswordInput{Phone: "01711000000", OTP: "123456", NewPassword: "newsecret"}))

	_, err = f.uc.Login(ctx, &dto.LoginInput{Email: "rahim@example.com", Password: "secret1"})
	assert.True(t, apperror.Is(err, apperror.KindAuth))
	_, err = f.uc.Login(ctx, &dto.LoginInput{Email: "rahim@example.com", Password: "newsecret"})
	require.NoError(t, err)

	err = f.uc.ResetPassword(ctx, &dto.ResetPasswordInput{Phone: "01711000000", OTP: "123456", NewPassword: "another1"})
	assert.True(t, apperror.Is(err, apperror.KindValidation))
}

func TestUpdateProfile(t *testing.T) {
	f := setup()
	ctx := context.Background()
	s := f.register(t, "Rahim", "rahim@example.com", "01711000000")

	name, pic := " Rahim Uddin ", "https://img.example/p.png"
	u, err := f.uc.UpdateProfile(ctx, s.User.ID, &dto.UpdateProfileInput{Name: &name, ProfilePictureURL: &pic})
	require.NoError(t, err)
	assert.Equal(t, "Rahim Uddin", u.Name)
	assert.Equal(t, pic, u.ProfilePictureURL)

	empty := ""
	u, err = f.uc.UpdateProfile(ctx, s.User.ID, &dto.UpdateProfileInput{ProfilePictureURL: &empty})
	require.NoError(t, err)
	assert.Equal(t, "https://i.pravatar.cc/150?u="+s.User.ID, u.ProfilePictureURL)

	_, err = f.uc.UpdateProfile(ctx, s.User.ID, &dto.UpdateProfileInput{Name: &empty})
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	me, err := f.uc.Me(ctx, s.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rahim Uddin", me.Name)
}

func TestDeleteUser(t *testing.T) {
	f := setup()
	ctx := context.Background()
	a := f.register(t, "Admin", "admin@example.com", "01700000001")
	b := f.register(t, "Karim", "karim@example.com", "01700000002")

	err := f.uc.DeleteUser(ctx, a.User.ID, a.User.ID)
	require.Error(t, err)
	assert.Equal(t, "Cannot delete your own account", err.Error())

	require.NoError(t, f.uc.DeleteUser(ctx, a.User.ID, b.User.ID))
	_, err = f.uc.Me(ctx, b.User.ID)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))

	assert.True(t, apperror.Is(f.uc.DeleteUser(ctx, a.User.ID, b.User.ID), apperror.KindNotFound))

	users, err := f.uc.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}
