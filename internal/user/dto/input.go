package dto

import (
	"time"

	"github.com/fekuna/tagro-storefront-service/internal/model"
)

type OTPPurpose string

const (
	PurposeRegister      OTPPurpose = "register"
	PurposeResetPassword OTPPurpose = "reset_password"
)

type RequestOTPInput struct {
	Phone   string
	Email   string // register only, checked for uniqueness up front
	Purpose OTPPurpose
	Lang    model.Language
}

type RegisterInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
	OTP      string
}

type LoginInput struct {
	Email    string
	Password string
}

type UpdateProfileInput struct {
	Name              *string
	ProfilePictureURL *string
}

type ResetPasswordInput struct {
	Phone       string
	OTP         string
	NewPassword string
}

type Session struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expiresAt"`
	User      *model.User `json:"user"`
}
