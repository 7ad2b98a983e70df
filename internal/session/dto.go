package session

import "errors"

// SignInDTO is the request payload for password sign-in.
type SignInDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (dto SignInDTO) Validate() error {
	if dto.Email == "" {
		return errors.New("email is required")
	}
	if dto.Password == "" {
		return errors.New("password is required")
	}
	return nil
}

// RefreshTokenDTO carries a refresh token exchange request.
type RefreshTokenDTO struct {
	RefreshToken string `json:"refresh_token"`
}

func (dto RefreshTokenDTO) Validate() error {
	if dto.RefreshToken == "" {
		return errors.New("refresh_token is required")
	}
	return nil
}

// VerificationEmailDTO asks for a verification email dispatch.
type VerificationEmailDTO struct {
	ReturnURL string `json:"return_url"`
}
