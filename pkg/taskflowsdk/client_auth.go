package taskflowsdk

import (
	"context"
	"net/http"
)

// Register creates an account and returns a Session for it.
func (c *Client) Register(ctx context.Context, name, email, password string) (*Session, error) {
	resp, err := c.do(ctx, http.MethodPost, "/v1/auth/register", "", RegisterRequest{
		Name:     name,
		Email:    email,
		Password: password,
	})
	if err != nil {
		return nil, err
	}
	auth, err := decode[AuthResponse](resp, http.StatusCreated)
	if err != nil {
		return nil, err
	}
	return newSession(c, auth), nil
}

// Login authenticates with email and password.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	resp, err := c.do(ctx, http.MethodPost, "/v1/auth/login", "", LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	auth, err := decode[AuthResponse](resp, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return newSession(c, auth), nil
}

// Refresh exchanges a refresh token for a new pair. The old refresh token
// stops working.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	resp, err := c.do(ctx, http.MethodPost, "/v1/auth/refresh", "", RefreshRequest{RefreshToken: refreshToken})
	if err != nil {
		return nil, err
	}
	tok, err := decode[TokenResponse](resp, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return &tok, nil
}

func (c *Client) Logout(ctx context.Context, refreshToken string) error {
	resp, err := c.do(ctx, http.MethodPost, "/v1/auth/logout", "", RefreshRequest{RefreshToken: refreshToken})
	if err != nil {
		return err
	}
	_, err = decode[any](resp, http.StatusOK)
	return err
}

// ForgotPassword succeeds for unknown emails too.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	resp, err := c.do(ctx, http.MethodPost, "/v1/auth/forgot-password", "", ForgotPasswordRequest{Email: email})
	if err != nil {
		return err
	}
	_, err = decode[any](resp, http.StatusOK)
	return err
}

// VerifyOTP returns a reset token for ResetPassword.
func (c *Client) VerifyOTP(ctx context.Context, email, otp string) (string, error) {
	resp, err := c.do(ctx, http.MethodPost, "/v1/auth/verify-otp", "", VerifyOTPRequest{Email: email, OTP: otp})
	if err != nil {
		return "", err
	}
	out, err := decode[VerifyOTPResponse](resp, http.StatusOK)
	if err != nil {
		return "", err
	}
	return out.ResetToken, nil
}

func (c *Client) ResetPassword(ctx context.Context, resetToken, password string) error {
	resp, err := c.do(ctx, http.MethodPost, "/v1/auth/reset-password", "", ResetPasswordRequest{
		Token:    resetToken,
		Password: password,
	})
	if err != nil {
		return err
	}
	_, err = decode[any](resp, http.StatusOK)
	return err
}
