package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/Jaymin-PCA240/Task-Management-BE/internal/taskflow/service"
	"github.com/Jaymin-PCA240/Task-Management-BE/pkg/httpx"
	"github.com/Jaymin-PCA240/Task-Management-BE/pkg/taskflowsdk"
)

const (
	refreshCookieName = "refreshToken"
	refreshCookiePath = "/v1/auth"
)

// AuthHandler serves registration, sign in and the password reset flow.
type AuthHandler struct {
	responder

	AuthService          *service.AuthService
	PasswordResetService *service.PasswordResetService

	// CookieSecure marks the refresh cookie Secure.
	CookieSecure bool
	CookieMaxAge time.Duration
}

func (h *AuthHandler) setRefreshCookie(w http.ResponseWriter, token string) {
	maxAge := h.CookieMaxAge
	if maxAge <= 0 {
		maxAge = 7 * 24 * time.Hour
	}
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    token,
		Path:     refreshCookiePath,
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		Secure:   h.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearRefreshCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     refreshCookiePath,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// refreshTokenFrom prefers the JSON body and falls back to the cookie.
// The body is optional.
func refreshTokenFrom(w http.ResponseWriter, r *http.Request) (string, error) {
	var req taskflowsdk.RefreshRequest
	if r.ContentLength != 0 {
		if err := httpx.DecodeJSON(w, r, &req); err != nil && !errors.Is(err, httpx.ErrEmptyBody) {
			return "", err
		}
	}
	if req.RefreshToken != "" {
		return req.RefreshToken, nil
	}
	if c, err := r.Cookie(refreshCookieName); err == nil {
		return c.Value, nil
	}
	return "", nil
}

// HandleRegister creates an account.
//
//	@Summary		Register
//	@Description	Creates a member account and signs it in. The refresh token is also set as an HttpOnly cookie.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		taskflowsdk.RegisterRequest								true	"Account details"
//	@Success		201		{object}	taskflowsdk.Envelope[taskflowsdk.AuthResponse]		"Registered"
//	@Failure		400		{object}	httpx.Envelope								"Validation failed"
//	@Failure		409		{object}	httpx.Envelope								"Email already registered"
//	@Router			/v1/auth/register [post].
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req taskflowsdk.RegisterRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		h.badBody(w, err)
		return
	}

	res, err := h.AuthService.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.setRefreshCookie(w, res.Tokens.RefreshToken)
	httpx.WriteSuccess(w, http.StatusCreated, "User registered successfully", toAuthResponse(res.User, res.Tokens))
}

// HandleLogin signs a user in.
//
//	@Summary		Login
//	@Description	Exchanges email and password for an access and refresh token. Replaces any earlier refresh token.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		taskflowsdk.LoginRequest								true	"Credentials"
//	@Success		200		{object}	taskflowsdk.Envelope[taskflowsdk.AuthResponse]		"Signed in"
//	@Failure		401		{object}	httpx.Envelope								"Invalid email or password"
//	@Failure		429		{object}	httpx.Envelope								"Too many attempts"
//	@Router			/v1/auth/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req taskflowsdk.LoginRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		h.badBody(w, err)
		return
	}

	res, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.setRefreshCookie(w, res.Tokens.RefreshToken)
	httpx.WriteSuccess(w, http.StatusOK, "Login successful", toAuthResponse(res.User, res.Tokens))
}

// HandleRefresh rotates the refresh token.
//
//	@Summary		Refresh tokens
//	@Description	Exchanges a refresh token, from the body or the refreshToken cookie, for a new pair. The old refresh token stops working.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		taskflowsdk.RefreshRequest								false	"Refresh token, when not sent as a cookie"
//	@Success		200		{object}	taskflowsdk.Envelope[taskflowsdk.TokenResponse]		"New token pair"
//	@Failure		401		{object}	httpx.Envelope								"Invalid or expired refresh token"
//	@Router			/v1/auth/refresh [post].
func (h *AuthHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	token, err := refreshTokenFrom(w, r)
	if err != nil {
		h.badBody(w, err)
		return
	}

	pair, err := h.AuthService.Refresh(r.Context(), token)
	if err != nil {
		if errors.Is(err, service.ErrUnauthenticated) {
			h.clearRefreshCookie(w)
		}
		h.fail(w, r, err)
		return
	}
	h.setRefreshCookie(w, pair.RefreshToken)
	httpx.WriteSuccess(w, http.StatusOK, "Token refreshed", taskflowsdk.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    int(pair.ExpiresIn.Seconds()),
	})
}

// HandleLogout revokes the refresh token.
//
//	@Summary		Logout
//	@Description	Revokes the refresh token and clears the cookie. Succeeds for unknown or missing tokens.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		taskflowsdk.RefreshRequest	false	"Refresh token, when not sent as a cookie"
//	@Success		200		{object}	httpx.Envelope	"Logged out"
//	@Router			/v1/auth/logout [post].
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	token, err := refreshTokenFrom(w, r)
	if err != nil {
		h.badBody(w, err)
		return
	}
	if err := h.AuthService.Logout(r.Context(), token); err != nil {
		h.fail(w, r, err)
		return
	}
	h.clearRefreshCookie(w)
	httpx.WriteSuccess(w, http.StatusOK, "Logged out successfully", nil)
}

// HandleForgotPassword mails a one-time code.
//
//	@Summary		Request password reset
//	@Description	Mails a 6-digit code to the address when it belongs to an account. The response does not reveal whether it does.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		taskflowsdk.ForgotPasswordRequest	true	"Account email"
//	@Success		200		{object}	httpx.Envelope			"Code sent if the account exists"
//	@Failure		502		{object}	httpx.Envelope			"Mail delivery failed"
//	@Router			/v1/auth/forgot-password [post].
func (h *AuthHandler) HandleForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req taskflowsdk.ForgotPasswordRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		h.badBody(w, err)
		return
	}
	if err := h.PasswordResetService.ForgotPassword(r.Context(), req.Email); err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, "If the account exists, an OTP has been sent", nil)
}

// HandleVerifyOTP exchanges the mailed code for a reset token.
//
//	@Summary		Verify reset code
//	@Description	Consumes the mailed code and returns a short-lived reset token.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		taskflowsdk.VerifyOTPRequest								true	"Email and code"
//	@Success		200		{object}	taskflowsdk.Envelope[taskflowsdk.VerifyOTPResponse]	"Reset token"
//	@Failure		400		{object}	httpx.Envelope									"Invalid or expired code"
//	@Failure		404		{object}	httpx.Envelope									"No pending code"
//	@Router			/v1/auth/verify-otp [post].
func (h *AuthHandler) HandleVerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req taskflowsdk.VerifyOTPRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		h.badBody(w, err)
		return
	}
	token, err := h.PasswordResetService.VerifyOTP(r.Context(), req.Email, req.OTP)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, "OTP verified", taskflowsdk.VerifyOTPResponse{ResetToken: token})
}

// HandleResetPassword sets a new password.
//
//	@Summary		Reset password
//	@Description	Sets a new password using a reset token. Signs the user out everywhere.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		taskflowsdk.ResetPasswordRequest	true	"Reset token and new password"
//	@Success		200		{object}	httpx.Envelope			"Password changed"
//	@Failure		400		{object}	httpx.Envelope			"Password too short"
//	@Failure		401		{object}	httpx.Envelope			"Invalid or expired reset token"
//	@Router			/v1/auth/reset-password [post].
func (h *AuthHandler) HandleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req taskflowsdk.ResetPasswordRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		h.badBody(w, err)
		return
	}
	if err := h.PasswordResetService.ResetPassword(r.Context(), req.Token, req.Password); err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, "Password reset successfully", nil)
}

// HandleMe returns the caller's profile.
//
//	@Summary		Current user
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	taskflowsdk.Envelope[taskflowsdk.User]	"Profile"
//	@Failure		401	{object}	httpx.Envelope				"Unauthorized"
//	@Security		BearerAuth
//	@Router			/v1/auth/me [get].
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	u, err := h.AuthService.Me(r.Context(), actor(r).UserID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, "User profile", toUser(u))
}

// HandleUpdateProfile renames the caller.
//
//	@Summary		Update profile
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		taskflowsdk.UpdateProfileRequest		true	"New name"
//	@Success		200		{object}	taskflowsdk.Envelope[taskflowsdk.User]	"Updated profile"
//	@Failure		400		{object}	httpx.Envelope				"Validation failed"
//	@Security		BearerAuth
//	@Router			/v1/auth/update-profile [put].
func (h *AuthHandler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req taskflowsdk.UpdateProfileRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		h.badBody(w, err)
		return
	}
	u, err := h.AuthService.UpdateProfile(r.Context(), actor(r).UserID, req.Name)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, "Profile updated successfully", toUser(u))
}
