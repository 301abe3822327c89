package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/payflex/banking-system/internal/api/metrics"
	"github.com/payflex/banking-system/internal/core/domain"
	"github.com/payflex/banking-system/internal/core/ports"
)

// RefreshTokenCookie is the cookie carrying the refresh token between the
// client and the refresh endpoint. HTTP-only and SameSite=Strict; Secure
// outside development.
const RefreshTokenCookie = "refreshToken"

type AuthHandler struct {
	auth          ports.AuthService
	refreshTTL    time.Duration
	secureCookies bool
}

func NewAuthHandler(auth ports.AuthService, refreshTTL time.Duration, secureCookies bool) *AuthHandler {
	return &AuthHandler{auth: auth, refreshTTL: refreshTTL, secureCookies: secureCookies}
}

// RequestCode issues an email verification code.
//
// @Summary      Request email verification code
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      requestCodeRequest  true  "Target email"
// @Success      200   {object}  envelope
// @Failure      400   {object}  envelope
// @Failure      409   {object}  envelope
// @Router       /auth/request-code [post]
func (h *AuthHandler) RequestCode(c echo.Context) error {
	var req requestCodeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.auth.RequestVerificationCode(c.Request().Context(), req.Email); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ok("Verification code sent", nil))
}

// VerifyEmail confirms a verification code.
//
// @Summary      Verify email with OTP code
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      verifyEmailRequest  true  "Email and code"
// @Success      200   {object}  envelope
// @Failure      400   {object}  envelope
// @Router       /auth/verify-email [post]
func (h *AuthHandler) VerifyEmail(c echo.Context) error {
	var req verifyEmailRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.auth.VerifyEmail(c.Request().Context(), req.Email, req.Code); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ok("Email verified successfully", nil))
}

// Register creates an account for a verified email.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  envelope{data=userView}
// @Failure      400   {object}  envelope
// @Failure      409   {object}  envelope
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.auth.Register(c.Request().Context(), ports.RegisterInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Password:    req.Password,
		Gender:      req.Gender,
		DateOfBirth: req.DateOfBirth,
		Address:     req.Address,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, ok("User registered successfully", toUserView(user)))
}

// Login authenticates a user, sets the refresh cookie and returns the access token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  envelope{data=loginResponse}
// @Failure      401   {object}  envelope
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	pair, user, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		}
		return err
	}

	h.setRefreshCookie(c, pair.RefreshToken)
	metrics.LoginsTotal.WithLabelValues("success").Inc()

	return c.JSON(http.StatusOK, ok("Login successful", loginResponse{
		User:        toUserView(user),
		AccessToken: pair.AccessToken,
	}))
}

// Refresh rotates the refresh token and returns a new access token.
//
// @Summary      Refresh access token
// @Tags         auth
// @Produce      json
// @Success      200   {object}  envelope{data=refreshResponse}
// @Failure      403   {object}  envelope
// @Router       /auth/refresh-token [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	token := refreshCookieValue(c)

	pair, err := h.auth.Refresh(c.Request().Context(), token)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRefreshTokenMissing):
			metrics.TokenRefreshTotal.WithLabelValues("missing").Inc()
		case errors.Is(err, domain.ErrInvalidRefreshToken):
			metrics.TokenRefreshTotal.WithLabelValues("invalid").Inc()
		}
		return err
	}

	h.setRefreshCookie(c, pair.RefreshToken)
	metrics.TokenRefreshTotal.WithLabelValues("success").Inc()

	return c.JSON(http.StatusOK, ok("Access token refreshed successfully", refreshResponse{
		AccessToken: pair.AccessToken,
	}))
}

// Logout revokes the session and clears the refresh cookie.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200   {object}  envelope
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	token := refreshCookieValue(c)
	if token != "" {
		if err := h.auth.Logout(c.Request().Context(), token); err != nil {
			return err
		}
	}
	h.clearRefreshCookie(c)
	return c.JSON(http.StatusOK, ok("Logged out", nil))
}

// ResetPassword updates the credential after OTP verification.
//
// @Summary      Reset password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      resetPasswordRequest  true  "Email and new password"
// @Success      200   {object}  envelope
// @Failure      400   {object}  envelope
// @Router       /auth/update-password [post]
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.auth.ResetPassword(c.Request().Context(), req.Email, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ok("Password reset successfully", nil))
}

func (h *AuthHandler) setRefreshCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     RefreshTokenCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.refreshTTL / time.Second),
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteStrictMode,
	})
}

func (h *AuthHandler) clearRefreshCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     RefreshTokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteStrictMode,
	})
}

func refreshCookieValue(c echo.Context) string {
	cookie, err := c.Cookie(RefreshTokenCookie)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return err
	}
	return nil
}
