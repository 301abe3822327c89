package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/payflex/banking-system/internal/core/domain"
)

const remoteVerifyTimeout = 5 * time.Second

// RemoteAuth is the cross-service verification variant used by services that
// do not hold the signing secret. The bearer token is forwarded to the
// identity service's current-user endpoint; a non-success response, malformed
// payload, or timeout all collapse to domain.ErrUpstreamVerify — identity
// service unavailability is a hard failure for the requesting path.
//
// The claims are decoded without verification only to build the lookup URL;
// trust comes entirely from the identity service's answer.
func RemoteAuth(identityURL string, log zerolog.Logger) echo.MiddlewareFunc {
	client := &http.Client{Timeout: remoteVerifyTimeout}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c)
			if token == "" {
				return domain.ErrNoToken
			}

			userID, err := unverifiedUserID(token)
			if err != nil {
				return domain.ErrInvalidToken
			}

			user, err := fetchCurrentUser(c, client, identityURL, userID, token)
			if err != nil {
				log.Warn().Err(err).Str("user_id", userID).Msg("upstream identity verification failed")
				return domain.ErrUpstreamVerify
			}

			c.Set(ContextUserKey, user)
			c.Set(ContextTokenKey, token)
			return next(c)
		}
	}
}

func unverifiedUserID(token string) (string, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return "", err
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", domain.ErrInvalidToken
	}
	return userID, nil
}

func fetchCurrentUser(c echo.Context, client *http.Client, baseURL, userID, token string) (*domain.User, error) {
	url := fmt.Sprintf("%s/api/v1/users/get-current-user/%s", baseURL, userID)
	req, err := http.NewRequestWithContext(c.Request().Context(), http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("identity service responded %d", resp.StatusCode)
	}

	var payload struct {
		Success bool         `json:"success"`
		Data    *domain.User `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode identity response: %w", err)
	}
	if !payload.Success || payload.Data == nil || payload.Data.ID == "" {
		return nil, fmt.Errorf("identity service rejected token")
	}
	return payload.Data, nil
}
