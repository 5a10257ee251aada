package auth

import (
	"context"
)

type AuthService interface {
	Login(ctx context.Context, req LoginRequest, sessionReq SessionTrackingRequest) (TokenResponse, error)
	LoginWithGoogle(userAgent string) (redirectURL string)
	OAuthCallbackGoogle(ctx context.Context, code string, sessionReq SessionTrackingRequest) (TokenResponse, error)
	RefreshToken(ctx context.Context, req RefreshTokenRequest) (AccessTokenResponse, error)
	// Logout revokes the refresh token and force-logs-out any open
	// attendance session; local logout always completes.
	Logout(ctx context.Context, refreshToken string) error
	// Session resumes a remembered identity after a reload.
	Session(ctx context.Context) (SessionResponse, error)
}
