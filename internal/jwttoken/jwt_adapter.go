package jwttoken

import (
	"mintgate/internal/platform/middleware"
)

// MiddlewareAdapter exposes the JWT service through the middleware's
// TokenValidator interface.
type MiddlewareAdapter struct {
	service *JWTService
}

func NewMiddlewareAdapter(service *JWTService) *MiddlewareAdapter {
	return &MiddlewareAdapter{service: service}
}

func (a *MiddlewareAdapter) Validate(tokenString string) (*middleware.Claims, error) {
	claims, err := a.service.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	return &middleware.Claims{
		UserID:         claims.UserID,
		OrganizationID: claims.OrganizationID,
	}, nil
}
