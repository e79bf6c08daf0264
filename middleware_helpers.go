package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-auth-api/middleware/jwtware"
)

type jwtValidator struct {
	ts TokenService
}

func (v jwtValidator) Validate(tokenString string) (jwtware.AuthClaims, error) {
	claims, err := v.ts.Validate(tokenString)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// ProtectedRoute builds the bearer-token guard applied to routes that require
// a verified identity. The guard only verifies the token; handlers re-derive
// identity from the stored claims themselves when they need it.
func ProtectedRoute(cfg Config, ts TokenService) fiber.Handler {
	return jwtware.New(jwtware.Config{
		TokenValidator: jwtValidator{ts: ts},
		ContextKey:     cfg.GetContextKey(),
		AuthScheme:     cfg.GetAuthScheme(),
		TokenLookup:    cfg.GetTokenLookup(),
	})
}

// ClaimsFromContext returns the verified claims the guard stored for this
// request, if any.
func ClaimsFromContext(c *fiber.Ctx, contextKey string) (AuthClaims, bool) {
	claims, ok := c.Locals(contextKey).(AuthClaims)
	return claims, ok
}
