package middleware

import (
	"strings"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/blr-world/hub-backend/pkg/token"
)

// JWTAuth verifies the bearer token and injects the caller's identity and
// role claim into headers the handlers trust. The headers are overwritten
// unconditionally so a client cannot smuggle its own values.
func JWTAuth(issuer *token.Issuer, logger *zap.Logger) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			tokenString := extractToken(ctx)
			if tokenString == "" {
				ctx.SetStatusCode(fasthttp.StatusUnauthorized)
				return
			}

			claims, err := issuer.Parse(tokenString)
			if err != nil {
				logger.Warn("invalid jwt token", zap.Error(err))
				ctx.SetStatusCode(fasthttp.StatusUnauthorized)
				return
			}

			ctx.Request.Header.Set("X-User-ID", claims.UserID)
			ctx.Request.Header.Set("X-User-Role", claims.Role)

			next(ctx)
		}
	}
}

func extractToken(ctx *fasthttp.RequestCtx) string {
	header := string(ctx.Request.Header.Peek("Authorization"))
	if header == "" {
		return ""
	}
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return header
}
