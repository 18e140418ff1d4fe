package httpx

import (
	"net/http"
	"strings"

	"github.com/Jaymin-PCA240/Task-Management-BE/pkg/jwtx"
	"github.com/Jaymin-PCA240/Task-Management-BE/pkg/slogx"
)

// AuthnMiddleware requires a valid access token in the Authorization header
// and stores the caller Identity in the request context.
func AuthnMiddleware(v jwtx.Verifier) Middleware {
	return authn(v, false)
}

// StreamAuthnMiddleware also accepts the token in the access_token query
// parameter, since browser EventSource clients cannot set headers.
func StreamAuthnMiddleware(v jwtx.Verifier) Middleware {
	return authn(v, true)
}

func authn(v jwtx.Verifier, allowQuery bool) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := bearerToken(r)
			if raw == "" && allowQuery {
				raw = r.URL.Query().Get("access_token")
			}
			if raw == "" {
				writeBearerError(w, "Authentication required")
				return
			}

			claims, err := v.Verify(raw)
			if err != nil {
				slogx.FromContext(r.Context()).Debug("access token rejected", slogx.Err(err))
				writeBearerError(w, "Invalid or expired token")
				return
			}
			if claims.TokenUse != jwtx.TokenUseAccess {
				writeBearerError(w, "Invalid or expired token")
				return
			}

			ctx := WithIdentity(r.Context(), Identity{UserID: claims.Subject, Role: claims.Role})
			ctx = slogx.With(ctx, "user_id", claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	authz := r.Header.Get("Authorization")
	if len(authz) < 7 || !strings.EqualFold(authz[:7], "Bearer ") {
		return ""
	}
	return strings.TrimSpace(authz[7:])
}

// RFC 6750 challenge plus the JSON envelope.
func writeBearerError(w http.ResponseWriter, msg string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
	WriteError(w, http.StatusUnauthorized, msg, "")
}
