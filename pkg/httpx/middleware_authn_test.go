package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Jaymin-PCA240/Task-Management-BE/pkg/httpx"
	"github.com/Jaymin-PCA240/Task-Management-BE/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func newKeys(t *testing.T) *jwtx.KeyManager {
	t.Helper()
	km, err := jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{
		Algorithm: jwtx.AlgorithmEdDSA,
		Issuer:    "test-issuer",
		NumKeys:   1,
	})
	require.NoError(t, err)
	return km
}

func TestAuthnMiddleware(t *testing.T) {
	km := newKeys(t)
	now := time.Now()

	access, err := km.GetSigner().Sign(jwtx.NewAccessClaims("user-1", "admin", "test-issuer", time.Minute, now))
	require.NoError(t, err)
	refresh, err := km.GetSigner().Sign(jwtx.NewRefreshClaims("user-1", "test-issuer", time.Minute, now))
	require.NoError(t, err)

	var got httpx.Identity
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = httpx.IdentityFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name   string
		stream bool
		header string
		query  string
		want   int
	}{
		{"missing token", false, "", "", http.StatusUnauthorized},
		{"access token", false, "Bearer " + access, "", http.StatusOK},
		{"lowercase scheme", false, "bearer " + access, "", http.StatusOK},
		{"refresh token rejected", false, "Bearer " + refresh, "", http.StatusUnauthorized},
		{"garbage", false, "Bearer abc", "", http.StatusUnauthorized},
		{"query ignored for api", false, "", access, http.StatusUnauthorized},
		{"query accepted for stream", true, "", access, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got = httpx.Identity{}
			mw := httpx.AuthnMiddleware(km.Verifier)
			if tt.stream {
				mw = httpx.StreamAuthnMiddleware(km.Verifier)
			}
			target := "/"
			if tt.query != "" {
				target += "?access_token=" + tt.query
			}
			req := httptest.NewRequest(http.MethodGet, target, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			mw(next).ServeHTTP(rec, req)

			require.Equal(t, tt.want, rec.Code)
			if tt.want == http.StatusOK {
				require.Equal(t, httpx.Identity{UserID: "user-1", Role: "admin"}, got)
			} else {
				require.Contains(t, rec.Header().Get("WWW-Authenticate"), "Bearer")
			}
		})
	}
}

func TestChainOrder(t *testing.T) {
	var order []string
	mk := func(name string) httpx.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}
	h := httpx.Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { order = append(order, "h") }), mk("a"), mk("b"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, []string{"a", "b", "h"}, order)
}

func TestRecoverer(t *testing.T) {
	h := httpx.Recoverer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") }))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Contains(t, rec.Body.String(), `"success":false`)
}
