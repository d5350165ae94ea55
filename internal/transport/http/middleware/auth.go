package httpmw

import (
	"context"
	"net/http"
	"strings"

	"github.com/cwrk-planet/conference-service/internal/auth"
	"github.com/cwrk-planet/conference-service/internal/domain"
	"github.com/cwrk-planet/conference-service/pkg/httputil"
)

type ctxKey string

const ctxKeyUser ctxKey = "user"

// AuthMiddleware валидирует Bearer JWT и кладёт пользователя в контекст.
// Без токена запрос проходит дальше как неаутентифицированный: терминальный
// отказ (401 + редирект на клиенте) решается на join, а не здесь.
func AuthMiddleware(signer *auth.TokenSigner) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			user, err := signer.ParseAndValidate(token)
			if err != nil {
				httputil.Error(w, http.StatusUnauthorized, "invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyUser, *user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// из заголовка или query (?access_token= — для WS, где заголовков нет)
func extractToken(r *http.Request) string {
	if t := r.URL.Query().Get("access_token"); t != "" {
		return t
	}
	h := r.Header.Get("Authorization")
	if strings.HasPrefix(h, "Bearer ") && len(h) > 7 {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

func UserFromCtx(ctx context.Context) domain.User {
	if v := ctx.Value(ctxKeyUser); v != nil {
		if u, ok := v.(domain.User); ok {
			return u
		}
	}
	return domain.User{}
}
