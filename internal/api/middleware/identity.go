package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/odogan/champguess-go/internal/api/apierr"
	"github.com/odogan/champguess-go/internal/model"
	"github.com/odogan/champguess-go/internal/services/identity"
)

type contextKey string

const (
	identityContextKey contextKey = "identity"
	languageContextKey contextKey = "language"
)

// TokenCookie is the cookie carrying an anonymous player's token
const TokenCookie = "champguess_token"

// Identity resolves the player behind each request. A bearer token
// authenticates a registered account; otherwise the anonymous cookie is
// resolved, minting a fresh identity (and setting the cookie) on first
// contact.
func Identity(identityService *identity.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token := bearerToken(r); token != "" {
				ident, err := identityService.ValidateLogin(r.Context(), token)
				if err != nil {
					apierr.WriteError(w, err)
					return
				}
				next.ServeHTTP(w, r.WithContext(withIdentity(r.Context(), ident)))
				return
			}

			res, err := identityService.Resolve(r.Context(), cookieToken(r))
			if err != nil {
				apierr.WriteError(w, err)
				return
			}
			if res.TokenCreated {
				http.SetCookie(w, &http.Cookie{
					Name:     TokenCookie,
					Value:    res.Token,
					Path:     "/",
					MaxAge:   int(identity.AnonymousTokenTTL.Seconds()),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}
			next.ServeHTTP(w, r.WithContext(withIdentity(r.Context(), res.Identity)))
		})
	}
}

func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

func cookieToken(r *http.Request) string {
	cookie, err := r.Cookie(TokenCookie)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func withIdentity(ctx context.Context, ident *model.PlayerIdentity) context.Context {
	return context.WithValue(ctx, identityContextKey, ident)
}

// GetIdentity returns the resolved player identity from the request context
func GetIdentity(ctx context.Context) *model.PlayerIdentity {
	ident, _ := ctx.Value(identityContextKey).(*model.PlayerIdentity)
	return ident
}

// MustGetIdentity returns the resolved identity or panics
func MustGetIdentity(ctx context.Context) *model.PlayerIdentity {
	ident := GetIdentity(ctx)
	if ident == nil {
		panic("no identity in context - identity middleware not applied?")
	}
	return ident
}

// Language extracts the display language from the lang query parameter or
// Accept-Language header, defaulting to English.
func Language() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := model.LanguageCode("en")
			if q := r.URL.Query().Get("lang"); q != "" {
				lang = model.LanguageCode(q)
			} else if h := r.Header.Get("Accept-Language"); h != "" {
				// First tag only, stripped of region and quality
				tag := strings.TrimSpace(strings.SplitN(h, ",", 2)[0])
				tag = strings.SplitN(tag, ";", 2)[0]
				tag = strings.SplitN(tag, "-", 2)[0]
				if tag != "" {
					lang = model.LanguageCode(strings.ToLower(tag))
				}
			}
			ctx := context.WithValue(r.Context(), languageContextKey, lang)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetLanguage returns the request's display language
func GetLanguage(ctx context.Context) model.LanguageCode {
	lang, ok := ctx.Value(languageContextKey).(model.LanguageCode)
	if !ok {
		return "en"
	}
	return lang
}
