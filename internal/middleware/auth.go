package middleware

import (
	"errors"

	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/spidevmax/craterra/internal/auth"
	apperrors "github.com/spidevmax/craterra/internal/errors"
	"github.com/spidevmax/craterra/internal/model"
	"github.com/spidevmax/craterra/internal/service"
)

const (
	claimsKey    = "user"
	principalKey = "principal"
	albumKey     = "album"
)

// Auth builds the middleware chain for secured routes: token check,
// principal load, then role or ownership gates per route group.
type Auth struct {
	jwt    *auth.JWTService
	users  service.UserService
	albums service.AlbumService
}

func NewAuth(jwt *auth.JWTService, users service.UserService, albums service.AlbumService) *Auth {
	return &Auth{jwt: jwt, users: users, albums: albums}
}

// Authenticate validates the bearer token and stores the parsed claims
// in the request context. Missing, malformed, expired and tampered
// tokens all map to the same 401.
func (a *Auth) Authenticate() echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  claimsKey,
		TokenLookup: "header:Authorization:Bearer ",
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return a.jwt.ValidateToken(token)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return apperrors.ErrInvalidToken
		},
	})
}

// LoadPrincipal resolves the authenticated user record behind the
// claims. A valid token whose user no longer exists is treated as an
// authentication failure, not a 404.
func (a *Auth) LoadPrincipal() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := ClaimsFrom(c)
			if claims == nil {
				return apperrors.ErrInvalidToken
			}

			user, err := a.users.GetByID(c.Request().Context(), claims.UserID)
			if err != nil {
				if errors.Is(err, apperrors.ErrUserNotFound) {
					return apperrors.ErrPrincipalNotFound
				}
				return err
			}

			c.Set(principalKey, user)
			return next(c)
		}
	}
}

// RequireRoles gates a route group by principal role. With no roles
// given, any authenticated principal passes.
func (a *Auth) RequireRoles(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal := PrincipalFrom(c)
			if principal == nil {
				return apperrors.ErrInvalidToken
			}
			if len(roles) == 0 {
				return next(c)
			}
			for _, role := range roles {
				if principal.Role == role {
					return next(c)
				}
			}
			return apperrors.ErrRoleForbidden
		}
	}
}

// RequireAlbumOwnership loads the album addressed by the :id param and
// rejects principals that do not own it. Unparseable and unknown ids
// are both 404. The loaded album is stored in the context so the
// handler does not fetch it again.
func (a *Auth) RequireAlbumOwnership() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal := PrincipalFrom(c)
			if principal == nil {
				return apperrors.ErrInvalidToken
			}

			id, err := uuid.Parse(c.Param("id"))
			if err != nil {
				return apperrors.ErrAlbumNotFound
			}

			album, err := a.albums.GetByID(c.Request().Context(), id)
			if err != nil {
				return err
			}
			if album.OwnerID != principal.ID {
				return apperrors.ErrNotAlbumOwner
			}

			c.Set(albumKey, album)
			return next(c)
		}
	}
}

// ClaimsFrom returns the token claims stored by Authenticate, or nil.
func ClaimsFrom(c echo.Context) *auth.Claims {
	claims, _ := c.Get(claimsKey).(*auth.Claims)
	return claims
}

// PrincipalFrom returns the user stored by LoadPrincipal, or nil.
func PrincipalFrom(c echo.Context) *model.User {
	principal, _ := c.Get(principalKey).(*model.User)
	return principal
}

// AlbumFrom returns the album stored by RequireAlbumOwnership, or nil.
func AlbumFrom(c echo.Context) *model.Album {
	album, _ := c.Get(albumKey).(*model.Album)
	return album
}
