package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidToken is returned when the bearer token is missing, malformed, or expired.
	ErrInvalidToken = errors.New("invalid or missing token")
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrPrincipalNotFound is returned when the user behind a valid token no longer exists.
	ErrPrincipalNotFound = errors.New("user for this token no longer exists")
	// ErrRoleForbidden is returned when the authenticated user lacks a required role.
	ErrRoleForbidden = errors.New("insufficient role")
	// ErrNotAlbumOwner is returned when a user touches an album owned by someone else.
	ErrNotAlbumOwner = errors.New("you do not own this album")
	// ErrRestrictedField is returned when a profile update names a field only other flows may change.
	ErrRestrictedField = errors.New("this field cannot be updated here")
	// ErrAlbumNotFound is returned when no album has the requested id.
	ErrAlbumNotFound = errors.New("album not found")
	// ErrUserNotFound is returned when no user has the requested id.
	ErrUserNotFound = errors.New("user not found")
	// ErrDuplicateAlbum is returned when an equivalent album already exists in the owner's collection.
	ErrDuplicateAlbum = errors.New("album already exists in your collection")
	// ErrEmailTaken is returned when registering or switching to an email already in use.
	ErrEmailTaken = errors.New("email already registered")
	// ErrPasswordConfirmation is returned when the password confirmation does not match.
	ErrPasswordConfirmation = errors.New("password confirmation does not match")
	// ErrUnsupportedImage is returned when an uploaded file is not a supported image type.
	ErrUnsupportedImage = errors.New("unsupported image type")
)

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Anything unrecognized is a 500.
func MapErrorToHTTP(err error) *HTTPError {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	switch {
	case errors.Is(err, ErrInvalidToken):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_TOKEN")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrPrincipalNotFound):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "PRINCIPAL_NOT_FOUND")
	case errors.Is(err, ErrRoleForbidden):
		return NewHTTPError(http.StatusForbidden, err.Error(), "ROLE_FORBIDDEN")
	case errors.Is(err, ErrNotAlbumOwner):
		return NewHTTPError(http.StatusForbidden, err.Error(), "NOT_ALBUM_OWNER")
	case errors.Is(err, ErrRestrictedField):
		return NewHTTPError(http.StatusForbidden, err.Error(), "RESTRICTED_FIELD")
	case errors.Is(err, ErrAlbumNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "ALBUM_NOT_FOUND")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrDuplicateAlbum):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "DUPLICATE_ALBUM")
	case errors.Is(err, ErrEmailTaken):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "EMAIL_TAKEN")
	case errors.Is(err, ErrPasswordConfirmation):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "PASSWORD_CONFIRMATION")
	case errors.Is(err, ErrUnsupportedImage):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "UNSUPPORTED_IMAGE")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}

// InvalidRequest wraps a validation or binding failure as a 400.
func InvalidRequest(message string) *HTTPError {
	return NewHTTPError(http.StatusBadRequest, message, "INVALID_REQUEST")
}
