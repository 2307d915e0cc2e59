package apierror

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Error is the type of error returned by the content API. It carries the
// HTTP status code so that callers can interpret the error message, and the
// OAuth endpoints the API advertises on authorization failures.
type Error struct {
	err           error
	status        int
	oauthInitiate string
	oauthToken    string
}

// errorMessage is the JSON body the API sends with non-2xx responses.
type errorMessage struct {
	Error         string `json:"error"`
	OAuthInitiate string `json:"oauth_initiate"`
	OAuthToken    string `json:"oauth_token"`
}

func New(err error, status int) *Error {
	return &Error{
		err:    err,
		status: status,
	}
}

// FromResponse builds an error from a response status code and body. A JSON
// body is decoded as the API's error message; anything else is used as
// plain text.
func FromResponse(status int, body []byte) error {
	var em errorMessage
	if json.Unmarshal(body, &em) == nil && em.Error != "" {
		return &Error{
			err:           errors.New(em.Error),
			status:        status,
			oauthInitiate: em.OAuthInitiate,
			oauthToken:    em.OAuthToken,
		}
	}
	var err error
	text := strings.TrimSpace(string(body))
	if text != "" {
		err = errors.New(text)
	}
	if status == 0 {
		return err
	}
	return New(err, status)
}

func (e *Error) Error() string {
	if e.err != nil {
		return e.err.Error()
	}
	if e.status == 0 {
		return ""
	}
	// If there is only status, then return status text
	if text := http.StatusText(e.status); text != "" {
		return fmt.Sprintf("%d %s", e.status, text)
	}
	return fmt.Sprintf("%d", e.status)
}

func (e *Error) Status() int {
	return e.status
}

// OAuthInitiate returns the URL where an OAuth flow for the repository can
// be started, when the API provided one. It is typically set on 401 and 403
// responses.
func (e *Error) OAuthInitiate() string {
	return e.oauthInitiate
}

// OAuthToken returns the URL where an OAuth token for the repository can be
// obtained, when the API provided one.
func (e *Error) OAuthToken() string {
	return e.oauthToken
}

func (e *Error) Text() string {
	parts := make([]string, 0, 5)
	if e.status != 0 {
		parts = append(parts, fmt.Sprintf("%d", e.status))
		text := http.StatusText(e.status)
		if text != "" {
			parts = append(parts, " ")
			parts = append(parts, text)
		}
	}
	if e.err != nil {
		if len(parts) != 0 {
			parts = append(parts, ": ")
		}
		parts = append(parts, e.err.Error())
	}

	return strings.Join(parts, "")
}

func (e *Error) Unwrap() error {
	return e.err
}
