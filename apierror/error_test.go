package apierror_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/foliocms/go-folio/apierror"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := apierror.New(errors.New("test error"), 0)
	require.Equal(t, "test error", err.Error())

	err = apierror.New(nil, http.StatusNotFound)
	require.Equal(t, fmt.Sprintf("%d %s", http.StatusNotFound, http.StatusText(http.StatusNotFound)), err.Error())

	err = apierror.New(nil, 0)
	require.Equal(t, "", err.Error())

	err = apierror.New(nil, 999)
	require.Equal(t, "999", err.Error())
}

func TestFromResponse(t *testing.T) {
	err := apierror.FromResponse(0, []byte(" hello world\n"))
	require.Equal(t, "hello world", err.Error())

	err = apierror.FromResponse(http.StatusTeapot, []byte(" hello world\n"))
	require.Equal(t, "hello world", err.Error())

	ae, ok := err.(*apierror.Error)
	require.True(t, ok)
	require.Equal(t, http.StatusTeapot, ae.Status())

	err = apierror.FromResponse(http.StatusTeapot, nil)
	require.Equal(t, fmt.Sprintf("%d %s", http.StatusTeapot, http.StatusText(http.StatusTeapot)), err.Error())
}

func TestFromResponseJSONBody(t *testing.T) {
	body := []byte(`{"error":"Invalid access token","oauth_initiate":"https://lesbonneschoses.example.io/auth","oauth_token":"https://lesbonneschoses.example.io/auth/token"}`)
	err := apierror.FromResponse(http.StatusUnauthorized, body)
	require.Equal(t, "Invalid access token", err.Error())

	ae, ok := err.(*apierror.Error)
	require.True(t, ok)
	require.Equal(t, http.StatusUnauthorized, ae.Status())
	require.Equal(t, "https://lesbonneschoses.example.io/auth", ae.OAuthInitiate())
	require.Equal(t, "https://lesbonneschoses.example.io/auth/token", ae.OAuthToken())
	require.Equal(t, "401 Unauthorized: Invalid access token", ae.Text())

	// A JSON body without an error field falls back to plain text.
	err = apierror.FromResponse(http.StatusBadRequest, []byte(`{"message":"nope"}`))
	ae, ok = err.(*apierror.Error)
	require.True(t, ok)
	require.Equal(t, `{"message":"nope"}`, ae.Error())
	require.Empty(t, ae.OAuthInitiate())
}

func TestText(t *testing.T) {
	err := apierror.New(errors.New("cannot find it"), http.StatusNotFound)
	require.Equal(t, fmt.Sprintf("%d %s: cannot find it", http.StatusNotFound, http.StatusText(http.StatusNotFound)), err.Text())

	err = apierror.New(errors.New("just text"), 0)
	require.Equal(t, "just text", err.Text())
}

func TestUnwrap(t *testing.T) {
	errEOF := errors.New("end of file")
	err := apierror.New(errEOF, 0)
	require.ErrorIs(t, err, errEOF)
}
