package testkit

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Envelope is a decoded response envelope. Data stays raw so tests can decode
// it into the type they expect.
type Envelope struct {
	Status  int               `json:"status"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Errors  map[string]string `json:"errors"`
}

// Decode reads the envelope written to rec, failing the test when the body is
// not one.
func Decode(t testing.TB, rec *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var env Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env),
		"response is not a JSON envelope\nbody: %s", rec.Body.String())
	assert.Equal(t, rec.Code, env.Status, "envelope status differs from HTTP status")
	return env
}

// DecodeData decodes the envelope data of rec into dest.
func DecodeData(t testing.TB, rec *httptest.ResponseRecorder, dest any) Envelope {
	t.Helper()
	env := Decode(t, rec)
	require.NoError(t, json.Unmarshal(env.Data, dest), "data: %s", string(env.Data))
	return env
}

// AssertStatus checks the status code and prints the body on mismatch.
func AssertStatus(t testing.TB, rec *httptest.ResponseRecorder, want int) bool {
	t.Helper()
	return assert.Equal(t, want, rec.Code, "body: %s", rec.Body.String())
}

// AssertRedirect checks for a 303 to location.
func AssertRedirect(t testing.TB, rec *httptest.ResponseRecorder, location string) bool {
	t.Helper()
	return AssertStatus(t, rec, 303) &&
		assert.Equal(t, location, rec.Header().Get("Location"))
}

// AssertJSONBody deep-compares two JSON documents after normalising both
// through unmarshal, so key order and whitespace never matter.
func AssertJSONBody(t testing.TB, expected string, actual []byte) bool {
	t.Helper()
	return assert.JSONEq(t, expected, string(actual))
}
