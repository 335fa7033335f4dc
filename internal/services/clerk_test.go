package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testClerkURL = "https://clerk.test/v1"

func newTestClerk(secret string) *ClerkClient {
	return NewClerkClient(ClerkConfig{SecretKey: secret, APIURL: testClerkURL})
}

func TestClerkProfile(t *testing.T) {
	activateHTTPMock(t)
	httpmock.RegisterResponder(http.MethodGet, testClerkURL+"/users/user_a",
		func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, "Bearer sk_test", req.Header.Get("Authorization"))
			return httpmock.NewJsonResponse(http.StatusOK, map[string]interface{}{
				"id":                       "user_a",
				"image_url":                "https://img.test/a.png",
				"first_name":               "Ada",
				"last_name":                "Lovelace",
				"primary_email_address_id": "idn_2",
				"email_addresses": []map[string]string{
					{"id": "idn_1", "email_address": "old@example.com"},
					{"id": "idn_2", "email_address": "ada@example.com"},
				},
			})
		})

	client := newTestClerk("sk_test")
	p, err := client.Profile(context.Background(), "user_a")
	require.NoError(t, err)
	assert.Equal(t, "https://img.test/a.png", p.ImageURL)
	assert.Equal(t, "Ada Lovelace", p.DisplayName())
	assert.Equal(t, "ada@example.com", p.Email)

	_, err = client.Profile(context.Background(), "user_a")
	require.NoError(t, err)
	assert.Equal(t, 1, httpmock.GetTotalCallCount(), "second lookup should hit the cache")
}

func TestClerkProfileNotFound(t *testing.T) {
	activateHTTPMock(t)
	httpmock.RegisterResponder(http.MethodGet, testClerkURL+"/users/ghost",
		httpmock.NewStringResponder(http.StatusNotFound, `{"errors":[]}`))

	_, err := newTestClerk("sk_test").Profile(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestClerkProfileNotConfigured(t *testing.T) {
	activateHTTPMock(t)

	_, err := newTestClerk("").Profile(context.Background(), "user_a")
	assert.ErrorIs(t, err, ErrProfileNotConfigured)
	assert.Equal(t, 0, httpmock.GetTotalCallCount())
}
