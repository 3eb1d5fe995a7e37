package status

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ClientTestSuite struct {
	suite.Suite
	ctx context.Context
}

func (s *ClientTestSuite) SetupTest() {
	s.ctx = context.Background()
}

func TestClientTestSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}

func (s *ClientTestSuite) TestNewHTTPClientValidation() {
	_, err := NewHTTPClient(nil)
	s.ErrorIs(err, ErrNilConfig)

	_, err = NewHTTPClient(&ClientConfig{APIKey: "key"})
	s.ErrorIs(err, ErrEmptyURL)
}

func (s *ClientTestSuite) TestGetServerStatus() {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.Equal("secret-key", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"server":{"playerCount":24,"queueLength":3}}`))
	}))
	defer srv.Close()

	client, err := NewHTTPClient(&ClientConfig{URL: srv.URL, APIKey: "secret-key"})
	s.Require().NoError(err)

	got, err := client.GetServerStatus(s.ctx)
	s.Require().NoError(err)
	s.Equal(24, got.PlayerCount)
	s.Equal(3, got.QueueLength)
}

func (s *ClientTestSuite) TestGetServerStatusWithoutKey() {
	client, err := NewHTTPClient(&ClientConfig{URL: "http://localhost"})
	s.Require().NoError(err)

	_, err = client.GetServerStatus(s.ctx)
	s.ErrorIs(err, ErrMissingAPIKey)
}

func (s *ClientTestSuite) TestGetServerStatusNonOK() {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	client, err := NewHTTPClient(&ClientConfig{URL: srv.URL, APIKey: "bad-key"})
	s.Require().NoError(err)

	_, err = client.GetServerStatus(s.ctx)
	s.Error(err)
	s.Contains(err.Error(), "403")
}

func (s *ClientTestSuite) TestGetServerStatusBadPayload() {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	client, err := NewHTTPClient(&ClientConfig{URL: srv.URL, APIKey: "key"})
	s.Require().NoError(err)

	_, err = client.GetServerStatus(s.ctx)
	s.Error(err)
}
