package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelikov/go-bookmark-sync/models"
)

func testToken(t *testing.T, subject string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": subject})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func newTestPersistence(t *testing.T, handler http.Handler) Persistence {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	p, err := NewHTTPPersistence(HTTPClientConfig{
		BaseURL: srv.URL,
		Token:   testToken(t, "owner-1"),
		Timeout: 5 * time.Second,
	})
	require.NoError(t, err)
	return p
}

func TestNewHTTPPersistence(t *testing.T) {
	t.Run("owner id comes from the token subject", func(t *testing.T) {
		p, err := NewHTTPPersistence(HTTPClientConfig{Token: testToken(t, "owner-42")})
		require.NoError(t, err)
		assert.Equal(t, "owner-42", p.OwnerID())
	})

	t.Run("empty token is rejected", func(t *testing.T) {
		_, err := NewHTTPPersistence(HTTPClientConfig{})
		require.Error(t, err)
	})

	t.Run("malformed token is rejected", func(t *testing.T) {
		_, err := NewHTTPPersistence(HTTPClientConfig{Token: "not-a-jwt"})
		require.Error(t, err)
	})

	t.Run("token without subject is rejected", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{})
		signed, err := token.SignedString([]byte("test-secret"))
		require.NoError(t, err)

		_, err = NewHTTPPersistence(HTTPClientConfig{Token: signed})
		require.Error(t, err)
	})
}

func TestGetAll_HTTP(t *testing.T) {
	t.Run("decodes the bookmark list", func(t *testing.T) {
		p := newTestPersistence(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/api/bookmarks/", r.URL.Path)
			assert.Contains(t, r.Header.Get("Authorization"), "Bearer ")

			_ = json.NewEncoder(w).Encode(models.BookmarkListResponse{
				Bookmarks: []models.PersistedBookmark{{ID: "id-1", LinkKey: "b1", Title: "Go"}},
				Length:    1,
			})
		}))

		got, err := p.GetAll(context.Background(), "owner-1")

		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "b1", got[0].LinkKey)
	})

	t.Run("401 maps to ErrUnauthorized without retry", func(t *testing.T) {
		var calls atomic.Int32
		p := newTestPersistence(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusUnauthorized)
		}))

		_, err := p.GetAll(context.Background(), "owner-1")

		require.ErrorIs(t, err, ErrUnauthorized)
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("transient 5xx is retried", func(t *testing.T) {
		var calls atomic.Int32
		p := newTestPersistence(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			if calls.Add(1) == 1 {
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			_ = json.NewEncoder(w).Encode(models.BookmarkListResponse{})
		}))

		_, err := p.GetAll(context.Background(), "owner-1")

		require.NoError(t, err)
		assert.Equal(t, int32(2), calls.Load())
	})

	t.Run("persistent 5xx maps to ErrRemote", func(t *testing.T) {
		p := newTestPersistence(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))

		_, err := p.GetAll(context.Background(), "owner-1")
		require.ErrorIs(t, err, ErrRemote)
	})
}

func TestBulkInsert_HTTP(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	records := []models.LocalBookmark{
		{LocalID: "b1", Title: "Go", URL: "https://go.dev", DateAdded: now},
	}

	p := newTestPersistence(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/bookmarks/bulk", r.URL.Path)

		var body models.BulkInsertRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, 1, body.Length)
		require.Len(t, body.Bookmarks, 1)
		assert.Equal(t, "b1", body.Bookmarks[0].LocalID)

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(models.BookmarkListResponse{
			Bookmarks: []models.PersistedBookmark{{ID: "id-1", LinkKey: "b1", Title: "Go"}},
			Length:    1,
		})
	}))

	got, err := p.BulkInsert(context.Background(), "owner-1", records)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "b1", got[0].LinkKey)
}

func TestUpdate_HTTP(t *testing.T) {
	op := models.UpdateOp{
		LinkKey:    "b1",
		Fields:     models.BookmarkFields{Title: "Go Language", URL: "https://go.dev"},
		SetLinkKey: true,
	}

	t.Run("puts the op keyed by link key", func(t *testing.T) {
		p := newTestPersistence(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPut, r.Method)
			assert.Equal(t, "/api/bookmarks/b1", r.URL.Path)

			var body models.UpdateRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.True(t, body.Op.SetLinkKey)

			_ = json.NewEncoder(w).Encode(models.PersistedBookmark{ID: "id-1", LinkKey: "b1", Title: "Go Language"})
		}))

		got, err := p.Update(context.Background(), "owner-1", op)

		require.NoError(t, err)
		assert.Equal(t, "Go Language", got.Title)
	})

	t.Run("404 maps to ErrNotFound", func(t *testing.T) {
		p := newTestPersistence(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))

		_, err := p.Update(context.Background(), "owner-1", op)
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("409 maps to ErrLinkKeyConflict", func(t *testing.T) {
		p := newTestPersistence(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusConflict)
		}))

		_, err := p.Update(context.Background(), "owner-1", op)
		require.ErrorIs(t, err, ErrLinkKeyConflict)
	})
}

func TestBulkDeleteByLinkKey_HTTP(t *testing.T) {
	p := newTestPersistence(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/bookmarks/", r.URL.Path)

		var body models.BulkDeleteRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, []string{"b1", "b2"}, body.LinkKeys)
		assert.Equal(t, 2, body.Length)

		w.WriteHeader(http.StatusOK)
	}))

	require.NoError(t, p.BulkDeleteByLinkKey(context.Background(), "owner-1", []string{"b1", "b2"}))
}
