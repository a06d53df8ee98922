package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/avelikov/go-bookmark-sync/models"
	"github.com/cenkalti/backoff/v4"
	"github.com/go-resty/resty/v2"
	"github.com/golang-jwt/jwt/v5"
)

// HTTPClientConfig configures the outbound connection to the bookmark store.
type HTTPClientConfig struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

// maxRetries bounds the exponential backoff applied to transient store
// failures (network errors and 5xx responses).
const maxRetries = 2

type httpPersistence struct {
	client  *resty.Client
	token   string
	ownerID string
}

// NewHTTPPersistence constructs a [Persistence] over the bookmark store's
// REST API. The owner id is read from the token's subject claim without
// signature verification; verifying the token is the server's concern.
func NewHTTPPersistence(cfg HTTPClientConfig) (Persistence, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:8080"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}

	ownerID, err := parseOwnerFromToken(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("parse owner from token: %w", err)
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetAuthToken(strings.TrimSpace(cfg.Token))

	return &httpPersistence{client: cli, token: cfg.Token, ownerID: ownerID}, nil
}

func (h *httpPersistence) OwnerID() string {
	return h.ownerID
}

func (h *httpPersistence) GetAll(ctx context.Context, _ string) ([]models.PersistedBookmark, error) {
	resp, err := h.call(ctx, func(req *resty.Request) (*resty.Response, error) {
		return req.Get("/api/bookmarks/")
	})
	if err != nil {
		return nil, fmt.Errorf("get all bookmarks: %w", err)
	}

	var body models.BookmarkListResponse
	if err = json.Unmarshal(resp.Body(), &body); err != nil {
		return nil, fmt.Errorf("decode bookmark list: %w", err)
	}
	return body.Bookmarks, nil
}

func (h *httpPersistence) BulkInsert(ctx context.Context, _ string, records []models.LocalBookmark) ([]models.PersistedBookmark, error) {
	payload := models.BulkInsertRequest{Bookmarks: records, Length: len(records)}

	resp, err := h.call(ctx, func(req *resty.Request) (*resty.Response, error) {
		return req.
			SetHeader("Content-Type", "application/json").
			SetBody(payload).
			Post("/api/bookmarks/bulk")
	})
	if err != nil {
		return nil, fmt.Errorf("bulk insert bookmarks: %w", err)
	}

	var body models.BookmarkListResponse
	if err = json.Unmarshal(resp.Body(), &body); err != nil {
		return nil, fmt.Errorf("decode inserted bookmarks: %w", err)
	}
	return body.Bookmarks, nil
}

func (h *httpPersistence) Update(ctx context.Context, _ string, op models.UpdateOp) (models.PersistedBookmark, error) {
	payload := models.UpdateRequest{Op: op}

	resp, err := h.call(ctx, func(req *resty.Request) (*resty.Response, error) {
		return req.
			SetHeader("Content-Type", "application/json").
			SetBody(payload).
			Put("/api/bookmarks/" + op.LinkKey)
	})
	if err != nil {
		return models.PersistedBookmark{}, fmt.Errorf("update bookmark %s: %w", op.LinkKey, err)
	}

	var record models.PersistedBookmark
	if err = json.Unmarshal(resp.Body(), &record); err != nil {
		return models.PersistedBookmark{}, fmt.Errorf("decode updated bookmark: %w", err)
	}
	return record, nil
}

func (h *httpPersistence) BulkDeleteByLinkKey(ctx context.Context, _ string, linkKeys []string) error {
	payload := models.BulkDeleteRequest{LinkKeys: linkKeys, Length: len(linkKeys)}

	_, err := h.call(ctx, func(req *resty.Request) (*resty.Response, error) {
		return req.
			SetHeader("Content-Type", "application/json").
			SetBody(payload).
			Delete("/api/bookmarks/")
	})
	if err != nil {
		return fmt.Errorf("bulk delete bookmarks: %w", err)
	}
	return nil
}

// call executes one request with bounded exponential backoff. Transport
// errors and 5xx responses are retried; everything else is permanent and
// mapped to a sentinel error.
func (h *httpPersistence) call(ctx context.Context, do func(*resty.Request) (*resty.Response, error)) (*resty.Response, error) {
	var resp *resty.Response

	operation := func() error {
		var err error
		resp, err = do(h.client.R().SetContext(ctx))
		if err != nil {
			return err
		}
		if resp.StatusCode() >= http.StatusInternalServerError {
			return fmt.Errorf("%w: http %d", ErrRemote, resp.StatusCode())
		}
		if mapErr := mapHTTPError(resp); mapErr != nil {
			return backoff.Permanent(mapErr)
		}
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxRetries), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return nil, err
	}
	return resp, nil
}

func mapHTTPError(resp *resty.Response) error {
	code := resp.StatusCode()
	if code >= http.StatusOK && code < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))

	switch code {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrLinkKeyConflict
	}

	if body == "" {
		body = http.StatusText(code)
	}
	return fmt.Errorf("%w: http %d: %s", ErrRemote, code, body)
}

func parseOwnerFromToken(tokenString string) (string, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return "", errors.New("empty token")
	}

	token, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid token claims")
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return "", err
	}
	if sub == "" {
		return "", errors.New("token has no subject")
	}
	return sub, nil
}
