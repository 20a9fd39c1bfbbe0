package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-mail-sync/internal/config"
	"github.com/MKhiriev/go-mail-sync/internal/logger"
	"github.com/MKhiriev/go-mail-sync/models"
)

// fetchChunkSize is the number of message ids requested per batch-fetch
// round trip.
const fetchChunkSize = 50

type httpRemoteStore struct {
	client *resty.Client
	token  string

	logger *logger.Logger
}

// Wire representations of the remote change-tracking API. The engine never
// sees these; they are decoded into models types at the boundary.
type (
	cursorResponse struct {
		Cursor string `json:"cursor"`
	}

	diffResponse struct {
		Updated map[string][]string `json:"updated"`
		Created []string            `json:"created"`
		Deleted []string            `json:"deleted"`
	}

	idPageResponse struct {
		IDs           []string `json:"ids"`
		Estimate      int      `json:"estimate"`
		NextPageToken string   `json:"next_page_token"`
	}

	fetchRequest struct {
		IDs    []string `json:"ids"`
		Format string   `json:"format"`
	}

	fetchResponse struct {
		Messages []models.RemoteMessage `json:"messages"`
	}

	pushTagsRequest struct {
		Changes map[string][]string `json:"changes"`
	}
)

// NewHTTPRemoteStore constructs an HTTP/REST implementation of [RemoteStore].
// It normalises and validates the base URL from remoteCfg.Address, configures
// the underlying client with the resolved base URL and request timeout, and
// loads the bearer token from remoteCfg.TokenFile. When the token is
// JWT-shaped and already expired, construction fails fast with
// [ErrUnauthorized] instead of letting the first request bounce.
func NewHTTPRemoteStore(remoteCfg config.Remote, log *logger.Logger) (RemoteStore, error) {
	baseURL, err := normalizeBaseURL(remoteCfg.Address)
	if err != nil {
		return nil, fmt.Errorf("invalid remote address: %w", err)
	}

	token, err := loadToken(remoteCfg.TokenFile)
	if err != nil {
		return nil, err
	}
	if err = checkTokenExpiry(token); err != nil {
		return nil, err
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(remoteCfg.RequestTimeout)

	return &httpRemoteStore{client: client, token: token, logger: log}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func loadToken(path string) (string, error) {
	if path == "" {
		return "", nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("read token file: %w", err)
	}

	return strings.TrimSpace(string(data)), nil
}

// CurrentCursor implements [RemoteStore]. It GETs the change-cursor endpoint
// GET /api/v1/changes/cursor and returns the opaque cursor value.
func (h *httpRemoteStore) CurrentCursor(ctx context.Context) (models.Cursor, error) {
	var cr cursorResponse

	resp, err := h.authedRequest(ctx).
		SetResult(&cr).
		Get("/api/v1/changes/cursor")
	if err != nil {
		return "", fmt.Errorf("current cursor request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return models.Cursor(cr.Cursor), nil
}

// DiffSince implements [RemoteStore]. It GETs /api/v1/changes?since=<cursor>
// and decodes the incremental change report. A 410 response maps to
// [ErrCursorTooOld].
func (h *httpRemoteStore) DiffSince(ctx context.Context, cursor models.Cursor) (models.RemoteDiff, error) {
	resp, err := h.authedRequest(ctx).
		SetQueryParam("since", cursor.String()).
		Get("/api/v1/changes")
	if err != nil {
		return models.RemoteDiff{}, fmt.Errorf("diff since request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.RemoteDiff{}, err
	}

	var dr diffResponse
	if err = json.Unmarshal(resp.Body(), &dr); err != nil {
		return models.RemoteDiff{}, fmt.Errorf("decode diff response: %w", err)
	}

	return dr.toDiff(), nil
}

func (d diffResponse) toDiff() models.RemoteDiff {
	diff := models.RemoteDiff{
		Updated: make(map[models.MessageID]models.TagSet, len(d.Updated)),
		New:     make(map[models.MessageID]struct{}, len(d.Created)),
		Deleted: make(map[models.MessageID]struct{}, len(d.Deleted)),
	}
	for id, tags := range d.Updated {
		diff.Updated[models.MessageID(id)] = models.NewTagSet(tags...)
	}
	for _, id := range d.Created {
		diff.New[models.MessageID(id)] = struct{}{}
	}
	for _, id := range d.Deleted {
		diff.Deleted[models.MessageID(id)] = struct{}{}
	}
	return diff
}

// EnumerateIDs implements [RemoteStore]. It pages through
// GET /api/v1/messages, following next_page_token until the remote reports
// no further page. fn receives each page together with the remote's batch
// count estimate.
func (h *httpRemoteStore) EnumerateIDs(ctx context.Context, fn func(models.IDBatch) error) error {
	pageToken := ""

	for {
		req := h.authedRequest(ctx)
		if pageToken != "" {
			req.SetQueryParam("page_token", pageToken)
		}

		resp, err := req.Get("/api/v1/messages")
		if err != nil {
			return fmt.Errorf("enumerate ids request: %w", err)
		}
		if err = mapHTTPError(resp); err != nil {
			return err
		}

		var page idPageResponse
		if err = json.Unmarshal(resp.Body(), &page); err != nil {
			return fmt.Errorf("decode id page response: %w", err)
		}

		batch := models.IDBatch{Estimate: page.Estimate, IDs: make([]models.MessageID, 0, len(page.IDs))}
		for _, id := range page.IDs {
			batch.IDs = append(batch.IDs, models.MessageID(id))
		}
		if err = fn(batch); err != nil {
			return err
		}

		if page.NextPageToken == "" {
			return nil
		}
		pageToken = page.NextPageToken
	}
}

// Fetch implements [RemoteStore]. It splits ids into chunks of
// fetchChunkSize, POSTs each chunk to POST /api/v1/messages/batch, and
// invokes onEach once per returned message, preserving the remote's
// delivery order within a chunk.
func (h *httpRemoteStore) Fetch(ctx context.Context, ids []models.MessageID, format models.FetchFormat, onEach func(models.RemoteMessage) error) error {
	for start := 0; start < len(ids); start += fetchChunkSize {
		end := min(start+fetchChunkSize, len(ids))

		chunk := make([]string, 0, end-start)
		for _, id := range ids[start:end] {
			chunk = append(chunk, string(id))
		}

		resp, err := h.authedRequest(ctx).
			SetHeader("Content-Type", "application/json").
			SetBody(fetchRequest{IDs: chunk, Format: string(format)}).
			Post("/api/v1/messages/batch")
		if err != nil {
			return fmt.Errorf("fetch request: %w", err)
		}
		if err = mapHTTPError(resp); err != nil {
			return err
		}

		var fr fetchResponse
		if err = json.Unmarshal(resp.Body(), &fr); err != nil {
			return fmt.Errorf("decode fetch response: %w", err)
		}

		for _, msg := range fr.Messages {
			msg.Tags = models.NewTagSet(msg.Tags...)
			if err = onEach(msg); err != nil {
				return err
			}
		}
	}

	return nil
}

// PushTags implements [RemoteStore]. It POSTs the whole change map to
// POST /api/v1/changes/tags in one request. Partial-failure semantics belong
// to the remote store and surface here as a single error.
func (h *httpRemoteStore) PushTags(ctx context.Context, changes map[models.MessageID]models.TagSet) error {
	req := pushTagsRequest{Changes: make(map[string][]string, len(changes))}
	for id, tags := range changes {
		req.Changes[string(id)] = tags
	}

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post("/api/v1/changes/tags")
	if err != nil {
		return fmt.Errorf("push tags request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpRemoteStore) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if h.token != "" {
		req.SetHeader("Authorization", "Bearer "+h.token)
	}
	return req
}
