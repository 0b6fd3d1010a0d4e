package docstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const defaultCallTimeout = 10 * time.Second

// TokenSource supplies the bearer token attached to every Firestore call.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

type staticTokenSource struct {
	token string
}

func StaticTokenSource(token string) TokenSource {
	return staticTokenSource{token: token}
}

func (source staticTokenSource) Token(_ context.Context) (string, error) {
	return source.token, nil
}

// FirestoreClient talks to the Firestore REST surface:
// GET/PATCH https://firestore.googleapis.com/v1/projects/{p}/databases/(default)/documents/{path}.
type FirestoreClient struct {
	baseURL     string
	tokens      TokenSource
	httpClient  *http.Client
	callTimeout time.Duration
}

func NewFirestoreClient(projectID string, tokens TokenSource) *FirestoreClient {
	return &FirestoreClient{
		baseURL:     fmt.Sprintf("https://firestore.googleapis.com/v1/projects/%s/databases/(default)/documents", projectID),
		tokens:      tokens,
		httpClient:  &http.Client{},
		callTimeout: defaultCallTimeout,
	}
}

// NewFirestoreClientForBase is used by tests to point the client at a
// local server.
func NewFirestoreClientForBase(baseURL string, tokens TokenSource) *FirestoreClient {
	client := NewFirestoreClient("unused", tokens)
	client.baseURL = baseURL
	return client
}

type firestoreDocument struct {
	Fields Fields `json:"fields"`
}

func (client *FirestoreClient) Get(ctx context.Context, path string) (Fields, error) {
	body, status, err := client.call(ctx, http.MethodGet, client.baseURL+"/"+path, nil)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("docstore: firestore GET %s returned status %d", path, status)
	}

	var document firestoreDocument
	if err := json.Unmarshal(body, &document); err != nil {
		return nil, fmt.Errorf("docstore: decode firestore document %s: %w", path, err)
	}
	if document.Fields == nil {
		document.Fields = Fields{}
	}
	return document.Fields, nil
}

func (client *FirestoreClient) Create(ctx context.Context, path string, fields Fields) error {
	// Firestore PATCH without an update mask replaces the whole document
	// and creates it when absent.
	return client.patch(ctx, path, fields, nil)
}

func (client *FirestoreClient) Patch(ctx context.Context, path string, fields Fields, mask []string) error {
	return client.patch(ctx, path, fields, mask)
}

func (client *FirestoreClient) patch(ctx context.Context, path string, fields Fields, mask []string) error {
	target := client.baseURL + "/" + path
	if len(mask) > 0 {
		query := url.Values{}
		for _, field := range mask {
			query.Add("updateMask.fieldPaths", field)
		}
		target += "?" + query.Encode()
	}

	payload, err := json.Marshal(firestoreDocument{Fields: fields})
	if err != nil {
		return fmt.Errorf("docstore: encode firestore document %s: %w", path, err)
	}

	body, status, err := client.call(ctx, http.MethodPatch, target, payload)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("docstore: firestore PATCH %s returned status %d: %s", path, status, truncateBody(body))
	}
	return nil
}

func (client *FirestoreClient) call(ctx context.Context, method string, target string, payload []byte) ([]byte, int, error) {
	callCtx, cancel := context.WithTimeout(ctx, client.callTimeout)
	defer cancel()

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	request, err := http.NewRequestWithContext(callCtx, method, target, reader)
	if err != nil {
		return nil, 0, err
	}

	token, err := client.tokens.Token(callCtx)
	if err != nil {
		return nil, 0, fmt.Errorf("docstore: fetch access token: %w", err)
	}
	request.Header.Set("Authorization", "Bearer "+token)
	if payload != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	response, err := client.httpClient.Do(request)
	if err != nil {
		return nil, 0, fmt.Errorf("docstore: firestore %s %s: %w", method, target, err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("docstore: read firestore response: %w", err)
	}
	return body, response.StatusCode, nil
}

func truncateBody(body []byte) string {
	const limit = 256
	if len(body) <= limit {
		return string(body)
	}
	return string(body[:limit]) + "..."
}
