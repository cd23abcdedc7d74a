package drive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	drivev3 "google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/Lauramora262/agente-onboarding-b-one/internal/model"
)

// Client wraps the Drive v3 service for plain-text document export.
type Client struct {
	svc *drivev3.Service
}

func New(ctx context.Context, httpClient *http.Client) (*Client, error) {
	svc, err := drivev3.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("build drive service failed: %w", err)
	}
	return &Client{svc: svc}, nil
}

// ExportPlainText downloads the text/plain rendition of one document.
func (c *Client) ExportPlainText(ctx context.Context, id model.DocumentID) ([]byte, error) {
	resp, err := c.svc.Files.Export(string(id), "text/plain").Context(ctx).Download()
	if err != nil {
		var gerr *googleapi.Error
		if errors.As(err, &gerr) {
			return nil, fmt.Errorf("export document %s failed: status %d: %s", id, gerr.Code, gerr.Message)
		}
		return nil, fmt.Errorf("export document %s failed: %w", id, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read export of document %s failed: %w", id, err)
	}
	return raw, nil
}
