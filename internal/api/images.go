package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
)

// ImagesClient covers the image library and the multipart upload endpoint.
type ImagesClient struct {
	c *Client
}

func (ic *ImagesClient) List(ctx context.Context, p ListParams) (*Page[Image], error) {
	var out Page[Image]
	if err := ic.c.get(ctx, "/images", p.values(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (ic *ImagesClient) Delete(ctx context.Context, id string) error {
	return ic.c.delete(ctx, "/images/"+url.PathEscape(id), nil)
}

// Upload sends a file as multipart form data. The form is buffered up front
// so the request can be replayed after a token refresh.
func (ic *ImagesClient) Upload(ctx context.Context, filename string, content io.Reader) (*ImageUploadResponse, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("api: create form file: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, fmt.Errorf("api: read upload content: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("api: finish multipart form: %w", err)
	}

	var out ImageUploadResponse
	err = ic.c.send(ctx, request{
		method: http.MethodPost,
		path:   "/files/upload",
		body:   rawBody(buf.Bytes(), writer.FormDataContentType()),
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
