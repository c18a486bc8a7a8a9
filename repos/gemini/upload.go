package gemini

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/crosszan/gemini-web/repos/gemini/rpc"
)

// Uploader transfers an attachment and returns its opaque asset reference.
// The default implementation posts to the content-push endpoint; tests and
// embedders may substitute their own.
type Uploader interface {
	Upload(ctx context.Context, data []byte) (string, error)
}

// assetUploader is the default Uploader: a multipart POST with a single
// part named "file", whose raw response text is the asset id.
type assetUploader struct {
	httpClient *http.Client
	uploadURL  string
}

func (u *assetUploader) Upload(ctx context.Context, data []byte) (string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", "file")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpload, err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpload, err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpload, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.uploadURL, &buf)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpload, err)
	}
	for k, v := range rpc.UploadHeaders {
		req.Header.Set(k, v)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := u.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpload, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: upload failed with status %d", ErrUpload, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpload, err)
	}

	return string(body), nil
}
