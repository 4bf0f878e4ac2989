package media

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/thinkscotty/adalchemy/internal/metrics"
)

type imagenRequest struct {
	Instances  []imagenInstance `json:"instances"`
	Parameters imagenParams     `json:"parameters"`
}

type imagenInstance struct {
	Prompt string `json:"prompt"`
}

type imagenParams struct {
	SampleCount int    `json:"sampleCount"`
	AspectRatio string `json:"aspectRatio,omitempty"`
}

type imagenResponse struct {
	Predictions []struct {
		BytesBase64Encoded string `json:"bytesBase64Encoded"`
		MimeType           string `json:"mimeType"`
	} `json:"predictions"`
}

// ImagenClient renders stills through the Imagen predict endpoint and stores
// them under outputDir, served from publicPath.
type ImagenClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
	outputDir  string
	publicPath string
}

func NewImagenClient(apiKey, model, outputDir, publicPath string) *ImagenClient {
	if model == "" {
		model = "imagen-3.0-generate-002"
	}
	if publicPath == "" {
		publicPath = "/media/"
	}
	return &ImagenClient{
		httpClient: &http.Client{Timeout: 120 * time.Second},
		baseURL:    googleAPIBase,
		apiKey:     apiKey,
		model:      model,
		outputDir:  outputDir,
		publicPath: publicPath,
	}
}

func (c *ImagenClient) Model() string { return c.model }

func (c *ImagenClient) GenerateImage(ctx context.Context, req ImageRequest) (asset Asset, err error) {
	if c.apiKey == "" {
		return Asset{}, fmt.Errorf("imagen: %w", ErrNotConfigured)
	}
	start := time.Now()
	defer func() { metrics.ObserveExternal("imagen", "generate_image", start, err) }()

	body, err := json.Marshal(imagenRequest{
		Instances:  []imagenInstance{{Prompt: req.Prompt}},
		Parameters: imagenParams{SampleCount: 1, AspectRatio: apiAspectRatio(req.AspectRatio)},
	})
	if err != nil {
		return Asset{}, fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:predict?key=%s", c.baseURL, c.model, c.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return Asset{}, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return Asset{}, fmt.Errorf("imagen request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return Asset{}, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return Asset{}, fmt.Errorf("imagen returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var out imagenResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return Asset{}, fmt.Errorf("parse imagen response: %w", err)
	}
	if len(out.Predictions) == 0 || out.Predictions[0].BytesBase64Encoded == "" {
		return Asset{}, errors.New("imagen returned no images")
	}

	data, err := base64.StdEncoding.DecodeString(out.Predictions[0].BytesBase64Encoded)
	if err != nil {
		return Asset{}, fmt.Errorf("decode image: %w", err)
	}
	ext, format := ".png", "PNG"
	if out.Predictions[0].MimeType == "image/jpeg" {
		ext, format = ".jpg", "JPEG"
	}

	name := uuid.NewString() + ext
	if err := os.MkdirAll(c.outputDir, 0o755); err != nil {
		return Asset{}, fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(c.outputDir, name), data, 0o644); err != nil {
		return Asset{}, fmt.Errorf("write image: %w", err)
	}

	return Asset{
		URL:         path.Join(c.publicPath, name),
		Resolution:  imageResolution(req.AspectRatio),
		AspectRatio: req.AspectRatio,
		Format:      format,
	}, nil
}

// apiAspectRatio maps ratios Imagen does not accept onto the nearest one it does.
func apiAspectRatio(ar string) string {
	switch ar {
	case "1:1", "3:4", "4:3", "9:16", "16:9":
		return ar
	case "1.91:1":
		return "16:9"
	default:
		return "1:1"
	}
}
