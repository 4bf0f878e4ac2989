package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/thinkscotty/adalchemy/internal/metrics"
)

const googleAPIBase = "https://generativelanguage.googleapis.com/v1beta"

// ErrNotConfigured is returned by generators without credentials.
var ErrNotConfigured = errors.New("media generator not configured")

// ErrRenderTimeout is returned when a long-running render never completes.
var ErrRenderTimeout = errors.New("video render did not complete in time")

type veoRequest struct {
	Instances  []veoInstance `json:"instances"`
	Parameters veoParams     `json:"parameters"`
}

type veoInstance struct {
	Prompt string `json:"prompt"`
}

type veoParams struct {
	AspectRatio     string `json:"aspectRatio,omitempty"`
	DurationSeconds int    `json:"durationSeconds,omitempty"`
}

type veoOperation struct {
	Name  string `json:"name"`
	Done  bool   `json:"done"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
	Response *struct {
		GenerateVideoResponse struct {
			GeneratedSamples []struct {
				Video struct {
					URI string `json:"uri"`
				} `json:"video"`
			} `json:"generatedSamples"`
		} `json:"generateVideoResponse"`
	} `json:"response,omitempty"`
}

// VeoClient renders video through the Veo long-running predict endpoint.
type VeoClient struct {
	httpClient   *http.Client
	baseURL      string
	apiKey       string
	model        string
	pollInterval time.Duration
	maxPolls     int
}

func NewVeoClient(apiKey, model string, pollInterval time.Duration, maxPolls int) *VeoClient {
	if model == "" {
		model = "veo-3.0-generate-preview"
	}
	if maxPolls <= 0 {
		maxPolls = 30
	}
	return &VeoClient{
		httpClient:   &http.Client{Timeout: 60 * time.Second},
		baseURL:      googleAPIBase,
		apiKey:       apiKey,
		model:        model,
		pollInterval: pollInterval,
		maxPolls:     maxPolls,
	}
}

func (v *VeoClient) Model() string { return v.model }

// GenerateVideo starts a render and polls its operation until done.
func (v *VeoClient) GenerateVideo(ctx context.Context, req VideoRequest) (asset Asset, err error) {
	if v.apiKey == "" {
		return Asset{}, fmt.Errorf("veo: %w", ErrNotConfigured)
	}
	start := time.Now()
	defer func() { metrics.ObserveExternal("veo", "generate_video", start, err) }()

	body, err := json.Marshal(veoRequest{
		Instances:  []veoInstance{{Prompt: req.Prompt}},
		Parameters: veoParams{AspectRatio: req.AspectRatio, DurationSeconds: parseSeconds(req.Duration)},
	})
	if err != nil {
		return Asset{}, fmt.Errorf("marshal request: %w", err)
	}

	var op veoOperation
	url := fmt.Sprintf("%s/models/%s:predictLongRunning?key=%s", v.baseURL, v.model, v.apiKey)
	if err := v.do(ctx, http.MethodPost, url, body, &op); err != nil {
		return Asset{}, err
	}

	for polls := 0; !op.Done; polls++ {
		if polls >= v.maxPolls {
			return Asset{}, fmt.Errorf("veo operation %s: %w", op.Name, ErrRenderTimeout)
		}
		select {
		case <-ctx.Done():
			return Asset{}, ctx.Err()
		case <-time.After(v.pollInterval):
		}
		name := op.Name
		op = veoOperation{}
		if err := v.do(ctx, http.MethodGet, fmt.Sprintf("%s/%s?key=%s", v.baseURL, name, v.apiKey), nil, &op); err != nil {
			return Asset{}, err
		}
		if op.Name == "" {
			op.Name = name
		}
	}

	if op.Error != nil {
		return Asset{}, fmt.Errorf("veo render failed: %s", op.Error.Message)
	}
	if op.Response == nil || len(op.Response.GenerateVideoResponse.GeneratedSamples) == 0 {
		return Asset{}, errors.New("veo returned no video samples")
	}

	return Asset{
		URL:         op.Response.GenerateVideoResponse.GeneratedSamples[0].Video.URI,
		Resolution:  videoResolution(req.AspectRatio),
		AspectRatio: req.AspectRatio,
		Duration:    req.Duration,
		Format:      "mp4",
	}, nil
}

func (v *VeoClient) do(ctx context.Context, method, url string, body []byte, out any) error {
	var rdr io.Reader
	if body != nil {
		rdr = bytes.NewReader(body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, url, rdr)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := v.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("veo request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("veo returned status %d: %s", resp.StatusCode, string(respBody))
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("parse veo response: %w", err)
	}
	return nil
}

// parseSeconds turns "5s" into 5. Unparseable values yield 0 so the API default applies.
func parseSeconds(d string) int {
	n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimSpace(d), "s"))
	if err != nil {
		return 0
	}
	return n
}
