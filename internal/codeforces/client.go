package codeforces

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/codeforge/backend/internal/domain"
)

// Config holds Codeforces API client configuration
type Config struct {
	BaseURL string
	// SubmissionWindow bounds how much history is fetched per handle. Older
	// submissions are invisible to scoring; this is a deliberate cost cap,
	// not something the caller should work around.
	SubmissionWindow int
	RequestTimeout   time.Duration
}

// Client queries the public Codeforces REST API. The API is unauthenticated,
// rate-limited and eventually consistent; callers are expected to treat
// per-handle failures as recoverable.
type Client struct {
	httpClient *http.Client
	baseURL    string
	window     int
	logger     *zap.Logger
}

// NewClient creates a new Codeforces API client
func NewClient(config *Config, logger *zap.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: config.RequestTimeout},
		baseURL:    config.BaseURL,
		window:     config.SubmissionWindow,
		logger:     logger,
	}
}

// envelope is the outer JSON shape of every Codeforces API response
type envelope struct {
	Status  string          `json:"status"`
	Comment string          `json:"comment"`
	Result  json.RawMessage `json:"result"`
}

type wireProblem struct {
	ContestID int    `json:"contestId"`
	Index     string `json:"index"`
	Rating    int    `json:"rating"`
}

type wireSubmission struct {
	ID                  int64       `json:"id"`
	Problem             wireProblem `json:"problem"`
	Verdict             string      `json:"verdict"`
	CreationTimeSeconds int64       `json:"creationTimeSeconds"`
}

type wireProblemset struct {
	Problems []wireProblem `json:"problems"`
}

// RecentSubmissions fetches the competitor's most recent submissions, bounded
// by the configured window, normalized to domain submissions. Order of the
// returned slice follows the API response and carries no meaning.
func (c *Client) RecentSubmissions(ctx context.Context, handle string) ([]domain.Submission, error) {
	query := url.Values{}
	query.Set("handle", handle)
	query.Set("count", strconv.Itoa(c.window))

	result, err := c.get(ctx, "user.status", query)
	if err != nil {
		return nil, fmt.Errorf("fetching submissions for %q: %w", handle, err)
	}

	var wire []wireSubmission
	if err := json.Unmarshal(result, &wire); err != nil {
		return nil, fmt.Errorf("decoding submissions for %q: %w", handle, err)
	}

	submissions := make([]domain.Submission, 0, len(wire))
	for _, w := range wire {
		submissions = append(submissions, domain.Submission{
			ProblemContestID:    w.Problem.ContestID,
			ProblemIndex:        w.Problem.Index,
			Verdict:             w.Verdict,
			CreationTimeSeconds: w.CreationTimeSeconds,
		})
	}

	c.logger.Debug("Fetched submissions",
		zap.String("handle", handle),
		zap.Int("count", len(submissions)),
	)

	return submissions, nil
}

// ProblemsByRating returns every problemset problem with the given difficulty
// rating
func (c *Client) ProblemsByRating(ctx context.Context, rating int) ([]domain.ProblemRef, error) {
	result, err := c.get(ctx, "problemset.problems", nil)
	if err != nil {
		return nil, fmt.Errorf("fetching problemset: %w", err)
	}

	var wire wireProblemset
	if err := json.Unmarshal(result, &wire); err != nil {
		return nil, fmt.Errorf("decoding problemset: %w", err)
	}

	var refs []domain.ProblemRef
	for _, p := range wire.Problems {
		if p.Rating == rating {
			refs = append(refs, domain.ProblemRef{ContestID: p.ContestID, Index: p.Index})
		}
	}
	return refs, nil
}

// get performs one API call and unwraps the response envelope
func (c *Client) get(ctx context.Context, method string, query url.Values) (json.RawMessage, error) {
	endpoint := c.baseURL + "/" + method
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	if env.Status != "OK" {
		return nil, fmt.Errorf("api error: %s", env.Comment)
	}

	return env.Result, nil
}
