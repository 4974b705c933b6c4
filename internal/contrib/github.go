package contrib

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/vovakirdan/gh-space-shooter/internal/game"
)

// DefaultEndpoint is the public GraphQL API.
const DefaultEndpoint = "https://api.github.com/graphql"

const calendarQuery = `query($login: String!) {
  user(login: $login) {
    contributionsCollection {
      contributionCalendar {
        totalContributions
        weeks {
          contributionDays {
            weekday
            contributionCount
            contributionLevel
          }
        }
      }
    }
  }
}`

// levels maps GraphQL contribution levels to intensities.
var levels = map[string]int{
	"NONE":            0,
	"FIRST_QUARTILE":  1,
	"SECOND_QUARTILE": 2,
	"THIRD_QUARTILE":  3,
	"FOURTH_QUARTILE": 4,
}

// maxBody bounds how much of a response is read.
const maxBody = 8 << 20

// Client fetches contribution calendars over GraphQL.
type Client struct {
	http     *http.Client
	endpoint string
	token    string
}

// NewClient creates a client. An empty endpoint uses DefaultEndpoint.
func NewClient(endpoint, token string, timeout time.Duration) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{
		http:     &http.Client{Timeout: timeout},
		endpoint: endpoint,
		token:    token,
	}
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type graphQLError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type calendarResponse struct {
	Data struct {
		User *struct {
			ContributionsCollection struct {
				ContributionCalendar struct {
					TotalContributions int `json:"totalContributions"`
					Weeks              []struct {
						ContributionDays []struct {
							Weekday           int    `json:"weekday"`
							ContributionCount int    `json:"contributionCount"`
							ContributionLevel string `json:"contributionLevel"`
						} `json:"contributionDays"`
					} `json:"weeks"`
				} `json:"contributionCalendar"`
			} `json:"contributionsCollection"`
		} `json:"user"`
	} `json:"data"`
	Errors []graphQLError `json:"errors"`
}

// Fetch implements Fetcher.
func (c *Client) Fetch(ctx context.Context, username string) (Contributions, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return Contributions{}, fmt.Errorf("%w: empty username", ErrUserNotFound)
	}
	if c.token == "" {
		return Contributions{}, ErrNoToken
	}

	body, err := json.Marshal(graphQLRequest{
		Query:     calendarQuery,
		Variables: map[string]any{"login": username},
	})
	if err != nil {
		return Contributions{}, fmt.Errorf("%w: encode query: %w", ErrFetch, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return Contributions{}, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Contributions{}, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return Contributions{}, fmt.Errorf("%w: read response: %w", ErrFetch, err)
	}
	if resp.StatusCode != http.StatusOK {
		return Contributions{}, &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(raw))}
	}

	var parsed calendarResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return Contributions{}, fmt.Errorf("%w: decode response: %w", ErrFetch, err)
	}
	return parsed.contributions(username)
}

func (r *calendarResponse) contributions(username string) (Contributions, error) {
	for _, e := range r.Errors {
		if e.Type == "NOT_FOUND" {
			return Contributions{}, fmt.Errorf("%w: %s", ErrUserNotFound, username)
		}
	}
	if len(r.Errors) > 0 {
		return Contributions{}, &APIError{Message: r.Errors[0].Message}
	}
	if r.Data.User == nil {
		return Contributions{}, fmt.Errorf("%w: %s", ErrUserNotFound, username)
	}

	cal := r.Data.User.ContributionsCollection.ContributionCalendar
	out := Contributions{
		Username: username,
		Total:    cal.TotalContributions,
		Weeks:    make([][]int, 0, len(cal.Weeks)),
	}
	for _, w := range cal.Weeks {
		// Partial first and last weeks keep their weekday slots.
		week := make([]int, game.Days)
		for _, d := range w.ContributionDays {
			if d.Weekday < 0 || d.Weekday >= game.Days {
				return Contributions{}, &APIError{Message: fmt.Sprintf("weekday %d out of range", d.Weekday)}
			}
			level, ok := levels[d.ContributionLevel]
			if !ok {
				return Contributions{}, &APIError{Message: fmt.Sprintf("unknown contribution level %q", d.ContributionLevel)}
			}
			week[d.Weekday] = level
		}
		out.Weeks = append(out.Weeks, week)
	}
	return out, nil
}
