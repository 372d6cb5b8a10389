package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/shootout-odds/internal/metrics"
	"github.com/yourusername/shootout-odds/internal/models"
)

const statsSourceName = "stats_api"

// Resources fetched from the stats API, used as metric labels
const (
	ResourceShotProfile   = "shot_profile"
	ResourceContestResult = "contest_result"
	ResourceParticipants  = "participants"
)

// StatsClient fetches shooting history, previous contest results and the
// contest field from the stats API. Listing endpoints are paginated with a
// nextToken cursor bound to a queryExecutionId.
type StatsClient struct {
	httpClient *RateLimitedHTTPClient
	baseURL    string
	apiKey     string
	logger     *logrus.Entry
}

// page is one page of a paginated listing
type page[T any] struct {
	Results          []T    `json:"results"`
	QueryExecutionID string `json:"queryExecutionId"`
	NextToken        string `json:"nextToken"`
}

// recentThrees is the player's three point shooting over the last 100 games
type recentThrees struct {
	Made     float64 `json:"made"`
	Attempts float64 `json:"att"`
	Percent  float64 `json:"pct"`
}

// shotDistance is the player's shooting split by distance band
type shotDistance struct {
	RegularMade     float64 `json:"fgm_20-24"`
	RegularAttempts float64 `json:"fga_20-24"`
	RegularPct      float64 `json:"fg_pc_20-24"`
	LongMade        float64 `json:"fgm_25-29"`
	LongAttempts    float64 `json:"fga_25-29"`
	LongPct         float64 `json:"fg_pc_25-29"`
}

// looseNumber holds a numeric field as text, quoted or bare. Decoding never
// fails so that one malformed row does not reject a whole page.
type looseNumber string

// UnmarshalJSON implements json.Unmarshaler
func (n *looseNumber) UnmarshalJSON(data []byte) error {
	if s, err := strconv.Unquote(string(data)); err == nil {
		*n = looseNumber(s)
		return nil
	}
	*n = looseNumber(data)
	return nil
}

// Int64 parses the field as a base 10 integer
func (n looseNumber) Int64() (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(string(n)), 10, 64)
}

func (n looseNumber) String() string {
	return string(n)
}

// contestRecord is a historical contest row; numbers may arrive as strings
type contestRecord struct {
	PlayerID     looseNumber `json:"id"`
	Year         looseNumber `json:"year"`
	Made         looseNumber `json:"made"`
	Attempted    looseNumber `json:"att"`
	DewMade      looseNumber `json:"dewmade"`
	DewAttempted looseNumber `json:"dewatt"`
}

// participantRecord is a contest entrant as listed by the API
type participantRecord struct {
	PlayerID  looseNumber `json:"playerid"`
	FirstName string      `json:"firstname"`
	Surname   string      `json:"surname"`
}

// NewStatsClient creates a new stats API client
func NewStatsClient(httpClient *RateLimitedHTTPClient, baseURL, apiKey string, logger *logrus.Logger) *StatsClient {
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	return &StatsClient{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		logger:     logger.WithField("component", "stats_client"),
	}
}

// Name returns the data source name
func (c *StatsClient) Name() string {
	return statsSourceName
}

// Close releases idle connections
func (c *StatsClient) Close() error {
	return c.httpClient.Close()
}

// GetShotProfile combines the last-100-games totals with the distance split
func (c *StatsClient) GetShotProfile(ctx context.Context, playerID int64) (*models.ShotProfile, error) {
	start := time.Now()
	profile, err := c.fetchShotProfile(ctx, playerID)
	recordFetch(ResourceShotProfile, start, err)
	return profile, err
}

func (c *StatsClient) fetchShotProfile(ctx context.Context, playerID int64) (*models.ShotProfile, error) {
	if playerID <= 0 {
		return nil, fmt.Errorf("%w: %d", models.ErrInvalidPlayerID, playerID)
	}

	var recent recentThrees
	if err := c.getJSON(ctx, fmt.Sprintf("/players/%d/three_point_last_100", playerID), nil, &recent); err != nil {
		return nil, err
	}
	var dist shotDistance
	if err := c.getJSON(ctx, fmt.Sprintf("/players/%d/shot_distance", playerID), nil, &dist); err != nil {
		return nil, err
	}

	return &models.ShotProfile{
		PlayerID:       playerID,
		RecentAttempts: recent.Attempts,
		RecentMakes:    recent.Made,
		Regular: models.ZoneStats{
			Made:       dist.RegularMade,
			Attempts:   dist.RegularAttempts,
			Percentage: dist.RegularPct,
		},
		Long: models.ZoneStats{
			Made:       dist.LongMade,
			Attempts:   dist.LongAttempts,
			Percentage: dist.LongPct,
		},
		FetchedAt: time.Now().UTC(),
	}, nil
}

// GetContestResult returns the player's most recent contest appearance.
// A player who never entered yields models.ErrNotFound.
func (c *StatsClient) GetContestResult(ctx context.Context, playerID int64) (*models.ContestResult, error) {
	start := time.Now()
	result, err := c.fetchContestResult(ctx, playerID)
	recordFetch(ResourceContestResult, start, err)
	return result, err
}

func (c *StatsClient) fetchContestResult(ctx context.Context, playerID int64) (*models.ContestResult, error) {
	if playerID <= 0 {
		return nil, fmt.Errorf("%w: %d", models.ErrInvalidPlayerID, playerID)
	}

	query := url.Values{"player": {strconv.FormatInt(playerID, 10)}}
	records, err := fetchAll[contestRecord](ctx, c, "/three_pt_contest_historical_results", query)
	if err != nil {
		return nil, err
	}

	var latest *models.ContestResult
	latestYear := int64(-1)
	for _, r := range records {
		id, err := r.PlayerID.Int64()
		if err != nil || id != playerID {
			continue
		}
		result, year, err := r.toModel()
		if err != nil {
			c.logger.WithError(err).WithFields(logrus.Fields{
				"player_id": playerID,
				"year":      r.Year.String(),
			}).Warn("Skipping malformed contest result")
			continue
		}
		if year > latestYear {
			latest, latestYear = result, year
		}
	}
	if latest == nil {
		return nil, notFound(statsSourceName, fmt.Sprintf("no contest result for player %d", playerID))
	}
	if err := latest.Validate(); err != nil {
		return nil, NewSourceError(statsSourceName, ErrCodeInvalidData, "inconsistent contest result", err)
	}
	return latest, nil
}

// Participants lists the contest field
func (c *StatsClient) Participants(ctx context.Context) ([]models.Participant, error) {
	start := time.Now()
	participants, err := c.fetchParticipants(ctx)
	recordFetch(ResourceParticipants, start, err)
	return participants, err
}

func (c *StatsClient) fetchParticipants(ctx context.Context) ([]models.Participant, error) {
	records, err := fetchAll[participantRecord](ctx, c, "/participants", nil)
	if err != nil {
		return nil, err
	}

	participants := make([]models.Participant, 0, len(records))
	for _, r := range records {
		id, err := r.PlayerID.Int64()
		if err != nil || id <= 0 {
			c.logger.WithField("playerid", r.PlayerID.String()).Warn("Skipping participant with invalid id")
			continue
		}
		participants = append(participants, models.Participant{
			ID:   id,
			Name: strings.TrimSpace(r.FirstName + " " + r.Surname),
		})
	}
	return participants, nil
}

func (r contestRecord) toModel() (*models.ContestResult, int64, error) {
	var values [5]int64
	for i, n := range []looseNumber{r.PlayerID, r.Made, r.Attempted, r.DewMade, r.DewAttempted} {
		v, err := n.Int64()
		if err != nil {
			return nil, 0, err
		}
		values[i] = v
	}
	year := int64(0)
	if r.Year != "" {
		if y, err := r.Year.Int64(); err == nil {
			year = y
		}
	}
	return &models.ContestResult{
		PlayerID:     values[0],
		Made:         int(values[1]),
		Attempted:    int(values[2]),
		DewMade:      int(values[3]),
		DewAttempted: int(values[4]),
	}, year, nil
}

// fetchAll follows nextToken until the listing is exhausted
func fetchAll[T any](ctx context.Context, c *StatsClient, path string, query url.Values) ([]T, error) {
	var all []T
	params := url.Values{}
	for k, v := range query {
		params[k] = v
	}

	for {
		var p page[T]
		if err := c.getJSON(ctx, path, params, &p); err != nil {
			return nil, err
		}
		all = append(all, p.Results...)
		if p.NextToken == "" {
			return all, nil
		}
		params.Set("nextToken", p.NextToken)
		if p.QueryExecutionID != "" {
			params.Set("queryExecutionId", p.QueryExecutionID)
		}
	}
}

func (c *StatsClient) getJSON(ctx context.Context, path string, query url.Values, out interface{}) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return NewSourceError(statsSourceName, ErrCodeNetworkError, "failed to create request", err)
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(ctx, req)
	if err != nil {
		return NewSourceError(statsSourceName, ErrCodeNetworkError, "request to "+path+" failed", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return notFound(statsSourceName, path+" not found")
	case http.StatusUnauthorized, http.StatusForbidden:
		return NewSourceError(statsSourceName, ErrCodeAuthenticationFailed, "invalid API key", ErrAuthenticationFailed)
	case http.StatusTooManyRequests:
		return NewSourceError(statsSourceName, ErrCodeRateLimitExceeded, "rate limit exceeded", ErrRateLimitExceeded)
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return NewSourceError(statsSourceName, ErrCodeServerError, fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, string(body)), ErrServerError)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return NewSourceError(statsSourceName, ErrCodeInvalidData, "failed to parse response", err)
	}
	return nil
}

func recordFetch(resource string, start time.Time, err error) {
	status := "success"
	switch {
	case err == nil:
	case IsCode(err, ErrCodeNotFound):
		status = "not_found"
	default:
		status = "error"
	}
	metrics.RecordStatsFetch(resource, status, time.Since(start).Seconds())
}
