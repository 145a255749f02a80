package census

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/boom-loudness-etl/internal/domain"
	"github.com/couchcryptid/boom-loudness-etl/internal/observability"
)

// vintage is the Population Estimates Program vintage queried for county
// figures. Vintage 2017 carries the 2009-2017 estimate series.
const vintage = 2017

// Client implements domain.PopulationSource using the Census Bureau
// Population Estimates API.
type Client struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a Census population client. The API key may be empty;
// the Census API accepts keyless requests at low volume.
func NewClient(apiKey string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: fmt.Sprintf("https://api.census.gov/data/%d/pep/population", vintage),
		metrics: metrics,
		logger:  logger,
	}
}

// CountyPopulation fetches the population estimate for a county identified by
// its 2-digit state and 3-digit county FIPS codes.
func (c *Client) CountyPopulation(ctx context.Context, stateFIPS, countyFIPS string) (domain.PopulationEstimate, error) {
	params := url.Values{
		"get": {"POP,GEONAME"},
		"for": {"county:" + countyFIPS},
		"in":  {"state:" + stateFIPS},
	}
	if c.apiKey != "" {
		params.Set("key", c.apiKey)
	}

	start := time.Now()
	est, err := c.doRequest(ctx, c.baseURL+"?"+params.Encode())
	c.metrics.CensusAPIDuration.Observe(time.Since(start).Seconds())

	switch {
	case err != nil:
		c.metrics.CensusRequests.WithLabelValues("error").Inc()
	case est.Population == 0:
		c.metrics.CensusRequests.WithLabelValues("empty").Inc()
	default:
		c.metrics.CensusRequests.WithLabelValues("success").Inc()
	}
	return est, err
}

func (c *Client) doRequest(ctx context.Context, fullURL string) (domain.PopulationEstimate, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return domain.PopulationEstimate{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.PopulationEstimate{}, fmt.Errorf("population request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return domain.PopulationEstimate{}, fmt.Errorf("census API error: status %d: %s", resp.StatusCode, body)
	}

	// The API returns a header row followed by data rows:
	// [["POP","GEONAME","state","county"],["2586552","Dallas County, Texas","48","113"]]
	var rows [][]string
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return domain.PopulationEstimate{}, fmt.Errorf("decode response: %w", err)
	}
	if len(rows) < 2 {
		return domain.PopulationEstimate{}, nil
	}

	header := rows[0]
	data := rows[1]
	popIdx, nameIdx := columnIndexes(header)
	if popIdx < 0 || popIdx >= len(data) {
		return domain.PopulationEstimate{}, fmt.Errorf("census response missing POP column")
	}

	pop, err := strconv.ParseInt(data[popIdx], 10, 64)
	if err != nil {
		return domain.PopulationEstimate{}, fmt.Errorf("parse population %q: %w", data[popIdx], err)
	}

	est := domain.PopulationEstimate{Population: pop, Vintage: vintage}
	if nameIdx >= 0 && nameIdx < len(data) {
		est.CountyName = countyName(data[nameIdx])
	}
	return est, nil
}

func columnIndexes(header []string) (popIdx, nameIdx int) {
	popIdx, nameIdx = -1, -1
	for i, col := range header {
		switch col {
		case "POP":
			popIdx = i
		case "GEONAME":
			nameIdx = i
		}
	}
	return popIdx, nameIdx
}

// countyName strips the state suffix from a GEONAME value such as
// "Dallas County, Texas".
func countyName(geoname string) string {
	if i := strings.Index(geoname, ","); i >= 0 {
		return strings.TrimSpace(geoname[:i])
	}
	return geoname
}
