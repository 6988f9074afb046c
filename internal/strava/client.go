// Package strava is a thin facade over the Strava v3 API: typed
// request/response mapping, authentication guarding, and error
// translation. It performs no retry or backoff; rate limiting is
// surfaced to the caller immediately.
package strava

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/eddmann/strava-cli/internal/auth"
	"github.com/eddmann/strava-cli/internal/logging"
)

const (
	baseURL        = "https://www.strava.com/api/v3"
	requestTimeout = 30 * time.Second
	maxPerPage     = 200
)

// TokenProvider supplies the bearer token and the single-shot recovery
// hook invoked when the API reports an auth failure. A nil error from
// HandleUnauthorized means "retry the original operation once".
type TokenProvider interface {
	AccessToken() string
	HandleUnauthorized(ctx context.Context) error
}

// Client is the Strava API client.
type Client struct {
	httpClient *retryablehttp.Client
	tokens     TokenProvider
	baseURL    string
}

// NewClient creates a client against the production API.
func NewClient(tokens TokenProvider) *Client {
	return NewClientWithBaseURL(tokens, baseURL)
}

// NewClientWithBaseURL creates a client against a custom base URL (for
// testing).
func NewClientWithBaseURL(tokens TokenProvider, customBaseURL string) *Client {
	log := logging.Logger

	client := retryablehttp.NewClient()
	client.HTTPClient.Timeout = requestTimeout
	// Retry/backoff against the upstream API is out of scope: errors
	// surface immediately, including 429s. The default policy would
	// classify 429/5xx as retryable and swallow the response on give-up,
	// so it is replaced outright.
	client.RetryMax = 0
	client.CheckRetry = func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		return false, nil
	}
	client.Logger = &logging.LeveledLogger{}

	client.RequestLogHook = func(_ retryablehttp.Logger, req *http.Request, _ int) {
		if logging.IsTraceEnabled() {
			log.Debug().
				Str("method", req.Method).
				Str("url", req.URL.String()).
				Str("headers", formatHeaders(req.Header)).
				Msg("request headers")
		}
	}
	client.ResponseLogHook = func(_ retryablehttp.Logger, resp *http.Response) {
		if logging.IsTraceEnabled() {
			log.Debug().
				Int("status", resp.StatusCode).
				Str("url", resp.Request.URL.Path).
				Str("headers", formatHeaders(resp.Header)).
				Msg("response headers")
		}
	}

	return &Client{
		httpClient: client,
		tokens:     tokens,
		baseURL:    strings.TrimRight(customBaseURL, "/"),
	}
}

// apiErrorBody is Strava's error envelope.
type apiErrorBody struct {
	Message string `json:"message"`
}

// do issues one API request and decodes the JSON response into out.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, contentType string, rawBody []byte, out any) error {
	body, err := c.exec(ctx, method, path, query, contentType, rawBody)
	if err != nil {
		return err
	}
	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// exec issues one API request with the retry-once-on-401 dance: a 401
// triggers a single token refresh followed by one replay of the
// original request. rawBody must therefore be replayable ([]byte or
// nil).
func (c *Client) exec(ctx context.Context, method, path string, query url.Values, contentType string, rawBody []byte) ([]byte, error) {
	retried := false
	for {
		body, err := c.doOnce(ctx, method, path, query, contentType, rawBody)
		if err == nil {
			return body, nil
		}
		uerr, unauthorized := err.(*unauthorizedError)
		if !unauthorized {
			return nil, err
		}
		if !retried {
			if herr := c.tokens.HandleUnauthorized(ctx); herr != nil {
				return nil, herr
			}
			retried = true
			continue
		}
		return nil, &auth.Error{
			Message: uerr.message,
			Hint:    "run 'strava auth login' to re-authenticate",
		}
	}
}

// unauthorizedError is internal to the retry-once dance in do.
type unauthorizedError struct {
	message string
}

func (e *unauthorizedError) Error() string { return e.message }

func (c *Client) doOnce(ctx context.Context, method, path string, query url.Values, contentType string, rawBody []byte) ([]byte, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody any
	if rawBody != nil {
		reqBody = rawBody
	}
	req, err := retryablehttp.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.tokens.AccessToken())
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, &unauthorizedError{message: "unauthorized: your token may have expired"}
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, rateLimitErrorFromHeaders(resp.Header)
	case resp.StatusCode == http.StatusNotFound:
		return nil, notFoundFromPath(path)
	case resp.StatusCode >= 400:
		var envelope apiErrorBody
		_ = json.Unmarshal(body, &envelope)
		return nil, &APIError{Status: resp.StatusCode, Message: envelope.Message}
	}

	return body, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, "", nil, out)
}

func (c *Client) postForm(ctx context.Context, path string, form url.Values, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, "application/x-www-form-urlencoded", []byte(form.Encode()), out)
}

func (c *Client) putForm(ctx context.Context, path string, form url.Values, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, "application/x-www-form-urlencoded", []byte(form.Encode()), out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, "", nil, nil)
}

// ListActivitiesOptions filters the activity list.
type ListActivitiesOptions struct {
	Before *time.Time
	After  *time.Time
	Page   int
	Limit  int
}

// ListActivities returns the athlete's activities, newest first.
func (c *Client) ListActivities(ctx context.Context, opts ListActivitiesOptions) ([]Activity, error) {
	query := url.Values{}
	if opts.Before != nil {
		query.Set("before", strconv.FormatInt(opts.Before.Unix(), 10))
	}
	if opts.After != nil {
		query.Set("after", strconv.FormatInt(opts.After.Unix(), 10))
	}
	if opts.Page > 0 {
		query.Set("page", strconv.Itoa(opts.Page))
	}
	perPage := opts.Limit
	if perPage <= 0 || perPage > maxPerPage {
		perPage = maxPerPage
	}
	query.Set("per_page", strconv.Itoa(perPage))

	var activities []Activity
	if err := c.get(ctx, "/athlete/activities", query, &activities); err != nil {
		return nil, err
	}
	if opts.Limit > 0 && len(activities) > opts.Limit {
		activities = activities[:opts.Limit]
	}
	return activities, nil
}

// GetActivity returns one activity, optionally with all segment efforts.
func (c *Client) GetActivity(ctx context.Context, activityID int64, includeAllEfforts bool) (*Activity, error) {
	query := url.Values{}
	if includeAllEfforts {
		query.Set("include_all_efforts", "true")
	}
	var activity Activity
	if err := c.get(ctx, fmt.Sprintf("/activities/%d", activityID), query, &activity); err != nil {
		return nil, err
	}
	return &activity, nil
}

// CreateActivityRequest describes a manual activity.
type CreateActivityRequest struct {
	Name           string
	SportType      string
	StartDateLocal time.Time
	ElapsedTime    int
	Description    string
	Distance       float64
	Trainer        bool
	Commute        bool
}

// CreateActivity creates a manual activity.
func (c *Client) CreateActivity(ctx context.Context, req CreateActivityRequest) (*Activity, error) {
	form := url.Values{
		"name":             {req.Name},
		"sport_type":       {req.SportType},
		"start_date_local": {req.StartDateLocal.Format(time.RFC3339)},
		"elapsed_time":     {strconv.Itoa(req.ElapsedTime)},
	}
	if req.Description != "" {
		form.Set("description", req.Description)
	}
	if req.Distance > 0 {
		form.Set("distance", strconv.FormatFloat(req.Distance, 'f', -1, 64))
	}
	if req.Trainer {
		form.Set("trainer", "1")
	}
	if req.Commute {
		form.Set("commute", "1")
	}

	var activity Activity
	if err := c.postForm(ctx, "/activities", form, &activity); err != nil {
		return nil, err
	}
	return &activity, nil
}

// UpdateActivityRequest carries only the fields to change; nil pointers
// are left untouched upstream.
type UpdateActivityRequest struct {
	Name        *string
	SportType   *string
	Description *string
	Trainer     *bool
	Commute     *bool
	GearID      *string
}

// UpdateActivity updates an activity in place.
func (c *Client) UpdateActivity(ctx context.Context, activityID int64, req UpdateActivityRequest) (*Activity, error) {
	form := url.Values{}
	if req.Name != nil {
		form.Set("name", *req.Name)
	}
	if req.SportType != nil {
		form.Set("sport_type", *req.SportType)
	}
	if req.Description != nil {
		form.Set("description", *req.Description)
	}
	if req.Trainer != nil {
		form.Set("trainer", strconv.FormatBool(*req.Trainer))
	}
	if req.Commute != nil {
		form.Set("commute", strconv.FormatBool(*req.Commute))
	}
	if req.GearID != nil {
		form.Set("gear_id", *req.GearID)
	}

	var activity Activity
	if err := c.putForm(ctx, fmt.Sprintf("/activities/%d", activityID), form, &activity); err != nil {
		return nil, err
	}
	return &activity, nil
}

// DeleteActivity removes an activity.
func (c *Client) DeleteActivity(ctx context.Context, activityID int64) error {
	return c.delete(ctx, fmt.Sprintf("/activities/%d", activityID))
}

// DefaultStreamKeys are requested when the caller does not name any.
var DefaultStreamKeys = []string{
	"time", "distance", "latlng", "altitude", "heartrate",
	"cadence", "watts", "temp", "moving", "grade_smooth",
}

// GetActivityStreams returns the activity's time-series channels keyed
// by stream type.
func (c *Client) GetActivityStreams(ctx context.Context, activityID int64, keys []string) (map[string]Stream, error) {
	if len(keys) == 0 {
		keys = DefaultStreamKeys
	}
	query := url.Values{
		"keys":        {strings.Join(keys, ",")},
		"key_by_type": {"true"},
	}
	var streams map[string]Stream
	if err := c.get(ctx, fmt.Sprintf("/activities/%d/streams", activityID), query, &streams); err != nil {
		return nil, err
	}
	return streams, nil
}

// GetActivityLaps returns the activity's laps.
func (c *Client) GetActivityLaps(ctx context.Context, activityID int64) ([]Lap, error) {
	var laps []Lap
	if err := c.get(ctx, fmt.Sprintf("/activities/%d/laps", activityID), nil, &laps); err != nil {
		return nil, err
	}
	return laps, nil
}

// GetActivityZones returns heart-rate/power distributions.
func (c *Client) GetActivityZones(ctx context.Context, activityID int64) ([]ActivityZone, error) {
	var zones []ActivityZone
	if err := c.get(ctx, fmt.Sprintf("/activities/%d/zones", activityID), nil, &zones); err != nil {
		return nil, err
	}
	return zones, nil
}

// GetActivityComments returns the activity's comments.
func (c *Client) GetActivityComments(ctx context.Context, activityID int64) ([]Comment, error) {
	var comments []Comment
	if err := c.get(ctx, fmt.Sprintf("/activities/%d/comments", activityID), nil, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// GetActivityKudos returns the athletes who gave kudos.
func (c *Client) GetActivityKudos(ctx context.Context, activityID int64) ([]Kudoser, error) {
	var kudos []Kudoser
	if err := c.get(ctx, fmt.Sprintf("/activities/%d/kudos", activityID), nil, &kudos); err != nil {
		return nil, err
	}
	return kudos, nil
}

// GetAthlete returns the authenticated athlete's profile.
func (c *Client) GetAthlete(ctx context.Context) (*Athlete, error) {
	var athlete Athlete
	if err := c.get(ctx, "/athlete", nil, &athlete); err != nil {
		return nil, err
	}
	return &athlete, nil
}

// GetAthleteStats returns activity totals for an athlete.
func (c *Client) GetAthleteStats(ctx context.Context, athleteID int64) (*AthleteStats, error) {
	var stats AthleteStats
	if err := c.get(ctx, fmt.Sprintf("/athletes/%d/stats", athleteID), nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// GetAthleteZones returns the athlete's configured training zones.
func (c *Client) GetAthleteZones(ctx context.Context) (*AthleteZones, error) {
	var zones AthleteZones
	if err := c.get(ctx, "/athlete/zones", nil, &zones); err != nil {
		return nil, err
	}
	return &zones, nil
}

// GetSegment returns one segment.
func (c *Client) GetSegment(ctx context.Context, segmentID int64) (*Segment, error) {
	var segment Segment
	if err := c.get(ctx, fmt.Sprintf("/segments/%d", segmentID), nil, &segment); err != nil {
		return nil, err
	}
	return &segment, nil
}

// GetStarredSegments returns the athlete's starred segments.
func (c *Client) GetStarredSegments(ctx context.Context, limit int) ([]Segment, error) {
	query := url.Values{}
	if limit > 0 {
		query.Set("per_page", strconv.Itoa(limit))
	}
	var segments []Segment
	if err := c.get(ctx, "/segments/starred", query, &segments); err != nil {
		return nil, err
	}
	return segments, nil
}

// StarSegment stars or unstars a segment for the athlete.
func (c *Client) StarSegment(ctx context.Context, segmentID int64, starred bool) (*Segment, error) {
	form := url.Values{"starred": {strconv.FormatBool(starred)}}
	var segment Segment
	if err := c.putForm(ctx, fmt.Sprintf("/segments/%d/starred", segmentID), form, &segment); err != nil {
		return nil, err
	}
	return &segment, nil
}

// Bounds is a geographic bounding box: SW lat/lng then NE lat/lng.
type Bounds struct {
	SWLat float64
	SWLng float64
	NELat float64
	NELng float64
}

func (b Bounds) String() string {
	return fmt.Sprintf("%g,%g,%g,%g", b.SWLat, b.SWLng, b.NELat, b.NELng)
}

// ExploreSegments searches for popular segments within bounds.
func (c *Client) ExploreSegments(ctx context.Context, bounds Bounds, activityType string) ([]ExploredSegment, error) {
	query := url.Values{"bounds": {bounds.String()}}
	if activityType != "" {
		query.Set("activity_type", activityType)
	}
	var resp exploreResponse
	if err := c.get(ctx, "/segments/explore", query, &resp); err != nil {
		return nil, err
	}
	return resp.Segments, nil
}

// GetSegmentEffort returns one segment effort.
func (c *Client) GetSegmentEffort(ctx context.Context, effortID int64) (*SegmentEffort, error) {
	var effort SegmentEffort
	if err := c.get(ctx, fmt.Sprintf("/segment_efforts/%d", effortID), nil, &effort); err != nil {
		return nil, err
	}
	return &effort, nil
}

// ListSegmentEfforts returns the athlete's efforts on a segment,
// optionally bounded by local date.
func (c *Client) ListSegmentEfforts(ctx context.Context, segmentID int64, start, end *time.Time) ([]SegmentEffort, error) {
	query := url.Values{"segment_id": {strconv.FormatInt(segmentID, 10)}}
	if start != nil {
		query.Set("start_date_local", start.Format(time.RFC3339))
	}
	if end != nil {
		query.Set("end_date_local", end.Format(time.RFC3339))
	}
	var efforts []SegmentEffort
	if err := c.get(ctx, "/segment_efforts", query, &efforts); err != nil {
		return nil, err
	}
	return efforts, nil
}

// GetRoutes returns an athlete's saved routes.
func (c *Client) GetRoutes(ctx context.Context, athleteID int64, limit int) ([]Route, error) {
	query := url.Values{}
	if limit > 0 {
		query.Set("per_page", strconv.Itoa(limit))
	}
	var routes []Route
	if err := c.get(ctx, fmt.Sprintf("/athletes/%d/routes", athleteID), query, &routes); err != nil {
		return nil, err
	}
	return routes, nil
}

// GetRoute returns one route.
func (c *Client) GetRoute(ctx context.Context, routeID int64) (*Route, error) {
	var route Route
	if err := c.get(ctx, fmt.Sprintf("/routes/%d", routeID), nil, &route); err != nil {
		return nil, err
	}
	return &route, nil
}

// GetRouteStreams returns the route's distance/elevation channels.
func (c *Client) GetRouteStreams(ctx context.Context, routeID int64) (map[string]Stream, error) {
	query := url.Values{"key_by_type": {"true"}}
	var streams map[string]Stream
	if err := c.get(ctx, fmt.Sprintf("/routes/%d/streams", routeID), query, &streams); err != nil {
		return nil, err
	}
	return streams, nil
}

// ExportRoute downloads a route as GPX or TCX. The response is the raw
// document, not JSON.
func (c *Client) ExportRoute(ctx context.Context, routeID int64, format string) ([]byte, error) {
	if format != "gpx" && format != "tcx" {
		return nil, fmt.Errorf("unsupported export format %q", format)
	}
	return c.exec(ctx, http.MethodGet, fmt.Sprintf("/routes/%d/export_%s", routeID, format), nil, "", nil)
}

// GetAthleteClubs returns the athlete's club memberships.
func (c *Client) GetAthleteClubs(ctx context.Context) ([]Club, error) {
	var clubs []Club
	if err := c.get(ctx, "/athlete/clubs", nil, &clubs); err != nil {
		return nil, err
	}
	return clubs, nil
}

// GetClub returns one club.
func (c *Client) GetClub(ctx context.Context, clubID int64) (*Club, error) {
	var club Club
	if err := c.get(ctx, fmt.Sprintf("/clubs/%d", clubID), nil, &club); err != nil {
		return nil, err
	}
	return &club, nil
}

// GetClubMembers returns a club's roster.
func (c *Client) GetClubMembers(ctx context.Context, clubID int64, limit int) ([]ClubMember, error) {
	query := url.Values{}
	if limit > 0 {
		query.Set("per_page", strconv.Itoa(limit))
	}
	var members []ClubMember
	if err := c.get(ctx, fmt.Sprintf("/clubs/%d/members", clubID), query, &members); err != nil {
		return nil, err
	}
	return members, nil
}

// GetClubActivities returns a club's recent activity feed.
func (c *Client) GetClubActivities(ctx context.Context, clubID int64, limit int) ([]ClubActivity, error) {
	query := url.Values{}
	if limit > 0 {
		query.Set("per_page", strconv.Itoa(limit))
	}
	var activities []ClubActivity
	if err := c.get(ctx, fmt.Sprintf("/clubs/%d/activities", clubID), query, &activities); err != nil {
		return nil, err
	}
	return activities, nil
}

// GetGear returns one piece of gear.
func (c *Client) GetGear(ctx context.Context, gearID string) (*Gear, error) {
	var gear Gear
	if err := c.get(ctx, "/gear/"+url.PathEscape(gearID), nil, &gear); err != nil {
		return nil, err
	}
	return &gear, nil
}

// UploadRequest describes an activity file upload.
type UploadRequest struct {
	Filename    string
	DataType    string
	Content     []byte
	Name        string
	Description string
	SportType   string
	Trainer     bool
	Commute     bool
	ExternalID  string
}

// UploadActivity uploads an activity file (fit/gpx/tcx, optionally
// gzipped) and returns the pending upload record.
func (c *Client) UploadActivity(ctx context.Context, req UploadRequest) (*UploadStatus, error) {
	var buf strings.Builder
	writer := multipart.NewWriter(&buf)

	fields := map[string]string{
		"data_type":   req.DataType,
		"name":        req.Name,
		"description": req.Description,
		"sport_type":  req.SportType,
		"external_id": req.ExternalID,
	}
	if req.Trainer {
		fields["trainer"] = "1"
	}
	if req.Commute {
		fields["commute"] = "1"
	}
	for key, value := range fields {
		if value == "" {
			continue
		}
		if err := writer.WriteField(key, value); err != nil {
			return nil, fmt.Errorf("encoding upload: %w", err)
		}
	}

	part, err := writer.CreateFormFile("file", req.Filename)
	if err != nil {
		return nil, fmt.Errorf("encoding upload: %w", err)
	}
	if _, err := part.Write(req.Content); err != nil {
		return nil, fmt.Errorf("encoding upload: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("encoding upload: %w", err)
	}

	var status UploadStatus
	if err := c.do(ctx, http.MethodPost, "/uploads", nil, writer.FormDataContentType(), []byte(buf.String()), &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// GetUpload returns the processing status of an upload.
func (c *Client) GetUpload(ctx context.Context, uploadID int64) (*UploadStatus, error) {
	var status UploadStatus
	if err := c.get(ctx, fmt.Sprintf("/uploads/%d", uploadID), nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// notFoundFromPath names the missing resource after the request path,
// e.g. /activities/123 becomes "activities '123' not found".
func notFoundFromPath(path string) *NotFoundError {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	nf := &NotFoundError{Resource: segments[0]}
	if len(segments) > 1 {
		nf.ID = segments[len(segments)-1]
	}
	return nf
}

// rateLimitErrorFromHeaders reads Strava's paired rate-limit headers.
// Two sets are returned (general and read-specific); the more
// restrictive limit and the higher usage apply.
func rateLimitErrorFromHeaders(headers http.Header) *RateLimitError {
	generalLimit15, generalLimitDay := splitPair(headers.Get("X-RateLimit-Limit"))
	generalUsage15, generalUsageDay := splitPair(headers.Get("X-RateLimit-Usage"))
	readLimit15, readLimitDay := splitPair(headers.Get("X-ReadRateLimit-Limit"))
	readUsage15, readUsageDay := splitPair(headers.Get("X-ReadRateLimit-Usage"))

	return &RateLimitError{
		Limit15Min: minPositive(generalLimit15, readLimit15),
		LimitDaily: minPositive(generalLimitDay, readLimitDay),
		Usage15Min: max(generalUsage15, readUsage15),
		UsageDaily: max(generalUsageDay, readUsageDay),
	}
}

func splitPair(header string) (first, second int) {
	parts := strings.Split(header, ",")
	if len(parts) >= 1 {
		first, _ = strconv.Atoi(strings.TrimSpace(parts[0]))
	}
	if len(parts) >= 2 {
		second, _ = strconv.Atoi(strings.TrimSpace(parts[1]))
	}
	return first, second
}

// minPositive returns the minimum of two values, preferring positive
// values; zero means the header was absent.
func minPositive(a, b int) int {
	if a <= 0 {
		return b
	}
	if b <= 0 {
		return a
	}
	if a < b {
		return a
	}
	return b
}

// formatHeaders formats HTTP headers for trace logging, redacting
// sensitive values.
func formatHeaders(headers http.Header) string {
	if len(headers) == 0 {
		return "{}"
	}

	keys := make([]string, 0, len(headers))
	for k := range headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteString("{")
	for i, k := range keys {
		if i > 0 {
			sb.WriteString(", ")
		}
		value := strings.Join(headers[k], ", ")
		lowerKey := strings.ToLower(k)
		if lowerKey == "authorization" || lowerKey == "cookie" || lowerKey == "set-cookie" {
			value = "[REDACTED]"
		}
		sb.WriteString(fmt.Sprintf("%s: %q", k, value))
	}
	sb.WriteString("}")
	return sb.String()
}
