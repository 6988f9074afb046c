package strava

import (
	"encoding/json"
	"time"
)

// Response schemas are explicit tagged structs per resource; output
// rendering goes through these tags rather than walking arbitrary
// upstream objects.

// Athlete is the authenticated athlete's profile.
type Athlete struct {
	ID                    int64         `json:"id"`
	Username              string        `json:"username,omitempty"`
	Firstname             string        `json:"firstname,omitempty"`
	Lastname              string        `json:"lastname,omitempty"`
	City                  string        `json:"city,omitempty"`
	State                 string        `json:"state,omitempty"`
	Country               string        `json:"country,omitempty"`
	Sex                   string        `json:"sex,omitempty"`
	Premium               bool          `json:"premium"`
	Summit                bool          `json:"summit"`
	CreatedAt             *time.Time    `json:"created_at,omitempty"`
	UpdatedAt             *time.Time    `json:"updated_at,omitempty"`
	FollowerCount         int           `json:"follower_count,omitempty"`
	FriendCount           int           `json:"friend_count,omitempty"`
	MeasurementPreference string        `json:"measurement_preference,omitempty"`
	FTP                   float64       `json:"ftp,omitempty"`
	Weight                float64       `json:"weight,omitempty"`
	Bikes                 []GearSummary `json:"bikes,omitempty"`
	Shoes                 []GearSummary `json:"shoes,omitempty"`
}

// GearSummary is the abbreviated gear entry embedded in the profile.
type GearSummary struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Primary  bool    `json:"primary"`
	Distance float64 `json:"distance"`
}

// ActivityTotals is one aggregation bucket within athlete stats.
type ActivityTotals struct {
	Count         int     `json:"count"`
	Distance      float64 `json:"distance"`
	MovingTime    int     `json:"moving_time"`
	ElapsedTime   int     `json:"elapsed_time"`
	ElevationGain float64 `json:"elevation_gain"`
}

// AthleteStats holds recent, YTD and all-time totals.
type AthleteStats struct {
	BiggestRideDistance   float64        `json:"biggest_ride_distance"`
	BiggestClimbElevation float64        `json:"biggest_climb_elevation_gain"`
	RecentRideTotals      ActivityTotals `json:"recent_ride_totals"`
	RecentRunTotals       ActivityTotals `json:"recent_run_totals"`
	RecentSwimTotals      ActivityTotals `json:"recent_swim_totals"`
	YTDRideTotals         ActivityTotals `json:"ytd_ride_totals"`
	YTDRunTotals          ActivityTotals `json:"ytd_run_totals"`
	YTDSwimTotals         ActivityTotals `json:"ytd_swim_totals"`
	AllRideTotals         ActivityTotals `json:"all_ride_totals"`
	AllRunTotals          ActivityTotals `json:"all_run_totals"`
	AllSwimTotals         ActivityTotals `json:"all_swim_totals"`
}

// ZoneRange is one bucket boundary pair within a zone set.
type ZoneRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// ZoneSet is a heart-rate or power zone configuration.
type ZoneSet struct {
	CustomZones bool        `json:"custom_zones,omitempty"`
	Zones       []ZoneRange `json:"zones,omitempty"`
}

// AthleteZones holds the athlete's configured training zones.
type AthleteZones struct {
	HeartRate *ZoneSet `json:"heart_rate,omitempty"`
	Power     *ZoneSet `json:"power,omitempty"`
}

// Activity is a summary or detailed activity, depending on endpoint.
type Activity struct {
	ID                 int64           `json:"id"`
	Name               string          `json:"name"`
	Description        string          `json:"description,omitempty"`
	Distance           float64         `json:"distance"`
	MovingTime         int             `json:"moving_time"`
	ElapsedTime        int             `json:"elapsed_time"`
	TotalElevationGain float64         `json:"total_elevation_gain"`
	Type               string          `json:"type,omitempty"`
	SportType          string          `json:"sport_type,omitempty"`
	StartDate          *time.Time      `json:"start_date,omitempty"`
	StartDateLocal     *time.Time      `json:"start_date_local,omitempty"`
	Timezone           string          `json:"timezone,omitempty"`
	AverageSpeed       float64         `json:"average_speed,omitempty"`
	MaxSpeed           float64         `json:"max_speed,omitempty"`
	AverageCadence     float64         `json:"average_cadence,omitempty"`
	AverageWatts       float64         `json:"average_watts,omitempty"`
	AverageHeartrate   float64         `json:"average_heartrate,omitempty"`
	MaxHeartrate       float64         `json:"max_heartrate,omitempty"`
	Kilojoules         float64         `json:"kilojoules,omitempty"`
	Calories           float64         `json:"calories,omitempty"`
	Trainer            bool            `json:"trainer"`
	Commute            bool            `json:"commute"`
	Manual             bool            `json:"manual"`
	Private            bool            `json:"private"`
	GearID             string          `json:"gear_id,omitempty"`
	KudosCount         int             `json:"kudos_count,omitempty"`
	CommentCount       int             `json:"comment_count,omitempty"`
	AthleteCount       int             `json:"athlete_count,omitempty"`
	SegmentEfforts     []SegmentEffort `json:"segment_efforts,omitempty"`
}

// Lap is one lap of an activity.
type Lap struct {
	ID                 int64      `json:"id"`
	Name               string     `json:"name"`
	LapIndex           int        `json:"lap_index"`
	Distance           float64    `json:"distance"`
	MovingTime         int        `json:"moving_time"`
	ElapsedTime        int        `json:"elapsed_time"`
	StartDate          *time.Time `json:"start_date,omitempty"`
	AverageSpeed       float64    `json:"average_speed,omitempty"`
	MaxSpeed           float64    `json:"max_speed,omitempty"`
	AverageHeartrate   float64    `json:"average_heartrate,omitempty"`
	MaxHeartrate       float64    `json:"max_heartrate,omitempty"`
	TotalElevationGain float64    `json:"total_elevation_gain,omitempty"`
}

// TimedZoneRange is time spent within one zone bucket.
type TimedZoneRange struct {
	Min  int     `json:"min"`
	Max  int     `json:"max"`
	Time float64 `json:"time"`
}

// ActivityZone is the heart-rate or power distribution of an activity.
type ActivityZone struct {
	Type                string           `json:"type"`
	SensorBased         bool             `json:"sensor_based"`
	Score               float64          `json:"score,omitempty"`
	DistributionBuckets []TimedZoneRange `json:"distribution_buckets"`
}

// Comment is a comment left on an activity.
type Comment struct {
	ID         int64      `json:"id"`
	ActivityID int64      `json:"activity_id"`
	Text       string     `json:"text"`
	CreatedAt  *time.Time `json:"created_at,omitempty"`
	Athlete    *Kudoser   `json:"athlete,omitempty"`
}

// Kudoser identifies an athlete who gave kudos or commented.
type Kudoser struct {
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
}

// Segment is a Strava segment.
type Segment struct {
	ID                 int64      `json:"id"`
	Name               string     `json:"name"`
	ActivityType       string     `json:"activity_type,omitempty"`
	Distance           float64    `json:"distance"`
	AverageGrade       float64    `json:"average_grade,omitempty"`
	MaximumGrade       float64    `json:"maximum_grade,omitempty"`
	ElevationHigh      float64    `json:"elevation_high,omitempty"`
	ElevationLow       float64    `json:"elevation_low,omitempty"`
	ClimbCategory      int        `json:"climb_category,omitempty"`
	City               string     `json:"city,omitempty"`
	State              string     `json:"state,omitempty"`
	Country            string     `json:"country,omitempty"`
	Private            bool       `json:"private"`
	Starred            bool       `json:"starred"`
	StarCount          int        `json:"star_count,omitempty"`
	EffortCount        int        `json:"effort_count,omitempty"`
	AthleteCount       int        `json:"athlete_count,omitempty"`
	CreatedAt          *time.Time `json:"created_at,omitempty"`
}

// ExploredSegment is an entry from the segment explorer.
type ExploredSegment struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	ClimbCategory  int       `json:"climb_category"`
	AvgGrade       float64   `json:"avg_grade"`
	StartLatLng    []float64 `json:"start_latlng,omitempty"`
	EndLatLng      []float64 `json:"end_latlng,omitempty"`
	ElevDifference float64   `json:"elev_difference"`
	Distance       float64   `json:"distance"`
	Starred        bool      `json:"starred"`
}

// exploreResponse is the explorer's envelope.
type exploreResponse struct {
	Segments []ExploredSegment `json:"segments"`
}

// SegmentEffort is an athlete's attempt on a segment.
type SegmentEffort struct {
	ID               int64      `json:"id"`
	Name             string     `json:"name"`
	ActivityID       int64      `json:"activity_id,omitempty"`
	ElapsedTime      int        `json:"elapsed_time"`
	MovingTime       int        `json:"moving_time"`
	StartDate        *time.Time `json:"start_date,omitempty"`
	StartDateLocal   *time.Time `json:"start_date_local,omitempty"`
	Distance         float64    `json:"distance"`
	AverageHeartrate float64    `json:"average_heartrate,omitempty"`
	MaxHeartrate     float64    `json:"max_heartrate,omitempty"`
	AverageWatts     float64    `json:"average_watts,omitempty"`
	KomRank          int        `json:"kom_rank,omitempty"`
	PrRank           int        `json:"pr_rank,omitempty"`
	Segment          *Segment   `json:"segment,omitempty"`
}

// Route is a saved route.
type Route struct {
	ID                  int64      `json:"id"`
	Name                string     `json:"name"`
	Description         string     `json:"description,omitempty"`
	Distance            float64    `json:"distance"`
	ElevationGain       float64    `json:"elevation_gain"`
	Type                int        `json:"type,omitempty"`
	SubType             int        `json:"sub_type,omitempty"`
	Private             bool       `json:"private"`
	Starred             bool       `json:"starred"`
	Timestamp           int64      `json:"timestamp,omitempty"`
	CreatedAt           *time.Time `json:"created_at,omitempty"`
	UpdatedAt           *time.Time `json:"updated_at,omitempty"`
	EstimatedMovingTime int        `json:"estimated_moving_time,omitempty"`
}

// Club is a Strava club.
type Club struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	SportType     string `json:"sport_type,omitempty"`
	City          string `json:"city,omitempty"`
	State         string `json:"state,omitempty"`
	Country       string `json:"country,omitempty"`
	MemberCount   int    `json:"member_count,omitempty"`
	Private       bool   `json:"private"`
	Url           string `json:"url,omitempty"`
	Description   string `json:"description,omitempty"`
	FollowerCount int    `json:"follower_count,omitempty"`
}

// ClubMember is a club roster entry.
type ClubMember struct {
	Firstname  string `json:"firstname"`
	Lastname   string `json:"lastname"`
	Membership string `json:"membership,omitempty"`
	Admin      bool   `json:"admin"`
	Owner      bool   `json:"owner"`
}

// ClubActivity is a recent activity within a club feed.
type ClubActivity struct {
	Athlete            *Kudoser `json:"athlete,omitempty"`
	Name               string   `json:"name"`
	Distance           float64  `json:"distance"`
	MovingTime         int      `json:"moving_time"`
	ElapsedTime        int      `json:"elapsed_time"`
	TotalElevationGain float64  `json:"total_elevation_gain"`
	Type               string   `json:"type,omitempty"`
	SportType          string   `json:"sport_type,omitempty"`
}

// Gear is a bike or pair of shoes.
type Gear struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Primary     bool    `json:"primary"`
	Retired     bool    `json:"retired"`
	Distance    float64 `json:"distance"`
	BrandName   string  `json:"brand_name,omitempty"`
	ModelName   string  `json:"model_name,omitempty"`
	Description string  `json:"description,omitempty"`
}

// UploadStatus tracks an activity file upload through processing.
type UploadStatus struct {
	ID         int64  `json:"id"`
	ExternalID string `json:"external_id,omitempty"`
	Status     string `json:"status,omitempty"`
	Error      string `json:"error,omitempty"`
	ActivityID int64  `json:"activity_id,omitempty"`
}

// Stream is one time-series channel of an activity or route. Data
// element types vary by stream (ints, floats, lat/lng pairs, bools), so
// the samples pass through untouched.
type Stream struct {
	Data         json.RawMessage `json:"data"`
	SeriesType   string          `json:"series_type,omitempty"`
	OriginalSize int             `json:"original_size,omitempty"`
	Resolution   string          `json:"resolution,omitempty"`
}
