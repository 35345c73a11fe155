package attendance

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Common errors
var (
	ErrSessionNotFound = errors.New("attendance session not found")
	ErrInvalidInput    = errors.New("invalid input")
)

type ReviewStatus string

const (
	ReviewStatusPending  ReviewStatus = "pending"
	ReviewStatusApproved ReviewStatus = "approved"
	ReviewStatusRejected ReviewStatus = "rejected"
)

// IsValid validates the review status
func (s ReviewStatus) IsValid() bool {
	switch s {
	case ReviewStatusPending, ReviewStatusApproved, ReviewStatusRejected:
		return true
	}
	return false
}

type ArrivalStatus string

const (
	ArrivalOnTime ArrivalStatus = "on-time"
	ArrivalLate   ArrivalStatus = "late"
)

type DepartureStatus string

const (
	DepartureOnTime    DepartureStatus = "on-time"
	DepartureLeftEarly DepartureStatus = "left-early"
)

// GPSFix is a single positioning sample.
type GPSFix struct {
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Accuracy  float64   `json:"accuracy,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// TrackPoint is one sample of the in-session location track.
type TrackPoint struct {
	Latitude  float64   `json:"lat"`
	Longitude float64   `json:"lng"`
	Timestamp time.Time `json:"timestamp"`
}

type UUIDSlice []uuid.UUID

// Value implements the driver.Valuer interface for UUIDSlice
func (u UUIDSlice) Value() (driver.Value, error) {
	if len(u) == 0 {
		return "[]", nil
	}
	return json.Marshal(u)
}

// Scan implements the sql.Scanner interface for UUIDSlice
func (u *UUIDSlice) Scan(value interface{}) error {
	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("failed to unmarshal UUIDSlice value: %v", value)
	}
	return json.Unmarshal(bytes, u)
}

// AttendanceSession is one continuous attendance interval for a worker
// on a project, bounded by check-in and (eventually) check-out. A
// worker holds at most one open session system-wide. Sessions form an
// append-only audit trail and are never deleted.
type AttendanceSession struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	WorkerID  uuid.UUID `json:"worker_id" gorm:"type:uuid;not null;index:idx_session_worker"`
	ProjectID uuid.UUID `json:"project_id" gorm:"type:uuid;not null;index:idx_session_project"`
	Date      time.Time `json:"date" gorm:"type:date;not null;index:idx_session_date"`

	CheckInTime     time.Time     `json:"check_in_time" gorm:"not null"`
	CheckInLat      float64       `json:"check_in_lat"`
	CheckInLng      float64       `json:"check_in_lng"`
	CheckInAccuracy float64       `json:"check_in_accuracy"`
	CheckInSelfie   string        `json:"check_in_selfie" gorm:"type:text"`
	AutoLogged      bool          `json:"auto_logged" gorm:"not null;default:false"`
	ArrivalStatus   ArrivalStatus `json:"arrival_status" gorm:"type:varchar(16)"`

	CheckOutTime     *time.Time      `json:"check_out_time,omitempty" gorm:"index:idx_session_open,where:check_out_time IS NULL"`
	CheckOutLat      *float64        `json:"check_out_lat,omitempty"`
	CheckOutLng      *float64        `json:"check_out_lng,omitempty"`
	CheckOutAccuracy *float64        `json:"check_out_accuracy,omitempty"`
	CheckOutSelfie   string          `json:"check_out_selfie" gorm:"type:text"`
	DepartureStatus  DepartureStatus `json:"departure_status" gorm:"type:varchar(16)"`

	LocationTrack    datatypes.JSONSlice[TrackPoint] `json:"location_track" gorm:"type:jsonb"`
	CompletedTaskIDs UUIDSlice                       `json:"completed_task_ids" gorm:"type:jsonb"`
	Notes            string                          `json:"notes" gorm:"type:text"`

	ReviewStatus ReviewStatus `json:"review_status" gorm:"type:varchar(16);not null;default:'pending';index:idx_session_review"`
	ReviewedBy   *uuid.UUID   `json:"reviewed_by,omitempty" gorm:"type:uuid"`
	ReviewedAt   *time.Time   `json:"reviewed_at,omitempty"`
	ReviewNotes  string       `json:"review_notes" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for attendance sessions
func (AttendanceSession) TableName() string {
	return "attendance_sessions"
}

// BeforeCreate is called before inserting a new session
func (s *AttendanceSession) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.ReviewStatus == "" {
		s.ReviewStatus = ReviewStatusPending
	}
	if s.WorkerID == uuid.Nil || s.ProjectID == uuid.Nil {
		return ErrInvalidInput
	}
	return nil
}

// IsOpen reports whether the session has not been checked out yet.
func (s *AttendanceSession) IsOpen() bool {
	return s.CheckOutTime == nil
}

// Log is a flattened attendance record consumed by the analyzer.
type Log struct {
	WorkerID        uuid.UUID       `json:"worker_id"`
	Date            time.Time       `json:"date"`
	ArrivalStatus   ArrivalStatus   `json:"arrival_status"`
	DepartureStatus DepartureStatus `json:"departure_status"`
}

// Workday bounds used to classify arrivals and departures. Times are
// compared in UTC, matching the store's NowFunc.
const (
	WorkdayStartHour = 9
	WorkdayEndHour   = 17
)

// ClassifyArrival marks a check-in after the workday start as late.
func ClassifyArrival(checkIn time.Time) ArrivalStatus {
	cutoff := time.Date(checkIn.Year(), checkIn.Month(), checkIn.Day(), WorkdayStartHour, 0, 0, 0, checkIn.Location())
	if checkIn.After(cutoff) {
		return ArrivalLate
	}
	return ArrivalOnTime
}

// ClassifyDeparture marks a check-out before the workday end as early.
func ClassifyDeparture(checkOut time.Time) DepartureStatus {
	cutoff := time.Date(checkOut.Year(), checkOut.Month(), checkOut.Day(), WorkdayEndHour, 0, 0, 0, checkOut.Location())
	if checkOut.Before(cutoff) {
		return DepartureLeftEarly
	}
	return DepartureOnTime
}

// DayOf truncates a timestamp to its UTC calendar day.
func DayOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
