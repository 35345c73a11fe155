package handlers

import (
	"net/http"

	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/api/dto"
	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/domain/attendance"
	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/domain/task"
	"github.com/Aqueel-Ansari-dev/fieldops-backend/pkg/apperrors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// respondError translates a service error into an HTTP response. Every
// handler funnels its errors through here so the status mapping stays
// in one place.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch apperrors.KindOf(err) {
	case apperrors.KindValidation:
		status = http.StatusBadRequest
	case apperrors.KindNotFound:
		status = http.StatusNotFound
	case apperrors.KindConflict:
		status = http.StatusConflict
	case apperrors.KindAuthorization:
		status = http.StatusForbidden
	case apperrors.KindDownstream:
		status = http.StatusBadGateway
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// Sessions
func SessionToResponse(s *attendance.AttendanceSession) *dto.SessionResponse {
	if s == nil {
		return nil
	}
	return &dto.SessionResponse{
		ID:               s.ID,
		WorkerID:         s.WorkerID,
		ProjectID:        s.ProjectID,
		Date:             s.Date,
		CheckInTime:      s.CheckInTime,
		CheckInLat:       s.CheckInLat,
		CheckInLng:       s.CheckInLng,
		CheckInSelfie:    s.CheckInSelfie,
		AutoLogged:       s.AutoLogged,
		ArrivalStatus:    string(s.ArrivalStatus),
		CheckOutTime:     s.CheckOutTime,
		CheckOutLat:      s.CheckOutLat,
		CheckOutLng:      s.CheckOutLng,
		CheckOutSelfie:   s.CheckOutSelfie,
		DepartureStatus:  string(s.DepartureStatus),
		CompletedTaskIDs: []uuid.UUID(s.CompletedTaskIDs),
		Notes:            s.Notes,
		ReviewStatus:     string(s.ReviewStatus),
		ReviewedBy:       s.ReviewedBy,
		ReviewedAt:       s.ReviewedAt,
		ReviewNotes:      s.ReviewNotes,
		TrackLength:      len(s.LocationTrack),
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}
}

func SessionsToResponse(sessions []attendance.AttendanceSession) []dto.SessionResponse {
	response := make([]dto.SessionResponse, len(sessions))
	for i := range sessions {
		response[i] = *SessionToResponse(&sessions[i])
	}
	return response
}

func CheckoutToResponse(r *attendance.CheckoutResult) *dto.CheckOutResponse {
	if r == nil {
		return nil
	}
	outcomes := make([]dto.TaskOutcomeResponse, len(r.TaskOutcomes))
	for i, o := range r.TaskOutcomes {
		outcomes[i] = dto.TaskOutcomeResponse{TaskID: o.TaskID, Error: o.Error}
	}
	return &dto.CheckOutResponse{
		Session:      SessionToResponse(r.Session),
		TaskOutcomes: outcomes,
		TasksUpdated: r.TasksUpdated,
		TasksFailed:  r.TasksFailed,
	}
}

// Tasks
func TaskToResponse(t *task.Task) *dto.TaskResponse {
	if t == nil {
		return nil
	}
	return &dto.TaskResponse{
		ID:                t.ID,
		Title:             t.Title,
		Description:       t.Description,
		Status:            string(t.Status),
		ProjectID:         t.ProjectID,
		AssigneeID:        t.AssigneeID,
		CreatorID:         t.CreatorID,
		DueDate:           t.DueDate,
		StartTime:         t.StartTime,
		EndTime:           t.EndTime,
		ElapsedSeconds:    t.ElapsedSeconds,
		EmployeeNotes:     t.EmployeeNotes,
		SubmittedMediaURL: t.SubmittedMediaURL,
		ReviewerID:        t.ReviewerID,
		ReviewedAt:        t.ReviewedAt,
		ReviewNotes:       t.ReviewNotes,
		CreatedAt:         t.CreatedAt,
		UpdatedAt:         t.UpdatedAt,
	}
}

func TasksToResponse(tasks []task.Task) []dto.TaskResponse {
	response := make([]dto.TaskResponse, len(tasks))
	for i := range tasks {
		response[i] = *TaskToResponse(&tasks[i])
	}
	return response
}
