package handler

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/tutorhub-backend/internal/middleware"
	"github.com/stemsi/tutorhub-backend/internal/model"
	"github.com/stemsi/tutorhub-backend/internal/response"
	"github.com/stemsi/tutorhub-backend/internal/service"
	"github.com/stemsi/tutorhub-backend/internal/timezone"
	"github.com/stemsi/tutorhub-backend/internal/validator"
)

// LectureHandler handles lecture CRUD and weekly schedule endpoints.
type LectureHandler struct {
	lectureService *service.LectureService
	reportService  *service.ReportService
	loc            *time.Location
}

// NewLectureHandler creates a new LectureHandler.
func NewLectureHandler(lectureService *service.LectureService, reportService *service.ReportService, loc *time.Location) *LectureHandler {
	return &LectureHandler{
		lectureService: lectureService,
		reportService:  reportService,
		loc:            loc,
	}
}

// List godoc
// GET /api/v1/lectures?standard_id=&tutor_id=&subject_id=&from=&to=
func (h *LectureHandler) List(c *gin.Context) {
	var f model.LectureFilter
	var ok bool

	if f.StandardID, ok = queryInt(c, "standard_id"); !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}
	if f.TutorID, ok = queryInt(c, "tutor_id"); !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}
	if f.SubjectID, ok = queryInt(c, "subject_id"); !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}
	if f.From, ok = queryDate(c, "from"); !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidDate)
		return
	}
	if f.To, ok = queryDate(c, "to"); !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidDate)
		return
	}

	lectures, err := h.lectureService.List(c.Request.Context(), f)
	if err != nil {
		failFromError(c, err)
		return
	}
	if lectures == nil {
		lectures = []model.Lecture{}
	}

	response.Success(c, http.StatusOK, gin.H{"lectures": lectures})
}

// Get godoc
// GET /api/v1/lectures/:id
func (h *LectureHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	lecture, err := h.lectureService.GetByID(c.Request.Context(), id)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"lecture": lecture})
}

// Create godoc
// POST /api/v1/lectures
func (h *LectureHandler) Create(c *gin.Context) {
	var req model.LectureRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	lecture, err := h.lectureService.Create(c.Request.Context(), &req)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"lecture": lecture})
}

// Update godoc
// PUT /api/v1/lectures/:id
func (h *LectureHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.LectureRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	lecture, err := h.lectureService.Update(c.Request.Context(), id, &req)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"lecture": lecture})
}

// Delete godoc
// DELETE /api/v1/lectures/:id
// Attendance and marks of the lecture are removed with it.
func (h *LectureHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.lectureService.Delete(c.Request.Context(), id); err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "lecture deleted successfully"})
}

// weekRequest resolves the reference date and scope of a week query.
// Students always get their own standard.
func (h *LectureHandler) weekRequest(c *gin.Context) (time.Time, service.ScheduleScope, bool) {
	ref, err := timezone.ParseDateOr(c.Query("date"), h.loc)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidDate)
		return time.Time{}, service.ScheduleScope{}, false
	}

	actor := middleware.GetActor(c)
	if actor.Role == model.RoleStudent {
		if actor.StandardID == nil {
			response.Fail(c, http.StatusUnprocessableEntity, response.ErrStandardRequired)
			return time.Time{}, service.ScheduleScope{}, false
		}
		return ref, service.ScheduleScope{StandardID: actor.StandardID}, true
	}

	var scope service.ScheduleScope
	var ok bool
	if scope.StandardID, ok = queryInt(c, "standard_id"); !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return time.Time{}, service.ScheduleScope{}, false
	}
	if scope.TutorID, ok = queryInt(c, "tutor_id"); !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return time.Time{}, service.ScheduleScope{}, false
	}
	return ref, scope, true
}

// Week godoc
// GET /api/v1/lectures/week?date=&standard_id=&tutor_id=
// Returns the Sunday to Saturday week containing date, bucketed by weekday.
func (h *LectureHandler) Week(c *gin.Context) {
	ref, scope, ok := h.weekRequest(c)
	if !ok {
		return
	}

	week, err := h.lectureService.WeeklySchedule(c.Request.Context(), ref, scope)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, week)
}

// WeekCalendar godoc
// GET /api/v1/lectures/week.ics?date=&standard_id=&tutor_id=
// Same week as an iCalendar feed.
func (h *LectureHandler) WeekCalendar(c *gin.Context) {
	ref, scope, ok := h.weekRequest(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.reportService.WeekCalendar(c.Request.Context(), &buf, ref, scope); err != nil {
		failFromError(c, err)
		return
	}

	response.Attachment(c, "text/calendar; charset=utf-8", "schedule.ics", buf.Bytes(), true)
}
