package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/tutorhub-backend/internal/response"
	"github.com/stemsi/tutorhub-backend/internal/service"
	"github.com/xuri/excelize/v2"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler serves spreadsheet exports.
type ReportHandler struct {
	reportService *service.ReportService
	log           zerolog.Logger
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService *service.ReportService, log zerolog.Logger) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		log:           log.With().Str("component", "report_handler").Logger(),
	}
}

// AttendanceReport godoc
// GET /api/v1/reports/attendance.xlsx?standard_id=&from=&to=
// Register of every student against every lecture of the standard in the
// range, plus a per-student summary sheet.
func (h *ReportHandler) AttendanceReport(c *gin.Context) {
	standardID, ok := queryInt(c, "standard_id")
	if !ok || standardID == nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}
	from, ok := queryDate(c, "from")
	if !ok || from == nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidDate)
		return
	}
	to, ok := queryDate(c, "to")
	if !ok || to == nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidDate)
		return
	}

	f, filename, err := h.reportService.AttendanceWorkbook(c.Request.Context(), *standardID, *from, *to)
	if err != nil {
		failFromError(c, err)
		return
	}
	h.writeWorkbook(c, f, filename)
}

// ProgressReport godoc
// GET /api/v1/reports/progress.xlsx?student_id=
func (h *ReportHandler) ProgressReport(c *gin.Context) {
	studentID, ok := queryInt(c, "student_id")
	if !ok || studentID == nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	f, filename, err := h.reportService.ProgressWorkbook(c.Request.Context(), *studentID)
	if err != nil {
		failFromError(c, err)
		return
	}
	h.writeWorkbook(c, f, filename)
}

func (h *ReportHandler) writeWorkbook(c *gin.Context, f *excelize.File, filename string) {
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		failFromError(c, fmt.Errorf("write workbook: %w", err))
		return
	}

	h.log.Debug().Str("file", filename).Int("bytes", buf.Len()).Msg("Report generated")
	response.Attachment(c, xlsxContentType, filename, buf.Bytes(), false)
}
