package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/brewlane/cafe-backoffice-go/internal/domain/attendance"
	"github.com/brewlane/cafe-backoffice-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type AttendanceHandler interface {
	TimeIn(w http.ResponseWriter, r *http.Request)
	BreakStart(w http.ResponseWriter, r *http.Request)
	BreakEnd(w http.ResponseWriter, r *http.Request)
	TimeOut(w http.ResponseWriter, r *http.Request)
	CurrentSession(w http.ResponseWriter, r *http.Request)
	MyLogs(w http.ResponseWriter, r *http.Request)
	ListLogs(w http.ResponseWriter, r *http.Request)
	CorrectTimeOut(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// TimeIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) TimeIn(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.TimeIn(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Clocked in", result)
}

// BreakStart implements AttendanceHandler.
func (h *attendanceHandlerImpl) BreakStart(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.BreakStart(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Break started", result)
}

// BreakEnd implements AttendanceHandler.
func (h *attendanceHandlerImpl) BreakEnd(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.BreakEnd(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Break ended", result)
}

// TimeOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) TimeOut(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.TimeOut(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Clocked out", result)
}

// CurrentSession implements AttendanceHandler.
func (h *attendanceHandlerImpl) CurrentSession(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.CurrentSession(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// MyLogs implements AttendanceHandler.
func (h *attendanceHandlerImpl) MyLogs(w http.ResponseWriter, r *http.Request) {
	filter := parseLogFilter(r)

	result, err := h.attendanceService.MyLogs(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListLogs implements AttendanceHandler.
func (h *attendanceHandlerImpl) ListLogs(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	filter := parseLogFilter(r)

	result, err := h.attendanceService.ListLogs(r.Context(), employeeID, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// CorrectTimeOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) CorrectTimeOut(w http.ResponseWriter, r *http.Request) {
	var req attendance.CorrectTimeOutRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CorrectTimeOut decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.LogID = chi.URLParam(r, "logID")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.CorrectTimeOut(r.Context(), req)
	if err != nil {
		slog.Error("CorrectTimeOut service error", "error", err, "log_id", req.LogID)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Time out corrected", result)
}

func parseLogFilter(r *http.Request) attendance.LogFilter {
	var filter attendance.LogFilter

	if startDate := r.URL.Query().Get("start_date"); startDate != "" {
		filter.StartDate = &startDate
	}
	if endDate := r.URL.Query().Get("end_date"); endDate != "" {
		filter.EndDate = &endDate
	}
	if page, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil {
		filter.Page = page
	}
	if limit, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil {
		filter.Limit = limit
	}
	filter.SortOrder = r.URL.Query().Get("sort")

	return filter
}
