package handler

import (
	"net/http"

	"daily-board/internal/calendar"
	"daily-board/internal/logger"
	"daily-board/internal/model"
	"daily-board/internal/service"

	"github.com/gin-gonic/gin"
)

type DailyHandler struct {
	daily *service.DailyService
}

func NewDailyHandler(daily *service.DailyService) *DailyHandler {
	return &DailyHandler{daily: daily}
}

// GET /api/reports/:date
func (h *DailyHandler) OpenDay(c *gin.Context) {
	date, ok := h.dateParam(c)
	if !ok {
		return
	}
	view, err := h.daily.OpenDay(c.Request.Context(), memberID(c), date)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// GET /api/reports/:date/raw
func (h *DailyHandler) GetDailyReport(c *gin.Context) {
	date, ok := h.dateParam(c)
	if !ok {
		return
	}
	view, err := h.daily.GetDailyReport(c.Request.Context(), memberID(c), date)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// GET /api/week/:date
func (h *DailyHandler) Week(c *gin.Context) {
	date, ok := h.dateParam(c)
	if !ok {
		return
	}
	week, err := h.daily.WeekView(c.Request.Context(), memberID(c), date)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, week)
}

// POST /api/reports/:date/toggle
func (h *DailyHandler) ToggleTask(c *gin.Context) {
	date, ok := h.dateParam(c)
	if !ok {
		return
	}
	var req model.ToggleTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	viewed, err := calendar.Parse(req.ViewedDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid viewed_date"})
		return
	}
	view, rej, err := h.daily.ToggleTask(c.Request.Context(), memberID(c), date, req.TaskID, req.Completed, viewed)
	h.respond(c, view, rej, err)
}

// POST /api/reports/:date/toggle-cross
func (h *DailyHandler) ToggleTaskAcrossDays(c *gin.Context) {
	viewed, ok := h.dateParam(c)
	if !ok {
		return
	}
	var req model.CrossDayToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	dueDate, err := calendar.Parse(req.DueDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid due_date"})
		return
	}
	view, rej, err := h.daily.ToggleTaskAcrossDays(c.Request.Context(), memberID(c), viewed, req.TaskID, dueDate, req.Completed)
	h.respond(c, view, rej, err)
}

// POST /api/reports/:date/assign
func (h *DailyHandler) AssignTask(c *gin.Context) {
	date, ok := h.dateParam(c)
	if !ok {
		return
	}
	var req model.AssignTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	view, rej, err := h.daily.AssignTask(c.Request.Context(), memberID(c), date, req.TaskID)
	h.respond(c, view, rej, err)
}

// POST /api/reports/:date/absence
func (h *DailyHandler) MarkAbsent(c *gin.Context) {
	date, ok := h.dateParam(c)
	if !ok {
		return
	}
	var req model.AbsenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	view, rej, err := h.daily.MarkAbsent(c.Request.Context(), memberID(c), date, req.Absent)
	h.respond(c, view, rej, err)
}

// POST /api/reports/:date/attendance
func (h *DailyHandler) UpdateCheckInOut(c *gin.Context) {
	date, ok := h.dateParam(c)
	if !ok {
		return
	}
	var req model.AttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	view, rej, err := h.daily.UpdateCheckInOut(c.Request.Context(), memberID(c), date, req.CheckIn, req.CheckOut)
	h.respond(c, view, rej, err)
}

// POST /api/reports/rollover
func (h *DailyHandler) Rollover(c *gin.Context) {
	var req model.RolloverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	from, err := calendar.Parse(req.From)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from"})
		return
	}
	to, err := calendar.Parse(req.To)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to"})
		return
	}
	if err := h.daily.MoveUnfinished(c.Request.Context(), memberID(c), from, to); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func memberID(c *gin.Context) int { return c.GetInt("user_id") }

func (h *DailyHandler) dateParam(c *gin.Context) (calendar.Date, bool) {
	date, err := calendar.Parse(c.Param("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
		return calendar.Date{}, false
	}
	return date, true
}

// respond maps the three-way service outcome: gate rejections are 409
// with the reason payload, everything else 200 or 500.
func (h *DailyHandler) respond(c *gin.Context, view *model.DayView, rej *service.Rejection, err error) {
	if err != nil {
		h.fail(c, err)
		return
	}
	if rej != nil {
		logger.Info("gate.rejected", "code", rej.Code, "date", rej.Date, "viewed", rej.ViewedDate)
		c.JSON(http.StatusConflict, gin.H{
			"code":        rej.Code,
			"date":        rej.Date,
			"today":       rej.Today,
			"viewed_date": rej.ViewedDate,
			"message":     rej.Message(),
		})
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *DailyHandler) fail(c *gin.Context, err error) {
	logger.Error("request.failed", "path", c.FullPath(), "err", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
