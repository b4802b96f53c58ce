package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/talent-matrix/internal/services"
)

// HealthCheck answers liveness checks.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// errorStatus maps service errors to HTTP statuses.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrStudentNotFound),
		errors.Is(err, services.ErrProjectNotFound),
		errors.Is(err, services.ErrAppliedJobNotFound),
		errors.Is(err, services.ErrSkillNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrDuplicateSkill),
		errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrJobAlreadySaved):
		return http.StatusConflict
	case errors.Is(err, services.ErrInvalidSemester),
		errors.Is(err, services.ErrInvalidGrade),
		errors.Is(err, services.ErrInvalidSkillLevel),
		errors.Is(err, services.ErrEmptySkillName),
		errors.Is(err, services.ErrInvalidSearchOption):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func respondError(c *gin.Context, err error) {
	status := errorStatus(err)
	if status == http.StatusInternalServerError {
		slog.Error("request failed", "path", c.FullPath(), "error", err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

// idParam reads a numeric path parameter, answering 400 when it is not one.
func idParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		badRequest(c, "Invalid "+name)
		return 0, false
	}
	return uint(id), true
}
