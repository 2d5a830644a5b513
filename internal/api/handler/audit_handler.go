package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/verseyou/verse-api/internal/core/ports"
)

const defaultAuditLimit = 100

type AuditHandler struct {
	audit ports.AuditRepository
}

func NewAuditHandler(audit ports.AuditRepository) *AuditHandler {
	return &AuditHandler{audit: audit}
}

// List returns the most recent audit records. Admin only.
//
// @Summary      List audit records
// @Tags         audit
// @Produce      json
// @Param        limit  query    int  false  "Maximum records to return"
// @Success      200    {array}  domain.AuditRecord
// @Security     BearerAuth
// @Router       /api/audit [get]
func (h *AuditHandler) List(c echo.Context) error {
	limit := int64(defaultAuditLimit)
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be a positive integer")
		}
		limit = n
	}

	records, err := h.audit.List(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, records)
}
