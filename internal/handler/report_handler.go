package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"rxbill/internal/csvexport"
	"rxbill/internal/service"
)

// ReportHandler handles statutory report endpoints.
type ReportHandler struct {
	reportService service.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// parsePeriod reads the required registration_id, from, and to query
// params. The to date is exclusive after being advanced by one day, so
// from=2024-04-01&to=2024-04-30 covers the whole of April 30th.
func parsePeriod(c *gin.Context) (regID uuid.UUID, from, to time.Time, err error) {
	regID, err = uuid.Parse(c.Query("registration_id"))
	if err != nil {
		return uuid.Nil, time.Time{}, time.Time{}, fmt.Errorf("invalid 'registration_id': must be a valid UUID")
	}

	from, err = time.Parse("2006-01-02", c.Query("from"))
	if err != nil {
		return uuid.Nil, time.Time{}, time.Time{}, fmt.Errorf("invalid 'from' date: must be YYYY-MM-DD")
	}
	to, err = time.Parse("2006-01-02", c.Query("to"))
	if err != nil {
		return uuid.Nil, time.Time{}, time.Time{}, fmt.Errorf("invalid 'to' date: must be YYYY-MM-DD")
	}
	to = to.AddDate(0, 0, 1)
	if !to.After(from) {
		return uuid.Nil, time.Time{}, time.Time{}, fmt.Errorf("'to' must not be before 'from'")
	}
	return regID, from, to, nil
}

// GSTSummary handles GET /api/v1/reports/gst
// Returns the rate-wise (HSN, rate) bucket summary as JSON, or as a CSV
// download when format=csv.
func (h *ReportHandler) GSTSummary(c *gin.Context) {
	pharmacyID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	regID, from, to, err := parsePeriod(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	report, err := h.reportService.BucketSummary(c.Request.Context(), pharmacyID, regID, from, to)
	if err != nil {
		HandleError(c, err)
		return
	}

	if c.Query("format") != "csv" {
		RespondOK(c, report)
		return
	}

	filename := csvexport.BuildFilename(report.Registration.LegalName)
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Writer.WriteHeader(http.StatusOK)

	if _, err := c.Writer.Write(csvexport.BOM); err != nil {
		return
	}
	w := csvexport.NewWriter(c.Writer)
	if err := w.WriteHeader(); err != nil {
		return
	}
	if err := w.WriteBuckets(report.Buckets); err != nil {
		return
	}
	w.Flush()
}
