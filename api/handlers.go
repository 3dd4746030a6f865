package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	analyticsapp "bikestore/internal/analytics/application"
	analyticsdomain "bikestore/internal/analytics/domain"
	exportapp "bikestore/internal/export/application"
	exportdomain "bikestore/internal/export/domain"
	shareddomain "bikestore/internal/shared/domain"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// errBadRequest paramètre de requête invalide
var errBadRequest = errors.New("bad request")

// Limits limites par défaut des classements
type Limits struct {
	Top   int
	Staff int
}

// Handlers contient tous les handlers de l'API de reporting
type Handlers struct {
	dashboard     *analyticsapp.DashboardService
	exportService *exportapp.ExportService
	limits        Limits
	logger        *zap.Logger
}

// NewHandlers crée une nouvelle instance des handlers
func NewHandlers(
	dashboard *analyticsapp.DashboardService,
	exportService *exportapp.ExportService,
	limits Limits,
	logger *zap.Logger,
) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	if limits.Top <= 0 {
		limits.Top = analyticsdomain.DefaultLimit
	}
	if limits.Staff <= 0 {
		limits.Staff = analyticsdomain.DefaultStaffLimit
	}
	return &Handlers{
		dashboard:     dashboard,
		exportService: exportService,
		limits:        limits,
		logger:        logger,
	}
}

// Register déclare les routes sur le moteur gin
func (h *Handlers) Register(r *gin.Engine) {
	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/filters", h.GetFilters)
		api.GET("/stats", h.GetStats)
		api.GET("/reports/:report", h.GetReport)
		api.GET("/export/:report", h.Export)
		api.POST("/reload", h.Reload)
	}
}

// Health handler pour GET /api/health
func (h *Handlers) Health(c *gin.Context) {
	status := gin.H{"status": "ok"}
	if ds, err := h.dashboard.Dataset(); err == nil {
		status["generation"] = ds.Generation().String()
		status["loaded_at"] = ds.LoadedAt()
	} else {
		status["status"] = "no_data"
	}
	c.JSON(http.StatusOK, status)
}

// GetFilters handler pour GET /api/filters
func (h *Handlers) GetFilters(c *gin.Context) {
	filters, err := h.dashboard.Filters()
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"categories": filters.Categories,
		"date_range": dateRangeJSON(filters.DateRange),
	})
}

// GetStats handler pour GET /api/stats
func (h *Handlers) GetStats(c *gin.Context) {
	criteria, err := h.criteria(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	stats, err := h.dashboard.GetStats(criteria)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"criteria":                 criteriaJSON(stats.Criteria()),
		"empty":                    stats.IsEmpty(),
		"overview":                 stats.Overview(),
		"by_category":              stats.ByCategory(),
		"by_month":                 stats.ByMonth(),
		"top_products":             stats.TopProducts(),
		"top_staff":                stats.TopStaff(),
		"categories_without_sales": stats.CategoriesWithoutSales(),
	})
}

// GetReport handler pour GET /api/reports/:report
func (h *Handlers) GetReport(c *gin.Context) {
	criteria, err := h.criteria(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	summary, err := h.dashboard.Summary(c.Param("report"), criteria)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// Export handler pour GET /api/export/:report?format=csv|parquet
func (h *Handlers) Export(c *gin.Context) {
	format, err := exportdomain.ParseExportFormat(c.Query("format"))
	if err != nil {
		h.fail(c, err)
		return
	}
	criteria, err := h.criteria(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	result, err := h.exportService.Export(c.Request.Context(), exportdomain.ExportType(c.Param("report")), format, criteria)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+result.Job.FileName())
	c.Header("X-Export-Job", result.Job.ID().String())
	c.Data(http.StatusOK, format.ContentType(), result.Data)
}

// Reload handler pour POST /api/reload
func (h *Handlers) Reload(c *gin.Context) {
	if err := h.dashboard.Reload(c.Request.Context()); err != nil {
		h.fail(c, err)
		return
	}
	ds, _ := h.dashboard.Dataset()
	c.JSON(http.StatusOK, gin.H{"generation": ds.Generation().String()})
}

// criteria construit les critères depuis la query string
// Les paramètres absents prennent la valeur par défaut (périmètre observé).
// "categories" présent mais vide sélectionne explicitement zéro catégorie.
func (h *Handlers) criteria(c *gin.Context) (analyticsdomain.Criteria, error) {
	criteria, err := h.dashboard.DefaultCriteria()
	if err != nil {
		return analyticsdomain.Criteria{}, err
	}
	if criteria, err = criteria.WithLimit(h.limits.Top); err != nil {
		return criteria, err
	}
	if criteria, err = criteria.WithStaffLimit(h.limits.Staff); err != nil {
		return criteria, err
	}

	if values, ok := c.GetQueryArray("categories"); ok {
		criteria = criteria.WithCategories(splitList(values))
	}

	dr := criteria.DateRange()
	start, end := dr.Start(), dr.End()
	if v, ok := c.GetQuery("from"); ok {
		if start, err = shareddomain.ParseDate(v); err != nil {
			return criteria, fmt.Errorf("%w: from: %v", errBadRequest, err)
		}
	}
	if v, ok := c.GetQuery("to"); ok {
		if end, err = shareddomain.ParseDate(v); err != nil {
			return criteria, fmt.Errorf("%w: to: %v", errBadRequest, err)
		}
	}
	criteria = criteria.WithDateRange(shareddomain.NewDateRange(start, end))

	if v, ok := c.GetQuery("min_amount"); ok {
		m, err := shareddomain.ParseMoney(v)
		if err != nil {
			return criteria, fmt.Errorf("%w: min_amount: %v", errBadRequest, err)
		}
		if criteria, err = criteria.WithMinAmount(m); err != nil {
			return criteria, fmt.Errorf("%w: %v", errBadRequest, err)
		}
	}
	if v, ok := c.GetQuery("limit"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return criteria, fmt.Errorf("%w: limit: %v", errBadRequest, err)
		}
		if criteria, err = criteria.WithLimit(n); err != nil {
			return criteria, fmt.Errorf("%w: %v", errBadRequest, err)
		}
	}
	if v, ok := c.GetQuery("staff_limit"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return criteria, fmt.Errorf("%w: staff_limit: %v", errBadRequest, err)
		}
		if criteria, err = criteria.WithStaffLimit(n); err != nil {
			return criteria, fmt.Errorf("%w: %v", errBadRequest, err)
		}
	}
	return criteria, nil
}

// fail traduit une erreur applicative en réponse HTTP
func (h *Handlers) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errBadRequest):
		status = http.StatusBadRequest
	case errors.Is(err, analyticsapp.ErrUnknownReport):
		status = http.StatusNotFound
	case errors.Is(err, analyticsapp.ErrNoDataset):
		status = http.StatusServiceUnavailable
	case errors.Is(err, exportdomain.ErrInvalidExportType):
		status = http.StatusNotFound
	case errors.Is(err, exportdomain.ErrInvalidExportFormat):
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		h.logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func splitList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func dateRangeJSON(dr shareddomain.DateRange) gin.H {
	return gin.H{
		"from": dr.Start().Format(shareddomain.DateLayout),
		"to":   dr.End().Format(shareddomain.DateLayout),
	}
}

func criteriaJSON(c analyticsdomain.Criteria) gin.H {
	return gin.H{
		"categories":  c.Categories(),
		"date_range":  dateRangeJSON(c.DateRange()),
		"min_amount":  c.MinAmount(),
		"limit":       c.Limit(),
		"staff_limit": c.StaffLimit(),
	}
}
