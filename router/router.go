package router

import (
	"net/http"

	"github.com/benbjohnson/clock"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"

	"github.com/psat-tools/psat-server/config"
	"github.com/psat-tools/psat-server/endpoints"
	"github.com/psat-tools/psat-server/logger"
	metricsConf "github.com/psat-tools/psat-server/metrics/config"
	"github.com/psat-tools/psat-server/report"
	"github.com/psat-tools/psat-server/util/uuidutil"
	"github.com/psat-tools/psat-server/version"
)

type NoCache struct {
	Handler http.Handler
}

func (m NoCache) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Add("Cache-Control", "no-cache, no-store, must-revalidate")
	w.Header().Add("Pragma", "no-cache")
	w.Header().Add("Expires", "0")
	m.Handler.ServeHTTP(w, r)
}

type Router struct {
	*httprouter.Router
	MetricsEngine *metricsConf.DetailedMetricsEngine
	Reports       *report.Store
}

// New wires the analysis endpoints and their dependencies.
func New(cfg *config.Configuration) (r *Router, err error) {
	r = &Router{
		Router: httprouter.New(),
	}

	r.MetricsEngine = metricsConf.NewMetricsEngine(cfg)
	r.Reports = report.NewStore(cfg.Reports.TTL(), cfg.Reports.CleanupInterval(), logger.NewGlogLogger())
	generator := report.NewGenerator(clock.New(), uuidutil.UUIDRandomGenerator{}, r.MetricsEngine)

	r.POST("/cookies/blocking-status", endpoints.NewBlockingStatusEndpoint(cfg.MaxRequestSize, r.MetricsEngine))
	r.POST("/auctions/bids", endpoints.NewAuctionBidsEndpoint(cfg.MaxRequestSize, r.MetricsEngine))
	r.POST("/reports", endpoints.NewReportEndpoint(cfg.MaxRequestSize, generator, r.Reports, r.MetricsEngine))
	r.GET("/reports/:id", endpoints.NewReportFetchEndpoint(r.Reports, r.MetricsEngine))
	r.GET("/status", endpoints.NewStatusEndpoint(cfg.StatusResponse))
	r.HandlerFunc(http.MethodGet, "/version", endpoints.NewVersionEndpoint(version.Ver, version.Rev))

	return r, nil
}

// SupportCORS lets the DevTools extension and replay tooling call the analysis endpoints.
// Reports carry no credentials, so no cookies are accepted from the caller.
func SupportCORS(handler http.Handler, cfg config.CORS) http.Handler {
	allowed := make(map[string]struct{}, len(cfg.AllowedOrigins))
	for _, origin := range cfg.AllowedOrigins {
		allowed[origin] = struct{}{}
	}

	c := cors.New(cors.Options{
		AllowOriginFunc: func(origin string) bool {
			if cfg.AllowsAll() {
				return true
			}
			_, ok := allowed[origin]
			return ok
		},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Origin", "X-Requested-With", "Content-Type", "Accept"}})
	return c.Handler(handler)
}
