package main

import (
	"flag"

	"github.com/golang/glog"
	"github.com/spf13/viper"

	"github.com/psat-tools/psat-server/config"
	"github.com/psat-tools/psat-server/router"
	"github.com/psat-tools/psat-server/server"
	"github.com/psat-tools/psat-server/version"
)

func main() {
	flag.Parse() // required for glog flags and testing package flags

	cfg, err := loadConfig()
	if err != nil {
		glog.Exitf("Configuration could not be loaded or did not pass validation: %v", err)
	}

	err = serve(cfg)
	if err != nil {
		glog.Exitf("psat-server failed: %v", err)
	}
}

const configFileName = "psat"

func loadConfig() (*config.Configuration, error) {
	v := viper.New()
	config.SetupViper(v, configFileName)
	return config.New(v)
}

func serve(cfg *config.Configuration) error {
	ver := version.Ver
	if ver == "" {
		ver = version.VerDev
	}
	glog.Infof("psat-server %s (revision %q) starting", ver, version.Rev)

	r, err := router.New(cfg)
	if err != nil {
		return err
	}
	if r.MetricsEngine.PrometheusMetrics != nil {
		glog.Infof("Serving %v on port %d", r.MetricsEngine.PrometheusMetrics, cfg.Metrics.Prometheus.Port)
	}

	corsRouter := router.SupportCORS(r, cfg.CORS)
	return server.Listen(cfg, router.NoCache{Handler: corsRouter}, router.Admin(r.MetricsEngine), r.MetricsEngine)
}
