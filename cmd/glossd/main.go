package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/lavendersgloss/glossd/config"
	"github.com/lavendersgloss/glossd/internal/app"
	"github.com/lavendersgloss/glossd/internal/shopapi"
	"github.com/lavendersgloss/glossd/internal/webserver"
)

var (
	h        = flag.Bool("h", false, "help usage")
	conffile = flag.String("c", "", "config yaml file")
	port     = flag.Int("p", 0, "listen port override")
	initdb   = flag.Bool("initdb", false, "drop and recreate all tables, then exit")
)

func main() {
	flag.Parse()
	if *h {
		flag.Usage()
		os.Exit(0)
	}

	cfg := config.LoadConfig(*conffile)
	if envPort := os.Getenv("PORT"); envPort != "" && *port == 0 {
		fmt.Sscanf(envPort, "%d", port)
	}
	if *port > 0 {
		cfg.Web.Port = *port
	}
	cfg.InitDirs()

	application := app.NewApplication(cfg)
	application.Init(cfg)
	defer application.Release()

	if *initdb {
		application.InitDb()
		zap.S().Info("database initialized")
		return
	}

	webserver.Init(cfg, application.DB())
	shopapi.RegisterRoutes(application)

	if err := webserver.Instance().Listen(); err != nil {
		zap.S().Fatalf("web server stopped: %v", err)
	}
}
