package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/bjo163/orderdesk/config"
	"github.com/bjo163/orderdesk/internal/adminapi"
	"github.com/bjo163/orderdesk/internal/app"
	"github.com/bjo163/orderdesk/internal/webserver"
)

var (
	BuildVersion = "1.0.0"
	BuildTime    = ""
)

var (
	h        = flag.Bool("h", false, "help usage")
	showVer  = flag.Bool("v", false, "show version")
	conffile = flag.String("c", "", "config yaml file")
	initdb   = flag.Bool("initdb", false, "drop and re-create all tables")
	seed     = flag.Bool("seed", false, "load demo data into empty tables")
)

// PrintVersion Print version information
func PrintVersion() {
	fmt.Println("OrderDesk version " + BuildVersion)
	if BuildTime != "" {
		fmt.Println("Build time " + BuildTime)
	}
}

//go:generate swag init -g main.go -d ./,../../internal/adminapi,../../internal/domain -o ../../docs

// @title OrderDesk API
// @version 1.0
// @description Order management backend: administrators, customers, catalog, orders, ordered items and payments.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	flag.Parse()

	if *showVer {
		PrintVersion()
		os.Exit(0)
	}

	if *h {
		flag.Usage()
		os.Exit(0)
	}

	cfg, err := config.LoadConfig(*conffile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := cfg.InitDirs(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	application := app.NewApplication(cfg)
	if err := application.Init(cfg); err != nil {
		zap.S().Fatal(err)
	}
	defer application.Release()

	if err := run(application); err != nil {
		zap.S().Error(err)
		application.Release()
		os.Exit(1)
	}
}

func run(application *app.Application) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *initdb {
		application.InitDb()
		zap.S().Info("database tables re-created")
		if !*seed {
			return nil
		}
	}
	if *seed {
		if err := application.Seed(ctx); err != nil {
			return err
		}
		zap.S().Info("demo data loaded")
		return nil
	}

	srv := webserver.NewServer(application.Config(), application.Tokens())
	adminapi.Register(srv, application.Store(), application.Auth(), application.Bus())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(srv.Start)
	g.Go(func() error {
		<-gctx.Done()
		zap.S().Info("shutting down web server")
		return srv.Shutdown(context.Background())
	})
	return g.Wait()
}
