package protocal

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/dhyanpatel/TourneyFlights/configs"
	httpAdapter "github.com/dhyanpatel/TourneyFlights/internal/adapters/input/http"
	"github.com/dhyanpatel/TourneyFlights/internal/adapters/output/diskcache"
	"github.com/dhyanpatel/TourneyFlights/internal/adapters/output/geo"
	"github.com/dhyanpatel/TourneyFlights/internal/adapters/output/memory"
	"github.com/dhyanpatel/TourneyFlights/internal/adapters/output/postgres"
	"github.com/dhyanpatel/TourneyFlights/internal/adapters/output/skypricer"
	"github.com/dhyanpatel/TourneyFlights/internal/application"
	"github.com/dhyanpatel/TourneyFlights/pkg/database_driver/gorm"

	swagger "github.com/arsmn/fiber-swagger/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/sirupsen/logrus"
)

type config struct {
	ENV string `mapstructure:"env"`
}

// ServeHTTP func
func ServeHTTP() error {
	app := fiber.New()
	var cfg config
	flag.StringVar(&cfg.ENV, "env", "", "the environment to use")
	flag.Parse()
	configs.InitViper("./configs", cfg.ENV)
	logrus.Info(configs.GetViper().Env)
	if configs.GetViper().App.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept,Authorization",
	}))
	dbConGorm, err := gorm.ConnectToPostgreSQL(
		configs.GetViper().Postgres.Host,
		configs.GetViper().Postgres.Port,
		configs.GetViper().Postgres.Username,
		configs.GetViper().Postgres.Password,
		configs.GetViper().Postgres.DbName,
		configs.GetViper().Postgres.SSLMode,
	)
	if err != nil {
		return err
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	go func() {
		for range c {
			log.Println("Gracefull shut down ...")
			gorm.DisconnectPostgres(dbConGorm.Postgres)
			err := app.Shutdown()
			if err != nil {
				log.Println("Error when shutdown server: ", err)
			}
		}
	}()

	// Wire up the hexagonal architecture layers
	// Output adapters
	tournamentRepo := postgres.NewTournamentRepository(dbConGorm.Postgres)
	airportLookup := geo.NewStaticAirportLookup()
	quoteCache := diskcache.New(configs.GetViper().Cache.Dir)
	cacheTTL := time.Duration(configs.GetViper().Cache.TTLSeconds) * time.Second
	flightClient := skypricer.NewClient(configs.GetViper().Provider, quoteCache, cacheTTL)
	sessionStore := memory.NewSessionStore()

	// Application service (use case)
	srv := application.NewFlightSearchService(
		sessionStore,
		flightClient,
		tournamentRepo,
		airportLookup,
		time.Duration(configs.GetViper().Session.TTLMinutes)*time.Minute,
		configs.GetViper().Session.TripLengthDays,
		configs.GetViper().Session.MaxLookups,
	)

	// Input adapter (HTTP handler)
	hdl := httpAdapter.New(srv, dbConGorm.Postgres)

	app.Get("/swagger/*", swagger.HandlerDefault) // default
	app.Get("/health", hdl.HealthCheck)

	sessions := app.Group("/v1/api/sessions")
	{
		sessions.Post("/", hdl.CreateSession)
		sessions.Get("/:id", hdl.GetSession)
		sessions.Delete("/:id", hdl.DeleteSession)
		sessions.Post("/:id/search", hdl.Search)
		sessions.Post("/:id/search/stream", hdl.SearchStream)
		sessions.Get("/:id/quotes", hdl.Quotes)
	}

	err = app.Listen(":" + configs.GetViper().App.Port)
	if err != nil {
		return err
	}

	logrus.Println("Listerning on port: ", configs.GetViper().App.Port)
	return nil
}
