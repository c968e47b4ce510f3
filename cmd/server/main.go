package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/BRAVO68WEB/railmap-map-india/internal/config"
	"github.com/BRAVO68WEB/railmap-map-india/internal/confirmtkt"
	"github.com/BRAVO68WEB/railmap-map-india/internal/erail"
	"github.com/BRAVO68WEB/railmap-map-india/internal/handlers"
	"github.com/BRAVO68WEB/railmap-map-india/internal/livestatus"
	"github.com/BRAVO68WEB/railmap-map-india/internal/osrm"
	"github.com/BRAVO68WEB/railmap-map-india/internal/railyatri"
	"github.com/BRAVO68WEB/railmap-map-india/internal/rbs"
	"github.com/BRAVO68WEB/railmap-map-india/internal/route"
	"github.com/BRAVO68WEB/railmap-map-india/internal/stations"
	"github.com/BRAVO68WEB/railmap-map-india/internal/trainroute"
	"github.com/BRAVO68WEB/railmap-map-india/internal/trains"
)

func main() {
	// Load base .env first, then .env.local (which overrides for local development)
	_ = godotenv.Load(".env")
	_ = godotenv.Overload(".env.local")

	cfg := config.Load()

	log.Printf("Connecting to station database")
	directory, err := stations.NewDirectory(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to station database: %v", err)
	}
	defer directory.Close()
	log.Println("Station database connection established")

	// Upstream clients
	osrmClient := osrm.NewClient(cfg.OSRMBaseURL)
	rbsClient := rbs.NewClient(cfg.RBSBaseURL)
	erailClient := erail.NewClient(cfg.ErailBaseURL)
	railYatriClient := railyatri.NewClient(cfg.RailYatriBaseURL)
	confirmTktClient := confirmtkt.NewClient(cfg.ConfirmTktBaseURL)

	// Engines
	routeEngine := route.NewEngine(directory, osrmClient, rbsClient)
	trainAggregator := trains.NewAggregator(railYatriClient, erailClient)
	trainRouteEngine := trainroute.NewEngine(erailClient, osrmClient)
	liveStatusEngine := livestatus.NewEngine(confirmTktClient, directory, osrmClient)

	// Handlers
	routeHandler := handlers.NewRouteHandler(routeEngine)
	trainsHandler := handlers.NewTrainsHandler(trainAggregator, erailClient, trainRouteEngine)
	liveStatusHandler := handlers.NewLiveStatusHandler(liveStatusEngine)
	stationsHandler := handlers.NewStationsHandler(directory)

	// Setup router
	r := chi.NewRouter()
	r.Use(handlers.RequestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
	}))

	r.Get("/api/route", routeHandler.GetRoute)
	r.Get("/api/trains", trainsHandler.ListTrains)
	r.Get("/api/trains/search", trainsHandler.SearchTrains)
	r.Get("/api/trains/route", trainsHandler.GetTrainRoute)
	r.Get("/api/live-status", liveStatusHandler.GetLiveStatus)
	r.Get("/api/stations/search", stationsHandler.SearchStations)

	// Health check endpoint with database connectivity test
	r.Get("/api/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := directory.Ping(ctx); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"error","database":"disconnected"}`))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","database":"connected"}`))
	})

	log.Printf("Server starting on :%s", cfg.Port)
	log.Println("Endpoints:")
	log.Println("  GET /api/route?from=&to=")
	log.Println("  GET /api/trains?from=&to=")
	log.Println("  GET /api/trains/search?q=")
	log.Println("  GET /api/trains/route?trainNo=")
	log.Println("  GET /api/live-status?trainNo=&date=")
	log.Println("  GET /api/stations/search?q=")
	log.Println("  GET /api/health")

	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
