package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/bersihin/bersihin-api/api"
	"github.com/bersihin/bersihin-api/api/scheduler"
	"github.com/bersihin/bersihin-api/cache"
	"github.com/bersihin/bersihin-api/campaigns"
	"github.com/bersihin/bersihin-api/config"
	"github.com/bersihin/bersihin-api/databases"
	"github.com/bersihin/bersihin-api/models"
	"github.com/bersihin/bersihin-api/nearby"
	"github.com/bersihin/bersihin-api/rewards"
)

// App stores the router and db connection, so it can be reused
type App struct {
	Router    *mux.Router
	Config    config.Config
	Scheduler *scheduler.Scheduler
	dbHelper  databases.DatabaseHelper
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	// setup go-guardian for middleware
	m := api.MiddlewareDB{DB: databases.NewProfileDatabase(a.dbHelper)}
	m.SetupGoGuardian()

	r := mux.NewRouter()

	rdb := databases.NewReportDatabase(a.dbHelper)
	cdb := databases.NewCampaignDatabase(a.dbHelper)
	pdb := databases.NewParticipantDatabase(a.dbHelper)
	profDB := databases.NewProfileDatabase(a.dbHelper)

	rewardSvc := rewards.NewService(profDB)
	rewardSvc.Identity = api.UserIDFromContext

	campaignCache := cache.New()
	campaignSvc := campaigns.NewService(cdb, pdb, rewardSvc, campaignCache)
	nearbySvc := nearby.NewService(rdb)

	hub := NewHub()
	issuer := api.NewTicketIssuer(a.Config.SecretKey)

	report := Report{RDB: rdb, Nearby: nearbySvc, Rewards: rewardSvc, Hub: hub}
	campaign := Campaign{Service: campaignSvc, RDB: rdb}
	profile := Profile{DB: profDB}
	live := Live{Issuer: issuer, Nearby: nearbySvc, Hub: hub}
	cloudinaryHandler := CloudinaryHandler{}

	// The scheduler shares the campaign cache so status transitions
	// invalidate the same entries the list reads populate. Its reward
	// service carries no identity hook; completion awards run outside any
	// user session.
	a.Scheduler = scheduler.NewScheduler(cdb, pdb, profDB, rewards.NewService(profDB), campaignCache)

	// healthchex
	r.HandleFunc("/health", healthCheckHandler)

	apiCreate := r.PathPrefix("/api/v1").Subrouter()
	apiCreate.Use(api.TimeoutMiddleware(api.RequestTimeout))

	apiCreate.Handle("/auth/token", api.Middleware(http.HandlerFunc(m.CreateToken))).Methods("POST")
	apiCreate.Handle("/auth/logout", api.Middleware(http.HandlerFunc(api.RevokeToken))).Methods("DELETE")

	apiCreate.Handle("/user/create-user", http.HandlerFunc(profile.ProfileCreateHandler)).Methods("POST")
	apiCreate.Handle("/user/{user_id}", api.Middleware(http.HandlerFunc(profile.ProfileByIDHandler))).Methods("GET")
	apiCreate.Handle("/leaderboard", api.Middleware(http.HandlerFunc(profile.LeaderboardHandler))).Methods("GET")

	apiCreate.Handle("/report", api.Middleware(http.HandlerFunc(report.CreateReportHandler))).Methods("POST")
	apiCreate.Handle("/report/{report_id}", api.Middleware(http.HandlerFunc(report.ReportByIDHandler))).Methods("GET")
	apiCreate.Handle("/reports/nearby", api.Middleware(http.HandlerFunc(report.ReportsNearbyHandler))).Methods("GET")
	apiCreate.Handle("/reports/user/{user_id}", api.Middleware(http.HandlerFunc(report.ReportsByUserIDHandler))).Methods("GET")

	apiCreate.Handle("/campaigns", api.Middleware(http.HandlerFunc(campaign.CampaignsHandler))).Methods("GET")
	apiCreate.Handle("/campaign", api.Middleware(http.HandlerFunc(campaign.CreateCampaignHandler))).Methods("POST")
	apiCreate.Handle("/campaign/{campaign_id}", api.Middleware(http.HandlerFunc(campaign.CampaignByIDHandler))).Methods("GET")
	apiCreate.Handle("/campaign/{campaign_id}/join", api.Middleware(http.HandlerFunc(campaign.JoinCampaignHandler))).Methods("POST")
	apiCreate.Handle("/campaign/{campaign_id}/leave", api.Middleware(http.HandlerFunc(campaign.LeaveCampaignHandler))).Methods("POST")

	apiCreate.Handle("/generate-signature", api.Middleware(http.HandlerFunc(cloudinaryHandler.GenerateSignature))).Methods("POST")

	apiCreate.Handle("/live/ticket", api.Middleware(http.HandlerFunc(live.TicketHandler))).Methods("POST")

	// websocket upgrade authenticates with a short-lived ticket instead of
	// the bearer middleware
	r.HandleFunc("/live", live.ServeWS).Methods("GET")

	return r
}

// Initialize is invoked by main to connect with the database and create a router
func (a *App) Initialize() error {

	client, err := databases.NewClient(&a.Config)
	if err != nil {
		// if we fail to create a new database client, then kill the pod
		zap.S().With(err).Error("failed to create new client")
		return err
	}

	a.dbHelper = databases.NewDatabase(&a.Config, client)
	err = client.Connect()
	if err != nil {
		// if we fail to connect to the database, then kill the pod
		zap.S().With(err).Error("failed to connect to database")
		return err
	}
	zap.S().Info("bersihin-api has connected to the database")

	ctx, cancel := api.WithQueryTimeout(nil)
	defer cancel()
	if err := databases.EnsureIndexes(ctx, a.dbHelper); err != nil {
		zap.S().With(err).Error("failed to ensure indexes")
		return err
	}

	// initialize api router
	a.initializeRoutes()

	a.Scheduler.Start()
	return nil

}

func (a *App) initializeRoutes() {
	a.Router = a.New()
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	b, _ := json.Marshal(models.HealthCheckResponse{
		Alive: true,
	})
	_, _ = io.WriteString(w, string(b))
}
