package routes

import (
	"github.com/Dosada05/league-platform/handlers"
	"github.com/Dosada05/league-platform/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

// SetupRoutes собирает все маршруты приложения.
func SetupRoutes(
	router *chi.Mux,
	jwtSecret string,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	teamHandler *handlers.TeamHandler,
	groupHandler *handlers.GroupHandler,
	matchHandler *handlers.MatchHandler,
	tournamentHandler *handlers.TournamentHandler,
	leaderboardHandler *handlers.LeaderboardHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authenticate := middleware.Authenticate(jwtSecret)

	router.Get("/swagger/*", httpSwagger.Handler())

	router.Post("/auth/register", authHandler.Register)
	router.Post("/auth/login", authHandler.Login)

	router.Route("/users", func(r chi.Router) {
		r.Get("/{userID}", userHandler.GetByID)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Post("/{userID}/avatar", userHandler.UploadAvatar)
		})
	})

	router.Route("/teams", func(r chi.Router) {
		r.Get("/{teamID}", teamHandler.GetByID)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Post("/", teamHandler.Create)
			r.Post("/{teamID}/logo", teamHandler.UploadLogo)
		})
	})

	router.Route("/groups", func(r chi.Router) {
		r.Get("/", groupHandler.ListLooking)
		r.Get("/{groupID}", groupHandler.GetByID)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Post("/", groupHandler.Create)
			r.Post("/{groupID}/looking", groupHandler.SetLooking)
			r.Post("/{groupID}/merge", groupHandler.Merge)
		})
	})

	router.Route("/matches", func(r chi.Router) {
		r.Get("/{matchID}", matchHandler.GetByID)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Post("/", matchHandler.Create)
			r.Post("/{matchID}/maps", matchHandler.ReportMapResult)
			r.Post("/{matchID}/screenshot", matchHandler.UploadScreenshot)
		})
	})

	router.Route("/tournaments", func(r chi.Router) {
		r.Get("/{tournamentID}", tournamentHandler.GetByID)
		r.Post("/validate-brackets", tournamentHandler.ValidateBrackets)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Use(middleware.Authorize("organizer", "admin"))
			r.Post("/", tournamentHandler.Create)
			r.Patch("/{tournamentID}/status", tournamentHandler.UpdateStatus)
			r.Post("/{tournamentID}/brackets", tournamentHandler.MaterializeBrackets)
			r.Post("/{tournamentID}/logo", tournamentHandler.UploadLogo)
		})

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Post("/{tournamentID}/register", tournamentHandler.RegisterTeam)
		})
	})

	router.Route("/leaderboard", func(r chi.Router) {
		r.Get("/{season}", leaderboardHandler.Get)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Use(middleware.Authorize("admin"))
			r.Post("/{season}/rebuild", leaderboardHandler.RebuildSeason)
		})
	})

	router.Get("/ws/tournaments/{tournamentID}", webSocketHandler.ServeTournament)
	router.Get("/ws/seasons/{season}", webSocketHandler.ServeSeason)
}
