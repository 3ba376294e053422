package apiapp

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	authsvc "github.com/mer-dating/backend/internal/services/auth"
	discsvc "github.com/mer-dating/backend/internal/services/discovery"
	matchsvc "github.com/mer-dating/backend/internal/services/matches"
	msgsvc "github.com/mer-dating/backend/internal/services/messages"
	swipesvc "github.com/mer-dating/backend/internal/services/swipes"
	usersvc "github.com/mer-dating/backend/internal/services/users"
	"github.com/mer-dating/backend/internal/transport/http/handlers"
)

type Dependencies struct {
	AuthService      *authsvc.Service
	UserService      *usersvc.Service
	DiscoveryService *discsvc.Service
	SwipeService     *swipesvc.Service
	MatchService     *matchsvc.Service
	MessageService   *msgsvc.Service
	Logger           *zap.Logger
}

func RegisterRoutes(r chi.Router, deps Dependencies) {
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(deps.AuthService)
	profileHandler := handlers.NewProfileHandler(deps.UserService)
	discoverHandler := handlers.NewDiscoverHandler(deps.DiscoveryService)
	swipeHandler := handlers.NewSwipeHandler(deps.SwipeService)
	matchesHandler := handlers.NewMatchesHandler(deps.MatchService)
	messagesHandler := handlers.NewMessagesHandler(deps.MessageService)
	authMW := AuthMiddleware(deps.AuthService, deps.Logger)

	r.Get("/healthz", healthHandler.Get)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", authHandler.Signup)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)
			r.With(authMW).Post("/logout", authHandler.Logout)
			r.With(authMW).Get("/me", authHandler.Me)
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(authMW)
			r.Put("/profile", profileHandler.Update)
			r.Get("/discover", discoverHandler.Handle)
			r.Get("/profile/{userID}", profileHandler.GetByID)
		})

		r.With(authMW).Post("/swipes/swipe", swipeHandler.Handle)
		r.With(authMW).Get("/matches/", matchesHandler.List)
		r.With(authMW).Get("/matches", matchesHandler.List)

		r.Route("/messages", func(r chi.Router) {
			r.Use(authMW)
			r.Post("/send", messagesHandler.Send)
			r.Get("/{matchID}", messagesHandler.ListByMatch)
		})
	})
}
