package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/plaugmann/family-meal-planner/internal/assist"
	"github.com/plaugmann/family-meal-planner/internal/core"
	"github.com/plaugmann/family-meal-planner/internal/sitesearch"
	"github.com/plaugmann/family-meal-planner/internal/store"
)

type Server struct {
	router   *chi.Mux
	store    *store.Store
	importer *core.ImportService
	shopping *core.ShoppingListService
	searcher *sitesearch.Searcher
	assist   assist.Client

	singleTenant bool
	defaultPin   string
	secureCookie bool
	sessionTTL   time.Duration
}

type Options struct {
	SingleTenant bool
	DefaultPin   string
	SecureCookie bool
	SessionTTL   time.Duration
}

func NewServer(
	st *store.Store,
	importer *core.ImportService,
	shopping *core.ShoppingListService,
	searcher *sitesearch.Searcher,
	assistant assist.Client,
	opts Options,
) *Server {
	s := &Server{
		router:       chi.NewRouter(),
		store:        st,
		importer:     importer,
		shopping:     shopping,
		searcher:     searcher,
		assist:       assistant,
		singleTenant: opts.SingleTenant,
		defaultPin:   opts.DefaultPin,
		secureCookie: opts.SecureCookie,
		sessionTTL:   opts.SessionTTL,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	s.router.Get("/health", s.handleHealth)
	s.router.Get("/api/stats", s.handleStats)

	s.router.Post("/api/auth/login", s.handleLogin)
	s.router.Post("/api/auth/logout", s.handleLogout)

	// Parse without persisting; no session needed, mirrors the public
	// preview endpoint.
	s.router.Post("/api/parse-recipe", s.handleParseRecipe)

	s.router.Group(func(r chi.Router) {
		r.Use(s.withHousehold)

		r.Get("/api/auth/me", s.handleMe)

		r.Get("/api/recipes", s.handleListRecipes)
		r.Get("/api/recipes/search", s.handleSearchRecipes)
		r.Post("/api/recipes/import", s.handleImportRecipe)
		r.Get("/api/recipes/preview", s.handlePreviewRecipe)
		r.Post("/api/recipes/preview", s.handlePreviewRecipe)
		r.Get("/api/recipes/{id}", s.handleGetRecipe)
		r.Patch("/api/recipes/{id}", s.handleUpdateRecipe)
		r.Delete("/api/recipes/{id}", s.handleDeleteRecipe)

		r.Get("/api/weekly-plan", s.handleGetWeeklyPlan)
		r.Put("/api/weekly-plan", s.handlePutWeeklyPlan)

		r.Get("/api/shopping-list", s.handleGetShoppingList)
		r.Post("/api/shopping-list/generate", s.handleGenerateShoppingList)
		r.Patch("/api/shopping-list/items/{id}", s.handleUpdateShoppingItem)
		r.Delete("/api/shopping-list/items/{id}", s.handleDeleteShoppingItem)

		r.Get("/api/inventory", s.handleListInventory)
		r.Post("/api/inventory", s.handleCreateInventoryItem)
		r.Patch("/api/inventory/{id}", s.handleUpdateInventoryItem)
		r.Delete("/api/inventory/{id}", s.handleDeleteInventoryItem)

		r.Get("/api/whitelist", s.handleListWhitelist)
		r.Post("/api/whitelist", s.handleAddWhitelistSite)
		r.Patch("/api/whitelist/{id}", s.handleUpdateWhitelistSite)
		r.Delete("/api/whitelist/{id}", s.handleDeleteWhitelistSite)

		r.Post("/api/chat", s.handleChat)
	})
}

func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
