package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jmoiron/sqlx"

	"github.com/vaughan-dsouza/blogspot/internal/db"
	"github.com/vaughan-dsouza/blogspot/internal/handlers"
	"github.com/vaughan-dsouza/blogspot/internal/middleware"
	"github.com/vaughan-dsouza/blogspot/internal/services"
	"github.com/vaughan-dsouza/blogspot/internal/store"
	"github.com/vaughan-dsouza/blogspot/internal/utils"
)

type Options struct {
	Auth        services.AuthOptions
	CORSOrigins []string
	AccessLog   bool
}

// NewRouter wires stores, services and handlers over conn.
func NewRouter(conn *sqlx.DB, opts Options) http.Handler {
	authSvc := services.NewAuthService(store.NewUserStore(conn), opts.Auth)
	postSvc := services.NewPostService(store.NewPostStore(conn))
	h := handlers.NewHandler(authSvc, postSvc)
	requireAuth := middleware.AuthMiddleware(authSvc)

	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	if opts.AccessLog {
		r.Use(chimw.Logger)
	}
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:         300,
	}))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("Blogspot API is running"))
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(r.Context(), conn); err != nil {
			utils.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
		utils.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", h.Auth.Register)
		r.Post("/login", h.Auth.Login)
		r.With(requireAuth).Get("/me", h.Auth.Me)
	})

	r.Route("/api/posts", func(r chi.Router) {
		// Public
		r.Get("/", h.Posts.GetPosts)
		r.Get("/user/{userId}", h.Posts.GetUserPosts)
		r.Get("/{id}", h.Posts.GetPostByID)

		// Protected
		r.Group(func(r chi.Router) {
			r.Use(requireAuth)

			r.Get("/user", h.Posts.GetMyPosts)
			r.Post("/", h.Posts.CreatePost)
			r.Put("/{id}", h.Posts.UpdatePost)
			r.Delete("/{id}", h.Posts.DeletePost)
		})
	})

	return r
}
