package server

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"

	"github.com/casahub/casahub-internal/internal/common/httpx"
	"github.com/casahub/casahub-internal/internal/common/logtrace"
	commonmiddleware "github.com/casahub/casahub-internal/internal/common/middleware"
	"github.com/casahub/casahub-internal/internal/portalsrv/apis"
	"github.com/casahub/casahub-internal/internal/portalsrv/auth"
	"github.com/casahub/casahub-internal/internal/portalsrv/config"
	"github.com/casahub/casahub-internal/internal/portalsrv/db"
)

type PortalServer struct {
	Router *chi.Mux
}

func CreateNewServer() (*PortalServer, error) {
	s := &PortalServer{}
	s.Router = chi.NewRouter()
	return s, nil
}

func (s *PortalServer) MountHandlers() {
	s.Router.Use(commonmiddleware.RequestLogger)
	s.Router.Use(commonmiddleware.PanicHandler)
	if config.Config().HandleCORS {
		s.Router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{config.Config().CORSAllowedOrigin},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "Content-Length", "Accept-Encoding"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}
	s.Router.Route("/", s.mountResourceHandlers)
	if logtrace.IsTraceEnabled() {
		fmt.Println("Routes in portal router")
		walkFunc := func(method string, route string, handler http.Handler, middlewares ...func(http.Handler) http.Handler) error {
			fmt.Printf("%s %s\n", method, route)
			return nil
		}
		if err := chi.Walk(s.Router, walkFunc); err != nil {
			fmt.Printf("Logging err: %s\n", err.Error())
		}
	}
}

// mountResourceHandlers wires the three surfaces: cookie auth, the session
// protected portal API, and the shared-secret job endpoints. Authentication
// runs before the scoped db connection is checked out so rejected requests
// never touch the pool.
func (s *PortalServer) mountResourceHandlers(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Use(db.LoadScopedDB)
		auth.Router(r)
	})
	r.Group(func(r chi.Router) {
		r.Use(auth.SessionMiddleware)
		r.Group(func(r chi.Router) {
			r.Use(db.LoadScopedDB)
			apis.Router(r)
		})
		r.Group(func(r chi.Router) {
			r.Use(auth.AdminOnly)
			r.Use(db.LoadScopedDB)
			apis.AdminRouter(r)
		})
	})
	r.Group(func(r chi.Router) {
		r.Use(auth.JobKeyMiddleware)
		r.Use(db.LoadScopedDB)
		apis.JobRouter(r)
	})
	r.Get("/version", s.getVersion)
}

type GetVersionRsp struct {
	ServerVersion string `json:"serverVersion"`
	ApiVersion    string `json:"apiVersion"`
}

func (s *PortalServer) getVersion(w http.ResponseWriter, r *http.Request) {
	log.Ctx(r.Context()).Debug().Msg("GetVersion")
	rsp := &GetVersionRsp{
		ServerVersion: "CasaHub Portal Server: 0.1.0",
		ApiVersion:    "v1alpha1",
	}
	httpx.SendJsonRsp(r.Context(), w, http.StatusOK, rsp)
}
