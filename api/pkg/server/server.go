package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/config"
	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/skills/tools"
	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/store"
	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/system"
)

const shutdownTimeout = 10 * time.Second

// SyllabiAPIServer exposes tool selection and skill execution over HTTP.
// The chat loop calls the tools endpoint once per turn and the execute
// endpoint for every tool call the model makes.
type SyllabiAPIServer struct {
	Cfg      config.WebServer
	Store    store.Store
	Executor tools.SkillExecutor
	Selector *tools.Selector
}

func NewServer(
	cfg config.WebServer,
	store store.Store,
	executor tools.SkillExecutor,
	selector *tools.Selector,
) (*SyllabiAPIServer, error) {
	if cfg.Port == 0 {
		return nil, fmt.Errorf("server port is required")
	}
	if store == nil {
		return nil, fmt.Errorf("store is required")
	}
	if executor == nil || selector == nil {
		return nil, fmt.Errorf("skill executor and tool selector are required")
	}

	return &SyllabiAPIServer{
		Cfg:      cfg,
		Store:    store,
		Executor: executor,
		Selector: selector,
	}, nil
}

// ListenAndServe blocks until ctx is cancelled or the listener fails
func (apiServer *SyllabiAPIServer) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", apiServer.Cfg.Host, apiServer.Cfg.Port),
		ReadHeaderTimeout: time.Minute,
		IdleTimeout:       time.Hour,
		Handler:           apiServer.registerRoutes(),
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("addr", srv.Addr).Msg("starting api server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("api server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Info().Msg("shutting down api server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func (apiServer *SyllabiAPIServer) registerRoutes() *mux.Router {
	router := mux.NewRouter()
	router.Use(requestLoggerMiddleware)
	router.Use(errorLoggingMiddleware)

	router.HandleFunc("/healthz", system.Wrapper(apiServer.healthz)).Methods(http.MethodGet)

	subRouter := router.PathPrefix(system.APISubPath).Subrouter()

	subRouter.HandleFunc("/chatbots/{chatbot_id}/tools", system.Wrapper(apiServer.listChatbotTools)).Methods(http.MethodGet)
	subRouter.HandleFunc("/chatbots/{chatbot_id}/skills/{skill_id}/execute", system.Wrapper(apiServer.executeChatbotSkill)).Methods(http.MethodPost)
	subRouter.HandleFunc("/chatbots/{chatbot_id}/skills", system.Wrapper(apiServer.listChatbotSkills)).Methods(http.MethodGet)
	subRouter.HandleFunc("/chatbots/{chatbot_id}/skills", system.Wrapper(apiServer.createSkillAssociation)).Methods(http.MethodPost)
	subRouter.HandleFunc("/chatbots/{chatbot_id}/skills/{association_id}", system.Wrapper(apiServer.updateSkillAssociation)).Methods(http.MethodPatch)
	subRouter.HandleFunc("/chatbots/{chatbot_id}/skills/{association_id}", system.Wrapper(apiServer.deleteSkillAssociation)).Methods(http.MethodDelete)
	subRouter.HandleFunc("/chatbots/{chatbot_id}/integrations", system.Wrapper(apiServer.bindChatbotIntegration)).Methods(http.MethodPost)

	subRouter.HandleFunc("/integrations", system.Wrapper(apiServer.createIntegration)).Methods(http.MethodPost)

	subRouter.HandleFunc("/skills", system.DefaultWrapper(apiServer.listSkills)).Methods(http.MethodGet)
	subRouter.HandleFunc("/skills", system.Wrapper(apiServer.createSkill)).Methods(http.MethodPost)
	subRouter.HandleFunc("/skills/{skill_id}", system.Wrapper(apiServer.getSkillByID)).Methods(http.MethodGet)
	subRouter.HandleFunc("/skills/{skill_id}", system.Wrapper(apiServer.updateSkill)).Methods(http.MethodPatch)
	subRouter.HandleFunc("/skills/{skill_id}", system.Wrapper(apiServer.deleteSkill)).Methods(http.MethodDelete)
	subRouter.HandleFunc("/skills/{skill_id}/validate", system.Wrapper(apiServer.validateSkillParameters)).Methods(http.MethodPost)
	subRouter.HandleFunc("/skills/{skill_id}/example", system.Wrapper(apiServer.getSkillExample)).Methods(http.MethodGet)
	subRouter.HandleFunc("/skills/{skill_id}/executions", system.Wrapper(apiServer.listSkillExecutions)).Methods(http.MethodGet)
	subRouter.HandleFunc("/skills/{skill_id}/stats", system.Wrapper(apiServer.getSkillStats)).Methods(http.MethodGet)

	return router
}

type HealthResponse struct {
	Status string `json:"status"`
}

func (apiServer *SyllabiAPIServer) healthz(_ http.ResponseWriter, _ *http.Request) (*HealthResponse, *system.HTTPError) {
	return &HealthResponse{Status: "ok"}, nil
}
