package router

import (
	"context"
	"database/sql"
	"encoding/json"
	"io/fs"
	"net/http"
	"time"

	"medication-reminder/internal/adapters/auth/session"
	mem "medication-reminder/internal/adapters/storage/memory"
	pg "medication-reminder/internal/adapters/storage/postgres"
	lite "medication-reminder/internal/adapters/storage/sqlite"
	_ "medication-reminder/internal/docs"
	"medication-reminder/internal/domain/accounts"
	"medication-reminder/internal/domain/history"
	"medication-reminder/internal/domain/medications"
	"medication-reminder/internal/domain/reminders"
	"medication-reminder/internal/middleware"
	"medication-reminder/internal/platform/logger"
	"medication-reminder/internal/platform/metrics"
	"medication-reminder/web"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
	"gorm.io/gorm"
)

type Options struct {
	// Almacenamiento: DB (Postgres) tiene prioridad sobre Gorm (SQLite).
	// Sin ninguno de los dos, in-memory.
	DB   *sql.DB
	Gorm *gorm.DB

	Sessions *session.Manager // nil => manager con secreto aleatorio
	Logger   logger.Logger
	Metrics  *metrics.Metrics
	Location *time.Location // zona de referencia; nil => UTC

	// PasswordCost es el costo bcrypt; 0 => bcrypt.DefaultCost.
	PasswordCost int

	CORSOrigins []string
	Assets      fs.FS // nil => cliente embebido
}

func NewRouter(opts Options) (http.Handler, error) {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	m := opts.Metrics
	if m == nil {
		m = metrics.New()
	}
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	sessions := opts.Sessions
	if sessions == nil {
		var err error
		if sessions, err = session.NewManager("", 0, nil); err != nil {
			return nil, err
		}
	}
	assets := opts.Assets
	if assets == nil {
		assets = web.Assets()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Observe(log, m))
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORS(opts.CORSOrigins))
	r.Use(middleware.AuthContext(sessions))

	var (
		accountsRepo accounts.Repository
		medsRepo     medications.Repository
		historyRepo  history.Repository
		pinger       func(context.Context) error
	)

	switch {
	case opts.DB != nil:
		accountsRepo = pg.NewAccountsRepo(opts.DB)
		medsRepo = pg.NewMedicationsRepo(opts.DB)
		historyRepo = pg.NewHistoryRepo(opts.DB)
		pinger = opts.DB.PingContext
	case opts.Gorm != nil:
		accountsRepo = lite.NewAccountsRepo(opts.Gorm)
		medsRepo = lite.NewMedicationsRepo(opts.Gorm)
		historyRepo = lite.NewHistoryRepo(opts.Gorm)
		pinger = func(ctx context.Context) error {
			sqlDB, err := opts.Gorm.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}
	default:
		memMeds := mem.NewMedicationsRepo()
		accountsRepo = mem.NewAccountsRepo()
		medsRepo = memMeds
		historyRepo = mem.NewHistoryRepo(memMeds)
	}

	// Services por módulo
	accountsSvc := accounts.NewService(accountsRepo, sessions)
	if opts.PasswordCost != 0 {
		accountsSvc.SetPasswordCost(opts.PasswordCost)
	}
	medsSvc := medications.NewService(medsRepo, accountsSvc)
	historySvc := history.NewService(historyRepo, medsSvc, loc)
	remindersSvc := reminders.NewService(accountsSvc, medsSvc, loc)

	// Operación
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/health/ready", readyHandler(pinger, sessions, log))
	r.Handle("/metrics", m.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// API
	r.Route("/api", func(api chi.Router) {
		api.NotFound(func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "route not found"})
		})
		api.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"message": "method not allowed"})
		})

		accounts.RegisterRoutes(api, accountsSvc, sessions, log, m)
		medications.RegisterRoutes(api, medsSvc, log)
		history.RegisterRoutes(api, historySvc, log, m)
		reminders.RegisterRoutes(api, remindersSvc, log)
	})

	// Cliente: cualquier otra ruta GET sirve el SPA
	r.NotFound(web.Handler(assets).ServeHTTP)

	return r, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
