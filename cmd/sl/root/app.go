package root

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"

	"stressless/internal/config"
	"stressless/internal/engine"
	"stressless/internal/logging"
	"stressless/internal/remote"
	"stressless/internal/storage"
)

// app bundles everything a command needs. Remote collaborators are nil when
// not configured.
type app struct {
	cfg  *config.Config
	log  *zap.Logger
	db   *sql.DB
	svc  *engine.Service
	disp *remote.Dispatcher

	profiles *remote.ProfileClient
	mailer   *remote.EmailSender
}

func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	return config.Load(path)
}

func openDB(ctx context.Context, cfg *config.Config) (*sql.DB, error) {
	path, err := storage.ResolveDBPath(cfg.Storage.DBPath)
	if err != nil {
		return nil, err
	}
	return storage.Open(ctx, path)
}

func openApp(ctx context.Context) (*app, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	log, syncLog, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, nil, err
	}
	db, err := openDB(ctx, cfg)
	if err != nil {
		syncLog()
		return nil, nil, err
	}

	a := &app{cfg: cfg, log: log, db: db}
	timeout := cfg.RemoteTimeout()
	if cfg.ProfileSyncEnabled() {
		a.profiles = remote.NewProfileClient(cfg.Remote.ProfileURL, cfg.Remote.AnonKey, timeout)
	}
	if cfg.EmailEnabled() {
		a.mailer = remote.NewEmailSender(cfg.Remote.EmailURL, cfg.Remote.EmailAPIKey, cfg.Remote.EmailFrom, timeout)
	}

	// Typed nil pointers must not leak into the interfaces.
	var mirror remote.ProfileMirror
	if a.profiles != nil {
		mirror = a.profiles
	}
	var mail remote.Mailer
	if a.mailer != nil {
		mail = a.mailer
	}
	a.disp = remote.NewDispatcher(mirror, mail, remote.DispatcherConfig{
		Identity: cfg.Remote.IdentityID,
		AppURL:   cfg.Remote.AppURL,
		Timeout:  timeout,
	}, log)

	cleanup := func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), timeout+time.Second)
		defer cancel()
		if err := a.disp.Close(closeCtx); err != nil {
			log.Warn("pending remote work abandoned", zap.Error(err))
		}
		_ = db.Close()
		syncLog()
	}

	a.svc, err = engine.Open(ctx, db, engine.WithLogger(log), engine.WithProfileSync(a.disp))
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return a, cleanup, nil
}

// withApp opens the app for one command invocation.
func withApp(fn func(ctx context.Context, a *app) error) error {
	ctx := context.Background()
	a, cleanup, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer cleanup()
	return fn(ctx, a)
}
