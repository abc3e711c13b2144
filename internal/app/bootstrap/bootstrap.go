package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	approvalservice "pressroom/contexts/campaign-approval/approval-service"
	approvalpostgres "pressroom/contexts/campaign-approval/approval-service/adapters/postgres"
	approvalqueries "pressroom/contexts/campaign-approval/approval-service/application/queries"
	approvalworkers "pressroom/contexts/campaign-approval/approval-service/application/workers"
	campaignservice "pressroom/contexts/campaign-approval/campaign-service"
	campaignmemory "pressroom/contexts/campaign-approval/campaign-service/adapters/memory"
	campaignpostgres "pressroom/contexts/campaign-approval/campaign-service/adapters/postgres"
	sharegateway "pressroom/contexts/campaign-approval/share-gateway"
	sharepostgres "pressroom/contexts/campaign-approval/share-gateway/adapters/postgres"
	shareworkers "pressroom/contexts/campaign-approval/share-gateway/application/workers"
	versionservice "pressroom/contexts/campaign-approval/version-service"
	versionmemory "pressroom/contexts/campaign-approval/version-service/adapters/memory"
	versionpostgres "pressroom/contexts/campaign-approval/version-service/adapters/postgres"
	pipelineservice "pressroom/contexts/project-pipeline/pipeline-service"
	pipelinepostgres "pressroom/contexts/project-pipeline/pipeline-service/adapters/postgres"
	taskservice "pressroom/contexts/project-pipeline/task-service"
	taskpostgres "pressroom/contexts/project-pipeline/task-service/adapters/postgres"
	taskworkers "pressroom/contexts/project-pipeline/task-service/application/workers"
	"pressroom/internal/platform/config"
	"pressroom/internal/platform/db"
	"pressroom/internal/platform/httpserver"
	"pressroom/internal/platform/messaging"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

type WorkerApp struct {
	postgres      *db.Postgres
	outboxRelay   approvalworkers.OutboxRelay
	expirer       shareworkers.LinkExpirer
	graphAuditor  taskworkers.GraphAuditor
	relayEnabled  bool
	expiryEnabled bool
	auditEnabled  bool
	pollInterval  time.Duration
	logger        *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	approvalRepo := approvalpostgres.NewRepository(pg.DB, logger)
	campaignRepo := campaignpostgres.NewRepository(pg.DB, logger)
	versionRepo := versionpostgres.NewRepository(pg.DB, logger)
	shareRepo := sharepostgres.NewRepository(pg.DB, logger)
	pipelineRepo := pipelinepostgres.NewRepository(pg.DB, logger)
	taskRepo := taskpostgres.NewRepository(pg.DB, logger)

	// The campaign module checks approval state through a query built
	// straight on the workflow repository; the full approval module is
	// assembled later because it needs campaign and version gates.
	statusGate := ApprovalStatusGate{
		Status: approvalqueries.ApprovalStatusUseCase{
			Workflows: approvalRepo,
			Logger:    logger,
		},
	}

	campaignModule := campaignservice.NewModule(campaignservice.Dependencies{
		Campaigns:   campaignRepo,
		History:     campaignRepo,
		Validator:   campaignmemory.StaticValidator{},
		Approvals:   statusGate,
		Outbox:      campaignRepo,
		Clock:       campaignpostgres.SystemClock{},
		IDGenerator: campaignpostgres.UUIDGenerator{},
		Logger:      logger,
	})

	versionModule := versionservice.NewModule(versionservice.Dependencies{
		Versions:    versionRepo,
		Renderer:    versionmemory.StaticRenderer{},
		Clock:       versionpostgres.SystemClock{},
		IDGenerator: versionpostgres.UUIDGenerator{},
		Logger:      logger,
	})

	approvalModule := approvalservice.NewModule(approvalservice.Dependencies{
		Workflows:   approvalRepo,
		Decisions:   approvalRepo,
		Versions:    VersionModuleGate{Versions: versionModule},
		Campaigns:   CampaignModuleGate{Campaigns: campaignModule},
		Outbox:      approvalRepo,
		Clock:       approvalpostgres.SystemClock{},
		IDGenerator: approvalpostgres.UUIDGenerator{},
		Logger:      logger,
	})

	shareModule := sharegateway.NewModule(sharegateway.Dependencies{
		Links:       shareRepo,
		Campaigns:   CampaignSummaryReader{Campaigns: campaignModule},
		Versions:    VersionSummaryReader{Versions: versionModule},
		Approvals:   ApprovalGatewayAdapter{Approvals: approvalModule},
		Clock:       sharepostgres.SystemClock{},
		IDGenerator: sharepostgres.UUIDGenerator{},
		Logger:      logger,
	})

	taskModule := taskservice.NewModule(taskservice.Dependencies{
		Tasks:       taskRepo,
		Audit:       taskRepo,
		Clock:       taskpostgres.SystemClock{},
		IDGenerator: taskpostgres.UUIDGenerator{},
		Logger:      logger,
	})

	// In database mode the stage engine reads and writes project_tasks
	// through its own repository; both contexts share the table.
	pipelineModule := pipelineservice.NewModule(pipelineservice.Dependencies{
		Projects:    pipelineRepo,
		History:     pipelineRepo,
		Tasks:       pipelineRepo,
		TaskWriter:  pipelineRepo,
		Templates:   pipelineRepo,
		Clock:       pipelinepostgres.SystemClock{},
		IDGenerator: pipelinepostgres.UUIDGenerator{},
		Logger:      logger,
	})

	server := httpserver.New(
		campaignModule,
		approvalModule,
		versionModule,
		shareModule,
		pipelineModule,
		taskModule,
		logger,
		normalizeAddr(cfg.HTTPPort),
	)
	return &APIApp{
		server:   server,
		postgres: pg,
		logger:   logger,
	}, nil
}

func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	kafka, err := messaging.NewKafka(cfg.KafkaBrokers, logger)
	if err != nil {
		return nil, err
	}

	approvalRepo := approvalpostgres.NewRepository(pg.DB, logger)
	shareRepo := sharepostgres.NewRepository(pg.DB, logger)
	taskRepo := taskpostgres.NewRepository(pg.DB, logger)

	return &WorkerApp{
		postgres: pg,
		outboxRelay: approvalworkers.OutboxRelay{
			Outbox:    approvalRepo,
			Publisher: kafka,
			Clock:     approvalpostgres.SystemClock{},
			BatchSize: 100,
			Logger:    logger,
		},
		expirer: shareworkers.LinkExpirer{
			Links:  shareRepo,
			Clock:  sharepostgres.SystemClock{},
			Logger: logger,
		},
		graphAuditor: taskworkers.GraphAuditor{
			Tasks:    taskRepo,
			Projects: taskRepo,
			Logger:   logger,
		},
		relayEnabled:  cfg.EnableApprovalOutboxRelay,
		expiryEnabled: cfg.EnableShareLinkExpiry,
		auditEnabled:  cfg.EnableTaskGraphAudit,
		pollInterval:  2 * time.Second,
		logger:        logger,
	}, nil
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func (w *WorkerApp) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"poll_interval", w.pollInterval.String(),
		"outbox_relay", w.relayEnabled,
		"link_expiry", w.expiryEnabled,
		"graph_audit", w.auditEnabled,
	)

	for {
		if w.expiryEnabled {
			if err := w.expirer.RunOnce(ctx); err != nil {
				return err
			}
		}
		if w.relayEnabled {
			if err := w.outboxRelay.RunOnce(ctx); err != nil {
				return err
			}
		}
		if w.auditEnabled {
			if err := w.graphAuditor.RunOnce(ctx); err != nil {
				return err
			}
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (w *WorkerApp) Close() error {
	if w.postgres != nil {
		return w.postgres.Close()
	}
	return nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
