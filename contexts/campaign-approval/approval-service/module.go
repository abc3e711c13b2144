package approvalservice

import (
	"log/slog"

	httpadapter "pressroom/contexts/campaign-approval/approval-service/adapters/http"
	"pressroom/contexts/campaign-approval/approval-service/adapters/memory"
	"pressroom/contexts/campaign-approval/approval-service/application/commands"
	"pressroom/contexts/campaign-approval/approval-service/application/queries"
	"pressroom/contexts/campaign-approval/approval-service/application/workers"
	"pressroom/contexts/campaign-approval/approval-service/domain/entities"
	"pressroom/contexts/campaign-approval/approval-service/ports"
)

type Module struct {
	Handler        httpadapter.Handler
	SubmitDecision commands.SubmitDecisionUseCase
	MarkViewed     commands.MarkViewedUseCase
	GetWorkflow    queries.GetWorkflowUseCase
	ApprovalStatus queries.ApprovalStatusUseCase
	OutboxRelay    workers.OutboxRelay
	Store          *memory.Store
}

type Dependencies struct {
	Workflows   ports.WorkflowRepository
	Decisions   ports.DecisionLog
	Versions    ports.VersionGate
	Campaigns   ports.CampaignGate
	Outbox      ports.OutboxRepository
	Publisher   ports.EventPublisher
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	startWorkflow := commands.StartWorkflowUseCase{
		Workflows: deps.Workflows,
		Versions:  deps.Versions,
		Campaigns: deps.Campaigns,
		Outbox:    deps.Outbox,
		Clock:     deps.Clock,
		IDGen:     deps.IDGenerator,
		Logger:    deps.Logger,
	}
	submitDecision := commands.SubmitDecisionUseCase{
		Workflows: deps.Workflows,
		Decisions: deps.Decisions,
		Versions:  deps.Versions,
		Campaigns: deps.Campaigns,
		Outbox:    deps.Outbox,
		Clock:     deps.Clock,
		IDGen:     deps.IDGenerator,
		Logger:    deps.Logger,
	}
	markViewed := commands.MarkViewedUseCase{
		Workflows: deps.Workflows,
		Decisions: deps.Decisions,
		Clock:     deps.Clock,
		IDGen:     deps.IDGenerator,
		Logger:    deps.Logger,
	}

	getWorkflow := queries.GetWorkflowUseCase{
		Workflows: deps.Workflows,
		Logger:    deps.Logger,
	}
	getHistory := queries.GetHistoryUseCase{
		Workflows: deps.Workflows,
		Decisions: deps.Decisions,
		Logger:    deps.Logger,
	}
	approvalStatus := queries.ApprovalStatusUseCase{
		Workflows: deps.Workflows,
		Logger:    deps.Logger,
	}

	return Module{
		Handler: httpadapter.Handler{
			StartWorkflow:  startWorkflow,
			SubmitDecision: submitDecision,
			GetWorkflow:    getWorkflow,
			GetHistory:     getHistory,
			Logger:         deps.Logger,
		},
		SubmitDecision: submitDecision,
		MarkViewed:     markViewed,
		GetWorkflow:    getWorkflow,
		ApprovalStatus: approvalStatus,
		OutboxRelay: workers.OutboxRelay{
			Outbox:    deps.Outbox,
			Publisher: deps.Publisher,
			Clock:     deps.Clock,
			Logger:    deps.Logger,
		},
	}
}

func NewInMemoryModule(
	seed []entities.Workflow,
	versions ports.VersionGate,
	campaigns ports.CampaignGate,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) Module {
	store := memory.NewStore(seed)
	if versions == nil {
		versions = memory.NewCountingVersionGate()
	}
	if campaigns == nil {
		campaigns = memory.NullCampaignGate{}
	}
	module := NewModule(Dependencies{
		Workflows:   store,
		Decisions:   store,
		Versions:    versions,
		Campaigns:   campaigns,
		Outbox:      store,
		Publisher:   publisher,
		Clock:       store,
		IDGenerator: store,
		Logger:      logger,
	})
	module.Store = store
	return module
}
