package campaignservice

import (
	"log/slog"

	httpadapter "pressroom/contexts/campaign-approval/campaign-service/adapters/http"
	"pressroom/contexts/campaign-approval/campaign-service/adapters/memory"
	"pressroom/contexts/campaign-approval/campaign-service/application/commands"
	"pressroom/contexts/campaign-approval/campaign-service/application/queries"
	"pressroom/contexts/campaign-approval/campaign-service/domain/entities"
	"pressroom/contexts/campaign-approval/campaign-service/ports"
)

type Module struct {
	Handler        httpadapter.Handler
	ChangeStatus   commands.ChangeStatusUseCase
	AttachWorkflow commands.AttachWorkflowUseCase
	GetCampaign    queries.GetCampaignUseCase
	Store          *memory.Store
}

type Dependencies struct {
	Campaigns   ports.CampaignRepository
	History     ports.StatusHistoryRepository
	Validator   ports.ContentValidator
	Approvals   ports.ApprovalGate
	Outbox      ports.OutboxWriter
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	createCampaign := commands.CreateCampaignUseCase{
		Campaigns: deps.Campaigns,
		History:   deps.History,
		Clock:     deps.Clock,
		IDGen:     deps.IDGenerator,
		Logger:    deps.Logger,
	}
	changeStatus := commands.ChangeStatusUseCase{
		Campaigns: deps.Campaigns,
		History:   deps.History,
		Validator: deps.Validator,
		Approvals: deps.Approvals,
		Outbox:    deps.Outbox,
		Clock:     deps.Clock,
		IDGen:     deps.IDGenerator,
		Logger:    deps.Logger,
	}
	attachWorkflow := commands.AttachWorkflowUseCase{
		Campaigns: deps.Campaigns,
		Clock:     deps.Clock,
		Logger:    deps.Logger,
	}

	getCampaign := queries.GetCampaignUseCase{
		Campaigns: deps.Campaigns,
		Logger:    deps.Logger,
	}
	listStatusHistory := queries.ListStatusHistoryUseCase{
		History: deps.History,
		Logger:  deps.Logger,
	}

	return Module{
		Handler: httpadapter.Handler{
			CreateCampaign:    createCampaign,
			ChangeStatus:      changeStatus,
			GetCampaign:       getCampaign,
			ListStatusHistory: listStatusHistory,
			Logger:            deps.Logger,
		},
		ChangeStatus:   changeStatus,
		AttachWorkflow: attachWorkflow,
		GetCampaign:    getCampaign,
	}
}

func NewInMemoryModule(seed []entities.Campaign, gate ports.ApprovalGate, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	if gate == nil {
		gate = memory.OpenApprovalGate{}
	}
	module := NewModule(Dependencies{
		Campaigns:   store,
		History:     store,
		Validator:   memory.StaticValidator{},
		Approvals:   gate,
		Outbox:      store,
		Clock:       store,
		IDGenerator: store,
		Logger:      logger,
	})
	module.Store = store
	return module
}
