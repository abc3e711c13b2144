package sharegateway

import (
	"log/slog"

	httpadapter "pressroom/contexts/campaign-approval/share-gateway/adapters/http"
	"pressroom/contexts/campaign-approval/share-gateway/adapters/memory"
	"pressroom/contexts/campaign-approval/share-gateway/application/commands"
	"pressroom/contexts/campaign-approval/share-gateway/application/queries"
	"pressroom/contexts/campaign-approval/share-gateway/application/workers"
	"pressroom/contexts/campaign-approval/share-gateway/domain/entities"
	"pressroom/contexts/campaign-approval/share-gateway/ports"
)

type Module struct {
	Handler     httpadapter.Handler
	LinkExpirer workers.LinkExpirer
	Store       *memory.Store
}

type Dependencies struct {
	Links       ports.ShareLinkRepository
	Campaigns   ports.CampaignReader
	Versions    ports.VersionReader
	Approvals   ports.ApprovalGateway
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	createLink := commands.CreateLinkUseCase{
		Links:  deps.Links,
		Clock:  deps.Clock,
		IDGen:  deps.IDGenerator,
		Logger: deps.Logger,
	}
	revokeLink := commands.RevokeLinkUseCase{
		Links:  deps.Links,
		Clock:  deps.Clock,
		Logger: deps.Logger,
	}
	markViewed := commands.MarkViewedUseCase{
		Links:     deps.Links,
		Approvals: deps.Approvals,
		Clock:     deps.Clock,
		Logger:    deps.Logger,
	}
	decide := commands.DecideUseCase{
		Links:     deps.Links,
		Campaigns: deps.Campaigns,
		Approvals: deps.Approvals,
		Clock:     deps.Clock,
		Logger:    deps.Logger,
	}
	resolve := queries.ResolveUseCase{
		Links:     deps.Links,
		Campaigns: deps.Campaigns,
		Versions:  deps.Versions,
		Approvals: deps.Approvals,
		Clock:     deps.Clock,
		Logger:    deps.Logger,
	}

	return Module{
		Handler: httpadapter.Handler{
			CreateLink: createLink,
			RevokeLink: revokeLink,
			MarkViewed: markViewed,
			Decide:     decide,
			Resolve:    resolve,
			Logger:     deps.Logger,
		},
		LinkExpirer: workers.LinkExpirer{
			Links:  deps.Links,
			Clock:  deps.Clock,
			Logger: deps.Logger,
		},
	}
}

func NewInMemoryModule(
	seed []entities.ShareLink,
	campaigns ports.CampaignReader,
	versions ports.VersionReader,
	approvals ports.ApprovalGateway,
	logger *slog.Logger,
) Module {
	store := memory.NewStore(seed)
	module := NewModule(Dependencies{
		Links:       store,
		Campaigns:   campaigns,
		Versions:    versions,
		Approvals:   approvals,
		Clock:       store,
		IDGenerator: store,
		Logger:      logger,
	})
	module.Store = store
	return module
}
