package handler

import "github.com/RevivalFireMinistries/dept-selection-app/internal/service"

// Handler aggregates every HTTP handler.
type Handler struct {
	Auth        *AuthHandler
	Category    *CategoryHandler
	Department  *DepartmentHandler
	Member      *MemberHandler
	Selection   *SelectionHandler
	Appeal      *AppealHandler
	Publication *PublicationHandler
	Settings    *SettingsHandler
	Export      *ExportHandler
	Seed        *SeedHandler
}

// NewHandler creates the Handler aggregate.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:        NewAuthHandler(svc.Auth),
		Category:    NewCategoryHandler(svc.Category),
		Department:  NewDepartmentHandler(svc.Department),
		Member:      NewMemberHandler(svc.Member),
		Selection:   NewSelectionHandler(svc.Selection),
		Appeal:      NewAppealHandler(svc.Appeal),
		Publication: NewPublicationHandler(svc.Publication),
		Settings:    NewSettingsHandler(svc.Settings),
		Export:      NewExportHandler(svc.Export),
		Seed:        NewSeedHandler(svc.Seed),
	}
}
