package commands

import (
	"context"

	"go.uber.org/zap"

	"github.com/shelterconnect/shelter-matcher/internal/config"
	"github.com/shelterconnect/shelter-matcher/pkg/clients/gmailclient"
	"github.com/shelterconnect/shelter-matcher/pkg/clients/sheetsclient"
	"github.com/shelterconnect/shelter-matcher/pkg/core/services"
	"github.com/shelterconnect/shelter-matcher/pkg/db"
	"github.com/shelterconnect/shelter-matcher/pkg/postgres"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg          *config.Config
	Env          string
	SheetsClient *sheetsclient.Client
	GmailClient  *gmailclient.Client
	Postgres     *postgres.DB // nil unless the source is postgres
	Source       db.RecordSource
	Exporter     services.Exporter
	Logger       *zap.Logger
	Ctx          context.Context
}

// runMatching runs the pipeline with the app's collaborators
func (app *AppContext) runMatching(ctx context.Context, opts services.MatchOptions) (*services.MatchResult, error) {
	return services.RunMatching(ctx, app.Source, app.Exporter, app.GmailClient, app.Cfg, app.Logger, opts)
}
