package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/golistview/internal/config"
	"github.com/dbsmedya/golistview/internal/database"
	"github.com/dbsmedya/golistview/internal/host"
	"github.com/dbsmedya/golistview/internal/listview"
	"github.com/dbsmedya/golistview/internal/logger"
	"github.com/dbsmedya/golistview/internal/recordsource"
	"github.com/dbsmedya/golistview/internal/render"
)

// loadConfig reads the config file, applies CLI overrides and validates it.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(GetConfigFile())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	overrides := GetCLIOverrides()
	cfg.ApplyOverrides(overrides.LogLevel, overrides.LogFormat,
		overrides.PageSize, overrides.BatchDeleteSize, overrides.NoColor)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// session wires one view to the database and the terminal.
type session struct {
	cfg      *config.Config
	viewName string
	view     *config.ViewConfig
	parentID string

	out      io.Writer
	log      *logger.Logger
	db       *database.Manager
	source   *recordsource.Source
	renderer *render.Renderer
	terminal *host.Terminal
	ctrl     *listview.Controller
}

// sessionOptions select the view and parent record of a session.
type sessionOptions struct {
	View      string
	ParentID  string // overrides the view's record_id
	AssumeYes bool   // accept delete confirmations
}

// openSession loads the config, connects to the source and creates the
// list view controller. Records are not loaded yet.
func openSession(ctx context.Context, cmd *cobra.Command, opts sessionOptions) (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	view, err := cfg.GetView(opts.View)
	if err != nil {
		return nil, err
	}

	parentID := opts.ParentID
	if parentID == "" {
		parentID = view.RecordID
	}
	if parentID == "" {
		return nil, fmt.Errorf("view %q has no record_id; pass --parent", opts.View)
	}

	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	log = log.WithView(opts.View)

	s := &session{
		cfg:      cfg,
		viewName: opts.View,
		view:     view,
		parentID: parentID,
		out:      cmd.OutOrStdout(),
		log:      log,
	}

	s.db = database.NewManager(&cfg.Source)
	if err := s.db.Connect(ctx); err != nil {
		return nil, err
	}

	s.source, err = recordsource.New(s.db.Source, s.db.Driver(), cfg.Source.Database, view,
		cfg.Processing.BatchDeleteSize, log)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to create record source: %w", err)
	}

	s.renderer = render.New(s.out, render.Options{
		MaxColumnWidth: cfg.Display.MaxColumnWidth,
		Color:          cfg.Display.Color,
		IDField:        view.IDField(),
	})
	s.terminal = host.NewTerminal(cmd.InOrStdin(), s.out, s.renderer,
		cfg.Display.EditURLTemplate, opts.AssumeYes, log)

	s.ctrl, err = listview.New(listview.Options{
		RecordID:          parentID,
		ObjectType:        view.ObjectType,
		Fields:            view.Fields,
		RelationshipField: view.RelationshipField,
		IDField:           view.IDField(),
		PageSize:          cfg.GetViewPageSize(opts.View),
		URLTemplate:       cfg.GetViewURLTemplate(opts.View),
	}, listview.Dependencies{
		Service:   s.source,
		Navigator: s.terminal,
		Notifier:  s.terminal,
		Confirmer: s.terminal,
	}, log)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to create list view: %w", err)
	}

	log.Debugw("Session opened", "session", s.ctrl.SessionID(), "parent", parentID)
	return s, nil
}

// Close releases the database connection and flushes the log.
func (s *session) Close() {
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.log.Warnw("Failed to close database", "error", err)
		}
	}
	_ = s.log.Sync()
}

// signalContext returns the command context cancelled on SIGINT or SIGTERM.
func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	return database.WithShutdownSignal(parent, func(sig os.Signal) {
		cmd.PrintErrf("Received %s, stopping...\n", sig)
	})
}

// applyFilters adds "field operator value" filter expressions.
func (s *session) applyFilters(exprs []string) error {
	for _, expr := range exprs {
		field, op, value, err := parseFilterExpr(expr)
		if err != nil {
			return err
		}
		if _, ok := s.ctrl.AddFilter(field, op, value); !ok {
			return fmt.Errorf("invalid filter %q", expr)
		}
	}
	return nil
}

// goToPage advances from page 1 to the requested page, stopping at the last.
func (s *session) goToPage(page int) {
	for s.ctrl.CurrentPage() < page && !s.ctrl.NextDisabled() {
		s.ctrl.NextPage()
	}
}
