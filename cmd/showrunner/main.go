package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"github.com/showrunnerhq/showrunner/internal/cli"
	"github.com/showrunnerhq/showrunner/internal/config"
	"github.com/showrunnerhq/showrunner/internal/db"
	"github.com/showrunnerhq/showrunner/internal/repository"
	"github.com/showrunnerhq/showrunner/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if dir := filepath.Dir(cfg.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating data directory: %w", err)
		}
	}

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	itemRepo := repository.NewSQLiteTimelineItemRepo(database)
	depRepo := repository.NewSQLiteDependencyRepo(database)
	laneRepo := repository.NewSQLiteLaneRepo(database)
	approvalRepo := repository.NewSQLiteApprovalRepo(database)
	ruleRepo := repository.NewSQLiteAssignmentRuleRepo(database)
	linkRepo := repository.NewSQLiteRecordLinkRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	// Service telemetry goes to stderr only when asked for.
	var observer service.UseCaseObserver
	if os.Getenv("SHOWRUNNER_DEBUG") != "" {
		observer = service.NewLogUseCaseObserver(os.Stderr)
	}

	app := &cli.App{
		Items:     service.NewTimelineItemService(itemRepo, laneRepo),
		Lanes:     service.NewLaneService(laneRepo, itemRepo, observer),
		Deps:      service.NewDependencyService(depRepo, itemRepo, uow),
		Approvals: service.NewApprovalService(approvalRepo, uow, observer),
		Rules:     service.NewAssignmentRuleService(ruleRepo, linkRepo, observer),
		Schedule:  service.NewScheduleService(itemRepo, observer),
		Import:    service.NewImportService(uow, observer),
		Config:    cfg,
	}

	// Interactive review flows need a real terminal.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
