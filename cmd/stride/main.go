package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/danvoss/stride/internal/cli"
	"github.com/danvoss/stride/internal/config"
	"github.com/danvoss/stride/internal/db"
	"github.com/danvoss/stride/internal/llm"
	"github.com/danvoss/stride/internal/repository"
	"github.com/danvoss/stride/internal/service"
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

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	contactRepo := repository.NewSQLiteContactRepo(database)
	packageRepo := repository.NewSQLiteWorkPackageRepo(database)
	phaseRepo := repository.NewSQLitePhaseRepo(database)
	itemRepo := repository.NewSQLiteItemRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	app := &cli.App{
		Contacts:     service.NewContactService(contactRepo),
		WorkPackages: service.NewWorkPackageService(packageRepo, uow),
		Phases:       service.NewPhaseService(phaseRepo, itemRepo, packageRepo, uow),
		Items:        service.NewItemService(itemRepo, phaseRepo, uow),
		Status:       service.NewStatusService(packageRepo, phaseRepo),
		Import:       service.NewImportService(uow),
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	// Outreach drafting is wired only when the LLM is enabled.
	llmCfg := cfg.LLMConfig()
	if llmCfg.Enabled {
		var observer llm.Observer = llm.NoopObserver{}
		if llmCfg.LogCalls {
			observer = llm.NewLogObserver(os.Stderr)
		}
		llmClient := llm.NewOllamaClient(llmCfg, observer)
		app.Outreach = service.NewOutreachService(contactRepo, llmClient, llmCfg)
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
