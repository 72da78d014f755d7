package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"creatorverse.backend/internal/config"
	"creatorverse.backend/internal/domain/entities"
	"creatorverse.backend/internal/infrastructure/datasources/postgres"
	"creatorverse.backend/internal/infrastructure/repositories"
	"creatorverse.backend/internal/usecases"
)

var openCreatorAdminDB = func(cfg config.DatabaseConfig) (*gorm.DB, error) {
	return postgres.NewConnection(cfg)
}

var openCreatorAdminSQLDB = func(db *gorm.DB) (io.Closer, error) {
	return db.DB()
}

type creatorAdminRuntime interface {
	ListCreators(ctx context.Context) ([]*entities.Creator, error)
	AddCreator(ctx context.Context, fields entities.CreatorFields) (*entities.Creator, error)
}

type creatorAdminDeps struct {
	loadEnv func() error
	loadCfg func() *config.Config
	prepare func(cfg *config.Config) (creatorAdminRuntime, io.Closer, error)
	out     io.Writer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func defaultCreatorAdminDeps() creatorAdminDeps {
	return creatorAdminDeps{
		loadEnv: func() error { return godotenv.Load() },
		loadCfg: config.Load,
		prepare: func(cfg *config.Config) (creatorAdminRuntime, io.Closer, error) {
			db, err := openCreatorAdminDB(cfg.Database)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to connect db: %w", err)
			}

			sqlDB, err := openCreatorAdminSQLDB(db)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to init sql db: %w", err)
			}

			repo := repositories.NewCreatorRepository(db)
			return usecases.NewCreatorUsecase(repo, cfg.Store.CallTimeout), sqlDB, nil
		},
		out: os.Stdout,
	}
}

// runCreatorAdmin lists the stored creators, or adds one when -name is given.
func runCreatorAdmin(args []string, deps creatorAdminDeps) error {
	if deps.loadEnv == nil {
		deps.loadEnv = func() error { return godotenv.Load() }
	}
	if deps.loadCfg == nil {
		deps.loadCfg = config.Load
	}
	if deps.prepare == nil {
		deps.prepare = defaultCreatorAdminDeps().prepare
	}
	if deps.out == nil {
		deps.out = os.Stdout
	}

	fs := flag.NewFlagSet("creator-admin", flag.ContinueOnError)
	fs.SetOutput(deps.out)
	list := fs.Bool("list", false, "print every stored creator, newest first")
	name := fs.String("name", "", "creator name")
	url := fs.String("url", "", "channel URL")
	description := fs.String("description", "", "what the creator makes")
	imageURL := fs.String("image", "", "image URL (optional)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	fields := entities.CreatorFields{
		Name:        *name,
		URL:         *url,
		Description: *description,
		ImageURL:    *imageURL,
	}
	adding := *name != "" || *url != "" || *description != ""
	if !adding && !*list {
		return errors.New("nothing to do: pass -list or -name/-url/-description")
	}
	if adding {
		if err := fields.Validate(); err != nil {
			return err
		}
	}

	if err := deps.loadEnv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := deps.loadCfg()
	runtime, closer, err := deps.prepare(cfg)
	if err != nil {
		return err
	}
	if closer == nil {
		closer = nopCloser{}
	}
	defer closer.Close()

	ctx := context.Background()
	if adding {
		created, err := runtime.AddCreator(ctx, fields)
		if err != nil {
			return fmt.Errorf("failed adding creator: %w", err)
		}
		_, _ = fmt.Fprintf(deps.out, "created id=%s name=%q\n", created.ID, created.Name)
	}

	if *list {
		creators, err := runtime.ListCreators(ctx)
		if err != nil {
			return fmt.Errorf("failed listing creators: %w", err)
		}
		for _, c := range creators {
			_, _ = fmt.Fprintf(deps.out, "%s\t%s\t%s\t%s\n", c.ID, c.CreatedAt.Format(time.RFC3339), c.Name, c.URL)
		}
		_, _ = fmt.Fprintf(deps.out, "%d saved\n", len(creators))
	}
	return nil
}

func main() {
	if err := runCreatorAdmin(os.Args[1:], defaultCreatorAdminDeps()); err != nil {
		log.Fatal(err)
	}
}
