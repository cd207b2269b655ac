package app

import (
	"context"
	"fmt"

	mongoRepo "github.com/ayyavumurugesan-construction/Ayyavu-Construction/internal/adapter/repository/mongodb"
	pgRepo "github.com/ayyavumurugesan-construction/Ayyavu-Construction/internal/adapter/repository/postgres"
	"github.com/ayyavumurugesan-construction/Ayyavu-Construction/internal/config"
	"github.com/ayyavumurugesan-construction/Ayyavu-Construction/internal/platform/logger"
	"github.com/ayyavumurugesan-construction/Ayyavu-Construction/internal/property/domain"
	"go.uber.org/zap"
)

// Stores are the listing and message repositories of the configured driver.
type Stores struct {
	Listings domain.ListingRepository
	Messages domain.MessageRepository
	close    func(ctx context.Context)
}

// Close releases the underlying connection.
func (s *Stores) Close(ctx context.Context) {
	if s.close != nil {
		s.close(ctx)
	}
}

// OpenStores connects to the store selected by STORE_DRIVER. Schema and
// indexes are ensured on the way.
func OpenStores(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Stores, error) {
	switch cfg.StoreDriver {
	case config.StorePostgres:
		return openPostgres(ctx, cfg, log)
	case config.StoreMongo:
		return openMongo(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("unknown store driver '%s'", cfg.StoreDriver)
	}
}

func openMongo(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Stores, error) {
	client, err := mongoRepo.NewClient(ctx, cfg.MongoURI)
	if err != nil {
		return nil, err
	}
	log.Info("Successfully connected and pinged MongoDB.", zap.String("database", cfg.MongoDatabase))
	db := client.Database(cfg.MongoDatabase)

	listings, err := mongoRepo.NewListingRepository(db, log)
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to initialize listing repository: %w", err)
	}
	messages, err := mongoRepo.NewMessageRepository(db, log)
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to initialize message repository: %w", err)
	}

	if err := listings.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	if err := messages.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	return &Stores{
		Listings: listings,
		Messages: messages,
		close: func(ctx context.Context) {
			log.Info("Disconnecting from MongoDB...")
			if err := client.Disconnect(ctx); err != nil {
				log.Error("Error disconnecting from MongoDB", zap.Error(err))
			}
		},
	}, nil
}

func openPostgres(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Stores, error) {
	pool, err := pgRepo.NewClient(ctx, pgRepo.Config{DatabaseURL: cfg.DatabaseURL})
	if err != nil {
		return nil, err
	}
	log.Info("Successfully connected to PostgreSQL.")

	if err := pgRepo.EnsureSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	listings, err := pgRepo.NewListingRepository(pool, log)
	if err != nil {
		pool.Close()
		return nil, err
	}
	messages, err := pgRepo.NewMessageRepository(pool, log)
	if err != nil {
		pool.Close()
		return nil, err
	}

	return &Stores{
		Listings: listings,
		Messages: messages,
		close: func(context.Context) {
			log.Info("Closing PostgreSQL pool...")
			pool.Close()
		},
	}, nil
}
