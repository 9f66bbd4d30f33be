package backend

import (
	"context"
	"errors"
	"fmt"

	"fintrack/internal/amqp"
	applog "fintrack/internal/log"
	"fintrack/internal/storage"
	"fintrack/internal/store/jsonfile"
	"fintrack/internal/store/memory"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *applog.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *applog.Logger) Factory {
	if logger == nil {
		logger = applog.Discard()
	}
	return &DefaultFactory{
		logger: logger.WithComponent(applog.ComponentBackend),
	}
}

// CreateBackend implements Factory.CreateBackend
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	var (
		result *BackendResult
		err    error
	)
	switch config.Type {
	case JSONBackend:
		result, err = f.createJSONBackend(ctx, config)
	case SQLiteBackend:
		result, err = f.createSQLiteBackend(ctx, config)
	case MemoryBackend:
		result, err = f.createMemoryBackend(ctx, config)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
	if err != nil {
		return nil, err
	}

	f.attachPublisher(ctx, config, result)
	return result, nil
}

func (f *DefaultFactory) createJSONBackend(ctx context.Context, config Config) (*BackendResult, error) {
	s := jsonfile.New(config.DataFile)
	f.logger.InfoContext(ctx, "Initialized JSON file backend", applog.FieldPath, s.Path())
	return &BackendResult{Store: s}, nil
}

func (f *DefaultFactory) createSQLiteBackend(ctx context.Context, config Config) (*BackendResult, error) {
	repo, err := storage.NewSQLiteRepository(ctx, config.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
	}

	f.logger.InfoContext(ctx, "Initialized SQLite backend", applog.FieldPath, config.SQLiteDBPath)
	return &BackendResult{Store: repo, Cleanup: repo.Close}, nil
}

func (f *DefaultFactory) createMemoryBackend(ctx context.Context, config Config) (*BackendResult, error) {
	s, err := memory.NewFromFile(ctx, config.DataFile)
	if err != nil {
		return nil, fmt.Errorf("failed to seed memory backend: %w", err)
	}

	f.logger.InfoContext(ctx, "Initialized memory backend, changes will not be written", applog.FieldPath, config.DataFile)
	return &BackendResult{Store: s}, nil
}

// attachPublisher connects to AMQP when configured. A broker that cannot be
// reached only disables events.
func (f *DefaultFactory) attachPublisher(ctx context.Context, config Config, result *BackendResult) {
	if config.AMQPURL == "" {
		return
	}

	logger := f.logger.With("exchange", config.AMQPExchange, "queue", config.AMQPQueue)
	client, err := amqp.NewClient(ctx, config.AMQPURL, config.AMQPExchange, config.AMQPQueue)
	if err != nil {
		logger.WarnContext(ctx, "Failed to initialize AMQP client, continuing without events",
			applog.FieldErrorType, applog.ErrorTypeNetwork,
			applog.FieldError, err)
		return
	}
	logger.InfoContext(ctx, "Initialized AMQP client")

	result.Publisher = client
	storeCleanup := result.Cleanup
	result.Cleanup = func() error {
		var errs []error
		if storeCleanup != nil {
			if err := storeCleanup(); err != nil {
				errs = append(errs, fmt.Errorf("storage: %w", err))
			}
		}
		if err := client.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
		return errors.Join(errs...)
	}
}
