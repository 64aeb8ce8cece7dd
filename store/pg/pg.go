package pg

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gclaussn/go-bpmn-schema/codec"
	"github.com/gclaussn/go-bpmn-schema/model"
	"github.com/gclaussn/go-bpmn-schema/store"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const applicationName = "go-bpmn-schema"

func New(databaseUrl string, customizers ...func(*Options)) (store.Store, error) {
	if databaseUrl == "" {
		return nil, errors.New("database URL is empty")
	}

	options := NewOptions()
	for _, customizer := range customizers {
		customizer(&options)
	}

	if err := options.Validate(); err != nil {
		return nil, err
	}

	pgPoolConfig, err := pgxpool.ParseConfig(databaseUrl)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %v", err)
	}

	if _, ok := pgPoolConfig.ConnConfig.RuntimeParams["application_name"]; !ok {
		pgPoolConfig.ConnConfig.RuntimeParams["application_name"] = applicationName
	}

	if databaseSchema, ok := pgPoolConfig.ConnConfig.RuntimeParams["search_path"]; ok {
		options.databaseSchema = databaseSchema
	}

	pgPoolCtx, pgPoolCancel := context.WithTimeout(context.Background(), options.Timeout)
	defer pgPoolCancel()

	pgPool, err := pgxpool.NewWithConfig(pgPoolCtx, pgPoolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create database connection pool: %v", err)
	}

	requireCtx, requireCancel := context.WithCancel(context.Background())

	pgStore := pgStore{
		requireCtx:    requireCtx,
		requireCancel: requireCancel,

		options:   options,
		pgPool:    pgPool,
		txTimeout: options.Timeout,
	}

	if err := pgStore.migrateDatabase(); err != nil {
		pgStore.Shutdown()
		return nil, fmt.Errorf("failed to migrate database: %v", err)
	}

	return &pgStore, nil
}

func NewOptions() Options {
	return Options{
		Common: store.NewOptions(),

		Timeout: 30 * time.Second,

		databaseSchema: "public",
	}
}

type Options struct {
	Common store.Options // Common store options.

	Timeout time.Duration // Time limit for database transactions, utilized when the provided context has no deadline.

	databaseSchema string // derived from database URL - see runtime parameter "search_path"
}

func (o Options) Validate() error {
	if o.Timeout <= 0 {
		return errors.New("timeout must be greater than 0")
	}
	return o.Common.Validate()
}

type pgStore struct {
	requireCtx    context.Context    // used to prevent the requiring of a transaction, when the store is shut down
	requireCancel context.CancelFunc // invoked when a shutdown is initiated
	shutdownOnce  sync.Once          // used to prevent more than one shutdown

	options   Options
	pgPool    *pgxpool.Pool
	txTimeout time.Duration // utilized when the provided context has no deadline
}

// pgContext holds a transaction and the time, at which the transaction has been started.
type pgContext struct {
	options Options

	tx    pgx.Tx
	txCtx context.Context

	time time.Time
}

func (c *pgContext) Diagrams() diagramRepository {
	return diagramRepository{tx: c.tx, txCtx: c.txCtx}
}

// withTimeout returns a context, which is limited by the configured timeout, if the given context has no deadline.
func (s *pgStore) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.txTimeout)
}

func (s *pgStore) require(ctx context.Context) (*pgContext, error) {
	now := time.Now()

	select {
	case <-s.requireCtx.Done():
		return nil, errors.New("store is shut down")
	default:
	}

	tx, err := s.pgPool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %v", err)
	}

	return &pgContext{
		options: s.options,

		tx:    tx,
		txCtx: ctx,

		// must be UTC and truncated to millis, since TIMESTAMP(3) is used
		time: now.UTC().Truncate(time.Millisecond),
	}, nil
}

func (s *pgStore) release(pgCtx *pgContext, err error) error {
	if err != nil {
		_ = pgCtx.tx.Rollback(pgCtx.txCtx)
	} else {
		err = pgCtx.tx.Commit(pgCtx.txCtx)
	}
	return err
}

func (s *pgStore) migrateDatabase() error {
	ctx, cancel := s.withTimeout(context.Background())
	defer cancel()

	pgCtx, err := s.require(ctx)
	if err != nil {
		return err
	}

	return s.release(pgCtx, migrateDatabase(pgCtx))
}

func (s *pgStore) Save(ctx context.Context, cmd store.SaveCmd) (store.Record, error) {
	record, err := store.Prepare(cmd, s.options.Common)
	if err != nil {
		return store.Record{}, err
	}

	document, err := codec.EncodeJSON(cmd.Diagram)
	if err != nil {
		return store.Record{}, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	pgCtx, err := s.require(ctx)
	if err != nil {
		return store.Record{}, err
	}

	record, err = saveDiagram(pgCtx, cmd, record, document)
	return record, s.release(pgCtx, err)
}

func (s *pgStore) Load(ctx context.Context, diagramId string) (*model.Diagram, store.Record, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	pgCtx, err := s.require(ctx)
	if err != nil {
		return nil, store.Record{}, err
	}

	entity, err := pgCtx.Diagrams().Select(diagramId)
	if err == pgx.ErrNoRows {
		err = store.NewNotFoundError("failed to load diagram", diagramId)
	}
	if err := s.release(pgCtx, err); err != nil {
		return nil, store.Record{}, err
	}

	d, err := codec.DecodeJSON(entity.Document)
	if err != nil {
		return nil, store.Record{}, err
	}
	return d, entity.Record(), nil
}

func (s *pgStore) Query(ctx context.Context, criteria store.Criteria) ([]store.Record, error) {
	if err := criteria.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	pgCtx, err := s.require(ctx)
	if err != nil {
		return nil, err
	}

	records, err := pgCtx.Diagrams().Query(criteria, s.options.Common.DefaultQueryLimit)
	return records, s.release(pgCtx, err)
}

func (s *pgStore) Delete(ctx context.Context, diagramId string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	pgCtx, err := s.require(ctx)
	if err != nil {
		return err
	}

	deleted, err := pgCtx.Diagrams().Delete(diagramId)
	if err == nil && !deleted {
		err = store.NewNotFoundError("failed to delete diagram", diagramId)
	}
	return s.release(pgCtx, err)
}

func (s *pgStore) Shutdown() {
	s.shutdownOnce.Do(func() {
		s.requireCancel()
		s.pgPool.Close()
	})
}

// saveDiagram checks the expected revision and inserts or updates the diagram.
func saveDiagram(ctx *pgContext, cmd store.SaveCmd, record store.Record, document []byte) (store.Record, error) {
	actual, err := ctx.Diagrams().SelectRevision(record.DiagramId)
	if err != nil && err != pgx.ErrNoRows {
		return store.Record{}, err
	}

	if cmd.Revision != 0 && cmd.Revision != actual {
		return store.Record{}, store.NewConflictError(record.DiagramId, cmd.Revision, actual)
	}

	record.SavedAt = ctx.time

	entity := diagramEntity{
		Id: record.DiagramId,

		Document:     document,
		ErrorCount:   record.Errors,
		InfoCount:    record.Infos,
		Name:         record.Name,
		SavedAt:      record.SavedAt,
		Version:      record.Version,
		WarningCount: record.Warnings,
	}

	if err := ctx.Diagrams().Upsert(&entity); err != nil {
		return store.Record{}, err
	}

	record.Revision = entity.Revision
	return record, nil
}
