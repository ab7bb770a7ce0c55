/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package tablestore

import (
	"context"
	"fmt"
	"reflect"

	"go.uber.org/zap"

	"github.com/suparena/tablestore/tableclient"
	"github.com/suparena/tablestore/tableclient/ddb"
)

// DB owns the remote client binding for one database instance. Schema
// structs embed DB so that a bound schema carries its own connection.
type DB struct {
	client tableclient.Client
}

// NewDB wraps an existing table client for use with NewTable. Schemas bound
// through Open or OpenWith do not need this.
func NewDB(client tableclient.Client) *DB {
	return &DB{client: client}
}

// Client returns the remote table client this database is bound to.
func (db *DB) Client() tableclient.Client {
	return db.client
}

type openConfig struct {
	cache  *PlanCache
	logger *zap.Logger
}

// Option configures Open and OpenWith.
type Option func(*openConfig)

// WithPlanCache uses a private construction-plan cache instead of the
// process-wide default.
func WithPlanCache(cache *PlanCache) Option {
	return func(c *openConfig) {
		c.cache = cache
	}
}

// WithLogger sets the structured logger passed down to the store client
// built by Open. The default discards all output.
func WithLogger(logger *zap.Logger) Option {
	return func(c *openConfig) {
		c.logger = logger
	}
}

// Open connects to the table store described by connectionString and binds
// every table field declared on schema, creating missing tables.
//
// Schema must be a non-nil pointer to a struct. Every exported field of type
// *Table[E] is populated with an accessor bound to a remote table named after
// the field (or its `tablestore:"..."` tag). The construction plan for a
// schema type is computed by reflection once and reused for all later Opens
// of the same type.
//
// Connection string parsing and table provisioning are delegated to the
// store client; their errors are returned unmodified.
func Open(ctx context.Context, connectionString string, schema any, opts ...Option) error {
	cfg := applyOptions(opts)

	var ddbOpts []ddb.Option
	if cfg.logger != nil {
		ddbOpts = append(ddbOpts, ddb.WithLogger(cfg.logger))
	}

	client, err := ddb.New(ctx, connectionString, ddbOpts...)
	if err != nil {
		return err
	}
	return openWith(ctx, client, schema, cfg)
}

// OpenWith binds schema against an already constructed table client. Tests
// use this with the in-memory client.
func OpenWith(ctx context.Context, client tableclient.Client, schema any, opts ...Option) error {
	return openWith(ctx, client, schema, applyOptions(opts))
}

func applyOptions(opts []Option) *openConfig {
	cfg := &openConfig{cache: defaultPlanCache}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.cache == nil {
		cfg.cache = defaultPlanCache
	}
	return cfg
}

func openWith(ctx context.Context, client tableclient.Client, schema any, cfg *openConfig) error {
	rv := reflect.ValueOf(schema)
	if rv.Kind() != reflect.Ptr || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("tablestore: schema must be a non-nil pointer to a struct, got %T", schema)
	}
	sv := rv.Elem()

	plan, err := cfg.cache.planFor(sv.Type())
	if err != nil {
		return err
	}

	// The embedded DB, when declared, is the owning database; otherwise the
	// accessors share an internal one.
	var db *DB
	if plan.dbIndex != nil {
		db = sv.FieldByIndex(plan.dbIndex).Addr().Interface().(*DB)
	} else {
		db = &DB{}
	}
	db.client = client

	for _, tf := range plan.tables {
		fv := sv.FieldByIndex(tf.index)
		tv := reflect.New(fv.Type().Elem())
		if err := tv.Interface().(tableBinder).bindTable(ctx, db, tf.name); err != nil {
			return err
		}
		fv.Set(tv)
	}
	return nil
}
