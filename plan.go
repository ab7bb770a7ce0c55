/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package tablestore

import (
	"context"
	"fmt"
	"reflect"
	"sync"
)

// tableBinder is implemented by *Table[T] for every entity type T. Binding
// goes through this interface because the concrete Table type is not known
// at plan time.
type tableBinder interface {
	bindTable(ctx context.Context, db *DB, likelyName string) error
}

var (
	binderType = reflect.TypeOf((*tableBinder)(nil)).Elem()
	dbType     = reflect.TypeOf(DB{})
)

// tableField records one schema field to populate: where it lives and the
// likely table name derived from its declaration.
type tableField struct {
	index []int
	name  string
}

// schemaPlan is the construction plan for one concrete schema type: the
// embedded DB field (if any) and every table field with its resolved name.
type schemaPlan struct {
	dbIndex []int
	tables  []tableField
}

// PlanCache caches construction plans keyed by concrete schema type.
// Reflection over a schema type runs once; later Opens of the same type
// reuse the cached plan. The zero value is not usable; use NewPlanCache.
//
// Open uses a process-wide default cache. A private cache can be injected
// with WithPlanCache, which keeps tests and embedders free of shared state.
type PlanCache struct {
	mu    sync.RWMutex
	plans map[reflect.Type]*schemaPlan
}

// NewPlanCache creates an empty plan cache.
func NewPlanCache() *PlanCache {
	return &PlanCache{
		plans: make(map[reflect.Type]*schemaPlan),
	}
}

var defaultPlanCache = NewPlanCache()

// planFor returns the cached plan for t, computing and caching it on first
// use. Concurrent first-time callers may both compute; the plans are
// equivalent and the first one stored wins.
func (c *PlanCache) planFor(t reflect.Type) (*schemaPlan, error) {
	c.mu.RLock()
	plan := c.plans[t]
	c.mu.RUnlock()
	if plan != nil {
		return plan, nil
	}

	plan, err := computePlan(t)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if cached, ok := c.plans[t]; ok {
		return cached, nil
	}
	c.plans[t] = plan
	return plan, nil
}

// computePlan inspects a schema struct type and selects every field whose
// declared type is a table accessor.
func computePlan(t reflect.Type) (*schemaPlan, error) {
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("tablestore: schema type %s is not a struct", t)
	}

	plan := &schemaPlan{}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)

		if f.Anonymous && f.Type == dbType {
			plan.dbIndex = f.Index
			continue
		}

		if f.Type.Kind() != reflect.Ptr || !f.Type.Implements(binderType) {
			continue
		}
		if !f.IsExported() {
			return nil, fmt.Errorf("tablestore: table field %s.%s must be exported", t.Name(), f.Name)
		}

		name := f.Name
		if tag, ok := f.Tag.Lookup("tablestore"); ok {
			if tag == "-" {
				continue
			}
			if tag != "" {
				name = tag
			}
		}

		plan.tables = append(plan.tables, tableField{index: f.Index, name: name})
	}

	if len(plan.tables) == 0 {
		return nil, fmt.Errorf("tablestore: schema type %s declares no table fields", t)
	}
	return plan, nil
}
