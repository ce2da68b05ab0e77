package logging

import (
	"context"
	"maps"
	"sort"

	"github.com/goliatone/go-notionmd/pkg/interfaces"
)

// Field keys shared by every component that logs conversion activity.
const (
	FieldModule     = "module"
	FieldCommand    = "command"
	FieldRunID      = "run_id"
	FieldOutputPath = "output_path"
	FieldPageID     = "page_id"
	FieldBlockType  = "block_type"
	FieldBlockID    = "block_id"
	FieldProperty   = "property"
	FieldError      = "error"
)

// leadingFields are rendered first, in this order, by text formatters.
var leadingFields = []string{
	FieldModule,
	FieldCommand,
	FieldRunID,
	FieldPageID,
	FieldBlockType,
	FieldBlockID,
	FieldProperty,
}

// OrderedKeys returns the keys of fields with the conversion identifiers
// first and the remaining keys sorted.
func OrderedKeys(fields map[string]any) []string {
	if len(fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(fields))
	leading := make(map[string]struct{}, len(leadingFields))
	for _, key := range leadingFields {
		leading[key] = struct{}{}
		if _, ok := fields[key]; ok {
			keys = append(keys, key)
		}
	}
	rest := make([]string, 0, len(fields)-len(keys))
	for key := range fields {
		if _, ok := leading[key]; !ok {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	return append(keys, rest...)
}

// WithFields attaches fields when logger implements interfaces.FieldsLogger.
func WithFields(logger interfaces.Logger, fields map[string]any) interfaces.Logger {
	if logger == nil || len(fields) == 0 {
		return logger
	}
	if fieldsLogger, ok := logger.(interfaces.FieldsLogger); ok {
		return fieldsLogger.WithFields(maps.Clone(fields))
	}
	return logger
}

type contextKey struct{}

// ContextWithFields returns a context whose fields are merged into entries
// written by loggers bound to it through WithContext.
func ContextWithFields(ctx context.Context, fields map[string]any) context.Context {
	if ctx == nil || len(fields) == 0 {
		return ctx
	}
	merged := ContextFields(ctx)
	if merged == nil {
		merged = make(map[string]any, len(fields))
	}
	maps.Copy(merged, fields)
	return context.WithValue(ctx, contextKey{}, merged)
}

// ContextFields returns a copy of the fields carried by ctx.
func ContextFields(ctx context.Context) map[string]any {
	if ctx == nil {
		return nil
	}
	fields, _ := ctx.Value(contextKey{}).(map[string]any)
	if len(fields) == 0 {
		return nil
	}
	return maps.Clone(fields)
}
