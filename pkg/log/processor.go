package log

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/mwantia/fabric/pkg/container"
)

const loggerTag = "logger"

// LoggerTagProcessor resolves `fabric:"logger"` and `fabric:"logger:<name>"`
// fields to the registered LoggerService, optionally narrowed with Named.
type LoggerTagProcessor struct{}

func NewLoggerTagProcessor() *LoggerTagProcessor {
	return &LoggerTagProcessor{}
}

// GetPriority places the processor ahead of the default inject processor.
func (ltp *LoggerTagProcessor) GetPriority() int {
	return 50
}

// CanProcess matches "logger" and "logger:<name>", case-insensitive.
func (ltp *LoggerTagProcessor) CanProcess(value string) bool {
	return strings.EqualFold(value, loggerTag) || strings.HasPrefix(strings.ToLower(value), loggerTag+":")
}

func (ltp *LoggerTagProcessor) Process(ctx context.Context, sc *container.ServiceContainer, field reflect.StructField, value string) (any, error) {
	ok, resolved := sc.ResolveByType(ctx, reflect.TypeOf((*LoggerService)(nil)).Elem())
	if !ok {
		return nil, fmt.Errorf("failed to resolve LoggerService for '%s': no logger service registered", field.Name)
	}

	base, ok := resolved.(LoggerService)
	if !ok {
		return nil, fmt.Errorf("resolved logger for '%s' is not a LoggerService", field.Name)
	}

	if _, name, found := strings.Cut(value, ":"); found {
		if name = strings.TrimSpace(name); name != "" {
			return base.Named(name), nil
		}
	}
	return base, nil
}

// ResolveLogger returns the container's LoggerService named after component,
// the same value a `fabric:"logger:<component>"` field would receive.
func ResolveLogger(ctx context.Context, sc *container.ServiceContainer, component string) (LoggerService, error) {
	resolved, err := NewLoggerTagProcessor().Process(ctx, sc, reflect.StructField{Name: component}, loggerTag+":"+component)
	if err != nil {
		return nil, err
	}
	return resolved.(LoggerService), nil
}
