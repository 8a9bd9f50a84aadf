package mq

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"
)

// HandlerFunc consumes an encoded event. The broker consumer and Inline
// share it so both paths see the same bytes.
type HandlerFunc func(ctx context.Context, routingKey string, body []byte) error

// Inline hands events straight to a handler when no broker is configured.
type Inline struct {
	log    *zap.Logger
	handle HandlerFunc
}

func NewInline(logger *zap.Logger, handle HandlerFunc) *Inline {
	return &Inline{log: logger, handle: handle}
}

func (i *Inline) Publish(ctx context.Context, e Event) {
	b, err := json.Marshal(e)
	if err != nil {
		i.log.Error("inline event marshal error", zap.Error(err))
		return
	}
	if i.handle == nil {
		return
	}
	// handlers must outlive the request context
	if err = i.handle(context.WithoutCancel(ctx), e.Action, b); err != nil {
		i.log.Error("inline event handler error", zap.Error(err), zap.String("action", e.Action))
	}
}
