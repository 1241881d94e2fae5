package mq

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/shandysiswandi/gopost/internal/auth/usecase"
	"github.com/shandysiswandi/gopost/internal/pkg/instrument"
	"github.com/shandysiswandi/gopost/internal/pkg/messaging"
	"github.com/shandysiswandi/gopost/internal/shared/event"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const keyOfCorrelationID string = "cID"

type Messaging struct {
	client messaging.Messaging
	ins    instrument.Instrumentation
}

func NewMessaging(client messaging.Messaging, ins instrument.Instrumentation) *Messaging {
	return &Messaging{client: client, ins: ins}
}

// PublishUserCreated announces a signup on the same topic as profile creation.
func (m *Messaging) PublishUserCreated(ctx context.Context, ev usecase.UserCreatedEvent) (err error) {
	ctx, span := m.ins.Tracer("auth.outbound.mq").Start(ctx, "PublishUserCreated")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()
	span.SetAttributes(attribute.String("messaging.destination", event.UserCreated))

	body, err := json.Marshal(event.LifecycleMessage{ID: ev.UserID, OccurredAt: ev.OccurredAt})
	if err != nil {
		return err
	}

	cID := instrument.GetCorrelationID(ctx)
	_, err = m.client.Publish(ctx, event.UserCreated, messaging.Message{
		Body:    body,
		Key:     strconv.FormatInt(ev.UserID, 10),
		Headers: map[string]string{keyOfCorrelationID: cID},
	})
	return err
}
