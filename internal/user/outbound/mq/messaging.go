package mq

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/shandysiswandi/gopost/internal/pkg/instrument"
	"github.com/shandysiswandi/gopost/internal/pkg/messaging"
	"github.com/shandysiswandi/gopost/internal/shared/event"
	"github.com/shandysiswandi/gopost/internal/user/usecase"
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

func (m *Messaging) PublishUserEvent(ctx context.Context, ev usecase.UserEvent) error {
	ctx, span := m.ins.Tracer("user.outbound.mq").Start(ctx, "PublishUserEvent")
	defer span.End()
	span.SetAttributes(attribute.String("messaging.destination", ev.Name))

	body, err := json.Marshal(event.LifecycleMessage{
		ID:         ev.UserID,
		OccurredAt: ev.OccurredAt,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	cID := instrument.GetCorrelationID(ctx)
	if _, err := m.client.Publish(ctx, ev.Name, messaging.Message{
		Body:    body,
		Key:     strconv.FormatInt(ev.UserID, 10),
		Headers: map[string]string{keyOfCorrelationID: cID},
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
