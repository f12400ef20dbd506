package workers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/triptrizz/triptrizz-server/internal/services"
	"github.com/triptrizz/triptrizz-server/pkg/logger"
	"github.com/triptrizz/triptrizz-server/pkg/queue"
)

// ActivityWorker consumes domain events and materializes the activity feed
// through the activity service.
type ActivityWorker struct {
	activityService *services.ActivityService
	consumer        *queue.KafkaConsumer
	logger          *logger.Logger
	cancel          context.CancelFunc
}

func NewActivityWorker(activityService *services.ActivityService, consumer *queue.KafkaConsumer, logger *logger.Logger) *ActivityWorker {
	return &ActivityWorker{
		activityService: activityService,
		consumer:        consumer,
		logger:          logger,
	}
}

func (w *ActivityWorker) Start(ctx context.Context) error {
	ctx, w.cancel = context.WithCancel(ctx)
	w.logger.Info("Starting activity worker")

	return w.consumer.Subscribe(ctx, func(msg queue.Message) error {
		var event queue.Event
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			return fmt.Errorf("failed to unmarshal event: %w", err)
		}
		return w.Handle(ctx, event)
	})
}

// Handle maps one domain event to at most one feed entry. Unknown event
// types are skipped, not failed: the topic also carries events the feed does
// not render.
func (w *ActivityWorker) Handle(ctx context.Context, event queue.Event) error {
	data, ok := event.Data.(map[string]interface{})
	if !ok {
		return fmt.Errorf("invalid event data for %s", event.Type)
	}

	var actorID, verb, objectKind, objectID string

	switch event.Type {
	case queue.EventFollowAccepted:
		actorID = stringField(data, "following_id")
		verb = "accepted_follow"
		objectKind = "user"
		objectID = stringField(data, "follower_id")
	case queue.EventMatchCreated:
		actorID = stringField(data, "user_a")
		verb = "matched"
		objectKind = "user"
		objectID = stringField(data, "user_b")
	case queue.EventTripCreated:
		actorID = stringField(data, "owner_id")
		verb = "created_trip"
		objectKind = "trip"
		objectID = stringField(data, "trip_id")
	case queue.EventPostCreated:
		actorID = stringField(data, "author_id")
		verb = "posted"
		objectKind = "post"
		objectID = stringField(data, "post_id")
	default:
		return nil
	}

	if actorID == "" || objectID == "" {
		return fmt.Errorf("event %s is missing actor or object", event.Type)
	}

	if _, err := w.activityService.RecordEvent(ctx, actorID, verb, objectKind, objectID, event.Timestamp); err != nil {
		return fmt.Errorf("failed to record activity for %s: %w", event.Type, err)
	}

	w.logger.WithFields(map[string]interface{}{
		"event_type": event.Type,
		"actor_id":   actorID,
	}).Info("Activity event recorded")

	return nil
}

func (w *ActivityWorker) Stop() error {
	if w.cancel != nil {
		w.cancel()
	}
	return nil
}

func stringField(data map[string]interface{}, key string) string {
	v, _ := data[key].(string)
	return v
}
