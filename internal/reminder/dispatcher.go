// Package reminder registers one-shot reminder tasks with an external
// delayed-task dispatch service. The core never runs its own timer loop;
// once a task is accepted here, firing it is the dispatcher's problem.
package reminder

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/scheduler"
	"github.com/aws/aws-sdk-go-v2/service/scheduler/types"
	"github.com/google/uuid"

	"github.com/juridia/juridia-platform/pkg/logging"
)

// fireTimeLayout is ISO-8601 at seconds precision. The dispatch service
// rejects expressions carrying fractional seconds, so the fire time is
// truncated before formatting.
const fireTimeLayout = "2006-01-02T15:04:05"

// Task is a one-shot reminder job keyed by the appointment it announces.
type Task struct {
	AppointmentID string
	FireAt        time.Time
}

// Name returns the task's unique schedule name.
func (t Task) Name() string {
	return "reminder-" + t.AppointmentID
}

// Dispatcher registers reminder tasks with the external scheduling service.
type Dispatcher interface {
	Register(ctx context.Context, task Task) error
}

// FireTime computes when the reminder for an appointment at appointmentAt
// should fire: lead before the appointment, or minDelay from now when that
// moment has already passed. Late bookings therefore get a very short-notice
// reminder rather than none.
func FireTime(appointmentAt, now time.Time, lead, minDelay time.Duration) time.Time {
	fireAt := appointmentAt.Add(-lead)
	if !fireAt.After(now) {
		return now.Add(minDelay)
	}
	return fireAt
}

// Expression renders the dispatch service's one-shot schedule expression,
// at(...) in UTC with the fractional-seconds component stripped.
func Expression(fireAt time.Time) string {
	return fmt.Sprintf("at(%s)", fireAt.UTC().Truncate(time.Second).Format(fireTimeLayout))
}

// SchedulerAPI is the EventBridge Scheduler surface the dispatcher uses.
type SchedulerAPI interface {
	CreateSchedule(ctx context.Context, params *scheduler.CreateScheduleInput, optFns ...func(*scheduler.Options)) (*scheduler.CreateScheduleOutput, error)
}

// Config identifies the dispatch target.
type Config struct {
	GroupName string
	TargetArn string
	RoleArn   string
}

// EventBridgeDispatcher registers tasks as EventBridge one-shot schedules.
type EventBridgeDispatcher struct {
	client SchedulerAPI
	cfg    Config
	logger *logging.Logger
}

// NewEventBridgeDispatcher creates the production dispatcher.
func NewEventBridgeDispatcher(client SchedulerAPI, cfg Config, logger *logging.Logger) *EventBridgeDispatcher {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.GroupName == "" {
		cfg.GroupName = "default"
	}
	return &EventBridgeDispatcher{client: client, cfg: cfg, logger: logger}
}

type taskPayload struct {
	AppointmentID string `json:"appointmentId"`
}

// Register creates the one-shot schedule carrying the appointment id as
// payload. Registration is at-most-once per task name; it is never retried
// or rescheduled by this core.
func (d *EventBridgeDispatcher) Register(ctx context.Context, task Task) error {
	payload, err := json.Marshal(taskPayload{AppointmentID: task.AppointmentID})
	if err != nil {
		return fmt.Errorf("reminder: encode payload: %w", err)
	}

	_, err = d.client.CreateSchedule(ctx, &scheduler.CreateScheduleInput{
		Name:               aws.String(task.Name()),
		GroupName:          aws.String(d.cfg.GroupName),
		ScheduleExpression: aws.String(Expression(task.FireAt)),
		FlexibleTimeWindow: &types.FlexibleTimeWindow{Mode: types.FlexibleTimeWindowModeOff},
		Target: &types.Target{
			Arn:     aws.String(d.cfg.TargetArn),
			RoleArn: aws.String(d.cfg.RoleArn),
			Input:   aws.String(string(payload)),
		},
		ClientToken: aws.String(uuid.NewString()),
	})
	if err != nil {
		return fmt.Errorf("reminder: create schedule %s: %w", task.Name(), err)
	}

	d.logger.Info("reminder registered",
		"schedule", task.Name(),
		"fire_at", Expression(task.FireAt),
	)
	return nil
}
