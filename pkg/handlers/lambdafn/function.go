package lambdafn

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/asecurityteam/logevent/v2"
	"github.com/asecurityteam/websubhub/pkg/adaptor"
	"github.com/asecurityteam/websubhub/pkg/domain"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/rs/xstats"
	"github.com/tidwall/gjson"
)

const (
	fieldOperation = "operation"
	fieldMessage   = "message"
	fieldHeaders   = "headers"
)

// ErrInvalidEvent is returned for payloads that are not JSON objects.
var ErrInvalidEvent = errors.New("event is not a valid JSON object")

// UnknownOperationError is returned when an event names an operation the
// hub does not define.
type UnknownOperationError struct {
	Operation string
}

func (e UnknownOperationError) Error() string {
	return fmt.Sprintf("operation (%s) is not a hub operation", e.Operation)
}

// Function handles hub events delivered by the Lambda runtime.
type Function struct {
	Adaptor *adaptor.Adaptor
	// Logger is injected into the context of every event. Lambda events
	// do not pass through the HTTP middleware that would normally do this.
	Logger domain.Logger
	// Stat is injected into the context of every event.
	Stat domain.Stat
}

// Handle decodes the event and waits for the named operation to complete.
func (f *Function) Handle(ctx context.Context, payload json.RawMessage) (domain.Response, error) {
	if f.Logger != nil {
		ctx = logevent.NewContext(ctx, f.Logger.Copy())
	}
	if f.Stat != nil {
		ctx = xstats.NewContext(ctx, f.Stat)
	}
	op, msg, headers, err := decodeEvent(payload)
	if err != nil {
		return domain.Response{}, err
	}
	o, err := f.Adaptor.Call(ctx, op, msg, headers).Wait(ctx)
	if err != nil {
		return domain.Response{}, err
	}
	return o.Response, o.Err
}

// NewHandler wraps the Function for use with lambda.StartHandler.
func NewHandler(f *Function) lambda.Handler {
	return lambda.NewHandler(f.Handle)
}

func decodeEvent(payload []byte) (domain.Operation, domain.Message, domain.Headers, error) {
	if !gjson.ValidBytes(payload) || !gjson.ParseBytes(payload).IsObject() {
		return "", nil, nil, ErrInvalidEvent
	}
	name := gjson.GetBytes(payload, fieldOperation).String()
	op, ok := lookupOperation(name)
	if !ok {
		return "", nil, nil, UnknownOperationError{Operation: name}
	}

	msg := domain.Message{}
	if m := gjson.GetBytes(payload, fieldMessage); m.IsObject() {
		if err := json.Unmarshal([]byte(m.Raw), &msg); err != nil {
			return "", nil, nil, err
		}
	}

	headers := domain.Headers{}
	gjson.GetBytes(payload, fieldHeaders).ForEach(func(key, value gjson.Result) bool {
		if value.IsArray() {
			for _, v := range value.Array() {
				headers.Add(key.String(), v.String())
			}
			return true
		}
		headers.Add(key.String(), value.String())
		return true
	})
	return op, msg, headers, nil
}

func lookupOperation(name string) (domain.Operation, bool) {
	for _, op := range domain.Operations() {
		if string(op) == name {
			return op, true
		}
	}
	return "", false
}
