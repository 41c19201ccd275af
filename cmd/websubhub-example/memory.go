package main

import (
	"context"
	"sync"

	"github.com/asecurityteam/runhttp"
	"github.com/asecurityteam/websubhub/pkg/domain"
)

type contentReceived struct {
	Topic       string `logevent:"topic"`
	Subscribers int    `logevent:"subscribers"`
	Message     string `logevent:"message,default=content-received"`
}

type subscriptionVerified struct {
	Mode     string `logevent:"mode"`
	Topic    string `logevent:"topic"`
	Callback string `logevent:"callback"`
	Message  string `logevent:"message,default=subscription-verified"`
}

// memoryHub keeps topics and verified subscribers in memory. Content
// distribution is out of scope; updates are only logged.
type memoryHub struct {
	lock   sync.Mutex
	topics map[string]map[string]struct{}
}

func newMemoryHub() *memoryHub {
	return &memoryHub{topics: make(map[string]map[string]struct{})}
}

func param(req domain.Request, key string) string {
	v, _ := req.Message[key].(string)
	return v
}

func (h *memoryHub) OnRegisterTopic(_ context.Context, req domain.Request) (domain.Response, error) {
	topic := param(req, "hub.topic")
	if topic == "" {
		return domain.Response{}, domain.NewTopicRegistrationError("hub.topic is required")
	}
	h.lock.Lock()
	defer h.lock.Unlock()
	if _, ok := h.topics[topic]; ok {
		return domain.Response{}, domain.NewTopicRegistrationError("topic (%s) is already registered", topic)
	}
	h.topics[topic] = make(map[string]struct{})
	return domain.Response{}, nil
}

func (h *memoryHub) OnDeregisterTopic(_ context.Context, req domain.Request) (domain.Response, error) {
	topic := param(req, "hub.topic")
	h.lock.Lock()
	defer h.lock.Unlock()
	if _, ok := h.topics[topic]; !ok {
		return domain.Response{}, domain.NewTopicDeregistrationError("topic (%s) is not registered", topic)
	}
	delete(h.topics, topic)
	return domain.Response{}, nil
}

func (h *memoryHub) OnUpdateMessage(ctx context.Context, req domain.Request) (domain.Response, error) {
	topic := param(req, "hub.topic")
	h.lock.Lock()
	subscribers, ok := h.topics[topic]
	count := len(subscribers)
	h.lock.Unlock()
	if !ok {
		return domain.Response{}, domain.NewUpdateMessageError("topic (%s) is not registered", topic)
	}
	runhttp.LoggerFromContext(ctx).Info(contentReceived{Topic: topic, Subscribers: count})
	return domain.Response{}, nil
}

func (h *memoryHub) OnSubscription(_ context.Context, req domain.Request) (domain.Response, error) {
	topic := param(req, "hub.topic")
	h.lock.Lock()
	defer h.lock.Unlock()
	if _, ok := h.topics[topic]; !ok {
		return domain.Response{}, domain.NewBadSubscriptionError("topic (%s) is not registered", topic)
	}
	return domain.Response{}, nil
}

func (h *memoryHub) OnSubscriptionIntentVerified(ctx context.Context, req domain.Request) (domain.Response, error) {
	topic, callback := param(req, "hub.topic"), param(req, "hub.callback")
	h.lock.Lock()
	defer h.lock.Unlock()
	subscribers, ok := h.topics[topic]
	if !ok {
		return domain.Response{}, domain.NewSubscriptionInternalError("topic (%s) was removed", topic)
	}
	subscribers[callback] = struct{}{}
	runhttp.LoggerFromContext(ctx).Info(subscriptionVerified{Mode: "subscribe", Topic: topic, Callback: callback})
	return domain.Response{}, nil
}

func (h *memoryHub) OnUnsubscription(_ context.Context, req domain.Request) (domain.Response, error) {
	topic, callback := param(req, "hub.topic"), param(req, "hub.callback")
	h.lock.Lock()
	defer h.lock.Unlock()
	if _, ok := h.topics[topic][callback]; !ok {
		return domain.Response{}, domain.NewUnsubscriptionDeniedError("callback (%s) is not subscribed to (%s)", callback, topic)
	}
	return domain.Response{}, nil
}

func (h *memoryHub) OnUnsubscriptionIntentVerified(ctx context.Context, req domain.Request) (domain.Response, error) {
	topic, callback := param(req, "hub.topic"), param(req, "hub.callback")
	h.lock.Lock()
	defer h.lock.Unlock()
	delete(h.topics[topic], callback)
	runhttp.LoggerFromContext(ctx).Info(subscriptionVerified{Mode: "unsubscribe", Topic: topic, Callback: callback})
	return domain.Response{}, nil
}
