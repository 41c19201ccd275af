package v1

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/asecurityteam/websubhub/pkg/adaptor"
	"github.com/asecurityteam/websubhub/pkg/dispatch"
	"github.com/asecurityteam/websubhub/pkg/domain"
	"github.com/google/uuid"
)

const (
	paramMode         = "hub.mode"
	paramTopic        = "hub.topic"
	paramCallback     = "hub.callback"
	paramChallenge    = "hub.challenge"
	paramLeaseSeconds = "hub.lease_seconds"
	paramReason       = "hub.reason"

	modeRegister    = "register"
	modeDeregister  = "deregister"
	modePublish     = "publish"
	modeSubscribe   = "subscribe"
	modeUnsubscribe = "unsubscribe"
	modeAccepted    = "accepted"
	modeDenied      = "denied"

	mediaTypeForm = "application/x-www-form-urlencoded"

	statVerification = "websubhub.verification"

	// maxChallengeEcho bounds how much of a subscriber's verification
	// response is read.
	maxChallengeEcho = 1 << 10
)

// bgContext is used to detach the *http.Request context from the http.Handler
// lifecycle. Typically, the request context is canceled when the hander returns.
// This is problematic when using the request context to share request scoped
// elements, such as the logger or stat client, with background tasks that will
// execute after the handler returns. This resolves that issue by keeping a
// reference to the request context and using it to lookup values but replacing
// all other context.Context methods with the context.Background() implementation.
// The result is a valid context.Context that will not expire when the source
// http.Handler returns but will maintain all context values.
type bgContext struct {
	context.Context
	Values context.Context
}

func (c *bgContext) Value(key interface{}) interface{} {
	return c.Values.Value(key)
}

// subscriptionFlow names the operations of the subscribe or unsubscribe
// sequence.
type subscriptionFlow struct {
	mode       string
	request    domain.Operation
	validation domain.Operation
	verified   domain.Operation
}

var (
	subscribeFlow = subscriptionFlow{
		mode:       modeSubscribe,
		request:    domain.OperationSubscription,
		validation: domain.OperationSubscriptionValidation,
		verified:   domain.OperationSubscriptionIntentVerified,
	}
	unsubscribeFlow = subscriptionFlow{
		mode:       modeUnsubscribe,
		request:    domain.OperationUnsubscription,
		validation: domain.OperationUnsubscriptionValidation,
		verified:   domain.OperationUnsubscriptionIntentVerified,
	}
)

type intentVerificationFailed struct {
	Mode     string `logevent:"mode"`
	Topic    string `logevent:"topic"`
	Callback string `logevent:"callback"`
	Reason   string `logevent:"reason"`
	Message  string `logevent:"message,default=intent-verification-failed"`
}

type subscriptionDenialFailed struct {
	Mode     string `logevent:"mode"`
	Topic    string `logevent:"topic"`
	Callback string `logevent:"callback"`
	Reason   string `logevent:"reason"`
	Message  string `logevent:"message,default=subscription-denial-failed"`
}

// Hub implements the WebSub hub endpoint. Publisher and subscriber requests
// are routed by their hub.mode parameter to the matching adaptor call-site.
//
// Register, deregister, and publish requests are answered with the outcome
// of the handler operation. Subscribe and unsubscribe requests are answered
// with 202 once the handler accepts them; validation, intent verification,
// and the intent verified notice then run in the background.
type Hub struct {
	Adaptor *adaptor.Adaptor
	LogFn   domain.LogFn
	StatFn  domain.StatFn
	// Client is used to contact subscriber callbacks.
	Client *http.Client
	// VerificationTimeout bounds each request to a subscriber callback.
	VerificationTimeout time.Duration
	// ChallengeFn generates the hub.challenge value for intent verification.
	ChallengeFn func() string
	// MaxContentBytes bounds the request body. Zero leaves it unbounded.
	MaxContentBytes int64
}

func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.MaxContentBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.MaxContentBytes)
	}
	msg, err := messageFromRequest(r)
	if err != nil {
		status := http.StatusBadRequest
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		writeDenied(w, status, nil, err.Error())
		return
	}
	mode, _ := msg[paramMode].(string)
	switch mode {
	case modeRegister:
		h.dispatch(w, r, domain.OperationRegisterTopic, msg, http.StatusOK)
	case modeDeregister:
		h.dispatch(w, r, domain.OperationDeregisterTopic, msg, http.StatusOK)
	case modePublish:
		h.dispatch(w, r, domain.OperationUpdateMessage, msg, http.StatusOK)
	case modeSubscribe:
		h.subscription(w, r, subscribeFlow, msg)
	case modeUnsubscribe:
		h.subscription(w, r, unsubscribeFlow, msg)
	default:
		writeDenied(w, http.StatusBadRequest, nil, fmt.Sprintf("hub.mode (%s) not supported", mode))
	}
}

// dispatch runs the operation and writes its outcome. It returns true if the
// handler accepted the request.
func (h *Hub) dispatch(w http.ResponseWriter, r *http.Request, op domain.Operation, msg domain.Message, status int) bool {
	if !h.Adaptor.Supports(op) {
		writeDenied(w, http.StatusNotImplemented, nil, fmt.Sprintf("operation (%s) not implemented", op))
		return false
	}
	o, err := h.Adaptor.Call(r.Context(), op, msg, r.Header).Wait(r.Context())
	if err != nil {
		// The client went away before the handler finished.
		w.WriteHeader(http.StatusServiceUnavailable)
		return false
	}
	if o.Err != nil {
		writeError(w, o.Err)
		return false
	}
	writeAccepted(w, status, o.Response)
	return true
}

func (h *Hub) subscription(w http.ResponseWriter, r *http.Request, flow subscriptionFlow, msg domain.Message) {
	callback := stringParam(msg, paramCallback)
	if !validCallback(callback) {
		writeDenied(w, http.StatusBadRequest, nil, fmt.Sprintf("hub.callback (%s) is not an absolute http(s) URL", callback))
		return
	}
	if !h.dispatch(w, r, flow.request, msg, http.StatusAccepted) {
		return
	}
	ctx := &bgContext{Context: context.Background(), Values: r.Context()}
	go h.verify(ctx, flow, msg, r.Header.Clone())
}

// verify completes an accepted subscription or unsubscription.
func (h *Hub) verify(ctx context.Context, flow subscriptionFlow, msg domain.Message, headers domain.Headers) {
	if h.Adaptor.Supports(flow.validation) {
		o, _ := h.Adaptor.Call(ctx, flow.validation, msg, headers).Wait(ctx)
		if o.Err != nil {
			h.deny(ctx, flow, msg, dispatch.ErrorReason(o.Err))
			return
		}
	}
	if err := h.verifyIntent(ctx, flow, msg); err != nil {
		h.LogFn(ctx).Warn(intentVerificationFailed{
			Mode:     flow.mode,
			Topic:    stringParam(msg, paramTopic),
			Callback: stringParam(msg, paramCallback),
			Reason:   err.Error(),
		})
		h.StatFn(ctx).Count(statVerification, 1, "mode:"+flow.mode, "result:failure")
		return
	}
	h.StatFn(ctx).Count(statVerification, 1, "mode:"+flow.mode, "result:success")
	if h.Adaptor.Supports(flow.verified) {
		_, _ = h.Adaptor.Call(ctx, flow.verified, msg, headers).Wait(ctx)
	}
}

func (h *Hub) verifyIntent(ctx context.Context, flow subscriptionFlow, msg domain.Message) error {
	challenge := h.ChallengeFn()
	params := url.Values{}
	params.Set(paramMode, flow.mode)
	params.Set(paramTopic, stringParam(msg, paramTopic))
	params.Set(paramChallenge, challenge)
	if lease := stringParam(msg, paramLeaseSeconds); lease != "" {
		params.Set(paramLeaseSeconds, lease)
	}
	resp, err := h.callSubscriber(ctx, stringParam(msg, paramCallback), params)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("callback responded with status %d", resp.StatusCode)
	}
	echo, err := io.ReadAll(io.LimitReader(resp.Body, maxChallengeEcho))
	if err != nil {
		return err
	}
	if strings.TrimSpace(string(echo)) != challenge {
		return errors.New("callback did not echo the challenge")
	}
	return nil
}

// deny informs the subscriber that its request was rejected during
// validation.
func (h *Hub) deny(ctx context.Context, flow subscriptionFlow, msg domain.Message, reason string) {
	params := url.Values{}
	params.Set(paramMode, modeDenied)
	params.Set(paramTopic, stringParam(msg, paramTopic))
	params.Set(paramReason, reason)
	resp, err := h.callSubscriber(ctx, stringParam(msg, paramCallback), params)
	if err == nil {
		_ = resp.Body.Close()
		return
	}
	h.LogFn(ctx).Warn(subscriptionDenialFailed{
		Mode:     flow.mode,
		Topic:    stringParam(msg, paramTopic),
		Callback: stringParam(msg, paramCallback),
		Reason:   err.Error(),
	})
}

func (h *Hub) callSubscriber(ctx context.Context, callback string, params url.Values) (*http.Response, error) {
	u, err := url.Parse(callback)
	if err != nil {
		return nil, err
	}
	q := u.Query()
	for k, v := range params {
		q[k] = v
	}
	u.RawQuery = q.Encode()
	ctx, cancel := context.WithTimeout(ctx, h.VerificationTimeout)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), http.NoBody)
	if err != nil {
		cancel()
		return nil, err
	}
	resp, err := h.Client.Do(req)
	if err != nil {
		cancel()
		return nil, err
	}
	resp.Body = &cancelBody{ReadCloser: resp.Body, cancel: cancel}
	return resp, nil
}

// cancelBody releases the request context once the body is closed.
type cancelBody struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (b *cancelBody) Close() error {
	defer b.cancel()
	return b.ReadCloser.Close()
}

// validCallback accepts only absolute http and https URLs with a host.
func validCallback(callback string) bool {
	u, err := url.Parse(callback)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}

// NewChallenge is the default ChallengeFn.
func NewChallenge() string {
	return uuid.NewString()
}

func messageFromRequest(r *http.Request) (domain.Message, error) {
	msg := domain.Message{}
	mediaType := mediaTypeForm
	if ct := r.Header.Get("Content-Type"); ct != "" {
		mt, _, err := mime.ParseMediaType(ct)
		if err != nil {
			return nil, err
		}
		mediaType = mt
	}
	if mediaType == mediaTypeForm {
		if err := r.ParseForm(); err != nil {
			return nil, err
		}
		for k := range r.Form {
			msg[k] = r.Form.Get(k)
		}
		return msg, nil
	}
	// Any other content is a publisher update carrying the content itself.
	// The hub parameters then travel in the query string.
	query := r.URL.Query()
	for k := range query {
		msg[k] = query.Get(k)
	}
	if _, ok := msg[paramMode]; !ok {
		msg[paramMode] = modePublish
	}
	b, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}
	msg["content"] = string(b)
	msg["content-type"] = mediaType
	return msg, nil
}

func stringParam(msg domain.Message, key string) string {
	v, _ := msg[key].(string)
	return v
}

func statusFromError(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case dispatch.IsDomainError(err):
		var herr *domain.HubError
		errors.As(err, &herr)
		if herr.StatusCode != 0 {
			return herr.StatusCode
		}
		switch herr.Kind {
		case domain.KindSubscriptionInternal, domain.KindUnsubscriptionInternal:
			return http.StatusInternalServerError
		default:
			return http.StatusBadRequest
		}
	default:
		return http.StatusInternalServerError
	}
}

func responseFromError(err error) url.Values {
	return url.Values{
		paramMode:   []string{modeDenied},
		paramReason: []string{dispatch.ErrorReason(err)},
	}
}

func writeError(w http.ResponseWriter, err error) {
	var headers domain.Headers
	var herr *domain.HubError
	if dispatch.IsDomainError(err) && errors.As(err, &herr) {
		headers = herr.Headers
	}
	writeForm(w, statusFromError(err), headers, responseFromError(err))
}

func writeDenied(w http.ResponseWriter, status int, headers domain.Headers, reason string) {
	writeForm(w, status, headers, url.Values{
		paramMode:   []string{modeDenied},
		paramReason: []string{reason},
	})
}

func writeAccepted(w http.ResponseWriter, status int, resp domain.Response) {
	if resp.StatusCode != 0 {
		status = resp.StatusCode
	}
	body := url.Values{}
	for k, v := range resp.Body {
		body.Set(k, fmt.Sprint(v))
	}
	body.Set(paramMode, modeAccepted)
	if resp.MediaType != "" {
		w.Header().Set("Content-Type", resp.MediaType)
	}
	writeForm(w, status, resp.Headers, body)
}

func writeForm(w http.ResponseWriter, status int, headers domain.Headers, body url.Values) {
	for k, vs := range headers {
		for _, v := range vs {
			w.Header().Add(k, v)
		}
	}
	if w.Header().Get("Content-Type") == "" {
		w.Header().Set("Content-Type", mediaTypeForm)
	}
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body.Encode())
}
