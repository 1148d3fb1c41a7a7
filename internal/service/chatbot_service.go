package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"kiosk-assistant-be/internal/constant"
	"kiosk-assistant-be/internal/dto"
	"kiosk-assistant-be/internal/pkg/logger"
	"kiosk-assistant-be/pkg/device"
	"kiosk-assistant-be/pkg/errs"
	"kiosk-assistant-be/pkg/llm"
	"kiosk-assistant-be/pkg/rag/intent"
	"kiosk-assistant-be/pkg/rag/session"
	"kiosk-assistant-be/pkg/store"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	generalTopK       = 3
	maxListedLocation = 3
)

// IChatbotService runs dialogue turns
type IChatbotService interface {
	Chat(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error)
	History(ctx context.Context, conversationId string) (*dto.ChatHistoryResponse, error)
}

// KnowledgeRetriever ranks knowledge chunks against a query
type KnowledgeRetriever interface {
	Search(ctx context.Context, query string, topK int) ([]store.ScoredDocument, error)
}

// DialogueObserver receives per-turn counters. *metrics.Metrics satisfies it.
type DialogueObserver interface {
	ObserveAction(action string)
	ObserveGatewayFailure(gateway string)
}

type chatbotService struct {
	sessions          *session.Manager
	pricing           IPricingService
	location          ILocationService
	retriever         KnowledgeRetriever
	llmProvider       llm.LLMProvider
	publisher         IPublisherService
	observer          DialogueObserver
	logger            logger.ILogger
	tracer            trace.Tracer
	completionTimeout time.Duration
	now               func() time.Time
}

// NewChatbotService wires the dialogue engine. publisher and observer may be nil.
func NewChatbotService(
	sessions *session.Manager,
	pricing IPricingService,
	location ILocationService,
	retriever KnowledgeRetriever,
	llmProvider llm.LLMProvider,
	publisher IPublisherService,
	observer DialogueObserver,
	log logger.ILogger,
	completionTimeout time.Duration,
) IChatbotService {
	return &chatbotService{
		sessions:          sessions,
		pricing:           pricing,
		location:          location,
		retriever:         retriever,
		llmProvider:       llmProvider,
		publisher:         publisher,
		observer:          observer,
		logger:            log,
		tracer:            otel.Tracer("kiosk-assistant/dialogue"),
		completionTimeout: completionTimeout,
		now:               time.Now,
	}
}

// Chat runs one turn. Gateway failures become apologetic replies; only invalid
// input and session storage failures are returned as errors.
func (cs *chatbotService) Chat(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	if strings.TrimSpace(req.Message) == "" && len(req.Slots) == 0 {
		return nil, &errs.ValidationError{Missing: []string{"message"}}
	}

	ctx, span := cs.tracer.Start(ctx, "dialogue.turn")
	defer span.End()

	conversationId := req.ConversationId
	if conversationId == "" {
		conversationId = session.NewID()
	}
	span.SetAttributes(attribute.String("conversation.id", conversationId))

	unlock := cs.sessions.Lock(conversationId)
	defer unlock()

	sess, err := cs.sessions.LoadOrCreate(ctx, conversationId)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("load session: %w", err)
	}

	decision := intent.Classify(intent.Input{Message: req.Message, Slots: req.Slots}, sess)
	span.SetAttributes(attribute.String("dialogue.action", string(decision.Action)))

	sess.AppendTurn(store.RoleUser, userText(req), cs.now())
	reply := cs.apply(ctx, decision, sess)
	sess.AppendTurn(store.RoleAssistant, reply, cs.now())

	// the reply is already computed, so the transcript is written even if the caller went away
	if err := cs.sessions.Save(context.WithoutCancel(ctx), sess); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("save session: %w", err)
	}

	if cs.observer != nil {
		cs.observer.ObserveAction(string(decision.Action))
	}
	cs.publishTurn(ctx, sess.ID, decision.Action, req.Message, reply)

	return &dto.ChatResponse{
		Reply:          reply,
		UserMessage:    req.Message,
		ConversationId: sess.ID,
	}, nil
}

func (cs *chatbotService) History(ctx context.Context, conversationId string) (*dto.ChatHistoryResponse, error) {
	sess, err := cs.sessions.Get(ctx, conversationId)
	if err != nil {
		return nil, err
	}

	turns := make([]dto.ChatTurnResponse, 0, len(sess.Turns))
	for _, t := range sess.Turns {
		turns = append(turns, dto.ChatTurnResponse{
			Role:      t.Role,
			Text:      t.Text,
			CreatedAt: t.CreatedAt,
		})
	}
	return &dto.ChatHistoryResponse{ConversationId: sess.ID, Turns: turns}, nil
}

// apply performs the decided action, mutates the session flags and returns the reply.
func (cs *chatbotService) apply(ctx context.Context, decision intent.Decision, sess *store.Session) string {
	switch decision.Action {
	case intent.ActionResolveLocation:
		return cs.resolveLocation(ctx, decision.ZipCode, sess)

	case intent.ActionAskForZip:
		sess.ClearDeviceFlow()
		sess.AwaitingZipCode = true
		if decision.Prompt == intent.PromptRetry {
			return constant.ChatRepeatZipCode
		}
		return constant.ChatAskZipCode

	case intent.ActionResolveEstimate:
		return cs.resolveEstimate(ctx, decision.Slots, sess)

	case intent.ActionAskForSlot:
		return askForSlot(decision, sess)

	default:
		return cs.answer(ctx, sess)
	}
}

func (cs *chatbotService) resolveLocation(ctx context.Context, zipCode string, sess *store.Session) string {
	// a zip was provided, so the wait is over whatever the outcome
	sess.AwaitingZipCode = false

	locations, err := cs.location.FindByZip(ctx, zipCode)
	if errors.Is(err, errs.ErrNotFound) {
		return fmt.Sprintf(constant.ChatLocationsNone, zipCode)
	}
	if err != nil {
		cs.gatewayFailed(ctx, "location", sess.ID, err)
		return constant.ChatLocationsFailed
	}
	if len(locations) == 0 {
		return fmt.Sprintf(constant.ChatLocationsNone, zipCode)
	}
	return formatLocations(zipCode, locations)
}

func formatLocations(zipCode string, locations []dto.KioskLocation) string {
	if len(locations) > maxListedLocation {
		locations = locations[:maxListedLocation]
	}
	lines := make([]string, 0, len(locations)+1)
	lines = append(lines, fmt.Sprintf(constant.ChatLocationsHeader, zipCode))
	for _, l := range locations {
		lines = append(lines, fmt.Sprintf("- %s: %s, %s, %s", l.Name, l.Address, l.City, l.State))
	}
	return strings.Join(lines, "\n")
}

func (cs *chatbotService) resolveEstimate(ctx context.Context, slots *device.SlotSet, sess *store.Session) string {
	// never leave the session waiting on device info once a quote was attempted
	defer sess.ClearDeviceFlow()

	estimate, err := cs.pricing.GetEstimate(ctx, slots)
	if err != nil {
		cs.gatewayFailed(ctx, "pricing", sess.ID, err)
		return constant.ChatEstimateFailed
	}
	if estimate == nil || estimate.Offer == nil {
		return fmt.Sprintf(constant.ChatEstimateNoOffer, slots.Describe())
	}
	return fmt.Sprintf(constant.ChatEstimateOffer,
		slots.Brand, slots.Model, slots.Storage, slots.Carrier,
		formatOffer(*estimate.Offer, estimate.Currency),
	)
}

func formatOffer(amount float64, currency string) string {
	if currency == "" || strings.EqualFold(currency, "USD") {
		return fmt.Sprintf("$%.2f", amount)
	}
	return fmt.Sprintf("%.2f %s", amount, strings.ToUpper(currency))
}

func askForSlot(decision intent.Decision, sess *store.Session) string {
	sess.AwaitingDeviceInfo = true

	switch decision.Prompt {
	case intent.PromptAll:
		sess.PartialSlots = nil
		return constant.ChatAskAllDeviceInfo
	case intent.PromptRetry:
		return constant.ChatAskDeviceRetry
	}

	sess.PartialSlots = decision.Slots
	missing := device.MissingPrompt(decision.Slots)
	if decision.Slots.Model == "" {
		return fmt.Sprintf(constant.ChatAskMissingNoModel, missing)
	}
	return fmt.Sprintf(constant.ChatAskMissingSlots, decision.Slots.Describe(), missing)
}

// answer grounds a free-form question in the knowledge index and asks the completion gateway.
func (cs *chatbotService) answer(ctx context.Context, sess *store.Session) string {
	query := lastUserText(sess)

	docs, err := cs.retriever.Search(ctx, query, generalTopK)
	if err != nil {
		// answer without context rather than fail the turn
		cs.logger.Warn("CHATBOT", "Knowledge retrieval failed", map[string]interface{}{
			"conversation_id": sess.ID,
			"error":           err.Error(),
		})
		docs = nil
	}

	systemPrompt := constant.ChatSystemPromptV1
	if block := contextBlock(docs); block != "" {
		systemPrompt += "\n\n" + constant.ChatContextHeader + "\n" + block
	}

	history := make([]llm.Message, 0, len(sess.Turns))
	for _, t := range sess.Turns {
		role := llm.RoleUser
		if t.Role == store.RoleAssistant {
			role = llm.RoleAssistant
		}
		history = append(history, llm.Message{Role: role, Content: t.Text})
	}

	gctx, cancel := gatewayContext(ctx, cs.completionTimeout)
	defer cancel()

	text, err := cs.llmProvider.Chat(gctx, llm.WithSystemPrompt(systemPrompt, history))
	if err != nil {
		cs.gatewayFailed(ctx, "completion", sess.ID, err)
		return constant.ChatGeneralFailed
	}
	return text
}

func contextBlock(docs []store.ScoredDocument) string {
	if len(docs) == 0 {
		return ""
	}
	parts := make([]string, 0, len(docs))
	for _, d := range docs {
		parts = append(parts, "Source: "+d.Document.SourceLabel()+"\n"+d.Document.Content)
	}
	return strings.Join(parts, "\n\n")
}

func (cs *chatbotService) gatewayFailed(ctx context.Context, gateway, conversationId string, err error) {
	if cs.observer != nil {
		cs.observer.ObserveGatewayFailure(gateway)
	}
	trace.SpanFromContext(ctx).RecordError(err, trace.WithAttributes(attribute.String("gateway", gateway)))
	cs.logger.Error("CHATBOT", "Gateway call failed", map[string]interface{}{
		"gateway":         gateway,
		"conversation_id": conversationId,
		"error":           err.Error(),
	})
}

func (cs *chatbotService) publishTurn(ctx context.Context, conversationId string, action intent.Action, userMessage, reply string) {
	if cs.publisher == nil {
		return
	}
	payload, err := json.Marshal(dto.TurnEvent{
		EventId:        uuid.NewString(),
		ConversationId: conversationId,
		Action:         string(action),
		UserMessage:    userMessage,
		Reply:          reply,
		At:             cs.now(),
	})
	if err == nil {
		err = cs.publisher.Publish(ctx, payload)
	}
	if err != nil {
		cs.logger.Warn("CHATBOT", "Failed to publish turn event", map[string]interface{}{
			"conversation_id": conversationId,
			"error":           err.Error(),
		})
	}
}

// userText is the transcript text for a request; a structured-only turn is recorded by its device.
func userText(req *dto.ChatRequest) string {
	if strings.TrimSpace(req.Message) != "" {
		return req.Message
	}
	if slots := device.ExtractStructured(req.Slots); slots != nil {
		return slots.Describe()
	}
	// incomplete structured input is recorded as given
	var parts []string
	for _, name := range []string{device.SlotBrand, device.SlotModel, device.SlotStorage, device.SlotCarrier} {
		if v := strings.TrimSpace(req.Slots[name]); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, " ")
}

func lastUserText(sess *store.Session) string {
	for i := len(sess.Turns) - 1; i >= 0; i-- {
		if sess.Turns[i].Role == store.RoleUser {
			return sess.Turns[i].Text
		}
	}
	return ""
}
