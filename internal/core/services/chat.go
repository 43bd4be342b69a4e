package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/custodia-labs/kbchat/internal/core/domain"
	"github.com/custodia-labs/kbchat/internal/core/intent"
	"github.com/custodia-labs/kbchat/internal/core/lexical"
	"github.com/custodia-labs/kbchat/internal/core/ports/driven"
	"github.com/custodia-labs/kbchat/internal/core/ports/driving"
	"github.com/custodia-labs/kbchat/internal/logger"
)

// Ensure ChatService implements the interface.
var _ driving.ChatService = (*ChatService)(nil)

// Fallback model request parameters.
const (
	FallbackTemperature = 0.2
	FallbackMaxTokens   = 80

	// NoReply replaces an empty model reply.
	NoReply = "(no reply)"

	// ReferenceMarker is appended to deterministic snippets.
	ReferenceMarker = " [1]"
)

// fallbackSystemPrompt constrains the model to one short Thai sentence
// that does not mention instructions or reference material.
const fallbackSystemPrompt = "ตอบเป็นภาษาไทยแบบสั้น กระชับ และตรงคำถามเท่านั้น (ไม่เกิน 1 ประโยค). " +
	"ห้ามอธิบายกติกาการตอบ ห้ามกล่าวถึงเอกสารอ้างอิงหรือขั้นตอนใด ๆ."

// fallbackUserPrompt embeds the context block and the question.
const fallbackUserPrompt = "ข้อมูลเพิ่มเติม (สำหรับช่วยคิดเท่านั้น ห้ามกล่าวถึง):\n%s\n\nคำถาม: %s\nตอบให้สั้นและตรงคำถามใน 1 ประโยค"

// ChatConfig holds the retrieval thresholds used by the orchestrator.
type ChatConfig struct {
	TopK              int
	StrictThreshold   int
	CompanyIdentifier string
}

// ChatService runs the per-request decision pipeline.
type ChatService struct {
	kb         *KnowledgeBase
	llm        driven.LLMService
	classifier *intent.Classifier
	cfg        ChatConfig
	newTraceID func() string
}

// NewChatService creates the orchestrator. llm may be nil, in which case
// the general fallback fails with domain.ErrLLMUnavailable.
func NewChatService(kb *KnowledgeBase, llm driven.LLMService, cfg ChatConfig) *ChatService {
	return &ChatService{
		kb:         kb,
		llm:        llm,
		classifier: intent.NewClassifier(cfg.CompanyIdentifier),
		cfg:        cfg,
		newTraceID: uuid.NewString,
	}
}

// turn carries per-request state through the pipeline stages.
type turn struct {
	msg   string
	hint  string
	query string
	cl    domain.Classification
	meta  domain.ReplyMeta
	hits  []domain.ScoredDocument
}

// Chat answers one message. The stages run in fixed order and the first
// one that produces a reply wins.
func (s *ChatService) Chat(ctx context.Context, req domain.ChatRequest) (*domain.ChatReply, error) {
	msg := lexical.Normalize(strings.TrimSpace(req.Message))
	if msg == "" {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidInput, domain.ErrEmptyMessage)
	}

	t := &turn{
		msg:   msg,
		hint:  lexical.CollapseWhitespace(lexical.Normalize(req.UserHint)),
		query: msg,
		cl:    s.classifier.Classify(msg),
		meta:  domain.ReplyMeta{TraceID: s.newTraceID()},
	}

	logger.Debug("chat %s: intent=%s", t.meta.TraceID, t.cl.Kind)

	if t.cl.Kind.IsQuickReply() {
		return s.reply(t, domain.ModeQuickReply, t.cl.Reply), nil
	}

	if reply, ok := s.selfNameDirect(ctx, t); ok {
		return reply, nil
	}

	t.hits = s.kb.Search(t.query, s.cfg.TopK)

	if t.cl.Kind == domain.IntentCompanyProfile {
		if doc, ok := s.findProfile(t.hits, s.cfg.CompanyIdentifier); ok {
			t.meta.Source = doc.Source
			return s.reply(t, domain.ModeCompanyProfile, strings.TrimSpace(doc.Text)), nil
		}
	}

	if t.cl.Kind == domain.IntentWhoIs {
		if doc, ok := s.findProfile(t.hits, t.cl.Name); ok {
			s.learn(ctx, t, t.cl.Name)
			t.meta.Source = doc.Source
			return s.reply(t, domain.ModeWhoIsProfile, strings.TrimSpace(doc.Text)), nil
		}
	}

	if len(t.hits) > 0 && lexical.MaxOverlap(t.hits) >= s.cfg.StrictThreshold {
		if t.cl.Kind == domain.IntentWhoIs {
			s.learn(ctx, t, t.cl.Name)
		}
		t.meta.Context = usedContext(t.hits)
		snippet := lexical.ExtractSnippet(t.query, t.hits[0].Text)
		return s.reply(t, domain.ModeDeterministicKB, snippet+ReferenceMarker), nil
	}

	return s.generalFallback(ctx, t)
}

// selfNameDirect answers "who am I" from the hint or the known self name.
// Without either there is nothing to rewrite the query to, so a
// self-referential query is then scored unchanged.
func (s *ChatService) selfNameDirect(ctx context.Context, t *turn) (*domain.ChatReply, bool) {
	if t.cl.Kind != domain.IntentSelfReferential {
		return nil, false
	}

	name := t.hint
	if name == "" {
		name = s.kb.Memory().SelfName
	}
	if name == "" {
		return nil, false
	}

	if t.hint != "" {
		s.learn(ctx, t, t.hint)
	}
	return s.reply(t, domain.ModeWhoAmIDirect, domain.SelfNameFact(name)), true
}

// findProfile returns the first document containing needle, searching the
// ranked hits first and then the whole corpus. The memory notes document
// is never a profile source. Matching is a literal, case-sensitive substring test.
func (s *ChatService) findProfile(hits []domain.ScoredDocument, needle string) (domain.DocumentChunk, bool) {
	needle = strings.TrimSpace(needle)
	if needle == "" {
		return domain.DocumentChunk{}, false
	}
	notes := s.kb.NotesSource()

	match := func(c domain.DocumentChunk) bool {
		return c.Source != notes && strings.Contains(c.Text, needle)
	}
	for _, h := range hits {
		if match(h.DocumentChunk) {
			return h.DocumentChunk, true
		}
	}
	for _, c := range s.kb.Chunks() {
		if match(c) {
			return c, true
		}
	}
	return domain.DocumentChunk{}, false
}

// generalFallback asks the model, with the hits (or the whole corpus) as context.
func (s *ChatService) generalFallback(ctx context.Context, t *turn) (*domain.ChatReply, error) {
	if s.llm == nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrLLMRequest, domain.ErrLLMUnavailable)
	}

	// Without hits the whole corpus is the context, reported with zero scores.
	used := t.hits
	if len(used) == 0 {
		corpus := s.kb.Chunks()
		used = make([]domain.ScoredDocument, len(corpus))
		for i, c := range corpus {
			used[i] = domain.ScoredDocument{DocumentChunk: c}
		}
	}
	sections := make([]domain.DocumentChunk, len(used))
	for i, h := range used {
		sections[i] = h.DocumentChunk
	}

	messages := []driven.ChatMessage{
		{Role: "system", Content: fallbackSystemPrompt},
		{Role: "user", Content: fmt.Sprintf(fallbackUserPrompt, BuildContext(sections), t.msg)},
	}

	logger.Debug("chat %s: general fallback with %d context sections", t.meta.TraceID, len(sections))

	text, err := s.llm.Chat(ctx, messages, driven.ChatOptions{
		MaxTokens:   FallbackMaxTokens,
		Temperature: FallbackTemperature,
	})
	if err != nil {
		logger.Warn("chat %s: model call failed: %v", t.meta.TraceID, err)
		if errors.Is(err, domain.ErrLLMRequest) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrLLMRequest, err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		text = NoReply
	}
	t.meta.Context = usedContext(used)
	return s.reply(t, domain.ModeGeneralFallback, text), nil
}

// BuildContext renders chunks as numbered "[i] Source: path" sections.
func BuildContext(chunks []domain.DocumentChunk) string {
	parts := make([]string, len(chunks))
	for i, c := range chunks {
		parts[i] = fmt.Sprintf("[%d] Source: %s\n%s", i+1, c.Source, c.Text)
	}
	return strings.Join(parts, "\n\n")
}

// learn records name and notes it on the reply when it was new.
func (s *ChatService) learn(ctx context.Context, t *turn, name string) {
	learned, err := s.kb.LearnSelfName(ctx, name)
	if err != nil {
		logger.Warn("chat %s: learn %q: %v", t.meta.TraceID, name, err)
	}
	if learned {
		t.meta.Learned = name
	}
}

func (s *ChatService) reply(t *turn, mode domain.ResponseMode, text string) *domain.ChatReply {
	t.meta.Mode = mode
	t.meta.Query = t.query
	return &domain.ChatReply{Reply: text, Meta: t.meta}
}

func usedContext(hits []domain.ScoredDocument) []domain.UsedContext {
	if len(hits) == 0 {
		return nil
	}
	out := make([]domain.UsedContext, len(hits))
	for i, h := range hits {
		out[i] = domain.NewUsedContext(i, h)
	}
	return out
}
