// Package chat implements the rule-based news assistant: a keyword
// intent classifier in front of three conversation branches (small talk,
// article analysis, web search), with bounded expiring sessions.
package chat

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/vestnikmedia/vestnik/internal/chat/session"
	"github.com/vestnikmedia/vestnik/internal/corpus"
	"github.com/vestnikmedia/vestnik/internal/helpers"
	"github.com/vestnikmedia/vestnik/internal/lang"
	"github.com/vestnikmedia/vestnik/internal/llm"
	"github.com/vestnikmedia/vestnik/internal/search"
	"github.com/vestnikmedia/vestnik/internal/telemetry"
	"github.com/vestnikmedia/vestnik/internal/websearch"
)

const (
	webResultCount     = 5
	webTitleLimit      = 60
	webSnippetLimit    = 150
	analysisCandidates = 10
	analysisBodyLimit  = 3000
	historyWindow      = 6
)

// WebSearcher is the external news search used by the web branch.
type WebSearcher interface {
	SearchNews(ctx context.Context, query string, tag lang.Tag, maxResults int) []websearch.Article
}

// ArticleFinder is the read access to the site's own articles used by
// the analysis branch.
type ArticleFinder interface {
	FindPublished(ctx context.Context, f corpus.Filter) ([]corpus.Article, error)
}

// Request is one user message, optionally continuing a session. The
// declared language only matters when the message itself carries no
// Cyrillic signal.
type Request struct {
	Message   string `json:"message"`
	Language  string `json:"language,omitempty"`
	SessionID string `json:"sessionId,omitempty"`
}

// SourceInfo describes one cited external article.
type SourceInfo struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Source      string `json:"source"`
	Reliability string `json:"reliability"`
}

// Response is the bot's answer. IsError marks a degraded reply whose
// content is a localized apology rather than real content.
type Response struct {
	Content     string       `json:"content"`
	SessionID   string       `json:"sessionId"`
	Intent      string       `json:"intent"`
	Sources     []SourceInfo `json:"sources,omitempty"`
	ArticleLink string       `json:"articleLink,omitempty"`
	Timestamp   time.Time    `json:"timestamp"`
	IsError     bool         `json:"isError,omitempty"`
}

// Bot wires the classifier, the session store and the three branches.
type Bot struct {
	sessions       session.Store
	llm            llm.Provider
	news           WebSearcher
	articles       ArticleFinder
	articleBaseURL string
	logger         *log.Logger
}

func NewBot(sessions session.Store, provider llm.Provider, news WebSearcher, articles ArticleFinder, articleBaseURL string, logger *log.Logger) *Bot {
	if logger == nil {
		logger = log.New(log.Writer(), "[CHAT] ", log.LstdFlags)
	}
	return &Bot{
		sessions:       sessions,
		llm:            provider,
		news:           news,
		articles:       articles,
		articleBaseURL: strings.TrimRight(articleBaseURL, "/"),
		logger:         logger,
	}
}

// CreateSession opens a fresh session.
func (b *Bot) CreateSession() (string, error) { return b.sessions.Create() }

// EndSession removes a session. Unknown ids are a no-op.
func (b *Bot) EndSession(id string) error { return b.sessions.End(id) }

// Process answers one message. Every failure path degrades to a
// localized error reply; the method itself never returns an error so the
// transport layer stays a thin shell.
func (b *Bot) Process(ctx context.Context, req Request) Response {
	tag := lang.Detect(req.Message)
	if tag == lang.English && lang.Normalize(req.Language) == lang.Bulgarian {
		tag = lang.Bulgarian
	}
	pack := lang.For(tag)

	sid := req.SessionID
	if sid == "" || !b.sessions.Exists(sid) {
		created, err := b.sessions.Create()
		if err != nil {
			b.logger.Printf("session create failed: %v", err)
			return Response{
				Content:   pack.Messages.GenericError,
				SessionID: req.SessionID,
				Intent:    IntentCasual.String(),
				Timestamp: time.Now().UTC(),
				IsError:   true,
			}
		}
		sid = created
	}
	if err := b.sessions.Append(sid, session.Turn{Role: session.RoleUser, Content: req.Message}); err != nil {
		b.logger.Printf("append user turn: %v", err)
	}

	intent := Classify(req.Message, pack)
	telemetry.ChatMessages.WithLabelValues(intent.String()).Inc()

	var (
		reply   string
		sources []SourceInfo
		link    string
		err     error
	)
	switch intent {
	case IntentAnalysis:
		reply, link, err = b.analyzeArticle(ctx, req.Message, pack)
		if err != nil {
			b.logger.Printf("analysis branch failed: %v", err)
			reply = pack.Messages.AnalysisError
		}
	case IntentWebSearch:
		reply, sources, err = b.searchWeb(ctx, req.Message, sid, tag)
		if err != nil {
			b.logger.Printf("web search branch failed: %v", err)
			reply = pack.Messages.WebSearchError
		}
	default:
		reply, err = b.casualReply(ctx, req.Message, sid, pack)
		if err != nil {
			b.logger.Printf("casual branch failed: %v", err)
			reply = pack.Messages.CasualError
		}
	}

	if aerr := b.sessions.Append(sid, session.Turn{Role: session.RoleAssistant, Content: reply}); aerr != nil {
		b.logger.Printf("append assistant turn: %v", aerr)
	}
	return Response{
		Content:     reply,
		SessionID:   sid,
		Intent:      intent.String(),
		Sources:     sources,
		ArticleLink: link,
		Timestamp:   time.Now().UTC(),
		IsError:     err != nil,
	}
}

// casualReply answers small talk, feeding the model a short window of
// the transcript so follow-ups stay coherent.
func (b *Bot) casualReply(ctx context.Context, message, sid string, pack *lang.Pack) (string, error) {
	historySection := ""
	if turns, err := b.sessions.History(sid); err == nil && len(turns) > 1 {
		// Skip the just-appended user turn, keep the window before it.
		turns = turns[:len(turns)-1]
		if len(turns) > historyWindow {
			turns = turns[len(turns)-historyWindow:]
		}
		var block strings.Builder
		for _, t := range turns {
			label := "User"
			if t.Role == session.RoleAssistant {
				label = "Assistant"
			}
			fmt.Fprintf(&block, "%s: %s\n", label, t.Content)
		}
		historySection = fmt.Sprintf(pack.Messages.HistoryIntro, block.String())
	}

	prompt := fmt.Sprintf(pack.Messages.CasualPrompt, historySection, message)
	reply, err := b.llm.Complete(ctx, prompt)
	if err != nil {
		telemetry.LLMRequests.WithLabelValues("casual", "error").Inc()
		return "", err
	}
	telemetry.LLMRequests.WithLabelValues("casual", "ok").Inc()
	return reply, nil
}

var firstNumber = regexp.MustCompile(`\d+`)

// analyzeArticle picks the site article best matching the request and
// summarizes it, returning the reply and a link to the analyzed
// article. Selection failures fall back to the newest article rather
// than erroring.
func (b *Bot) analyzeArticle(ctx context.Context, message string, pack *lang.Pack) (string, string, error) {
	candidates, err := b.articles.FindPublished(ctx, corpus.Filter{Limit: analysisCandidates})
	if err != nil {
		return "", "", err
	}
	if len(candidates) == 0 {
		return pack.Messages.NothingToAnalyze, "", nil
	}

	chosen := candidates[0]
	if len(candidates) > 1 {
		var listing strings.Builder
		for i, a := range candidates {
			fmt.Fprintf(&listing, "%d. %s\n", i+1, a.Title)
		}
		answer, err := b.llm.Complete(ctx, fmt.Sprintf(pack.Messages.SelectPrompt, message, listing.String()))
		if err != nil {
			telemetry.LLMRequests.WithLabelValues("select", "error").Inc()
			return "", "", err
		}
		telemetry.LLMRequests.WithLabelValues("select", "ok").Inc()
		if m := firstNumber.FindString(answer); m != "" {
			if n, convErr := strconv.Atoi(m); convErr == nil && n >= 1 && n <= len(candidates) {
				chosen = candidates[n-1]
			}
		}
	}

	body := chosen.Body
	if body == "" {
		body = chosen.Preview
	}
	prompt := fmt.Sprintf(pack.Messages.AnalysisPrompt, chosen.Title, helpers.Truncate(body, analysisBodyLimit), message)
	summary, err := b.llm.Complete(ctx, prompt)
	if err != nil {
		telemetry.LLMRequests.WithLabelValues("analyze", "error").Inc()
		return "", "", err
	}
	telemetry.LLMRequests.WithLabelValues("analyze", "ok").Inc()

	link := ""
	if b.articleBaseURL != "" {
		link = fmt.Sprintf("%s/article/%d", b.articleBaseURL, chosen.ID)
		summary += fmt.Sprintf(pack.Messages.ReadFullArticle, chosen.Title, link)
	}
	return summary, link, nil
}

// searchWeb fetches fresh external articles and has the model compose an
// answer that cites only real links.
func (b *Bot) searchWeb(ctx context.Context, message, sid string, tag lang.Tag) (string, []SourceInfo, error) {
	pack := lang.For(tag)
	// Keyword routing over-triggers on phrases like "tell me about";
	// greetings that slipped through still get the casual treatment.
	if IsCasualGreeting(message, pack) {
		reply, err := b.casualReply(ctx, message, sid, pack)
		return reply, nil, err
	}

	articles := b.news.SearchNews(ctx, message, tag, webResultCount)
	if len(articles) == 0 {
		return fmt.Sprintf(pack.Messages.NoResults, message), nil, nil
	}

	var block strings.Builder
	sources := make([]SourceInfo, 0, len(articles))
	for _, a := range articles {
		domain := helpers.Domain(a.URL)
		reliability := search.Reliability(domain)
		fmt.Fprintf(&block, "**%s**\n%s\n", helpers.Truncate(a.Title, webTitleLimit), helpers.Truncate(a.Snippet(), webSnippetLimit))
		fmt.Fprintf(&block, pack.Messages.SourceLine, a.Source, reliability)
		fmt.Fprintf(&block, "\n%s\n\n", a.URL)
		sources = append(sources, SourceInfo{
			Title:       a.Title,
			URL:         a.URL,
			Source:      a.Source,
			Reliability: reliability,
		})
	}

	answer, err := b.llm.Complete(ctx, fmt.Sprintf(pack.Messages.WebSearchPrompt, message, block.String()))
	if err != nil {
		telemetry.LLMRequests.WithLabelValues("web_search", "error").Inc()
		return "", nil, err
	}
	telemetry.LLMRequests.WithLabelValues("web_search", "ok").Inc()
	return answer + pack.Messages.LinkDisclaimer, sources, nil
}
