// Package dialog is the conversational layer over the resolver: it formats
// outcomes as reply text and runs the confirmation state machine, holding
// at most one pending disambiguation per session.
package dialog

import (
	"context"
	"strconv"
	"strings"

	"github.com/campusnav/hku-mapbot-go/internal/logger"
	"github.com/campusnav/hku-mapbot-go/internal/metrics"
	"github.com/campusnav/hku-mapbot-go/internal/nav"
	"github.com/campusnav/hku-mapbot-go/internal/resolver"
	"github.com/campusnav/hku-mapbot-go/internal/session"
	"github.com/campusnav/hku-mapbot-go/internal/stringutil"
)

var (
	affirmatives = map[string]struct{}{
		"是": {}, "yes": {}, "对": {}, "y": {}, "确认": {}, "1": {},
	}
	negatives = map[string]struct{}{
		"否": {}, "no": {}, "不是": {}, "n": {}, "0": {},
	}
)

// AuditFunc receives one record per completed turn, for persistence in an
// audit trail. Outcome is one of "resolved", "candidates", "unresolved";
// place is empty unless the turn resolved.
type AuditFunc func(ctx context.Context, sessionID, query, outcome, method, place string)

// Engine ties the resolver, the session store, and the navigator together
// behind a single turn-based entry point.
type Engine struct {
	resolver  *resolver.Resolver
	sessions  *session.Store
	navigator nav.Navigator
	log       *logger.Logger
	metrics   *metrics.Metrics
	audit     AuditFunc
}

// New creates a dialog engine. A nil navigator defaults to the no-op one.
func New(r *resolver.Resolver, s *session.Store, n nav.Navigator, log *logger.Logger, m *metrics.Metrics) *Engine {
	if n == nil {
		n = nav.Noop{}
	}
	return &Engine{
		resolver:  r,
		sessions:  s,
		navigator: n,
		log:       log.WithModule("dialog"),
		metrics:   m,
	}
}

// SetAudit installs an audit hook. Pass nil to disable.
func (e *Engine) SetAudit(fn AuditFunc) {
	e.audit = fn
}

func (e *Engine) recordAudit(ctx context.Context, sessionID, query, outcome, method, place string) {
	if e.audit != nil {
		e.audit(ctx, sessionID, query, outcome, method, place)
	}
}

// HandleTurn processes one inbound utterance for a session and returns the
// reply text. A pending confirmation, if any, is offered the utterance
// first; a reply that is neither a selection nor a rejection falls through
// to a fresh resolution of the new text.
func (e *Engine) HandleTurn(ctx context.Context, sessionID, text string) string {
	if pending, ok := e.sessions.TakePending(sessionID); ok {
		if reply, handled := e.handleConfirmation(ctx, sessionID, pending, text); handled {
			return reply
		}
		// Unrecognized reply: the user restated their need. The pending
		// state is already cleared; a new ambiguous outcome below simply
		// replaces it.
		e.metrics.RecordConfirmation("restarted")
	}
	return e.handleQuery(ctx, sessionID, text)
}

// handleConfirmation interprets text against a pending candidate list.
// Returns handled=false when the text is not a selection, confirmation,
// or rejection.
func (e *Engine) handleConfirmation(ctx context.Context, sessionID string, pending session.Pending, text string) (string, bool) {
	reply := strings.ToLower(strings.TrimSpace(text))

	if _, ok := affirmatives[reply]; ok {
		e.metrics.RecordConfirmation("accepted")
		return e.navigate(ctx, sessionID, pending, 0), true
	}

	if _, ok := negatives[reply]; ok {
		e.metrics.RecordConfirmation("rejected")
		return formatRejected(), true
	}

	if stringutil.IsNumeric(reply) {
		n, err := strconv.Atoi(reply)
		if err == nil && n >= 2 && n <= len(pending.Candidates) {
			e.metrics.RecordConfirmation("selected")
			return e.navigate(ctx, sessionID, pending, n-1), true
		}
		// Out-of-range numbers are re-treated as a fresh query.
	}

	return "", false
}

// navigate hands the chosen candidate to the navigator and phrases the
// result.
func (e *Engine) navigate(ctx context.Context, sessionID string, pending session.Pending, idx int) string {
	place := pending.Candidates[idx].Place
	e.recordAudit(ctx, sessionID, pending.Query, "resolved", "confirm", place.Name)

	subcategory := pending.SubcategoryHint
	if subcategory == "" {
		subcategory = place.Subcategory
	}

	ok, diag := e.navigator.Navigate(ctx, nav.Target{
		Name:        place.Name,
		Category:    place.Category,
		Subcategory: subcategory,
	})
	if !ok {
		e.log.WithFields(map[string]any{
			"place":      place.Name,
			"diagnostic": diag,
		}).Warn("navigation failed")
		return formatNavFailed(place.Name)
	}
	return formatFound(place)
}

// handleQuery runs a fresh resolution and formats the outcome.
func (e *Engine) handleQuery(ctx context.Context, sessionID, text string) string {
	out := e.resolver.Resolve(ctx, text)

	switch out.Kind {
	case resolver.KindResolved:
		e.recordAudit(ctx, sessionID, out.Query, "resolved", string(out.Method), out.Place.Name)
		ok, diag := e.navigator.Navigate(ctx, nav.Target{
			Name:        out.Place.Name,
			Category:    out.Place.Category,
			Subcategory: out.Place.Subcategory,
		})
		if !ok {
			e.log.WithFields(map[string]any{
				"place":      out.Place.Name,
				"diagnostic": diag,
			}).Warn("navigation failed")
			return formatNavFailed(out.Place.Name)
		}
		return formatFound(out.Place)

	case resolver.KindCandidates:
		e.recordAudit(ctx, sessionID, out.Query, "candidates", string(out.Method), "")
		e.sessions.SetPending(sessionID, session.Pending{
			Candidates:      out.Candidates,
			Query:           out.Query,
			SubcategoryHint: out.SubcategoryHint,
		})
		if out.Method == resolver.MethodKeyword {
			return formatKeywordMenu(out.Query, out.Candidates)
		}
		return formatSimilarityMenu(out.Candidates)

	default:
		e.recordAudit(ctx, sessionID, out.Query, "unresolved", "", "")
		return formatUnresolved(out.Query)
	}
}
