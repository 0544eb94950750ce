// Package editor drives the tier editor: it turns tier text and node clicks
// into rendered nodes, links and the serialized Document.
//
// An Editor is single-threaded. Callers that receive events concurrently must
// serialize them (see service.EditorService).
package editor

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"geofilemaker/internal/domain"
)

// ErrNodeNotRendered is returned for clicks on nodes that are not on screen
var ErrNodeNotRendered = errors.New("node is not rendered")

// Status messages
const (
	MsgConnectionMade = "connection made"
)

// tierView is the rendered membership of one tier
type tierView struct {
	order []domain.NodeID
	index map[domain.NodeID]int
}

func newTierView(ids []domain.NodeID) tierView {
	v := tierView{
		order: ids,
		index: make(map[domain.NodeID]int, len(ids)),
	}
	for i, id := range ids {
		// last occurrence wins
		v.index[id] = i
	}
	return v
}

func (v tierView) has(id domain.NodeID) bool {
	_, ok := v.index[id]
	return ok
}

// Option configures an Editor
type Option func(*Editor)

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(e *Editor) {
		e.logger = logger
	}
}

// WithRebuildHook is called with the fresh document after every rebuild
func WithRebuildHook(fn func(doc *domain.Document)) Option {
	return func(e *Editor) {
		e.onRebuild = fn
	}
}

// Editor owns the connection store, the pending selection and the rendered tiers
type Editor struct {
	renderer  Renderer
	logger    *zap.Logger
	onRebuild func(doc *domain.Document)

	texts     [domain.TierCount]string
	views     [domain.TierCount]tierView
	store     *domain.ConnectionStore
	selection domain.Selection
	doc       *domain.Document
	status    Status
}

// New creates an editor with empty tiers and renders it once
func New(renderer Renderer, opts ...Option) *Editor {
	if renderer == nil {
		renderer = NopRenderer{}
	}
	e := &Editor{
		renderer: renderer,
		logger:   zap.NewNop(),
		store:    domain.NewConnectionStore(),
		doc:      domain.NewDocument(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.Rebuild()
	return e
}

// SetText replaces the raw text of one tier and rebuilds
func (e *Editor) SetText(tier domain.Tier, text string) error {
	if !tier.Valid() {
		return fmt.Errorf("%w: %d", domain.ErrUnknownTier, int(tier))
	}
	e.texts[tier] = text
	e.Rebuild()
	return nil
}

// Text returns the raw text of one tier
func (e *Editor) Text(tier domain.Tier) string {
	if !tier.Valid() {
		return ""
	}
	return e.texts[tier]
}

// Rendered returns the rendered ids of one tier in order
func (e *Editor) Rendered(tier domain.Tier) []domain.NodeID {
	if !tier.Valid() {
		return nil
	}
	out := make([]domain.NodeID, len(e.views[tier].order))
	copy(out, e.views[tier].order)
	return out
}

// IsRendered reports whether ref is currently on screen
func (e *Editor) IsRendered(ref domain.NodeRef) bool {
	return ref.Tier.Valid() && e.views[ref.Tier].has(ref.ID)
}

// Pending returns the armed node, if any
func (e *Editor) Pending() (domain.NodeRef, bool) {
	return e.selection.Pending()
}

// Status returns the last status message
func (e *Editor) Status() Status {
	return e.status
}

// Document returns a copy of the current document
func (e *Editor) Document() *domain.Document {
	return e.doc.Clone()
}

// Connections returns every stored link, visible or not
func (e *Editor) Connections() []domain.Connection {
	return e.store.Connections()
}

// Targets returns the stored targets of source, visible or not
func (e *Editor) Targets(source domain.NodeRef) []domain.NodeID {
	return e.store.Targets(source)
}

// Report shows a status message that did not come from a click
func (e *Editor) Report(status Status) {
	e.showStatus(status)
}

// Click feeds a click on ref into the selection protocol.
// Accepted pairs are stored and trigger a rebuild before Click returns.
func (e *Editor) Click(ref domain.NodeRef) (domain.Outcome, error) {
	if !e.IsRendered(ref) {
		return domain.Outcome{}, fmt.Errorf("%w: %s", ErrNodeNotRendered, ref)
	}

	out := e.selection.Click(ref)
	switch out.Kind {
	case domain.OutcomeArmed:
		e.renderer.SetArmed(ref, true)

	case domain.OutcomeDisarmed:
		e.renderer.SetArmed(out.Node, false)

	case domain.OutcomeRejected:
		e.renderer.SetArmed(out.Node, false)
		e.logger.Debug("connection rejected",
			zap.Stringer("from", out.Node),
			zap.Stringer("to", ref),
			zap.Error(out.Err))
		e.showStatus(Status{Level: StatusError, Message: rejectMessage(out.Node.Tier, ref.Tier, out.Err)})

	case domain.OutcomeAccepted:
		e.renderer.SetArmed(out.Node, false)
		if err := e.store.Add(out.Connection); err != nil {
			// NewConnection already oriented and checked the pair
			return out, err
		}
		e.logger.Debug("connection made", zap.Stringer("connection", out.Connection))
		e.showStatus(Status{Level: StatusSuccess, Message: MsgConnectionMade})
		e.Rebuild()
	}
	return out, nil
}

func rejectMessage(a, b domain.Tier, err error) string {
	if errors.Is(err, domain.ErrSameTier) {
		return fmt.Sprintf("%s (%s and %s)", err, a, b)
	}
	return err.Error()
}

func (e *Editor) showStatus(status Status) {
	e.status = status
	e.renderer.ShowStatus(status)
}

// Rebuild re-derives every tier from its text, re-renders it, recomputes the
// visible links from the store and republishes the document.
// It is idempotent for unchanged text and store.
func (e *Editor) Rebuild() {
	for _, t := range domain.Tiers {
		e.views[t] = newTierView(domain.ParseNames(e.texts[t]))
	}

	// A pending node that disappeared cannot be completed
	if pending, ok := e.selection.Pending(); ok && !e.IsRendered(pending) {
		e.selection.Clear()
	}
	pending, armed := e.selection.Pending()

	e.renderer.ClearLinks()
	doc := domain.NewDocument()

	for _, t := range domain.Tiers {
		view := e.views[t]
		nodes := make([]RenderedNode, len(view.order))
		for i, id := range view.order {
			ref := domain.Ref(t, id)
			nodes[i] = RenderedNode{Ref: ref, Armed: armed && pending == ref}
		}
		e.renderer.RenderTier(t, nodes)

		next, hasNext := t.Next()
		for _, id := range view.order {
			source := domain.Ref(t, id)
			var visible []domain.NodeID
			if hasNext {
				for _, target := range e.store.Targets(source) {
					if !e.views[next].has(target) {
						continue
					}
					visible = append(visible, target)
					e.renderer.DrawLink(source, domain.Ref(next, target))
				}
			}
			doc.Set(t, id, visible)
		}
	}

	e.doc = doc
	e.renderer.ShowDocument(doc.Clone())
	if e.onRebuild != nil {
		e.onRebuild(doc)
	}
}
