package editor

import "geofilemaker/internal/domain"

// Link is a drawn connector between two rendered nodes
type Link struct {
	From domain.NodeRef `json:"from"`
	To   domain.NodeRef `json:"to"`
}

// TierView is one rendered tier column
type TierView struct {
	Tier  domain.Tier    `json:"tier"`
	Text  string         `json:"text"`
	Nodes []RenderedNode `json:"nodes"`
}

// View is everything a front-end needs to draw the editor
type View struct {
	Tiers    []TierView       `json:"tiers"`
	Links    []Link           `json:"links"`
	Status   Status           `json:"status"`
	Pending  *domain.NodeRef  `json:"pending,omitempty"`
	Document *domain.Document `json:"document"`
}

// Snapshot is a Renderer that keeps the drawn state as a View model.
// Front-ends without a widget tree (the web page, the terminal UI) draw from it.
type Snapshot struct {
	tiers  [domain.TierCount][]RenderedNode
	links  []Link
	status Status
	doc    *domain.Document
}

// NewSnapshot creates an empty snapshot renderer
func NewSnapshot() *Snapshot {
	return &Snapshot{doc: domain.NewDocument()}
}

func (s *Snapshot) RenderTier(tier domain.Tier, nodes []RenderedNode) {
	if !tier.Valid() {
		return
	}
	cp := make([]RenderedNode, len(nodes))
	copy(cp, nodes)
	s.tiers[tier] = cp
}

func (s *Snapshot) SetArmed(ref domain.NodeRef, armed bool) {
	if !ref.Tier.Valid() {
		return
	}
	for i := range s.tiers[ref.Tier] {
		if s.tiers[ref.Tier][i].Ref == ref {
			s.tiers[ref.Tier][i].Armed = armed
		}
	}
}

func (s *Snapshot) ClearLinks() {
	s.links = nil
}

func (s *Snapshot) DrawLink(from, to domain.NodeRef) {
	s.links = append(s.links, Link{From: from, To: to})
}

func (s *Snapshot) ShowStatus(status Status) {
	s.status = status
}

func (s *Snapshot) ShowDocument(doc *domain.Document) {
	s.doc = doc
}

// View returns a copy of the drawn state; texts and pending come from the editor
func (s *Snapshot) View(e *Editor) View {
	v := View{
		Tiers:    make([]TierView, 0, domain.TierCount),
		Links:    make([]Link, len(s.links)),
		Status:   s.status,
		Document: s.doc.Clone(),
	}
	copy(v.Links, s.links)
	for _, t := range domain.Tiers {
		nodes := make([]RenderedNode, len(s.tiers[t]))
		copy(nodes, s.tiers[t])
		tv := TierView{Tier: t, Nodes: nodes}
		if e != nil {
			tv.Text = e.Text(t)
		}
		v.Tiers = append(v.Tiers, tv)
	}
	if e != nil {
		if pending, ok := e.Pending(); ok {
			v.Pending = &pending
		}
	}
	return v
}
