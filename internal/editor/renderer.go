package editor

import "geofilemaker/internal/domain"

// StatusLevel colours a status message
type StatusLevel string

const (
	StatusInfo    StatusLevel = "info"
	StatusSuccess StatusLevel = "success"
	StatusError   StatusLevel = "error"
)

// Status is the message shown on the status surface
type Status struct {
	Level   StatusLevel `json:"level"`
	Message string      `json:"message"`
}

// RenderedNode is one interactive tier member
type RenderedNode struct {
	Ref   domain.NodeRef `json:"ref"`
	Armed bool           `json:"armed"`
}

// Renderer draws editor state. Implementations never call back into the Editor.
type Renderer interface {
	// RenderTier replaces every node of tier
	RenderTier(tier domain.Tier, nodes []RenderedNode)
	// SetArmed toggles the armed mark of a rendered node
	SetArmed(ref domain.NodeRef, armed bool)
	// ClearLinks removes every drawn link
	ClearLinks()
	// DrawLink draws a link between two rendered nodes
	DrawLink(from, to domain.NodeRef)
	ShowStatus(status Status)
	ShowDocument(doc *domain.Document)
}

// NopRenderer discards everything
type NopRenderer struct{}

func (NopRenderer) RenderTier(domain.Tier, []RenderedNode) {}
func (NopRenderer) SetArmed(domain.NodeRef, bool)          {}
func (NopRenderer) ClearLinks()                            {}
func (NopRenderer) DrawLink(domain.NodeRef, domain.NodeRef) {}
func (NopRenderer) ShowStatus(Status)                      {}
func (NopRenderer) ShowDocument(*domain.Document)          {}
