package scanner

import (
	"fmt"
	"strings"
)

// ScopeKind is the kind of block a scope frame stands for.
type ScopeKind int

const (
	ScopeFile ScopeKind = iota
	ScopeNamespace
	ScopeType
	ScopeMethod
	ScopeControl
	ScopeObjectCreation
	ScopeBlock // property bodies, local functions, anonymous blocks
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeFile:
		return "file"
	case ScopeNamespace:
		return "namespace"
	case ScopeType:
		return "type"
	case ScopeMethod:
		return "method"
	case ScopeControl:
		return "control"
	case ScopeObjectCreation:
		return "object-creation"
	case ScopeBlock:
		return "block"
	default:
		return "unknown"
	}
}

// ScopeFrame records one open block.
type ScopeFrame struct {
	Kind    ScopeKind
	Name    string // type, namespace or method name
	Control string // leading keyword of a control block
}

func (f ScopeFrame) String() string {
	switch {
	case f.Control != "":
		return fmt.Sprintf("%s(%s)", f.Kind, f.Control)
	case f.Name != "":
		return fmt.Sprintf("%s(%s)", f.Kind, f.Name)
	}
	return f.Kind.String()
}

// foundational frames decide which naming rules apply to their contents.
func (f ScopeFrame) foundational() bool {
	return f.Kind == ScopeType || f.Kind == ScopeMethod
}

// ScopeStack is the stack of open blocks. The File frame sits at the bottom
// and is never popped, so Depth equals the current brace nesting depth.
type ScopeStack struct {
	frames []ScopeFrame
}

// NewScopeStack creates a stack holding only the File frame.
func NewScopeStack() *ScopeStack {
	return &ScopeStack{
		frames: []ScopeFrame{{Kind: ScopeFile}},
	}
}

// Push opens a frame.
func (s *ScopeStack) Push(f ScopeFrame) {
	s.frames = append(s.frames, f)
}

// Pop closes the innermost frame.
func (s *ScopeStack) Pop() (ScopeFrame, error) {
	if len(s.frames) <= 1 {
		return ScopeFrame{}, fmt.Errorf("scope stack underflow")
	}
	top := s.frames[len(s.frames)-1]
	s.frames = s.frames[:len(s.frames)-1]
	return top, nil
}

// Depth returns the number of open braces.
func (s *ScopeStack) Depth() int {
	return len(s.frames) - 1
}

// Top returns the innermost frame.
func (s *ScopeStack) Top() ScopeFrame {
	return s.frames[len(s.frames)-1]
}

// Governing returns the nearest type or method frame, or the File frame.
func (s *ScopeStack) Governing() ScopeFrame {
	for i := len(s.frames) - 1; i > 0; i-- {
		if s.frames[i].foundational() {
			return s.frames[i]
		}
	}
	return s.frames[0]
}

// EnclosingType returns the nearest type declaration frame.
func (s *ScopeStack) EnclosingType() (ScopeFrame, bool) {
	for i := len(s.frames) - 1; i > 0; i-- {
		if s.frames[i].Kind == ScopeType {
			return s.frames[i], true
		}
	}
	return ScopeFrame{}, false
}

// TypePath returns the dotted chain of enclosing type names, outermost first.
func (s *ScopeStack) TypePath() string {
	var names []string
	for _, f := range s.frames {
		if f.Kind == ScopeType {
			names = append(names, f.Name)
		}
	}
	return strings.Join(names, ".")
}
