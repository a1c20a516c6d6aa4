package codegen

import (
	"zinc/internal/symbols"
	"zinc/internal/types"
)

// rustType maps a resolved Zinc type onto its Rust spelling. Channel
// parameters are typed from their ChanInfo and direction instead, see
// chanParamType.
func (g *Generator) rustType(id types.TypeID) string {
	t, ok := g.in.Lookup(id)
	if !ok {
		return "()"
	}
	switch t.Kind {
	case types.KindInt:
		return "i64"
	case types.KindFloat:
		return "f64"
	case types.KindBool:
		return "bool"
	case types.KindString:
		return "String"
	case types.KindArray:
		return "Vec<" + g.rustType(t.Elem) + ">"
	case types.KindStruct:
		return t.Name
	default:
		return "()"
	}
}

// chanElem spells the element type of a channel, or "" when no send ever
// fixed it. Callers omit the turbofish for an unfixed element and let
// Rust infer.
func (g *Generator) chanElem(info *symbols.ChanInfo) string {
	if info == nil || !info.Elem.IsValid() || g.in.Kind(info.Elem) == types.KindUnresolved {
		return ""
	}
	return g.rustType(info.Elem)
}

// chanParamType spells the half of the channel a parameter receives:
// senders for sending callees, receivers for consuming ones.
func (g *Generator) chanParamType(info *symbols.ChanInfo, dir symbols.ChanDir) string {
	elem := g.chanElem(info)
	if elem == "" {
		elem = "i64"
	}
	bounded := info != nil && info.Bounded
	if dir == symbols.ChanDirRecv {
		if bounded {
			return "tokio::sync::mpsc::Receiver<" + elem + ">"
		}
		return "tokio::sync::mpsc::UnboundedReceiver<" + elem + ">"
	}
	if bounded {
		return "tokio::sync::mpsc::Sender<" + elem + ">"
	}
	return "tokio::sync::mpsc::UnboundedSender<" + elem + ">"
}
