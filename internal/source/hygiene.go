package source

import "sync/atomic"

// Hygiene is an opaque scope tag attached to identifiers and token trees.
// Two identifiers denote the same binding only when both name and hygiene
// context match. The zero value is the call site's own context, i.e. the
// context every identifier starts out with after parsing.
type Hygiene uint32

// CallSite is the hygiene context of user-written code.
const CallSite Hygiene = 0

func (h Hygiene) IsCallSite() bool { return h == CallSite }

var hygieneCounter atomic.Uint32

// FreshHygiene allocates a hygiene context that no identifier has carried
// before. Each capture expansion resolves one fresh "mixed" context and tags
// its synthesized bindings with it.
func FreshHygiene() Hygiene {
	return Hygiene(hygieneCounter.Add(1))
}
