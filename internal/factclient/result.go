package factclient

import "encoding/json"

// Result is the outcome of one fetch-and-record attempt: either a fact was
// found, or none is available this time. Network and payload failures are
// deliberately indistinguishable here.
type Result struct {
	fact string
	ok   bool
}

// Found returns a Result carrying fact.
func Found(fact string) Result {
	return Result{fact: fact, ok: true}
}

// Missing returns the empty Result.
func Missing() Result {
	return Result{}
}

// Value returns the fact and whether one was found.
func (r Result) Value() (string, bool) {
	return r.fact, r.ok
}

// OK reports whether r carries a fact.
func (r Result) OK() bool {
	return r.ok
}

func (r Result) String() string {
	if !r.ok {
		return "<no fact>"
	}
	return r.fact
}

// MarshalJSON encodes a found fact as a JSON string and a missing one as null.
func (r Result) MarshalJSON() ([]byte, error) {
	if !r.ok {
		return []byte("null"), nil
	}
	return json.Marshal(r.fact)
}
