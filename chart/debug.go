package chart

import "bytes"

func dumpState(states []*itemSet, pos int) {
	tracer().Debugf("--- state %04d ------------------------------------", pos)
	S := states[pos]
	if S == nil {
		return
	}
	for n, item := range S.items() {
		tracer().Debugf("[%2d] %s", n+1, item)
	}
}

func itemSetString(S *itemSet) string {
	var b bytes.Buffer
	b.WriteString("{")
	for i, item := range S.items() {
		if i == 0 {
			b.WriteString(" ")
		} else {
			b.WriteString(", ")
		}
		b.WriteString(item.String())
	}
	b.WriteString(" }")
	return b.String()
}

// Dump renders every chart position's item set, most useful attached to a
// trace at debug level.
func (c *Chart) Dump() string {
	var b bytes.Buffer
	for i, s := range c.States {
		b.WriteString(itemSetString(s))
		if i != len(c.States)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
