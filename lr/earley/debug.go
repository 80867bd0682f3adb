package earley

import (
	"bytes"
)

func dumpState(states []*itemSet, stateno int) {
	tracer().Debugf("--- State %04d ------------------------------------", stateno)
	S := states[stateno]
	for n := 0; n < S.size(); n++ {
		tracer().Debugf("[%2d] %s", n+1, S.at(n))
	}
}

func itemSetString(S *itemSet) string {
	var b bytes.Buffer
	b.WriteString("{")
	for n := 0; n < S.size(); n++ {
		if n == 0 {
			b.WriteString(" ")
		} else {
			b.WriteString(", ")
		}
		b.WriteString(S.at(n).String())
	}
	b.WriteString(" }")
	return b.String()
}
