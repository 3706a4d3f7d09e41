// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package prefix

import (
	"fmt"
	"strings"
)

func lenBase10(n int) int { return len(fmt.Sprintf("%d", n)) }
func padBase10(n interface{}, m int) string {
	s := fmt.Sprintf("%d", n)
	if pad := m - len(s); pad > 0 {
		s = strings.Repeat(" ", pad) + s
	}
	return s
}

// String renders the code book as one line per symbol, with a histogram of
// the relative counts.
func (pc PrefixCodes) String() string {
	var maxSym, maxLen int
	var maxCnt uint64
	for _, c := range pc {
		if maxSym < int(c.Sym) {
			maxSym = int(c.Sym)
		}
		if maxLen < int(c.Len) {
			maxLen = int(c.Len)
		}
		if maxCnt < c.Cnt {
			maxCnt = c.Cnt
		}
	}
	maxSymStr := lenBase10(maxSym)
	maxCntStr := len(fmt.Sprintf("%d", maxCnt))

	var ss []string
	ss = append(ss, "{")
	for _, c := range pc {
		code := c.String()
		if pad := maxLen - len(code); pad > 0 {
			code = strings.Repeat(" ", pad) + code
		}
		var cntStr string
		if maxCnt > 0 {
			cnt := int(32*float64(c.Cnt)/float64(maxCnt) + 0.5)
			cntStr = fmt.Sprintf(",  %s |%s",
				padBase10(c.Cnt, maxCntStr),
				strings.Repeat("#", cnt),
			)
		}
		ss = append(ss, fmt.Sprintf("\t%s:  %s%s",
			padBase10(c.Sym, maxSymStr), code, cntStr,
		))
	}
	ss = append(ss, "}")
	return strings.Join(ss, "\n")
}

// String renders the tree shape in pre-order, using the same notation as the
// container: "0" for an internal node and "1:<sym>" for a leaf.
func (t *Tree) String() string {
	if len(t.Nodes) == 0 {
		return "{}"
	}
	var ss []string
	stack := []int{t.Root}
	for len(stack) > 0 {
		n := &t.Nodes[stack[len(stack)-1]]
		stack = stack[:len(stack)-1]
		if n.Kind == Leaf {
			ss = append(ss, fmt.Sprintf("1:%d", n.Sym))
			continue
		}
		ss = append(ss, "0")
		stack = append(stack, n.Right, n.Left)
	}
	return "{" + strings.Join(ss, " ") + "}"
}
