package indicators

// A small Aho-Corasick automaton over bytes. Inputs are folded UTF-8, so byte
// matching is exact for multi-byte phrases. Transitions are sparse: phrase
// lists are short and mostly ASCII

type acNode struct {
	next   map[byte]int
	fail   int
	output []int // phrase IDs ending here, including those inherited via fail links
}

type automaton struct {
	nodes []acNode
	lens  []int // phrase ID -> byte length
}

func newAutomaton() *automaton {
	return &automaton{nodes: []acNode{{next: map[byte]int{}}}}
}

// add inserts pat under id. IDs must be dense and added in increasing order
func (a *automaton) add(pat string, id int) {
	for len(a.lens) <= id {
		a.lens = append(a.lens, 0)
	}
	a.lens[id] = len(pat)
	if pat == "" {
		return
	}
	state := 0
	for i := 0; i < len(pat); i++ {
		b := pat[i]
		nxt, ok := a.nodes[state].next[b]
		if !ok {
			nxt = len(a.nodes)
			a.nodes[state].next[b] = nxt
			a.nodes = append(a.nodes, acNode{next: map[byte]int{}})
		}
		state = nxt
	}
	a.nodes[state].output = append(a.nodes[state].output, id)
}

// build computes failure links breadth first and merges outputs
func (a *automaton) build() {
	queue := make([]int, 0, len(a.nodes))
	for _, s := range a.nodes[0].next {
		a.nodes[s].fail = 0
		queue = append(queue, s)
	}
	for qi := 0; qi < len(queue); qi++ {
		r := queue[qi]
		for b, s := range a.nodes[r].next {
			queue = append(queue, s)
			f := a.nodes[r].fail
			for {
				if nxt, ok := a.nodes[f].next[b]; ok {
					a.nodes[s].fail = nxt
					break
				}
				if f == 0 {
					a.nodes[s].fail = 0
					break
				}
				f = a.nodes[f].fail
			}
			a.nodes[s].output = append(a.nodes[s].output, a.nodes[a.nodes[s].fail].output...)
		}
	}
}

// step follows goto/fail edges for one input byte
func (a *automaton) step(state int, b byte) int {
	for {
		if nxt, ok := a.nodes[state].next[b]; ok {
			return nxt
		}
		if state == 0 {
			return 0
		}
		state = a.nodes[state].fail
	}
}

// scan calls fn(start, end, id) for every occurrence, in order of end offset
func (a *automaton) scan(text string, fn func(start, end, id int)) {
	state := 0
	for i := 0; i < len(text); i++ {
		state = a.step(state, text[i])
		for _, id := range a.nodes[state].output {
			end := i + 1
			fn(end-a.lens[id], end, id)
		}
	}
}
