package optimizer

// problem is the item list in processing order after exact reduction:
// capacity is clamped to the total cost of all items and every cost, along
// with the clamped capacity, is divided by the gcd of the costs. Neither
// transform changes a single take/skip decision along the reconstruction
// path, so the selection equals that of the unreduced table.
type problem struct {
	costs    []int
	benefits []int
	capacity int
	scale    int
}

func reduce(capacity int, items []Item, order []int) problem {
	reach, g := 0, 0
	for _, it := range items {
		// reach = min(capacity, sum of costs) without overflowing
		if it.Cost >= capacity-reach {
			reach = capacity
		} else {
			reach += it.Cost
		}
		g = gcd(g, it.Cost)
	}

	p := problem{
		costs:    make([]int, len(order)),
		benefits: make([]int, len(order)),
		capacity: reach / g,
		scale:    g,
	}
	for k, idx := range order {
		p.costs[k] = items[idx].Cost / g
		p.benefits[k] = items[idx].Benefit
	}
	return p
}

func (p *problem) fits(maxCells int) bool {
	rows := len(p.costs) + 1
	return p.capacity+1 <= maxCells/rows
}

// solve fills the table row by row and walks it back from (n, capacity).
// Only two rows of best values are live at a time; the take flags for every
// cell live in one contiguous bitset of n*(capacity+1) bits.
func (p *problem) solve() (picked []bool, benefit int) {
	n, width := len(p.costs), p.capacity+1

	prev := make([]int, width)
	cur := make([]int, width)
	take := newBitset(n * width)

	for i := 0; i < n; i++ {
		c, b := p.costs[i], p.benefits[i]
		copy(cur, prev)
		base := i * width
		for w := c; w < width; w++ {
			// strict: an equal value keeps the item out
			if v := prev[w-c] + b; v > cur[w] {
				cur[w] = v
				take.set(base + w)
			}
		}
		prev, cur = cur, prev
	}

	picked = make([]bool, n)
	w := p.capacity
	for i := n - 1; i >= 0; i-- {
		if take.has(i*width + w) {
			picked[i] = true
			w -= p.costs[i]
		}
	}
	return picked, prev[p.capacity]
}

type bitset []uint64

func newBitset(n int) bitset {
	return make(bitset, (n+63)/64)
}

func (b bitset) set(i int) {
	b[i>>6] |= 1 << (uint(i) & 63)
}

func (b bitset) has(i int) bool {
	return b[i>>6]&(1<<(uint(i)&63)) != 0
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
