package engine

// bitset is a fixed-size presence bitmap over entity handles.
type bitset struct {
	words []uint64
}

func newBitset(capacity int) bitset {
	return bitset{words: make([]uint64, (capacity+63)/64)}
}

func (b *bitset) set(i int) {
	b.words[i>>6] |= 1 << (uint(i) & 63)
}

func (b *bitset) clear(i int) {
	b.words[i>>6] &^= 1 << (uint(i) & 63)
}

// test reports whether bit i is set; out-of-range indices read as unset.
func (b *bitset) test(i int) bool {
	w := i >> 6
	if i < 0 || w >= len(b.words) {
		return false
	}
	return b.words[w]&(1<<(uint(i)&63)) != 0
}

func (b *bitset) reset() {
	for i := range b.words {
		b.words[i] = 0
	}
}
