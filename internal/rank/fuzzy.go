package rank

import (
	"math"
	"math/bits"
	"strings"

	"jobmatch-engine/internal/skills"
)

// Score compares the space-joined skill set against a job description and
// returns an integer similarity in [0,100]. Skills are joined in sorted order
// so the result does not depend on set iteration order.
func Score(description string, set skills.Set) int {
	query := strings.Join(set.Sorted(), " ")
	return PartialRatio(query, description)
}

// PartialRatio finds the word-aligned span of the longer string that best
// matches the shorter one and returns their similarity scaled to 0..100.
// Both inputs are lowercased and whitespace-normalized first. An empty
// operand scores 0.
//
// Spans starting at the same word share one LCS pass; the similarity of
// each span is read off at the word boundary where it ends.
func PartialRatio(a, b string) int {
	a = normalize(a)
	b = normalize(b)
	if a == "" || b == "" {
		return 0
	}
	short, long := []rune(a), []rune(b)
	if len(short) > len(long) {
		short, long = long, short
		a, b = b, a
	}
	if aligned(b, a) {
		return 100
	}

	p := newPattern(short)
	v := make([]uint64, p.blocks)
	best := 0.0
	for start := 0; start < len(long); start++ {
		if start > 0 && long[start-1] != ' ' {
			continue
		}
		p.reset(v)
		for k := start; k <= len(long); k++ {
			if k == len(long) || long[k] == ' ' {
				n := k - start
				if r := indel(len(short), n, p.lcs(v)); r > best {
					best = r
				}
				if n >= len(short) || k == len(long) {
					break
				}
			}
			p.step(v, long[k])
		}
		if best == 100 {
			break
		}
	}
	return int(math.Round(best))
}

// Ratio is the normalized Indel similarity of a and b in [0,100]:
// 100 * (1 - (insertions + deletions) / (len(a) + len(b))).
func Ratio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 || len(rb) == 0 {
		return indel(len(ra), len(rb), 0)
	}
	p := newPattern(ra)
	v := make([]uint64, p.blocks)
	p.reset(v)
	for _, c := range rb {
		p.step(v, c)
	}
	return indel(len(ra), len(rb), p.lcs(v))
}

func indel(la, lb, lcs int) float64 {
	total := la + lb
	if total == 0 {
		return 100
	}
	return 100 * float64(2*lcs) / float64(total)
}

// pattern holds per-rune match masks for bit-parallel LCS (Hyyrö). Bit i of
// the state is cleared once pattern position i has been matched.
type pattern struct {
	m      int
	blocks int
	masks  map[rune][]uint64
}

func newPattern(s []rune) *pattern {
	p := &pattern{m: len(s), blocks: (len(s) + 63) / 64, masks: map[rune][]uint64{}}
	for i, c := range s {
		mask, ok := p.masks[c]
		if !ok {
			mask = make([]uint64, p.blocks)
			p.masks[c] = mask
		}
		mask[i/64] |= 1 << (uint(i) % 64)
	}
	return p
}

func (p *pattern) reset(v []uint64) {
	for i := range v {
		v[i] = ^uint64(0)
	}
}

// step advances the state by one text rune.
func (p *pattern) step(v []uint64, c rune) {
	mask, ok := p.masks[c]
	if !ok {
		return
	}
	var carry uint64
	for i := range v {
		u := v[i] & mask[i]
		sum, c2 := bits.Add64(v[i], u, carry)
		v[i] = sum | (v[i] &^ mask[i])
		carry = c2
	}
}

// lcs is the number of cleared bits among the pattern's m positions.
func (p *pattern) lcs(v []uint64) int {
	n := 0
	for i, w := range v {
		z := ^w
		if i == p.blocks-1 && p.m%64 != 0 {
			z &= 1<<(uint(p.m)%64) - 1
		}
		n += bits.OnesCount64(z)
	}
	return n
}

func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// aligned reports whether sub occurs in s on word boundaries.
func aligned(s, sub string) bool {
	return strings.Contains(" "+s+" ", " "+sub+" ")
}
