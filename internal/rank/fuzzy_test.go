package rank

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobmatch-engine/internal/domain"
	"jobmatch-engine/internal/skills"
)

func TestScoreScenarios(t *testing.T) {
	tests := []struct {
		name    string
		skills  []string
		desc    string
		want    int
		matched bool
	}{
		{
			name:    "machine learning engineer",
			skills:  []string{"python", "machine learning"},
			desc:    "Looking for a machine learning engineer skilled in python and sql",
			want:    82,
			matched: true,
		},
		{
			name:    "short skill inside an unrelated word",
			skills:  []string{"php"},
			desc:    "Seeking a graphic designer with Photoshop experience",
			want:    50,
			matched: false,
		},
		{
			name:    "exact word scores 100",
			skills:  []string{"go"},
			desc:    "We use Go daily",
			want:    100,
			matched: true,
		},
		{
			name:    "empty skills",
			skills:  nil,
			desc:    "Anything at all",
			want:    0,
			matched: false,
		},
		{
			name:    "empty description",
			skills:  []string{"python"},
			desc:    "",
			want:    0,
			matched: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(tt.desc, skills.NewSet(tt.skills...))
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.matched, Matched(got))
		})
	}
}

func TestScoreIsDeterministicAndBounded(t *testing.T) {
	set := skills.NewSet("docker", "kubernetes", "aws", "rest api")
	desc := "Platform engineer: Kubernetes operators, Docker images, AWS networking and REST APIs."

	first := Score(desc, set)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, Score(desc, set))
	}
	assert.GreaterOrEqual(t, first, 0)
	assert.LessOrEqual(t, first, 100)
}

func TestScoreIsCaseInsensitive(t *testing.T) {
	set := skills.NewSet("Machine Learning")
	assert.Equal(t, Score("MACHINE LEARNING role", set), Score("machine learning role", set))
}

func TestMatchedBoundary(t *testing.T) {
	assert.False(t, Matched(Threshold))
	assert.True(t, Matched(Threshold+1))
	assert.False(t, Matched(0))
}

func TestRatio(t *testing.T) {
	assert.InDelta(t, 100.0, Ratio("ab", "ab"), 1e-9)
	assert.InDelta(t, 66.666, Ratio("abc", "abd"), 0.01)
	assert.InDelta(t, 50.0, Ratio("php", "photoshop"), 1e-9)
	assert.InDelta(t, 100.0, Ratio("", ""), 1e-9)
}

// naiveLCS is the textbook dynamic program, used to check the bit-parallel one.
func naiveLCS(a, b []rune) int {
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			switch {
			case a[i-1] == b[j-1]:
				cur[j] = prev[j-1] + 1
			case prev[j] >= cur[j-1]:
				cur[j] = prev[j]
			default:
				cur[j] = cur[j-1]
			}
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}

func TestRatioAgreesWithDynamicProgram(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	alphabet := []rune("abcde +#é")
	randStr := func(n int) string {
		rs := make([]rune, n)
		for i := range rs {
			rs[i] = alphabet[rng.Intn(len(alphabet))]
		}
		return string(rs)
	}
	// lengths straddle the 64-bit block size
	for _, n := range []int{1, 5, 63, 64, 65, 130, 200} {
		for i := 0; i < 20; i++ {
			a, b := randStr(n), randStr(1+rng.Intn(150))
			lcs := naiveLCS([]rune(a), []rune(b))
			want := 100 * float64(2*lcs) / float64(len([]rune(a))+len([]rune(b)))
			require.InDelta(t, want, Ratio(a, b), 1e-9, "a=%q b=%q", a, b)
		}
	}
}

func TestScoreFullVocabularyIsFast(t *testing.T) {
	set := skills.NewSet()
	for _, c := range skills.Default().Categories() {
		for _, term := range c.Skills {
			set[term] = struct{}{}
		}
	}
	require.Greater(t, len(set), 40)

	words := strings.Fields("we are hiring a senior engineer to build data pipelines in python and go " +
		"with experience in cloud platforms distributed systems and modern frontend frameworks")
	var sb strings.Builder
	for i := 0; sb.Len() < 5000; i++ {
		sb.WriteString(words[i%len(words)])
		sb.WriteByte(' ')
	}
	desc := sb.String()

	start := time.Now()
	got := Score(desc, set)
	elapsed := time.Since(start)

	assert.GreaterOrEqual(t, got, 0)
	assert.LessOrEqual(t, got, 100)
	assert.Less(t, elapsed, 2*time.Second)
}

func BenchmarkScoreFullVocabulary(b *testing.B) {
	set := skills.NewSet()
	for _, c := range skills.Default().Categories() {
		for _, term := range c.Skills {
			set[term] = struct{}{}
		}
	}
	desc := strings.Repeat("python developer with cloud and sql experience ", 100)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Score(desc, set)
	}
}

func TestPartialRatioSwapsOperands(t *testing.T) {
	long := "senior python developer with django"
	assert.Equal(t, PartialRatio("python", long), PartialRatio(long, "python"))
}

type fixedScorer map[string]int

func (f fixedScorer) Score(desc string, _ skills.Set) int { return f[desc] }

func TestMatchKeepsOrderAndThreshold(t *testing.T) {
	jobs := []domain.JobPosting{
		{Source: domain.SourceSeek, Title: "a", Description: "a"},
		{Source: domain.SourceIndeed, Title: "b", Description: "b"},
		{Source: domain.SourceIndeed, Title: "c", Description: "c"},
	}
	s := fixedScorer{"a": 61, "b": 60, "c": 99}

	got := Match(s, jobs, skills.Set{})
	assert.Equal(t, []domain.MatchResult{
		{Job: jobs[0], Score: 61},
		{Job: jobs[2], Score: 99},
	}, got)
}
