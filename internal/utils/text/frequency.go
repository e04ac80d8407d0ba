package text

import (
	"regexp"
	"sort"
	"strings"
)

// minFrequencyWordRunes excludes very short tokens from frequency counts.
const minFrequencyWordRunes = 3

var nonLetters = regexp.MustCompile(`[^a-z\s]`)

// englishStopWords is the NLTK English stop word list.
var englishStopWords = toSet(strings.Fields(`
	i me my myself we our ours ourselves you you're you've you'll you'd your yours yourself
	yourselves he him his himself she she's her hers herself it it's its itself they them their
	theirs themselves what which who whom this that that'll these those am is are was were be
	been being have has had having do does did doing a an the and but if or because as until
	while of at by for with about against between into through during before after above below
	to from up down in out on off over under again further then once here there when where why
	how all any both each few more most other some such no nor not only own same so than too
	very s t can will just don don't should should've now d ll m o re ve y ain aren aren't
	couldn couldn't didn didn't doesn doesn't hadn hadn't hasn hasn't haven haven't isn isn't
	ma mightn mightn't mustn mustn't needn needn't shan shan't shouldn shouldn't wasn wasn't
	weren weren't won won't wouldn wouldn't
`))

// WordCount pairs a word with its number of occurrences.
type WordCount struct {
	Word  string `json:"word" yaml:"word"`
	Count int    `json:"count" yaml:"count"`
}

// WordFrequency counts content words: text is lower-cased, everything but ASCII letters and
// whitespace is removed, and stop words and words shorter than three letters are skipped.
//
// The counts feed the analysis report only. Summaries never rank sentences by frequency.
func WordFrequency(input string) map[string]int {
	normalised := nonLetters.ReplaceAllString(strings.ToLower(input), "")

	counts := make(map[string]int)
	for _, word := range strings.Fields(normalised) {
		if len(word) < minFrequencyWordRunes {
			continue
		}
		if _, stop := englishStopWords[word]; stop {
			continue
		}
		counts[word]++
	}
	return counts
}

// TopWords returns the n most frequent content words, most frequent first.
// Ties are broken alphabetically so the result is deterministic.
func TopWords(input string, n int) []WordCount {
	if n <= 0 {
		return nil
	}

	counts := WordFrequency(input)
	words := make([]WordCount, 0, len(counts))
	for word, count := range counts {
		words = append(words, WordCount{Word: word, Count: count})
	}

	sort.Slice(words, func(i, j int) bool {
		if words[i].Count != words[j].Count {
			return words[i].Count > words[j].Count
		}
		return words[i].Word < words[j].Word
	})

	if len(words) > n {
		words = words[:n]
	}
	return words
}

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
