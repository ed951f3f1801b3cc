// Package keywords derives human-readable labels for clusters of e-commerce
// product descriptions. It blends three candidate sources (tf-idf phrase
// ranking, frequent n-grams, frequent single words) and re-scores the union
// by coverage, phrase length and position in the text.
package keywords

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/Hammad1029/trend-finder/config"
)

// Method tags reported with every result so callers can tell how (or why
// not) a label was produced.
const (
	MethodCombined             = "combined"
	MethodSizeFilter           = "size_filter"
	MethodEmptyAfterProcessing = "empty_after_processing"
	MethodWordFrequency        = "word_frequency"
	MethodNoise                = "noise"
)

// Keyword is one ranked label candidate
type Keyword struct {
	Phrase string  `json:"phrase"`
	Score  float64 `json:"score"`
}

// ClusterKeywords is the labeling result for one cluster
type ClusterKeywords struct {
	Keywords    []Keyword `json:"keywords"`
	ClusterSize int       `json:"cluster_size"`
	Method      string    `json:"method"`
	SampleTexts []string  `json:"sample_texts,omitempty"`
}

// Extractor labels clusters of product descriptions
type Extractor struct {
	cfg config.KeywordConfig

	urlPattern    *regexp.Regexp
	brandPattern  *regexp.Regexp
	specPatterns  []*regexp.Regexp
	symbolPattern *regexp.Regexp
	digitPattern  *regexp.Regexp

	noiseWords map[string]struct{}
	stopWords  map[string]struct{}
}

// NewExtractor creates an extractor with the fixed e-commerce filter sets
func NewExtractor(cfg config.KeywordConfig) *Extractor {
	specSources := []string{
		`\b\d+\s*(gb|mb|tb|kg|g|lb|oz|mm|cm|m|inch|in|ft|ml|l)\b`,
		`\b\d+[\s-]*pack\b`,
		`\b\d+x\d+\b`,
		`\bsize\s+\w+\b`,
		`\bcolor[:\s]+\w+\b`,
	}
	specs := make([]*regexp.Regexp, len(specSources))
	for i, src := range specSources {
		specs[i] = regexp.MustCompile(`(?i)` + src)
	}

	return &Extractor{
		cfg:           cfg,
		urlPattern:    regexp.MustCompile(`(?i)http\S+|www\.\S+`),
		brandPattern:  regexp.MustCompile(`\b[A-Z][A-Z0-9]{2,15}\b`),
		specPatterns:  specs,
		symbolPattern: regexp.MustCompile(`[^\w\s-]`),
		digitPattern:  regexp.MustCompile(`\b\d+\b`),
		noiseWords:    toSet(ecommerceNoiseWords),
		stopWords:     toSet(englishStopWords),
	}
}

// LabelAllClusters labels every cluster in one clustering result. texts and
// labels are parallel; label -1 marks noise, which is reported with up to 3
// sample texts and no keywords.
func (e *Extractor) LabelAllClusters(texts []string, labels []int) map[int]ClusterKeywords {
	grouped := make(map[int][]string)
	var order []int
	for i, text := range texts {
		if i >= len(labels) {
			break
		}
		label := labels[i]
		if _, seen := grouped[label]; !seen {
			order = append(order, label)
		}
		grouped[label] = append(grouped[label], text)
	}

	results := make(map[int]ClusterKeywords, len(grouped))
	for _, label := range order {
		clusterTexts := grouped[label]
		if label == -1 {
			results[label] = ClusterKeywords{
				ClusterSize: len(clusterTexts),
				Method:      MethodNoise,
				SampleTexts: sample(clusterTexts, 3),
			}
			continue
		}
		info := e.ExtractClusterKeywords(clusterTexts)
		info.SampleTexts = sample(clusterTexts, 3)
		results[label] = info
	}
	return results
}

// ExtractClusterKeywords ranks label candidates for one cluster's raw
// descriptions. Clusters smaller than the configured minimum are skipped
// with the size_filter tag; clusters whose texts all normalize to nothing
// are skipped with empty_after_processing.
func (e *Extractor) ExtractClusterKeywords(clusterTexts []string) ClusterKeywords {
	if len(clusterTexts) < e.cfg.MinClusterSize {
		return ClusterKeywords{ClusterSize: len(clusterTexts), Method: MethodSizeFilter}
	}

	var processed []string
	for _, t := range clusterTexts {
		if p := e.Preprocess(t); p != "" {
			processed = append(processed, p)
		}
	}
	if len(processed) == 0 {
		return ClusterKeywords{ClusterSize: len(clusterTexts), Method: MethodEmptyAfterProcessing}
	}

	var candidates []string

	// Source 1: tf-idf phrase ranking over 1-3 grams
	for _, kw := range e.tfidfKeywords(processed, e.cfg.TFIDFTopN) {
		candidates = append(candidates, kw.Phrase)
	}

	// Source 2: frequent bigrams and trigrams
	minFreq := len(processed) / 3
	if minFreq < 2 {
		minFreq = 2
	}
	for _, n := range []int{2, 3} {
		ngrams := e.extractNgrams(processed, n, minFreq)
		if len(ngrams) > e.cfg.NgramTopN {
			ngrams = ngrams[:e.cfg.NgramTopN]
		}
		for _, ng := range ngrams {
			candidates = append(candidates, ng.phrase)
		}
	}

	// Source 3: most frequent single words longer than 3 characters
	freq := countTokens(strings.Fields(strings.Join(processed, " ")))
	for i, wc := range freq {
		if i >= e.cfg.TopSingleWords {
			break
		}
		if len(wc.phrase) > 3 {
			candidates = append(candidates, wc.phrase)
		}
	}

	ranked := e.scorePhrases(candidates, processed)
	if len(ranked) > e.cfg.TopN {
		ranked = ranked[:e.cfg.TopN]
	}

	return ClusterKeywords{
		Keywords:    ranked,
		ClusterSize: len(clusterTexts),
		Method:      MethodCombined,
	}
}

// Preprocess normalizes one product description: URLs, brand tokens,
// measurement specs, punctuation, standalone digits, marketing noise words
// and tokens of two characters or fewer are all stripped. Returns "" when
// nothing survives.
func (e *Extractor) Preprocess(text string) string {
	text = e.urlPattern.ReplaceAllString(text, "")
	// brand tokens are matched on the original casing, before lowering
	text = e.brandPattern.ReplaceAllString(text, "")
	text = strings.ToLower(text)

	for _, p := range e.specPatterns {
		text = p.ReplaceAllString(text, "")
	}

	text = e.symbolPattern.ReplaceAllString(text, " ")
	text = e.digitPattern.ReplaceAllString(text, "")

	var kept []string
	for _, w := range strings.Fields(text) {
		if len(w) <= 2 {
			continue
		}
		if _, noisy := e.noiseWords[w]; noisy {
			continue
		}
		kept = append(kept, w)
	}
	return strings.Join(kept, " ")
}

type phraseCount struct {
	phrase string
	count  int
}

// countTokens counts token occurrences, ordered by count descending with
// first appearance breaking ties.
func countTokens(tokens []string) []phraseCount {
	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	for i, tok := range tokens {
		if _, ok := counts[tok]; !ok {
			firstSeen[tok] = i
		}
		counts[tok]++
	}

	out := make([]phraseCount, 0, len(counts))
	for tok, c := range counts {
		out = append(out, phraseCount{phrase: tok, count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].count != out[j].count {
			return out[i].count > out[j].count
		}
		return firstSeen[out[i].phrase] < firstSeen[out[j].phrase]
	})
	return out
}

// extractNgrams returns n-grams occurring at least minFreq times across the
// texts, most frequent first.
func (e *Extractor) extractNgrams(texts []string, n, minFreq int) []phraseCount {
	var grams []string
	for _, text := range texts {
		words := strings.Fields(text)
		if len(words) < n {
			continue
		}
		for i := 0; i+n <= len(words); i++ {
			gram := words[i : i+n]
			short := false
			for _, w := range gram {
				if len(w) <= 2 {
					short = true
					break
				}
			}
			if !short {
				grams = append(grams, strings.Join(gram, " "))
			}
		}
	}

	counted := countTokens(grams)
	var out []phraseCount
	for _, pc := range counted {
		if pc.count >= minFreq {
			out = append(out, pc)
		}
	}
	return out
}

// tfidfKeywords ranks 1-3 word phrases by summed tf-idf weight across the
// cluster's texts. With fewer than two texts, or when document-frequency
// filtering leaves no vocabulary, it falls back to raw word frequency.
func (e *Extractor) tfidfKeywords(texts []string, topN int) []Keyword {
	if len(texts) < 2 {
		return e.frequencyFallback(texts, topN)
	}

	docs := make([][]string, len(texts))
	for i, t := range texts {
		docs[i] = e.phraseTerms(t)
	}

	// document frequency per term
	df := make(map[string]int)
	total := make(map[string]int)
	firstSeen := make(map[string]int)
	seq := 0
	for _, doc := range docs {
		inDoc := make(map[string]bool)
		for _, term := range doc {
			if _, ok := total[term]; !ok {
				firstSeen[term] = seq
				seq++
			}
			total[term]++
			inDoc[term] = true
		}
		for term := range inDoc {
			df[term]++
		}
	}

	// drop terms in more than 80% of documents, and terms below the
	// adaptive minimum document frequency
	n := len(docs)
	maxDF := 0.8 * float64(n)
	minDF := int(math.Min(2, math.Max(1, float64(n)*0.1)))
	vocab := make(map[string]bool)
	for term, d := range df {
		if float64(d) > maxDF || d < minDF {
			continue
		}
		vocab[term] = true
	}
	if len(vocab) == 0 {
		// degenerate vocabulary after filtering
		return e.frequencyFallback(texts, topN)
	}

	// cap vocabulary to the most frequent terms
	const maxFeatures = 500
	if len(vocab) > maxFeatures {
		terms := make([]string, 0, len(vocab))
		for term := range vocab {
			terms = append(terms, term)
		}
		sort.Slice(terms, func(i, j int) bool {
			if total[terms[i]] != total[terms[j]] {
				return total[terms[i]] > total[terms[j]]
			}
			return firstSeen[terms[i]] < firstSeen[terms[j]]
		})
		vocab = make(map[string]bool, maxFeatures)
		for _, term := range terms[:maxFeatures] {
			vocab[term] = true
		}
	}

	// smoothed idf, per-document L2 normalization, summed across documents
	scores := make(map[string]float64)
	for _, doc := range docs {
		tf := make(map[string]int)
		for _, term := range doc {
			if vocab[term] {
				tf[term]++
			}
		}
		if len(tf) == 0 {
			continue
		}
		weights := make(map[string]float64, len(tf))
		var norm float64
		for term, c := range tf {
			idf := math.Log(float64(1+n)/float64(1+df[term])) + 1
			w := float64(c) * idf
			weights[term] = w
			norm += w * w
		}
		norm = math.Sqrt(norm)
		for term, w := range weights {
			scores[term] += w / norm
		}
	}

	ranked := make([]Keyword, 0, len(scores))
	for term, s := range scores {
		ranked = append(ranked, Keyword{Phrase: term, Score: s})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return firstSeen[ranked[i].Phrase] < firstSeen[ranked[j].Phrase]
	})
	if len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked
}

// phraseTerms expands one normalized text into its 1-3 word terms,
// excluding stop words.
func (e *Extractor) phraseTerms(text string) []string {
	var tokens []string
	for _, w := range strings.Fields(text) {
		if _, stop := e.stopWords[w]; !stop {
			tokens = append(tokens, w)
		}
	}

	var terms []string
	for n := 1; n <= 3; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			terms = append(terms, strings.Join(tokens[i:i+n], " "))
		}
	}
	return terms
}

// frequencyFallback ranks plain word counts when tf-idf cannot run
func (e *Extractor) frequencyFallback(texts []string, topN int) []Keyword {
	counted := countTokens(strings.Fields(strings.Join(texts, " ")))
	if len(counted) > topN {
		counted = counted[:topN]
	}
	out := make([]Keyword, len(counted))
	for i, pc := range counted {
		out[i] = Keyword{Phrase: pc.phrase, Score: float64(pc.count)}
	}
	return out
}

// scorePhrases scores each distinct candidate on coverage (weight 0.5),
// phrase length (0.3, favoring 2-3 word phrases) and how early it appears in
// the texts (0.2, product names usually lead). Result is sorted best first.
func (e *Extractor) scorePhrases(phrases []string, clusterTexts []string) []Keyword {
	numTexts := float64(len(clusterTexts))

	scored := make(map[string]float64)
	var order []string
	for _, phrase := range phrases {
		if _, done := scored[phrase]; done {
			continue
		}
		order = append(order, phrase)

		containing := 0
		var positions []float64
		for _, text := range clusterTexts {
			idx := strings.Index(text, phrase)
			if idx < 0 {
				continue
			}
			containing++
			length := len(text)
			if length < 1 {
				length = 1
			}
			positions = append(positions, float64(idx)/float64(length))
		}

		coverage := float64(containing) / numTexts
		lengthScore := math.Min(float64(len(strings.Fields(phrase)))/3, 1.0)
		positionScore := 0.0
		if len(positions) > 0 {
			positionScore = 1 - stat.Mean(positions, nil)
		}

		scored[phrase] = coverage*0.5 + lengthScore*0.3 + positionScore*0.2
	}

	out := make([]Keyword, 0, len(scored))
	for _, phrase := range order {
		out = append(out, Keyword{Phrase: phrase, Score: scored[phrase]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}

func sample(texts []string, n int) []string {
	if len(texts) < n {
		n = len(texts)
	}
	return texts[:n]
}

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
