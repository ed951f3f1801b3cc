package keywords

// ecommerceNoiseWords is marketing filler that says nothing about what a
// product actually is.
var ecommerceNoiseWords = []string{
	"new", "original", "genuine", "premium", "high", "quality", "best",
	"great", "perfect", "ideal", "top", "brand", "rated", "pack", "set",
	"piece", "pcs", "item", "product", "sale", "deal", "offer", "buy",
	"get", "free", "shipping", "amazon", "ebay", "walmart", "official",
	"authentic", "certified", "guaranteed", "warranty", "hot", "latest",
}

// englishStopWords is the function-word list excluded from tf-idf phrase
// terms. Tokens of two characters or fewer never reach this filter.
var englishStopWords = []string{
	"the", "and", "for", "are", "but", "not", "you", "all", "any", "can",
	"had", "her", "was", "one", "our", "out", "day", "has", "him", "his",
	"how", "man", "now", "old", "see", "two", "way", "who", "its", "did",
	"that", "this", "with", "from", "they", "will", "would", "there",
	"their", "what", "about", "which", "when", "make", "like", "time",
	"just", "know", "take", "into", "your", "some", "could", "them",
	"than", "then", "only", "over", "also", "after", "most", "where",
	"much", "before", "these", "other", "such", "through", "each",
	"under", "while", "should", "very", "more", "been", "have", "were",
	"being", "both", "during", "between", "against", "because", "does",
	"doing", "until", "again", "further", "here", "once", "same", "those",
	"itself", "ours", "yours", "hers", "theirs", "having",
}
