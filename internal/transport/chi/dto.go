package chi

import (
	"sort"

	"github.com/pagetrail/pagetrail/internal/domain"
	domsearch "github.com/pagetrail/pagetrail/internal/domain/search"
)

// searchRequest is the POST /search body.
type searchRequest struct {
	Query    string `json:"query"`
	Category string `json:"category,omitempty"`
}

// compareRequest is the POST /compare body.
type compareRequest struct {
	Query string `json:"query"`
}

// resultDTO is one search hit on the wire.
type resultDTO struct {
	URL                  string   `json:"url"`
	Title                string   `json:"title"`
	Snippet              string   `json:"snippet"`
	Category             string   `json:"category"`
	Similarity           float64  `json:"similarity"`
	RelevanceScore       float64  `json:"relevance_score"`
	Explanation          string   `json:"explanation"`
	HighlightSuggestions []string `json:"highlight_suggestions"`
}

// searchResponse is the POST /search reply.
type searchResponse struct {
	Results            []resultDTO `json:"results"`
	QueryUnderstanding string      `json:"query_understanding"`
	SearchStrategy     string      `json:"search_strategy"`
	TotalFound         int         `json:"total_found"`
	ProcessingTime     float64     `json:"processing_time"`
	Suggestions        []string    `json:"suggestions"`
}

// chunkDTO is one text fragment of a compared product.
type chunkDTO struct {
	Text       string  `json:"text"`
	Similarity float64 `json:"similarity"`
}

// productDTO is one per-URL product group in a comparison reply.
type productDTO struct {
	URL           string     `json:"url"`
	Title         string     `json:"title"`
	Chunks        []chunkDTO `json:"chunks"`
	AvgSimilarity float64    `json:"avg_similarity"`
	Explanation   string     `json:"explanation"`
}

// compareResponse is the POST /compare reply.
type compareResponse struct {
	Products           []productDTO `json:"products"`
	TotalFound         int          `json:"total_found"`
	QueryUnderstanding string       `json:"query_understanding"`
	Suggestions        []string     `json:"suggestions"`
}

// pageDTO is one page chunk in the POST /pages body.
type pageDTO struct {
	URL       string            `json:"url"`
	Title     string            `json:"title"`
	Chunk     string            `json:"chunk"`
	Category  string            `json:"category"`
	Timestamp int64             `json:"timestamp,omitempty"`
	Extra     map[string]string `json:"extra,omitempty"`
}

// addPagesRequest is the POST /pages body.
type addPagesRequest struct {
	Pages []pageDTO `json:"pages"`
}

// addPagesResponse is the POST /pages reply.
type addPagesResponse struct {
	Added      int      `json:"added"`
	TokensUsed int      `json:"tokens_used"`
	IDs        []string `json:"ids"`
}

// embedRequest is the POST /embed body.
type embedRequest struct {
	Texts []string `json:"texts"`
}

// embedResponse is the POST /embed reply.
type embedResponse struct {
	Embeddings  [][]float32 `json:"embeddings"`
	Dimension   int         `json:"dimension"`
	TotalTokens int         `json:"total_tokens"`
}

// healthResponse is the GET /health reply.
type healthResponse struct {
	Status       string            `json:"status"`
	Model        string            `json:"model"`
	TotalVectors int64             `json:"total_vectors"`
	Dimension    int               `json:"dimension"`
	Checks       map[string]string `json:"checks"`
}

// errorResponse is the uniform error body.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

const maxProducts = 10

func pageFromDTO(p pageDTO) domain.Page {
	return domain.Page{
		URL:       p.URL,
		Title:     p.Title,
		Chunk:     p.Chunk,
		Category:  p.Category,
		Timestamp: p.Timestamp,
		Extra:     p.Extra,
	}
}

func searchResponseToDTO(resp domsearch.Response) searchResponse {
	results := make([]resultDTO, len(resp.Results))
	for i, r := range resp.Results {
		results[i] = resultDTO{
			URL:                  r.URL,
			Title:                r.Title,
			Snippet:              r.Snippet,
			Category:             r.Category,
			Similarity:           r.Similarity,
			RelevanceScore:       r.RelevanceScore,
			Explanation:          r.Explanation,
			HighlightSuggestions: r.Highlights,
		}
	}
	return searchResponse{
		Results:            results,
		QueryUnderstanding: resp.QueryUnderstanding,
		SearchStrategy:     resp.StrategySummary,
		TotalFound:         resp.TotalFound,
		ProcessingTime:     resp.Elapsed.Seconds(),
		Suggestions:        resp.Suggestions,
	}
}

// compareResponseToDTO regroups the already URL-grouped results into product
// entries ordered by descending score, capped at maxProducts.
func compareResponseToDTO(resp domsearch.Response) compareResponse {
	products := make([]productDTO, len(resp.Results))
	for i, r := range resp.Results {
		products[i] = productDTO{
			URL:           r.URL,
			Title:         r.Title,
			Chunks:        []chunkDTO{{Text: r.Snippet, Similarity: r.Similarity}},
			AvgSimilarity: r.RelevanceScore,
			Explanation:   r.Explanation,
		}
	}
	sort.SliceStable(products, func(i, j int) bool {
		return products[i].AvgSimilarity > products[j].AvgSimilarity
	})

	total := len(products)
	if len(products) > maxProducts {
		products = products[:maxProducts]
	}

	return compareResponse{
		Products:           products,
		TotalFound:         total,
		QueryUnderstanding: resp.QueryUnderstanding,
		Suggestions:        resp.Suggestions,
	}
}
