package openlibrary

import (
	"context"
	"net/url"
	"strconv"
)

// searchLimit caps the number of docs requested per search.
const searchLimit = 5

// SearchResult is the subset of the Open Library search response the
// application uses.
type SearchResult struct {
	NumFound int   `json:"numFound"`
	Docs     []Doc `json:"docs"`
}

// Doc is a single matched work.
type Doc struct {
	Title      string   `json:"title"`
	AuthorName []string `json:"author_name"`
	Subject    []string `json:"subject"`
	FirstYear  int      `json:"first_publish_year"`
}

// SearchByTitle queries the search API for works matching the given title.
// An optional author narrows the query.
func (c *Client) SearchByTitle(ctx context.Context, title, author string) (*SearchResult, error) {
	q := url.Values{}
	q.Set("title", title)
	if author != "" {
		q.Set("author", author)
	}
	q.Set("limit", strconv.Itoa(searchLimit))
	q.Set("fields", "title,author_name,subject,first_publish_year")

	return doGetJSON[SearchResult](ctx, c, "search.json?"+q.Encode())
}
