package views

// ResolveRequest carries the query of GET /api/terabox.
type ResolveRequest struct {
	URL string `form:"url"`
}
