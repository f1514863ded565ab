package views

import "encoding/json"

// PageviewEvent is the synthetic analytics event that earns a nonce from the upstream.
type PageviewEvent struct {
	Name         string   `json:"n"`
	URL          string   `json:"u"`
	Languages    []string `json:"l"`
	SiteKey      string   `json:"k"`
	Referrer     string   `json:"r"`
	ScreenWidth  int      `json:"sw"`
	ScreenHeight int      `json:"sh"`
	ScaleRatio   int      `json:"sr"`
	Title        string   `json:"t"`
}

// ResolveResponse is the admin-ajax reply. Only data is relayed; it stays opaque.
type ResolveResponse struct {
	Data json.RawMessage `json:"data"`
}
