package transcript

import "context"

// Language identifies one available transcript track.
type Language struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Provider lists and fetches caption tracks for a video.
type Provider interface {
	// List returns the available transcript languages in the order the
	// provider advertises them.
	List(ctx context.Context, videoID string) ([]Language, error)
	// Fetch returns the plain transcript text for one language.
	Fetch(ctx context.Context, videoID, lang string) (string, error)
}
