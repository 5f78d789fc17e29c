package service

import "strings"

// EmbedURL turns a video watch URL ("…/watch?v=ID") into its embeddable
// player form ("…/embed/ID"). Other URLs are returned unchanged; the result
// is not checked for playability.
func EmbedURL(watchURL string) string {
	return strings.Replace(watchURL, "watch?v=", "embed/", 1)
}
