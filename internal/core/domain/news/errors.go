package news

import "fmt"

// UpstreamError reports a proxy response whose status was not "ok": the
// proxy reached the feed but could not produce items from it.
type UpstreamError struct {
	Feed    string
	Message string
}

func (e *UpstreamError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("feed %s: upstream error", e.Feed)
	}
	return fmt.Sprintf("feed %s: %s", e.Feed, e.Message)
}
