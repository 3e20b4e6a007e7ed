package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"opencanada-grants-parser/internal/observability"
)

type RobotsCache struct {
	cache  map[string]*robotsEntry
	ttl    time.Duration
	mu     sync.RWMutex
	logger *observability.Logger
}

type robotsEntry struct {
	disallow  []string
	expiresAt time.Time
}

func NewRobotsCache(ttl time.Duration, logger *observability.Logger) *RobotsCache {
	return &RobotsCache{
		cache:  make(map[string]*robotsEntry),
		ttl:    ttl,
		logger: logger,
	}
}

// IsAllowed checks the host's robots.txt Disallow rules for the URL's path.
// Failures fetching or reading robots.txt fail open: the listing crawl must
// not abort because a courtesy file was unreachable.
func (rc *RobotsCache) IsAllowed(ctx context.Context, u *url.URL, client *http.Client, userAgent string) (bool, error) {
	host := u.Host

	rc.mu.RLock()
	cached, exists := rc.cache[host]
	rc.mu.RUnlock()

	if exists && time.Now().Before(cached.expiresAt) {
		return pathAllowed(cached.disallow, u.Path), nil
	}

	robotsURL := fmt.Sprintf("%s://%s/robots.txt", u.Scheme, host)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return true, nil
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		rc.logger.Debug("robots.txt fetch failed, assuming allowed", "host", host, "error", err.Error())
		return true, nil
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			rc.logger.Warn("failed to close robots.txt body", "error", err.Error())
		}
	}()

	if resp.StatusCode != http.StatusOK {
		rc.store(host, nil)
		return true, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return true, nil
	}

	disallow := parseRobots(string(body), agentToken(userAgent))
	rc.store(host, disallow)

	return pathAllowed(disallow, u.Path), nil
}

func (rc *RobotsCache) store(host string, disallow []string) {
	rc.mu.Lock()
	rc.cache[host] = &robotsEntry{
		disallow:  disallow,
		expiresAt: time.Now().Add(rc.ttl),
	}
	rc.mu.Unlock()
}

// parseRobots collects Disallow path prefixes from groups whose User-agent
// line is "*" or matches the agent token. Directives outside any matching
// group are ignored.
func parseRobots(content, agent string) []string {
	agent = strings.ToLower(agent)

	var disallow []string
	applies := false
	inGroupHeader := false

	for _, line := range strings.Split(content, "\n") {
		if idx := strings.Index(line, "#"); idx >= 0 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)

		switch key {
		case "user-agent":
			ua := strings.ToLower(value)
			if !inGroupHeader {
				// New group: previous group's match state no longer applies.
				applies = false
			}
			inGroupHeader = true
			if ua == "*" || (agent != "" && strings.HasPrefix(agent, ua)) {
				applies = true
			}
		case "disallow":
			inGroupHeader = false
			if applies && value != "" {
				disallow = append(disallow, value)
			}
		default:
			inGroupHeader = false
		}
	}

	return disallow
}

func pathAllowed(disallow []string, path string) bool {
	if path == "" {
		path = "/"
	}
	for _, prefix := range disallow {
		if strings.HasPrefix(path, prefix) {
			return false
		}
	}
	return true
}

// agentToken reduces a User-Agent header value to its product token, the
// part robots.txt groups are matched against.
func agentToken(userAgent string) string {
	token := userAgent
	if idx := strings.IndexAny(token, "/ "); idx >= 0 {
		token = token[:idx]
	}
	return token
}
