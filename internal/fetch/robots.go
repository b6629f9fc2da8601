package fetch

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
)

// robotsChecker fetches and caches robots.txt per host and answers path
// allow checks. A host whose robots.txt cannot be retrieved is treated as
// fully allowed.
type robotsChecker struct {
	client *client
	ignore bool

	mu    sync.Mutex
	rules map[string]*robotRules
}

type robotRules struct {
	disallowed []string
	allowed    []string
}

func newRobotsChecker(c *client, ignore bool) *robotsChecker {
	return &robotsChecker{
		client: c,
		ignore: ignore,
		rules:  make(map[string]*robotRules),
	}
}

// isAllowed reports whether the URL may be fetched under the host's
// robots.txt rules.
func (r *robotsChecker) isAllowed(ctx context.Context, rawURL string) bool {
	if r.ignore {
		return true
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}

	rules := r.rulesFor(ctx, u.Scheme, u.Host)
	if rules == nil {
		return true
	}

	path := u.Path
	if path == "" {
		path = "/"
	}

	for _, pattern := range rules.disallowed {
		if !matchesRobotsPattern(path, pattern) {
			continue
		}
		// A longer allow rule overrides the disallow.
		for _, allow := range rules.allowed {
			if matchesRobotsPattern(path, allow) && len(allow) > len(pattern) {
				return true
			}
		}
		return false
	}
	return true
}

func (r *robotsChecker) rulesFor(ctx context.Context, scheme, host string) *robotRules {
	r.mu.Lock()
	rules, ok := r.rules[host]
	r.mu.Unlock()
	if ok {
		return rules
	}

	resp, err := r.client.get(ctx, fmt.Sprintf("%s://%s/robots.txt", scheme, host))
	switch {
	case err != nil:
		rules = nil
	case resp.StatusCode == http.StatusOK:
		rules = parseRobots(string(resp.Body))
	default:
		rules = &robotRules{}
	}

	r.mu.Lock()
	r.rules[host] = rules
	r.mu.Unlock()
	return rules
}

// parseRobots extracts the allow and disallow rules that apply to us:
// the wildcard group plus any group naming a crawler agent.
func parseRobots(content string) *robotRules {
	rules := &robotRules{}
	scanner := bufio.NewScanner(strings.NewReader(content))
	applies := false

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			continue
		}
		directive := strings.ToLower(strings.TrimSpace(parts[0]))
		value := strings.TrimSpace(parts[1])

		switch directive {
		case "user-agent":
			agent := strings.ToLower(value)
			applies = agent == "*" || strings.Contains(agent, "linkscope")
		case "disallow":
			if applies && value != "" {
				rules.disallowed = append(rules.disallowed, value)
			}
		case "allow":
			if applies && value != "" {
				rules.allowed = append(rules.allowed, value)
			}
		}
	}
	return rules
}

// matchesRobotsPattern applies robots.txt path matching: prefix by default,
// "*" as a wildcard, "$" anchoring the end.
func matchesRobotsPattern(path, pattern string) bool {
	if strings.Contains(pattern, "*") {
		parts := strings.Split(pattern, "*")
		if !strings.HasPrefix(path, parts[0]) {
			return false
		}
		remaining := path[len(parts[0]):]
		for _, part := range parts[1:] {
			if part == "" {
				continue
			}
			idx := strings.Index(remaining, part)
			if idx == -1 {
				return false
			}
			remaining = remaining[idx+len(part):]
		}
		return true
	}

	if strings.HasSuffix(pattern, "$") {
		return path == strings.TrimSuffix(pattern, "$")
	}
	return strings.HasPrefix(path, pattern)
}
