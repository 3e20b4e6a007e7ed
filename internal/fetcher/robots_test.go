package fetcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRobots(t *testing.T) {
	content := `
# comment line
User-agent: *
Disallow: /admin/
Disallow: /private

User-agent: grants-parser
Disallow: /slow/

User-agent: otherbot
Disallow: /
`

	disallow := parseRobots(content, "grants-parser")

	assert.Contains(t, disallow, "/admin/")
	assert.Contains(t, disallow, "/private")
	assert.Contains(t, disallow, "/slow/")
	assert.NotContains(t, disallow, "/", "otherbot group must not apply")
}

func TestParseRobotsEmptyDisallowAllowsAll(t *testing.T) {
	disallow := parseRobots("User-agent: *\nDisallow:\n", "grants-parser")
	assert.Empty(t, disallow)
}

func TestPathAllowed(t *testing.T) {
	disallow := []string{"/admin/", "/private"}

	assert.True(t, pathAllowed(disallow, "/grants/"))
	assert.True(t, pathAllowed(nil, "/anything"))
	assert.False(t, pathAllowed(disallow, "/admin/users"))
	assert.False(t, pathAllowed(disallow, "/private-data"))
}

func TestAgentToken(t *testing.T) {
	assert.Equal(t, "grants-parser", agentToken("grants-parser/1.0 (+https://example.org)"))
	assert.Equal(t, "plainagent", agentToken("plainagent"))
}
