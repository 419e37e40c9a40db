// Package release checks GitHub for a newer kaval release.
package release

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const latestReleaseURL = "https://api.github.com/repos/kaval-sh/kaval/releases/latest"

// Checker queries the GitHub releases API. The zero value is not usable;
// call NewChecker.
type Checker struct {
	client  *http.Client
	baseURL string
}

func NewChecker() *Checker {
	return &Checker{
		client:  &http.Client{Timeout: 5 * time.Second},
		baseURL: latestReleaseURL,
	}
}

type githubRelease struct {
	TagName string `json:"tag_name"`
}

// Latest returns the newest release tag when it is newer than
// currentVersion, or the empty string when already up to date.
func (c *Checker) Latest(ctx context.Context, currentVersion string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return "", err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("github api returned %d", resp.StatusCode)
	}

	var rel githubRelease
	if err := json.NewDecoder(resp.Body).Decode(&rel); err != nil {
		return "", err
	}
	if rel.TagName == "" {
		return "", nil
	}

	if isNewer(strings.TrimPrefix(rel.TagName, "v"), strings.TrimPrefix(currentVersion, "v")) {
		return rel.TagName, nil
	}
	return "", nil
}

// isNewer compares dotted numeric versions component by component.
// A dev or empty current version always reports the release as newer.
func isNewer(latest, current string) bool {
	if current == "" || current == "dev" {
		return true
	}

	ls := strings.Split(latest, ".")
	cs := strings.Split(current, ".")
	for i := 0; i < len(ls) && i < len(cs); i++ {
		l, lerr := strconv.Atoi(ls[i])
		c, cerr := strconv.Atoi(cs[i])
		if lerr != nil || cerr != nil {
			return latest > current
		}
		if l != c {
			return l > c
		}
	}
	return len(ls) > len(cs)
}
