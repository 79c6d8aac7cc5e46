package bundle

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/net/html"
)

// TemplateCache hands out parsed template elements by tag name, backed
// by a statistics Source. Each access re-fetches the stats document and
// compares its hash; a changed hash (a rebuilt bundle) drops every
// cached template so templates never go stale behind a redeploy.
//
// The cache is safe for concurrent use; the parse itself is pure.
type TemplateCache struct {
	source Source
	logger *slog.Logger

	mu        sync.Mutex
	hash      string
	templates map[string]*html.Node
}

// NewTemplateCache creates a cache over the given statistics source.
func NewTemplateCache(source Source) *TemplateCache {
	return &TemplateCache{
		source:    source,
		logger:    slog.Default().With("component", "bundle"),
		templates: make(map[string]*html.Node),
	}
}

// Get returns the parsed template for a component tag. The component's
// source module is expected under "./frontend/<tag>.js"; a missing
// module is an error, while a module without a recognizable template
// declaration still yields an empty template element.
func (c *TemplateCache) Get(ctx context.Context, tag string) (*html.Node, error) {
	fileName := "./frontend/" + tag + ".js"
	return c.GetFile(ctx, tag, fileName)
}

// GetFile is Get with an explicit module file name, for components whose
// source does not follow the default layout.
func (c *TemplateCache) GetFile(ctx context.Context, tag, fileName string) (*html.Node, error) {
	data, err := c.source.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	hash := HashFromStatistics(string(data))
	if hash != c.hash {
		if c.hash != "" {
			c.logger.Info("bundle changed, dropping cached templates",
				"old", c.hash, "new", hash, "cached", len(c.templates))
		}
		c.hash = hash
		c.templates = make(map[string]*html.Node)
	}

	if tmpl, ok := c.templates[tag]; ok {
		return tmpl, nil
	}

	stats, err := ParseStatistics(data)
	if err != nil {
		return nil, err
	}
	source, ok := SourceFromStatistics(fileName, stats)
	if !ok {
		return nil, fmt.Errorf("bundle: no module %q in statistics for tag %q", fileName, tag)
	}

	tmpl := TemplateElement(fileName, source)
	c.templates[tag] = tmpl
	return tmpl, nil
}

// Hash returns the hash of the last statistics document seen, or the
// empty string before the first fetch.
func (c *TemplateCache) Hash() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hash
}
