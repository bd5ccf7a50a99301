package network

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// ResourceType represents the type of a resource. The cascade engine only
// ever fetches stylesheets; ResourceTypeUnknown is the Resource zero value.
type ResourceType int

const (
	ResourceTypeUnknown ResourceType = iota
	ResourceTypeStylesheet
)

// Resource represents a loaded resource.
type Resource struct {
	URL         string
	Type        ResourceType
	Content     []byte
	ContentType string
	Charset     string
	StatusCode  int
	Error       error
	Cached      bool
}

// IsSuccess returns true if the resource was loaded successfully.
func (r *Resource) IsSuccess() bool {
	return r.Error == nil && r.StatusCode >= 200 && r.StatusCode < 400
}

// AsString returns the resource content as a string.
func (r *Resource) AsString() string {
	return string(r.Content)
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithLocalPath sets a local path to load resources from before trying HTTP.
func WithLocalPath(path string) LoaderOption {
	return func(l *Loader) {
		l.localPath = path
	}
}

// WithCache enables caching with the specified cache.
func WithCache(cache *Cache) LoaderOption {
	return func(l *Loader) {
		l.cache = cache
	}
}

// Loader handles loading resources from HTTP or local filesystem.
type Loader struct {
	client    *Client
	cache     *Cache
	localPath string
	baseURL   string

	mu sync.RWMutex
}

// NewLoader creates a new resource loader.
func NewLoader(client *Client, opts ...LoaderOption) *Loader {
	l := &Loader{
		client: client,
		cache:  NewCache(1000),
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// SetBaseURL sets the base URL for resolving relative URLs.
func (l *Loader) SetBaseURL(baseURL string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.baseURL = strings.TrimRight(baseURL, "/")
}

// GetBaseURL returns the current base URL.
func (l *Loader) GetBaseURL() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.baseURL
}

// SetLocalPath sets the local path for loading resources.
func (l *Loader) SetLocalPath(path string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.localPath = path
}

// Load loads a resource from the given URL.
func (l *Loader) Load(ctx context.Context, urlStr string, resourceType ResourceType) *Resource {
	// Handle data URLs
	if IsDataURL(urlStr) {
		return l.loadDataURL(urlStr, resourceType)
	}

	// Resolve relative URL
	l.mu.RLock()
	baseURL := l.baseURL
	localPath := l.localPath
	l.mu.RUnlock()

	if baseURL != "" && !IsAbsoluteURL(urlStr) {
		resolved, err := ResolveURL(baseURL, urlStr)
		if err != nil {
			return &Resource{
				URL:   urlStr,
				Type:  resourceType,
				Error: fmt.Errorf("failed to resolve URL: %w", err),
			}
		}
		urlStr = resolved
	}

	// Check cache first
	if entry, ok := l.cache.Get(urlStr); ok && !entry.IsExpired() {
		resp := entry.Response
		mediaType, charset := ParseContentType(resp.ContentType)
		return &Resource{
			URL:         urlStr,
			Type:        resourceType,
			Content:     resp.Body,
			ContentType: mediaType,
			Charset:     charset,
			StatusCode:  resp.StatusCode,
			Cached:      true,
		}
	}

	// Try local path first
	if localPath != "" {
		resource := l.loadFromLocal(urlStr, localPath, resourceType)
		if resource.Error == nil {
			return resource
		}
	}

	// Load from HTTP
	return l.loadFromHTTP(ctx, urlStr, resourceType)
}

// loadDataURL loads content from a data URL.
func (l *Loader) loadDataURL(urlStr string, resourceType ResourceType) *Resource {
	dataURL, err := ParseDataURL(urlStr)
	if err != nil {
		return &Resource{
			URL:   urlStr,
			Type:  resourceType,
			Error: err,
		}
	}

	return &Resource{
		URL:         urlStr,
		Type:        resourceType,
		Content:     dataURL.Data,
		ContentType: dataURL.MediaType,
		Charset:     dataURL.Charset,
		StatusCode:  200,
	}
}

// loadFromLocal attempts to load a resource from the local filesystem.
func (l *Loader) loadFromLocal(urlStr string, basePath string, resourceType ResourceType) *Resource {
	// Extract path from URL
	path := ExtractPath(urlStr)
	if path == "" {
		path = "/"
	}

	// Determine the local path to read
	var localPath string

	// Check if this is a file:// URL with an absolute path that already exists
	if strings.HasPrefix(urlStr, "file://") && filepath.IsAbs(path) {
		// For file:// URLs, try the absolute path directly first
		if _, err := os.Stat(path); err == nil {
			localPath = path
		} else {
			// Fall back to relative path within basePath
			localPath = filepath.Join(basePath, path)
		}
	} else if filepath.IsAbs(path) && strings.HasPrefix(path, basePath) {
		// Path is already absolute and within basePath
		localPath = path
	} else {
		// Build local path from relative path
		localPath = filepath.Join(basePath, path)
	}

	// Read file
	content, err := os.ReadFile(localPath)
	if err != nil {
		return &Resource{
			URL:   urlStr,
			Type:  resourceType,
			Error: err,
		}
	}

	// Guess content type from extension
	contentType := GuessContentType(urlStr)

	return &Resource{
		URL:         urlStr,
		Type:        resourceType,
		Content:     content,
		ContentType: contentType,
		StatusCode:  200,
	}
}

// loadFromHTTP loads a resource via HTTP.
func (l *Loader) loadFromHTTP(ctx context.Context, urlStr string, resourceType ResourceType) *Resource {
	resp, err := l.client.Get(ctx, urlStr)
	if err != nil {
		return &Resource{
			URL:   urlStr,
			Type:  resourceType,
			Error: err,
		}
	}

	mediaType, charset := ParseContentType(resp.ContentType)

	resource := &Resource{
		URL:         urlStr,
		Type:        resourceType,
		Content:     resp.Body,
		ContentType: mediaType,
		Charset:     charset,
		StatusCode:  resp.StatusCode,
	}

	// Cache successful responses
	if resp.StatusCode >= 200 && resp.StatusCode < 400 {
		l.cache.Set(urlStr, resp, resp.Headers)
	}

	return resource
}

// LoadStylesheet loads a CSS stylesheet.
func (l *Loader) LoadStylesheet(ctx context.Context, urlStr string) *Resource {
	return l.Load(ctx, urlStr, ResourceTypeStylesheet)
}

// ClearCache clears the loader's cache.
func (l *Loader) ClearCache() {
	l.cache.Clear()
}
