package network

import (
	"context"
	"fmt"
)

// CascadeImportLoader adapts a Loader into cascade.ImportLoader (the
// interface is structural, so no import of the cascade package is
// needed here): Load(resolvedURL) (string, error).
type CascadeImportLoader struct {
	loader *Loader
	ctx    context.Context
}

// NewCascadeImportLoader builds an ImportLoader that fetches @import
// targets (HTTP, file, or data URLs) through loader, honoring its cache
// and local-path fallback.
func NewCascadeImportLoader(loader *Loader, ctx context.Context) *CascadeImportLoader {
	if ctx == nil {
		ctx = context.Background()
	}
	return &CascadeImportLoader{loader: loader, ctx: ctx}
}

// Load fetches resolvedURL as a stylesheet and returns its body as text.
func (l *CascadeImportLoader) Load(resolvedURL string) (string, error) {
	resource := l.loader.LoadStylesheet(l.ctx, resolvedURL)
	if resource.Error != nil {
		return "", resource.Error
	}
	if !resource.IsSuccess() {
		return "", fmt.Errorf("network: %s returned status %d", resolvedURL, resource.StatusCode)
	}
	return resource.AsString(), nil
}

// SameOriginOnly builds a cascade.SecurityChecker-shaped function that
// rejects any @import whose target is not same-origin with the
// document URL. documentURL must be an absolute URL.
func SameOriginOnly(documentURL string) func(targetURL, docURL string) error {
	return func(targetURL, docURL string) error {
		if docURL == "" {
			docURL = documentURL
		}
		if IsSameOrigin(targetURL, docURL) {
			return nil
		}
		return fmt.Errorf("network: cross-origin @import of %s from %s is blocked", targetURL, docURL)
	}
}
