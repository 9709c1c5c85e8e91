// Package assets implements the AssetResolver interface for the Sanity
// image CDN. Image references look like
// "image-<assetId>-<width>x<height>-<format>" and resolve to
// "<cdn>/images/<project>/<dataset>/<assetId>-<width>x<height>.<format>".
package assets

import (
	"fmt"
	"net/url"
	"path"
	"regexp"
	"strings"
)

const defaultCDN = "https://cdn.sanity.io"

var dimensionsRegex = regexp.MustCompile(`^\d+x\d+$`)

// SanityResolver resolves image and file references for one dataset.
type SanityResolver struct {
	ProjectID string
	Dataset   string
	CDN       string
}

// NewSanity creates a SanityResolver for the given project and dataset.
func NewSanity(projectID, dataset string) *SanityResolver {
	return &SanityResolver{ProjectID: projectID, Dataset: dataset, CDN: defaultCDN}
}

// Resolve returns the CDN URL for ref. Absolute http(s) references are
// returned unchanged.
func (r *SanityResolver) Resolve(ref string) (string, bool) {
	ref = strings.TrimSpace(ref)
	if isAbsoluteURL(ref) {
		return ref, true
	}
	if r.ProjectID == "" || r.Dataset == "" {
		return "", false
	}
	switch {
	case strings.HasPrefix(ref, "image-"):
		id, dims, format, ok := splitImageRef(strings.TrimPrefix(ref, "image-"))
		if !ok {
			return "", false
		}
		return fmt.Sprintf("%s/images/%s/%s/%s-%s.%s", r.cdn(), r.ProjectID, r.Dataset, id, dims, format), true
	case strings.HasPrefix(ref, "file-"):
		rest := strings.TrimPrefix(ref, "file-")
		i := strings.LastIndex(rest, "-")
		if i <= 0 || i == len(rest)-1 {
			return "", false
		}
		return fmt.Sprintf("%s/files/%s/%s/%s.%s", r.cdn(), r.ProjectID, r.Dataset, rest[:i], rest[i+1:]), true
	}
	return "", false
}

// Reference turns a CDN URL of this dataset back into an asset reference.
// Query strings (image transforms) are ignored.
func (r *SanityResolver) Reference(rawURL string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Host == "" {
		return "", false
	}
	base, err := url.Parse(r.cdn())
	if err != nil || u.Host != base.Host {
		return "", false
	}

	for _, kind := range []string{"images", "files"} {
		prefix := "/" + path.Join(kind, r.ProjectID, r.Dataset) + "/"
		if !strings.HasPrefix(u.Path, prefix) {
			continue
		}
		name := strings.TrimPrefix(u.Path, prefix)
		ext := path.Ext(name)
		stem := strings.TrimSuffix(name, ext)
		if ext == "" || stem == "" || strings.Contains(stem, "/") {
			return "", false
		}
		if kind == "files" {
			return "file-" + stem + "-" + ext[1:], true
		}
		if _, _, _, ok := splitImageRef(stem + "-" + ext[1:]); !ok {
			return "", false
		}
		return "image-" + stem + "-" + ext[1:], true
	}
	return "", false
}

func (r *SanityResolver) cdn() string {
	if r.CDN == "" {
		return defaultCDN
	}
	return strings.TrimSuffix(r.CDN, "/")
}

// splitImageRef splits "<id>-<w>x<h>-<format>".
func splitImageRef(s string) (id, dims, format string, ok bool) {
	i := strings.LastIndex(s, "-")
	if i <= 0 || i == len(s)-1 {
		return "", "", "", false
	}
	format = s[i+1:]
	rest := s[:i]
	j := strings.LastIndex(rest, "-")
	if j <= 0 {
		return "", "", "", false
	}
	id, dims = rest[:j], rest[j+1:]
	if !dimensionsRegex.MatchString(dims) {
		return "", "", "", false
	}
	return id, dims, format, true
}

func isAbsoluteURL(s string) bool {
	return strings.HasPrefix(s, "https://") || strings.HasPrefix(s, "http://")
}
