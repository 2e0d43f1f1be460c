package crawler

import (
	"net/url"
	"path"
	"strings"
)

// extensionBlocklist rejects URLs whose path points at non-page content:
// documents, archives, media, and style assets. The check runs before fetch,
// never after.
type extensionBlocklist struct {
	exts map[string]struct{}
}

var defaultBlockedExtensions = []string{
	// documents
	".pdf", ".doc", ".docx", ".xls", ".xlsx", ".ppt", ".pptx", ".csv", ".rtf",
	// archives
	".zip", ".rar", ".tar", ".gz", ".bz2", ".7z",
	// media
	".jpg", ".jpeg", ".png", ".gif", ".svg", ".webp", ".ico",
	".mp3", ".mp4", ".avi", ".mov", ".webm", ".wav",
	// styles, scripts, fonts
	".css", ".js", ".woff", ".woff2", ".ttf", ".eot",
}

func newExtensionBlocklist(extensions []string) *extensionBlocklist {
	b := &extensionBlocklist{exts: make(map[string]struct{}, len(extensions))}
	for _, raw := range extensions {
		ext := strings.ToLower(strings.TrimSpace(raw))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		b.exts[ext] = struct{}{}
	}
	return b
}

// IsBlocked reports whether the URL path carries a blocked extension.
// Unparseable URLs are not blocked here; they fail later at fetch admission.
func (b *extensionBlocklist) IsBlocked(rawURL string) bool {
	if b == nil || len(b.exts) == 0 {
		return false
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	ext := strings.ToLower(path.Ext(u.Path))
	if ext == "" {
		return false
	}
	_, blocked := b.exts[ext]
	return blocked
}
