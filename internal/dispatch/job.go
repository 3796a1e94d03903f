package dispatch

import (
	"path/filepath"
	"strings"
	"unicode"

	"assethunt-engine/internal/classify"
	"assethunt-engine/internal/domain"
	"assethunt-engine/internal/source/util"
)

const (
	maxNameLen       = 50
	DefaultExtension = ".zip"
)

// SanitizeFilename keeps letters, digits, space, '-' and '_', trims trailing
// spaces and truncates to 50 runes. An empty result becomes "asset".
func SanitizeFilename(title string) string {
	var b strings.Builder
	for _, r := range title {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '-' || r == '_' {
			b.WriteRune(r)
		}
	}
	name := strings.TrimRight(b.String(), " ")
	if runes := []rune(name); len(runes) > maxNameLen {
		name = string(runes[:maxNameLen])
	}
	if strings.TrimSpace(name) == "" {
		return "asset"
	}
	return name
}

// BuildJob places r under <root>/<category>. The output name is the sanitized
// title plus the download URL's extension, or defaultExt when it has none.
func BuildJob(root string, r domain.Resource, defaultExt string) domain.DownloadJob {
	cat := r.Category
	if !cat.Valid() {
		cat = domain.CategoryMisc
	}
	return domain.DownloadJob{
		Resource: r,
		Dir:      filepath.Join(root, string(cat)),
		OutName:  SanitizeFilename(r.Title) + outputExtension(r.DownloadURL, defaultExt),
	}
}

func outputExtension(downloadURL, defaultExt string) string {
	if defaultExt == "" {
		defaultExt = DefaultExtension
	}
	ext := util.Extension(downloadURL)
	if len(ext) < 2 || len(ext) > 6 {
		return defaultExt
	}
	for _, r := range ext[1:] {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return defaultExt
		}
	}
	return ext
}

// Reclassify fills in the category of loaded resources whose category is
// missing or unknown. Valid categories are kept.
func Reclassify(rs []domain.Resource) []domain.Resource {
	out := make([]domain.Resource, len(rs))
	for i, r := range rs {
		if !r.Category.Valid() {
			r.Category = classify.Classify(r.Title, "")
		}
		out[i] = r
	}
	return out
}
