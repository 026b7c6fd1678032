package linkintel

import (
	"strings"

	"github.com/teedgg/linkintel/models"
	"github.com/teedgg/linkintel/platforms"
)

// contentTypeAliases map URL segments onto the content type vocabulary
var contentTypeAliases = map[string]string{
	"p":      "post",
	"tv":     "video",
	"song":   "track",
	"status": "post",
	"videos": "video",
	"sets":   "playlist",
}

// ParseEmbedURL extracts the content descriptor of an embeddable URL using
// the built-in registry. It returns nil when raw is not an embed URL.
func ParseEmbedURL(raw string) *models.EmbedDescriptor {
	return defaultClassifier().ParseEmbedURL(raw)
}

// ParseSocialProfileURL extracts the account of a profile URL using the
// built-in registry. It returns nil for content URLs, unknown platforms and
// reserved usernames.
func ParseSocialProfileURL(raw string) *models.SocialProfileDescriptor {
	return defaultClassifier().ParseSocialProfileURL(raw)
}

// BuildEmbedURL renders the embed URL of a platform's content
func BuildEmbedURL(platformID, contentID, contentType string) (string, bool) {
	return defaultClassifier().BuildEmbedURL(platformID, contentID, contentType)
}

// ProfileURL returns the canonical profile URL of username on a platform
func ProfileURL(platformID, username string) string {
	return defaultClassifier().ProfileURL(platformID, username)
}

// ParseEmbedURL extracts the content descriptor of an embeddable URL
func (c *Classifier) ParseEmbedURL(raw string) *models.EmbedDescriptor {
	normalized, err := normalizeURL(raw, c.keepTracking)
	if err != nil {
		return nil
	}
	m, ok := c.registry.Match(normalized)
	if !ok || m.Kind != platforms.KindEmbed {
		return nil
	}

	contentType := resolveContentType(m.ContentType, m.Platform.Category)
	embedURL, _ := buildEmbedURL(m.Platform, m.ContentID, contentType)
	return &models.EmbedDescriptor{
		Platform:    m.Platform.ID,
		ContentID:   m.ContentID,
		ContentType: contentType,
		EmbedURL:    embedURL,
		OriginalURL: strings.TrimSpace(raw),
	}
}

// ParseSocialProfileURL extracts the account of a profile URL
func (c *Classifier) ParseSocialProfileURL(raw string) *models.SocialProfileDescriptor {
	normalized, err := normalizeURL(raw, c.keepTracking)
	if err != nil {
		return nil
	}
	m, ok := c.registry.Match(normalized)
	if !ok || m.Kind != platforms.KindSocial {
		return nil
	}
	return &models.SocialProfileDescriptor{
		Platform:   m.Platform.ID,
		Username:   m.Username,
		ProfileURL: m.Platform.ProfileURL(m.Username),
	}
}

// BuildEmbedURL substitutes contentID and contentType into the platform's
// embed template. It reports false when the platform is unknown or has no
// template.
func (c *Classifier) BuildEmbedURL(platformID, contentID, contentType string) (string, bool) {
	def, ok := c.registry.Get(platformID)
	if !ok || contentID == "" {
		return "", false
	}
	return buildEmbedURL(def, contentID, contentType)
}

// ProfileURL returns the canonical profile URL of username, or "" when the
// platform is unknown
func (c *Classifier) ProfileURL(platformID, username string) string {
	def, ok := c.registry.Get(platformID)
	if !ok || username == "" {
		return ""
	}
	return def.ProfileURL(strings.TrimPrefix(username, "@"))
}

func buildEmbedURL(def *platforms.Definition, contentID, contentType string) (string, bool) {
	if def.EmbedURLTemplate == "" {
		return "", false
	}
	if strings.Contains(def.EmbedURLTemplate, "{type}") && contentType == "" {
		return "", false
	}
	out := strings.ReplaceAll(def.EmbedURLTemplate, "{id}", contentID)
	out = strings.ReplaceAll(out, "{type}", contentType)
	return out, true
}

// resolveContentType maps a matched URL segment onto the content type
// vocabulary, defaulting by platform category when the URL carries none
func resolveContentType(segment string, category platforms.Category) string {
	t := strings.ToLower(segment)
	if alias, ok := contentTypeAliases[t]; ok {
		t = alias
	}
	if t != "" {
		return t
	}
	switch category {
	case platforms.CategoryVideo:
		return "video"
	case platforms.CategoryMusic:
		return "track"
	case platforms.CategorySocial:
		return "post"
	case platforms.CategoryShopping, platforms.CategoryOther:
	}
	return ""
}
