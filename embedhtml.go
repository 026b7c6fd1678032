package linkintel

import (
	"bytes"
	"net/url"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// embedScriptHosts serve the loader scripts that provider embed markup needs
var embedScriptHosts = map[string]bool{
	"platform.twitter.com": true,
	"www.tiktok.com":       true,
	"www.instagram.com":    true,
	"www.youtube.com":      true,
	"player.vimeo.com":     true,
	"open.spotify.com":     true,
	"w.soundcloud.com":     true,
	"embed.reddit.com":     true,
	"connect.facebook.net": true,
}

var embedDroppedTags = map[atom.Atom]bool{
	atom.Object: true, atom.Embed: true, atom.Form: true, atom.Input: true,
	atom.Button: true, atom.Base: true, atom.Meta: true, atom.Link: true,
}

var embedURIAttrs = map[string]bool{
	"href": true, "src": true, "action": true, "formaction": true,
	"poster": true, "data": true, "background": true,
}

// SanitizeOEmbedHTML strips event handler attributes and script URLs from
// provider embed markup. Scripts are kept only when loaded over https from a
// known embed host.
func SanitizeOEmbedHTML(fragment string) string {
	if strings.TrimSpace(fragment) == "" {
		return ""
	}
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), body)
	if err != nil {
		return ""
	}

	var buf bytes.Buffer
	for _, n := range nodes {
		if !keepEmbedNode(n) {
			continue
		}
		sanitizeEmbedNode(n)
		if err := html.Render(&buf, n); err != nil {
			return ""
		}
	}
	return buf.String()
}

func keepEmbedNode(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return n.Type == html.TextNode
	}
	if embedDroppedTags[n.DataAtom] {
		return false
	}
	if n.DataAtom == atom.Script {
		return trustedEmbedScript(n)
	}
	return true
}

func sanitizeEmbedNode(n *html.Node) {
	if n.Type == html.ElementNode {
		attrs := n.Attr[:0]
		for _, attr := range n.Attr {
			key := strings.ToLower(attr.Key)
			if strings.HasPrefix(key, "on") {
				continue
			}
			if embedURIAttrs[key] && !safeEmbedURI(attr.Val) {
				continue
			}
			attrs = append(attrs, attr)
		}
		n.Attr = attrs
	}

	for child := n.FirstChild; child != nil; {
		next := child.NextSibling
		if keepEmbedNode(child) {
			sanitizeEmbedNode(child)
		} else {
			n.RemoveChild(child)
		}
		child = next
	}
}

// trustedEmbedScript reports whether a script element loads from an embed host
func trustedEmbedScript(n *html.Node) bool {
	for _, attr := range n.Attr {
		if strings.ToLower(attr.Key) != "src" {
			continue
		}
		src := strings.TrimSpace(attr.Val)
		if strings.HasPrefix(src, "//") {
			src = "https:" + src
		}
		u, err := url.Parse(src)
		return err == nil && u.Scheme == "https" && embedScriptHosts[strings.ToLower(u.Hostname())]
	}
	return false
}

func safeEmbedURI(raw string) bool {
	v := strings.ToLower(strings.Join(strings.Fields(raw), ""))
	for _, scheme := range []string{"javascript:", "vbscript:", "data:", "file:"} {
		if strings.HasPrefix(v, scheme) {
			return false
		}
	}
	return true
}
