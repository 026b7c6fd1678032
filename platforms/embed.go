package platforms

import "regexp"

// re compiles a registry pattern. Hosts are lowercased before matching but
// paths keep their case, so every pattern matches case-insensitively.
func re(pattern string) *regexp.Regexp {
	return regexp.MustCompile("(?i)" + pattern)
}

func embed(pattern string, idGroup int) EmbedPattern {
	return EmbedPattern{Regexp: re(pattern), IDGroup: idGroup}
}

func embedTyped(pattern string, idGroup, typeGroup int) EmbedPattern {
	return EmbedPattern{Regexp: re(pattern), IDGroup: idGroup, TypeGroup: typeGroup}
}

func embedAs(pattern string, idGroup int, contentType string) EmbedPattern {
	return EmbedPattern{Regexp: re(pattern), IDGroup: idGroup, ContentType: contentType}
}

func profile(pattern string) ProfilePattern {
	return ProfilePattern{Regexp: re(pattern), UsernameGroup: 1}
}

// builtin returns every platform known to the default registry. Content
// platforms come first so their domains win over retailer entries.
func builtin() []*Definition {
	defs := make([]*Definition, 0, 96)
	defs = append(defs, videoPlatforms()...)
	defs = append(defs, musicPlatforms()...)
	defs = append(defs, postPlatforms()...)
	defs = append(defs, toolPlatforms()...)
	defs = append(defs, socialPlatforms()...)
	defs = append(defs, marketplaces()...)
	defs = append(defs, brandDefinitions()...)
	return defs
}

func videoPlatforms() []*Definition {
	return []*Definition{
		{
			ID:       "youtube",
			Name:     "YouTube",
			Category: CategoryVideo,
			Domains:  []string{"youtube.com", "youtu.be", "youtube-nocookie.com", "music.youtube.com"},
			Embeds: []EmbedPattern{
				embedAs(`youtube\.com/watch\?(?:.*&)?v=([a-zA-Z0-9_-]{11})`, 1, "video"),
				embedAs(`youtu\.be/([a-zA-Z0-9_-]{11})`, 1, "video"),
				embedAs(`youtube(?:-nocookie)?\.com/embed/([a-zA-Z0-9_-]{11})`, 1, "video"),
				embedAs(`youtube\.com/shorts/([a-zA-Z0-9_-]{11})`, 1, "short"),
				embedAs(`youtube\.com/live/([a-zA-Z0-9_-]{11})`, 1, "video"),
			},
			Profiles: []ProfilePattern{
				profile(`^youtube\.com/@([a-zA-Z0-9_.-]{1,64})$`),
				profile(`^youtube\.com/c/([a-zA-Z0-9_-]{1,64})$`),
				profile(`^youtube\.com/channel/([a-zA-Z0-9_-]{1,64})$`),
				profile(`^youtube\.com/user/([a-zA-Z0-9_-]{1,64})$`),
			},
			OEmbedEndpoint:   "https://www.youtube.com/oembed",
			EmbedURLTemplate: "https://www.youtube-nocookie.com/embed/{id}",
			ProfileTemplate:  "https://www.youtube.com/@{username}",
		},
		{
			ID:       "vimeo",
			Name:     "Vimeo",
			Category: CategoryVideo,
			Domains:  []string{"vimeo.com", "player.vimeo.com"},
			Embeds: []EmbedPattern{
				embedAs(`player\.vimeo\.com/video/(\d+)`, 1, "video"),
				embedAs(`vimeo\.com/channels/[\w]+/(\d+)`, 1, "video"),
				embedAs(`vimeo\.com/groups/[\w]+/videos/(\d+)`, 1, "video"),
				embedAs(`vimeo\.com/(\d+)`, 1, "video"),
			},
			Profiles: []ProfilePattern{
				profile(`^vimeo\.com/([a-zA-Z][a-zA-Z0-9_]{0,63})$`),
			},
			Reserved:         []string{"channels", "categories", "ondemand", "showcase", "album", "upload", "manage", "stock", "join", "log_in"},
			OEmbedEndpoint:   "https://vimeo.com/api/oembed.json",
			EmbedURLTemplate: "https://player.vimeo.com/video/{id}",
		},
		{
			ID:       "dailymotion",
			Name:     "Dailymotion",
			Category: CategoryVideo,
			Domains:  []string{"dailymotion.com", "dai.ly"},
			Embeds: []EmbedPattern{
				embedAs(`dailymotion\.com/(?:embed/)?video/([a-zA-Z0-9]+)`, 1, "video"),
				embedAs(`dai\.ly/([a-zA-Z0-9]+)`, 1, "video"),
			},
			OEmbedEndpoint:   "https://www.dailymotion.com/services/oembed",
			EmbedURLTemplate: "https://www.dailymotion.com/embed/video/{id}",
		},
		{
			ID:       "wistia",
			Name:     "Wistia",
			Category: CategoryVideo,
			Domains:  []string{"wistia.com", "wistia.net", "wi.st"},
			Embeds: []EmbedPattern{
				embedAs(`wistia\.com/medias/([a-zA-Z0-9]+)`, 1, "video"),
				embedAs(`wistia\.net/embed/iframe/([a-zA-Z0-9]+)`, 1, "video"),
				embedAs(`wi\.st/([a-zA-Z0-9]+)`, 1, "video"),
			},
			OEmbedEndpoint:   "https://fast.wistia.com/oembed",
			EmbedURLTemplate: "https://fast.wistia.net/embed/iframe/{id}",
		},
		{
			ID:       "loom",
			Name:     "Loom",
			Category: CategoryVideo,
			Domains:  []string{"loom.com"},
			Embeds: []EmbedPattern{
				embedAs(`loom\.com/(?:share|embed)/([a-zA-Z0-9]+)`, 1, "video"),
			},
			OEmbedEndpoint:   "https://www.loom.com/v1/oembed",
			EmbedURLTemplate: "https://www.loom.com/embed/{id}",
		},
		{
			ID:       "rumble",
			Name:     "Rumble",
			Category: CategoryVideo,
			Domains:  []string{"rumble.com"},
			Embeds: []EmbedPattern{
				embedAs(`rumble\.com/embed/([a-zA-Z0-9]+)`, 1, "video"),
				embedAs(`rumble\.com/(v[a-zA-Z0-9]+)-`, 1, "video"),
			},
			OEmbedEndpoint:   "https://rumble.com/api/Media/oembed.json",
			EmbedURLTemplate: "https://rumble.com/embed/{id}",
		},
		{
			ID:       "streamable",
			Name:     "Streamable",
			Category: CategoryVideo,
			Domains:  []string{"streamable.com"},
			Embeds: []EmbedPattern{
				embedAs(`streamable\.com/(?:e/)?([a-zA-Z0-9]+)$`, 1, "video"),
			},
			OEmbedEndpoint:   "https://api.streamable.com/oembed.json",
			EmbedURLTemplate: "https://streamable.com/e/{id}",
		},
		{
			ID:       "tiktok",
			Name:     "TikTok",
			Category: CategoryVideo,
			Domains:  []string{"tiktok.com", "vm.tiktok.com"},
			Embeds: []EmbedPattern{
				embedAs(`tiktok\.com/@[\w.-]+/video/(\d+)`, 1, "video"),
				embedAs(`tiktok\.com/embed/(?:v2/)?(\d+)`, 1, "video"),
				embedAs(`vm\.tiktok\.com/([a-zA-Z0-9]+)`, 1, "video"),
			},
			Profiles: []ProfilePattern{
				profile(`^tiktok\.com/@([a-zA-Z0-9_.]{1,64})$`),
			},
			OEmbedEndpoint:   "https://www.tiktok.com/oembed",
			EmbedURLTemplate: "https://www.tiktok.com/embed/v2/{id}",
			ProfileTemplate:  "https://www.tiktok.com/@{username}",
		},
		{
			ID:       "twitch",
			Name:     "Twitch",
			Category: CategoryVideo,
			Domains:  []string{"twitch.tv", "clips.twitch.tv"},
			Embeds: []EmbedPattern{
				embedAs(`twitch\.tv/videos/(\d+)`, 1, "video"),
				embedAs(`twitch\.tv/[\w]+/clip/([a-zA-Z0-9_-]+)`, 1, "clip"),
				embedAs(`clips\.twitch\.tv/([a-zA-Z0-9_-]+)`, 1, "clip"),
			},
			Profiles: []ProfilePattern{
				profile(`^twitch\.tv/([a-zA-Z0-9_]{1,64})$`),
			},
		},
	}
}

func musicPlatforms() []*Definition {
	return []*Definition{
		{
			ID:       "spotify",
			Name:     "Spotify",
			Category: CategoryMusic,
			Domains:  []string{"open.spotify.com", "spotify.com"},
			Embeds: []EmbedPattern{
				embedTyped(`open\.spotify\.com/(?:embed/)?(?:intl-[a-z-]+/)?(track|album|playlist|episode|show)/([a-zA-Z0-9]+)`, 2, 1),
			},
			Profiles: []ProfilePattern{
				profile(`^open\.spotify\.com/(?:intl-[a-z-]+/)?artist/([a-zA-Z0-9]{1,64})$`),
				profile(`^open\.spotify\.com/user/([a-zA-Z0-9._-]{1,64})$`),
			},
			OEmbedEndpoint:   "https://open.spotify.com/oembed",
			EmbedURLTemplate: "https://open.spotify.com/embed/{type}/{id}",
			ProfileTemplate:  "https://open.spotify.com/artist/{username}",
		},
		{
			ID:       "soundcloud",
			Name:     "SoundCloud",
			Category: CategoryMusic,
			Domains:  []string{"soundcloud.com", "on.soundcloud.com"},
			Embeds: []EmbedPattern{
				embedAs(`on\.soundcloud\.com/([a-zA-Z0-9]+)`, 1, "track"),
				embedAs(`soundcloud\.com/([\w-]+/sets/[\w-]+)`, 1, "playlist"),
				embedAs(`soundcloud\.com/([\w-]+/[\w-]+)`, 1, "track"),
			},
			Profiles: []ProfilePattern{
				profile(`^soundcloud\.com/([a-zA-Z0-9_-]{1,64})$`),
			},
			Exclude: []*regexp.Regexp{
				re(`soundcloud\.com/you/`),
				re(`soundcloud\.com/[\w-]+/(?:sets|likes|followers|following|tracks|albums|reposts|popular-tracks)$`),
			},
			OEmbedEndpoint: "https://soundcloud.com/oembed",
		},
		{
			ID:       "apple-music",
			Name:     "Apple Music",
			Category: CategoryMusic,
			Domains:  []string{"music.apple.com"},
			Embeds: []EmbedPattern{
				embedTyped(`music\.apple\.com/[\w-]+/(album|song|playlist)/[^/]+/((?:pl\.)?[a-zA-Z0-9.-]+)`, 2, 1),
			},
		},
		{
			ID:       "bandcamp",
			Name:     "Bandcamp",
			Category: CategoryMusic,
			Domains:  []string{"bandcamp.com"},
			Embeds: []EmbedPattern{
				embedTyped(`[a-zA-Z0-9_-]+\.bandcamp\.com/(track|album)/([a-zA-Z0-9_-]+)`, 2, 1),
			},
			Profiles: []ProfilePattern{
				profile(`^([a-zA-Z0-9_-]{1,64})\.bandcamp\.com$`),
			},
			ProfileTemplate: "https://{username}.bandcamp.com",
		},
		{
			ID:       "mixcloud",
			Name:     "Mixcloud",
			Category: CategoryMusic,
			Domains:  []string{"mixcloud.com"},
			Embeds: []EmbedPattern{
				embedAs(`mixcloud\.com/([a-zA-Z0-9_-]+/[a-zA-Z0-9_-]+)`, 1, "track"),
			},
			Profiles: []ProfilePattern{
				profile(`^mixcloud\.com/([a-zA-Z0-9_-]{1,64})$`),
			},
			OEmbedEndpoint: "https://www.mixcloud.com/oembed/",
		},
		{
			ID:       "deezer",
			Name:     "Deezer",
			Category: CategoryMusic,
			Domains:  []string{"deezer.com", "widget.deezer.com"},
			Embeds: []EmbedPattern{
				embedTyped(`widget\.deezer\.com/widget/(?:dark|light)/(track|album|playlist)/(\d+)`, 2, 1),
				embedTyped(`deezer\.com/(?:[a-z]{2}/)?(track|album|playlist)/(\d+)`, 2, 1),
			},
			OEmbedEndpoint:   "https://api.deezer.com/oembed",
			EmbedURLTemplate: "https://widget.deezer.com/widget/dark/{type}/{id}",
		},
		{
			ID:       "anchor",
			Name:     "Anchor",
			Category: CategoryMusic,
			Domains:  []string{"anchor.fm"},
			Embeds: []EmbedPattern{
				embedAs(`anchor\.fm/[a-zA-Z0-9_-]+/episodes/([a-zA-Z0-9_-]+)`, 1, "episode"),
			},
		},
		{
			ID:       "transistor",
			Name:     "Transistor",
			Category: CategoryMusic,
			Domains:  []string{"share.transistor.fm"},
			Embeds: []EmbedPattern{
				embedAs(`share\.transistor\.fm/[se]/([a-zA-Z0-9-]+)`, 1, "episode"),
			},
			OEmbedEndpoint: "https://share.transistor.fm/oembed",
		},
		{
			ID:       "simplecast",
			Name:     "Simplecast",
			Category: CategoryMusic,
			Domains:  []string{"simplecast.com", "player.simplecast.com"},
			Embeds: []EmbedPattern{
				embedAs(`player\.simplecast\.com/([a-zA-Z0-9-]+)`, 1, "episode"),
				embedAs(`simplecast\.com/episodes/([a-zA-Z0-9-]+)`, 1, "episode"),
			},
			OEmbedEndpoint:   "https://simplecast.com/oembed",
			EmbedURLTemplate: "https://player.simplecast.com/{id}",
		},
	}
}

// postPlatforms are social networks whose individual posts embed. Their
// profile shapes live on the same definition so both resolve to one id.
func postPlatforms() []*Definition {
	return []*Definition{
		{
			ID:       "twitter",
			Name:     "X (Twitter)",
			Category: CategorySocial,
			Domains:  []string{"twitter.com", "x.com", "mobile.twitter.com"},
			Embeds: []EmbedPattern{
				embedAs(`(?:twitter|x)\.com/\w+/status(?:es)?/(\d+)`, 1, "post"),
			},
			Profiles: []ProfilePattern{
				profile(`^(?:twitter|x)\.com/([a-zA-Z0-9_]{1,15})$`),
			},
			Reserved: []string{"compose", "lists", "bookmarks"},
			Exclude: []*regexp.Regexp{
				re(`(?:twitter|x)\.com/i/`),
			},
			OEmbedEndpoint:  "https://publish.twitter.com/oembed",
			ProfileTemplate: "https://x.com/{username}",
		},
		{
			ID:       "instagram",
			Name:     "Instagram",
			Category: CategorySocial,
			Domains:  []string{"instagram.com", "instagr.am"},
			Embeds: []EmbedPattern{
				embedTyped(`instagram\.com/(?:[\w.]+/)?(p|reel|tv)/([a-zA-Z0-9_-]+)`, 2, 1),
			},
			Profiles: []ProfilePattern{
				profile(`^instagram\.com/([a-zA-Z0-9._]{1,30})$`),
			},
			Reserved: []string{"p", "reel", "tv", "web"},
			Exclude: []*regexp.Regexp{
				re(`instagram\.com/stories/`),
			},
			EmbedURLTemplate: "https://www.instagram.com/p/{id}/embed",
			ProfileTemplate:  "https://www.instagram.com/{username}",
		},
		{
			ID:       "threads",
			Name:     "Threads",
			Category: CategorySocial,
			Domains:  []string{"threads.net", "threads.com"},
			Embeds: []EmbedPattern{
				embedAs(`threads\.(?:net|com)/@?[\w.]+/post/([a-zA-Z0-9_-]+)`, 1, "post"),
			},
			Profiles: []ProfilePattern{
				profile(`^threads\.(?:net|com)/@([a-zA-Z0-9._]{1,64})$`),
			},
			ProfileTemplate: "https://www.threads.net/@{username}",
		},
		{
			ID:       "bluesky",
			Name:     "Bluesky",
			Category: CategorySocial,
			Domains:  []string{"bsky.app"},
			Embeds: []EmbedPattern{
				embedAs(`bsky\.app/profile/[\w.:-]+/post/([a-zA-Z0-9]+)`, 1, "post"),
			},
			Profiles: []ProfilePattern{
				profile(`^bsky\.app/profile/([a-zA-Z0-9.:-]{1,64})$`),
			},
			ProfileTemplate: "https://bsky.app/profile/{username}",
		},
		{
			ID:       "reddit",
			Name:     "Reddit",
			Category: CategorySocial,
			Domains:  []string{"reddit.com", "old.reddit.com", "redd.it"},
			Embeds: []EmbedPattern{
				embedAs(`reddit\.com/r/[\w]+/comments/([a-zA-Z0-9]+)`, 1, "post"),
			},
			Profiles: []ProfilePattern{
				profile(`^(?:old\.)?reddit\.com/(?:user|u)/([a-zA-Z0-9_-]{1,64})$`),
			},
			OEmbedEndpoint:  "https://www.reddit.com/oembed",
			ProfileTemplate: "https://www.reddit.com/user/{username}",
		},
		{
			ID:       "tumblr",
			Name:     "Tumblr",
			Category: CategorySocial,
			Domains:  []string{"tumblr.com"},
			Embeds: []EmbedPattern{
				embedAs(`[a-zA-Z0-9_-]+\.tumblr\.com/post/(\d+)`, 1, "post"),
				embedAs(`tumblr\.com/[a-zA-Z0-9_-]+/(\d+)`, 1, "post"),
			},
			Profiles: []ProfilePattern{
				profile(`^([a-zA-Z0-9_-]{1,64})\.tumblr\.com$`),
			},
			OEmbedEndpoint:  "https://www.tumblr.com/oembed/1.0",
			ProfileTemplate: "https://{username}.tumblr.com",
		},
		{
			ID:       "pinterest",
			Name:     "Pinterest",
			Category: CategorySocial,
			Domains:  []string{"pinterest.com", "pin.it"},
			Embeds: []EmbedPattern{
				embedAs(`pinterest\.com/pin/(\d+)`, 1, "post"),
				embedAs(`pin\.it/([a-zA-Z0-9]+)`, 1, "post"),
			},
			Profiles: []ProfilePattern{
				profile(`^pinterest\.com/([a-zA-Z0-9_]{1,64})$`),
			},
			OEmbedEndpoint: "https://www.pinterest.com/oembed.json",
		},
		{
			ID:       "facebook",
			Name:     "Facebook",
			Category: CategorySocial,
			Domains:  []string{"facebook.com", "fb.com", "fb.watch"},
			Embeds: []EmbedPattern{
				embedAs(`facebook\.com/[\w.]+/(?:posts)/([a-zA-Z0-9]+)`, 1, "post"),
				embedAs(`facebook\.com/[\w.]+/videos/(\d+)`, 1, "video"),
				embedAs(`facebook\.com/watch/?\?v=(\d+)`, 1, "video"),
				embedAs(`fb\.watch/([a-zA-Z0-9_-]+)`, 1, "video"),
			},
			Profiles: []ProfilePattern{
				{Regexp: re(`^(?:facebook|fb)\.com/profile\.php\?(?:[^#]*&)?id=(\d{1,20})(?:&|$)`), UsernameGroup: 1, Query: true},
				profile(`^(?:facebook|fb)\.com/([a-zA-Z0-9.]{1,64})$`),
			},
			Reserved: []string{"profile.php", "photo.php", "permalink.php", "story.php", "sharer.php", "sharer", "gaming", "reel", "people", "policies"},
		},
	}
}

func toolPlatforms() []*Definition {
	return []*Definition{
		{
			ID:       "codepen",
			Name:     "CodePen",
			Category: CategoryOther,
			Domains:  []string{"codepen.io"},
			Embeds: []EmbedPattern{
				embedAs(`codepen\.io/[a-zA-Z0-9_-]+/(?:pen|full|embed)/([a-zA-Z0-9]+)`, 1, "post"),
			},
			OEmbedEndpoint: "https://codepen.io/api/oembed",
		},
		{
			ID:       "codesandbox",
			Name:     "CodeSandbox",
			Category: CategoryOther,
			Domains:  []string{"codesandbox.io"},
			Embeds: []EmbedPattern{
				embedAs(`codesandbox\.io/(?:s|embed)/([a-zA-Z0-9_-]+)`, 1, "post"),
			},
			OEmbedEndpoint:   "https://codesandbox.io/oembed",
			EmbedURLTemplate: "https://codesandbox.io/embed/{id}",
		},
		{
			ID:       "figma",
			Name:     "Figma",
			Category: CategoryOther,
			Domains:  []string{"figma.com"},
			Embeds: []EmbedPattern{
				embedAs(`figma\.com/(?:file|proto|design)/([a-zA-Z0-9]+)`, 1, "post"),
			},
			OEmbedEndpoint: "https://www.figma.com/api/oembed",
		},
		{
			ID:       "notion",
			Name:     "Notion",
			Category: CategoryOther,
			Domains:  []string{"notion.so", "notion.site"},
			Embeds: []EmbedPattern{
				embedAs(`notion\.(?:so|site)/(?:[a-zA-Z0-9-]+/)?(?:[a-zA-Z0-9-]+-)?([a-f0-9]{32})`, 1, "post"),
			},
		},
		{
			ID:       "slideshare",
			Name:     "SlideShare",
			Category: CategoryOther,
			Domains:  []string{"slideshare.net"},
			Embeds: []EmbedPattern{
				embedAs(`slideshare\.net/([a-zA-Z0-9_-]+/[a-zA-Z0-9_-]+)`, 1, "post"),
			},
			OEmbedEndpoint: "https://www.slideshare.net/api/oembed/2",
		},
		{
			ID:       "calendly",
			Name:     "Calendly",
			Category: CategoryOther,
			Domains:  []string{"calendly.com"},
			Embeds: []EmbedPattern{
				embedAs(`calendly\.com/([a-zA-Z0-9_-]+(?:/[a-zA-Z0-9_-]+)?)$`, 1, "post"),
			},
		},
		{
			ID:       "typeform",
			Name:     "Typeform",
			Category: CategoryOther,
			Domains:  []string{"typeform.com"},
			Embeds: []EmbedPattern{
				embedAs(`[a-zA-Z0-9_-]+\.typeform\.com/to/([a-zA-Z0-9]+)`, 1, "post"),
			},
			OEmbedEndpoint: "https://api.typeform.com/oembed",
		},
		{
			ID:       "kickstarter",
			Name:     "Kickstarter",
			Category: CategoryOther,
			Domains:  []string{"kickstarter.com"},
			Embeds: []EmbedPattern{
				embedAs(`kickstarter\.com/projects/([a-zA-Z0-9_-]+/[a-zA-Z0-9_-]+)`, 1, "video"),
			},
			OEmbedEndpoint: "https://www.kickstarter.com/services/oembed",
		},
		{
			ID:       "indiegogo",
			Name:     "Indiegogo",
			Category: CategoryOther,
			Domains:  []string{"indiegogo.com"},
			Embeds: []EmbedPattern{
				embedAs(`indiegogo\.com/projects/([a-zA-Z0-9_-]+)`, 1, "video"),
			},
			OEmbedEndpoint: "https://www.indiegogo.com/services/oembed",
		},
		{
			ID:       "giphy",
			Name:     "GIPHY",
			Category: CategoryOther,
			Domains:  []string{"giphy.com", "media.giphy.com"},
			Embeds: []EmbedPattern{
				embedAs(`giphy\.com/embed/([a-zA-Z0-9]+)`, 1, "post"),
				embedAs(`media\.giphy\.com/media/([a-zA-Z0-9]+)`, 1, "post"),
				embedAs(`giphy\.com/gifs/(?:[a-zA-Z0-9_]+-)*([a-zA-Z0-9]+)$`, 1, "post"),
			},
			OEmbedEndpoint:   "https://giphy.com/services/oembed",
			EmbedURLTemplate: "https://giphy.com/embed/{id}",
		},
		{
			ID:       "flickr",
			Name:     "Flickr",
			Category: CategoryOther,
			Domains:  []string{"flickr.com", "flic.kr"},
			Embeds: []EmbedPattern{
				embedAs(`flickr\.com/photos/[a-zA-Z0-9@_-]+/(\d+)`, 1, "post"),
				embedAs(`flic\.kr/p/([a-zA-Z0-9]+)`, 1, "post"),
			},
			Profiles: []ProfilePattern{
				profile(`^flickr\.com/(?:photos|people)/([a-zA-Z0-9@_-]{1,64})$`),
			},
			OEmbedEndpoint:  "https://www.flickr.com/services/oembed/",
			ProfileTemplate: "https://www.flickr.com/photos/{username}",
		},
		{
			ID:       "google-maps",
			Name:     "Google Maps",
			Category: CategoryOther,
			Domains:  []string{"maps.google.com", "google.com", "goo.gl", "maps.app.goo.gl"},
			Embeds: []EmbedPattern{
				embedAs(`google\.com/maps/place/([^/?]+)`, 1, "post"),
				embedAs(`google\.com/maps/embed\?pb=([^&]+)`, 1, "post"),
				embedAs(`maps\.google\.com/\?q=([^&]+)`, 1, "post"),
				embedAs(`goo\.gl/maps/([a-zA-Z0-9]+)`, 1, "post"),
				embedAs(`maps\.app\.goo\.gl/([a-zA-Z0-9]+)`, 1, "post"),
			},
		},
	}
}
