package platforms

func socialPlatform(id, name string, domains []string, template string, patterns ...string) *Definition {
	def := &Definition{
		ID:              id,
		Name:            name,
		Category:        CategorySocial,
		Domains:         domains,
		ProfileTemplate: template,
	}
	for _, p := range patterns {
		def.Profiles = append(def.Profiles, profile(p))
	}
	return def
}

func withReserved(def *Definition, segments ...string) *Definition {
	def.Reserved = segments
	return def
}

// socialPlatforms are account-only platforms with no embeddable content
func socialPlatforms() []*Definition {
	return []*Definition{
		socialPlatform("linkedin", "LinkedIn", []string{"linkedin.com"}, "https://www.linkedin.com/in/{username}",
			`^linkedin\.com/in/([a-zA-Z0-9_-]{1,64})$`,
			`^linkedin\.com/company/([a-zA-Z0-9_-]{1,64})$`),
		withReserved(socialPlatform("github", "GitHub", []string{"github.com"}, "",
			`^github\.com/([a-zA-Z0-9_-]{1,39})$`),
			"orgs", "sponsors", "enterprise", "issues", "pulls", "collections", "codespaces", "apps"),
		socialPlatform("patreon", "Patreon", []string{"patreon.com"}, "",
			`^patreon\.com/([a-zA-Z0-9_]{1,64})$`),
		socialPlatform("substack", "Substack", []string{"substack.com"}, "https://{username}.substack.com",
			`^([a-zA-Z0-9_-]{1,64})\.substack\.com$`),
		socialPlatform("telegram", "Telegram", []string{"t.me", "telegram.me"}, "https://t.me/{username}",
			`^(?:t|telegram)\.me/([a-zA-Z0-9_]{1,64})$`),
		socialPlatform("discord", "Discord", []string{"discord.gg", "discord.com"}, "https://discord.gg/{username}",
			`^discord\.gg/([a-zA-Z0-9]{1,64})$`,
			`^discord\.com/invite/([a-zA-Z0-9]{1,64})$`),
		socialPlatform("snapchat", "Snapchat", []string{"snapchat.com"}, "https://www.snapchat.com/add/{username}",
			`^snapchat\.com/add/([a-zA-Z0-9._-]{1,64})$`),
		socialPlatform("behance", "Behance", []string{"behance.net"}, "",
			`^behance\.net/([a-zA-Z0-9_]{1,64})$`),
		socialPlatform("dribbble", "Dribbble", []string{"dribbble.com"}, "",
			`^dribbble\.com/([a-zA-Z0-9_]{1,64})$`),
		socialPlatform("whatsapp", "WhatsApp", []string{"wa.me", "whatsapp.com"}, "https://wa.me/{username}",
			`^wa\.me/(\d{6,20})$`),
		socialPlatform("medium", "Medium", []string{"medium.com"}, "https://medium.com/@{username}",
			`^medium\.com/@([a-zA-Z0-9._]{1,64})$`),
		socialPlatform("mastodon", "Mastodon", []string{"mastodon.social", "mastodon.online", "mstdn.social"}, "https://mastodon.social/@{username}",
			`^(?:mastodon\.social|mastodon\.online|mstdn\.social)/@([a-zA-Z0-9_]{1,64})$`),
		socialPlatform("kofi", "Ko-fi", []string{"ko-fi.com"}, "",
			`^ko-fi\.com/([a-zA-Z0-9_]{1,64})$`),
		socialPlatform("buymeacoffee", "Buy Me a Coffee", []string{"buymeacoffee.com"}, "",
			`^buymeacoffee\.com/([a-zA-Z0-9_]{1,64})$`),
		socialPlatform("linktree", "Linktree", []string{"linktr.ee"}, "",
			`^linktr\.ee/([a-zA-Z0-9._]{1,64})$`),
		socialPlatform("gumroad", "Gumroad", []string{"gumroad.com"}, "",
			`^gumroad\.com/([a-zA-Z0-9_]{1,64})$`,
			`^([a-zA-Z0-9_]{1,64})\.gumroad\.com$`),
		socialPlatform("producthunt", "Product Hunt", []string{"producthunt.com"}, "https://www.producthunt.com/@{username}",
			`^producthunt\.com/@([a-zA-Z0-9_]{1,64})$`),
		socialPlatform("letterboxd", "Letterboxd", []string{"letterboxd.com"}, "",
			`^letterboxd\.com/([a-zA-Z0-9_]{1,64})$`),
		socialPlatform("goodreads", "Goodreads", []string{"goodreads.com"}, "https://www.goodreads.com/user/show/{username}",
			`^goodreads\.com/user/show/(\d+)(?:-[\w-]+)?$`),
		socialPlatform("cashapp", "Cash App", []string{"cash.app"}, "https://cash.app/${username}",
			`^cash\.app/\$([a-zA-Z0-9_]{1,64})$`),
		socialPlatform("venmo", "Venmo", []string{"venmo.com"}, "",
			`^venmo\.com/(?:u/)?([a-zA-Z0-9_-]{1,64})$`),
		socialPlatform("paypal", "PayPal", []string{"paypal.me"}, "",
			`^paypal\.me/([a-zA-Z0-9_]{1,64})$`),
		socialPlatform("500px", "500px", []string{"500px.com"}, "https://500px.com/p/{username}",
			`^500px\.com/p/([a-zA-Z0-9_]{1,64})$`),
		socialPlatform("deviantart", "DeviantArt", []string{"deviantart.com"}, "",
			`^deviantart\.com/([a-zA-Z0-9_-]{1,64})$`,
			`^([a-zA-Z0-9_-]{1,64})\.deviantart\.com$`),
		socialPlatform("artstation", "ArtStation", []string{"artstation.com"}, "",
			`^artstation\.com/([a-zA-Z0-9_]{1,64})$`),
		socialPlatform("clubhouse", "Clubhouse", []string{"clubhouse.com", "joinclubhouse.com"}, "https://www.clubhouse.com/@{username}",
			`^(?:join)?clubhouse\.com/@([a-zA-Z0-9_]{1,64})$`),
		socialPlatform("onlyfans", "OnlyFans", []string{"onlyfans.com"}, "",
			`^onlyfans\.com/([a-zA-Z0-9._]{1,64})$`),
		socialPlatform("fanhouse", "Fanhouse", []string{"fanhouse.app"}, "",
			`^fanhouse\.app/([a-zA-Z0-9_]{1,64})$`),
		socialPlatform("carrd", "Carrd", []string{"carrd.co"}, "https://{username}.carrd.co",
			`^([a-zA-Z0-9_-]{1,64})\.carrd\.co$`),
		socialPlatform("stanstore", "Stan Store", []string{"stan.store"}, "",
			`^stan\.store/([a-zA-Z0-9_]{1,64})$`),
		socialPlatform("beacons", "Beacons", []string{"beacons.ai"}, "",
			`^beacons\.ai/([a-zA-Z0-9_]{1,64})$`),
		{
			ID:              "email",
			Name:            "Email",
			Category:        CategorySocial,
			Profiles:        []ProfilePattern{profile(`(?i)^mailto:([a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,})$`)},
			ProfileTemplate: "mailto:{username}",
		},
	}
}
