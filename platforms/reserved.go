package platforms

import "strings"

// MaxUsernameLength bounds usernames accepted from profile URLs
const MaxUsernameLength = 64

// reservedUsernames are path segments that platforms use for their own pages.
// They look like usernames but never name an account.
var reservedUsernames = map[string]struct{}{
	"about": {}, "help": {}, "support": {}, "settings": {}, "privacy": {},
	"terms": {}, "tos": {}, "login": {}, "logout": {}, "signup": {},
	"register": {}, "explore": {}, "search": {}, "trending": {}, "home": {},
	"feed": {}, "notifications": {}, "messages": {}, "direct": {}, "create": {},
	"share": {}, "api": {}, "developer": {}, "developers": {}, "docs": {},
	"blog": {}, "jobs": {}, "careers": {}, "press": {}, "legal": {},
	"contact": {}, "advertise": {}, "ads": {}, "business": {}, "shop": {},
	"store": {}, "download": {}, "mobile": {}, "i": {}, "intent": {},
	"hashtag": {}, "account": {}, "accounts": {}, "stories": {}, "reels": {},
	"watch": {}, "results": {}, "directory": {}, "pricing": {}, "features": {},
	"marketplace": {}, "groups": {}, "events": {}, "pages": {}, "topics": {},
	"following": {}, "followers": {}, "you": {}, "discover": {}, "new": {},
}

// IsReserved reports whether username is a platform-reserved path segment
func IsReserved(username string) bool {
	_, ok := reservedUsernames[strings.ToLower(strings.TrimPrefix(username, "@"))]
	return ok
}
