package platforms

import (
	"strings"
	"sync"
)

// Tier is the price positioning of a brand
type Tier string

const (
	TierLuxury  Tier = "luxury"
	TierPremium Tier = "premium"
	TierMid     Tier = "mid"
	TierValue   Tier = "value"
)

// Brand maps a store domain to the brand it sells. Retailers sell many
// brands; their Name is empty unless the retailer is itself the brand.
type Brand struct {
	Domain   string
	Name     string
	Category string
	Tier     Tier
	Retailer bool
}

// BrandForDomain looks up the brand table for domain, falling back to the
// registrable root so shop.nike.com finds nike.com.
func BrandForDomain(domain string) (Brand, bool) {
	d := NormalizeDomain(domain)
	if b, ok := brandIndex()[d]; ok {
		return b, true
	}
	if root := RootDomain(d); root != d {
		b, ok := brandIndex()[root]
		return b, ok
	}
	return Brand{}, false
}

// RootDomain returns the last two labels of host, or three for common
// second-level country domains such as co.uk.
func RootDomain(host string) string {
	parts := strings.Split(NormalizeDomain(host), ".")
	if len(parts) <= 2 {
		return strings.Join(parts, ".")
	}
	n := 2
	switch parts[len(parts)-2] {
	case "co", "com", "org", "net", "ac", "gov":
		if len(parts[len(parts)-1]) == 2 {
			n = 3
		}
	}
	return strings.Join(parts[len(parts)-n:], ".")
}

var (
	brandOnce      sync.Once
	brandsByDomain map[string]Brand
)

func brandIndex() map[string]Brand {
	brandOnce.Do(func() {
		brandsByDomain = make(map[string]Brand, len(brands))
		for _, b := range brands {
			brandsByDomain[b.Domain] = b
		}
	})
	return brandsByDomain
}

// brandDefinitions turns the brand table into shopping platforms. Brand names
// come from the table; retailers without one are named after their domain.
func brandDefinitions() []*Definition {
	byID := make(map[string]*Definition)
	var defs []*Definition
	for _, b := range brands {
		id := strings.SplitN(RootDomain(b.Domain), ".", 2)[0]
		if def, ok := byID[id]; ok {
			def.Domains = append(def.Domains, b.Domain)
			continue
		}
		name := b.Name
		if name == "" {
			name = id
		}
		def := &Definition{
			ID:       id,
			Name:     name,
			Category: CategoryShopping,
			Domains:  []string{b.Domain},
		}
		byID[id] = def
		defs = append(defs, def)
	}
	return defs
}

var brands = []Brand{
	{Domain: "gfore.com", Name: "G/FORE", Category: "golf", Tier: TierLuxury, Retailer: false},
	{Domain: "gforegolf.com", Name: "G/FORE", Category: "golf", Tier: TierLuxury, Retailer: false},
	{Domain: "pxg.com", Name: "PXG", Category: "golf", Tier: TierLuxury, Retailer: false},
	{Domain: "nike.com", Name: "Nike", Category: "apparel", Tier: TierPremium, Retailer: false},
	{Domain: "adidas.com", Name: "adidas", Category: "apparel", Tier: TierPremium, Retailer: false},
	{Domain: "underarmour.com", Name: "Under Armour", Category: "apparel", Tier: TierPremium, Retailer: false},
	{Domain: "garmin.com", Name: "Garmin", Category: "tech", Tier: TierPremium, Retailer: false},
	{Domain: "pgatoursuperstore.com", Name: "", Category: "golf", Tier: TierMid, Retailer: true},
	{Domain: "golfgalaxy.com", Name: "", Category: "golf", Tier: TierMid, Retailer: true},
	{Domain: "dickssportinggoods.com", Name: "", Category: "golf", Tier: TierMid, Retailer: true},
	{Domain: "2ndswing.com", Name: "", Category: "golf", Tier: TierValue, Retailer: true},
	{Domain: "globalgolf.com", Name: "", Category: "golf", Tier: TierValue, Retailer: true},
	{Domain: "rockbottomgolf.com", Name: "", Category: "golf", Tier: TierValue, Retailer: true},
	{Domain: "budgetgolf.com", Name: "", Category: "golf", Tier: TierValue, Retailer: true},
	{Domain: "carlsgolfland.com", Name: "", Category: "golf", Tier: TierMid, Retailer: true},
	{Domain: "fairwaygolfusa.com", Name: "", Category: "golf", Tier: TierMid, Retailer: true},
	{Domain: "tgw.com", Name: "", Category: "golf", Tier: TierMid, Retailer: true},
	{Domain: "golfdiscount.com", Name: "", Category: "golf", Tier: TierValue, Retailer: true},
	{Domain: "apple.com", Name: "Apple", Category: "tech", Tier: TierPremium, Retailer: false},
	{Domain: "store.apple.com", Name: "Apple", Category: "tech", Tier: TierPremium, Retailer: false},
	{Domain: "bose.com", Name: "Bose", Category: "audio", Tier: TierPremium, Retailer: false},
	{Domain: "sonos.com", Name: "Sonos", Category: "audio", Tier: TierPremium, Retailer: false},
	{Domain: "bang-olufsen.com", Name: "Bang & Olufsen", Category: "audio", Tier: TierLuxury, Retailer: false},
	{Domain: "razer.com", Name: "Razer", Category: "gaming", Tier: TierPremium, Retailer: false},
	{Domain: "corsair.com", Name: "Corsair", Category: "gaming", Tier: TierPremium, Retailer: false},
	{Domain: "steelseries.com", Name: "SteelSeries", Category: "gaming", Tier: TierPremium, Retailer: false},
	{Domain: "bestbuy.com", Name: "", Category: "tech", Tier: TierMid, Retailer: true},
	{Domain: "bhphotovideo.com", Name: "", Category: "tech", Tier: TierMid, Retailer: true},
	{Domain: "adorama.com", Name: "", Category: "tech", Tier: TierMid, Retailer: true},
	{Domain: "newegg.com", Name: "", Category: "tech", Tier: TierValue, Retailer: true},
	{Domain: "microcenter.com", Name: "", Category: "tech", Tier: TierMid, Retailer: true},
	{Domain: "patagonia.com", Name: "Patagonia", Category: "outdoor", Tier: TierPremium, Retailer: false},
	{Domain: "thenorthface.com", Name: "The North Face", Category: "outdoor", Tier: TierPremium, Retailer: false},
	{Domain: "blackdiamondequipment.com", Name: "Black Diamond", Category: "outdoor", Tier: TierPremium, Retailer: false},
	{Domain: "rei.com", Name: "", Category: "outdoor", Tier: TierPremium, Retailer: true},
	{Domain: "backcountry.com", Name: "", Category: "outdoor", Tier: TierPremium, Retailer: true},
	{Domain: "moosejaw.com", Name: "", Category: "outdoor", Tier: TierMid, Retailer: true},
	{Domain: "ems.com", Name: "", Category: "outdoor", Tier: TierMid, Retailer: true},
	{Domain: "campsaver.com", Name: "", Category: "outdoor", Tier: TierMid, Retailer: true},
	{Domain: "canon.com", Name: "Canon", Category: "photography", Tier: TierPremium, Retailer: false},
	{Domain: "usa.canon.com", Name: "Canon", Category: "photography", Tier: TierPremium, Retailer: false},
	{Domain: "nikon.com", Name: "Nikon", Category: "photography", Tier: TierPremium, Retailer: false},
	{Domain: "ecco.com", Name: "ECCO", Category: "footwear", Tier: TierPremium, Retailer: false},
	{Domain: "allbirds.com", Name: "Allbirds", Category: "footwear", Tier: TierPremium, Retailer: false},
	{Domain: "newbalance.com", Name: "New Balance", Category: "footwear", Tier: TierPremium, Retailer: false},
	{Domain: "gucci.com", Name: "Gucci", Category: "fashion", Tier: TierLuxury, Retailer: false},
	{Domain: "louisvuitton.com", Name: "Louis Vuitton", Category: "fashion", Tier: TierLuxury, Retailer: false},
	{Domain: "prada.com", Name: "Prada", Category: "fashion", Tier: TierLuxury, Retailer: false},
	{Domain: "nordstrom.com", Name: "", Category: "fashion", Tier: TierPremium, Retailer: true},
	{Domain: "ssense.com", Name: "", Category: "fashion", Tier: TierLuxury, Retailer: true},
	{Domain: "mrporter.com", Name: "", Category: "fashion", Tier: TierLuxury, Retailer: true},
	{Domain: "net-a-porter.com", Name: "", Category: "fashion", Tier: TierLuxury, Retailer: true},
	{Domain: "farfetch.com", Name: "", Category: "fashion", Tier: TierLuxury, Retailer: true},
	{Domain: "matchesfashion.com", Name: "", Category: "fashion", Tier: TierLuxury, Retailer: true},
	{Domain: "endclothing.com", Name: "", Category: "fashion", Tier: TierPremium, Retailer: true},
	{Domain: "hbx.com", Name: "", Category: "fashion", Tier: TierPremium, Retailer: true},
	{Domain: "benchmade.com", Name: "Benchmade", Category: "edc", Tier: TierPremium, Retailer: false},
	{Domain: "spyderco.com", Name: "Spyderco", Category: "edc", Tier: TierPremium, Retailer: false},
	{Domain: "kershaw.kaiusa.com", Name: "Kershaw", Category: "edc", Tier: TierMid, Retailer: false},
	{Domain: "tumi.com", Name: "Tumi", Category: "travel", Tier: TierLuxury, Retailer: false},
	{Domain: "away.com", Name: "Away", Category: "travel", Tier: TierPremium, Retailer: false},
	{Domain: "briggs-riley.com", Name: "Briggs & Riley", Category: "travel", Tier: TierPremium, Retailer: false},
	{Domain: "rolex.com", Name: "Rolex", Category: "watches", Tier: TierLuxury, Retailer: false},
	{Domain: "omegawatches.com", Name: "Omega", Category: "watches", Tier: TierLuxury, Retailer: false},
	{Domain: "tagheuer.com", Name: "TAG Heuer", Category: "watches", Tier: TierLuxury, Retailer: false},
	{Domain: "sephora.com", Name: "", Category: "beauty", Tier: TierPremium, Retailer: true},
	{Domain: "ulta.com", Name: "", Category: "beauty", Tier: TierMid, Retailer: true},
	{Domain: "charlottetilbury.com", Name: "Charlotte Tilbury", Category: "beauty", Tier: TierLuxury, Retailer: false},
	{Domain: "maccosmetics.com", Name: "MAC Cosmetics", Category: "beauty", Tier: TierLuxury, Retailer: false},
	{Domain: "narscosmetics.com", Name: "NARS Cosmetics", Category: "beauty", Tier: TierLuxury, Retailer: false},
	{Domain: "cerave.com", Name: "CeraVe", Category: "skincare", Tier: TierMid, Retailer: false},
	{Domain: "drunkelephant.com", Name: "Drunk Elephant", Category: "skincare", Tier: TierPremium, Retailer: false},
	{Domain: "theordinary.com", Name: "The Ordinary", Category: "skincare", Tier: TierValue, Retailer: false},
	{Domain: "olaplex.com", Name: "Olaplex", Category: "haircare", Tier: TierPremium, Retailer: false},
	{Domain: "dyson.com", Name: "Dyson", Category: "home", Tier: TierLuxury, Retailer: false},
	{Domain: "wayfair.com", Name: "", Category: "home", Tier: TierMid, Retailer: true},
	{Domain: "crateandbarrel.com", Name: "Crate and Barrel", Category: "home", Tier: TierMid, Retailer: true},
	{Domain: "potterybarn.com", Name: "Pottery Barn", Category: "home", Tier: TierMid, Retailer: true},
	{Domain: "westelm.com", Name: "West Elm", Category: "home", Tier: TierMid, Retailer: true},
	{Domain: "cb2.com", Name: "CB2", Category: "home", Tier: TierMid, Retailer: true},
	{Domain: "ikea.com", Name: "IKEA", Category: "home", Tier: TierValue, Retailer: true},
	{Domain: "rh.com", Name: "Restoration Hardware", Category: "home", Tier: TierLuxury, Retailer: true},
	{Domain: "dwr.com", Name: "Design Within Reach", Category: "home", Tier: TierLuxury, Retailer: true},
	{Domain: "mcgeeandco.com", Name: "McGee & Co.", Category: "home", Tier: TierPremium, Retailer: false},
	{Domain: "schoolhouse.com", Name: "Schoolhouse", Category: "home", Tier: TierPremium, Retailer: false},
	{Domain: "ethanallen.com", Name: "Ethan Allen", Category: "home", Tier: TierPremium, Retailer: true},
	{Domain: "allmodern.com", Name: "AllModern", Category: "home", Tier: TierMid, Retailer: true},
	{Domain: "williams-sonoma.com", Name: "Williams-Sonoma", Category: "kitchen", Tier: TierPremium, Retailer: true},
	{Domain: "surlatable.com", Name: "Sur La Table", Category: "kitchen", Tier: TierPremium, Retailer: true},
	{Domain: "lecreuset.com", Name: "Le Creuset", Category: "kitchen", Tier: TierLuxury, Retailer: false},
	{Domain: "staub-usa.com", Name: "Staub", Category: "kitchen", Tier: TierLuxury, Retailer: false},
	{Domain: "all-clad.com", Name: "All-Clad", Category: "kitchen", Tier: TierLuxury, Retailer: false},
	{Domain: "brooklinen.com", Name: "Brooklinen", Category: "bedding", Tier: TierPremium, Retailer: false},
	{Domain: "parachutehome.com", Name: "Parachute", Category: "bedding", Tier: TierPremium, Retailer: false},
	{Domain: "caspersleep.com", Name: "Casper", Category: "bedding", Tier: TierPremium, Retailer: true},
	{Domain: "bollandbranch.com", Name: "Boll & Branch", Category: "bedding", Tier: TierLuxury, Retailer: false},
	{Domain: "lululemon.com", Name: "Lululemon", Category: "activewear", Tier: TierLuxury, Retailer: false},
	{Domain: "aloyoga.com", Name: "Alo Yoga", Category: "activewear", Tier: TierLuxury, Retailer: false},
	{Domain: "vuori.com", Name: "Vuori", Category: "activewear", Tier: TierPremium, Retailer: false},
	{Domain: "puma.com", Name: "Puma", Category: "athletic", Tier: TierMid, Retailer: false},
	{Domain: "reebok.com", Name: "Reebok", Category: "athletic", Tier: TierMid, Retailer: false},
	{Domain: "tracksmith.com", Name: "Tracksmith", Category: "running", Tier: TierPremium, Retailer: false},
	{Domain: "therabody.com", Name: "Therabody", Category: "fitness", Tier: TierPremium, Retailer: false},
	{Domain: "hyperice.com", Name: "Hyperice", Category: "fitness", Tier: TierPremium, Retailer: false},
	{Domain: "peloton.com", Name: "Peloton", Category: "fitness", Tier: TierPremium, Retailer: false},
	{Domain: "roguefitness.com", Name: "Rogue Fitness", Category: "fitness", Tier: TierMid, Retailer: true},
	{Domain: "whoop.com", Name: "WHOOP", Category: "wearables", Tier: TierPremium, Retailer: false},
	{Domain: "ouraring.com", Name: "Oura", Category: "wearables", Tier: TierPremium, Retailer: false},
	{Domain: "steampowered.com", Name: "Steam", Category: "gaming", Tier: TierPremium, Retailer: true},
	{Domain: "elgato.com", Name: "Elgato", Category: "streaming", Tier: TierPremium, Retailer: false},
	{Domain: "fender.com", Name: "Fender", Category: "music", Tier: TierLuxury, Retailer: false},
	{Domain: "gibson.com", Name: "Gibson", Category: "music", Tier: TierLuxury, Retailer: false},
	{Domain: "roland.com", Name: "Roland", Category: "music", Tier: TierPremium, Retailer: false},
	{Domain: "games-workshop.com", Name: "Games Workshop", Category: "hobbies", Tier: TierPremium, Retailer: false},
	{Domain: "lego.com", Name: "LEGO", Category: "hobbies", Tier: TierMid, Retailer: false},
	{Domain: "bandai-hobby.net", Name: "Bandai Hobby", Category: "hobbies", Tier: TierMid, Retailer: false},
	{Domain: "autozone.com", Name: "", Category: "automotive", Tier: TierValue, Retailer: true},
	{Domain: "rockauto.com", Name: "", Category: "automotive", Tier: TierValue, Retailer: true},
	{Domain: "napaonline.com", Name: "NAPA", Category: "automotive", Tier: TierMid, Retailer: true},
	{Domain: "advanceautoparts.com", Name: "Advance Auto Parts", Category: "automotive", Tier: TierMid, Retailer: true},
	{Domain: "weathertech.com", Name: "WeatherTech", Category: "automotive", Tier: TierPremium, Retailer: false},
	{Domain: "revzilla.com", Name: "", Category: "motorcycle", Tier: TierMid, Retailer: true},
	{Domain: "alpinestars.com", Name: "Alpinestars", Category: "motorcycle", Tier: TierLuxury, Retailer: false},
	{Domain: "dainese.com", Name: "Dainese", Category: "motorcycle", Tier: TierLuxury, Retailer: false},
	{Domain: "shoei-helmets.com", Name: "Shoei", Category: "motorcycle", Tier: TierPremium, Retailer: false},
	{Domain: "trekbikes.com", Name: "Trek", Category: "cycling", Tier: TierPremium, Retailer: false},
	{Domain: "specialized.com", Name: "Specialized", Category: "cycling", Tier: TierPremium, Retailer: false},
	{Domain: "cannondale.com", Name: "Cannondale", Category: "cycling", Tier: TierPremium, Retailer: false},
	{Domain: "chemicalguys.com", Name: "Chemical Guys", Category: "automotive", Tier: TierMid, Retailer: false},
	{Domain: "turtlewax.com", Name: "Turtle Wax", Category: "automotive", Tier: TierValue, Retailer: false},
	{Domain: "nespresso.com", Name: "Nespresso", Category: "coffee", Tier: TierLuxury, Retailer: false},
	{Domain: "breville.com", Name: "Breville", Category: "coffee", Tier: TierPremium, Retailer: false},
	{Domain: "fellowproducts.com", Name: "Fellow", Category: "coffee", Tier: TierPremium, Retailer: false},
	{Domain: "wholefoodsmarket.com", Name: "", Category: "food", Tier: TierPremium, Retailer: true},
	{Domain: "traderjoes.com", Name: "", Category: "food", Tier: TierMid, Retailer: true},
	{Domain: "greygoose.com", Name: "Grey Goose", Category: "spirits", Tier: TierLuxury, Retailer: false},
	{Domain: "patrontequila.com", Name: "Patrón", Category: "spirits", Tier: TierLuxury, Retailer: false},
	{Domain: "amazon.com", Name: "", Category: "retail", Tier: TierValue, Retailer: true},
	{Domain: "amazon.co.uk", Name: "", Category: "retail", Tier: TierValue, Retailer: true},
	{Domain: "amazon.ca", Name: "", Category: "retail", Tier: TierValue, Retailer: true},
	{Domain: "amazon.de", Name: "", Category: "retail", Tier: TierValue, Retailer: true},
	{Domain: "ebay.com", Name: "", Category: "retail", Tier: TierValue, Retailer: true},
	{Domain: "walmart.com", Name: "", Category: "retail", Tier: TierValue, Retailer: true},
	{Domain: "target.com", Name: "", Category: "retail", Tier: TierValue, Retailer: true},
	{Domain: "costco.com", Name: "", Category: "retail", Tier: TierValue, Retailer: true},
	{Domain: "homedepot.com", Name: "", Category: "home", Tier: TierValue, Retailer: true},
	{Domain: "lowes.com", Name: "", Category: "home", Tier: TierValue, Retailer: true},
	{Domain: "samsclub.com", Name: "", Category: "retail", Tier: TierValue, Retailer: true},
	{Domain: "bjs.com", Name: "", Category: "retail", Tier: TierValue, Retailer: true},
	{Domain: "chewy.com", Name: "", Category: "pet", Tier: TierMid, Retailer: true},
	{Domain: "petco.com", Name: "", Category: "pet", Tier: TierMid, Retailer: true},
	{Domain: "petsmart.com", Name: "", Category: "pet", Tier: TierMid, Retailer: true},
	{Domain: "orijen.com", Name: "Orijen", Category: "pet", Tier: TierPremium, Retailer: false},
	{Domain: "acana.com", Name: "Acana", Category: "pet", Tier: TierPremium, Retailer: false},
	{Domain: "royalcanin.com", Name: "Royal Canin", Category: "pet", Tier: TierPremium, Retailer: false},
	{Domain: "buybuybaby.com", Name: "", Category: "baby", Tier: TierMid, Retailer: true},
	{Domain: "babylist.com", Name: "", Category: "baby", Tier: TierMid, Retailer: true},
	{Domain: "uppababy.com", Name: "UPPAbaby", Category: "baby", Tier: TierLuxury, Retailer: false},
	{Domain: "bugaboo.com", Name: "Bugaboo", Category: "baby", Tier: TierLuxury, Retailer: false},
	{Domain: "nuna.eu", Name: "Nuna", Category: "baby", Tier: TierLuxury, Retailer: false},
	{Domain: "kiwico.com", Name: "KiwiCo", Category: "kids", Tier: TierPremium, Retailer: false},
	{Domain: "primarykids.com", Name: "Primary", Category: "kids", Tier: TierPremium, Retailer: false},
	{Domain: "hannaandersson.com", Name: "Hanna Andersson", Category: "kids", Tier: TierPremium, Retailer: false},
	{Domain: "warbyparker.com", Name: "Warby Parker", Category: "eyewear", Tier: TierPremium, Retailer: false},
	{Domain: "rayban.com", Name: "Ray-Ban", Category: "eyewear", Tier: TierPremium, Retailer: false},
	{Domain: "oakley.com", Name: "Oakley", Category: "eyewear", Tier: TierPremium, Retailer: false},
	{Domain: "sunglasshut.com", Name: "", Category: "eyewear", Tier: TierMid, Retailer: true},
	{Domain: "athleticgreens.com", Name: "AG1", Category: "supplements", Tier: TierPremium, Retailer: false},
	{Domain: "ritual.com", Name: "Ritual", Category: "supplements", Tier: TierPremium, Retailer: false},
	{Domain: "care-of.com", Name: "Care/of", Category: "supplements", Tier: TierPremium, Retailer: false},
	{Domain: "bodybuilding.com", Name: "", Category: "supplements", Tier: TierMid, Retailer: true},
	{Domain: "gnc.com", Name: "", Category: "supplements", Tier: TierMid, Retailer: true},
	{Domain: "vitaminshoppe.com", Name: "", Category: "supplements", Tier: TierMid, Retailer: true},
	{Domain: "autonomous.ai", Name: "Autonomous", Category: "office", Tier: TierMid, Retailer: false},
	{Domain: "fully.com", Name: "Fully", Category: "office", Tier: TierPremium, Retailer: false},
	{Domain: "upliftdesk.com", Name: "Uplift", Category: "office", Tier: TierPremium, Retailer: false},
	{Domain: "staples.com", Name: "", Category: "office", Tier: TierValue, Retailer: true},
	{Domain: "officedepot.com", Name: "", Category: "office", Tier: TierValue, Retailer: true},
	{Domain: "babolat.com", Name: "Babolat", Category: "tennis", Tier: TierPremium, Retailer: false},
	{Domain: "head.com", Name: "Head", Category: "sports", Tier: TierPremium, Retailer: false},
	{Domain: "yonex.com", Name: "Yonex", Category: "sports", Tier: TierPremium, Retailer: false},
	{Domain: "tennisexpress.com", Name: "", Category: "tennis", Tier: TierMid, Retailer: true},
	{Domain: "tennis-warehouse.com", Name: "", Category: "tennis", Tier: TierMid, Retailer: true},
	{Domain: "soccer.com", Name: "", Category: "soccer", Tier: TierMid, Retailer: true},
	{Domain: "burton.com", Name: "Burton", Category: "snow", Tier: TierPremium, Retailer: false},
	{Domain: "lib-tech.com", Name: "Lib Tech", Category: "snow", Tier: TierPremium, Retailer: false},
	{Domain: "rossignol.com", Name: "Rossignol", Category: "snow", Tier: TierPremium, Retailer: false},
	{Domain: "thehouseoutdoors.com", Name: "", Category: "snow", Tier: TierMid, Retailer: true},
	{Domain: "evo.com", Name: "", Category: "snow", Tier: TierMid, Retailer: true},
	{Domain: "channel-islands.com", Name: "Channel Islands", Category: "surf", Tier: TierPremium, Retailer: false},
	{Domain: "ripcurl.com", Name: "Rip Curl", Category: "surf", Tier: TierMid, Retailer: false},
	{Domain: "quiksilver.com", Name: "Quiksilver", Category: "surf", Tier: TierMid, Retailer: false},
	{Domain: "academy.com", Name: "", Category: "sports", Tier: TierValue, Retailer: true},
	{Domain: "sportsmanswarehouse.com", Name: "", Category: "sports", Tier: TierMid, Retailer: true},
	{Domain: "dickblick.com", Name: "", Category: "art", Tier: TierMid, Retailer: true},
	{Domain: "jerrysartarama.com", Name: "", Category: "art", Tier: TierMid, Retailer: true},
	{Domain: "michaels.com", Name: "", Category: "art", Tier: TierValue, Retailer: true},
	{Domain: "hobbylobby.com", Name: "", Category: "art", Tier: TierValue, Retailer: true},
	{Domain: "joann.com", Name: "", Category: "art", Tier: TierValue, Retailer: true},
	{Domain: "winsorandnewton.com", Name: "Winsor & Newton", Category: "art", Tier: TierPremium, Retailer: false},
	{Domain: "copic.jp", Name: "Copic", Category: "art", Tier: TierPremium, Retailer: false},
	{Domain: "prismacolor.com", Name: "Prismacolor", Category: "art", Tier: TierMid, Retailer: false},
	{Domain: "dagnedover.com", Name: "Dagne Dover", Category: "bags", Tier: TierPremium, Retailer: false},
	{Domain: "calpaktravel.com", Name: "CALPAK", Category: "bags", Tier: TierMid, Retailer: false},
	{Domain: "beistravel.com", Name: "Béis", Category: "bags", Tier: TierMid, Retailer: false},
	{Domain: "dollarshaveclub.com", Name: "Dollar Shave Club", Category: "grooming", Tier: TierValue, Retailer: false},
	{Domain: "billie.com", Name: "Billie", Category: "grooming", Tier: TierMid, Retailer: false},
	{Domain: "native.com", Name: "Native", Category: "grooming", Tier: TierMid, Retailer: false},
	{Domain: "barnesandnoble.com", Name: "", Category: "books", Tier: TierMid, Retailer: true},
	{Domain: "bookshop.org", Name: "", Category: "books", Tier: TierMid, Retailer: true},
	{Domain: "thriftbooks.com", Name: "", Category: "books", Tier: TierValue, Retailer: true},
	{Domain: "abebooks.com", Name: "", Category: "books", Tier: TierValue, Retailer: true},
	{Domain: "alibris.com", Name: "", Category: "books", Tier: TierValue, Retailer: true},
	{Domain: "kindle.amazon.com", Name: "Kindle", Category: "books", Tier: TierMid, Retailer: true},
	{Domain: "cvs.com", Name: "", Category: "health", Tier: TierValue, Retailer: true},
	{Domain: "walgreens.com", Name: "", Category: "health", Tier: TierValue, Retailer: true},
	{Domain: "riteaid.com", Name: "", Category: "health", Tier: TierValue, Retailer: true},
	{Domain: "nurx.com", Name: "Nurx", Category: "health", Tier: TierMid, Retailer: false},
	{Domain: "hims.com", Name: "Hims", Category: "health", Tier: TierMid, Retailer: false},
	{Domain: "forhers.com", Name: "Hers", Category: "health", Tier: TierMid, Retailer: false},
	{Domain: "johnlewis.com", Name: "", Category: "retail", Tier: TierPremium, Retailer: true},
	{Domain: "argos.co.uk", Name: "", Category: "retail", Tier: TierValue, Retailer: true},
	{Domain: "currys.co.uk", Name: "", Category: "tech", Tier: TierMid, Retailer: true},
	{Domain: "boots.com", Name: "", Category: "health", Tier: TierMid, Retailer: true},
	{Domain: "zalando.com", Name: "", Category: "fashion", Tier: TierMid, Retailer: true},
	{Domain: "aboutyou.com", Name: "", Category: "fashion", Tier: TierMid, Retailer: true},
	{Domain: "otto.de", Name: "", Category: "retail", Tier: TierMid, Retailer: true},
	{Domain: "myer.com.au", Name: "", Category: "retail", Tier: TierMid, Retailer: true},
	{Domain: "davidjones.com", Name: "", Category: "fashion", Tier: TierPremium, Retailer: true},
	{Domain: "kogan.com", Name: "", Category: "tech", Tier: TierValue, Retailer: true},
	{Domain: "canadiantire.ca", Name: "", Category: "retail", Tier: TierValue, Retailer: true},
	{Domain: "sportchek.ca", Name: "", Category: "sports", Tier: TierMid, Retailer: true},
	{Domain: "thebay.com", Name: "", Category: "retail", Tier: TierMid, Retailer: true},
}
