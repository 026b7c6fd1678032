package platforms

func product(pattern string, skuGroup int) ProductPattern {
	return ProductPattern{Regexp: re(pattern), SKUGroup: skuGroup}
}

// marketplaces are retailers whose product detail URLs have a known shape
func marketplaces() []*Definition {
	return []*Definition{
		{
			ID:       "amazon",
			Name:     "Amazon",
			Category: CategoryShopping,
			Domains: []string{
				"amazon.com", "amazon.co.uk", "amazon.ca", "amazon.de", "amazon.fr",
				"amazon.it", "amazon.es", "amazon.co.jp", "amazon.com.au", "amzn.to", "a.co",
			},
			Profiles: []ProfilePattern{
				profile(`^amazon\.[a-z.]+/shop/([a-zA-Z0-9_]{1,64})$`),
			},
			Products: []ProductPattern{
				product(`amazon\.[a-z.]+/(?:[^/]+/)?(?:dp|gp/product|gp/aw/d)/([A-Z0-9]{10})`, 1),
				product(`(?:amzn\.to|a\.co)/(?:d/)?([a-zA-Z0-9]+)`, 1),
			},
			ProfileTemplate: "https://www.amazon.com/shop/{username}",
		},
		{
			ID:       "ebay",
			Name:     "eBay",
			Category: CategoryShopping,
			Domains:  []string{"ebay.com", "ebay.co.uk", "ebay.ca", "ebay.de"},
			Products: []ProductPattern{
				product(`ebay\.[a-z.]+/itm/(?:[^/]+/)?(\d+)`, 1),
			},
		},
		{
			ID:       "etsy",
			Name:     "Etsy",
			Category: CategoryShopping,
			Domains:  []string{"etsy.com"},
			Profiles: []ProfilePattern{
				profile(`^etsy\.com/shop/([a-zA-Z0-9]{1,64})$`),
			},
			Products: []ProductPattern{
				product(`etsy\.com/(?:[a-z]{2}/)?listing/(\d+)`, 1),
			},
			ProfileTemplate: "https://www.etsy.com/shop/{username}",
		},
		{
			ID:       "walmart",
			Name:     "Walmart",
			Category: CategoryShopping,
			Domains:  []string{"walmart.com"},
			Products: []ProductPattern{
				product(`walmart\.com/ip/(?:[^/]+/)?(\d+)`, 1),
			},
		},
		{
			ID:       "target",
			Name:     "Target",
			Category: CategoryShopping,
			Domains:  []string{"target.com"},
			Products: []ProductPattern{
				product(`target\.com/p/(?:[^/]+/)?-/A-(\d+)`, 1),
			},
		},
		{
			ID:       "bestbuy",
			Name:     "Best Buy",
			Category: CategoryShopping,
			Domains:  []string{"bestbuy.com"},
			Products: []ProductPattern{
				product(`bestbuy\.com/site/[^/]+/(\d+)\.p`, 1),
				product(`bestbuy\.com/product/[^/]+/([A-Z0-9]+)`, 1),
			},
		},
		{
			ID:       "aliexpress",
			Name:     "AliExpress",
			Category: CategoryShopping,
			Domains:  []string{"aliexpress.com", "aliexpress.us"},
			Products: []ProductPattern{
				product(`aliexpress\.[a-z]+/item/(\d+)\.html`, 1),
			},
		},
		{
			ID:       "rei",
			Name:     "REI",
			Category: CategoryShopping,
			Domains:  []string{"rei.com"},
			Products: []ProductPattern{
				product(`rei\.com/product/(\d+)`, 1),
			},
		},
		{
			ID:       "bhphotovideo",
			Name:     "B&H Photo",
			Category: CategoryShopping,
			Domains:  []string{"bhphotovideo.com"},
			Products: []ProductPattern{
				product(`bhphotovideo\.com/c/product/(\d+-[A-Z]+)`, 1),
			},
		},
	}
}
