package model

type HomeContent struct {
	HeroImage          string          `json:"heroImage"`
	MainSlogan         LocalizedString `json:"mainSlogan"`
	SecondarySlogan    LocalizedString `json:"secondarySlogan"`
	FeaturedProductIDs []string        `json:"featuredProductIds"`
}

type AboutContent struct {
	HeroImage string          `json:"heroImage"`
	Story     LocalizedString `json:"story"`
	Mission   LocalizedString `json:"mission"`
	Vision    LocalizedString `json:"vision"`
}

type ContactInfo struct {
	Address LocalizedString `json:"address"`
	Email   string          `json:"email"`
	Phone   string          `json:"phone"`
}

type SocialLinks struct {
	Facebook  string `json:"facebook"`
	Twitter   string `json:"twitter"`
	Instagram string `json:"instagram"`
	LinkedIn  string `json:"linkedin"`
}

type FooterContent struct {
	SocialLinks SocialLinks `json:"socialLinks"`
}

type SiteSettings struct {
	LogoURL string `json:"logoUrl"`
}

func DefaultHomeContent() HomeContent {
	return HomeContent{
		HeroImage:          "https://picsum.photos/seed/farm/1920/1080",
		MainSlogan:         LocalizedString{EN: "Nourishing Growth, Ensuring Quality", BN: "পুষ্টি বৃদ্ধি, গুণমান নিশ্চিত"},
		SecondarySlogan:    LocalizedString{EN: "Your trusted partner in premium fish, poultry, and cattle feeds for a healthier, more productive tomorrow.", BN: "স্বাস্থ্যকর এবং আরও উৎপাদনশীল আগামীকালের জন্য প্রিমিয়াম মাছ, পোল্ট্রি এবং ক্যাটল ফিডে আপনার বিশ্বস্ত অংশীদার।"},
		FeaturedProductIDs: []string{"ff001", "pf001", "cf001", "fm001"},
	}
}

func DefaultAboutContent() AboutContent {
	return AboutContent{
		HeroImage: "https://picsum.photos/seed/about/1920/1080",
		Story: LocalizedString{
			EN: "Founded on the principle of empowering farmers, T Agro Fish and Poultry Feed Industries Limited began as a small initiative to provide local communities with superior quality animal nutrition.",
			BN: "কৃষকদের ক্ষমতায়নের নীতির উপর প্রতিষ্ঠিত, টি এগ্রো ফিশ অ্যান্ড পোল্ট্রি ফিড ইন্ডাস্ট্রিজ লিমিটেড স্থানীয় সম্প্রদায়কে উচ্চ মানের পশু পুষ্টি সরবরাহের জন্য একটি ছোট উদ্যোগ হিসাবে শুরু হয়েছিল।",
		},
		Mission: LocalizedString{
			EN: "To support farmers and aquaculturists by providing nutritious, safe, and reliable animal feed and health products.",
			BN: "পুষ্টিকর, নিরাপদ এবং নির্ভরযোগ্য পশু খাদ্য এবং স্বাস্থ্য পণ্য সরবরাহ করে কৃষক এবং জলচাষীদের সমর্থন করা।",
		},
		Vision: LocalizedString{
			EN: "To be the most trusted and preferred partner in the animal nutrition industry.",
			BN: "পশু পুষ্টি শিল্পে সবচেয়ে বিশ্বস্ত এবং পছন্দের অংশীদার হওয়া।",
		},
	}
}

func DefaultContactInfo() ContactInfo {
	return ContactInfo{
		Address: LocalizedString{EN: "123 Feed Street, Agro City, Farm Country", BN: "১২৩ ফিড স্ট্রিট, এগ্রো সিটি, ফার্ম কান্ট্রি"},
		Email:   "contact@tagrofeeds.com",
		Phone:   "+123 456 7890",
	}
}

func DefaultFooterContent() FooterContent {
	return FooterContent{SocialLinks: SocialLinks{
		Facebook:  "https://facebook.com",
		Twitter:   "https://twitter.com",
		Instagram: "https://instagram.com",
		LinkedIn:  "https://linkedin.com",
	}}
}
