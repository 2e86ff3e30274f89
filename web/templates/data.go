package templates

// layouts/primary

type DataLayoutPrimary struct {
	Title    string
	PageData any
}

// pages/homepage

type DataPageHomepage struct {
	AppName   string
	AppSlogan string
	// Raw BACKGROUND_IMAGE_URL, may be an s3:// URI a browser can't load
	BackgroundURL string
	// Web path of the cached copy, empty until a fetch succeeded
	BackgroundPath string
}
