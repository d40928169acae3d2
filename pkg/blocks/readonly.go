package blocks

// ChildPage is a sub-page as returned by the API. Pages are created through
// the pages endpoint, never as a block, so this is a ReadOnlyBlock.
type ChildPage struct {
	Title string `json:"title"`
}

// ChildDatabase is an inline database as returned by the API. Read-only.
type ChildDatabase struct {
	Title string `json:"title"`
}

// LinkPreview is an unfurled link as returned by the API. Read-only.
type LinkPreview struct {
	URL string `json:"url"`
}

// NewChildPage builds a child_page shape. It cannot be sent in a write request.
func NewChildPage(title string) ChildPage { return ChildPage{Title: title} }

// NewChildDatabase builds a child_database shape. It cannot be sent in a write request.
func NewChildDatabase(title string) ChildDatabase { return ChildDatabase{Title: title} }

// NewLinkPreview builds a link_preview shape. It cannot be sent in a write request.
func NewLinkPreview(url string) LinkPreview { return LinkPreview{URL: url} }

func (ChildPage) Type() Type     { return TypeChildPage }
func (ChildDatabase) Type() Type { return TypeChildDatabase }
func (LinkPreview) Type() Type   { return TypeLinkPreview }

func (ChildPage) readOnly()     {}
func (ChildDatabase) readOnly() {}
func (LinkPreview) readOnly()   {}

// MarshalJSON implements json.Marshaler.
func (b ChildPage) MarshalJSON() ([]byte, error) {
	type payload ChildPage
	return envelope(TypeChildPage, payload(b))
}

// MarshalJSON implements json.Marshaler.
func (b ChildDatabase) MarshalJSON() ([]byte, error) {
	type payload ChildDatabase
	return envelope(TypeChildDatabase, payload(b))
}

// MarshalJSON implements json.Marshaler.
func (b LinkPreview) MarshalJSON() ([]byte, error) {
	type payload LinkPreview
	return envelope(TypeLinkPreview, payload(b))
}
