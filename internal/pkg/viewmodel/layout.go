package viewmodel

// Layout holds the values shared by every rendered page.
type Layout struct {
	Page  string
	Title string
	IsDev bool
}

// DocumentTitle is the <title> text for the page.
func (l Layout) DocumentTitle() string {
	if l.Title == "" {
		return "ig.news"
	}
	return l.Title + " | ig.news"
}
