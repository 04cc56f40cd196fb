package driven

// Browser opens URLs in the platform's default viewer. Nothing flows back
// from the browser to the application.
type Browser interface {
	OpenURL(url string) error
}
