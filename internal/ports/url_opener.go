package ports

// URLOpener shows a URL to the user (e.g. in a browser).
type URLOpener interface {
	Open(url string) error
}
