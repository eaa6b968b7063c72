package layout

//go:generate go run github.com/a-h/templ/cmd/templ@v0.3.977 generate -path ..

// FlashMessage is a one-shot notice carried across a redirect
type FlashMessage struct {
	Type    string // "success", "error", "info"
	Message string
}

// PageData is shared by every page
type PageData struct {
	Title    string
	Username string // empty when anonymous
	Flash    *FlashMessage
}
