package dto

// IEXLogoResponse is the IEX Cloud /stable/stock/{symbol}/logo response.
type IEXLogoResponse struct {
	URL string `json:"url"`
}
