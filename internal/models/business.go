package models

// BusinessRecord is the business currently shown on the dashboard card.
type BusinessRecord struct {
	Name     string  `json:"name"`
	Location string  `json:"location"`
	Rating   float64 `json:"rating"`
	Reviews  int     `json:"reviews"`
	Headline string  `json:"headline"`
}

// BusinessDataRequest is the body of POST /business-data.
type BusinessDataRequest struct {
	Name     string `json:"name" binding:"required"`
	Location string `json:"location" binding:"required"`
}

// BusinessDataResponse is the reply of POST /business-data.
type BusinessDataResponse struct {
	Rating   float64 `json:"rating"`
	Reviews  int     `json:"reviews"`
	Headline string  `json:"headline"`
}

// HeadlineQuery is the query string of GET /regenerate-headline.
type HeadlineQuery struct {
	Name     string `form:"name" binding:"required"`
	Location string `form:"location" binding:"required"`
}

// HeadlineResponse is the reply of GET /regenerate-headline.
type HeadlineResponse struct {
	Headline string `json:"headline"`
}
