package domain

type Category struct {
	Name          string `json:"name"`
	MaterialCount int    `json:"materialCount"`
}
