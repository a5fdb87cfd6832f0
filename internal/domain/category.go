package domain

// Category is one node of the product category tree.
type Category struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	ParentID int64  `json:"parent_id"`
	Count    int    `json:"count"`
}
