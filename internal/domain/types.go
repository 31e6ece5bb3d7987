package domain

// RequestContext carries the authenticated principal attached by middleware.
type RequestContext struct {
	UserID int64  `json:"userId"`
	Role   string `json:"role"`
}

// IsAdmin reports whether the principal may perform admin-only operations.
func (rc RequestContext) IsAdmin() bool {
	return rc.Role == "admin"
}
