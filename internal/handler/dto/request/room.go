package request

type CreateRoomRequest struct {
	Name      string   `json:"name" binding:"required,min=1,max=100"`
	Location  string   `json:"location" binding:"required,min=1,max=255"`
	Capacity  int      `json:"capacity" binding:"required,min=1"`
	Amenities []string `json:"amenities,omitempty"`
}

type UpdateRoomRequest struct {
	Name      *string   `json:"name,omitempty" binding:"omitempty,min=1,max=100"`
	Location  *string   `json:"location,omitempty" binding:"omitempty,min=1,max=255"`
	Capacity  *int      `json:"capacity,omitempty" binding:"omitempty,min=1"`
	Amenities *[]string `json:"amenities,omitempty"`
	IsActive  *bool     `json:"is_active,omitempty"`
}
