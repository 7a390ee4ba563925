package dto

// CreateSizeRequest adds a size option to the catalog.
type CreateSizeRequest struct {
	SizeName string `json:"size_name" validate:"required,max=100"`
	BagType  string `json:"bag_type" validate:"required,oneof=collar snap ring"`
}
