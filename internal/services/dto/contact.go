package dto

import "mime/multipart"

// CreateContactRequest carries the validated contact-form fields. The phone
// rule is the custom validator registered in internal/validator.
type CreateContactRequest struct {
	Name    string `form:"name" json:"name" validate:"required,min=2"`
	Email   string `form:"email" json:"email" validate:"required,email"`
	Phone   string `form:"phone" json:"phone" validate:"required,phone"`
	Message string `form:"message" json:"message" validate:"required,max=500"`
}

// UpdateContactRequest carries the mutable fields of an entry update.
// DeleteImages lists gallery refs to drop; refs not present in the gallery
// are ignored per ref.
type UpdateContactRequest struct {
	Message      string   `form:"message" json:"message" validate:"omitempty,max=500"`
	DeleteImages []string `form:"delete_images" json:"delete_images"`
}

// ContactFiles is the uploaded file set accompanying a create or update.
// Any member may be nil/empty on update.
type ContactFiles struct {
	Image          *multipart.FileHeader
	PDF            *multipart.FileHeader
	MultipleImages []*multipart.FileHeader
}
