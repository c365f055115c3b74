package model

type ContactSubmission struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"required,phone10"`
	Subject string `json:"subject" validate:"required"`
	Message string `json:"message" validate:"required"`
	Date    string `json:"date"`
}
